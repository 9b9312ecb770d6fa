package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/manifest"
)

var manifestCmd = &cobra.Command{
	Use:   "manifest",
	Short: "Write the sample manifest TSV",
	Long: `Write the three-column sample manifest (sample_name, file_name, group)
from the stored sample table. An existing manifest is overwritten.

Run 'isoprep samples' first.`,
	Example: `  isoprep manifest
  isoprep manifest --output encode/samples.tsv`,
	RunE: runManifest,
}

var manifestOutput string

func init() {
	manifestCmd.Flags().StringVarP(&manifestOutput, "output", "o", "", "Manifest path (default: from config)")
}

func runManifest(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	samples, err := db.Samples()
	if err != nil {
		return fmt.Errorf("failed to read samples: %w", err)
	}
	if len(samples) == 0 {
		printError("No samples in the database")
		fmt.Fprintf(os.Stderr, "\nBuild the sample table first:\n  isoprep samples\n")
		return fmt.Errorf("no samples")
	}

	path := manifestOutput
	if path == "" {
		path = cfg.Manifest.Path
	}
	if err := manifest.Write(path, samples); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	printSuccess("Manifest with %d samples written to %s", len(samples), path)
	return nil
}
