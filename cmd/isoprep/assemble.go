package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/manifest"
	"github.com/HerwigLab/IsoTools2/internal/store"
)

var assembleCmd = &cobra.Command{
	Use:   "assemble",
	Short: "Fetch, select and write the manifest in one pass",
	Long: `Run the full pipeline: query the catalog, select and name samples,
persist everything and write the sample manifest.

Equivalent to 'isoprep fetch && isoprep samples && isoprep manifest'.
Any fetch or parse failure aborts before the manifest is touched.`,
	Example: `  isoprep assemble
  isoprep assemble --output encode/samples.tsv --snapshots`,
	RunE: runAssemble,
}

func init() {
	assembleCmd.Flags().StringVarP(&manifestOutput, "output", "o", "", "Manifest path (default: from config)")
	assembleCmd.Flags().BoolVar(&samplesSnapshots, "snapshots", false, "Write intermediate CSV snapshots next to the manifest")
	assembleCmd.Flags().BoolVar(&fetchNoIndex, "no-index", false, "Skip updating the search index")
}

func runAssemble(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	records, err := fetchRecords(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	samples, missing, err := buildSamples(cfg, records)
	if err != nil {
		return err
	}

	db, err := store.Initialize(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if err := db.ReplaceRecords(records); err != nil {
		return fmt.Errorf("failed to store records: %w", err)
	}
	if err := db.ReplaceSamples(samples); err != nil {
		return fmt.Errorf("failed to store samples: %w", err)
	}

	path := manifestOutput
	if path == "" {
		path = cfg.Manifest.Path
	}
	if err := manifest.Write(path, samples); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}

	if cfg.Search.Enabled && !fetchNoIndex {
		if err := indexRecords(cfg, records); err != nil {
			printWarning("Search indexing failed: %v", err)
		}
	}

	printSuccess("Manifest with %d samples written to %s", len(samples), path)
	if missing > 0 {
		printWarning("%d samples have no alignment file", missing)
	}
	return nil
}
