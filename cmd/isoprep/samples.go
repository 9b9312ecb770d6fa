package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
	"github.com/HerwigLab/IsoTools2/internal/config"
	"github.com/HerwigLab/IsoTools2/internal/manifest"
	"github.com/HerwigLab/IsoTools2/internal/sample"
	"github.com/HerwigLab/IsoTools2/internal/store"
)

var samplesCmd = &cobra.Command{
	Use:   "samples",
	Short: "Select and name samples from fetched records",
	Long: `Build the sample table from the stored catalog records: keep released
read files, backfill missing platforms, link each read file to its
experiment's alignment file, and assign unique per-biosample sample
names (GM12878_a, GM12878_b, ...).

Run 'isoprep fetch' first. The result replaces the stored sample table.`,
	Example: `  isoprep samples
  isoprep samples --snapshots`,
	RunE: runSamples,
}

var samplesSnapshots bool

func init() {
	samplesCmd.Flags().BoolVar(&samplesSnapshots, "snapshots", false, "Write intermediate CSV snapshots next to the manifest")
}

func runSamples(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	records, err := db.Records()
	if err != nil {
		return fmt.Errorf("failed to read records: %w", err)
	}
	if len(records) == 0 {
		printError("No records in the database")
		fmt.Fprintf(os.Stderr, "\nFetch the catalog first:\n  isoprep fetch\n")
		return fmt.Errorf("no records")
	}

	samples, missing, err := buildSamples(cfg, records)
	if err != nil {
		return err
	}

	if err := db.ReplaceSamples(samples); err != nil {
		return fmt.Errorf("failed to store samples: %w", err)
	}
	printSuccess("Stored %d samples", len(samples))
	if missing > 0 {
		printWarning("%d samples have no alignment file", missing)
	}

	return nil
}

// buildSamples runs the selection pipeline and writes optional CSV
// snapshots. Shared with the assemble command.
func buildSamples(cfg *config.Config, records []catalog.Record) ([]sample.Named, int, error) {
	samples, missing, err := sample.Build(records, cfg.Manifest.FileTag)
	if err != nil {
		return nil, 0, fmt.Errorf("sample selection failed: %w", err)
	}
	printInfo("Selected %d read files from %d records", len(samples), len(records))

	if cfg.Manifest.Snapshots || samplesSnapshots {
		dir := filepath.Dir(cfg.Manifest.Path)
		entries := make([]sample.Entry, len(samples))
		for i, s := range samples {
			entries[i] = s.Entry
		}
		selectedPath := filepath.Join(dir, "selected.csv")
		if err := manifest.WriteSelectedCSV(selectedPath, entries); err != nil {
			return nil, 0, fmt.Errorf("failed to write snapshot: %w", err)
		}
		samplesPath := filepath.Join(dir, "samples_full.csv")
		if err := manifest.WriteSamplesCSV(samplesPath, samples); err != nil {
			return nil, 0, fmt.Errorf("failed to write snapshot: %w", err)
		}
		printInfo("Snapshots written to %s and %s", selectedPath, samplesPath)
	}

	return samples, missing, nil
}

// openStore opens the configured database, failing with a hint when it
// does not exist yet.
func openStore(cfg *config.Config) (*store.DB, error) {
	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		printError("Database not found at %s", cfg.Database.Path)
		fmt.Fprintf(os.Stderr, "\nFetch the catalog first:\n  isoprep fetch\n")
		return nil, fmt.Errorf("database not found")
	}
	db, err := store.Initialize(cfg.Database.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}
