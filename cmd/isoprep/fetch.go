package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
	"github.com/HerwigLab/IsoTools2/internal/config"
	"github.com/HerwigLab/IsoTools2/internal/search"
	"github.com/HerwigLab/IsoTools2/internal/store"
	"github.com/HerwigLab/IsoTools2/internal/ui"
)

var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch experiment metadata from the catalog",
	Long: `Query the ENCODE experiment catalog for long-read RNA-seq experiments
and store the resulting file records in the local database.

The query parameters (assay title, organism, required file types) come
from the configuration. The raw tab-separated report can be saved
alongside with --output.`,
	Example: `  isoprep fetch
  isoprep fetch --output encode/report.tsv
  isoprep fetch --no-index`,
	RunE: runFetch,
}

var (
	fetchOutput  string
	fetchNoIndex bool
)

func init() {
	fetchCmd.Flags().StringVarP(&fetchOutput, "output", "o", "", "Save the raw report TSV to this path")
	fetchCmd.Flags().BoolVar(&fetchNoIndex, "no-index", false, "Skip updating the search index")
}

func runFetch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	records, err := fetchRecords(cmd.Context(), cfg)
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
	printSuccess("Stored %d records in %s", len(records), cfg.Database.Path)

	if cfg.Search.Enabled && !fetchNoIndex {
		if err := indexRecords(cfg, records); err != nil {
			// The store is authoritative; a broken index is not fatal.
			printWarning("Search indexing failed: %v", err)
		} else {
			printSuccess("Indexed %d records", len(records))
		}
	}

	return nil
}

// fetchRecords queries the catalog and parses the report. Shared with
// the assemble command.
func fetchRecords(ctx context.Context, cfg *config.Config) ([]catalog.Record, error) {
	client := catalog.NewClient(cfg.Catalog.BaseURL, time.Duration(cfg.Catalog.Timeout)*time.Second)
	query := catalog.Query{
		Type:       cfg.Catalog.Type,
		AssayTitle: cfg.Catalog.AssayTitle,
		Organism:   cfg.Catalog.Organism,
		FileTypes:  cfg.Catalog.FileTypes,
	}

	printDebug("Report URL: %s", client.ReportURL(query))

	spinner := ui.NewSpinner("Fetching catalog report")
	spinner.Start()
	payload, err := client.FetchReport(ctx, query)
	if err != nil {
		spinner.Stop("")
		return nil, fmt.Errorf("catalog query failed: %w", err)
	}
	spinner.Stop(fmt.Sprintf("Fetched %d bytes", len(payload)))

	if fetchOutput != "" {
		if err := os.WriteFile(fetchOutput, payload, 0644); err != nil {
			return nil, fmt.Errorf("failed to save report: %w", err)
		}
		printInfo("Raw report saved to %s", fetchOutput)
	}

	records, err := catalog.ParseReport(payload)
	if err != nil {
		return nil, fmt.Errorf("report parsing failed: %w", err)
	}
	if err := catalog.ValidateUniqueFiles(records); err != nil {
		return nil, err
	}
	printInfo("Parsed %d file records", len(records))
	return records, nil
}

// indexRecords rebuilds the search index from a record set.
func indexRecords(cfg *config.Config, records []catalog.Record) error {
	index, err := search.Open(cfg.Search.IndexPath)
	if err != nil {
		return err
	}
	defer index.Close()
	return index.IndexRecords(records, cfg.Search.BatchSize)
}
