package main

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/search"
)

var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over fetched records",
	Long: `Search the local index of catalog records. The query string supports
the usual full-text syntax; exact-match filters narrow by controlled
fields.

The index is built by 'isoprep fetch' when search is enabled.`,
	Example: `  isoprep search GM12878
  isoprep search heart --biosample-type tissue
  isoprep search "" --output-type alignments`,
	Args: cobra.MaximumNArgs(1),
	RunE: runSearch,
}

var (
	searchLimit         int
	searchPlatform      string
	searchBiosampleType string
	searchOutputType    string
	searchStatus        string
	searchFacets        bool
)

func init() {
	searchCmd.Flags().IntVarP(&searchLimit, "limit", "l", 0, "Maximum results (default: from config)")
	searchCmd.Flags().StringVar(&searchPlatform, "platform", "", "Filter by platform (exact)")
	searchCmd.Flags().StringVar(&searchBiosampleType, "biosample-type", "", "Filter by biosample type (exact)")
	searchCmd.Flags().StringVar(&searchOutputType, "output-type", "", "Filter by output type (exact)")
	searchCmd.Flags().StringVar(&searchStatus, "status", "", "Filter by file status (exact)")
	searchCmd.Flags().BoolVar(&searchFacets, "facets", false, "Show result counts by category")
}

func runSearch(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !cfg.Search.Enabled {
		return fmt.Errorf("search is disabled in the configuration")
	}
	if _, err := os.Stat(cfg.Search.IndexPath); os.IsNotExist(err) {
		printError("Search index not found at %s", cfg.Search.IndexPath)
		fmt.Fprintf(os.Stderr, "\nBuild it first:\n  isoprep fetch\n")
		return fmt.Errorf("index not found")
	}

	index, err := search.Open(cfg.Search.IndexPath)
	if err != nil {
		return fmt.Errorf("failed to open index: %w", err)
	}
	defer index.Close()

	query := ""
	if len(args) == 1 {
		query = args[0]
	}
	filters := make(map[string]string)
	for field, value := range map[string]string{
		"platform":       searchPlatform,
		"biosample_type": searchBiosampleType,
		"output_type":    searchOutputType,
		"status":         searchStatus,
	} {
		if value != "" {
			filters[field] = value
		}
	}
	if query == "" && len(filters) == 0 {
		return fmt.Errorf("nothing to search for, give a query or a filter")
	}

	limit := searchLimit
	if limit <= 0 {
		limit = cfg.Search.DefaultLimit
	}

	var results *search.Results
	if searchFacets && query != "" && len(filters) == 0 {
		results, err = index.Search(query, limit)
	} else {
		results, err = index.SearchWithFilters(query, filters, limit)
	}
	if err != nil {
		return fmt.Errorf("search failed: %w", err)
	}

	printInfo("%d results (%s)", results.Total, results.Took)
	for _, hit := range results.Hits {
		term, _ := hit.Fields["term_name"].(string)
		outputType, _ := hit.Fields["output_type"].(string)
		experiment, _ := hit.Fields["experiment"].(string)
		fmt.Printf("  %s  %-12s %-22s %s\n",
			colorize(colorBold, hit.ID), outputType, term, colorize(colorGray, experiment))
	}

	if searchFacets && results.Facets != nil {
		names := make([]string, 0, len(results.Facets))
		for name := range results.Facets {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			facet := results.Facets[name]
			fmt.Printf("\n%s\n", colorize(colorBold, name))
			for _, term := range facet.Terms.Terms() {
				fmt.Printf("  %-30s %d\n", term.Term, term.Count)
			}
		}
	}
	return nil
}
