package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version info
var (
	version = "0.1.0"
	commit  = "dev"
	date    = "unknown"
)

// Global flags
var (
	noColor    bool
	quiet      bool
	verbose    bool
	debug      bool
	configPath string
)

// Root command
var rootCmd = &cobra.Command{
	Use:   "isoprep",
	Short: "ENCODE demonstration dataset assembly",
	Long: `isoprep assembles a reproducible long-read RNA-seq demonstration
dataset from the ENCODE experiment catalog.

It queries the catalog for matching experiments, selects released read
files, links them to their aligned counterparts, assigns stable sample
names and writes a tab-separated sample manifest for downstream
transcriptome analysis.`,
	Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),
	Example: `  # Fetch catalog metadata
  isoprep fetch

  # Build the sample table and write the manifest
  isoprep samples
  isoprep manifest

  # Or do all three in one pass
  isoprep assemble

  # Download data files and index alignments
  isoprep download

  # Inspect the local store
  isoprep db info`,
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable colored output")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "Suppress non-error output")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Enable debug output")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default: auto-detect)")

	rootCmd.AddCommand(fetchCmd)
	rootCmd.AddCommand(samplesCmd)
	rootCmd.AddCommand(manifestCmd)
	rootCmd.AddCommand(assembleCmd)
	rootCmd.AddCommand(downloadCmd)
	rootCmd.AddCommand(qcCmd)
	rootCmd.AddCommand(searchCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(dbCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
