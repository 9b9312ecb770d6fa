package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/downloader"
	"github.com/HerwigLab/IsoTools2/internal/errors"
	"github.com/HerwigLab/IsoTools2/internal/sample"
	"github.com/HerwigLab/IsoTools2/internal/store"
	"github.com/HerwigLab/IsoTools2/internal/ui"
)

var downloadCmd = &cobra.Command{
	Use:   "download",
	Short: "Download sample data files",
	Long: `Download the alignment files of the assembled samples into the local
download directory, named as they appear in the manifest. Freshly
downloaded alignments are indexed with samtools when the index is
missing or stale.

Files that already exist are skipped. Individual download failures are
logged and counted; the batch continues.`,
	Example: `  isoprep download
  isoprep download --reads
  isoprep download --dry-run`,
	RunE: runDownload,
}

var (
	downloadReads     bool
	downloadDryRun    bool
	downloadSkipIndex bool
)

func init() {
	downloadCmd.Flags().BoolVar(&downloadReads, "reads", false, "Also download raw read files")
	downloadCmd.Flags().BoolVar(&downloadDryRun, "dry-run", false, "Resolve URLs and paths without downloading")
	downloadCmd.Flags().BoolVar(&downloadSkipIndex, "skip-index", false, "Skip samtools indexing of alignments")
}

func runDownload(cmd *cobra.Command, args []string) error {
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
		return fmt.Errorf("no samples in the database, run 'isoprep samples' first")
	}

	d := downloader.New(downloader.Config{
		BaseURL:   cfg.Catalog.BaseURL,
		OutputDir: cfg.Download.Directory,
		Samtools:  cfg.Download.Samtools,
		DryRun:    downloadDryRun,
		Verbose:   verbose,
	})

	total := 0
	for _, s := range samples {
		if s.HasAlignment() {
			total++
		}
		if downloadReads {
			total++
		}
	}

	skipped := errors.NewSkipCounter("download")
	counter := ui.NewCounter("Downloading", total)
	downloaded := 0

	for _, s := range samples {
		if s.HasAlignment() {
			counter.Step(s.FileName)
			if err := downloadAlignment(cmd, d, db, s); err != nil {
				errors.LogAndContinueWith("download", err, s.Alignment)
				skipped.Skip(err, s.Alignment)
				continue
			}
			downloaded++
		} else if verbose {
			printWarning("Sample %s has no alignment file", s.SampleName)
		}

		if downloadReads {
			fileName := s.Reads + ".fastq.gz"
			counter.Step(fileName)
			if _, err := d.Download(cmd.Context(), s.Reads, fileName, recordURL(db, s.Reads)); err != nil {
				errors.LogAndContinueWith("download", err, s.Reads)
				skipped.Skip(err, s.Reads)
				continue
			}
			downloaded++
		}
	}
	counter.Done()
	skipped.Report()

	if downloadDryRun {
		printInfo("Dry run: %d files resolved", total)
		return nil
	}

	printSuccess("Downloaded %d of %d files", downloaded, total)
	if skipped.Count > 0 {
		return fmt.Errorf("%d downloads failed", skipped.Count)
	}
	return nil
}

// downloadAlignment fetches one alignment file under its manifest name
// and indexes it unless disabled.
func downloadAlignment(cmd *cobra.Command, d *downloader.Downloader, db *store.DB, s sample.Named) error {
	sourceURL := recordURL(db, s.Alignment)
	if sourceURL == "" {
		sourceURL = d.FileURL(s.Alignment, s.Alignment+".bam")
	}
	result, err := d.Download(cmd.Context(), s.Alignment, s.FileName, sourceURL)
	if err != nil {
		return err
	}

	if downloadDryRun || downloadSkipIndex {
		return nil
	}
	ran, err := d.EnsureIndex(cmd.Context(), result.Path)
	if err != nil {
		return err
	}
	if ran {
		printDebug("Indexed %s", result.Path)
	}
	return nil
}

// recordURL returns the catalog-reported download URL for a file
// accession, or empty when the record is unknown or carries none.
func recordURL(db *store.DB, accession string) string {
	rec, err := db.RecordByFile(accession)
	if err != nil {
		return ""
	}
	return rec.DownloadURL
}
