// Package downloader retrieves catalog data files to a local directory.
// Downloads are idempotent by file existence: a destination that already
// exists is skipped without any staleness check, which keeps manual
// reruns cheap after a partial batch.
package downloader

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/HerwigLab/IsoTools2/internal/errors"
)

// Config holds configuration for the file downloader
type Config struct {
	BaseURL   string // catalog base URL for per-accession downloads
	OutputDir string
	Samtools  string // external indexing tool, e.g. "samtools"
	DryRun    bool
	Verbose   bool
}

// Result contains information about a downloaded file
type Result struct {
	Accession string
	Path      string
	URL       string
	Size      int64
	Skipped   bool // destination already existed
	Duration  time.Duration
}

// Downloader handles downloading catalog files
type Downloader struct {
	config     Config
	httpClient *http.Client
}

// New creates a new downloader
func New(config Config) *Downloader {
	return &Downloader{
		config: config,
		httpClient: &http.Client{
			Timeout: 0, // No timeout for large downloads
		},
	}
}

// FileURL builds the per-accession download URL for a file name.
func (d *Downloader) FileURL(accession, fileName string) string {
	return fmt.Sprintf("%s/files/%s/@@download/%s", d.config.BaseURL, accession, fileName)
}

// Download fetches one file to the output directory. The source URL may
// come from the catalog metadata; when empty it is derived from the
// accession. An existing destination is returned as skipped.
func (d *Downloader) Download(ctx context.Context, accession, fileName, sourceURL string) (*Result, error) {
	const op = errors.Op("downloader.Download")

	startTime := time.Now()

	if sourceURL == "" {
		sourceURL = d.FileURL(accession, fileName)
	}
	outputPath := filepath.Join(d.config.OutputDir, fileName)

	result := &Result{
		Accession: accession,
		Path:      outputPath,
		URL:       sourceURL,
	}

	if d.config.DryRun {
		return result, nil
	}

	// Existence check only; no staleness comparison.
	if stat, err := os.Stat(outputPath); err == nil {
		if d.config.Verbose {
			fmt.Printf("File already exists: %s (%.2f MB)\n",
				outputPath, float64(stat.Size())/(1024*1024))
		}
		result.Size = stat.Size()
		result.Skipped = true
		result.Duration = time.Since(startTime)
		return result, nil
	}

	if err := os.MkdirAll(d.config.OutputDir, 0755); err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}

	if err := d.downloadWithHTTP(ctx, sourceURL, outputPath); err != nil {
		return nil, err
	}

	stat, err := os.Stat(outputPath)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}
	result.Size = stat.Size()
	result.Duration = time.Since(startTime)
	return result, nil
}

// downloadWithHTTP downloads to a temporary file and renames into place
// so that an aborted transfer never satisfies the existence check.
func (d *Downloader) downloadWithHTTP(ctx context.Context, url, outputPath string) error {
	const op = errors.Op("downloader.downloadWithHTTP")

	tmpPath := outputPath + ".tmp"

	out, err := os.Create(tmpPath)
	if err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	defer out.Close()
	defer os.Remove(tmpPath)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return errors.E(op, errors.KindNetwork, err)
	}

	resp, err := d.httpClient.Do(req)
	if err != nil {
		return errors.E(op, errors.KindNetwork, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return errors.E(op, errors.KindNetwork,
			fmt.Sprintf("HTTP %d: %s", resp.StatusCode, resp.Status))
	}

	if _, err := io.Copy(out, resp.Body); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	if err := out.Close(); err != nil {
		return errors.E(op, errors.KindIO, err)
	}

	return errors.Wrap(op, os.Rename(tmpPath, outputPath))
}
