package downloader

import (
	"context"
	"os"
	"os/exec"

	"github.com/HerwigLab/IsoTools2/internal/errors"
)

// NeedsIndex reports whether an alignment file needs (re)indexing: the
// index is absent, or older than the data file.
func NeedsIndex(bamPath string) (bool, error) {
	const op = errors.Op("downloader.NeedsIndex")

	bamStat, err := os.Stat(bamPath)
	if err != nil {
		return false, errors.E(op, errors.KindIO, err)
	}

	idxStat, err := os.Stat(bamPath + ".bai")
	if os.IsNotExist(err) {
		return true, nil
	}
	if err != nil {
		return false, errors.E(op, errors.KindIO, err)
	}

	return idxStat.ModTime().Before(bamStat.ModTime()), nil
}

// EnsureIndex invokes the external indexing tool for an alignment file
// when the index is missing or stale. Indexing itself stays delegated;
// the decision is the only logic owned here. Returns true when the tool
// was invoked.
func (d *Downloader) EnsureIndex(ctx context.Context, bamPath string) (bool, error) {
	const op = errors.Op("downloader.EnsureIndex")

	needed, err := NeedsIndex(bamPath)
	if err != nil {
		return false, errors.Wrap(op, err)
	}
	if !needed {
		return false, nil
	}

	samtools := d.config.Samtools
	if samtools == "" {
		samtools = "samtools"
	}
	if _, err := exec.LookPath(samtools); err != nil {
		return false, errors.E(op, errors.KindIO, "indexing tool not found", err)
	}

	cmd := exec.CommandContext(ctx, samtools, "index", bamPath)
	if d.config.Verbose {
		cmd.Stdout = os.Stdout
		cmd.Stderr = os.Stderr
	}
	if err := cmd.Run(); err != nil {
		return false, errors.E(op, errors.KindIO, "indexing failed", err)
	}
	return true, nil
}
