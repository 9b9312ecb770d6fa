package manifest

import (
	"encoding/csv"
	"os"
	"path/filepath"

	"github.com/HerwigLab/IsoTools2/internal/errors"
	"github.com/HerwigLab/IsoTools2/internal/sample"
)

// WriteSelectedCSV snapshots the selected-and-resolved sample table to a
// comma-separated file with header row and no index column. Missing
// alignment links serialize as the NA sentinel. Snapshots exist for
// audit only; nothing downstream reads them back.
func WriteSelectedCSV(path string, entries []sample.Entry) error {
	const op = errors.Op("manifest.WriteSelectedCSV")

	rows := make([][]string, 0, len(entries)+1)
	rows = append(rows, []string{
		"experiment", "reads", "alignment",
		"biosample_term_name", "biosample_type", "technical_replicate", "platform",
	})
	for _, e := range entries {
		alignment := e.Alignment
		if !e.HasAlignment() {
			alignment = sample.MissingLink
		}
		rows = append(rows, []string{
			e.Experiment, e.Reads, alignment,
			e.TermName, e.BiosampleType, e.TechnicalReplicate, e.Platform,
		})
	}
	return errors.Wrap(op, writeCSV(path, rows))
}

// WriteSamplesCSV snapshots the named sample table.
func WriteSamplesCSV(path string, samples []sample.Named) error {
	const op = errors.Op("manifest.WriteSamplesCSV")

	rows := make([][]string, 0, len(samples)+1)
	rows = append(rows, []string{
		"sample_name", "file_name", "group",
		"reads", "alignment", "biosample_type", "technical_replicate", "platform",
	})
	for _, s := range samples {
		alignment := s.Alignment
		if !s.HasAlignment() {
			alignment = sample.MissingLink
		}
		rows = append(rows, []string{
			s.SampleName, s.FileName, s.Group,
			s.Reads, alignment, s.BiosampleType, s.TechnicalReplicate, s.Platform,
		})
	}
	return errors.Wrap(op, writeCSV(path, rows))
}

func writeCSV(path string, rows [][]string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.E(errors.KindIO, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.E(errors.KindIO, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.WriteAll(rows); err != nil {
		return errors.E(errors.KindIO, err)
	}
	return nil
}
