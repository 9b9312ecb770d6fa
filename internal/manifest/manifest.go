// Package manifest serializes the final sample table for downstream
// analysis tooling, plus optional intermediate CSV snapshots for audit.
package manifest

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"

	"github.com/HerwigLab/IsoTools2/internal/errors"
	"github.com/HerwigLab/IsoTools2/internal/sample"
)

// Row is one deserialized manifest line.
type Row struct {
	SampleName string
	FileName   string
	Group      string
}

var manifestHeader = []string{"sample_name", "file_name", "group"}

// Write serializes exactly three columns per sample to a tab-separated
// file with a header row and no index column. The destination is created
// or truncated, never appended. Upstream invariants (unique sample
// names, non-empty file names) are trusted, not re-checked.
func Write(path string, samples []sample.Named) error {
	const op = errors.Op("manifest.Write")

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	f, err := os.Create(path)
	if err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	defer f.Close()

	if err := WriteTo(f, samples); err != nil {
		return errors.Wrap(op, err)
	}
	return nil
}

// WriteTo writes the manifest to an arbitrary writer.
func WriteTo(w io.Writer, samples []sample.Named) error {
	const op = errors.Op("manifest.WriteTo")

	cw := csv.NewWriter(w)
	cw.Comma = '\t'

	if err := cw.Write(manifestHeader); err != nil {
		return errors.E(op, errors.KindIO, err)
	}
	for _, s := range samples {
		if err := cw.Write([]string{s.SampleName, s.FileName, s.Group}); err != nil {
			return errors.E(op, errors.KindIO, err)
		}
	}
	cw.Flush()
	return errors.Wrap(op, cw.Error())
}

// Read loads a manifest back into rows, preserving order. Used for
// inspection and round-trip verification.
func Read(path string) ([]Row, error) {
	const op = errors.Op("manifest.Read")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}
	defer f.Close()

	cr := csv.NewReader(f)
	cr.Comma = '\t'

	header, err := cr.Read()
	if err != nil {
		return nil, errors.E(op, errors.KindParse, "reading manifest header", err)
	}
	if len(header) != len(manifestHeader) {
		return nil, errors.E(op, errors.KindParse, "unexpected manifest column count")
	}

	var rows []Row
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.E(op, errors.KindParse, "malformed manifest row", err)
		}
		rows = append(rows, Row{
			SampleName: rec[0],
			FileName:   rec[1],
			Group:      rec[2],
		})
	}
	return rows, nil
}
