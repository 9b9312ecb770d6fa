package catalog

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/HerwigLab/IsoTools2/internal/errors"
)

// Output types of catalog file records.
const (
	OutputReads      = "reads"
	OutputAlignments = "alignments"
)

// StatusReleased marks file records available for download.
const StatusReleased = "released"

// Record is one row of the catalog report: one (experiment, file) pair.
// Missing fields are represented by the empty string.
type Record struct {
	Experiment         string // experiment accession, non-unique key
	File               string // file accession, unique across the record set
	OutputType         string // reads | alignments | other
	Status             string // released | other
	TermName           string // biosample term name, e.g. a cell line
	BiosampleType      string
	TechnicalReplicate string
	Platform           string // may be missing on individual rows
	DownloadURL        string // per-file download endpoint, when reported
}

// Report column titles.
const (
	colExperiment    = "Experiment"
	colFile          = "File"
	colOutputType    = "Output type"
	colStatus        = "File status"
	colTermName      = "Biosample term name"
	colBiosampleType = "Biosample type"
	colTechnicalRep  = "Technical replicate"
	colPlatform      = "Platform"
	colDownloadURL   = "Download URL"
)

var requiredColumns = []string{
	colExperiment, colFile, colOutputType, colStatus,
	colTermName, colBiosampleType, colTechnicalRep,
}

// ParseReport parses the raw tab-separated report payload. The first
// non-blank line carries the column headers; every following non-blank
// line is one record. A row whose field count disagrees with the header
// is a malformed payload and aborts parsing.
func ParseReport(payload []byte) ([]Record, error) {
	const op = errors.Op("catalog.ParseReport")

	cr := csv.NewReader(bytes.NewReader(payload))
	cr.Comma = '\t'
	cr.LazyQuotes = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.E(op, errors.KindParse, "empty report payload")
	}
	if err != nil {
		return nil, errors.E(op, errors.KindParse, "reading report header", err)
	}

	cols := make(map[string]int, len(header))
	for i, title := range header {
		cols[strings.TrimSpace(title)] = i
	}
	for _, title := range requiredColumns {
		if _, ok := cols[title]; !ok {
			return nil, errors.E(op, errors.KindParse,
				fmt.Sprintf("report is missing column %q", title))
		}
	}

	var records []Record
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// Field count mismatches surface here.
			return nil, errors.E(op, errors.KindParse, "malformed report row", err)
		}

		rec := Record{
			Experiment:         field(row, cols, colExperiment),
			File:               field(row, cols, colFile),
			OutputType:         field(row, cols, colOutputType),
			Status:             field(row, cols, colStatus),
			TermName:           field(row, cols, colTermName),
			BiosampleType:      field(row, cols, colBiosampleType),
			TechnicalReplicate: field(row, cols, colTechnicalRep),
			Platform:           field(row, cols, colPlatform),
			DownloadURL:        field(row, cols, colDownloadURL),
		}
		records = append(records, rec)
	}

	return records, nil
}

// field returns the trimmed cell for a column, or the empty string when
// the column is absent. Whitespace-only cells normalize to missing.
func field(row []string, cols map[string]int, title string) string {
	i, ok := cols[title]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// ValidateUniqueFiles checks the global invariant that file accessions
// are unique across the record set.
func ValidateUniqueFiles(records []Record) error {
	const op = errors.Op("catalog.ValidateUniqueFiles")

	seen := make(map[string]struct{}, len(records))
	for _, rec := range records {
		if rec.File == "" {
			return errors.E(op, errors.KindValidation, "record with empty file accession")
		}
		if _, dup := seen[rec.File]; dup {
			return errors.E(op, errors.KindValidation,
				fmt.Sprintf("duplicate file accession %s", rec.File))
		}
		seen[rec.File] = struct{}{}
	}
	return nil
}
