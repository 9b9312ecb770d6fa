package sample

import (
	"fmt"
	"sort"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
	"github.com/HerwigLab/IsoTools2/internal/errors"
)

// PlatformIndex maps experiment accessions to a known platform, built
// from every record carrying one. Platform is not populated on all rows,
// so the index lets sibling rows of the same experiment share it. The
// first value seen for an experiment wins.
func PlatformIndex(records []catalog.Record) map[string]string {
	index := make(map[string]string)
	for _, rec := range records {
		if rec.Platform == "" {
			continue
		}
		if _, ok := index[rec.Experiment]; !ok {
			index[rec.Experiment] = rec.Platform
		}
	}
	return index
}

// Select filters the record set to released reads-type records, backfills
// the platform from the experiment-wide index and sorts the result by
// (biosample type, biosample term name, technical replicate), ascending
// and stable. Multiple technical replicates per experiment are preserved;
// duplicate file accessions are an upstream invariant violation.
func Select(records []catalog.Record) ([]Entry, error) {
	const op = errors.Op("sample.Select")

	platforms := PlatformIndex(records)

	var entries []Entry
	seen := make(map[string]struct{})
	for _, rec := range records {
		if rec.OutputType != catalog.OutputReads || rec.Status != catalog.StatusReleased {
			continue
		}
		if _, dup := seen[rec.File]; dup {
			return nil, errors.E(op, errors.KindValidation,
				fmt.Sprintf("duplicate reads accession %s after filtering", rec.File))
		}
		seen[rec.File] = struct{}{}

		platform, ok := platforms[rec.Experiment]
		if !ok {
			platform = PlatformUnknown
		}

		entries = append(entries, Entry{
			Experiment:         rec.Experiment,
			Reads:              rec.File,
			TermName:           rec.TermName,
			BiosampleType:      rec.BiosampleType,
			TechnicalReplicate: rec.TechnicalReplicate,
			Platform:           platform,
		})
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if a.BiosampleType != b.BiosampleType {
			return a.BiosampleType < b.BiosampleType
		}
		if a.TermName != b.TermName {
			return a.TermName < b.TermName
		}
		return a.TechnicalReplicate < b.TechnicalReplicate
	})

	return entries, nil
}
