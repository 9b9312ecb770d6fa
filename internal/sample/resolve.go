package sample

import (
	"github.com/HerwigLab/IsoTools2/internal/catalog"
)

// AlignmentIndex maps experiment accessions to their alignment file
// accession. If an experiment unexpectedly carries more than one
// alignments record the last one wins; this mirrors the original
// key-overwriting lookup and is not defended against further.
func AlignmentIndex(records []catalog.Record) map[string]string {
	index := make(map[string]string)
	for _, rec := range records {
		if rec.OutputType == catalog.OutputAlignments {
			index[rec.Experiment] = rec.File
		}
	}
	return index
}

// Resolve fills the alignment accession on every entry from the
// experiment-to-alignment index. An experiment with a reads record but
// no alignments record keeps an empty Alignment field; the returned
// count reports how many links were missing so the caller can warn.
// Partial tables are acceptable for exploratory use, so missing links
// never abort the pipeline.
func Resolve(records []catalog.Record, entries []Entry) ([]Entry, int) {
	index := AlignmentIndex(records)

	resolved := make([]Entry, len(entries))
	missing := 0
	for i, e := range entries {
		e.Alignment = index[e.Experiment]
		if e.Alignment == "" {
			missing++
		}
		resolved[i] = e
	}
	return resolved, missing
}
