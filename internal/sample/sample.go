// Package sample turns a parsed catalog record set into the validated,
// deterministically named sample table consumed by downstream analysis.
// Each stage produces a new table; nothing is mutated after creation.
package sample

import (
	"github.com/HerwigLab/IsoTools2/internal/catalog"
)

// MissingLink is the sentinel written at serialization boundaries for an
// experiment with no alignments record. Internally the absence is an
// empty Alignment field, so a genuine accession can never collide with
// the sentinel.
const MissingLink = "NA"

// PlatformUnknown is assigned when an experiment has no known platform
// anywhere in the record set.
const PlatformUnknown = "unknown"

// Entry is one selected reads-type record with its resolved alignment.
type Entry struct {
	Experiment         string
	Reads              string // file accession of the reads record
	Alignment          string // alignment accession, empty when absent
	TermName           string // biosample term name
	BiosampleType      string
	TechnicalReplicate string
	Platform           string
}

// HasAlignment reports whether the experiment had a matching alignments
// record.
func (e Entry) HasAlignment() bool {
	return e.Alignment != ""
}

// Named is an Entry extended with its generated sample name, derived
// file name and group.
type Named struct {
	Entry
	SampleName string
	FileName   string
	Group      string
}

// Build runs the full in-memory pipeline: select reads records, resolve
// alignment accessions and assign unique names. The returned count is
// the number of entries with no alignment link. The file tag feeds the
// derived file names (see FileName).
func Build(records []catalog.Record, tag string) ([]Named, int, error) {
	entries, err := Select(records)
	if err != nil {
		return nil, 0, err
	}

	entries, missing := Resolve(records, entries)
	named := AssignNames(entries, tag)
	return named, missing, nil
}
