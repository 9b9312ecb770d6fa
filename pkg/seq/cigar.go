package seq

import (
	"fmt"
	"strings"
)

// CIGAR operation codes, matching the BAM encoding order MIDNSHP=XB.
const (
	OpMatch    = 0 // M
	OpIns      = 1 // I
	OpDel      = 2 // D
	OpRefSkip  = 3 // N, splice junction
	OpSoftClip = 4 // S
	OpHardClip = 5 // H
	OpPad      = 6 // P
	OpEqual    = 7 // =
	OpDiff     = 8 // X
	OpBack     = 9 // B
)

const cigarOps = "MIDNSHP=XB"

// CigarOp is one operation of a CIGAR string.
type CigarOp struct {
	Op  int
	Len int
}

// ParseCigar converts a CIGAR string into its list of operations.
func ParseCigar(s string) ([]CigarOp, error) {
	if s == "" || s == "*" {
		return nil, nil
	}
	var ops []CigarOp
	n := 0
	haveLen := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		if c >= '0' && c <= '9' {
			n = n*10 + int(c-'0')
			haveLen = true
			continue
		}
		op := strings.IndexByte(cigarOps, c)
		if op < 0 {
			return nil, fmt.Errorf("invalid CIGAR operation %q in %q", c, s)
		}
		if !haveLen {
			return nil, fmt.Errorf("CIGAR operation %q without length in %q", c, s)
		}
		ops = append(ops, CigarOp{Op: op, Len: n})
		n = 0
		haveLen = false
	}
	if haveLen {
		return nil, fmt.Errorf("trailing length without operation in %q", s)
	}
	return ops, nil
}

// Interval is a half-open [Start, End) range on the reference.
type Interval struct {
	Start int
	End   int
}

// Len returns the interval length.
func (iv Interval) Len() int { return iv.End - iv.Start }

// ExonsFromCigar reconstructs the exon intervals of a spliced alignment
// starting at the given reference offset. N operations open a new exon;
// M, D, = and X advance the reference. Zero-length exons, which can
// arise from insertions placed inside introns, are dropped.
func ExonsFromCigar(ops []CigarOp, offset int) []Interval {
	exons := []Interval{{Start: offset, End: offset}}
	for _, c := range ops {
		switch c.Op {
		case OpRefSkip:
			pos := exons[len(exons)-1].End + c.Len
			if last := &exons[len(exons)-1]; last.Start == last.End {
				exons = exons[:len(exons)-1]
			}
			exons = append(exons, Interval{Start: pos, End: pos})
		case OpMatch, OpDel, OpEqual, OpDiff:
			exons[len(exons)-1].End += c.Len
		}
	}
	if last := exons[len(exons)-1]; last.Start == last.End {
		exons = exons[:len(exons)-1]
	}
	return exons
}

// Junctions returns the intron intervals between consecutive exons.
func Junctions(exons []Interval) []Interval {
	if len(exons) < 2 {
		return nil
	}
	introns := make([]Interval, 0, len(exons)-1)
	for i := 1; i < len(exons); i++ {
		introns = append(introns, Interval{Start: exons[i-1].End, End: exons[i].Start})
	}
	return introns
}
