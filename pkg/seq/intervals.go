package seq

import "sort"

// HasOverlap reports whether two intervals share at least one base.
func HasOverlap(a, b Interval) bool {
	return a.End > b.Start && b.End > a.Start
}

// Overlap returns the number of shared bases of two intervals, zero if
// they are disjoint.
func Overlap(a, b Interval) int {
	ol := min(a.End, b.End) - max(a.Start, b.Start)
	if ol < 0 {
		return 0
	}
	return ol
}

// IntervalDist returns the gap between two intervals; negative values
// indicate overlap.
func IntervalDist(a, b Interval) int {
	return max(a.Start, b.Start) - min(a.End, b.End)
}

// SpliceIdentical reports whether two exon chains share all internal
// splice sites. Terminal exon boundaries may differ by up to tolerance
// bases. Single-exon transcripts compare by overlap alone.
func SpliceIdentical(a, b []Interval, tolerance int) bool {
	if len(a) != len(b) {
		return false
	}
	if len(a) == 0 {
		return false
	}
	if len(a) == 1 {
		return HasOverlap(a[0], b[0])
	}
	if abs(a[0].Start-b[0].Start) > tolerance || abs(a[len(a)-1].End-b[len(b)-1].End) > tolerance {
		return false
	}
	if a[0].End != b[0].End || a[len(a)-1].Start != b[len(b)-1].Start {
		return false
	}
	for i := 1; i < len(a)-1; i++ {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// CmpDist compares two positions with a minimum distance below which
// they are considered equal. Returns 1 if a is at least minDist beyond
// b, -1 for the converse, 0 otherwise.
func CmpDist(a, b, minDist int) int {
	switch {
	case a >= b+minDist:
		return 1
	case b >= a+minDist:
		return -1
	default:
		return 0
	}
}

// WeightedPos is a position with an associated weight, typically read
// coverage at that position.
type WeightedPos struct {
	Pos    int
	Weight int
}

// Quantiles returns, for each requested percentile in (0, 1], the
// smallest position at which the cumulative weight reaches that share
// of the total. Percentiles must be sorted ascending. Returns false
// when the total weight is zero.
func Quantiles(pos []WeightedPos, percentiles []float64) ([]int, bool) {
	total := 0
	for _, p := range pos {
		total += p.Weight
	}
	if total == 0 || len(percentiles) == 0 {
		return nil, false
	}
	sorted := make([]WeightedPos, len(pos))
	copy(sorted, pos)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Pos < sorted[j].Pos })

	result := make([]int, 0, len(percentiles))
	n := 0
	for _, p := range sorted {
		n += p.Weight
		for float64(n) >= float64(total)*percentiles[len(result)] {
			result = append(result, p.Pos)
			if len(result) == len(percentiles) {
				return result, true
			}
		}
	}
	return nil, false
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
