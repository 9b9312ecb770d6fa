// Package seq provides small utilities for working with nucleotide
// sequences and spliced alignments: reverse complement, CIGAR parsing,
// exon reconstruction, interval arithmetic and coverage quantiles.
// Intervals are half-open [start, end) in reference coordinates.
package seq

// ReverseComplement returns the reverse complement of a DNA sequence.
// Characters outside ACGT (either case) become 'N'.
func ReverseComplement(s string) string {
	out := make([]byte, len(s))
	for i := 0; i < len(s); i++ {
		out[len(s)-1-i] = complement(s[i])
	}
	return string(out)
}

func complement(b byte) byte {
	switch b {
	case 'A', 'a':
		return 'T'
	case 'T', 't':
		return 'A'
	case 'C', 'c':
		return 'G'
	case 'G', 'g':
		return 'C'
	default:
		return 'N'
	}
}
