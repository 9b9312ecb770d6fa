// Package qc computes summary statistics over SAM alignment text.
// It scans records line by line, so large files never load into memory.
// Binary BAM decoding stays with external tools; convert first with
// samtools view when needed.
package qc

import (
	"bufio"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"

	"github.com/HerwigLab/IsoTools2/internal/errors"
	"github.com/HerwigLab/IsoTools2/pkg/seq"
)

const (
	flagUnmapped  = 0x4
	flagSecondary = 0x100
)

// Stats summarizes a scanned alignment stream.
type Stats struct {
	Path         string
	Records      int // mapped primary alignments
	Spliced      int // alignments with at least one junction
	Junctions    int // total junction count
	Unmapped     int
	Secondary    int
	Skipped      int // malformed records
	LengthMedian int // aligned reference span, median
	LengthQ1     int
	LengthQ3     int
	MaxExons     int
	ErrorRate    float64 // mean base error probability from QUAL, percent
	QualRecords  int     // records contributing to ErrorRate
}

// Scanner reads SAM records and accumulates statistics.
type Scanner struct {
	MaxRecords int // stop after this many mapped records; 0 means all
}

// ScanFile scans a SAM file on disk.
func (s *Scanner) ScanFile(path string) (*Stats, error) {
	const op = errors.Op("qc.ScanFile")

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}
	defer f.Close()

	stats, err := s.Scan(f)
	if err != nil {
		return nil, errors.Wrap(op, err)
	}
	stats.Path = path
	return stats, nil
}

// Scan scans SAM text from a reader. Header lines are ignored.
// Malformed records are counted and skipped, never fatal.
func (s *Scanner) Scan(r io.Reader) (*Stats, error) {
	const op = errors.Op("qc.Scan")

	stats := &Stats{}
	var lengths []seq.WeightedPos
	var errSum float64
	var baseCount int

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 64*1024), 16*1024*1024)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" || strings.HasPrefix(line, "@") {
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < 11 {
			stats.Skipped++
			continue
		}

		flag, err := strconv.Atoi(fields[1])
		if err != nil {
			stats.Skipped++
			continue
		}
		if flag&flagUnmapped != 0 {
			stats.Unmapped++
			continue
		}
		if flag&flagSecondary != 0 {
			stats.Secondary++
			continue
		}

		pos, err := strconv.Atoi(fields[3])
		if err != nil || pos < 1 {
			stats.Skipped++
			continue
		}
		ops, err := seq.ParseCigar(fields[5])
		if err != nil || ops == nil {
			stats.Skipped++
			continue
		}

		// SAM POS is 1-based.
		exons := seq.ExonsFromCigar(ops, pos-1)
		if len(exons) == 0 {
			stats.Skipped++
			continue
		}

		stats.Records++
		if len(exons) > stats.MaxExons {
			stats.MaxExons = len(exons)
		}
		if n := len(exons) - 1; n > 0 {
			stats.Spliced++
			stats.Junctions += n
		}

		span := exons[len(exons)-1].End - exons[0].Start
		lengths = append(lengths, seq.WeightedPos{Pos: span, Weight: 1})

		if qual := fields[10]; qual != "*" {
			for i := 0; i < len(qual); i++ {
				q := int(qual[i]) - 33
				errSum += phredToProb(q)
			}
			baseCount += len(qual)
			stats.QualRecords++
		}

		if s.MaxRecords > 0 && stats.Records >= s.MaxRecords {
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.E(op, errors.KindIO, err)
	}

	if q, ok := seq.Quantiles(lengths, []float64{0.25, 0.5, 0.75}); ok {
		stats.LengthQ1, stats.LengthMedian, stats.LengthQ3 = q[0], q[1], q[2]
	}
	if baseCount > 0 {
		stats.ErrorRate = errSum / float64(baseCount) * 100
	}
	return stats, nil
}

// phredToProb converts a phred quality score to an error probability.
func phredToProb(q int) float64 {
	if q < 0 {
		q = 0
	}
	return math.Pow(10, -float64(q)/10)
}

// Summary renders the statistics for terminal output.
func (st *Stats) Summary() string {
	var b strings.Builder
	if st.Path != "" {
		fmt.Fprintf(&b, "File:            %s\n", st.Path)
	}
	fmt.Fprintf(&b, "Mapped records:  %d\n", st.Records)
	fmt.Fprintf(&b, "Spliced:         %d (%d junctions)\n", st.Spliced, st.Junctions)
	fmt.Fprintf(&b, "Unmapped:        %d\n", st.Unmapped)
	fmt.Fprintf(&b, "Secondary:       %d\n", st.Secondary)
	fmt.Fprintf(&b, "Skipped:         %d\n", st.Skipped)
	fmt.Fprintf(&b, "Span quartiles:  %d / %d / %d bp\n", st.LengthQ1, st.LengthMedian, st.LengthQ3)
	fmt.Fprintf(&b, "Max exons:       %d\n", st.MaxExons)
	if st.QualRecords > 0 {
		fmt.Fprintf(&b, "Base error rate: %.3f%% (from %d records)\n", st.ErrorRate, st.QualRecords)
	}
	return b.String()
}
