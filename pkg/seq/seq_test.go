package seq

import (
	"reflect"
	"testing"
)

func TestReverseComplement(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"", ""},
		{"A", "T"},
		{"ACGT", "ACGT"},
		{"AACCGGTT", "AACCGGTT"},
		{"ATGC", "GCAT"},
		{"ATNGC", "GCNAT"},
		{"atgc", "GCAT"},
	}
	for _, tt := range tests {
		if got := ReverseComplement(tt.in); got != tt.want {
			t.Errorf("ReverseComplement(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseCigar(t *testing.T) {
	got, err := ParseCigar("10M100N20M5S")
	if err != nil {
		t.Fatalf("ParseCigar: %v", err)
	}
	want := []CigarOp{
		{Op: OpMatch, Len: 10},
		{Op: OpRefSkip, Len: 100},
		{Op: OpMatch, Len: 20},
		{Op: OpSoftClip, Len: 5},
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseCigar = %v, want %v", got, want)
	}
}

func TestParseCigarUnmapped(t *testing.T) {
	for _, s := range []string{"", "*"} {
		ops, err := ParseCigar(s)
		if err != nil {
			t.Errorf("ParseCigar(%q): %v", s, err)
		}
		if ops != nil {
			t.Errorf("ParseCigar(%q) = %v, want nil", s, ops)
		}
	}
}

func TestParseCigarInvalid(t *testing.T) {
	for _, s := range []string{"10Z", "M", "10M5"} {
		if _, err := ParseCigar(s); err == nil {
			t.Errorf("ParseCigar(%q): expected error", s)
		}
	}
}

func TestExonsFromCigar(t *testing.T) {
	ops, err := ParseCigar("10M100N20M")
	if err != nil {
		t.Fatal(err)
	}
	got := ExonsFromCigar(ops, 1000)
	want := []Interval{{1000, 1010}, {1110, 1130}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExonsFromCigar = %v, want %v", got, want)
	}
}

func TestExonsFromCigarInsertionInIntron(t *testing.T) {
	// An insertion between two reference skips must not produce a
	// zero-length exon: the two skips merge into one junction.
	ops, err := ParseCigar("10M100N10I100N10M")
	if err != nil {
		t.Fatal(err)
	}
	got := ExonsFromCigar(ops, 0)
	want := []Interval{{0, 10}, {210, 220}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExonsFromCigar = %v, want %v", got, want)
	}
}

func TestExonsFromCigarTrailingSkip(t *testing.T) {
	ops, err := ParseCigar("10M50N")
	if err != nil {
		t.Fatal(err)
	}
	got := ExonsFromCigar(ops, 0)
	want := []Interval{{0, 10}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ExonsFromCigar = %v, want %v", got, want)
	}
}

func TestJunctions(t *testing.T) {
	exons := []Interval{{0, 10}, {110, 130}, {200, 250}}
	got := Junctions(exons)
	want := []Interval{{10, 110}, {130, 200}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Junctions = %v, want %v", got, want)
	}
	if Junctions(exons[:1]) != nil {
		t.Error("single exon should have no junctions")
	}
}

func TestOverlap(t *testing.T) {
	a := Interval{100, 200}
	tests := []struct {
		b       Interval
		overlap int
	}{
		{Interval{150, 250}, 50},
		{Interval{200, 300}, 0},
		{Interval{0, 100}, 0},
		{Interval{100, 200}, 100},
		{Interval{120, 130}, 10},
	}
	for _, tt := range tests {
		if got := Overlap(a, tt.b); got != tt.overlap {
			t.Errorf("Overlap(%v, %v) = %d, want %d", a, tt.b, got, tt.overlap)
		}
		if got := HasOverlap(a, tt.b); got != (tt.overlap > 0) {
			t.Errorf("HasOverlap(%v, %v) = %v, want %v", a, tt.b, got, tt.overlap > 0)
		}
	}
}

func TestIntervalDist(t *testing.T) {
	if d := IntervalDist(Interval{0, 10}, Interval{20, 30}); d != 10 {
		t.Errorf("IntervalDist disjoint = %d, want 10", d)
	}
	if d := IntervalDist(Interval{0, 10}, Interval{5, 30}); d != -5 {
		t.Errorf("IntervalDist overlapping = %d, want -5", d)
	}
}

func TestSpliceIdentical(t *testing.T) {
	a := []Interval{{100, 200}, {300, 400}, {500, 600}}

	identical := []Interval{{100, 200}, {300, 400}, {500, 600}}
	if !SpliceIdentical(a, identical, 0) {
		t.Error("identical chains not recognized")
	}

	// Shifted terminal boundaries within tolerance.
	shifted := []Interval{{95, 200}, {300, 400}, {500, 605}}
	if !SpliceIdentical(a, shifted, 10) {
		t.Error("terminal shift within tolerance rejected")
	}
	if SpliceIdentical(a, shifted, 3) {
		t.Error("terminal shift beyond tolerance accepted")
	}

	// Different internal splice site.
	internal := []Interval{{100, 200}, {310, 400}, {500, 600}}
	if SpliceIdentical(a, internal, 100) {
		t.Error("differing internal splice site accepted")
	}

	// Different exon count.
	if SpliceIdentical(a, a[:2], 100) {
		t.Error("differing exon counts accepted")
	}

	// Single exon: overlap is enough.
	if !SpliceIdentical([]Interval{{100, 200}}, []Interval{{150, 300}}, 0) {
		t.Error("overlapping single exons rejected")
	}
	if SpliceIdentical([]Interval{{100, 200}}, []Interval{{300, 400}}, 0) {
		t.Error("disjoint single exons accepted")
	}
}

func TestCmpDist(t *testing.T) {
	tests := []struct {
		a, b, minDist, want int
	}{
		{10, 5, 3, 1},
		{5, 10, 3, -1},
		{10, 8, 3, 0},
		{8, 10, 3, 0},
		{10, 10, 3, 0},
		{10, 9, 1, 1},
	}
	for _, tt := range tests {
		if got := CmpDist(tt.a, tt.b, tt.minDist); got != tt.want {
			t.Errorf("CmpDist(%d, %d, %d) = %d, want %d", tt.a, tt.b, tt.minDist, got, tt.want)
		}
	}
}

func TestQuantiles(t *testing.T) {
	pos := []WeightedPos{
		{Pos: 100, Weight: 1},
		{Pos: 200, Weight: 2},
		{Pos: 300, Weight: 1},
	}
	got, ok := Quantiles(pos, []float64{0.5})
	if !ok {
		t.Fatal("Quantiles reported no result")
	}
	if len(got) != 1 || got[0] != 200 {
		t.Errorf("median = %v, want [200]", got)
	}

	// Unsorted input is handled.
	got, ok = Quantiles([]WeightedPos{{300, 1}, {100, 1}, {200, 2}}, []float64{0.25, 0.5, 1})
	if !ok {
		t.Fatal("Quantiles reported no result")
	}
	want := []int{100, 200, 300}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("quartiles = %v, want %v", got, want)
	}

	if _, ok := Quantiles(nil, []float64{0.5}); ok {
		t.Error("empty input should report no result")
	}
	if _, ok := Quantiles([]WeightedPos{{100, 0}}, []float64{0.5}); ok {
		t.Error("zero total weight should report no result")
	}
}
