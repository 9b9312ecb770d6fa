package store

import (
	"path/filepath"
	"reflect"
	"testing"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
	"github.com/HerwigLab/IsoTools2/internal/sample"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Initialize(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("failed to initialize database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testRecords() []catalog.Record {
	return []catalog.Record{
		{
			Experiment: "ENCSR000AAA", File: "ENCFF000AA1",
			OutputType: catalog.OutputReads, Status: catalog.StatusReleased,
			TermName: "K562", BiosampleType: "cell line",
			TechnicalReplicate: "1_1", Platform: "Pacific Biosciences Sequel II",
		},
		{
			Experiment: "ENCSR000AAA", File: "ENCFF000AA2",
			OutputType: catalog.OutputAlignments, Status: catalog.StatusReleased,
			TermName: "K562", BiosampleType: "cell line", TechnicalReplicate: "1_1",
		},
	}
}

func TestReplaceAndQueryRecords(t *testing.T) {
	db := testDB(t)

	if err := db.ReplaceRecords(testRecords()); err != nil {
		t.Fatalf("ReplaceRecords failed: %v", err)
	}

	records, err := db.Records()
	if err != nil {
		t.Fatalf("Records failed: %v", err)
	}
	if !reflect.DeepEqual(records, testRecords()) {
		t.Errorf("records round trip mismatch:\n got %+v\nwant %+v", records, testRecords())
	}
}

func TestReplaceRecordsSupersedes(t *testing.T) {
	db := testDB(t)

	if err := db.ReplaceRecords(testRecords()); err != nil {
		t.Fatal(err)
	}
	// A second fetch replaces everything
	if err := db.ReplaceRecords(testRecords()[:1]); err != nil {
		t.Fatal(err)
	}

	records, err := db.Records()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 1 {
		t.Errorf("expected 1 record after replace, got %d", len(records))
	}
}

func TestRecordByFile(t *testing.T) {
	db := testDB(t)
	if err := db.ReplaceRecords(testRecords()); err != nil {
		t.Fatal(err)
	}

	rec, err := db.RecordByFile("ENCFF000AA1")
	if err != nil {
		t.Fatalf("RecordByFile failed: %v", err)
	}
	if rec.Experiment != "ENCSR000AAA" {
		t.Errorf("unexpected experiment %q", rec.Experiment)
	}

	if _, err := db.RecordByFile("ENCFF404404"); err == nil {
		t.Error("expected error for unknown accession")
	}
}

func TestSamplesRoundTripPreservesOrderAndNull(t *testing.T) {
	db := testDB(t)

	samples := []sample.Named{
		{
			Entry: sample.Entry{
				Experiment: "E1", Reads: "F1", Alignment: "A1",
				TermName: "K562", BiosampleType: "cell line",
				TechnicalReplicate: "1_1", Platform: "PacBio",
			},
			SampleName: "K562_a", FileName: "F1_aligned.bam", Group: "K562",
		},
		{
			Entry: sample.Entry{
				Experiment: "E2", Reads: "F2",
				TermName: "GM12878", BiosampleType: "cell line",
				TechnicalReplicate: "1_1", Platform: "unknown",
			},
			SampleName: "GM12878_a", FileName: "F2_aligned.bam", Group: "GM12878",
		},
	}

	if err := db.ReplaceSamples(samples); err != nil {
		t.Fatalf("ReplaceSamples failed: %v", err)
	}

	got, err := db.Samples()
	if err != nil {
		t.Fatalf("Samples failed: %v", err)
	}
	if !reflect.DeepEqual(got, samples) {
		t.Errorf("samples round trip mismatch:\n got %+v\nwant %+v", got, samples)
	}
	// The missing link survives as an empty field, not a sentinel string
	if got[1].HasAlignment() {
		t.Errorf("expected empty alignment, got %q", got[1].Alignment)
	}
}

func TestStats(t *testing.T) {
	db := testDB(t)

	if err := db.ReplaceRecords(testRecords()); err != nil {
		t.Fatal(err)
	}
	samples := []sample.Named{
		{Entry: sample.Entry{Experiment: "E1", Reads: "F1"},
			SampleName: "K562_a", FileName: "F1_aligned.bam", Group: "K562"},
	}
	if err := db.ReplaceSamples(samples); err != nil {
		t.Fatal(err)
	}

	stats, err := db.Stats()
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Records != 2 {
		t.Errorf("expected 2 records, got %d", stats.Records)
	}
	if stats.ReadsRecords != 1 {
		t.Errorf("expected 1 reads record, got %d", stats.ReadsRecords)
	}
	if stats.AlignmentRecords != 1 {
		t.Errorf("expected 1 alignment record, got %d", stats.AlignmentRecords)
	}
	if stats.Samples != 1 {
		t.Errorf("expected 1 sample, got %d", stats.Samples)
	}
	if stats.MissingLinks != 1 {
		t.Errorf("expected 1 missing link, got %d", stats.MissingLinks)
	}
}
