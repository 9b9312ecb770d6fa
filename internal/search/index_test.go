package search

import (
	"path/filepath"
	"testing"

	"github.com/HerwigLab/IsoTools2/internal/catalog"
)

func testRecords() []catalog.Record {
	return []catalog.Record{
		{
			File:               "ENCFF001AAA",
			Experiment:         "ENCSR000AAA",
			OutputType:         catalog.OutputReads,
			Status:             catalog.StatusReleased,
			TermName:           "GM12878",
			BiosampleType:      "cell line",
			TechnicalReplicate: "1_1",
			Platform:           "Pacific Biosciences Sequel II",
		},
		{
			File:               "ENCFF002AAA",
			Experiment:         "ENCSR000AAA",
			OutputType:         catalog.OutputAlignments,
			Status:             catalog.StatusReleased,
			TermName:           "GM12878",
			BiosampleType:      "cell line",
			TechnicalReplicate: "1_1",
			Platform:           "Pacific Biosciences Sequel II",
		},
		{
			File:               "ENCFF003BBB",
			Experiment:         "ENCSR000BBB",
			OutputType:         catalog.OutputReads,
			Status:             catalog.StatusReleased,
			TermName:           "heart left ventricle",
			BiosampleType:      "tissue",
			TechnicalReplicate: "1_1",
			Platform:           "Oxford Nanopore PromethION",
		},
	}
}

func testIndex(t *testing.T) *Index {
	t.Helper()
	index, err := Open(filepath.Join(t.TempDir(), "test.bleve"))
	if err != nil {
		t.Fatalf("Failed to open index: %v", err)
	}
	t.Cleanup(func() { index.Close() })
	return index
}

func TestIndexAndSearch(t *testing.T) {
	index := testIndex(t)

	if err := index.IndexRecords(testRecords(), 2); err != nil {
		t.Fatalf("IndexRecords: %v", err)
	}

	count, err := index.DocCount()
	if err != nil {
		t.Fatalf("DocCount: %v", err)
	}
	if count != 3 {
		t.Errorf("DocCount = %d, want 3", count)
	}

	results, err := index.Search("heart", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if results.Total != 1 {
		t.Errorf("Search(heart) total = %d, want 1", results.Total)
	}
	if len(results.Hits) == 1 && results.Hits[0].ID != "ENCFF003BBB" {
		t.Errorf("Search(heart) hit = %s, want ENCFF003BBB", results.Hits[0].ID)
	}

	// Exact accession match through the keyword-analyzed field.
	results, err = index.SearchWithFilters("", map[string]string{"file": "ENCFF001AAA"}, 10)
	if err != nil {
		t.Fatalf("SearchWithFilters failed: %v", err)
	}
	if results.Total != 1 {
		t.Errorf("accession filter total = %d, want 1", results.Total)
	}
}

func TestSearchFacets(t *testing.T) {
	index := testIndex(t)
	if err := index.IndexRecords(testRecords(), 0); err != nil {
		t.Fatalf("IndexRecords: %v", err)
	}

	results, err := index.Search("GM12878", 10)
	if err != nil {
		t.Fatalf("Search failed: %v", err)
	}
	if _, ok := results.Facets["biosample_type"]; !ok {
		t.Error("missing biosample_type facet")
	}
	if _, ok := results.Facets["platform"]; !ok {
		t.Error("missing platform facet")
	}
}

func TestSearchWithFilters(t *testing.T) {
	index := testIndex(t)
	if err := index.IndexRecords(testRecords(), 0); err != nil {
		t.Fatalf("IndexRecords: %v", err)
	}

	// Filter only: released reads.
	results, err := index.SearchWithFilters("", map[string]string{
		"output_type": catalog.OutputReads,
	}, 10)
	if err != nil {
		t.Fatalf("SearchWithFilters: %v", err)
	}
	if results.Total != 2 {
		t.Errorf("reads filter total = %d, want 2", results.Total)
	}

	// Query combined with filter.
	results, err = index.SearchWithFilters("GM12878", map[string]string{
		"output_type": catalog.OutputAlignments,
	}, 10)
	if err != nil {
		t.Fatalf("SearchWithFilters: %v", err)
	}
	if results.Total != 1 {
		t.Errorf("combined filter total = %d, want 1", results.Total)
	}

	// No query, no filters: match all.
	results, err = index.SearchWithFilters("", nil, 10)
	if err != nil {
		t.Fatalf("SearchWithFilters: %v", err)
	}
	if results.Total != 3 {
		t.Errorf("match-all total = %d, want 3", results.Total)
	}
}

func TestReindexReplaces(t *testing.T) {
	index := testIndex(t)

	records := testRecords()
	if err := index.IndexRecords(records, 0); err != nil {
		t.Fatal(err)
	}
	// Same accessions again, updated content.
	records[0].TermName = "K562"
	if err := index.IndexRecords(records, 0); err != nil {
		t.Fatal(err)
	}
	count, err := index.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 3 {
		t.Errorf("DocCount after reindex = %d, want 3", count)
	}
}

func TestDelete(t *testing.T) {
	index := testIndex(t)
	if err := index.IndexRecords(testRecords(), 0); err != nil {
		t.Fatal(err)
	}
	if err := index.Delete("ENCFF001AAA"); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	count, err := index.DocCount()
	if err != nil {
		t.Fatal(err)
	}
	if count != 2 {
		t.Errorf("DocCount after delete = %d, want 2", count)
	}
}
