// Package testutil provides shared fixtures and helpers for isoprep
// tests: a canonical catalog report payload and file helpers.
package testutil

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// ReportHeader is the column header line of a catalog report.
const ReportHeader = "Experiment\tFile\tOutput type\tFile status\tBiosample term name\tBiosample type\tTechnical replicate\tPlatform\tDownload URL"

// ReportRow formats one report line from its nine cells.
func ReportRow(cells ...string) string {
	return strings.Join(cells, "\t")
}

// SampleReport returns a small catalog report payload: two experiments,
// one with a released alignment, both with released reads.
func SampleReport() string {
	return strings.Join([]string{
		ReportHeader,
		ReportRow("ENCSR000AAA", "ENCFF001AAA", "reads", "released",
			"GM12878", "cell line", "1_1", "Pacific Biosciences Sequel II", ""),
		ReportRow("ENCSR000AAA", "ENCFF002AAA", "alignments", "released",
			"GM12878", "cell line", "1_1", "", ""),
		ReportRow("ENCSR000BBB", "ENCFF003BBB", "reads", "released",
			"heart left ventricle", "tissue", "1_1", "Oxford Nanopore PromethION", ""),
	}, "\n") + "\n"
}

// CatalogServer starts a test HTTP server that answers every request
// with the given report payload.
func CatalogServer(t *testing.T, payload string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/tsv")
		w.Write([]byte(payload))
	}))
	t.Cleanup(server.Close)
	return server
}

// WriteTempFile writes content to a file in a fresh temp directory and
// returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write temp file: %v", err)
	}
	return path
}
