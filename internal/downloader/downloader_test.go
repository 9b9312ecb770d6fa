package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HerwigLab/IsoTools2/internal/errors"
)

func TestFileURL(t *testing.T) {
	d := New(Config{BaseURL: "https://www.encodeproject.org"})
	got := d.FileURL("ENCFF001AAA", "ENCFF001AAA.bam")
	want := "https://www.encodeproject.org/files/ENCFF001AAA/@@download/ENCFF001AAA.bam"
	if got != want {
		t.Errorf("FileURL = %q, want %q", got, want)
	}
}

func TestDownload(t *testing.T) {
	payload := []byte("fake bam content")
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(payload)
	}))
	defer server.Close()

	dir := t.TempDir()
	d := New(Config{BaseURL: server.URL, OutputDir: dir})

	result, err := d.Download(context.Background(), "ENCFF001AAA", "ENCFF001AAA.bam", "")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if result.Skipped {
		t.Error("fresh download reported as skipped")
	}
	if result.Size != int64(len(payload)) {
		t.Errorf("Size = %d, want %d", result.Size, len(payload))
	}

	data, err := os.ReadFile(result.Path)
	if err != nil {
		t.Fatalf("reading downloaded file: %v", err)
	}
	if string(data) != string(payload) {
		t.Errorf("downloaded content = %q, want %q", data, payload)
	}

	// No leftover temporary file.
	if _, err := os.Stat(result.Path + ".tmp"); !os.IsNotExist(err) {
		t.Error("temporary file left behind after download")
	}
}

func TestDownloadSkipsExisting(t *testing.T) {
	dir := t.TempDir()
	existing := filepath.Join(dir, "ENCFF001AAA.bam")
	if err := os.WriteFile(existing, []byte("already here"), 0644); err != nil {
		t.Fatal(err)
	}

	// Server that fails the test if contacted.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Error("server contacted for an existing file")
	}))
	defer server.Close()

	d := New(Config{BaseURL: server.URL, OutputDir: dir})
	result, err := d.Download(context.Background(), "ENCFF001AAA", "ENCFF001AAA.bam", "")
	if err != nil {
		t.Fatalf("Download failed: %v", err)
	}
	if !result.Skipped {
		t.Error("existing file not reported as skipped")
	}
	if result.Size != int64(len("already here")) {
		t.Errorf("Size = %d, want %d", result.Size, len("already here"))
	}
}

func TestDownloadDryRun(t *testing.T) {
	dir := t.TempDir()
	d := New(Config{BaseURL: "https://example.invalid", OutputDir: dir, DryRun: true})

	result, err := d.Download(context.Background(), "ENCFF001AAA", "ENCFF001AAA.bam", "")
	if err != nil {
		t.Fatalf("dry-run Download failed: %v", err)
	}
	if _, err := os.Stat(result.Path); !os.IsNotExist(err) {
		t.Error("dry run wrote a file")
	}
}

func TestDownloadServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "upstream broken", http.StatusBadGateway)
	}))
	defer server.Close()

	dir := t.TempDir()
	d := New(Config{BaseURL: server.URL, OutputDir: dir})

	_, err := d.Download(context.Background(), "ENCFF001AAA", "ENCFF001AAA.bam", "")
	if err == nil {
		t.Fatal("expected error for HTTP 502")
	}
	if !errors.IsKind(err, errors.KindNetwork) {
		t.Errorf("error kind = %v, want network", errors.GetKind(err))
	}
	// No partial output left behind.
	if _, statErr := os.Stat(filepath.Join(dir, "ENCFF001AAA.bam")); !os.IsNotExist(statErr) {
		t.Error("failed download left an output file")
	}
}

func TestNeedsIndex(t *testing.T) {
	dir := t.TempDir()
	bam := filepath.Join(dir, "sample.bam")
	if err := os.WriteFile(bam, []byte("bam"), 0644); err != nil {
		t.Fatal(err)
	}

	// No index yet.
	needed, err := NeedsIndex(bam)
	if err != nil {
		t.Fatalf("NeedsIndex: %v", err)
	}
	if !needed {
		t.Error("missing index not reported as needing indexing")
	}

	// Fresh index, newer than the data file.
	bai := bam + ".bai"
	if err := os.WriteFile(bai, []byte("bai"), 0644); err != nil {
		t.Fatal(err)
	}
	future := time.Now().Add(time.Hour)
	if err := os.Chtimes(bai, future, future); err != nil {
		t.Fatal(err)
	}
	needed, err = NeedsIndex(bam)
	if err != nil {
		t.Fatalf("NeedsIndex: %v", err)
	}
	if needed {
		t.Error("fresh index reported as stale")
	}

	// Stale index, older than the data file.
	past := time.Now().Add(-time.Hour)
	if err := os.Chtimes(bai, past, past); err != nil {
		t.Fatal(err)
	}
	needed, err = NeedsIndex(bam)
	if err != nil {
		t.Fatalf("NeedsIndex: %v", err)
	}
	if !needed {
		t.Error("stale index not reported as needing indexing")
	}
}

func TestNeedsIndexMissingData(t *testing.T) {
	_, err := NeedsIndex(filepath.Join(t.TempDir(), "missing.bam"))
	if err == nil {
		t.Fatal("expected error for missing data file")
	}
	if !errors.IsKind(err, errors.KindIO) {
		t.Errorf("error kind = %v, want io", errors.GetKind(err))
	}
}
