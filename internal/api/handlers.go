package api

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/HerwigLab/IsoTools2/internal/manifest"
)

const defaultSearchLimit = 100

// handleListRecords returns all stored catalog records.
func (s *Server) handleListRecords(w http.ResponseWriter, r *http.Request) {
	records, err := s.db.Records()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(records),
		"records": records,
	})
}

// handleGetRecord returns a single record by file accession.
func (s *Server) handleGetRecord(w http.ResponseWriter, r *http.Request) {
	accession := mux.Vars(r)["accession"]

	record, err := s.db.RecordByFile(accession)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			s.writeError(w, http.StatusNotFound, "record not found: "+accession)
			return
		}
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, record)
}

// handleListSamples returns the selected and named samples in manifest order.
func (s *Server) handleListSamples(w http.ResponseWriter, r *http.Request) {
	samples, err := s.db.Samples()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total":   len(samples),
		"samples": samples,
	})
}

// handleManifest renders the sample manifest as tab-separated text, the
// same bytes the manifest command writes to disk.
func (s *Server) handleManifest(w http.ResponseWriter, r *http.Request) {
	samples, err := s.db.Samples()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "text/tab-separated-values")
	w.WriteHeader(http.StatusOK)
	if err := manifest.WriteTo(w, samples); err != nil {
		// Headers already sent, response is truncated.
		return
	}
}

// handleGetStats returns database statistics.
func (s *Server) handleGetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := s.db.Stats()
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, stats)
}

// handleSearch performs a full-text search over indexed records.
// Query parameters: q (query string), limit, plus optional exact-match
// filters platform, biosample_type, output_type, status.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	if s.index == nil {
		s.writeError(w, http.StatusNotImplemented, "search index not configured")
		return
	}

	q := r.URL.Query().Get("q")
	limit := defaultSearchLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			s.writeError(w, http.StatusBadRequest, "invalid limit: "+v)
			return
		}
		limit = n
	}

	filters := make(map[string]string)
	for _, field := range []string{"platform", "biosample_type", "output_type", "status"} {
		if v := r.URL.Query().Get(field); v != "" {
			filters[field] = v
		}
	}

	if q == "" && len(filters) == 0 {
		s.writeError(w, http.StatusBadRequest, "missing query parameter: q")
		return
	}

	results, err := s.index.SearchWithFilters(q, filters, limit)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	hits := make([]map[string]interface{}, 0, len(results.Hits))
	for _, hit := range results.Hits {
		hits = append(hits, map[string]interface{}{
			"id":     hit.ID,
			"score":  hit.Score,
			"fields": hit.Fields,
		})
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"total": results.Total,
		"hits":  hits,
	})
}
