// Package api exposes the record and sample store over a JSON HTTP API.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/HerwigLab/IsoTools2/internal/search"
	"github.com/HerwigLab/IsoTools2/internal/store"
)

// Server represents the HTTP API server
type Server struct {
	router *mux.Router
	server *http.Server
	db     *store.DB
	index  *search.Index // nil when search is disabled
}

// Config holds server configuration
type Config struct {
	Host         string
	Port         int
	DatabasePath string
	IndexPath    string // empty disables the search endpoint
	EnableCORS   bool
}

// NewServer creates a new API server instance
func NewServer(cfg *Config) (*Server, error) {
	db, err := store.Initialize(cfg.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	var index *search.Index
	if cfg.IndexPath != "" {
		index, err = search.Open(cfg.IndexPath)
		if err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to open search index: %w", err)
		}
	}

	s := &Server{
		router: mux.NewRouter(),
		db:     db,
		index:  index,
	}

	s.setupRoutes()

	if cfg.EnableCORS {
		s.router.Use(corsMiddleware)
	}
	s.router.Use(loggingMiddleware)
	s.router.Use(jsonMiddleware)

	s.server = &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// setupRoutes configures all API routes
func (s *Server) setupRoutes() {
	api := s.router.PathPrefix("/api/v1").Subrouter()

	api.HandleFunc("/records", s.handleListRecords).Methods("GET")
	api.HandleFunc("/records/{accession}", s.handleGetRecord).Methods("GET")
	api.HandleFunc("/samples", s.handleListSamples).Methods("GET")
	api.HandleFunc("/manifest", s.handleManifest).Methods("GET")
	api.HandleFunc("/stats", s.handleGetStats).Methods("GET")
	api.HandleFunc("/search", s.handleSearch).Methods("GET")
	api.HandleFunc("/health", s.handleHealth).Methods("GET")

	s.router.HandleFunc("/", s.handleRoot).Methods("GET")
}

// Start starts the HTTP server
func (s *Server) Start() error {
	log.Printf("Starting API server on %s", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	log.Println("Shutting down API server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return err
	}
	if s.index != nil {
		if err := s.index.Close(); err != nil {
			return err
		}
	}
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// Middleware functions

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.RequestURI, time.Since(start))
	})
}

func jsonMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		next.ServeHTTP(w, r)
	})
}

// Helper functions

func (s *Server) writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]interface{}{
		"error":   true,
		"message": message,
		"status":  status,
	})
}

// handleRoot returns API information
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	info := map[string]interface{}{
		"name":        "isoprep API",
		"version":     "1.0.0",
		"description": "Demonstration dataset assembly API",
		"endpoints": map[string]string{
			"records":  "/api/v1/records",
			"samples":  "/api/v1/samples",
			"manifest": "/api/v1/manifest",
			"stats":    "/api/v1/stats",
			"search":   "/api/v1/search",
			"health":   "/api/v1/health",
		},
	}
	s.writeJSON(w, http.StatusOK, info)
}

// handleHealth returns health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	health := map[string]interface{}{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	}

	if _, err := s.db.Stats(); err != nil {
		health["status"] = "unhealthy"
		health["database"] = err.Error()
	} else {
		health["database"] = "healthy"
	}

	if s.index == nil {
		health["search"] = "disabled"
	} else if _, err := s.index.DocCount(); err != nil {
		health["status"] = "unhealthy"
		health["search"] = err.Error()
	} else {
		health["search"] = "healthy"
	}

	status := http.StatusOK
	if health["status"] != "healthy" {
		status = http.StatusServiceUnavailable
	}
	s.writeJSON(w, status, health)
}
