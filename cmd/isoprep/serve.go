package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/api"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the JSON API server",
	Long: `Serve the stored records, samples and manifest over a JSON HTTP API.

Endpoints:
  /api/v1/records    fetched catalog records
  /api/v1/samples    assembled sample table
  /api/v1/manifest   the manifest as TSV
  /api/v1/search     full-text search (when enabled)
  /api/v1/stats      store statistics`,
	Example: `  isoprep serve
  isoprep serve --port 3000 --host 0.0.0.0`,
	RunE: runServe,
}

var (
	servePort int
	serveHost string
	serveCORS bool
)

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
	serveCmd.Flags().StringVar(&serveHost, "host", "localhost", "Host to bind to")
	serveCmd.Flags().BoolVar(&serveCORS, "enable-cors", true, "Enable CORS for web access")
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if _, err := os.Stat(cfg.Database.Path); os.IsNotExist(err) {
		printError("Database not found at %s", cfg.Database.Path)
		fmt.Fprintf(os.Stderr, "\nFetch the catalog first:\n  isoprep fetch\n")
		return fmt.Errorf("database not found")
	}

	serverCfg := &api.Config{
		Host:         serveHost,
		Port:         servePort,
		DatabasePath: cfg.Database.Path,
		EnableCORS:   serveCORS,
	}
	if cfg.Search.Enabled {
		if _, err := os.Stat(cfg.Search.IndexPath); err == nil {
			serverCfg.IndexPath = cfg.Search.IndexPath
		}
	}

	server, err := api.NewServer(serverCfg)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		printSuccess("Server ready at http://%s:%d", serveHost, servePort)
		printInfo("Database: %s", cfg.Database.Path)
		if serverCfg.IndexPath != "" {
			printInfo("Search index: %s", serverCfg.IndexPath)
		}
		if err := server.Start(); err != nil {
			serverErr <- err
		}
	}()

	select {
	case <-sigChan:
		printInfo("\nShutting down server...")
	case err := <-serverErr:
		return err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	printSuccess("Server stopped gracefully")
	return nil
}
