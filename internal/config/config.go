// Package config loads and persists the isoprep configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/HerwigLab/IsoTools2/internal/paths"
	"gopkg.in/yaml.v3"
)

// Config represents the isoprep configuration
type Config struct {
	DataDirectory string         `yaml:"data_directory"`
	Catalog       CatalogConfig  `yaml:"catalog"`  // Remote experiment catalog
	Database      DatabaseConfig `yaml:"database"` // SQLite settings
	Download      DownloadConfig `yaml:"download"`
	Manifest      ManifestConfig `yaml:"manifest"`
	Search        SearchConfig   `yaml:"search"` // Optional search
}

// CatalogConfig describes the metadata catalog query
type CatalogConfig struct {
	BaseURL    string   `yaml:"base_url"`
	Type       string   `yaml:"type"`        // record type, e.g. Experiment
	AssayTitle string   `yaml:"assay_title"` // e.g. "long read RNA-seq"
	Organism   string   `yaml:"organism"`    // scientific name
	FileTypes  []string `yaml:"file_types"`  // required file types
	Timeout    int      `yaml:"timeout"`     // seconds, 0 disables
}

// DatabaseConfig contains SQLite database settings
type DatabaseConfig struct {
	Path string `yaml:"path"`
}

// DownloadConfig controls data file retrieval
type DownloadConfig struct {
	Directory string `yaml:"directory"` // local download directory
	Samtools  string `yaml:"samtools"`  // external indexing tool
}

// ManifestConfig controls manifest and snapshot output
type ManifestConfig struct {
	Path      string `yaml:"path"`      // manifest TSV path
	Snapshots bool   `yaml:"snapshots"` // write intermediate CSV snapshots
	FileTag   string `yaml:"file_tag"`  // suffix tag for derived file names
}

// SearchConfig contains search-related settings
type SearchConfig struct {
	Enabled      bool   `yaml:"enabled"`
	IndexPath    string `yaml:"index_path"`
	DefaultLimit int    `yaml:"default_limit"`
	BatchSize    int    `yaml:"batch_size"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	p := paths.GetPaths()

	return &Config{
		DataDirectory: p.DataDir,
		Catalog: CatalogConfig{
			BaseURL:    "https://www.encodeproject.org",
			Type:       "Experiment",
			AssayTitle: "long read RNA-seq",
			Organism:   "Homo sapiens",
			FileTypes:  []string{"fastq", "bam"},
			Timeout:    60,
		},
		Database: DatabaseConfig{
			Path: paths.GetDatabasePath(),
		},
		Download: DownloadConfig{
			Directory: "encode",
			Samtools:  "samtools",
		},
		Manifest: ManifestConfig{
			Path:      "encode/samples.tsv",
			Snapshots: false,
			FileTag:   "aligned",
		},
		Search: SearchConfig{
			Enabled:      true,
			IndexPath:    paths.GetIndexPath(),
			DefaultLimit: 100,
			BatchSize:    1000,
		},
	}
}

// Load loads configuration from a file
func Load(path string) (*Config, error) {
	// Start with defaults
	config := DefaultConfig()

	// Return defaults if file doesn't exist
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return config, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Validate and expand paths
	config.DataDirectory = expandPath(config.DataDirectory)
	config.Database.Path = expandPath(config.Database.Path)
	config.Download.Directory = expandPath(config.Download.Directory)
	config.Search.IndexPath = expandPath(config.Search.IndexPath)

	return config, nil
}

// Save saves the configuration to a file
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfigPath returns the default config file path
func GetConfigPath() string {
	// Check environment variable first
	if path := os.Getenv("ISOPREP_CONFIG"); path != "" {
		return path
	}

	// Check current directory
	if _, err := os.Stat("isoprep.yaml"); err == nil {
		return "isoprep.yaml"
	}

	// Use default location
	p := paths.GetPaths()
	return filepath.Join(p.ConfigDir, "config.yaml")
}

// EnsureDirectories creates necessary directories
func (c *Config) EnsureDirectories() error {
	if err := paths.EnsureDirectories(); err != nil {
		return err
	}

	dirs := []string{
		c.DataDirectory,
		filepath.Dir(c.Database.Path),
		c.Download.Directory,
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	return nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if len(path) == 0 {
		return path
	}

	if path[0] == '~' {
		homeDir, _ := os.UserHomeDir()
		return filepath.Join(homeDir, path[1:])
	}

	return path
}
