// Package paths resolves the directories used by isoprep, respecting
// ISOPREP-specific environment variables first and XDG conventions second.
package paths

import (
	"os"
	"path/filepath"
)

type Paths struct {
	ConfigDir string
	DataDir   string
	CacheDir  string
}

// GetPaths returns all base paths respecting environment variables
func GetPaths() Paths {
	return Paths{
		ConfigDir: getDir("ISOPREP_CONFIG_HOME", "XDG_CONFIG_HOME", ".config", "isoprep"),
		DataDir:   getDir("ISOPREP_DATA_HOME", "XDG_DATA_HOME", ".local/share", "isoprep"),
		CacheDir:  getDir("ISOPREP_CACHE_HOME", "XDG_CACHE_HOME", ".cache", "isoprep"),
	}
}

func getDir(appEnv, xdgEnv, defaultBase, appName string) string {
	// 1. Check isoprep-specific env
	if dir := os.Getenv(appEnv); dir != "" {
		return dir
	}

	// 2. Check XDG env
	if xdgBase := os.Getenv(xdgEnv); xdgBase != "" {
		return filepath.Join(xdgBase, appName)
	}

	// 3. Use default
	home, _ := os.UserHomeDir()
	return filepath.Join(home, defaultBase, appName)
}

// GetDatabasePath returns the path to the metadata cache database
func GetDatabasePath() string {
	if path := os.Getenv("ISOPREP_DB_PATH"); path != "" {
		return path
	}
	return filepath.Join(GetPaths().DataDir, "isoprep.db")
}

// GetIndexPath returns the path to the search index.
// Default: adjacent to database for easy backup/migration
func GetIndexPath() string {
	if path := os.Getenv("ISOPREP_INDEX_PATH"); path != "" {
		return path
	}

	dbPath := GetDatabasePath()
	dir := filepath.Dir(dbPath)
	dbName := filepath.Base(dbPath)
	dbNameNoExt := dbName[:len(dbName)-len(filepath.Ext(dbName))]

	// Path like: /data/myproject/isoprep.bleve (next to isoprep.db)
	return filepath.Join(dir, dbNameNoExt+".bleve")
}

// EnsureDirectories creates the base directories if they do not exist
func EnsureDirectories() error {
	p := GetPaths()
	for _, dir := range []string{p.ConfigDir, p.DataDir, p.CacheDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return nil
}
