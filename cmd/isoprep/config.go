package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/HerwigLab/IsoTools2/internal/config"
	"github.com/HerwigLab/IsoTools2/internal/paths"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage isoprep configuration",
	Long:  `Manage the isoprep configuration: catalog query, paths and manifest settings.`,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show current configuration",
	Long:  `Display the current configuration settings.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize default configuration",
	Long: `Create a default configuration file in the appropriate location.

If a config file already exists, use --force to overwrite it.`,
	Example: `  isoprep config init
  isoprep config init --force`,
	RunE: runConfigInit,
}

var configPathsCmd = &cobra.Command{
	Use:   "paths",
	Short: "Show all active paths",
	Long: `Display the directories and file paths isoprep uses, including any
environment variable overrides.`,
	RunE: runConfigPaths,
}

var configForce bool

func init() {
	configInitCmd.Flags().BoolVar(&configForce, "force", false, "Overwrite existing configuration")

	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	configCmd.AddCommand(configPathsCmd)
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		path = config.GetConfigPath()
	}
	cfg, err := config.Load(path)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	printInfo("Configuration")
	fmt.Println(colorize(colorGray, strings.Repeat("─", 40)))
	fmt.Printf("%s %s\n", colorize(colorBold, "Config File:"), path)
	if _, err := os.Stat(path); os.IsNotExist(err) {
		fmt.Println(colorize(colorYellow, "  (using defaults - no config file found)"))
	}
	fmt.Println()

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to format config: %w", err)
	}
	for _, line := range strings.Split(string(data), "\n") {
		if line == "" {
			fmt.Println()
			continue
		}
		if strings.HasSuffix(line, ":") && !strings.Contains(line, " ") {
			fmt.Println(colorize(colorBold, line))
		} else if strings.Contains(line, ": ") {
			parts := strings.SplitN(line, ": ", 2)
			indent := len(line) - len(strings.TrimLeft(line, " "))
			fmt.Printf("%s%s: %s\n",
				strings.Repeat(" ", indent),
				colorize(colorCyan, strings.TrimSpace(parts[0])),
				colorize(colorGreen, parts[1]))
		} else {
			fmt.Println(line)
		}
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := filepath.Join(paths.GetPaths().ConfigDir, "config.yaml")

	if _, err := os.Stat(path); err == nil && !configForce {
		printWarning("Configuration already exists at %s", path)
		fmt.Println("Use --force to overwrite")
		return nil
	}

	cfg := config.DefaultConfig()
	if err := cfg.Save(path); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}
	printSuccess("Configuration created at %s", path)
	return nil
}

func runConfigPaths(cmd *cobra.Command, args []string) error {
	p := paths.GetPaths()

	printInfo("isoprep Paths")
	fmt.Println(colorize(colorGray, strings.Repeat("─", 40)))

	fmt.Printf("%s\n", colorize(colorBold, "Base Directories:"))
	fmt.Printf("  Config:   %s\n", colorize(colorCyan, p.ConfigDir))
	fmt.Printf("  Data:     %s\n", colorize(colorCyan, p.DataDir))
	fmt.Printf("  Cache:    %s\n", colorize(colorCyan, p.CacheDir))

	fmt.Println()
	fmt.Printf("%s\n", colorize(colorBold, "Specific Paths:"))
	fmt.Printf("  Database: %s\n", colorize(colorCyan, paths.GetDatabasePath()))
	fmt.Printf("  Index:    %s\n", colorize(colorCyan, paths.GetIndexPath()))

	envVars := []string{
		"ISOPREP_CONFIG", "ISOPREP_CONFIG_HOME", "ISOPREP_DATA_HOME",
		"ISOPREP_CACHE_HOME", "ISOPREP_DB_PATH",
	}
	hasEnv := false
	for _, name := range envVars {
		if os.Getenv(name) != "" {
			hasEnv = true
			break
		}
	}
	if hasEnv {
		fmt.Println()
		fmt.Printf("%s\n", colorize(colorBold, "Environment Variables:"))
		for _, name := range envVars {
			if val := os.Getenv(name); val != "" {
				fmt.Printf("  %s = %s\n", colorize(colorYellow, name), colorize(colorCyan, val))
			}
		}
	}

	fmt.Println()
	fmt.Printf("%s\n", colorize(colorBold, "Path Status:"))
	for _, check := range []struct {
		name string
		path string
	}{
		{"Config Dir", p.ConfigDir},
		{"Data Dir", p.DataDir},
		{"Database", paths.GetDatabasePath()},
		{"Index", paths.GetIndexPath()},
	} {
		if _, err := os.Stat(check.path); err == nil {
			fmt.Printf("  %-12s %s\n", check.name+":", colorize(colorGreen, "✓ exists"))
		} else {
			fmt.Printf("  %-12s %s\n", check.name+":", colorize(colorGray, "✗ not found"))
		}
	}
	return nil
}
