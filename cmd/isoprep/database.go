package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
)

var dbCmd = &cobra.Command{
	Use:   "db",
	Short: "Database management",
	Long:  `Manage the local isoprep record and sample database.`,
	Example: `  isoprep db info`,
}

var dbInfoCmd = &cobra.Command{
	Use:   "info",
	Short: "Show database statistics",
	Long:  `Display information about the local record and sample database.`,
	RunE:  runDBInfo,
}

func init() {
	dbCmd.AddCommand(dbInfoCmd)
}

func runDBInfo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := openStore(cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	stats, err := db.Stats()
	if err != nil {
		return fmt.Errorf("failed to get statistics: %v", err)
	}

	printInfo("Database Information")
	fmt.Println(colorize(colorGray, strings.Repeat("─", 40)))

	fileInfo, _ := os.Stat(db.Path())
	fmt.Printf("%s %s\n", colorize(colorBold, "Path:"), db.Path())
	if fileInfo != nil {
		fmt.Printf("%s %.2f MB\n", colorize(colorBold, "Size:"),
			float64(fileInfo.Size())/(1024*1024))
		fmt.Printf("%s %s\n", colorize(colorBold, "Modified:"),
			fileInfo.ModTime().Format("2006-01-02 15:04:05"))
	}

	fmt.Println()
	fmt.Printf("%s\n", colorize(colorBold, "Tables:"))
	fmt.Printf("  records:      %s\n", colorize(colorCyan, fmt.Sprintf("%d", stats.Records)))
	fmt.Printf("    reads:      %s\n", colorize(colorCyan, fmt.Sprintf("%d", stats.ReadsRecords)))
	fmt.Printf("    alignments: %s\n", colorize(colorCyan, fmt.Sprintf("%d", stats.AlignmentRecords)))
	fmt.Printf("  samples:      %s\n", colorize(colorCyan, fmt.Sprintf("%d", stats.Samples)))

	if stats.MissingLinks > 0 {
		fmt.Println()
		printWarning("%d samples have no alignment file", stats.MissingLinks)
	}

	return nil
}
