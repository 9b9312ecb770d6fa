package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/HerwigLab/IsoTools2/internal/qc"
)

var qcCmd = &cobra.Command{
	Use:   "qc <file.sam>",
	Short: "Summarize a SAM alignment file",
	Long: `Scan a SAM text file and report alignment statistics: mapped record
count, spliced reads and junction totals, aligned-span quartiles and the
mean base error rate derived from quality strings.

BAM files are binary; convert first, e.g.:
  samtools view -h encode/ENCFF001AAA_aligned.bam | isoprep qc /dev/stdin`,
	Example: `  isoprep qc alignments.sam
  isoprep qc --max-records 10000 alignments.sam`,
	Args: cobra.ExactArgs(1),
	RunE: runQC,
}

var qcMaxRecords int

func init() {
	qcCmd.Flags().IntVarP(&qcMaxRecords, "max-records", "n", 0, "Stop after this many mapped records (0 = all)")
}

func runQC(cmd *cobra.Command, args []string) error {
	scanner := &qc.Scanner{MaxRecords: qcMaxRecords}

	stats, err := scanner.ScanFile(args[0])
	if err != nil {
		return fmt.Errorf("scan failed: %w", err)
	}
	if stats.Records == 0 {
		printWarning("No mapped records found in %s", args[0])
	}
	if stats.Skipped > 0 {
		printWarning("%d malformed records skipped", stats.Skipped)
	}

	fmt.Print(stats.Summary())
	return nil
}
