package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flanksource/arch-map/output"
)

var reportOutput string

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate the architecture summary report",
	RunE:  runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)
	reportCmd.Flags().StringVarP(&reportOutput, "output", "o", "", "Output file (default next to the database, '-' for stdout)")
}

func runReport(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if reportOutput == "-" {
		return output.WriteSummaryMarkdown(st, os.Stdout)
	}

	path := reportOutput
	if path == "" {
		path = filepath.Join(filepath.Dir(cfg.DBPath), "ARCHITECTURE_SUMMARY_LATEST.md")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := output.WriteSummaryMarkdown(st, f); err != nil {
		return err
	}

	fmt.Printf("%s Generated summary report: %s\n", color.GreenString("✔"), path)
	return nil
}
