package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flanksource/arch-map/output"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the active architecture map as CSV",
	RunE:  runExport,
}

func init() {
	rootCmd.AddCommand(exportCmd)
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Output file (default next to the database, '-' for stdout)")
}

func runExport(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if exportOutput == "-" {
		return output.WriteCSV(st, os.Stdout)
	}

	path := exportOutput
	if path == "" {
		path = filepath.Join(filepath.Dir(cfg.DBPath), "ARCHITECTURE_MAP_LATEST.csv")
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if err := output.WriteCSV(st, f); err != nil {
		return err
	}

	fmt.Printf("%s Exported CSV: %s\n", color.GreenString("✔"), path)
	return nil
}
