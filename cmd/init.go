package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/flanksource/commons/logger"
	"github.com/spf13/cobra"

	"github.com/flanksource/arch-map/internal/importer"
)

var initCSVPath string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Bootstrap the architecture database",
	Long: `Init creates the database schema and, when a legacy architecture-map CSV
is present (or passed with --csv), seeds the store from it. Imported rows
carry no content fingerprint, so the first scan recomputes every record.`,
	RunE: runInit,
}

func init() {
	rootCmd.AddCommand(initCmd)
	initCmd.Flags().StringVar(&initCSVPath, "csv", "", "Legacy architecture map CSV to import")
}

func runInit(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	fmt.Printf("%s Initialized database at %s\n", color.GreenString("✔"), cfg.DBPath)

	csvPath := initCSVPath
	if csvPath == "" {
		legacy := filepath.Join(filepath.Dir(cfg.DBPath), "ARCHITECTURE_MAP_COMPLETE.csv")
		if _, err := os.Stat(legacy); err == nil {
			csvPath = legacy
		}
	}
	if csvPath == "" {
		logger.Infof("No legacy CSV found, skipping import")
		return nil
	}

	imported, err := importer.ImportCSV(st, csvPath, environment())
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}
	fmt.Printf("%s Imported %d files from %s\n", color.GreenString("✔"), imported, csvPath)

	return nil
}
