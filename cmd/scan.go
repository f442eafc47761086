package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flanksource/arch-map/scanner"
)

var (
	scanWorkers   int
	scanSkipCheck bool
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan the source tree and update the architecture database",
	Long: `Scan extracts architectural metadata from every source file, reconciles
it against the stored records (detecting created, modified and deleted files
by content hash), evaluates the architectural rules and snapshots per-run
statistics.`,
	RunE: runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
	scanCmd.Flags().IntVar(&scanWorkers, "workers", 0, "Extraction worker count (0 = all CPUs)")
	scanCmd.Flags().BoolVar(&scanSkipCheck, "skip-violations", false, "Skip the rule check after scanning")
}

func runScan(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	summary, err := scanner.Run(st, cfg, environment(), scanner.Options{
		Workers:         scanWorkers,
		CheckViolations: !scanSkipCheck,
	})
	if err != nil {
		return err
	}

	c := summary.Counters
	fmt.Printf("\n%s Scan complete:\n", color.GreenString("✔"))
	fmt.Printf("   - Scanned:  %d files\n", c.Scanned)
	fmt.Printf("   - Created:  %d files\n", c.Created)
	fmt.Printf("   - Modified: %d files\n", c.Modified)
	fmt.Printf("   - Deleted:  %d files\n", c.Deleted)
	if c.Errors > 0 {
		fmt.Printf("   - Errors:   %s\n", color.RedString("%d", c.Errors))
	}

	if len(summary.Opened) > 0 {
		fmt.Printf("\n%s %d new violations:\n", color.YellowString("⚠"), len(summary.Opened))
		for _, v := range summary.Opened {
			fmt.Printf("   - %s\n", v)
		}
	}

	return nil
}
