package cmd

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flanksource/arch-map/models"
	"github.com/flanksource/arch-map/rules"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check the current snapshot for architectural violations",
	Long: `Check evaluates the declared architectural rules against the current
non-deleted snapshot. Violations already open for the same file and kind are
left untouched, so check is safe to re-run at any time. Violations never
affect the exit code; they are data.`,
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	run, err := st.StartRun(environment())
	if err != nil {
		return err
	}

	var opened []models.Violation
	err = st.WithRunLock(func() error {
		var err error
		opened, err = rules.NewEngine(st).Check()
		if err != nil {
			return err
		}
		return st.CompleteRun(run, models.RunCounters{})
	})
	if err != nil {
		return err
	}

	open, err := st.OpenViolations()
	if err != nil {
		return err
	}

	if len(open) == 0 {
		fmt.Printf("%s No violations found\n", color.GreenString("✔"))
		return nil
	}

	fmt.Printf("%s %d open violations (%d new):\n", color.YellowString("⚠"), len(open), len(opened))
	for _, v := range open {
		severity := color.YellowString("%s", v.Severity)
		if v.Severity == models.SeverityHigh || v.Severity == models.SeverityCritical {
			severity = color.RedString("%s", v.Severity)
		}
		fmt.Printf("   - [%s] %s: %s\n", severity, v.ViolationType, v.Description)
	}

	return nil
}
