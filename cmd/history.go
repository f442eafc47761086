package cmd

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/flanksource/arch-map/models"
)

var historyDays int

var historyCmd = &cobra.Command{
	Use:   "history [path]",
	Short: "Show recent changes, or the full lineage of one file",
	RunE:  runHistory,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.Flags().IntVar(&historyDays, "days", 7, "Window for recent changes")
}

func runHistory(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	var events []models.FileHistoryEvent
	if len(args) > 0 {
		record, err := st.FileByPath(args[0])
		if err != nil {
			return err
		}
		if record == nil {
			return fmt.Errorf("no record for path %s", args[0])
		}
		events, err = st.History(record.ID)
		if err != nil {
			return err
		}
	} else {
		events, err = st.RecentChanges(time.Duration(historyDays) * 24 * time.Hour)
		if err != nil {
			return err
		}
	}

	if len(events) == 0 {
		fmt.Println("No history events found")
		return nil
	}

	for _, e := range events {
		marker := color.GreenString("+")
		switch e.ChangeType {
		case models.ChangeModified:
			marker = color.YellowString("~")
		case models.ChangeDeleted:
			marker = color.RedString("-")
		}
		fmt.Printf("%s %s %s (%d lines, run #%d)\n", marker,
			e.RecordedAt.Format("2006-01-02 15:04"), e.Path, e.LineCount, e.ScanRunID)
		if e.PreviousValues != nil && e.NewValues != nil {
			fmt.Printf("    %s/%s/%d lines → %s/%s/%d lines\n",
				e.PreviousValues.Layer, e.PreviousValues.Complexity, e.PreviousValues.LineCount,
				e.NewValues.Layer, e.NewValues.Complexity, e.NewValues.LineCount)
		}
	}

	return nil
}
