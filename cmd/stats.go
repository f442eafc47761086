package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display the latest scan statistics",
	Long: `Show the distribution snapshot recorded by the most recent scan:
files by layer, domain, complexity and concurrency, line totals and the
list of high-complexity files.`,
	RunE: runStats,
}

var statsVerbose bool

func init() {
	rootCmd.AddCommand(statsCmd)
	statsCmd.Flags().BoolVar(&statsVerbose, "verbose", false, "List every high-complexity file")
}

var (
	statsTitleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	statsHeaderStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

func runStats(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	stats, err := st.LatestStatistics()
	if err != nil {
		return err
	}
	if stats == nil {
		fmt.Println("No scan statistics found. Run a scan first with: arch-map scan")
		return nil
	}

	run, err := st.LatestRun()
	if err != nil {
		return err
	}

	fmt.Println(statsTitleStyle.Render("📊 Architecture Statistics"))
	if run != nil {
		fmt.Printf("Run #%d on %s (branch %s)\n", stats.ScanRunID,
			stats.RecordedAt.Format("2006-01-02 15:04"), run.GitBranch)
	}
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("Total files: %d   Total lines: %d   Avg lines/file: %.1f\n",
		stats.TotalFiles, stats.TotalLines, stats.AvgLinesPerFile)
	fmt.Printf("Largest file: %s (%d lines)\n\n", stats.LargestFile, stats.LargestFileLines)

	printDistribution("Files by Layer", stats.FilesByLayer)
	printDistribution("Files by Domain", stats.FilesByDomain)
	printDistribution("Complexity", stats.FilesByComplexity)
	printDistribution("Concurrency", stats.FilesByConcurrency)

	fmt.Printf("%s: %d\n", statsHeaderStyle.Render("High-complexity files"), stats.ComplexFilesCount)
	if statsVerbose {
		for _, path := range stats.ComplexFiles {
			fmt.Printf("  - %s\n", color.RedString(path))
		}
	}

	return nil
}

func printDistribution(title string, counts map[string]int) {
	fmt.Println(statsHeaderStyle.Render(title))

	keys := make([]string, 0, len(counts))
	for k := range counts {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if counts[keys[i]] != counts[keys[j]] {
			return counts[keys[i]] > counts[keys[j]]
		}
		return keys[i] < keys[j]
	})

	for _, k := range keys {
		fmt.Printf("  %-30s %d\n", k, counts[k])
	}
	fmt.Println()
}
