package output

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

// WriteSummaryMarkdown renders the architecture summary for the latest run:
// overview, layer/domain/complexity distributions, open violations and
// recent changes. Pure formatting over already-computed data.
func WriteSummaryMarkdown(st *store.Store, w io.Writer) error {
	run, err := st.LatestRun()
	if err != nil {
		return err
	}
	if run == nil {
		return fmt.Errorf("no scan data found")
	}

	stats, err := st.StatisticsForRun(run.ID)
	if err != nil {
		return err
	}

	var b strings.Builder
	b.WriteString("# Architecture Documentation Summary\n\n")
	fmt.Fprintf(&b, "Generated: %s\n", time.Now().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Scan ID: %d\n", run.ID)
	fmt.Fprintf(&b, "Branch: %s\n", run.GitBranch)
	fmt.Fprintf(&b, "Commit: %s\n\n", run.GitCommitHash)

	b.WriteString("## Overview\n\n")
	if stats != nil {
		fmt.Fprintf(&b, "- **Total Files**: %d\n", stats.TotalFiles)
		fmt.Fprintf(&b, "- **Total Lines**: %d\n", stats.TotalLines)
	}
	fmt.Fprintf(&b, "- **Files Scanned**: %d\n", run.FilesScanned)
	fmt.Fprintf(&b, "- **Changes**: %d created, %d modified, %d deleted\n\n",
		run.FilesCreated, run.FilesModified, run.FilesDeleted)

	b.WriteString("## Files by Layer\n\n")
	layers, err := st.LayerCounts()
	if err != nil {
		return err
	}
	for _, row := range layers {
		fmt.Fprintf(&b, "- **%s**: %d files (avg %.0f lines)\n", row.Key, row.Count, row.AvgLines)
	}

	b.WriteString("\n## Files by Domain\n\n")
	domains, err := st.DomainCounts()
	if err != nil {
		return err
	}
	for _, row := range domains {
		fmt.Fprintf(&b, "- **%s**: %d files\n", row.Key, row.Count)
	}

	b.WriteString("\n## Complexity Distribution\n\n")
	complexities, err := st.ComplexityCounts()
	if err != nil {
		return err
	}
	for _, row := range complexities {
		fmt.Fprintf(&b, "- **%s**: %d files\n", row.Key, row.Count)
	}

	b.WriteString("\n## Open Violations\n\n")
	violations, err := st.OpenViolations()
	if err != nil {
		return err
	}
	if len(violations) == 0 {
		b.WriteString("*No open violations found*\n")
	} else {
		type key struct {
			Type     string
			Severity models.Severity
		}
		grouped := lo.CountValuesBy(violations, func(v models.Violation) key {
			return key{Type: v.ViolationType, Severity: v.Severity}
		})
		keys := lo.Keys(grouped)
		sort.Slice(keys, func(i, j int) bool {
			if keys[i].Severity.Rank() != keys[j].Severity.Rank() {
				return keys[i].Severity.Rank() < keys[j].Severity.Rank()
			}
			return keys[i].Type < keys[j].Type
		})
		for _, k := range keys {
			fmt.Fprintf(&b, "- **%s**: %s (%d files)\n", strings.ToUpper(string(k.Severity)), k.Type, grouped[k])
		}
	}

	b.WriteString("\n## Recent Changes (Last 7 Days)\n\n")
	changes, err := st.RecentChanges(7 * 24 * time.Hour)
	if err != nil {
		return err
	}
	if len(changes) == 0 {
		b.WriteString("*No recent changes*\n")
	} else {
		byType := lo.CountValuesBy(changes, func(e models.FileHistoryEvent) models.ChangeType {
			return e.ChangeType
		})
		for _, change := range []models.ChangeType{models.ChangeCreated, models.ChangeModified, models.ChangeDeleted} {
			if count, ok := byType[change]; ok {
				fmt.Fprintf(&b, "- **%s**: %d files\n", change, count)
			}
		}
	}

	_, err = io.WriteString(w, b.String())
	return err
}
