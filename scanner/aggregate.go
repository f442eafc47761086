package scanner

import (
	"time"

	"github.com/samber/lo"

	"github.com/flanksource/arch-map/models"
)

// Aggregate computes the per-run distribution snapshot over the active
// file set. Pure aggregation: the largest file is the first one to reach
// the maximum line count, so ties go to the earlier path.
func Aggregate(files []models.FileRecord, runID uint) models.ScanStatistics {
	stats := models.ScanStatistics{
		ScanRunID:          runID,
		TotalFiles:         len(files),
		FilesByLayer:       lo.CountValuesBy(files, func(f models.FileRecord) string { return f.Layer }),
		FilesByDomain:      lo.CountValuesBy(files, func(f models.FileRecord) string { return f.DomainEntity }),
		FilesByComplexity:  lo.CountValuesBy(files, func(f models.FileRecord) string { return string(f.Complexity) }),
		FilesByConcurrency: lo.CountValuesBy(files, func(f models.FileRecord) string { return f.Concurrency }),
		RecordedAt:         time.Now(),
	}

	for _, f := range files {
		stats.TotalLines += f.LineCount
		if f.LineCount > stats.LargestFileLines {
			stats.LargestFileLines = f.LineCount
			stats.LargestFile = f.Path
		}
		if f.Complexity == models.ComplexityComplex {
			stats.ComplexFiles = append(stats.ComplexFiles, f.Path)
		}
	}

	stats.ComplexFilesCount = len(stats.ComplexFiles)
	if len(files) > 0 {
		stats.AvgLinesPerFile = float64(stats.TotalLines) / float64(len(files))
	}

	return stats
}
