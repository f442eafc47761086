package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/arch-map/models"
)

func TestSaveStatistics_WriteOncePerRun(t *testing.T) {
	s := newTestStore(t)
	run := newTestRun(t, s)

	stats := models.ScanStatistics{
		ScanRunID:          run.ID,
		TotalFiles:         3,
		FilesByLayer:       map[string]int{"Repository": 2, "View-Form": 1},
		FilesByDomain:      map[string]int{"Goal": 3},
		FilesByComplexity:  map[string]int{"Simple": 2, "Complex": 1},
		FilesByConcurrency: map[string]int{"None": 3},
		TotalLines:         750,
		AvgLinesPerFile:    250,
		LargestFile:        "C.swift",
		LargestFileLines:   500,
		ComplexFilesCount:  1,
		ComplexFiles:       []string{"C.swift"},
	}

	require.NoError(t, s.SaveStatistics(stats))
	assert.Error(t, s.SaveStatistics(stats), "second write for the same run must be rejected")

	loaded, err := s.StatisticsForRun(run.ID)
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, 3, loaded.TotalFiles)
	assert.Equal(t, map[string]int{"Repository": 2, "View-Form": 1}, loaded.FilesByLayer)
	assert.Equal(t, []string{"C.swift"}, loaded.ComplexFiles)
	assert.Equal(t, "C.swift", loaded.LargestFile)
}

func TestLatestStatistics(t *testing.T) {
	s := newTestStore(t)

	latest, err := s.LatestStatistics()
	require.NoError(t, err)
	assert.Nil(t, latest)

	run := newTestRun(t, s)
	require.NoError(t, s.SaveStatistics(models.ScanStatistics{ScanRunID: run.ID, TotalFiles: 1}))

	latest, err = s.LatestStatistics()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.ID, latest.ScanRunID)
}

func TestGroupCountViews(t *testing.T) {
	s := newTestStore(t)
	run := newTestRun(t, s)

	metaA := testMeta("Repositories/A.swift", "aaa", 10)
	metaB := testMeta("Repositories/B.swift", "bbb", 30)
	metaC := testMeta("Views/FormViews/C.swift", "ccc", 20)
	metaC.Layer = "View-Form"
	metaC.DomainEntity = "Action"
	metaC.Complexity = models.ComplexityMedium

	for _, meta := range []models.FileMetadata{metaA, metaB, metaC} {
		_, _, err := s.Reconcile(meta, run.ID)
		require.NoError(t, err)
	}

	layers, err := s.LayerCounts()
	require.NoError(t, err)
	require.Len(t, layers, 2)
	assert.Equal(t, "Repository", layers[0].Key)
	assert.Equal(t, 2, layers[0].Count)
	assert.InDelta(t, 20.0, layers[0].AvgLines, 0.01)

	domains, err := s.DomainCounts()
	require.NoError(t, err)
	assert.Len(t, domains, 2)

	complexities, err := s.ComplexityCounts()
	require.NoError(t, err)
	assert.Len(t, complexities, 2)

	// Deleted files drop out of every view.
	_, err = s.FinalizeDeletions(map[string]struct{}{
		"Repositories/A.swift": {}, "Repositories/B.swift": {},
	}, run.ID)
	require.NoError(t, err)

	domains, err = s.DomainCounts()
	require.NoError(t, err)
	require.Len(t, domains, 1)
	assert.Equal(t, "Goal", domains[0].Key)
}
