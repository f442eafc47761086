package store

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/arch-map/models"
)

func TestRunLedger(t *testing.T) {
	s := newTestStore(t)

	run, err := s.StartRun(models.Environment{
		GitBranch:   "main",
		ToolVersion: "test",
		User:        "tester",
	})
	require.NoError(t, err)
	assert.NotZero(t, run.ID)
	assert.Nil(t, run.CompletedAt)
	assert.Zero(t, run.FilesScanned)

	counters := models.RunCounters{Scanned: 10, Created: 3, Modified: 2, Deleted: 1, Errors: 1}
	require.NoError(t, s.CompleteRun(run, counters))

	latest, err := s.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, run.ID, latest.ID)
	assert.NotNil(t, latest.CompletedAt)
	assert.GreaterOrEqual(t, latest.DurationSeconds, 0.0)
	assert.Equal(t, 10, latest.FilesScanned)
	assert.Equal(t, 3, latest.FilesCreated)
	assert.Equal(t, 1, latest.Errors)
	assert.Equal(t, "main", latest.GitBranch)
}

func TestCompleteRun_LastWriteWins(t *testing.T) {
	s := newTestStore(t)
	run, err := s.StartRun(models.Environment{})
	require.NoError(t, err)

	require.NoError(t, s.CompleteRun(run, models.RunCounters{Scanned: 1}))
	require.NoError(t, s.CompleteRun(run, models.RunCounters{Scanned: 2}))

	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Equal(t, 2, latest.FilesScanned)
}

func TestLatestRun_EmptyStore(t *testing.T) {
	s := newTestStore(t)
	latest, err := s.LatestRun()
	require.NoError(t, err)
	assert.Nil(t, latest)
}
