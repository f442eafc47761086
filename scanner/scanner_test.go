package scanner

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

// A file that was extracted from disk but failed to reconcile is still an
// observed path: deletion finalization must never treat a failed write as
// an absent file.
func TestReconcileAll_FailedWriteStillObserved(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "architecture.db"))
	require.NoError(t, err)
	// Closing the handle makes every reconcile fail.
	require.NoError(t, s.Close())

	results := make(chan extraction, 1)
	results <- extraction{meta: models.FileMetadata{
		Path:         "Models/Basics/Goal.swift",
		Layer:        "Model-Basic",
		DomainEntity: "Goal",
		Concurrency:  "None",
		Complexity:   models.ComplexitySimple,
		LineCount:    10,
		LastModified: time.Now(),
		Hash:         "aaa",
	}}
	close(results)

	summary := &Summary{}
	seen := reconcileAll(s, results, 1, summary)

	assert.Equal(t, 1, summary.Counters.Errors)
	assert.Zero(t, summary.Counters.Scanned)
	assert.Contains(t, seen, "Models/Basics/Goal.swift")
}

// An extraction failure carries no path observation: the file could not be
// read, so it is counted as an error and left to deletion finalization.
func TestReconcileAll_ExtractionFailureIsNotObserved(t *testing.T) {
	s, err := store.Open(filepath.Join(t.TempDir(), "architecture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	results := make(chan extraction, 1)
	results <- extractOne(t.TempDir(), "Missing.swift")
	close(results)

	summary := &Summary{}
	seen := reconcileAll(s, results, 1, summary)

	assert.Equal(t, 1, summary.Counters.Errors)
	assert.Len(t, summary.Failures, 1)
	assert.Empty(t, seen)
}
