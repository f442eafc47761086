package rules

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

func seedStore(t *testing.T, metas ...models.FileMetadata) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "architecture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	run, err := s.StartRun(models.Environment{ToolVersion: "test"})
	require.NoError(t, err)
	for _, meta := range metas {
		_, _, err := s.Reconcile(meta, run.ID)
		require.NoError(t, err)
	}
	return s
}

func meta(path, layer, concurrency, extends string) models.FileMetadata {
	return models.FileMetadata{
		Path:            path,
		Layer:           layer,
		DomainEntity:    "Goal",
		Concurrency:     concurrency,
		ExtendsConforms: extends,
		Complexity:      models.ComplexitySimple,
		LineCount:       10,
		LastModified:    time.Now(),
		Hash:            path, // distinct per file, content is irrelevant here
	}
}

func violationTypes(violations []models.Violation) []string {
	var types []string
	for _, v := range violations {
		types = append(types, v.ViolationType)
	}
	return types
}

func TestCheck_MissingBaseRepository(t *testing.T) {
	s := seedStore(t,
		meta("Repositories/GoalRepository.swift", "Repository", "Sendable", "Sendable"),
		meta("Repositories/ActionRepository.swift", "Repository", "Sendable", "BaseRepository<Action>, Sendable"),
		// Core repositories are exempt: they define the base abstraction.
		meta("Repositories/Core/BaseRepository.swift", "Repository", "Sendable", "Sendable"),
	)

	opened, err := NewEngine(s).Check()
	require.NoError(t, err)
	require.Len(t, opened, 1)
	assert.Equal(t, "missing_baserepository", opened[0].ViolationType)
	assert.Equal(t, models.SeverityHigh, opened[0].Severity)
	assert.Equal(t, "Repositories/GoalRepository.swift", opened[0].FilePath)
}

func TestCheck_MissingSendable(t *testing.T) {
	s := seedStore(t,
		meta("Coordinators/SyncCoordinator.swift", "Coordinator", "None", ""),
		meta("Coordinators/SafeCoordinator.swift", "Coordinator", "Sendable", ""),
		meta("Services/Progress/Tracker.swift", "Service-Progress", "@MainActor", ""),
		// Layers outside the set are not required to be Sendable.
		meta("Views/FormViews/GoalForm.swift", "View-Form", "None", ""),
	)

	opened, err := NewEngine(s).Check()
	require.NoError(t, err)
	require.Len(t, opened, 2)
	for _, v := range opened {
		assert.Equal(t, "missing_sendable", v.ViolationType)
		assert.Equal(t, models.SeverityMedium, v.Severity)
	}
}

func TestCheck_MissingMainActor(t *testing.T) {
	s := seedStore(t,
		meta("ViewModels/FormViewModels/GoalFormVM.swift", "ViewModel-Form", "Sendable", ""),
		meta("ViewModels/ListViewModels/GoalListVM.swift", "ViewModel-List", "Sendable + @MainActor", ""),
	)

	opened, err := NewEngine(s).Check()
	require.NoError(t, err)
	require.Len(t, opened, 1)
	assert.Equal(t, "missing_mainactor", opened[0].ViolationType)
	assert.Equal(t, "ViewModels/FormViewModels/GoalFormVM.swift", opened[0].FilePath)
}

// Running the engine twice against an unchanged snapshot produces the same
// set of open violations with no duplicates.
func TestCheck_Idempotent(t *testing.T) {
	s := seedStore(t,
		meta("Repositories/GoalRepository.swift", "Repository", "None", ""),
		meta("ViewModels/FormViewModels/VM.swift", "ViewModel-Form", "None", ""),
	)

	engine := NewEngine(s)

	first, err := engine.Check()
	require.NoError(t, err)
	assert.ElementsMatch(t,
		[]string{"missing_baserepository", "missing_sendable", "missing_mainactor"},
		violationTypes(first))

	second, err := engine.Check()
	require.NoError(t, err)
	assert.Empty(t, second, "re-run must not open duplicates")

	open, err := s.OpenViolations()
	require.NoError(t, err)
	assert.Len(t, open, 3)
}

// Deleted files drop out of the snapshot, but their violations stay open:
// rules never auto-resolve.
func TestCheck_IgnoresDeletedButKeepsViolationsOpen(t *testing.T) {
	s := seedStore(t, meta("Coordinators/SyncCoordinator.swift", "Coordinator", "None", ""))

	engine := NewEngine(s)
	opened, err := engine.Check()
	require.NoError(t, err)
	require.Len(t, opened, 1)

	run, err := s.StartRun(models.Environment{})
	require.NoError(t, err)
	_, err = s.FinalizeDeletions(map[string]struct{}{}, run.ID)
	require.NoError(t, err)

	opened, err = engine.Check()
	require.NoError(t, err)
	assert.Empty(t, opened)

	open, err := s.OpenViolations()
	require.NoError(t, err)
	assert.Len(t, open, 1, "prior violation remains open after deletion")
}

func TestEvaluate_SeverityOrdering(t *testing.T) {
	assert.Less(t, models.SeverityCritical.Rank(), models.SeverityHigh.Rank())
	assert.Less(t, models.SeverityHigh.Rank(), models.SeverityMedium.Rank())
	assert.Less(t, models.SeverityMedium.Rank(), models.SeverityLow.Rank())
}
