package importer

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

const legacyCSV = `Layer,Domain Entity,File Path,File Purpose,Key Pattern,Dependencies,Extends/Conforms,Concurrency,Complexity,Notes
Repository,Goal,Repositories/GoalRepository.swift,Persists goals,BaseRepository<Goal>,GRDB,"BaseRepository<Goal>, Sendable",Sendable,Medium,
View-Form,Action,Views/FormViews/ActionForm.swift,,,,,None,,legacy row
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "ARCHITECTURE_MAP_COMPLETE.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func openStore(t *testing.T) *store.Store {
	t.Helper()
	s, err := store.Open(filepath.Join(t.TempDir(), "architecture.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestImportCSV(t *testing.T) {
	s := openStore(t)

	imported, err := ImportCSV(s, writeCSV(t, legacyCSV), models.Environment{ToolVersion: "test"})
	require.NoError(t, err)
	assert.Equal(t, 2, imported)

	record, err := s.FileByPath("Repositories/GoalRepository.swift")
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Repository", record.Layer)
	assert.Equal(t, "Goal", record.DomainEntity)
	assert.Equal(t, "BaseRepository<Goal>, Sendable", record.ExtendsConforms)
	assert.Equal(t, models.ComplexityMedium, record.Complexity)
	assert.Empty(t, record.Hash, "fingerprint stays empty until the first real scan")

	// Unset fields take their defaults.
	defaulted, err := s.FileByPath("Views/FormViews/ActionForm.swift")
	require.NoError(t, err)
	require.NotNil(t, defaulted)
	assert.Equal(t, models.ComplexitySimple, defaulted.Complexity)
	assert.Equal(t, "None", defaulted.Concurrency)

	// The import is bracketed by its own completed run.
	run, err := s.LatestRun()
	require.NoError(t, err)
	require.NotNil(t, run)
	assert.Equal(t, 2, run.FilesScanned)
	assert.Equal(t, 2, run.FilesCreated)
	assert.NotNil(t, run.CompletedAt)
}

func TestImportCSV_MissingRequiredColumnIsFatal(t *testing.T) {
	s := openStore(t)

	_, err := ImportCSV(s, writeCSV(t, "Layer,Domain Entity\nRepository,Goal\n"), models.Environment{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "File Path")
}
