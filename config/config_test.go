package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	root := t.TempDir()

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "swift", "Sources"), cfg.SourceDir)
	assert.Equal(t, filepath.Join(root, "ProjectManagement", "architecture.db"), cfg.DBPath)
	assert.Equal(t, []string{".swift"}, cfg.Extensions)
}

func TestLoad_OverridesAreAppliedPerField(t *testing.T) {
	root := t.TempDir()
	yaml := `
source_dir: ios/Sources
extensions:
  - .swift
  - .m
exclude:
  - "**/Generated/**"
`
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFileName), []byte(yaml), 0644))

	cfg, err := Load(root)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "ios", "Sources"), cfg.SourceDir)
	// db_path was not set, so the default survives.
	assert.Equal(t, filepath.Join(root, "ProjectManagement", "architecture.db"), cfg.DBPath)
	assert.Equal(t, []string{".swift", ".m"}, cfg.Extensions)
	assert.Equal(t, []string{"**/Generated/**"}, cfg.Exclude)
}

func TestLoad_MalformedYAMLIsAnError(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, DefaultFileName), []byte("source_dir: [unclosed"), 0644))

	_, err := Load(root)
	assert.Error(t, err)
}
