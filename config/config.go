package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the project root.
const DefaultFileName = ".arch-map.yaml"

// Config controls where sources are found and where the database lives.
type Config struct {
	// SourceDir is the root of the scanned source tree, relative to the
	// project root.
	SourceDir string `yaml:"source_dir"`
	// DBPath is the SQLite database location.
	DBPath string `yaml:"db_path"`
	// Extensions lists the source file extensions to scan.
	Extensions []string `yaml:"extensions"`
	// Exclude holds doublestar glob patterns matched against relative paths.
	Exclude []string `yaml:"exclude"`
}

// Default returns the configuration used when no config file exists.
func Default(root string) Config {
	return Config{
		SourceDir:  filepath.Join(root, "swift", "Sources"),
		DBPath:     filepath.Join(root, "ProjectManagement", "architecture.db"),
		Extensions: []string{".swift"},
		Exclude:    []string{"**/.build/**", "**/Packages/**"},
	}
}

// Load reads .arch-map.yaml from the project root, falling back to defaults
// for any unset field. A missing file is not an error.
func Load(root string) (Config, error) {
	cfg := Default(root)

	path := filepath.Join(root, DefaultFileName)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var overrides Config
	if err := yaml.Unmarshal(data, &overrides); err != nil {
		return cfg, fmt.Errorf("failed to parse %s: %w", path, err)
	}

	if overrides.SourceDir != "" {
		cfg.SourceDir = filepath.Join(root, overrides.SourceDir)
	}
	if overrides.DBPath != "" {
		cfg.DBPath = filepath.Join(root, overrides.DBPath)
	}
	if len(overrides.Extensions) > 0 {
		cfg.Extensions = overrides.Extensions
	}
	if len(overrides.Exclude) > 0 {
		cfg.Exclude = overrides.Exclude
	}

	return cfg, nil
}
