package files

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindSourceFiles walks rootDir and returns the relative paths of source
// files matching one of the extensions. Hidden directories, vendor and
// build output are skipped, plus anything matching an exclude glob.
func FindSourceFiles(rootDir string, extensions []string, exclude []string) ([]string, error) {
	var sources []string

	extSet := map[string]bool{}
	for _, ext := range extensions {
		extSet[strings.ToLower(ext)] = true
	}

	err := filepath.Walk(rootDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return nil
		}

		if info.IsDir() {
			name := info.Name()
			if path != rootDir && (name == "vendor" || strings.HasPrefix(name, ".")) {
				return filepath.SkipDir
			}
			return nil
		}

		if !extSet[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		rel, err := filepath.Rel(rootDir, path)
		if err != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)

		for _, pattern := range exclude {
			if match, err := doublestar.Match(pattern, rel); err == nil && match {
				return nil
			}
		}

		sources = append(sources, rel)
		return nil
	})

	return sources, err
}
