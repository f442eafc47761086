package importer

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

// requiredColumns must be present in the legacy spreadsheet export.
var requiredColumns = []string{"File Path", "Layer", "Domain Entity"}

// ImportCSV seeds the store from a legacy architecture-map spreadsheet.
// Fingerprints are left empty so the first real scan recomputes every
// record. A missing required column is fatal for the import: the dataset is
// small and hand-curated, so a malformed file should be fixed, not skipped.
func ImportCSV(st *store.Store, csvPath string, env models.Environment) (int, error) {
	f, err := os.Open(csvPath)
	if err != nil {
		return 0, fmt.Errorf("failed to open %s: %w", csvPath, err)
	}
	defer f.Close()

	reader := csv.NewReader(f)
	header, err := reader.Read()
	if err != nil {
		return 0, fmt.Errorf("failed to read CSV header: %w", err)
	}

	columns := map[string]int{}
	for i, name := range header {
		columns[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := columns[name]; !ok {
			return 0, fmt.Errorf("CSV is missing required column %q", name)
		}
	}

	run, err := st.StartRun(env)
	if err != nil {
		return 0, err
	}

	field := func(row []string, name string) string {
		idx, ok := columns[name]
		if !ok || idx >= len(row) {
			return ""
		}
		return row[idx]
	}

	imported := 0
	var counters models.RunCounters

	err = st.WithRunLock(func() error {
		for {
			row, err := reader.Read()
			if err == io.EOF {
				break
			}
			if err != nil {
				return fmt.Errorf("failed to read CSV row: %w", err)
			}

			complexity := models.Complexity(field(row, "Complexity"))
			if complexity == "" {
				complexity = models.ComplexitySimple
			}
			concurrency := field(row, "Concurrency")
			if concurrency == "" {
				concurrency = "None"
			}

			meta := models.FileMetadata{
				Path:            field(row, "File Path"),
				Layer:           field(row, "Layer"),
				DomainEntity:    field(row, "Domain Entity"),
				Purpose:         field(row, "File Purpose"),
				KeyPattern:      field(row, "Key Pattern"),
				Dependencies:    field(row, "Dependencies"),
				ExtendsConforms: field(row, "Extends/Conforms"),
				Concurrency:     concurrency,
				Complexity:      complexity,
				Notes:           field(row, "Notes"),
				LastModified:    time.Now(),
				// Hash stays empty: the next scan recomputes it and
				// reclassifies the row as modified.
			}

			_, outcome, err := st.Reconcile(meta, run.ID)
			if err != nil {
				return fmt.Errorf("failed to import %s: %w", meta.Path, err)
			}

			imported++
			counters.Scanned++
			if outcome == models.ChangeCreated {
				counters.Created++
			}
		}

		return st.CompleteRun(run, counters)
	})
	if err != nil {
		return imported, err
	}

	logger.Infof("Imported %d files from %s", imported, csvPath)
	return imported, nil
}
