package output

import (
	"encoding/csv"
	"io"
	"sort"

	"github.com/flanksource/arch-map/internal/store"
)

// csvHeader matches the legacy spreadsheet format consumed by the importer,
// so an export can round-trip back through --init.
var csvHeader = []string{
	"Layer", "Domain Entity", "File Path", "File Purpose", "Key Pattern",
	"Dependencies", "Extends/Conforms", "Concurrency", "Complexity", "Notes",
}

// WriteCSV exports the active architecture map.
func WriteCSV(st *store.Store, w io.Writer) error {
	files, err := st.ActiveFiles()
	if err != nil {
		return err
	}

	sort.Slice(files, func(i, j int) bool {
		a, b := files[i], files[j]
		if a.Layer != b.Layer {
			return a.Layer < b.Layer
		}
		if a.DomainEntity != b.DomainEntity {
			return a.DomainEntity < b.DomainEntity
		}
		return a.Path < b.Path
	})

	writer := csv.NewWriter(w)
	if err := writer.Write(csvHeader); err != nil {
		return err
	}

	for _, f := range files {
		row := []string{
			f.Layer, f.DomainEntity, f.Path, f.Purpose, f.KeyPattern,
			f.Dependencies, f.ExtendsConforms, f.Concurrency, string(f.Complexity), f.Notes,
		}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
