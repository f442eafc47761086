package store

import (
	"github.com/flanksource/arch-map/models"
)

// GroupCount is one row of a grouped count view.
type GroupCount struct {
	Key      string  `gorm:"column:key"`
	Count    int     `gorm:"column:count"`
	AvgLines float64 `gorm:"column:avg_lines"`
}

// ActiveFiles returns every non-deleted file record, ordered by path.
func (s *Store) ActiveFiles() ([]models.FileRecord, error) {
	var files []models.FileRecord
	err := s.db.Where("is_deleted = ?", false).Order("file_path").Find(&files).Error
	return files, err
}

// ActiveFilesByLayer returns the non-deleted records for a set of layers.
func (s *Store) ActiveFilesByLayer(layers ...string) ([]models.FileRecord, error) {
	var files []models.FileRecord
	err := s.db.Where("is_deleted = ? AND layer IN ?", false, layers).
		Order("file_path").Find(&files).Error
	return files, err
}

// FileByPath returns the record for a path regardless of deletion state,
// or nil if the path has never been seen.
func (s *Store) FileByPath(path string) (*models.FileRecord, error) {
	var files []models.FileRecord
	if err := s.db.Where("file_path = ?", path).Limit(1).Find(&files).Error; err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, nil
	}
	return &files[0], nil
}

// LayerCounts reads the files_by_layer view.
func (s *Store) LayerCounts() ([]GroupCount, error) {
	var rows []GroupCount
	err := s.db.Raw("SELECT layer AS key, count, avg_lines FROM files_by_layer").Scan(&rows).Error
	return rows, err
}

// DomainCounts reads the files_by_domain view.
func (s *Store) DomainCounts() ([]GroupCount, error) {
	var rows []GroupCount
	err := s.db.Raw("SELECT domain_entity AS key, count FROM files_by_domain").Scan(&rows).Error
	return rows, err
}

// ComplexityCounts reads the files_by_complexity view.
func (s *Store) ComplexityCounts() ([]GroupCount, error) {
	var rows []GroupCount
	err := s.db.Raw("SELECT complexity AS key, count FROM files_by_complexity").Scan(&rows).Error
	return rows, err
}
