package store

import (
	"fmt"
	"time"

	"github.com/flanksource/arch-map/models"
)

// SaveStatistics writes the per-run distribution snapshot. One row per run;
// a second write for the same run is rejected.
func (s *Store) SaveStatistics(stats models.ScanStatistics) error {
	var count int64
	err := s.db.Model(&models.ScanStatistics{}).
		Where("scan_run_id = ?", stats.ScanRunID).Count(&count).Error
	if err != nil {
		return fmt.Errorf("failed to check existing statistics: %w", err)
	}
	if count > 0 {
		return fmt.Errorf("statistics already recorded for run %d", stats.ScanRunID)
	}

	if stats.RecordedAt.IsZero() {
		stats.RecordedAt = time.Now()
	}
	if err := s.db.Create(&stats).Error; err != nil {
		return fmt.Errorf("failed to save statistics: %w", err)
	}
	return nil
}

// StatisticsForRun returns the snapshot written for a run, or nil.
func (s *Store) StatisticsForRun(runID uint) (*models.ScanStatistics, error) {
	var rows []models.ScanStatistics
	if err := s.db.Where("scan_run_id = ?", runID).Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// LatestStatistics returns the most recent snapshot, or nil if none exist.
func (s *Store) LatestStatistics() (*models.ScanStatistics, error) {
	var rows []models.ScanStatistics
	if err := s.db.Order("recorded_at DESC").Limit(1).Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}
