package store

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/flanksource/arch-map/models"
)

// SaveViolation inserts a violation draft unless an open violation of the
// same type already exists for the same file. Returns true when a new row
// was inserted, so rule re-runs against an unchanged snapshot are visible
// no-ops.
func (s *Store) SaveViolation(v models.Violation) (bool, error) {
	inserted := false

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var count int64
		err := tx.Model(&models.Violation{}).
			Where("file_id = ? AND violation_type = ? AND status = ?", v.FileID, v.ViolationType, models.ViolationOpen).
			Count(&count).Error
		if err != nil {
			return fmt.Errorf("failed to check for open violation: %w", err)
		}
		if count > 0 {
			return nil
		}

		v.Status = models.ViolationOpen
		if v.DetectedAt.IsZero() {
			v.DetectedAt = time.Now()
		}
		if err := tx.Create(&v).Error; err != nil {
			return fmt.Errorf("failed to insert violation: %w", err)
		}
		inserted = true
		return nil
	})

	return inserted, err
}

// ResolveViolation flips an open violation to resolved. Resolution is an
// external action; the rule engine never calls this.
func (s *Store) ResolveViolation(id int64) error {
	now := time.Now()
	result := s.db.Model(&models.Violation{}).
		Where("id = ? AND status = ?", id, models.ViolationOpen).
		Updates(map[string]interface{}{
			"status":      models.ViolationResolved,
			"resolved_at": now,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return fmt.Errorf("no open violation with id %d", id)
	}
	return nil
}

// OpenViolations returns all open violations with their file paths joined,
// ordered by severity then path.
func (s *Store) OpenViolations() ([]models.Violation, error) {
	var violations []models.Violation
	err := s.db.Model(&models.Violation{}).
		Select("violations.*, files.file_path AS file_path").
		Joins("JOIN files ON files.id = violations.file_id").
		Where("violations.status = ?", models.ViolationOpen).
		Order(`CASE violations.severity
			WHEN 'critical' THEN 1
			WHEN 'high' THEN 2
			WHEN 'medium' THEN 3
			WHEN 'low' THEN 4 END, files.file_path`).
		Scan(&violations).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list open violations: %w", err)
	}
	return violations, nil
}

// OpenViolationsForFile returns the open violations recorded for one file.
func (s *Store) OpenViolationsForFile(fileID int64) ([]models.Violation, error) {
	var violations []models.Violation
	err := s.db.Where("file_id = ? AND status = ?", fileID, models.ViolationOpen).
		Order("violation_type").Find(&violations).Error
	return violations, err
}
