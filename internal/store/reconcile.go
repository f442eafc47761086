package store

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/flanksource/arch-map/models"
)

// Reconcile matches an incoming metadata record against the stored one and
// classifies the outcome.
//
// The lookup matches on path regardless of the soft-deletion flag. A
// soft-deleted record whose path reappears has its deletion flag and
// timestamp cleared and always produces exactly one modified event, even
// when the content hash is unchanged, so the history records the
// resurrection.
//
// Unchanged content touches only last_scanned and writes no history event:
// the hash is the sole change-detection signal.
func (s *Store) Reconcile(meta models.FileMetadata, runID uint) (int64, models.ChangeType, error) {
	var fileID int64
	var outcome models.ChangeType

	err := s.db.Transaction(func(tx *gorm.DB) error {
		now := time.Now()

		var existing models.FileRecord
		err := tx.Where("file_path = ?", meta.Path).First(&existing).Error

		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			record := models.FileRecord{
				FirstSeen:   now,
				LastScanned: now,
			}
			record.ApplyMetadata(meta)
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to insert file record: %w", err)
			}

			event := models.FileHistoryEvent{
				FileID:     record.ID,
				ChangeType: models.ChangeCreated,
				Path:       meta.Path,
				Hash:       meta.Hash,
				LineCount:  meta.LineCount,
				ScanRunID:  runID,
				RecordedAt: now,
			}
			if err := tx.Create(&event).Error; err != nil {
				return fmt.Errorf("failed to record created event: %w", err)
			}

			fileID = record.ID
			outcome = models.ChangeCreated
			return nil

		case err != nil:
			return fmt.Errorf("failed to look up file record: %w", err)
		}

		fileID = existing.ID

		if existing.Hash == meta.Hash && !existing.IsDeleted {
			outcome = models.ChangeUnchanged
			return tx.Model(&models.FileRecord{}).Where("id = ?", existing.ID).
				Update("last_scanned", now).Error
		}

		previous := existing.Snapshot()
		next := models.SnapshotOf(meta)

		existing.ApplyMetadata(meta)
		existing.LastScanned = now
		existing.IsDeleted = false
		existing.DeletedAt = nil

		if err := tx.Model(&models.FileRecord{}).Where("id = ?", existing.ID).
			Select("*").Omit("id", "first_seen").Updates(&existing).Error; err != nil {
			return fmt.Errorf("failed to update file record: %w", err)
		}

		event := models.FileHistoryEvent{
			FileID:         existing.ID,
			ChangeType:     models.ChangeModified,
			Path:           meta.Path,
			Hash:           meta.Hash,
			LineCount:      meta.LineCount,
			PreviousValues: &previous,
			NewValues:      &next,
			ScanRunID:      runID,
			RecordedAt:     now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return fmt.Errorf("failed to record modified event: %w", err)
		}

		outcome = models.ChangeModified
		return nil
	})

	if err != nil {
		return 0, "", err
	}
	return fileID, outcome, nil
}

// FinalizeDeletions soft-deletes every active record whose path was not
// observed in the current scan and appends one deleted event each. It must
// run only after every file of the scan has been reconciled: the seen set
// has to be complete, or live files would be flagged as deleted.
func (s *Store) FinalizeDeletions(seen map[string]struct{}, runID uint) (int64, error) {
	var deleted int64

	err := s.db.Transaction(func(tx *gorm.DB) error {
		var active []models.FileRecord
		if err := tx.Where("is_deleted = ?", false).Find(&active).Error; err != nil {
			return fmt.Errorf("failed to list active files: %w", err)
		}

		now := time.Now()
		for _, record := range active {
			if _, ok := seen[record.Path]; ok {
				continue
			}

			err := tx.Model(&models.FileRecord{}).Where("id = ?", record.ID).Updates(map[string]interface{}{
				"is_deleted": true,
				"deleted_at": now,
			}).Error
			if err != nil {
				return fmt.Errorf("failed to mark %s deleted: %w", record.Path, err)
			}

			event := models.FileHistoryEvent{
				FileID:     record.ID,
				ChangeType: models.ChangeDeleted,
				Path:       record.Path,
				Hash:       record.Hash,
				LineCount:  record.LineCount,
				ScanRunID:  runID,
				RecordedAt: now,
			}
			if err := tx.Create(&event).Error; err != nil {
				return fmt.Errorf("failed to record deleted event: %w", err)
			}

			deleted++
		}
		return nil
	})

	if err != nil {
		return 0, err
	}
	return deleted, nil
}

// History returns the full event lineage for a file id, oldest first.
func (s *Store) History(fileID int64) ([]models.FileHistoryEvent, error) {
	var events []models.FileHistoryEvent
	err := s.db.Where("file_id = ?", fileID).Order("recorded_at ASC, id ASC").Find(&events).Error
	return events, err
}

// RecentChanges returns the history events recorded within the window,
// newest first.
func (s *Store) RecentChanges(window time.Duration) ([]models.FileHistoryEvent, error) {
	var events []models.FileHistoryEvent
	cutoff := time.Now().Add(-window)
	err := s.db.Where("recorded_at >= ?", cutoff).Order("recorded_at DESC, id DESC").Find(&events).Error
	return events, err
}
