package store

import (
	"fmt"
	"time"

	"github.com/flanksource/arch-map/models"
)

// StartRun opens a new run row with zeroed counters and the environment
// fingerprint. A failure here is fatal for the invocation: no reconciliation
// may happen without an owning run.
func (s *Store) StartRun(env models.Environment) (*models.ScanRun, error) {
	run := &models.ScanRun{
		StartedAt:        time.Now(),
		GitBranch:        env.GitBranch,
		GitCommitHash:    env.GitCommitHash,
		GitCommitMessage: env.GitCommitMessage,
		ToolVersion:      env.ToolVersion,
		User:             env.User,
		Hostname:         env.Hostname,
	}

	if err := s.db.Create(run).Error; err != nil {
		return nil, fmt.Errorf("failed to start scan run: %w", err)
	}
	return run, nil
}

// CompleteRun finalizes a run with its counters and end time. Duration is
// computed from the stored start time. Calling twice overwrites end time and
// duration; the ledger has a single writer per run, so last write wins.
func (s *Store) CompleteRun(run *models.ScanRun, counters models.RunCounters) error {
	var stored models.ScanRun
	if err := s.db.First(&stored, run.ID).Error; err != nil {
		return fmt.Errorf("failed to load scan run %d: %w", run.ID, err)
	}

	now := time.Now()
	run.CompletedAt = &now
	run.DurationSeconds = now.Sub(stored.StartedAt).Seconds()
	run.FilesScanned = counters.Scanned
	run.FilesCreated = counters.Created
	run.FilesModified = counters.Modified
	run.FilesDeleted = counters.Deleted
	run.Errors = counters.Errors

	err := s.db.Model(&models.ScanRun{}).Where("id = ?", run.ID).Updates(map[string]interface{}{
		"completed_at":       now,
		"duration_seconds":   run.DurationSeconds,
		"files_scanned":      counters.Scanned,
		"files_created":      counters.Created,
		"files_modified":     counters.Modified,
		"files_deleted":      counters.Deleted,
		"errors_encountered": counters.Errors,
	}).Error
	if err != nil {
		return fmt.Errorf("failed to complete scan run %d: %w", run.ID, err)
	}
	return nil
}

// LatestRun returns the most recently started run, or nil if none exist.
func (s *Store) LatestRun() (*models.ScanRun, error) {
	var runs []models.ScanRun
	if err := s.db.Order("started_at DESC").Limit(1).Find(&runs).Error; err != nil {
		return nil, err
	}
	if len(runs) == 0 {
		return nil, nil
	}
	return &runs[0], nil
}

// Runs returns the most recent runs, newest first.
func (s *Store) Runs(limit int) ([]models.ScanRun, error) {
	var runs []models.ScanRun
	err := s.db.Order("started_at DESC").Limit(limit).Find(&runs).Error
	return runs, err
}
