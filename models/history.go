package models

import (
	"time"
)

// ChangeType classifies a reconciliation outcome.
type ChangeType string

const (
	ChangeCreated   ChangeType = "created"
	ChangeModified  ChangeType = "modified"
	ChangeUnchanged ChangeType = "unchanged"
	ChangeDeleted   ChangeType = "deleted"
)

// FieldSnapshot holds the subset of fields captured before and after a
// modification.
type FieldSnapshot struct {
	Layer        string     `json:"layer"`
	DomainEntity string     `json:"domain_entity"`
	Complexity   Complexity `json:"complexity"`
	LineCount    int        `json:"line_count"`
}

// FileHistoryEvent is an append-only log entry. Rows are never updated or
// removed; the sequence of events for a file id, ordered by time,
// reconstructs its full metadata lineage.
type FileHistoryEvent struct {
	ID             int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	FileID         int64          `json:"file_id" gorm:"column:file_id;not null;index"`
	ChangeType     ChangeType     `json:"change_type" gorm:"column:change_type;not null;index"`
	Path           string         `json:"file_path" gorm:"column:file_path;not null"`
	Hash           string         `json:"file_hash,omitempty" gorm:"column:file_hash"`
	LineCount      int            `json:"line_count" gorm:"column:line_count"`
	PreviousValues *FieldSnapshot `json:"previous_values,omitempty" gorm:"column:previous_values;serializer:json"`
	NewValues      *FieldSnapshot `json:"new_values,omitempty" gorm:"column:new_values;serializer:json"`
	ScanRunID      uint           `json:"scan_run_id" gorm:"column:scan_run_id;not null;index"`
	RecordedAt     time.Time      `json:"recorded_at" gorm:"column:recorded_at;not null;index"`
}

func (FileHistoryEvent) TableName() string {
	return "file_history"
}
