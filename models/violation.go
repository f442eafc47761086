package models

import (
	"fmt"
	"time"
)

// Severity ranks a violation.
type Severity string

const (
	SeverityLow      Severity = "low"
	SeverityMedium   Severity = "medium"
	SeverityHigh     Severity = "high"
	SeverityCritical Severity = "critical"
)

// Rank orders severities for display, critical first.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 0
	case SeverityHigh:
		return 1
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 3
	}
	return 4
}

// ViolationStatus is the lifecycle state of a violation.
type ViolationStatus string

const (
	ViolationOpen     ViolationStatus = "open"
	ViolationResolved ViolationStatus = "resolved"
)

// Violation records a deviation from a declared architectural rule. At most
// one open violation exists per (file id, violation type); re-detection is a
// no-op. Violations are never auto-resolved by the rule engine.
type Violation struct {
	ID             int64           `json:"id" gorm:"primaryKey;autoIncrement"`
	FileID         int64           `json:"file_id" gorm:"column:file_id;not null;index"`
	ViolationType  string          `json:"violation_type" gorm:"column:violation_type;not null;index"`
	Severity       Severity        `json:"severity" gorm:"column:severity;not null"`
	Description    string          `json:"description" gorm:"column:description"`
	Recommendation string          `json:"recommendation" gorm:"column:recommendation"`
	Status         ViolationStatus `json:"status" gorm:"column:status;not null;default:open;index"`
	DetectedAt     time.Time       `json:"detected_at" gorm:"column:detected_at"`
	ResolvedAt     *time.Time      `json:"resolved_at,omitempty" gorm:"column:resolved_at"`

	// Joined for display, not persisted on this table.
	FilePath string `json:"file_path,omitempty" gorm:"->;-:migration"`
}

func (Violation) TableName() string {
	return "violations"
}

func (v Violation) String() string {
	path := v.FilePath
	if path == "" {
		path = fmt.Sprintf("file#%d", v.FileID)
	}
	return fmt.Sprintf("[%s] %s: %s", v.Severity, v.ViolationType, path)
}
