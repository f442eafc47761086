package models

import (
	"time"
)

// Environment is the version-control and host context captured when a run
// starts.
type Environment struct {
	GitBranch        string `json:"git_branch,omitempty"`
	GitCommitHash    string `json:"git_commit_hash,omitempty"`
	GitCommitMessage string `json:"git_commit_message,omitempty"`
	ToolVersion      string `json:"tool_version,omitempty"`
	User             string `json:"user,omitempty"`
	Hostname         string `json:"hostname,omitempty"`
}

// RunCounters are the per-run outcome totals written on completion.
type RunCounters struct {
	Scanned  int `json:"files_scanned"`
	Created  int `json:"files_created"`
	Modified int `json:"files_modified"`
	Deleted  int `json:"files_deleted"`
	Errors   int `json:"errors_encountered"`
}

// ScanRun is one execution of the scan/import/check pipeline. It is created
// with zeroed counters, mutated only by its owning run to finalize, and
// immutable afterwards.
type ScanRun struct {
	ID               uint       `json:"id" gorm:"primaryKey;autoIncrement"`
	StartedAt        time.Time  `json:"started_at" gorm:"column:started_at;not null;index"`
	CompletedAt      *time.Time `json:"completed_at,omitempty" gorm:"column:completed_at"`
	DurationSeconds  float64    `json:"duration_seconds" gorm:"column:duration_seconds"`
	GitBranch        string     `json:"git_branch,omitempty" gorm:"column:git_branch"`
	GitCommitHash    string     `json:"git_commit_hash,omitempty" gorm:"column:git_commit_hash"`
	GitCommitMessage string     `json:"git_commit_message,omitempty" gorm:"column:git_commit_message"`
	ToolVersion      string     `json:"tool_version,omitempty" gorm:"column:tool_version"`
	User             string     `json:"user,omitempty" gorm:"column:user"`
	Hostname         string     `json:"hostname,omitempty" gorm:"column:hostname"`
	FilesScanned     int        `json:"files_scanned" gorm:"column:files_scanned;default:0"`
	FilesCreated     int        `json:"files_created" gorm:"column:files_created;default:0"`
	FilesModified    int        `json:"files_modified" gorm:"column:files_modified;default:0"`
	FilesDeleted     int        `json:"files_deleted" gorm:"column:files_deleted;default:0"`
	Errors           int        `json:"errors_encountered" gorm:"column:errors_encountered;default:0"`
}

func (ScanRun) TableName() string {
	return "scan_runs"
}
