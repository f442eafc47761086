package models

import (
	"time"
)

// ScanStatistics is the per-run distribution snapshot over the active
// (non-deleted) file set. One row per run, written once, never mutated.
type ScanStatistics struct {
	ID                 int64          `json:"id" gorm:"primaryKey;autoIncrement"`
	ScanRunID          uint           `json:"scan_run_id" gorm:"column:scan_run_id;not null;uniqueIndex"`
	TotalFiles         int            `json:"total_files" gorm:"column:total_files"`
	FilesByLayer       map[string]int `json:"files_by_layer" gorm:"column:files_by_layer;serializer:json"`
	FilesByDomain      map[string]int `json:"files_by_domain" gorm:"column:files_by_domain;serializer:json"`
	FilesByComplexity  map[string]int `json:"files_by_complexity" gorm:"column:files_by_complexity;serializer:json"`
	FilesByConcurrency map[string]int `json:"files_by_concurrency" gorm:"column:files_by_concurrency;serializer:json"`
	TotalLines         int            `json:"total_lines" gorm:"column:total_lines"`
	AvgLinesPerFile    float64        `json:"avg_lines_per_file" gorm:"column:avg_lines_per_file"`
	LargestFile        string         `json:"largest_file" gorm:"column:largest_file"`
	LargestFileLines   int            `json:"largest_file_lines" gorm:"column:largest_file_lines"`
	ComplexFilesCount  int            `json:"complex_files_count" gorm:"column:complex_files_count"`
	ComplexFiles       []string       `json:"complex_files_list" gorm:"column:complex_files_list;serializer:json"`
	RecordedAt         time.Time      `json:"recorded_at" gorm:"column:recorded_at"`
}

func (ScanStatistics) TableName() string {
	return "scan_statistics"
}
