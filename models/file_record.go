package models

import (
	"time"
)

// Complexity buckets a file's non-blank line count.
type Complexity string

const (
	ComplexitySimple  Complexity = "Simple"
	ComplexityMedium  Complexity = "Medium"
	ComplexityComplex Complexity = "Complex"
)

// FileMetadata is the extractor's view of a single source file. It carries
// everything the store tracks except the store-managed lifecycle fields
// (first seen, last scanned, deletion state).
type FileMetadata struct {
	Path            string     `json:"file_path"`
	Layer           string     `json:"layer"`
	DomainEntity    string     `json:"domain_entity"`
	Purpose         string     `json:"file_purpose,omitempty"`
	KeyPattern      string     `json:"key_pattern,omitempty"`
	Dependencies    string     `json:"dependencies,omitempty"`
	ExtendsConforms string     `json:"extends_conforms,omitempty"`
	Concurrency     string     `json:"concurrency"`
	Complexity      Complexity `json:"complexity"`
	Notes           string     `json:"notes,omitempty"`
	SizeBytes       int64      `json:"file_size_bytes"`
	LineCount       int        `json:"line_count"`
	LastModified    time.Time  `json:"last_modified"`
	Hash            string     `json:"file_hash"`
}

// FileRecord is the persisted row for one logical file, keyed by its
// repository-relative path. At most one non-deleted record exists per path;
// the content hash is the sole change-detection signal.
type FileRecord struct {
	ID              int64      `json:"id" gorm:"primaryKey;autoIncrement"`
	Path            string     `json:"file_path" gorm:"column:file_path;not null;uniqueIndex"`
	Layer           string     `json:"layer" gorm:"column:layer;not null;index"`
	DomainEntity    string     `json:"domain_entity" gorm:"column:domain_entity;not null;index"`
	Purpose         string     `json:"file_purpose,omitempty" gorm:"column:file_purpose"`
	KeyPattern      string     `json:"key_pattern,omitempty" gorm:"column:key_pattern"`
	Dependencies    string     `json:"dependencies,omitempty" gorm:"column:dependencies"`
	ExtendsConforms string     `json:"extends_conforms,omitempty" gorm:"column:extends_conforms"`
	Concurrency     string     `json:"concurrency" gorm:"column:concurrency"`
	Complexity      Complexity `json:"complexity" gorm:"column:complexity;index"`
	Notes           string     `json:"notes,omitempty" gorm:"column:notes"`
	SizeBytes       int64      `json:"file_size_bytes" gorm:"column:file_size_bytes"`
	LineCount       int        `json:"line_count" gorm:"column:line_count"`
	LastModified    time.Time  `json:"last_modified" gorm:"column:last_modified"`
	Hash            string     `json:"file_hash" gorm:"column:file_hash;index"`
	FirstSeen       time.Time  `json:"first_seen" gorm:"column:first_seen"`
	LastScanned     time.Time  `json:"last_scanned" gorm:"column:last_scanned"`
	IsDeleted       bool       `json:"is_deleted" gorm:"column:is_deleted;default:false;index"`
	DeletedAt       *time.Time `json:"deleted_at,omitempty" gorm:"column:deleted_at"`
}

func (FileRecord) TableName() string {
	return "files"
}

// ApplyMetadata overwrites every extractor-tracked field from meta, leaving
// lifecycle fields untouched.
func (f *FileRecord) ApplyMetadata(meta FileMetadata) {
	f.Path = meta.Path
	f.Layer = meta.Layer
	f.DomainEntity = meta.DomainEntity
	f.Purpose = meta.Purpose
	f.KeyPattern = meta.KeyPattern
	f.Dependencies = meta.Dependencies
	f.ExtendsConforms = meta.ExtendsConforms
	f.Concurrency = meta.Concurrency
	f.Complexity = meta.Complexity
	f.Notes = meta.Notes
	f.SizeBytes = meta.SizeBytes
	f.LineCount = meta.LineCount
	f.LastModified = meta.LastModified
	f.Hash = meta.Hash
}

// Snapshot captures the fields tracked in modification history events.
func (f *FileRecord) Snapshot() FieldSnapshot {
	return FieldSnapshot{
		Layer:        f.Layer,
		DomainEntity: f.DomainEntity,
		Complexity:   f.Complexity,
		LineCount:    f.LineCount,
	}
}

// SnapshotOf captures the tracked fields of an incoming metadata record.
func SnapshotOf(meta FileMetadata) FieldSnapshot {
	return FieldSnapshot{
		Layer:        meta.Layer,
		DomainEntity: meta.DomainEntity,
		Complexity:   meta.Complexity,
		LineCount:    meta.LineCount,
	}
}
