package store

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/flanksource/arch-map/models"
	_ "modernc.org/sqlite"
)

// Store is the explicit handle to the architecture database. It exclusively
// owns the files and file_history tables and serializes whole pipeline runs:
// no two runs may reconcile concurrently against the same handle.
type Store struct {
	db    *gorm.DB
	path  string
	runMu sync.Mutex
}

// Open opens (creating if necessary) the architecture database at path,
// migrates the schema and creates the derived read views.
func Open(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// DriverName "sqlite" routes GORM through the pure-Go modernc driver.
	db, err := gorm.Open(sqlite.Dialector{DriverName: "sqlite", DSN: path}, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}

	// Configure SQLite for concurrent access
	if _, err := sqlDB.Exec("PRAGMA journal_mode=WAL"); err != nil {
		return nil, fmt.Errorf("failed to set WAL mode: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA busy_timeout=5000"); err != nil {
		return nil, fmt.Errorf("failed to set busy timeout: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA foreign_keys=ON"); err != nil {
		return nil, fmt.Errorf("failed to enable foreign keys: %w", err)
	}
	if _, err := sqlDB.Exec("PRAGMA synchronous=NORMAL"); err != nil {
		return nil, fmt.Errorf("failed to set synchronous mode: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.migrate(); err != nil {
		_ = sqlDB.Close()
		return nil, err
	}

	return s, nil
}

// migrate auto-migrates all models and (re)creates the derived views.
func (s *Store) migrate() error {
	modelsToMigrate := []interface{}{
		&models.ScanRun{},
		&models.FileRecord{},
		&models.FileHistoryEvent{},
		&models.Violation{},
		&models.ScanStatistics{},
	}

	for _, model := range modelsToMigrate {
		if err := s.db.AutoMigrate(model); err != nil {
			return fmt.Errorf("failed to migrate model %T: %w", model, err)
		}
	}

	return s.createViews()
}

// createViews defines the derived read views over the base tables.
func (s *Store) createViews() error {
	views := []string{
		`CREATE VIEW IF NOT EXISTS active_files AS
			SELECT * FROM files WHERE is_deleted = 0`,
		`CREATE VIEW IF NOT EXISTS files_by_layer AS
			SELECT layer, COUNT(*) AS count, AVG(line_count) AS avg_lines
			FROM files WHERE is_deleted = 0
			GROUP BY layer ORDER BY count DESC`,
		`CREATE VIEW IF NOT EXISTS files_by_domain AS
			SELECT domain_entity, COUNT(*) AS count
			FROM files WHERE is_deleted = 0
			GROUP BY domain_entity ORDER BY count DESC`,
		`CREATE VIEW IF NOT EXISTS files_by_complexity AS
			SELECT complexity, COUNT(*) AS count
			FROM files WHERE is_deleted = 0
			GROUP BY complexity`,
		`CREATE VIEW IF NOT EXISTS recent_changes AS
			SELECT h.*, r.started_at AS run_started_at
			FROM file_history h
			JOIN scan_runs r ON r.id = h.scan_run_id
			WHERE h.recorded_at >= datetime('now', '-7 days')`,
		`CREATE VIEW IF NOT EXISTS scan_summary AS
			SELECT r.*, s.total_files, s.total_lines
			FROM scan_runs r
			LEFT JOIN scan_statistics s ON s.scan_run_id = r.id`,
	}

	for _, view := range views {
		if err := s.db.Exec(view).Error; err != nil {
			return fmt.Errorf("failed to create view: %w", err)
		}
	}
	return nil
}

// WithRunLock serializes a whole pipeline run against this handle. The
// deletion-finalization invariant requires that no other run interleaves
// reconciles, otherwise each run would see the other's in-flight paths as
// spurious deletions.
func (s *Store) WithRunLock(fn func() error) error {
	s.runMu.Lock()
	defer s.runMu.Unlock()
	return fn()
}

// Path returns the on-disk location of the database.
func (s *Store) Path() string {
	return s.path
}

// Close releases the underlying database connection.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
