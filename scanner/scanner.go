package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"sync"

	"github.com/flanksource/commons/logger"

	"github.com/flanksource/arch-map/analysis"
	"github.com/flanksource/arch-map/config"
	"github.com/flanksource/arch-map/internal/files"
	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
	"github.com/flanksource/arch-map/rules"
)

// Options tunes one pipeline run.
type Options struct {
	// Workers bounds the parallel extraction pool. Zero means NumCPU.
	Workers int
	// CheckViolations runs the rule engine against the settled snapshot
	// inside the same run.
	CheckViolations bool
}

// Summary is the outcome of one pipeline run.
type Summary struct {
	Run      *models.ScanRun
	Counters models.RunCounters
	Stats    models.ScanStatistics
	// Opened lists the violations newly opened by this run.
	Opened []models.Violation
	// Failures holds the per-file extraction errors; already counted in
	// Counters.Errors.
	Failures []*analysis.ExtractionError
}

// extraction carries one worker result to the reconciler.
type extraction struct {
	meta models.FileMetadata
	err  *analysis.ExtractionError
}

// Run executes the full scan pipeline: parallel extraction, serialized
// reconciliation, deletion finalization, optional rule check, statistics
// and ledger close. Per-file failures are counted and skipped; only
// ledger or snapshot-level store failures abort the run.
func Run(st *store.Store, cfg config.Config, env models.Environment, opts Options) (*Summary, error) {
	sources, err := files.FindSourceFiles(cfg.SourceDir, cfg.Extensions, cfg.Exclude)
	if err != nil {
		return nil, fmt.Errorf("failed to list source files: %w", err)
	}
	logger.Infof("Found %d source files under %s", len(sources), cfg.SourceDir)

	run, err := st.StartRun(env)
	if err != nil {
		return nil, err
	}

	summary := &Summary{Run: run}

	err = st.WithRunLock(func() error {
		results := extractAll(cfg.SourceDir, sources, opts.Workers)
		seen := reconcileAll(st, results, run.ID, summary)

		deleted, err := st.FinalizeDeletions(seen, run.ID)
		if err != nil {
			return fmt.Errorf("failed to finalize deletions: %w", err)
		}
		summary.Counters.Deleted = int(deleted)

		if opts.CheckViolations {
			opened, err := rules.NewEngine(st).Check()
			if err != nil {
				return err
			}
			summary.Opened = opened
		}

		active, err := st.ActiveFiles()
		if err != nil {
			return fmt.Errorf("failed to load active snapshot: %w", err)
		}
		summary.Stats = Aggregate(active, run.ID)
		if err := st.SaveStatistics(summary.Stats); err != nil {
			return err
		}

		return st.CompleteRun(run, summary.Counters)
	})
	if err != nil {
		return summary, err
	}

	logger.Infof("Scan complete: %d scanned, %d created, %d modified, %d deleted, %d errors",
		summary.Counters.Scanned, summary.Counters.Created, summary.Counters.Modified,
		summary.Counters.Deleted, summary.Counters.Errors)

	return summary, nil
}

// reconcileAll drains the extraction results into the store and returns
// the set of paths observed on disk. Reconciliation is single-writer: the
// seen set must be complete and consistent before deletions are finalized.
// A path whose extraction succeeded but whose reconcile failed is still
// part of the set: the file exists on disk, and treating a failed write as
// an absence would let FinalizeDeletions flag a live file as deleted.
func reconcileAll(st *store.Store, results <-chan extraction, runID uint, summary *Summary) map[string]struct{} {
	seen := map[string]struct{}{}
	for result := range results {
		if result.err != nil {
			logger.Errorf("%v", result.err)
			summary.Failures = append(summary.Failures, result.err)
			summary.Counters.Errors++
			continue
		}
		seen[result.meta.Path] = struct{}{}

		_, outcome, err := st.Reconcile(result.meta, runID)
		if err != nil {
			logger.Errorf("failed to reconcile %s: %v", result.meta.Path, err)
			summary.Counters.Errors++
			continue
		}

		summary.Counters.Scanned++
		switch outcome {
		case models.ChangeCreated:
			summary.Counters.Created++
		case models.ChangeModified:
			summary.Counters.Modified++
		}
	}
	return seen
}

// extractAll fans the source list out to a bounded worker pool. Extraction
// has no shared mutable state; results drain through the returned channel
// for the single reconciler to consume.
func extractAll(rootDir string, sources []string, workers int) <-chan extraction {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	jobs := make(chan string)
	results := make(chan extraction)

	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for relPath := range jobs {
				results <- extractOne(rootDir, relPath)
			}
		}()
	}

	go func() {
		for _, relPath := range sources {
			jobs <- relPath
		}
		close(jobs)
		wg.Wait()
		close(results)
	}()

	return results
}

// extractOne reads and analyzes a single file. Any failure, including a
// panic on pathological content, becomes an ExtractionError so one bad file
// never blocks the rest of the scan.
func extractOne(rootDir, relPath string) (result extraction) {
	defer func() {
		if r := recover(); r != nil {
			result = extraction{err: &analysis.ExtractionError{
				Path: relPath,
				Err:  fmt.Errorf("panic during extraction: %v", r),
			}}
		}
	}()

	absPath := filepath.Join(rootDir, relPath)

	info, err := os.Stat(absPath)
	if err != nil {
		return extraction{err: &analysis.ExtractionError{Path: relPath, Err: err}}
	}

	content, err := os.ReadFile(absPath)
	if err != nil {
		return extraction{err: &analysis.ExtractionError{Path: relPath, Err: err}}
	}

	meta := analysis.Extract(relPath, content, info.Size(), info.ModTime())
	return extraction{meta: meta}
}
