package rules

import (
	"fmt"
	"strings"

	"github.com/flanksource/commons/logger"
	"github.com/samber/lo"

	"github.com/flanksource/arch-map/internal/store"
	"github.com/flanksource/arch-map/models"
)

// Rule is one declarative architectural check: a pure predicate over a
// single active file record. Applies narrows the snapshot; Check returns
// true when the record violates the rule.
type Rule struct {
	Name           string
	Severity       models.Severity
	Applies        func(models.FileRecord) bool
	Check          func(models.FileRecord) bool
	Describe       func(models.FileRecord) string
	Recommendation string
}

// sendableLayers are the layers required to declare a thread-safety marker.
var sendableLayers = []string{"Coordinator", "Repository", "Service-Progress", "Service-Validation"}

// Builtin is the fixed rule set. Rules only ever open violations;
// resolution is an external action.
var Builtin = []Rule{
	{
		Name:     "missing_baserepository",
		Severity: models.SeverityHigh,
		Applies: func(f models.FileRecord) bool {
			return f.Layer == "Repository" && !strings.Contains(f.Path, "/Core/")
		},
		Check: func(f models.FileRecord) bool {
			return !strings.Contains(f.ExtendsConforms, "BaseRepository")
		},
		Describe: func(f models.FileRecord) string {
			return fmt.Sprintf("Repository %s does not extend BaseRepository", f.Path)
		},
		Recommendation: "Extend BaseRepository<DataType> for consistency with the canonical pattern",
	},
	{
		Name:     "missing_sendable",
		Severity: models.SeverityMedium,
		Applies: func(f models.FileRecord) bool {
			return lo.Contains(sendableLayers, f.Layer)
		},
		Check: func(f models.FileRecord) bool {
			return !strings.Contains(f.Concurrency, "Sendable")
		},
		Describe: func(f models.FileRecord) string {
			return fmt.Sprintf("%s %s is not Sendable", f.Layer, f.Path)
		},
		Recommendation: "Add Sendable conformance for Swift 6 concurrency safety",
	},
	{
		Name:     "missing_mainactor",
		Severity: models.SeverityHigh,
		Applies: func(f models.FileRecord) bool {
			return strings.HasPrefix(f.Layer, "ViewModel")
		},
		Check: func(f models.FileRecord) bool {
			return !strings.Contains(f.Concurrency, "@MainActor")
		},
		Describe: func(f models.FileRecord) string {
			return fmt.Sprintf("ViewModel %s is missing @MainActor", f.Path)
		},
		Recommendation: "Add @MainActor to ensure UI updates happen on the main thread",
	},
}

// Engine evaluates the rule set against the active snapshot and persists
// deduplicated violations.
type Engine struct {
	store *store.Store
	rules []Rule
}

// NewEngine returns an engine over the builtin rule set.
func NewEngine(s *store.Store) *Engine {
	return &Engine{store: s, rules: Builtin}
}

// Evaluate returns the violation drafts for one snapshot without touching
// the store.
func (e *Engine) Evaluate(files []models.FileRecord) []models.Violation {
	var drafts []models.Violation
	for _, rule := range e.rules {
		for _, f := range files {
			if !rule.Applies(f) || !rule.Check(f) {
				continue
			}
			drafts = append(drafts, models.Violation{
				FileID:         f.ID,
				FilePath:       f.Path,
				ViolationType:  rule.Name,
				Severity:       rule.Severity,
				Description:    rule.Describe(f),
				Recommendation: rule.Recommendation,
			})
		}
	}
	return drafts
}

// Check runs every rule over the current non-deleted snapshot and saves the
// resulting violations. Already-open violations of the same kind on the
// same file are left untouched, so Check is safe to re-run every scan.
// Returns the violations newly opened by this call.
func (e *Engine) Check() ([]models.Violation, error) {
	files, err := e.store.ActiveFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to load active snapshot: %w", err)
	}

	var opened []models.Violation
	for _, draft := range e.Evaluate(files) {
		inserted, err := e.store.SaveViolation(draft)
		if err != nil {
			return opened, fmt.Errorf("failed to save violation %s for %s: %w", draft.ViolationType, draft.FilePath, err)
		}
		if inserted {
			opened = append(opened, draft)
		} else {
			logger.Debugf("violation %s already open for %s", draft.ViolationType, draft.FilePath)
		}
	}

	return opened, nil
}
