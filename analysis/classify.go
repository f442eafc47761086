package analysis

import (
	"path/filepath"
	"strings"
)

// LayerUnknown is the fallback when no path fragment matches.
const LayerUnknown = "Unknown"

// DomainCrossCutting is the fallback when no filename fragment matches.
const DomainCrossCutting = "Cross-cutting"

// layerRule maps a path fragment to an architectural layer. Rules are
// evaluated in order and the first match wins, so more specific fragments
// must precede their parent fragment (Repositories/Core before
// Repositories). That ordering is a contract, covered by tests.
type layerRule struct {
	Fragment string
	Layer    string
}

var layerRules = []layerRule{
	{"Models/Abstractions", "Model-Abstraction"},
	{"Models/Basics", "Model-Basic"},
	{"Models/Composits", "Model-Composit"},
	{"Models/DataTypes", "Model-DataType"},
	{"Models/SemanticTypes", "Model-Semantic"},
	{"Models/Deduplication", "Model-Deduplication"},
	{"Database", "Database"},
	{"Repositories/Core", "Repository-Core"},
	{"Repositories", "Repository"},
	{"Coordinators/FormData", "Coordinator-FormData"},
	{"Coordinators", "Coordinator"},
	{"Services/Progress", "Service-Progress"},
	{"Services/Validation", "Service-Validation"},
	{"Services/Embedding", "Service-Embedding"},
	{"Services/Semantic", "Service-Semantic"},
	{"Services/Deduplication", "Service-Deduplication"},
	{"Services/HealthKit", "Service-HealthKit"},
	{"Services/FoundationModels", "Service-FoundationModels"},
	{"Services/ImportExport", "Service-ImportExport"},
	{"Services", "Service-Other"},
	{"ViewModels/FormViewModels", "ViewModel-Form"},
	{"ViewModels/ListViewModels", "ViewModel-List"},
	{"ViewModels/LLMViewModels", "ViewModel-LLM"},
	{"ViewModels", "ViewModel-Utility"},
	{"Views/ListViews", "View-List"},
	{"Views/FormViews", "View-Form"},
	{"Views/RowViews", "View-Row"},
	{"Views/Components", "View-Component"},
	{"Views/Dashboard", "View-Dashboard"},
	{"Views/Debug", "View-Debug"},
	{"Views/Analytics", "View-Analytics"},
	{"Views/Health", "View-Health"},
	{"Views/LLM", "View-LLM"},
	{"Views/CSV", "View-CSV"},
	{"Views/Templates", "View-Template"},
}

// ClassifyLayer resolves the architectural layer from a repository-relative
// path.
func ClassifyLayer(relPath string) string {
	path := filepath.ToSlash(relPath)
	for _, rule := range layerRules {
		if strings.Contains(path, rule.Fragment) {
			return rule.Layer
		}
	}
	return LayerUnknown
}

// domainRule maps a filename-stem fragment to a domain entity. First match
// wins over the lower-cased stem.
type domainRule struct {
	Fragment string
	Domain   string
}

var domainRules = []domainRule{
	{"goal", "Goal"},
	{"action", "Action"},
	{"personalvalue", "PersonalValue"},
	{"value", "PersonalValue"},
	{"measure", "Measure"},
	{"timeperiod", "TimePeriod"},
	{"term", "TimePeriod"},
	{"milestone", "Milestone"},
	{"obligation", "Obligation"},
	{"expectation", "Expectation"},
	{"embedding", "Semantic"},
	{"semantic", "Semantic"},
	{"health", "HealthKit"},
	{"llm", "LLM"},
	{"coach", "LLM"},
	{"foundationmodels", "LLM"},
}

// ClassifyDomain resolves the domain entity from a file path by matching
// fragments against the lower-cased file stem.
func ClassifyDomain(relPath string) string {
	base := filepath.Base(relPath)
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	stem = strings.ToLower(stem)

	for _, rule := range domainRules {
		if strings.Contains(stem, rule.Fragment) {
			return rule.Domain
		}
	}
	return DomainCrossCutting
}
