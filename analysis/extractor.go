package analysis

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/flanksource/arch-map/models"
)

// Complexity thresholds in non-blank lines.
const (
	SimpleThreshold = 150
	MediumThreshold = 400
)

// Platform modules excluded from the dependency list.
var platformImports = map[string]bool{
	"Foundation": true,
	"SwiftUI":    true,
}

var (
	purposeRe     = regexp.MustCompile(`// PURPOSE:\s*(.+)`)
	docCommentRe  = regexp.MustCompile(`/// (.+)`)
	baseRepoRe    = regexp.MustCompile(`BaseRepository<(\w+)>`)
	inheritanceRe = regexp.MustCompile(`(?:class|struct|enum)\s+\w+\s*:\s*([^{]+)\{`)
	importRe      = regexp.MustCompile(`(?m)^import\s+(\w+)`)
)

// ExtractionError is a per-file extraction failure. The pipeline records it
// in the run's error counter and continues with the remaining files.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("failed to analyze %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extract derives the architectural metadata record for one source file.
// It is a pure function of path and content: no store access, no I/O.
// Every step tolerates a non-match and falls back to a default category.
func Extract(relPath string, content []byte, sizeBytes int64, modTime time.Time) models.FileMetadata {
	text := string(content)

	sum := sha256.Sum256(content)
	lineCount := countNonBlankLines(text)

	return models.FileMetadata{
		Path:            relPath,
		Layer:           ClassifyLayer(relPath),
		DomainEntity:    ClassifyDomain(relPath),
		Purpose:         extractPurpose(text),
		KeyPattern:      extractKeyPattern(text),
		Dependencies:    extractDependencies(text),
		ExtendsConforms: extractInheritance(text),
		Concurrency:     DetectConcurrency(text),
		Complexity:      BucketComplexity(lineCount),
		SizeBytes:       sizeBytes,
		LineCount:       lineCount,
		LastModified:    modTime,
		Hash:            hex.EncodeToString(sum[:]),
	}
}

// BucketComplexity maps a non-blank line count onto a complexity bucket.
func BucketComplexity(lineCount int) models.Complexity {
	switch {
	case lineCount < SimpleThreshold:
		return models.ComplexitySimple
	case lineCount < MediumThreshold:
		return models.ComplexityMedium
	default:
		return models.ComplexityComplex
	}
}

func countNonBlankLines(text string) int {
	count := 0
	for _, line := range strings.Split(text, "\n") {
		if strings.TrimSpace(line) != "" {
			count++
		}
	}
	return count
}

// extractPurpose returns the declared purpose: a "// PURPOSE:" header line,
// else the first single-line doc comment.
func extractPurpose(text string) string {
	if m := purposeRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	if m := docCommentRe.FindStringSubmatch(text); m != nil {
		return strings.TrimSpace(m[1])
	}
	return ""
}

// extractKeyPattern detects the dominant structural pattern. Markers are
// checked in order of specificity, first match wins.
func extractKeyPattern(text string) string {
	if strings.Contains(text, "BaseRepository") {
		if m := baseRepoRe.FindStringSubmatch(text); m != nil {
			return fmt.Sprintf("BaseRepository<%s>", m[1])
		}
		return "BaseRepository"
	}

	if strings.Contains(text, "@Observable") {
		if strings.Contains(text, "@MainActor") {
			return "@Observable @MainActor"
		}
		return "@Observable"
	}

	if strings.Contains(text, "@Table") {
		return "@Table"
	}

	if strings.Contains(text, ": View") {
		return "SwiftUI View"
	}

	if strings.Contains(text, "Coordinator") && strings.Contains(text, ": Sendable") {
		return "Sendable Coordinator"
	}

	return ""
}

// DetectConcurrency combines the presence of the Sendable and @MainActor
// markers into one of five labels.
func DetectConcurrency(text string) string {
	hasSendable := strings.Contains(text, ": Sendable") || strings.Contains(text, "@unchecked Sendable")
	hasMainActor := strings.Contains(text, "@MainActor")

	switch {
	case hasSendable && hasMainActor:
		return "Sendable + @MainActor"
	case strings.Contains(text, "@unchecked Sendable"):
		return "@unchecked Sendable"
	case hasSendable:
		return "Sendable"
	case hasMainActor:
		return "@MainActor"
	default:
		return "None"
	}
}

// extractInheritance collects every type declaration header of the form
// "class/struct/enum Name : SuperList {" and joins the conformance lists.
func extractInheritance(text string) string {
	var lists []string
	for _, m := range inheritanceRe.FindAllStringSubmatch(text, -1) {
		lists = append(lists, strings.TrimSpace(m[1]))
	}
	return strings.Join(lists, ", ")
}

// extractDependencies collects top-level imports, excluding the
// always-present platform modules, deduplicated and sorted.
func extractDependencies(text string) string {
	seen := map[string]bool{}
	var modules []string
	for _, m := range importRe.FindAllStringSubmatch(text, -1) {
		module := m[1]
		if platformImports[module] || seen[module] {
			continue
		}
		seen[module] = true
		modules = append(modules, module)
	}
	sort.Strings(modules)
	return strings.Join(modules, ", ")
}
