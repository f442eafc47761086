package analysis

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyLayer(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"swift/Sources/Models/Abstractions/Entity.swift", "Model-Abstraction"},
		{"swift/Sources/Models/Basics/Goal.swift", "Model-Basic"},
		{"swift/Sources/Database/Schema.swift", "Database"},
		{"swift/Sources/Repositories/GoalRepository.swift", "Repository"},
		{"swift/Sources/Coordinators/SyncCoordinator.swift", "Coordinator"},
		{"swift/Sources/Services/Validation/Validator.swift", "Service-Validation"},
		{"swift/Sources/Services/Anything/Helper.swift", "Service-Other"},
		{"swift/Sources/ViewModels/FormViewModels/GoalFormVM.swift", "ViewModel-Form"},
		{"swift/Sources/ViewModels/Misc.swift", "ViewModel-Utility"},
		{"swift/Sources/Views/Dashboard/Home.swift", "View-Dashboard"},
		{"README.md", "Unknown"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyLayer(tt.path), "path=%s", tt.path)
	}
}

// Specificity ordering is load-bearing: a sub-category fragment must win
// over its parent fragment regardless of table growth.
func TestClassifyLayer_SpecificBeforeGeneral(t *testing.T) {
	assert.Equal(t, "Repository-Core", ClassifyLayer("Repositories/Core/BaseRepository.swift"))
	assert.Equal(t, "Repository", ClassifyLayer("Repositories/GoalRepository.swift"))
	assert.Equal(t, "Coordinator-FormData", ClassifyLayer("Coordinators/FormData/GoalForm.swift"))
	assert.Equal(t, "Coordinator", ClassifyLayer("Coordinators/Sync.swift"))
	assert.Equal(t, "ViewModel-LLM", ClassifyLayer("ViewModels/LLMViewModels/Coach.swift"))
}

// The rule table itself must keep every specific fragment ahead of any
// parent fragment it contains.
func TestLayerRules_OrderingContract(t *testing.T) {
	for i, specific := range layerRules {
		for j, general := range layerRules {
			if i == j || !strings.Contains(specific.Fragment, general.Fragment) {
				continue
			}
			assert.Less(t, i, j,
				"fragment %q must come before its parent %q", specific.Fragment, general.Fragment)
		}
	}
}

func TestClassifyDomain(t *testing.T) {
	tests := []struct {
		path     string
		expected string
	}{
		{"Models/Basics/Goal.swift", "Goal"},
		{"Views/ListViews/ActionListView.swift", "Action"},
		{"Models/PersonalValue.swift", "PersonalValue"},
		{"Services/ValueAlignment.swift", "PersonalValue"},
		{"Models/Measure.swift", "Measure"},
		{"Models/TimePeriod.swift", "TimePeriod"},
		{"Models/MidTermGoal.swift", "Goal"},
		{"Services/Embedding/EmbeddingService.swift", "Semantic"},
		{"Services/HealthKit/HealthSync.swift", "HealthKit"},
		{"ViewModels/LLMViewModels/CoachViewModel.swift", "LLM"},
		{"Views/Components/Button.swift", "Cross-cutting"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.expected, ClassifyDomain(tt.path), "path=%s", tt.path)
	}
}

func TestClassifyDomain_IsCaseInsensitive(t *testing.T) {
	assert.Equal(t, "Goal", ClassifyDomain("GOALRepository.swift"))
	assert.Equal(t, "Milestone", ClassifyDomain("milestoneRow.swift"))
}
