// Package steps provides stage definitions and dependency validation for the
// resume analysis pipeline.
package steps

import (
	"fmt"
	"sort"
)

// Stage names
const (
	StepSegment      = "segment"
	StepIdentity     = "identity"
	StepDegrees      = "degrees"
	StepExperience   = "experience"
	StepPublications = "publications"
	StepInference    = "inference"
	StepScore        = "score"
)

// Stage categories
const (
	CategoryStructure  = "structure"
	CategoryExtraction = "extraction"
	CategoryInference  = "inference"
)

// StepDefinition defines metadata for a pipeline stage
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
	// Optional inputs are used when present but never block the stage
	Optional []string
	// Seq is the stage's position in a sequential run
	Seq int
}

// StepRegistry holds all stage definitions
var StepRegistry = map[string]StepDefinition{
	StepSegment: {
		Name:         StepSegment,
		Category:     CategoryStructure,
		Dependencies: []string{},
		Optional:     []string{},
		Seq:          0,
	},
	StepIdentity: {
		Name:         StepIdentity,
		Category:     CategoryExtraction,
		Dependencies: []string{StepSegment},
		Optional:     []string{},
		Seq:          1,
	},
	StepDegrees: {
		Name:         StepDegrees,
		Category:     CategoryExtraction,
		Dependencies: []string{StepSegment},
		Optional:     []string{},
		Seq:          2,
	},
	StepExperience: {
		Name:         StepExperience,
		Category:     CategoryExtraction,
		Dependencies: []string{StepSegment},
		Optional:     []string{},
		Seq:          3,
	},
	StepPublications: {
		Name:         StepPublications,
		Category:     CategoryExtraction,
		Dependencies: []string{StepSegment},
		Optional:     []string{},
		Seq:          4,
	},
	StepInference: {
		Name:         StepInference,
		Category:     CategoryInference,
		Dependencies: []string{StepDegrees},
		Optional:     []string{},
		Seq:          5,
	},
	StepScore: {
		Name:         StepScore,
		Category:     CategoryInference,
		Dependencies: []string{},
		Optional:     []string{StepInference, StepExperience, StepPublications},
		Seq:          6,
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("missing dependencies: %v", e.MissingDependencies)
}

// ValidateDependencies checks if all required dependencies for a stage are completed
func ValidateDependencies(completed map[string]bool, stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	var missing []string
	for _, dep := range def.Dependencies {
		if !completed[dep] {
			missing = append(missing, dep)
		}
	}

	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}

	return nil
}

// ByCategory returns the stages of a category in sequential order
func ByCategory(category string) []string {
	var names []string
	for name, def := range StepRegistry {
		if def.Category == category {
			names = append(names, name)
		}
	}
	SortBySeq(names)
	return names
}

// SortBySeq orders stage names by their sequential position. Unknown names
// sort last, alphabetically.
func SortBySeq(names []string) {
	sort.SliceStable(names, func(i, j int) bool {
		di, oki := StepRegistry[names[i]]
		dj, okj := StepRegistry[names[j]]
		switch {
		case oki && okj:
			return di.Seq < dj.Seq
		case oki != okj:
			return oki
		default:
			return names[i] < names[j]
		}
	})
}
