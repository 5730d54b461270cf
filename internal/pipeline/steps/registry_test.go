package steps

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStepRegistry(t *testing.T) {
	expectedSteps := []string{
		StepSegment, StepIdentity, StepDegrees, StepExperience,
		StepPublications, StepInference, StepScore,
	}

	for _, stepName := range expectedSteps {
		def, ok := StepRegistry[stepName]
		require.True(t, ok, "Step %s should be in registry", stepName)
		assert.Equal(t, stepName, def.Name)
		assert.NotEmpty(t, def.Category)
	}
	assert.Len(t, StepRegistry, len(expectedSteps))
}

func TestStepRegistry_DependenciesAreKnownAndEarlier(t *testing.T) {
	for name, def := range StepRegistry {
		for _, dep := range append(append([]string{}, def.Dependencies...), def.Optional...) {
			depDef, ok := StepRegistry[dep]
			require.True(t, ok, "Step %s depends on unknown step %s", name, dep)
			assert.Less(t, depDef.Seq, def.Seq, "Step %s must run after %s", name, dep)
		}
	}
}

func TestByCategory(t *testing.T) {
	assert.Equal(t, []string{StepSegment}, ByCategory(CategoryStructure))
	assert.Equal(t, []string{StepIdentity, StepDegrees, StepExperience, StepPublications}, ByCategory(CategoryExtraction))
	assert.Equal(t, []string{StepInference, StepScore}, ByCategory(CategoryInference))
	assert.Empty(t, ByCategory("rendering"))
}

func TestSortBySeq(t *testing.T) {
	names := []string{"zeta", StepScore, "alpha", StepSegment, StepDegrees}
	SortBySeq(names)
	assert.Equal(t, []string{StepSegment, StepDegrees, StepScore, "alpha", "zeta"}, names)
}

func TestDependencyError(t *testing.T) {
	err := &DependencyError{
		Step:                "test_step",
		MissingDependencies: []string{"dep1", "dep2"},
	}

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "missing dependencies")
	assert.Equal(t, "test_step", err.Step)
	assert.Equal(t, []string{"dep1", "dep2"}, err.MissingDependencies)
}

func TestValidateDependencies(t *testing.T) {
	t.Run("unknown step", func(t *testing.T) {
		err := ValidateDependencies(nil, "unknown_step")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "unknown step")
	})

	t.Run("missing dependency", func(t *testing.T) {
		err := ValidateDependencies(map[string]bool{StepSegment: true}, StepInference)
		var depErr *DependencyError
		require.ErrorAs(t, err, &depErr)
		assert.Equal(t, []string{StepDegrees}, depErr.MissingDependencies)
	})

	t.Run("dependencies met", func(t *testing.T) {
		assert.NoError(t, ValidateDependencies(map[string]bool{StepSegment: true}, StepDegrees))
	})

	t.Run("optional inputs never block", func(t *testing.T) {
		assert.NoError(t, ValidateDependencies(map[string]bool{}, StepScore))
	})
}
