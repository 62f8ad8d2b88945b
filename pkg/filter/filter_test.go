/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: filter_test.go
Description: Tests for confidence-threshold filtering: partition completeness,
monotonicity, boundary thresholds, threshold validation, and advisory warnings.
*/

package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

func parsedFixture() *patterns.ParsedExamples {
	return &patterns.ParsedExamples{
		Patterns: []patterns.Pattern{
			{Type: patterns.FieldMapping, TargetPath: "id", Confidence: 1.0},
			{Type: patterns.Concatenation, TargetPath: "full_name", Confidence: 0.9},
			{Type: patterns.TypeConversion, TargetPath: "salary", Confidence: 0.75},
			{Type: patterns.Conditional, TargetPath: "grade", Confidence: 0.65},
			{Type: patterns.Custom, TargetPath: "token", Confidence: 0.6},
		},
		Unresolved:    []string{"noise"},
		ExamplesCount: 4,
	}
}

// TestByThresholdPartition tests that included and excluded are a disjoint
// cover of the input patterns
func TestByThresholdPartition(t *testing.T) {
	parsed := parsedFixture()
	filtered, err := ByThreshold(parsed, 0.7)
	require.NoError(t, err)

	assert.Equal(t, 0.7, filtered.Threshold)
	assert.Len(t, filtered.Included, 3)
	assert.Len(t, filtered.Excluded, 2)
	assert.Equal(t, len(parsed.Patterns), len(filtered.Included)+len(filtered.Excluded))

	seen := make(map[string]int)
	for _, p := range filtered.Included {
		assert.GreaterOrEqual(t, p.Confidence, 0.7)
		seen[p.TargetPath]++
	}
	for _, p := range filtered.Excluded {
		assert.Less(t, p.Confidence, 0.7)
		seen[p.TargetPath]++
	}
	for path, n := range seen {
		assert.Equal(t, 1, n, path)
	}

	// The source result is never mutated
	assert.Len(t, parsed.Patterns, 5)
	assert.Equal(t, []string{"noise"}, parsed.Unresolved)
}

// TestByThresholdMonotonic tests that raising the threshold never adds a
// pattern to the included set
func TestByThresholdMonotonic(t *testing.T) {
	parsed := parsedFixture()
	loose, err := ByThreshold(parsed, 0.6)
	require.NoError(t, err)
	strict, err := ByThreshold(parsed, 0.9)
	require.NoError(t, err)

	looseSet := make(map[string]bool)
	for _, p := range loose.Included {
		looseSet[p.TargetPath] = true
	}
	for _, p := range strict.Included {
		assert.True(t, looseSet[p.TargetPath], "strict included %q missing from loose set", p.TargetPath)
	}
	assert.LessOrEqual(t, len(strict.Included), len(loose.Included))
}

// TestByThresholdBoundaries tests the inclusive comparison at 0.0 and 1.0
func TestByThresholdBoundaries(t *testing.T) {
	parsed := parsedFixture()

	all, err := ByThreshold(parsed, 0.0)
	require.NoError(t, err)
	assert.Len(t, all.Included, 5)
	assert.Empty(t, all.Excluded)

	top, err := ByThreshold(parsed, 1.0)
	require.NoError(t, err)
	require.Len(t, top.Included, 1)
	assert.Equal(t, "id", top.Included[0].TargetPath)
	assert.Len(t, top.Excluded, 4)

	// Boundary equality includes
	exact, err := ByThreshold(parsed, 0.75)
	require.NoError(t, err)
	paths := make([]string, 0, len(exact.Included))
	for _, p := range exact.Included {
		paths = append(paths, p.TargetPath)
	}
	assert.Contains(t, paths, "salary")
}

// TestByThresholdInvalid tests rejection of thresholds outside [0.0, 1.0]
func TestByThresholdInvalid(t *testing.T) {
	for _, th := range []float64{-0.1, 1.1, 2.0} {
		_, err := ByThreshold(parsedFixture(), th)
		require.Error(t, err, "threshold %v", th)
		var invalid *InvalidThresholdError
		require.ErrorAs(t, err, &invalid)
		assert.Equal(t, th, invalid.Threshold)
	}
}

// TestByThresholdSummaryWarning tests the bulk-exclusion summary warning
func TestByThresholdSummaryWarning(t *testing.T) {
	filtered, err := ByThreshold(parsedFixture(), 0.95)
	require.NoError(t, err)
	require.Len(t, filtered.Excluded, 4)
	require.NotEmpty(t, filtered.Warnings)
	assert.Contains(t, filtered.Warnings[0], "4 patterns excluded")
	assert.Contains(t, filtered.Warnings[0], "grade")

	// Two exclusions stay below the summary threshold
	quiet, err := ByThreshold(parsedFixture(), 0.7)
	require.NoError(t, err)
	require.Len(t, quiet.Excluded, 2)
	assert.Empty(t, quiet.Warnings)
}

// TestByThresholdFieldMappingWarning tests the advisory for a direct mapping
// falling below threshold
func TestByThresholdFieldMappingWarning(t *testing.T) {
	parsed := &patterns.ParsedExamples{
		Patterns: []patterns.Pattern{
			{Type: patterns.FieldMapping, TargetPath: "id", Confidence: 0.55},
			{Type: patterns.Concatenation, TargetPath: "full_name", Confidence: 0.9},
		},
	}
	filtered, err := ByThreshold(parsed, 0.7)
	require.NoError(t, err)
	require.Len(t, filtered.Warnings, 1)
	assert.Contains(t, filtered.Warnings[0], "FIELD_MAPPING")
	assert.Contains(t, filtered.Warnings[0], `"id"`)
	assert.Contains(t, filtered.Warnings[0], "review recommended")
}

// TestPresetValues tests the named preset constants
func TestPresetValues(t *testing.T) {
	assert.Equal(t, 0.8, Conservative)
	assert.Equal(t, 0.7, Balanced)
	assert.Equal(t, 0.6, Aggressive)
	assert.Greater(t, Conservative, Balanced)
	assert.Greater(t, Balanced, Aggressive)
}
