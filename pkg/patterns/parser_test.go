/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser_test.go
Description: Tests for the example parser: end-to-end classification of employee
record mappings, detector precedence, unresolved targets, error taxonomy, and
determinism across worker pool sizes.
*/

package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pairsFromJSON(t *testing.T, docs [][2]string) []ExamplePair {
	t.Helper()
	out := make([]ExamplePair, 0, len(docs))
	for i, d := range docs {
		pair, err := PairFromJSON([]byte(d[0]), []byte(d[1]))
		require.NoError(t, err, "example %d", i)
		out = append(out, pair)
	}
	return out
}

var employeeExamples = [][2]string{
	{
		`{"employee_id": "E1001", "first_name": "Alice", "last_name": "Johnson", "salary": 95000, "active": "Yes"}`,
		`{"id": "E1001", "full_name": "Alice Johnson", "annual_salary_usd": 95000.0, "is_active": true}`,
	},
	{
		`{"employee_id": "E1002", "first_name": "Bob", "last_name": "Smith", "salary": 72000, "active": "No"}`,
		`{"id": "E1002", "full_name": "Bob Smith", "annual_salary_usd": 72000.0, "is_active": false}`,
	},
	{
		`{"employee_id": "E1003", "first_name": "Carol", "last_name": "Nguyen", "salary": 88000, "active": "Yes"}`,
		`{"id": "E1003", "full_name": "Carol Nguyen", "annual_salary_usd": 88000.0, "is_active": true}`,
	},
}

// TestParseExamplesEmployeeScenario tests the canonical rename, concatenation,
// type conversion, and boolean conversion classifications
func TestParseExamplesEmployeeScenario(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, employeeExamples))
	require.NoError(t, err)

	assert.Equal(t, 3, parsed.ExamplesCount)
	assert.Empty(t, parsed.Unresolved)
	require.Len(t, parsed.Patterns, 4)

	// Patterns come back in output schema order
	assert.Equal(t, "id", parsed.Patterns[0].TargetPath)
	assert.Equal(t, "full_name", parsed.Patterns[1].TargetPath)
	assert.Equal(t, "annual_salary_usd", parsed.Patterns[2].TargetPath)
	assert.Equal(t, "is_active", parsed.Patterns[3].TargetPath)

	id, ok := parsed.PatternFor("id")
	require.True(t, ok)
	assert.Equal(t, FieldMapping, id.Type)
	assert.Equal(t, []string{"employee_id"}, id.SourcePaths)
	assert.Equal(t, 1.0, id.Confidence)
	assert.Equal(t, []int{0, 1, 2}, id.SupportingExamples)

	fullName, ok := parsed.PatternFor("full_name")
	require.True(t, ok)
	assert.Equal(t, Concatenation, fullName.Type)
	assert.Equal(t, []string{"first_name", "last_name"}, fullName.SourcePaths)
	assert.InDelta(t, 0.9, fullName.Confidence, 1e-9)

	salary, ok := parsed.PatternFor("annual_salary_usd")
	require.True(t, ok)
	assert.Equal(t, TypeConversion, salary.Type)
	assert.Equal(t, []string{"salary"}, salary.SourcePaths)
	assert.InDelta(t, 0.9, salary.Confidence, 1e-9)

	active, ok := parsed.PatternFor("is_active")
	require.True(t, ok)
	assert.Equal(t, BooleanConversion, active.Type)
	assert.Equal(t, []string{"active"}, active.SourcePaths)
	assert.InDelta(t, 0.6+0.2+0.2/3.0, active.Confidence, 1e-9)
}

// TestParseExamplesNestedAccess tests deep path resolution
func TestParseExamplesNestedAccess(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, [][2]string{
		{
			`{"user": {"contact": {"email": "alice@corp.com"}}, "region": "us"}`,
			`{"email": "alice@corp.com"}`,
		},
		{
			`{"user": {"contact": {"email": "bob@corp.com"}}, "region": "eu"}`,
			`{"email": "bob@corp.com"}`,
		},
	}))
	require.NoError(t, err)

	p, ok := parsed.PatternFor("email")
	require.True(t, ok)
	assert.Equal(t, NestedAccess, p.Type)
	assert.Equal(t, []string{"user.contact.email"}, p.SourcePaths)
	assert.InDelta(t, 0.6+0.2+0.2/3.0, p.Confidence, 1e-9)
}

// TestParseExamplesDateParsing tests that a reformatted date classifies as
// date parsing rather than type conversion
func TestParseExamplesDateParsing(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, [][2]string{
		{`{"hired": "2024-01-15"}`, `{"hire_date": "01/15/2024"}`},
		{`{"hired": "2023-11-02"}`, `{"hire_date": "11/02/2023"}`},
	}))
	require.NoError(t, err)

	p, ok := parsed.PatternFor("hire_date")
	require.True(t, ok)
	assert.Equal(t, DateParsing, p.Type)
	assert.Equal(t, []string{"hired"}, p.SourcePaths)
	assert.InDelta(t, 0.6+0.2+0.2/4.0, p.Confidence, 1e-9)
}

// TestParseExamplesUnresolvedTarget tests that an output field with no
// relation to the input lands in unresolved targets, not in patterns
func TestParseExamplesUnresolvedTarget(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, [][2]string{
		{`{"name": "Alice"}`, `{"name": "Alice", "token": "q7x"}`},
		{`{"name": "Bob"}`, `{"name": "Bob", "token": "m21"}`},
		{`{"name": "Carol"}`, `{"name": "Carol", "token": "f98"}`},
	}))
	require.NoError(t, err)

	_, ok := parsed.PatternFor("token")
	assert.False(t, ok)
	assert.Equal(t, []string{"token"}, parsed.Unresolved)

	name, ok := parsed.PatternFor("name")
	require.True(t, ok)
	assert.Equal(t, FieldMapping, name.Type)
}

// TestParseExamplesCustomFallback tests the capped CUSTOM classification for
// a deterministic but unclassifiable derivation
func TestParseExamplesCustomFallback(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, [][2]string{
		{`{"ratio": 0.5}`, `{"bucket": "low"}`},
		{`{"ratio": 1.5}`, `{"bucket": "mid"}`},
		{`{"ratio": 2.5}`, `{"bucket": "high"}`},
		{`{"ratio": 1.5}`, `{"bucket": "mid"}`},
	}))
	require.NoError(t, err)

	p, ok := parsed.PatternFor("bucket")
	require.True(t, ok)
	assert.Equal(t, Custom, p.Type)
	assert.Equal(t, 0.6, p.Confidence, "CUSTOM confidence is capped")
	assert.Equal(t, []string{"ratio"}, p.SourcePaths)
}

// TestParseExamplesConstantTarget tests the constant-output CUSTOM witness
func TestParseExamplesConstantTarget(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, [][2]string{
		{`{"a": 1}`, `{"version": "v2"}`},
		{`{"a": 2}`, `{"version": "v2"}`},
	}))
	require.NoError(t, err)

	p, ok := parsed.PatternFor("version")
	require.True(t, ok)
	assert.Equal(t, Custom, p.Type)
	assert.LessOrEqual(t, p.Confidence, 0.6)
	assert.Contains(t, p.Description, "constant")
}

// TestParseExamplesEmptyInput tests the fatal empty-input error
func TestParseExamplesEmptyInput(t *testing.T) {
	_, err := ParseExamples(nil)
	assert.Error(t, err)
}

// TestParseExamplesInvalidExample tests the fatal malformed-example error
// and that it carries the offending index
func TestParseExamplesInvalidExample(t *testing.T) {
	good, err := PairFromJSON([]byte(`{"a": 1}`), []byte(`{"b": 1}`))
	require.NoError(t, err)
	bad, err := PairFromJSON([]byte(`[1, 2]`), []byte(`{"b": 2}`))
	require.NoError(t, err)

	_, err = ParseExamples([]ExamplePair{good, bad})
	require.Error(t, err)
	var invalid *InvalidExampleError
	require.ErrorAs(t, err, &invalid)
	assert.Equal(t, 1, invalid.Index)
}

// TestParseExamplesSingleExample tests that one example pair is enough
func TestParseExamplesSingleExample(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, [][2]string{
		{`{"sku": "X-99"}`, `{"product_code": "X-99"}`},
	}))
	require.NoError(t, err)

	p, ok := parsed.PatternFor("product_code")
	require.True(t, ok)
	assert.Equal(t, FieldMapping, p.Type)
	assert.Equal(t, 1.0, p.Confidence)
}

// TestParseExamplesDeterministicAcrossWorkers tests that the pool size never
// changes the result
func TestParseExamplesDeterministicAcrossWorkers(t *testing.T) {
	examples := pairsFromJSON(t, employeeExamples)

	base, err := ParseExamples(examples, ParseOptions{Workers: 1})
	require.NoError(t, err)

	for _, workers := range []int{2, 4, 16} {
		got, err := ParseExamples(examples, ParseOptions{Workers: workers})
		require.NoError(t, err)
		assert.Equal(t, base.Patterns, got.Patterns, "workers=%d", workers)
		assert.Equal(t, base.Unresolved, got.Unresolved, "workers=%d", workers)
	}
}

// TestParseExamplesConfidenceBounds tests every emitted confidence stays
// inside [0.0, 1.0]
func TestParseExamplesConfidenceBounds(t *testing.T) {
	parsed, err := ParseExamples(pairsFromJSON(t, employeeExamples))
	require.NoError(t, err)
	for _, p := range parsed.Patterns {
		assert.GreaterOrEqual(t, p.Confidence, 0.0, p.TargetPath)
		assert.LessOrEqual(t, p.Confidence, 1.0, p.TargetPath)
	}
}

// TestConfidenceBands tests the derived high/medium/low views
func TestConfidenceBands(t *testing.T) {
	parsed := &ParsedExamples{Patterns: []Pattern{
		{TargetPath: "a", Confidence: 1.0},
		{TargetPath: "b", Confidence: 0.9},
		{TargetPath: "c", Confidence: 0.85},
		{TargetPath: "d", Confidence: 0.6},
	}}
	assert.Len(t, parsed.HighConfidencePatterns(), 2)
	assert.Len(t, parsed.MediumConfidencePatterns(), 1)
	assert.Len(t, parsed.LowConfidencePatterns(), 1)
}

// TestPatternConfidencePercent tests the human rendering
func TestPatternConfidencePercent(t *testing.T) {
	p := Pattern{Confidence: 0.95}
	assert.Equal(t, "95.0%", p.ConfidencePercent())
}
