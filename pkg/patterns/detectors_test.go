/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detectors_test.go
Description: Per-detector tests: lookup table repeat evidence, list aggregation,
binary math, threshold conditionals, null defaults, extraction ambiguity, and
template formatting.
*/

package patterns

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mapper/pkg/schema"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// detectFixture builds a detector context and per-path targets from raw
// JSON documents
func detectFixture(t *testing.T, inputDocs, outputDocs []string) (*detectContext, map[string]*targetField) {
	t.Helper()
	require.Equal(t, len(inputDocs), len(outputDocs))

	inputs := make([]values.Value, len(inputDocs))
	outputs := make([]values.Value, len(outputDocs))
	for i := range inputDocs {
		inputs[i] = values.MustParse(inputDocs[i])
		outputs[i] = values.MustParse(outputDocs[i])
	}
	inputSchema, err := schema.InferSchema(inputs)
	require.NoError(t, err)
	outputSchema, err := schema.InferSchema(outputs)
	require.NoError(t, err)

	ctx := &detectContext{
		inputSchema:  inputSchema,
		outputSchema: outputSchema,
		total:        len(inputDocs),
	}
	targets := make(map[string]*targetField)
	for _, f := range outputSchema.Fields() {
		targets[f.Path] = &targetField{path: f.Path, field: f, vals: f.Samples}
	}
	return ctx, targets
}

// TestDetectValueMappingRepeatEvidence tests that a lookup table needs at
// least one source value observed more than once
func TestDetectValueMappingRepeatEvidence(t *testing.T) {
	// Repeats present: a real lookup table
	ctx, targets := detectFixture(t,
		[]string{`{"dept": "ENG"}`, `{"dept": "OPS"}`, `{"dept": "ENG"}`},
		[]string{`{"dept_name": "Engineering"}`, `{"dept_name": "Operations"}`, `{"dept_name": "Engineering"}`},
	)
	c := detectValueMapping(ctx, targets["dept_name"])
	require.NotNil(t, c)
	assert.Equal(t, ValueMapping, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, []string{"dept"}, c.sourcePaths)

	// Every source value unique: any table is trivially consistent, reject
	ctx, targets = detectFixture(t,
		[]string{`{"dept": "ENG"}`, `{"dept": "OPS"}`, `{"dept": "FIN"}`},
		[]string{`{"dept_name": "Engineering"}`, `{"dept_name": "Operations"}`, `{"dept_name": "Finance"}`},
	)
	assert.Nil(t, detectValueMapping(ctx, targets["dept_name"]))
}

// TestDetectValueMappingRejectsIdentity tests that a pass-through column is
// not reported as a lookup table
func TestDetectValueMappingRejectsIdentity(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"s": "a"}`, `{"s": "b"}`, `{"s": "a"}`},
		[]string{`{"d": "a"}`, `{"d": "b"}`, `{"d": "a"}`},
	)
	assert.Nil(t, detectValueMapping(ctx, targets["d"]))
}

// TestDetectListAggregationSum tests numeric aggregation over a list source
func TestDetectListAggregationSum(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"scores": [10, 20, 30]}`, `{"scores": [5, 5]}`},
		[]string{`{"total": 60}`, `{"total": 10}`},
	)
	c := detectListAggregation(ctx, targets["total"])
	require.NotNil(t, c)
	assert.Equal(t, ListAggregation, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, 1.0, c.typeCompat)
	assert.Contains(t, c.description, "sum")
}

// TestDetectListAggregationJoin tests string joining of list elements
func TestDetectListAggregationJoin(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"tags": ["red", "green"]}`, `{"tags": ["blue"]}`},
		[]string{`{"tag_line": "red, green"}`, `{"tag_line": "blue"}`},
	)
	c := detectListAggregation(ctx, targets["tag_line"])
	require.NotNil(t, c)
	assert.Equal(t, 1.0, c.consistency)
	assert.Contains(t, c.description, "join")
}

// TestDetectMathOperation tests the two-source arithmetic search
func TestDetectMathOperation(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{
			`{"salary": 90000, "bonus": 5000}`,
			`{"salary": 70000, "bonus": 2000}`,
			`{"salary": 80000, "bonus": 0}`,
		},
		[]string{
			`{"total_comp": 95000}`,
			`{"total_comp": 72000}`,
			`{"total_comp": 80000}`,
		},
	)
	c := detectMathOperation(ctx, targets["total_comp"])
	require.NotNil(t, c)
	assert.Equal(t, MathOperation, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, []string{"salary + bonus"}, c.sourcePaths)
}

// TestDetectMathOperationNonCommutative tests subtraction keeps its operand
// order
func TestDetectMathOperationNonCommutative(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"gross": 100, "tax": 30}`, `{"gross": 80, "tax": 15}`},
		[]string{`{"net": 70}`, `{"net": 65}`},
	)
	c := detectMathOperation(ctx, targets["net"])
	require.NotNil(t, c)
	assert.Equal(t, []string{"gross - tax"}, c.sourcePaths)
}

// TestDetectConditionalThreshold tests the numeric branch rule search
func TestDetectConditionalThreshold(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"score": 85}`, `{"score": 40}`, `{"score": 72}`, `{"score": 59}`},
		[]string{`{"grade": "pass"}`, `{"grade": "fail"}`, `{"grade": "pass"}`, `{"grade": "fail"}`},
	)
	c := detectConditional(ctx, targets["grade"])
	require.NotNil(t, c)
	assert.Equal(t, Conditional, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, []string{"score"}, c.sourcePaths)
	assert.Contains(t, c.description, ">=")
}

// TestDetectConditionalEquality tests the equality branch rule on a string
// source
func TestDetectConditionalEquality(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"tier": "gold"}`, `{"tier": "silver"}`, `{"tier": "bronze"}`, `{"tier": "gold"}`},
		[]string{`{"priority": 1}`, `{"priority": 2}`, `{"priority": 2}`, `{"priority": 1}`},
	)
	c := detectConditional(ctx, targets["priority"])
	require.NotNil(t, c)
	assert.Equal(t, 1.0, c.consistency)
	assert.Contains(t, c.description, `== gold`)
}

// TestDetectConditionalNeedsTwoOutcomes tests rejection with three distinct
// target values
func TestDetectConditionalNeedsTwoOutcomes(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"n": 1}`, `{"n": 2}`, `{"n": 3}`},
		[]string{`{"out": "a"}`, `{"out": "b"}`, `{"out": "c"}`},
	)
	assert.Nil(t, detectConditional(ctx, targets["out"]))
}

// TestDetectDefaultValue tests pass-through with a constant substitute at
// null and missing source positions
func TestDetectDefaultValue(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"name": "Alice", "nickname": "Ally"}`, `{"name": "Bob", "nickname": null}`, `{"name": "Carol"}`},
		[]string{`{"display": "Ally"}`, `{"display": "unknown"}`, `{"display": "unknown"}`},
	)
	c := detectDefaultValue(ctx, targets["display"])
	require.NotNil(t, c)
	assert.Equal(t, DefaultValue, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, []string{"nickname"}, c.sourcePaths)
	assert.Contains(t, c.description, "unknown")
}

// TestDetectDefaultValueNeedsNullObservation tests that a fully-present
// source never classifies as a default substitution
func TestDetectDefaultValueNeedsNullObservation(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"nickname": "Ally"}`, `{"nickname": "Bobby"}`},
		[]string{`{"display": "Ally"}`, `{"display": "Bobby"}`},
	)
	assert.Nil(t, detectDefaultValue(ctx, targets["display"]))
}

// TestDetectFieldExtraction tests substring extraction and its ambiguity
// rejection when two sources both contain the target
func TestDetectFieldExtraction(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"full": "Alice Johnson"}`, `{"full": "Bob Smith"}`},
		[]string{`{"surname": "Johnson"}`, `{"surname": "Smith"}`},
	)
	c := detectFieldExtraction(ctx, targets["surname"])
	require.NotNil(t, c)
	assert.Equal(t, FieldExtraction, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, []string{"full"}, c.sourcePaths)

	// Two full-consistency containers: the examples cannot pick one
	ctx, targets = detectFixture(t,
		[]string{
			`{"a": "Alice Johnson", "b": "Johnson, Alice"}`,
			`{"a": "Bob Smith", "b": "Smith, Bob"}`,
		},
		[]string{`{"surname": "Johnson"}`, `{"surname": "Smith"}`},
	)
	assert.Nil(t, detectFieldExtraction(ctx, targets["surname"]))
}

// TestDetectStringFormatting tests fixed-template reconstruction with
// literal prefix and suffix segments
func TestDetectStringFormatting(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{
			`{"first": "Alice", "last": "Johnson"}`,
			`{"first": "Bob", "last": "Smith"}`,
		},
		[]string{
			`{"label": "Employee: Alice (Johnson)"}`,
			`{"label": "Employee: Bob (Smith)"}`,
		},
	)
	c := detectStringFormatting(ctx, targets["label"])
	require.NotNil(t, c)
	assert.Equal(t, StringFormatting, c.ptype)
	assert.Equal(t, 1.0, c.consistency)
	assert.Equal(t, []string{"first", "last"}, c.sourcePaths)
	assert.Contains(t, c.description, "{first}")
	assert.Contains(t, c.description, "{last}")
}

// TestDetectBooleanConversionMajority tests that a contradicted mapping
// degrades to partial consistency instead of vanishing
func TestDetectBooleanConversionMajority(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"flag": "Y"}`, `{"flag": "N"}`, `{"flag": "Y"}`, `{"flag": "Y"}`},
		[]string{`{"on": true}`, `{"on": false}`, `{"on": true}`, `{"on": false}`},
	)
	c := detectBooleanConversion(ctx, targets["on"])
	require.NotNil(t, c)
	assert.Equal(t, BooleanConversion, c.ptype)
	assert.InDelta(t, 0.75, c.consistency, 1e-9, "majority vote holds for 3 of 4")
}

// TestDetectBooleanConversionPrefersTokenSource tests that a co-varying
// identifier column cannot claim the target away from a column whose
// values are themselves boolean tokens, even at two examples
func TestDetectBooleanConversionPrefersTokenSource(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{
			`{"employee_id": "E1001", "is_manager": "Yes"}`,
			`{"employee_id": "E1002", "is_manager": "No"}`,
		},
		[]string{`{"manager": true}`, `{"manager": false}`},
	)
	c := detectBooleanConversion(ctx, targets["manager"])
	require.NotNil(t, c)
	assert.Equal(t, BooleanConversion, c.ptype)
	assert.Equal(t, []string{"is_manager"}, c.sourcePaths)
	assert.Equal(t, 1.0, c.consistency)
}

// TestDetectBooleanConversionNeedsRepeatEvidence tests that without a
// token-bearing source, a two-valued column at two examples is rejected
// as a vacuous bijection
func TestDetectBooleanConversionNeedsRepeatEvidence(t *testing.T) {
	ctx, targets := detectFixture(t,
		[]string{`{"employee_id": "E1001"}`, `{"employee_id": "E1002"}`},
		[]string{`{"manager": true}`, `{"manager": false}`},
	)
	assert.Nil(t, detectBooleanConversion(ctx, targets["manager"]))

	// The same column with repeats is legitimate again
	ctx, targets = detectFixture(t,
		[]string{`{"grade": "A"}`, `{"grade": "B"}`, `{"grade": "A"}`},
		[]string{`{"pass": true}`, `{"pass": false}`, `{"pass": true}`},
	)
	c := detectBooleanConversion(ctx, targets["pass"])
	require.NotNil(t, c)
	assert.Equal(t, []string{"grade"}, c.sourcePaths)
	assert.Equal(t, 1.0, c.consistency)
}

// TestCandidateConfidenceFormula tests the weighting and the CUSTOM cap
func TestCandidateConfidenceFormula(t *testing.T) {
	c := &candidate{ptype: FieldMapping, consistency: 1.0, typeCompat: 1.0}
	assert.InDelta(t, 1.0, c.confidence(), 1e-9)

	c = &candidate{ptype: TypeConversion, consistency: 1.0, typeCompat: 1.0}
	assert.InDelta(t, 0.9, c.confidence(), 1e-9)

	c = &candidate{ptype: Conditional, consistency: 0.5, typeCompat: 1.0}
	assert.InDelta(t, 0.6*0.5+0.2+0.05, c.confidence(), 1e-9)

	c = &candidate{ptype: Custom, consistency: 1.0, typeCompat: 1.0}
	assert.Equal(t, 0.6, c.confidence(), "CUSTOM is capped")
}
