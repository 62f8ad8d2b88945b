/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer_test.go
Description: Tests for schema inference: ordered type coercion, cross-record type
resolution, nullability tracking, field ordering, and schema comparison.
*/

package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kleascm/akaylee-mapper/pkg/values"
)

func records(t *testing.T, docs ...string) []values.Value {
	t.Helper()
	out := make([]values.Value, 0, len(docs))
	for _, d := range docs {
		out = append(out, values.MustParse(d))
	}
	return out
}

// TestInferValueTypeOrderedCoercion tests the boolean/integer/float/date/string
// coercion order on string values
func TestInferValueTypeOrderedCoercion(t *testing.T) {
	cases := []struct {
		raw  string
		want FieldType
	}{
		{"Yes", TypeBoolean},
		{"no", TypeBoolean},
		{"true", TypeBoolean},
		{"1", TypeBoolean}, // boolean tokens win over integer parsing
		{"42", TypeInteger},
		{"-7", TypeInteger},
		{"3.14", TypeFloat},
		{"2024-01-15", TypeDate},
		{"2024-01-15T10:30:00Z", TypeDateTime},
		{"hello", TypeString},
		{"", TypeString},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, InferValueType(values.String(c.raw)), "raw=%q", c.raw)
	}

	assert.Equal(t, TypeInteger, InferValueType(values.Int(95000)))
	assert.Equal(t, TypeFloat, InferValueType(values.Float(95000.0)))
	assert.Equal(t, TypeBoolean, InferValueType(values.Bool(true)))
	assert.Equal(t, TypeNull, InferValueType(values.Null()))
	assert.Equal(t, TypeList, InferValueType(values.MustParse(`[1, 2]`)))
	assert.Equal(t, TypeDict, InferValueType(values.MustParse(`{"a": 1}`)))
}

// TestInferSchemaBasic tests type resolution and field ordering over a
// small record set
func TestInferSchemaBasic(t *testing.T) {
	recs := records(t,
		`{"id": "E1001", "salary": 95000, "active": "Yes"}`,
		`{"id": "E1002", "salary": 72000, "active": "No"}`,
	)
	s, err := InferSchema(recs)
	require.NoError(t, err)

	assert.Equal(t, []string{"id", "salary", "active"}, s.Paths(), "first-seen order")

	id, ok := s.Field("id")
	require.True(t, ok)
	assert.Equal(t, TypeString, id.Type)
	assert.Equal(t, 2, id.SampleCount)
	assert.False(t, id.Nullable)

	salary, _ := s.Field("salary")
	assert.Equal(t, TypeInteger, salary.Type)

	active, _ := s.Field("active")
	assert.Equal(t, TypeBoolean, active.Type, "Yes/No tokens infer as BOOLEAN")
}

// TestInferSchemaNumericWidening tests that mixed int and float samples
// resolve to FLOAT
func TestInferSchemaNumericWidening(t *testing.T) {
	recs := records(t,
		`{"amount": 100}`,
		`{"amount": 99.5}`,
	)
	s, err := InferSchema(recs)
	require.NoError(t, err)

	f, _ := s.Field("amount")
	assert.Equal(t, TypeFloat, f.Type)
}

// TestInferSchemaDisagreementFallsBackToString tests the STRING fallback
// when non-null samples disagree on type
func TestInferSchemaDisagreementFallsBackToString(t *testing.T) {
	recs := records(t,
		`{"v": 42}`,
		`{"v": "hello"}`,
	)
	s, err := InferSchema(recs)
	require.NoError(t, err)

	f, _ := s.Field("v")
	assert.Equal(t, TypeString, f.Type)
}

// TestInferSchemaNullability tests nullable marking for absent and null values
func TestInferSchemaNullability(t *testing.T) {
	recs := records(t,
		`{"name": "Alice", "nickname": "Ally"}`,
		`{"name": "Bob", "nickname": null}`,
		`{"name": "Carol"}`,
	)
	s, err := InferSchema(recs)
	require.NoError(t, err)

	name, _ := s.Field("name")
	assert.False(t, name.Nullable)
	assert.Equal(t, 3, name.SampleCount)

	nick, _ := s.Field("nickname")
	assert.True(t, nick.Nullable, "null and absent both mark nullable")
	assert.Equal(t, 1, nick.SampleCount)
	assert.Equal(t, TypeString, nick.Type)
	assert.Len(t, nick.Samples, 3, "samples stay example-aligned with null padding")
	assert.True(t, nick.Samples[1].IsNull())
	assert.True(t, nick.Samples[2].IsNull())
}

// TestInferSchemaNestedDepthBound tests nested object flattening and the
// depth limit
func TestInferSchemaNestedDepthBound(t *testing.T) {
	recs := records(t,
		`{"user": {"contact": {"email": "a@b.com"}}}`,
	)

	deep, err := InferSchema(recs)
	require.NoError(t, err)
	email, ok := deep.Field("user.contact.email")
	require.True(t, ok)
	assert.Equal(t, TypeString, email.Type)

	shallow, err := InferSchema(recs, InferOptions{MaxDepth: 2})
	require.NoError(t, err)
	contact, ok := shallow.Field("user.contact")
	require.True(t, ok)
	assert.Equal(t, TypeDict, contact.Type, "objects below the depth bound stay DICT leaves")
	_, ok = shallow.Field("user.contact.email")
	assert.False(t, ok)
}

// TestInferSchemaEmptyInput tests the empty-input error
func TestInferSchemaEmptyInput(t *testing.T) {
	_, err := InferSchema(nil)
	require.Error(t, err)
	var empty *EmptyInputError
	assert.ErrorAs(t, err, &empty)
}

// TestInferSchemaRejectsNonObject tests that list and scalar records fail
// instead of silently contributing no fields
func TestInferSchemaRejectsNonObject(t *testing.T) {
	_, err := InferSchema(records(t, `[1, 2, 3]`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not an object")

	_, err = InferSchema(records(t, `{"id": 1}`, `"just a string"`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "record 1")
}

// TestInferSchemaDeterministic tests that repeated inference over the same
// records yields identical path order
func TestInferSchemaDeterministic(t *testing.T) {
	recs := records(t,
		`{"z": 1, "a": 2, "m": 3}`,
		`{"z": 4, "a": 5, "m": 6, "extra": 7}`,
	)
	first, err := InferSchema(recs)
	require.NoError(t, err)
	for i := 0; i < 10; i++ {
		again, err := InferSchema(recs)
		require.NoError(t, err)
		assert.Equal(t, first.Paths(), again.Paths())
	}
	assert.Equal(t, []string{"z", "a", "m", "extra"}, first.Paths())
}

// TestCompareSchemas tests rename, type-change, removed, and added detection
func TestCompareSchemas(t *testing.T) {
	a, err := InferSchema(records(t,
		`{"employee_id": "E1", "age": 30, "legacy": "x"}`,
		`{"employee_id": "E2", "age": 41, "legacy": "y"}`,
	))
	require.NoError(t, err)
	b, err := InferSchema(records(t,
		`{"id": "E1", "age": "thirty", "department": "eng"}`,
		`{"id": "E2", "age": "forty-one", "department": "ops"}`,
	))
	require.NoError(t, err)

	diffs := CompareSchemas(a, b)

	byKind := make(map[DifferenceKind][]SchemaDifference)
	for _, d := range diffs {
		byKind[d.Kind] = append(byKind[d.Kind], d)
	}

	require.Len(t, byKind[DiffRenamed], 1, "value-identical samples signal a rename")
	assert.Equal(t, "employee_id", byKind[DiffRenamed][0].PathA)
	assert.Equal(t, "id", byKind[DiffRenamed][0].PathB)

	require.Len(t, byKind[DiffTypeChange], 1)
	assert.Equal(t, "age", byKind[DiffTypeChange][0].PathA)
	assert.Equal(t, TypeInteger, byKind[DiffTypeChange][0].TypeA)
	assert.Equal(t, TypeString, byKind[DiffTypeChange][0].TypeB)

	require.Len(t, byKind[DiffRemoved], 1)
	assert.Equal(t, "legacy", byKind[DiffRemoved][0].PathA)

	require.Len(t, byKind[DiffAdded], 1)
	assert.Equal(t, "department", byKind[DiffAdded][0].PathB)
}

// TestSchemaAddRejectsDuplicates tests path uniqueness within a schema
func TestSchemaAddRejectsDuplicates(t *testing.T) {
	s := NewSchema()
	require.NoError(t, s.Add(&SchemaField{Path: "a", Type: TypeString}))
	assert.Error(t, s.Add(&SchemaField{Path: "a", Type: TypeInteger}))
	assert.Error(t, s.Add(&SchemaField{Path: "", Type: TypeString}))
	assert.Equal(t, 1, s.Len())
}
