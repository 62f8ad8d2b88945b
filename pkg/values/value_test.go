/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: value_test.go
Description: Tests for the immutable value model: order-preserving JSON decoding,
integer/float distinction, equality and coercion rules, and temporal parsing.
*/

package values

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDecodePreservesKeyOrder tests that object key order survives decoding
func TestDecodePreservesKeyOrder(t *testing.T) {
	v, err := Decode([]byte(`{"zeta": 1, "alpha": 2, "mid": {"b": 1, "a": 2}}`))
	require.NoError(t, err)
	assert.Equal(t, []string{"zeta", "alpha", "mid"}, v.Keys())

	mid, ok := v.Get("mid")
	require.True(t, ok)
	assert.Equal(t, []string{"b", "a"}, mid.Keys())
}

// TestDecodeNumberKinds tests the integer/float distinction
func TestDecodeNumberKinds(t *testing.T) {
	v := MustParse(`{"int": 95000, "float": 95000.0, "exp": 1e3, "neg": -7}`)

	i, _ := v.Get("int")
	assert.Equal(t, KindInt, i.Kind())
	assert.Equal(t, int64(95000), i.IntVal())

	f, _ := v.Get("float")
	assert.Equal(t, KindFloat, f.Kind())
	assert.Equal(t, 95000.0, f.FloatVal())

	e, _ := v.Get("exp")
	assert.Equal(t, KindFloat, e.Kind())

	n, _ := v.Get("neg")
	assert.Equal(t, KindInt, n.Kind())
	assert.Equal(t, int64(-7), n.IntVal())
}

// TestDecodeRejectsTrailingContent tests that garbage after the document fails
func TestDecodeRejectsTrailingContent(t *testing.T) {
	_, err := Decode([]byte(`{"a": 1} {"b": 2}`))
	assert.Error(t, err)
}

// TestEqualStrict tests strict equality across kinds
func TestEqualStrict(t *testing.T) {
	assert.True(t, Int(5).Equal(Int(5)))
	assert.False(t, Int(5).Equal(Float(5.0)), "strict equality keeps int and float apart")
	assert.True(t, String("a").Equal(String("a")))
	assert.False(t, String("a").Equal(String("b")))
	assert.True(t, Null().Equal(Null()))

	a := MustParse(`{"x": [1, 2], "y": "z"}`)
	b := MustParse(`{"x": [1, 2], "y": "z"}`)
	assert.True(t, a.Equal(b))

	c := MustParse(`{"y": "z", "x": [1, 2]}`)
	assert.True(t, a.Equal(c), "key order does not affect equality")
}

// TestCoercionEqual tests the cross-type equality used by conversion detection
func TestCoercionEqual(t *testing.T) {
	assert.True(t, CoercionEqual(Int(95000), Float(95000.0)))
	assert.True(t, CoercionEqual(String("42"), Int(42)))
	assert.True(t, CoercionEqual(String("Yes"), Bool(true)))
	assert.True(t, CoercionEqual(String("no"), Bool(false)))
	assert.True(t, CoercionEqual(Int(1), Bool(true)))
	assert.True(t, CoercionEqual(String("2024-01-15"), String("2024/01/15")))
	assert.False(t, CoercionEqual(String("42"), Int(43)))
	assert.False(t, CoercionEqual(String("hello"), Bool(true)))
}

// TestCoerceBool tests boolean token coercion
func TestCoerceBool(t *testing.T) {
	for _, token := range []string{"true", "Yes", "Y", "1", "yes"} {
		b, ok := String(token).CoerceBool()
		assert.True(t, ok, token)
		assert.True(t, b, token)
	}
	for _, token := range []string{"false", "No", "N", "0"} {
		b, ok := String(token).CoerceBool()
		assert.True(t, ok, token)
		assert.False(t, b, token)
	}
	_, ok := String("maybe").CoerceBool()
	assert.False(t, ok)
}

// TestNearlyEqual tests the floating point epsilon comparison
func TestNearlyEqual(t *testing.T) {
	assert.True(t, NearlyEqual(0.1+0.2, 0.3))
	assert.True(t, NearlyEqual(1e12, 1e12+0.0001))
	assert.False(t, NearlyEqual(1.0, 1.1))
}

// TestParseTemporal tests date and datetime layout coverage
func TestParseTemporal(t *testing.T) {
	d1, ok := ParseDate("2024-01-15")
	require.True(t, ok)
	d2, ok := ParseDate("01/15/2024")
	require.True(t, ok)
	assert.True(t, d1.Equal(d2))

	d3, ok := ParseDate("January 15, 2024")
	require.True(t, ok)
	assert.True(t, d1.Equal(d3))

	dt, ok := ParseDateTime("2024-01-15T10:30:00Z")
	require.True(t, ok)
	assert.Equal(t, 10, dt.Hour())

	assert.True(t, IsDateOnly("2024-01-15"))
	assert.False(t, IsDateOnly("2024-01-15T10:30:00Z"))
	assert.True(t, IsDateTime("2024-01-15T10:30:00Z"))
}

// TestFlatten tests nested object flattening with the depth bound
func TestFlatten(t *testing.T) {
	record := MustParse(`{"user": {"contact": {"email": "a@b.com"}}, "tags": [1, 2], "name": "x"}`)

	flat := Flatten(record, 5)
	assert.Equal(t, []string{"user.contact.email", "tags", "name"}, flat.Paths)

	email, ok := flat.Lookup("user.contact.email")
	require.True(t, ok)
	assert.Equal(t, "a@b.com", email.StringVal())

	// Lists are one field, never expanded
	tags, ok := flat.Lookup("tags")
	require.True(t, ok)
	assert.Equal(t, KindList, tags.Kind())

	// Depth bound keeps deep objects as DICT-typed leaves
	shallow := Flatten(record, 2)
	assert.Contains(t, shallow.Paths, "user.contact")
	assert.NotContains(t, shallow.Paths, "user.contact.email")
}

// TestPathDepth tests dotted path depth accounting
func TestPathDepth(t *testing.T) {
	assert.Equal(t, 1, PathDepth("name"))
	assert.Equal(t, 3, PathDepth("user.contact.email"))
}

// TestRender tests human rendering of scalars
func TestRender(t *testing.T) {
	assert.Equal(t, "42", Int(42).Render())
	assert.Equal(t, "hello", String("hello").Render())
	assert.Equal(t, "true", Bool(true).Render())
	assert.Equal(t, "null", Null().Render())
}
