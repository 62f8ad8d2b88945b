/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: value.go
Description: Tagged value model for the Akaylee Mapper. Represents JSON-compatible
field values as a closed sum type over null, boolean, integer, float, string, list,
and object so that type inference and coercion are explicit, total functions.
*/

package values

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Kind identifies the concrete variant held by a Value
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindObject
)

// String returns a human-readable name for the kind
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindObject:
		return "object"
	default:
		return "unknown"
	}
}

// Value is an immutable, JSON-compatible field value. The zero value is null.
// Object key order is preserved so that schema inference produces stable,
// reproducible field ordering.
type Value struct {
	kind Kind
	b    bool
	i    int64
	f    float64
	s    string
	list []Value
	obj  map[string]Value
	keys []string // object keys in insertion order
}

// Null returns the null value
func Null() Value { return Value{kind: KindNull} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// Int returns an integer value
func Int(i int64) Value { return Value{kind: KindInt, i: i} }

// Float returns a floating-point value
func Float(f float64) Value { return Value{kind: KindFloat, f: f} }

// String returns a string value
func String(s string) Value { return Value{kind: KindString, s: s} }

// List returns a list value holding the given elements
func List(elems ...Value) Value {
	return Value{kind: KindList, list: elems}
}

// Object builds an object value from alternating key/value pairs,
// preserving the given order
func Object(pairs ...any) Value {
	if len(pairs)%2 != 0 {
		panic("values.Object: odd number of arguments")
	}
	v := Value{kind: KindObject, obj: make(map[string]Value, len(pairs)/2)}
	for i := 0; i < len(pairs); i += 2 {
		key, ok := pairs[i].(string)
		if !ok {
			panic("values.Object: key is not a string")
		}
		child, err := From(pairs[i+1])
		if err != nil {
			panic(fmt.Sprintf("values.Object: %v", err))
		}
		if _, exists := v.obj[key]; !exists {
			v.keys = append(v.keys, key)
		}
		v.obj[key] = child
	}
	return v
}

// From converts a native Go value (including the types produced by
// encoding/json with UseNumber) into a Value. Map keys are sorted so the
// result is deterministic; use Decode to preserve document key order.
func From(raw any) (Value, error) {
	switch t := raw.(type) {
	case nil:
		return Null(), nil
	case Value:
		return t, nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(int64(t)), nil
	case int32:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case float32:
		return fromFloat(float64(t)), nil
	case float64:
		return fromFloat(t), nil
	case json.Number:
		return fromNumber(t), nil
	case string:
		return String(t), nil
	case []any:
		elems := make([]Value, 0, len(t))
		for _, e := range t {
			child, err := From(e)
			if err != nil {
				return Null(), err
			}
			elems = append(elems, child)
		}
		return List(elems...), nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for k := range t {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		v := Value{kind: KindObject, obj: make(map[string]Value, len(t)), keys: keys}
		for _, k := range keys {
			child, err := From(t[k])
			if err != nil {
				return Null(), err
			}
			v.obj[k] = child
		}
		return v, nil
	default:
		return Null(), fmt.Errorf("unsupported value type %T", raw)
	}
}

// MustFrom is From but panics on unsupported types. Intended for literals.
func MustFrom(raw any) Value {
	v, err := From(raw)
	if err != nil {
		panic(err)
	}
	return v
}

// fromFloat keeps integral float64 values as floats: the caller chose a
// float representation and the distinction matters for type inference
func fromFloat(f float64) Value { return Float(f) }

// fromNumber distinguishes integers from floats by their textual form,
// so "95000" and "95000.0" infer different field types
func fromNumber(n json.Number) Value {
	s := n.String()
	if !strings.ContainsAny(s, ".eE") {
		if i, err := n.Int64(); err == nil {
			return Int(i)
		}
	}
	f, err := n.Float64()
	if err != nil {
		return String(s)
	}
	return Float(f)
}

// Kind returns the variant held by the value
func (v Value) Kind() Kind { return v.kind }

// IsNull reports whether the value is null
func (v Value) IsNull() bool { return v.kind == KindNull }

// BoolVal returns the boolean payload (valid only for KindBool)
func (v Value) BoolVal() bool { return v.b }

// IntVal returns the integer payload (valid only for KindInt)
func (v Value) IntVal() int64 { return v.i }

// FloatVal returns the float payload (valid only for KindFloat)
func (v Value) FloatVal() float64 { return v.f }

// StringVal returns the string payload (valid only for KindString)
func (v Value) StringVal() string { return v.s }

// ListVal returns the element slice (valid only for KindList)
func (v Value) ListVal() []Value { return v.list }

// Keys returns object keys in insertion order (valid only for KindObject)
func (v Value) Keys() []string { return v.keys }

// Get returns the child value for an object key
func (v Value) Get(key string) (Value, bool) {
	if v.kind != KindObject {
		return Null(), false
	}
	child, ok := v.obj[key]
	return child, ok
}

// Numeric returns the value as a float64 when it is natively numeric
func (v Value) Numeric() (float64, bool) {
	switch v.kind {
	case KindInt:
		return float64(v.i), true
	case KindFloat:
		return v.f, true
	default:
		return 0, false
	}
}

// CoerceFloat returns the value as a float64, additionally parsing
// numeric strings
func (v Value) CoerceFloat() (float64, bool) {
	if f, ok := v.Numeric(); ok {
		return f, true
	}
	if v.kind == KindString {
		f, err := strconv.ParseFloat(strings.TrimSpace(v.s), 64)
		if err == nil {
			return f, true
		}
	}
	return 0, false
}

// CoerceBool interprets the value as a boolean: native booleans, the
// usual true/false/yes/no/y/n tokens, and the integers 0/1
func (v Value) CoerceBool() (bool, bool) {
	switch v.kind {
	case KindBool:
		return v.b, true
	case KindInt:
		if v.i == 0 || v.i == 1 {
			return v.i == 1, true
		}
	case KindString:
		switch strings.ToLower(strings.TrimSpace(v.s)) {
		case "true", "yes", "y", "1":
			return true, true
		case "false", "no", "n", "0":
			return false, true
		}
	}
	return false, false
}

// Render returns the value in its human-facing string form, as a report or
// prompt would display it
func (v Value) Render() string {
	switch v.kind {
	case KindNull:
		return "null"
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindInt:
		return strconv.FormatInt(v.i, 10)
	case KindFloat:
		return strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Render()
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case KindObject:
		parts := make([]string, len(v.keys))
		for i, k := range v.keys {
			parts[i] = k + ": " + v.obj[k].Render()
		}
		return "{" + strings.Join(parts, ", ") + "}"
	default:
		return ""
	}
}

// Canon returns a canonical, unambiguous encoding of the value, usable as
// a map key for deduplication and determinism checks
func (v Value) Canon() string {
	switch v.kind {
	case KindNull:
		return "z"
	case KindBool:
		return "b:" + strconv.FormatBool(v.b)
	case KindInt:
		return "i:" + strconv.FormatInt(v.i, 10)
	case KindFloat:
		return "f:" + strconv.FormatFloat(v.f, 'g', -1, 64)
	case KindString:
		return "s:" + v.s
	case KindList:
		parts := make([]string, len(v.list))
		for i, e := range v.list {
			parts[i] = e.Canon()
		}
		return "l:[" + strings.Join(parts, "\x1f") + "]"
	case KindObject:
		parts := make([]string, len(v.keys))
		for i, k := range v.keys {
			parts[i] = k + "\x1e" + v.obj[k].Canon()
		}
		return "o:{" + strings.Join(parts, "\x1f") + "}"
	default:
		return "?"
	}
}

// Equal reports strict equality: same kind, same payload. Object key order
// does not affect equality.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindNull:
		return true
	case KindBool:
		return v.b == o.b
	case KindInt:
		return v.i == o.i
	case KindFloat:
		return v.f == o.f
	case KindString:
		return v.s == o.s
	case KindList:
		if len(v.list) != len(o.list) {
			return false
		}
		for i := range v.list {
			if !v.list[i].Equal(o.list[i]) {
				return false
			}
		}
		return true
	case KindObject:
		if len(v.obj) != len(o.obj) {
			return false
		}
		for k, child := range v.obj {
			other, ok := o.obj[k]
			if !ok || !child.Equal(other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// Epsilon is the tolerance used for floating-point comparisons throughout
// the detection pipeline
const Epsilon = 1e-9

// NearlyEqual compares two floats within Epsilon, scaling the tolerance
// for large magnitudes
func NearlyEqual(a, b float64) bool {
	diff := math.Abs(a - b)
	if diff <= Epsilon {
		return true
	}
	scale := math.Max(math.Abs(a), math.Abs(b))
	return diff <= Epsilon*scale
}

// CoercionEqual reports whether two values denote the same underlying datum
// once numeric, boolean, and textual representations are reconciled. Strict
// equality implies coercion equality.
func CoercionEqual(a, b Value) bool {
	if a.Equal(b) {
		return true
	}
	if a.IsNull() || b.IsNull() {
		return false
	}

	// Numeric forms: 95000 == 95000.0 == "95000"
	if fa, ok := a.CoerceFloat(); ok {
		if fb, ok := b.CoerceFloat(); ok {
			return NearlyEqual(fa, fb)
		}
	}

	// Boolean tokens: true == "yes" == 1
	if ba, ok := a.CoerceBool(); ok {
		if bb, ok := b.CoerceBool(); ok {
			return ba == bb
		}
	}

	// Date forms: "2024-01-02" == "2024-01-02T00:00:00Z"
	if ta, ok := ParseTemporal(a); ok {
		if tb, ok := ParseTemporal(b); ok {
			return ta.Equal(tb)
		}
	}

	// Textual fallback for scalar values
	if a.kind == KindString || b.kind == KindString {
		if a.kind != KindList && a.kind != KindObject &&
			b.kind != KindList && b.kind != KindObject {
			return a.Render() == b.Render()
		}
	}

	return false
}
