/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: infer.go
Description: Schema inference for the Akaylee Mapper. Walks a set of nested example
records, collects every field path up to a bounded depth, and infers a single
field type per path using ordered coercion attempts over the observed values.
*/

package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// DefaultMaxDepth bounds recursion into nested objects during inference.
// Objects below the bound stay single DICT-typed fields.
const DefaultMaxDepth = 5

// InferOptions tunes schema inference
type InferOptions struct {
	MaxDepth int // Nesting depth bound; DefaultMaxDepth when zero
}

// InferSchema infers a typed field schema from a non-empty list of
// structurally similar records. Returns *EmptyInputError when records is
// empty, and an error when a record is not object-shaped.
func InferSchema(records []values.Value, opts ...InferOptions) (*Schema, error) {
	if len(records) == 0 {
		return nil, &EmptyInputError{Op: "InferSchema"}
	}

	maxDepth := DefaultMaxDepth
	if len(opts) > 0 && opts[0].MaxDepth > 0 {
		maxDepth = opts[0].MaxDepth
	}

	// Flatten every record and collect paths in first-seen order
	flats := make([]*values.Flat, len(records))
	var order []string
	seen := make(map[string]bool)
	for i, rec := range records {
		if rec.Kind() != values.KindObject {
			return nil, fmt.Errorf("record %d is not an object", i)
		}
		flats[i] = values.Flatten(rec, maxDepth)
		for _, p := range flats[i].Paths {
			if !seen[p] {
				seen[p] = true
				order = append(order, p)
			}
		}
	}

	s := NewSchema()
	for _, path := range order {
		field := &SchemaField{Path: path}
		for _, flat := range flats {
			v, present := flat.Lookup(path)
			if !present || v.IsNull() {
				field.Nullable = true
				field.Samples = append(field.Samples, values.Null())
				continue
			}
			field.SampleCount++
			field.Samples = append(field.Samples, v)
		}
		field.Type = inferFieldType(field.Samples)
		if err := s.Add(field); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// inferFieldType resolves one type for a path from all observed samples.
// Disagreement across non-null samples falls back to STRING.
func inferFieldType(samples []values.Value) FieldType {
	resolved := TypeNull
	for _, v := range samples {
		if v.IsNull() {
			continue
		}
		t := InferValueType(v)
		if resolved == TypeNull {
			resolved = t
			continue
		}
		if resolved != t {
			// Integer and float samples at the same path widen to FLOAT
			if resolved.Numeric() && t.Numeric() {
				resolved = TypeFloat
				continue
			}
			return TypeString
		}
	}
	return resolved
}

// InferValueType classifies a single value using the ordered coercion
// attempts: boolean tokens, integer, float, ISO date/datetime, list,
// object, else string.
func InferValueType(v values.Value) FieldType {
	switch v.Kind() {
	case values.KindNull:
		return TypeNull
	case values.KindBool:
		return TypeBoolean
	case values.KindInt:
		return TypeInteger
	case values.KindFloat:
		return TypeFloat
	case values.KindList:
		return TypeList
	case values.KindObject:
		return TypeDict
	case values.KindString:
		return inferStringType(v.StringVal())
	default:
		return TypeString
	}
}

func inferStringType(s string) FieldType {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return TypeString
	}
	if isBooleanToken(trimmed) {
		return TypeBoolean
	}
	if _, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return TypeInteger
	}
	if _, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return TypeFloat
	}
	if values.IsDateTime(trimmed) {
		return TypeDateTime
	}
	if values.IsDateOnly(trimmed) {
		return TypeDate
	}
	return TypeString
}

// isBooleanToken matches the literal boolean spellings recognized by the
// ordered coercion: true/false/yes/no/1/0, case-insensitive
func isBooleanToken(s string) bool {
	switch strings.ToLower(s) {
	case "true", "false", "yes", "no", "1", "0":
		return true
	}
	return false
}
