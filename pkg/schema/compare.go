/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: compare.go
Description: Schema comparison for the Akaylee Mapper. Surfaces advisory rename and
type-change candidates between two inferred schemas by matching retained sample
values. The example parser re-derives authoritative patterns independently.
*/

package schema

import "github.com/kleascm/akaylee-mapper/pkg/values"

// DifferenceKind classifies one schema difference
type DifferenceKind string

const (
	DiffRenamed    DifferenceKind = "renamed"
	DiffTypeChange DifferenceKind = "type_changed"
	DiffRemoved    DifferenceKind = "removed"
	DiffAdded      DifferenceKind = "added"
)

// SchemaDifference describes one candidate difference between two schemas
type SchemaDifference struct {
	Kind  DifferenceKind `json:"kind"`
	PathA string         `json:"path_a,omitempty"` // Path in the first schema
	PathB string         `json:"path_b,omitempty"` // Path in the second schema
	TypeA FieldType      `json:"type_a,omitempty"`
	TypeB FieldType      `json:"type_b,omitempty"`
}

// CompareSchemas surfaces rename, type-change, removed, and added candidates
// between two schemas. A field of a renamed to a differently-named field of b
// is detected by value-identical samples; a same-named field whose type
// changed is a type-change candidate. The result is advisory: coincidental
// overlap is indistinguishable from a true rename at this level.
func CompareSchemas(a, b *Schema) []SchemaDifference {
	var diffs []SchemaDifference
	matchedB := make(map[string]bool)

	for _, fa := range a.Fields() {
		if fb, ok := b.Field(fa.Path); ok {
			matchedB[fa.Path] = true
			if fa.Type != fb.Type {
				diffs = append(diffs, SchemaDifference{
					Kind:  DiffTypeChange,
					PathA: fa.Path,
					PathB: fb.Path,
					TypeA: fa.Type,
					TypeB: fb.Type,
				})
			}
			continue
		}

		// No same-named counterpart: look for a value-identical field
		if fb := findValueMatch(fa, b); fb != nil {
			matchedB[fb.Path] = true
			diffs = append(diffs, SchemaDifference{
				Kind:  DiffRenamed,
				PathA: fa.Path,
				PathB: fb.Path,
				TypeA: fa.Type,
				TypeB: fb.Type,
			})
			continue
		}

		diffs = append(diffs, SchemaDifference{
			Kind:  DiffRemoved,
			PathA: fa.Path,
			TypeA: fa.Type,
		})
	}

	for _, fb := range b.Fields() {
		if _, ok := a.Field(fb.Path); ok {
			continue
		}
		if matchedB[fb.Path] {
			continue
		}
		diffs = append(diffs, SchemaDifference{
			Kind:  DiffAdded,
			PathB: fb.Path,
			TypeB: fb.Type,
		})
	}

	return diffs
}

// findValueMatch returns the first field of s whose samples are
// value-identical to f's samples across all examples
func findValueMatch(f *SchemaField, s *Schema) *SchemaField {
	for _, candidate := range s.Fields() {
		if len(candidate.Samples) != len(f.Samples) {
			continue
		}
		if samplesIdentical(f.Samples, candidate.Samples) {
			return candidate
		}
	}
	return nil
}

func samplesIdentical(a, b []values.Value) bool {
	nonNull := 0
	for i := range a {
		if a[i].IsNull() && b[i].IsNull() {
			continue
		}
		if !a[i].Equal(b[i]) {
			return false
		}
		nonNull++
	}
	return nonNull > 0
}
