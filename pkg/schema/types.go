/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Schema model for the Akaylee Mapper. Defines the closed FieldType
enumeration, per-field metadata, and the insertion-ordered Schema container
produced by inference over example records.
*/

package schema

import (
	"fmt"

	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// FieldType is the closed enumeration of inferred field types. The spellings
// are serialized verbatim and must stay stable for persisted analyses.
type FieldType string

const (
	TypeString   FieldType = "STRING"
	TypeInteger  FieldType = "INTEGER"
	TypeFloat    FieldType = "FLOAT"
	TypeBoolean  FieldType = "BOOLEAN"
	TypeDate     FieldType = "DATE"
	TypeDateTime FieldType = "DATETIME"
	TypeList     FieldType = "LIST"
	TypeDict     FieldType = "DICT"
	TypeNull     FieldType = "NULL"
)

// Numeric reports whether the type is INTEGER or FLOAT
func (t FieldType) Numeric() bool {
	return t == TypeInteger || t == TypeFloat
}

// Temporal reports whether the type is DATE or DATETIME
func (t FieldType) Temporal() bool {
	return t == TypeDate || t == TypeDateTime
}

// SchemaField describes one inferred field of a record set
type SchemaField struct {
	Path        string    `json:"path"`         // Dot-delimited field path, e.g. "address.city"
	Type        FieldType `json:"type"`         // Inferred field type
	Nullable    bool      `json:"nullable"`     // Whether any observed value was null or absent
	SampleCount int       `json:"sample_count"` // Number of records carrying a non-null value

	// Observed values per example, null-padded for absent records. Retained
	// for schema comparison and pattern detection; not serialized.
	Samples []values.Value `json:"-"`
}

// Schema is an ordered mapping from field path to SchemaField. Order is
// first-seen order across the example records, so repeated inference over
// the same input yields identical output.
type Schema struct {
	fields map[string]*SchemaField
	order  []string
}

// NewSchema returns an empty schema
func NewSchema() *Schema {
	return &Schema{fields: make(map[string]*SchemaField)}
}

// Add inserts a field, preserving first-seen order. Duplicate paths are
// rejected: a path is unique within a schema.
func (s *Schema) Add(f *SchemaField) error {
	if f.Path == "" {
		return fmt.Errorf("schema field path must not be empty")
	}
	if _, exists := s.fields[f.Path]; exists {
		return fmt.Errorf("duplicate schema field path %q", f.Path)
	}
	s.fields[f.Path] = f
	s.order = append(s.order, f.Path)
	return nil
}

// Field returns the field at a path
func (s *Schema) Field(path string) (*SchemaField, bool) {
	f, ok := s.fields[path]
	return f, ok
}

// Paths returns all field paths in insertion order
func (s *Schema) Paths() []string {
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// Fields returns all fields in insertion order
func (s *Schema) Fields() []*SchemaField {
	out := make([]*SchemaField, 0, len(s.order))
	for _, p := range s.order {
		out = append(out, s.fields[p])
	}
	return out
}

// Len returns the number of fields
func (s *Schema) Len() int { return len(s.order) }

// EmptyInputError indicates schema inference was invoked with no records
type EmptyInputError struct {
	Op string // Operation that received the empty input
}

func (e *EmptyInputError) Error() string {
	return fmt.Sprintf("%s: no records supplied", e.Op)
}
