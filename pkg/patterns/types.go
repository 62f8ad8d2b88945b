/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Pattern model for the Akaylee Mapper. Defines the closed PatternType
enumeration, the confidence-scored Pattern hypothesis, and the ParsedExamples
result produced by the example parser with its derived confidence views.
*/

package patterns

import (
	"fmt"

	"github.com/kleascm/akaylee-mapper/pkg/schema"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// PatternType is the closed enumeration of the fourteen transformation
// kinds. Spellings are serialized verbatim: previously persisted analyses
// depend on them.
type PatternType string

const (
	FieldMapping      PatternType = "FIELD_MAPPING"
	Concatenation     PatternType = "CONCATENATION"
	TypeConversion    PatternType = "TYPE_CONVERSION"
	BooleanConversion PatternType = "BOOLEAN_CONVERSION"
	ValueMapping      PatternType = "VALUE_MAPPING"
	FieldExtraction   PatternType = "FIELD_EXTRACTION"
	NestedAccess      PatternType = "NESTED_ACCESS"
	ListAggregation   PatternType = "LIST_AGGREGATION"
	Conditional       PatternType = "CONDITIONAL"
	DateParsing       PatternType = "DATE_PARSING"
	MathOperation     PatternType = "MATH_OPERATION"
	StringFormatting  PatternType = "STRING_FORMATTING"
	DefaultValue      PatternType = "DEFAULT_VALUE"
	Custom            PatternType = "CUSTOM"
)

// AllPatternTypes lists every pattern type in detector precedence order
var AllPatternTypes = []PatternType{
	FieldMapping, TypeConversion, BooleanConversion, ValueMapping,
	Concatenation, FieldExtraction, NestedAccess, ListAggregation,
	MathOperation, DateParsing, Conditional, StringFormatting,
	DefaultValue, Custom,
}

// Pattern is a classified, confidence-scored hypothesis about how one
// output field is derived from input fields
type Pattern struct {
	Type        PatternType `json:"type"`
	Confidence  float64     `json:"confidence"`   // In [0.0, 1.0]
	SourcePaths []string    `json:"source_paths"` // Input paths, or a derived expression for MATH_OPERATION
	TargetPath  string      `json:"target_path"`
	Description string      `json:"description"`

	// Example indices for which the rule held exactly, ascending
	SupportingExamples []int `json:"supporting_example_indices"`
}

// ConfidencePercent renders the confidence for humans, e.g. "95.0%"
func (p *Pattern) ConfidencePercent() string {
	return fmt.Sprintf("%.1f%%", p.Confidence*100)
}

// ExamplePair is one (input, output) record pair used to teach the engine
// a transformation. Both sides must be object-shaped values.
type ExamplePair struct {
	Input  values.Value
	Output values.Value
}

// PairFromJSON builds an ExamplePair from raw JSON documents, preserving
// field order
func PairFromJSON(input, output []byte) (ExamplePair, error) {
	in, err := values.Decode(input)
	if err != nil {
		return ExamplePair{}, fmt.Errorf("failed to decode input record: %w", err)
	}
	out, err := values.Decode(output)
	if err != nil {
		return ExamplePair{}, fmt.Errorf("failed to decode output record: %w", err)
	}
	return ExamplePair{Input: in, Output: out}, nil
}

// ParsedExamples is the complete, immutable result of one analysis call
type ParsedExamples struct {
	InputSchema   *schema.Schema `json:"-"`
	OutputSchema  *schema.Schema `json:"-"`
	Patterns      []Pattern      `json:"patterns"`           // One per resolved target path, output-schema order
	Unresolved    []string       `json:"unresolved_targets"` // Output paths with no supporting pattern
	ExamplesCount int            `json:"examples_count"`
}

// Confidence band boundaries for the derived views
const (
	HighConfidenceMin   = 0.9
	MediumConfidenceMin = 0.7
)

// HighConfidencePatterns returns patterns with confidence >= 0.9
func (p *ParsedExamples) HighConfidencePatterns() []Pattern {
	return p.selectBand(HighConfidenceMin, 1.01)
}

// MediumConfidencePatterns returns patterns with confidence in [0.7, 0.9)
func (p *ParsedExamples) MediumConfidencePatterns() []Pattern {
	return p.selectBand(MediumConfidenceMin, HighConfidenceMin)
}

// LowConfidencePatterns returns patterns with confidence < 0.7
func (p *ParsedExamples) LowConfidencePatterns() []Pattern {
	return p.selectBand(-1, MediumConfidenceMin)
}

func (p *ParsedExamples) selectBand(min, max float64) []Pattern {
	var out []Pattern
	for _, pat := range p.Patterns {
		if pat.Confidence >= min && pat.Confidence < max {
			out = append(out, pat)
		}
	}
	return out
}

// PatternFor returns the pattern for a target path, if resolved
func (p *ParsedExamples) PatternFor(targetPath string) (*Pattern, bool) {
	for i := range p.Patterns {
		if p.Patterns[i].TargetPath == targetPath {
			return &p.Patterns[i], true
		}
	}
	return nil, false
}
