/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detectors.go
Description: Detector registry and scoring for the Akaylee Mapper. Detectors are an
ordered, explicit list of pure functions evaluated in fixed precedence per output
field; the first detector that holds exactly for every example wins, partial
matches are kept as lower-confidence candidates. Implements the equality and
lookup family: field mapping, type conversion, boolean conversion, value mapping,
and nested access.
*/

package patterns

import (
	"fmt"
	"sort"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/schema"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// Confidence weighting: consistency dominates, type compatibility and
// pattern simplicity share the rest
const (
	consistencyWeight = 0.6
	typeCompatWeight  = 0.2
	simplicityWeight  = 0.2

	// CUSTOM patterns never exceed this confidence
	customConfidenceCap = 0.6

	// Partial candidates below this consistency are discarded rather than
	// emitted with a misleading classification
	minPartialConsistency = 0.5

	// Discrete value sets larger than this are not treated as lookup tables
	maxDiscreteSet = 10
)

// Fixed complexity ranks per detector, feeding the simplicity term
var complexityRank = map[PatternType]int{
	FieldMapping:      0,
	TypeConversion:    1,
	Concatenation:     1,
	BooleanConversion: 2,
	ValueMapping:      2,
	FieldExtraction:   2,
	NestedAccess:      2,
	ListAggregation:   3,
	MathOperation:     3,
	DateParsing:       3,
	Conditional:       3,
	StringFormatting:  3,
	DefaultValue:      4,
	Custom:            4,
}

// detectContext carries the per-call data shared by all detectors. Input
// and output field samples are aligned by example index.
type detectContext struct {
	inputSchema  *schema.Schema
	outputSchema *schema.Schema
	total        int
}

// targetField is one output field under detection
type targetField struct {
	path  string
	field *schema.SchemaField
	vals  []values.Value // Per-example target values, null-padded
}

// candidate is a detector's scored hypothesis for one target
type candidate struct {
	ptype       PatternType
	sourcePaths []string
	description string
	supporting  []int
	consistency float64
	typeCompat  float64
}

// confidence applies the scoring formula:
// 0.6*consistency + 0.2*type_compatibility + 0.2*(1/(1+complexity_rank)),
// with the CUSTOM cap applied last
func (c *candidate) confidence() float64 {
	rank := complexityRank[c.ptype]
	conf := consistencyWeight*c.consistency +
		typeCompatWeight*c.typeCompat +
		simplicityWeight*(1.0/float64(1+rank))
	if conf > 1.0 {
		conf = 1.0
	}
	if c.ptype == Custom && conf > customConfidenceCap {
		conf = customConfidenceCap
	}
	return conf
}

// pattern materializes the candidate into an immutable Pattern
func (c *candidate) pattern(targetPath string) Pattern {
	supporting := make([]int, len(c.supporting))
	copy(supporting, c.supporting)
	sort.Ints(supporting)
	return Pattern{
		Type:               c.ptype,
		Confidence:         c.confidence(),
		SourcePaths:        c.sourcePaths,
		TargetPath:         targetPath,
		Description:        c.description,
		SupportingExamples: supporting,
	}
}

// detectorFunc evaluates one pattern kind against a target, returning its
// best candidate or nil
type detectorFunc func(ctx *detectContext, t *targetField) *candidate

// detectorList is the fixed precedence order. CUSTOM is not listed: it is
// the fallback applied after every listed detector has been tried.
var detectorList = []struct {
	ptype PatternType
	fn    detectorFunc
}{
	{FieldMapping, detectFieldMapping},
	{TypeConversion, detectTypeConversion},
	{BooleanConversion, detectBooleanConversion},
	{ValueMapping, detectValueMapping},
	{Concatenation, detectConcatenation},
	{FieldExtraction, detectFieldExtraction},
	{NestedAccess, detectNestedAccess},
	{ListAggregation, detectListAggregation},
	{MathOperation, detectMathOperation},
	{DateParsing, detectDateParsing},
	{Conditional, detectConditional},
	{StringFormatting, detectStringFormatting},
	{DefaultValue, detectDefaultValue},
}

// tally converts per-example match flags into supporting indices and a
// consistency fraction
func tally(matches []bool) ([]int, float64) {
	var supporting []int
	for i, m := range matches {
		if m {
			supporting = append(supporting, i)
		}
	}
	if len(matches) == 0 {
		return nil, 0
	}
	return supporting, float64(len(supporting)) / float64(len(matches))
}

// better reports whether a should replace b. Earlier candidates win ties,
// so callers must pass candidates in deterministic order.
func better(a, b *candidate) bool {
	if b == nil {
		return a != nil
	}
	if a == nil {
		return false
	}
	return a.confidence() > b.confidence()
}

// detectFieldMapping finds a single depth-1 source whose raw value equals
// the target's raw value, same type, in every example
func detectFieldMapping(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if values.PathDepth(src.Path) != 1 || src.SampleCount == 0 {
			continue
		}
		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			matches[i] = !t.vals[i].IsNull() && src.Samples[i].Equal(t.vals[i])
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		c := &candidate{
			ptype:       FieldMapping,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("direct mapping from %q", src.Path),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  1.0,
		}
		if better(c, best) {
			best = c
		}
		if consistency == 1.0 {
			break
		}
	}
	return best
}

// detectNestedAccess finds a source path of depth >= 2 whose value is
// identical to the target in every example
func detectNestedAccess(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if values.PathDepth(src.Path) < 2 || src.SampleCount == 0 {
			continue
		}
		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			matches[i] = !t.vals[i].IsNull() && src.Samples[i].Equal(t.vals[i])
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		c := &candidate{
			ptype:       NestedAccess,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("nested access to %q", src.Path),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  1.0,
		}
		if better(c, best) {
			best = c
		}
		if consistency == 1.0 {
			break
		}
	}
	return best
}

// expectedConversionPairs are the source/target type pairings that count as
// fully type-compatible conversions
var expectedConversionPairs = map[[2]schema.FieldType]bool{
	{schema.TypeInteger, schema.TypeFloat}:   true,
	{schema.TypeFloat, schema.TypeInteger}:   true,
	{schema.TypeInteger, schema.TypeString}:  true,
	{schema.TypeFloat, schema.TypeString}:    true,
	{schema.TypeString, schema.TypeInteger}:  true,
	{schema.TypeString, schema.TypeFloat}:    true,
	{schema.TypeBoolean, schema.TypeString}:  true,
	{schema.TypeBoolean, schema.TypeInteger}: true,
	{schema.TypeInteger, schema.TypeBoolean}: true,
}

// detectTypeConversion finds a single source whose value is
// coercion-equal to the target under a different field type
func detectTypeConversion(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.SampleCount == 0 || src.Type == t.field.Type {
			continue
		}
		// Reformatting one date layout into another is date parsing, not a
		// type conversion
		if src.Type.Temporal() && t.field.Type.Temporal() {
			continue
		}
		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			sv, tv := src.Samples[i], t.vals[i]
			matches[i] = !sv.IsNull() && !tv.IsNull() &&
				values.CoercionEqual(sv, tv) &&
				schema.InferValueType(sv) != schema.InferValueType(tv)
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		typeCompat := 0.5
		if expectedConversionPairs[[2]schema.FieldType{src.Type, t.field.Type}] {
			typeCompat = 1.0
		}
		c := &candidate{
			ptype:       TypeConversion,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("convert %q from %s to %s", src.Path, src.Type, t.field.Type),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  typeCompat,
		}
		if better(c, best) {
			best = c
		}
		if consistency == 1.0 && typeCompat == 1.0 {
			break
		}
	}
	return best
}

// detectBooleanConversion finds a source drawn from a small discrete set
// with a fixed bijection to the target boolean. Sources whose values are
// themselves boolean tokens agreeing with the target outrank coincidental
// bijections; a source without token meaning additionally needs repeat
// evidence, since at two examples any two-valued column forms a bijection.
func detectBooleanConversion(ctx *detectContext, t *targetField) *candidate {
	if t.field.Type != schema.TypeBoolean || t.field.SampleCount == 0 {
		return nil
	}
	var bestToken, bestGeneric *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.SampleCount == 0 {
			continue
		}
		if src.Type != schema.TypeString && src.Type != schema.TypeInteger && src.Type != schema.TypeBoolean {
			continue
		}

		// Resolve a majority mapping from source value to target boolean
		votes := make(map[string]map[bool]int)
		order := []string{}
		ok := true
		for i := 0; i < ctx.total; i++ {
			sv, tv := src.Samples[i], t.vals[i]
			if sv.IsNull() || tv.IsNull() {
				ok = false
				break
			}
			tb, boolOK := tv.CoerceBool()
			if !boolOK {
				ok = false
				break
			}
			key := sv.Canon()
			if votes[key] == nil {
				votes[key] = make(map[bool]int)
				order = append(order, key)
			}
			votes[key][tb]++
		}
		if !ok || len(votes) < 1 || len(votes) > 2 {
			continue
		}
		mapping := resolveMajority(votes, order)

		// A conversion needs a bijection: distinct sources, distinct booleans
		if len(mapping) == 2 {
			var first bool
			idx := 0
			injective := false
			for _, b := range mapping {
				if idx == 0 {
					first = b
				} else if b != first {
					injective = true
				}
				idx++
			}
			if !injective {
				continue
			}
		}

		token := true
		for i := 0; i < ctx.total; i++ {
			sb, sbOK := src.Samples[i].CoerceBool()
			tb, _ := t.vals[i].CoerceBool()
			if !sbOK || sb != tb {
				token = false
				break
			}
		}
		if !token && ctx.total <= len(votes) {
			continue
		}

		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			tb, _ := t.vals[i].CoerceBool()
			matches[i] = mapping[src.Samples[i].Canon()] == tb
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		// Expected pairing is a string or integer source; raw kinds matter
		// here because token strings like "Yes" infer as BOOLEAN
		typeCompat := 1.0
		for i := 0; i < ctx.total; i++ {
			k := src.Samples[i].Kind()
			if k != values.KindString && k != values.KindInt && k != values.KindNull {
				typeCompat = 0.5
				break
			}
		}
		c := &candidate{
			ptype:       BooleanConversion,
			sourcePaths: []string{src.Path},
			description: describeBoolMapping(src, t, mapping),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  typeCompat,
		}
		if token {
			if better(c, bestToken) {
				bestToken = c
			}
			if consistency == 1.0 {
				break
			}
		} else if better(c, bestGeneric) {
			bestGeneric = c
		}
	}
	if bestToken != nil {
		return bestToken
	}
	return bestGeneric
}

// detectValueMapping finds a fixed source-to-target lookup table over a
// discrete value set. Demands repeat evidence: with every source value
// unique, any table is trivially "consistent" and proves nothing.
func detectValueMapping(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.SampleCount == 0 {
			continue
		}
		if src.Type != schema.TypeString && src.Type != schema.TypeInteger && src.Type != schema.TypeBoolean {
			continue
		}

		votes := make(map[string]map[string]int)
		targets := make(map[string]values.Value)
		order := []string{}
		identity := true
		usable := 0
		for i := 0; i < ctx.total; i++ {
			sv, tv := src.Samples[i], t.vals[i]
			if sv.IsNull() || tv.IsNull() {
				continue
			}
			usable++
			key := sv.Canon()
			tkey := tv.Canon()
			if votes[key] == nil {
				votes[key] = make(map[string]int)
				order = append(order, key)
			}
			votes[key][tkey]++
			targets[tkey] = tv
			if !sv.Equal(tv) {
				identity = false
			}
		}
		distinct := len(votes)
		if identity || distinct < 2 || distinct > maxDiscreteSet || usable <= distinct {
			continue
		}

		mapping := make(map[string]string, distinct)
		for _, key := range order {
			bestTarget, bestCount := "", -1
			tkeys := make([]string, 0, len(votes[key]))
			for tk := range votes[key] {
				tkeys = append(tkeys, tk)
			}
			sort.Strings(tkeys)
			for _, tk := range tkeys {
				if votes[key][tk] > bestCount {
					bestTarget, bestCount = tk, votes[key][tk]
				}
			}
			mapping[key] = bestTarget
		}

		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			sv, tv := src.Samples[i], t.vals[i]
			if sv.IsNull() || tv.IsNull() {
				continue
			}
			matches[i] = mapping[sv.Canon()] == tv.Canon()
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		c := &candidate{
			ptype:       ValueMapping,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("lookup table over %d distinct values of %q", distinct, src.Path),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  1.0,
		}
		if better(c, best) {
			best = c
		}
		if consistency == 1.0 {
			break
		}
	}
	return best
}

// resolveMajority picks, per source value, the target boolean seen most
// often. Deterministic: ties resolve to true.
func resolveMajority(votes map[string]map[bool]int, order []string) map[string]bool {
	mapping := make(map[string]bool, len(votes))
	for _, key := range order {
		if votes[key][true] >= votes[key][false] {
			mapping[key] = true
		} else {
			mapping[key] = false
		}
	}
	return mapping
}

func describeBoolMapping(src *schema.SchemaField, t *targetField, mapping map[string]bool) string {
	pairs := make([]string, 0, len(mapping))
	keys := make([]string, 0, len(mapping))
	for k := range mapping {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		display := strings.TrimPrefix(strings.TrimPrefix(k, "s:"), "i:")
		pairs = append(pairs, fmt.Sprintf("%s->%t", display, mapping[k]))
	}
	return fmt.Sprintf("boolean conversion of %q (%s)", src.Path, strings.Join(pairs, ", "))
}
