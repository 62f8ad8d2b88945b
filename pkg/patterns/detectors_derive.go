/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detectors_derive.go
Description: Derived-value detectors for the Akaylee Mapper: list aggregation,
binary math operations, date parsing, threshold conditionals, null defaults, and
the CUSTOM deterministic-function fallback.
*/

package patterns

import (
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/schema"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// Aggregates tried in order; the first that reproduces the target in every
// example is selected
var aggregateOrder = []string{"sum", "avg", "min", "max", "count", "join"}

// Join separators tried in order when matching string aggregates
var joinSeparators = []string{", ", ",", " ", ""}

// detectListAggregation finds a LIST source whose aggregate reproduces the
// target within epsilon
func detectListAggregation(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.Type != schema.TypeList || src.SampleCount == 0 {
			continue
		}
		for _, agg := range aggregateOrder {
			c := tryAggregate(ctx, t, src, agg)
			if better(c, best) {
				best = c
			}
			if best != nil && best.consistency == 1.0 {
				return best
			}
		}
	}
	return best
}

func tryAggregate(ctx *detectContext, t *targetField, src *schema.SchemaField, agg string) *candidate {
	if agg == "join" {
		return tryJoinAggregate(ctx, t, src)
	}

	matches := make([]bool, ctx.total)
	for i := 0; i < ctx.total; i++ {
		sv, tv := src.Samples[i], t.vals[i]
		if sv.IsNull() || tv.IsNull() || sv.Kind() != values.KindList {
			continue
		}
		want, ok := tv.CoerceFloat()
		if !ok {
			continue
		}
		got, ok := aggregateNumeric(sv.ListVal(), agg)
		if !ok {
			continue
		}
		matches[i] = values.NearlyEqual(got, want)
	}
	supporting, consistency := tally(matches)
	if consistency == 0 {
		return nil
	}
	typeCompat := 0.5
	if t.field.Type.Numeric() {
		typeCompat = 1.0
	}
	return &candidate{
		ptype:       ListAggregation,
		sourcePaths: []string{src.Path},
		description: fmt.Sprintf("%s of %q elements", agg, src.Path),
		supporting:  supporting,
		consistency: consistency,
		typeCompat:  typeCompat,
	}
}

func tryJoinAggregate(ctx *detectContext, t *targetField, src *schema.SchemaField) *candidate {
	sep, sepKnown := "", false
	matches := make([]bool, ctx.total)
	for i := 0; i < ctx.total; i++ {
		sv, tv := src.Samples[i], t.vals[i]
		if sv.IsNull() || tv.IsNull() || sv.Kind() != values.KindList {
			continue
		}
		parts := make([]string, len(sv.ListVal()))
		for j, e := range sv.ListVal() {
			parts[j] = e.Render()
		}
		tgt := tv.Render()
		if !sepKnown {
			for _, s := range joinSeparators {
				if strings.Join(parts, s) == tgt {
					sep, sepKnown = s, true
					break
				}
			}
			if !sepKnown {
				continue
			}
		}
		matches[i] = strings.Join(parts, sep) == tgt
	}
	if !sepKnown {
		return nil
	}
	supporting, consistency := tally(matches)
	if consistency == 0 {
		return nil
	}
	typeCompat := 0.5
	if t.field.Type == schema.TypeString {
		typeCompat = 1.0
	}
	return &candidate{
		ptype:       ListAggregation,
		sourcePaths: []string{src.Path},
		description: fmt.Sprintf("join of %q elements with separator %q", src.Path, sep),
		supporting:  supporting,
		consistency: consistency,
		typeCompat:  typeCompat,
	}
}

func aggregateNumeric(elems []values.Value, agg string) (float64, bool) {
	if agg == "count" {
		return float64(len(elems)), true
	}
	if len(elems) == 0 {
		return 0, false
	}
	nums := make([]float64, len(elems))
	for i, e := range elems {
		f, ok := e.CoerceFloat()
		if !ok {
			return 0, false
		}
		nums[i] = f
	}
	switch agg {
	case "sum", "avg":
		sum := 0.0
		for _, n := range nums {
			sum += n
		}
		if agg == "avg" {
			return sum / float64(len(nums)), true
		}
		return sum, true
	case "min":
		m := nums[0]
		for _, n := range nums[1:] {
			if n < m {
				m = n
			}
		}
		return m, true
	case "max":
		m := nums[0]
		for _, n := range nums[1:] {
			if n > m {
				m = n
			}
		}
		return m, true
	default:
		return 0, false
	}
}

// mathOps are the binary operators searched, in fixed order
var mathOps = []struct {
	sym         string
	commutative bool
	apply       func(a, b float64) (float64, bool)
}{
	{"+", true, func(a, b float64) (float64, bool) { return a + b, true }},
	{"-", false, func(a, b float64) (float64, bool) { return a - b, true }},
	{"*", true, func(a, b float64) (float64, bool) { return a * b, true }},
	{"/", false, func(a, b float64) (float64, bool) {
		if b == 0 {
			return 0, false
		}
		return a / b, true
	}},
	{"%", false, func(a, b float64) (float64, bool) {
		if b == 0 {
			return 0, false
		}
		return mod(a, b), true
	}},
}

func mod(a, b float64) float64 {
	q := a / b
	return a - b*float64(int64(q))
}

// detectMathOperation finds a fixed binary arithmetic combination of
// exactly two numeric sources reproducing a numeric target within epsilon
func detectMathOperation(ctx *detectContext, t *targetField) *candidate {
	if !t.field.Type.Numeric() || t.field.SampleCount == 0 {
		return nil
	}

	var numeric []*schema.SchemaField
	for _, src := range ctx.inputSchema.Fields() {
		if src.Type.Numeric() && src.SampleCount == ctx.total {
			numeric = append(numeric, src)
		}
	}
	if len(numeric) < 2 {
		return nil
	}

	var best *candidate
	for ai, a := range numeric {
		for bi, b := range numeric {
			if ai == bi {
				continue
			}
			for _, op := range mathOps {
				if op.commutative && bi < ai {
					continue
				}
				matches := make([]bool, ctx.total)
				for i := 0; i < ctx.total; i++ {
					tv := t.vals[i]
					if tv.IsNull() {
						continue
					}
					want, ok := tv.CoerceFloat()
					if !ok {
						continue
					}
					fa, okA := a.Samples[i].Numeric()
					fb, okB := b.Samples[i].Numeric()
					if !okA || !okB {
						continue
					}
					got, ok := op.apply(fa, fb)
					matches[i] = ok && values.NearlyEqual(got, want)
				}
				supporting, consistency := tally(matches)
				if consistency == 0 {
					continue
				}
				expr := fmt.Sprintf("%s %s %s", a.Path, op.sym, b.Path)
				c := &candidate{
					ptype:       MathOperation,
					sourcePaths: []string{expr},
					description: fmt.Sprintf("computed as %s", expr),
					supporting:  supporting,
					consistency: consistency,
					typeCompat:  1.0,
				}
				if better(c, best) {
					best = c
				}
				if consistency == 1.0 {
					return best
				}
			}
		}
	}
	return best
}

// detectDateParsing finds a date/time-formatted source denoting the same
// instant as the target in every example
func detectDateParsing(ctx *detectContext, t *targetField) *candidate {
	if !t.field.Type.Temporal() || t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.SampleCount == 0 {
			continue
		}
		if !src.Type.Temporal() && src.Type != schema.TypeString {
			continue
		}
		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			sv, tv := src.Samples[i], t.vals[i]
			if sv.IsNull() || tv.IsNull() {
				continue
			}
			st, okS := values.ParseTemporal(sv)
			tt, okT := values.ParseTemporal(tv)
			matches[i] = okS && okT && st.Equal(tt)
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		typeCompat := 0.5
		if src.Type.Temporal() {
			typeCompat = 1.0
		}
		c := &candidate{
			ptype:       DateParsing,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("parse %q as %s", src.Path, t.field.Type),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  typeCompat,
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

// detectConditional finds a target drawn from exactly two values, fully
// determined by a threshold or equality branch on one source field
func detectConditional(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount < 2 {
		return nil
	}

	// Exactly two distinct target values
	distinct := make(map[string]values.Value)
	var outcomes []values.Value
	for _, tv := range t.vals {
		if tv.IsNull() {
			continue
		}
		key := tv.Canon()
		if _, seen := distinct[key]; !seen {
			distinct[key] = tv
			outcomes = append(outcomes, tv)
		}
	}
	if len(outcomes) != 2 {
		return nil
	}

	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.SampleCount == 0 {
			continue
		}
		if src.Type.Numeric() {
			c := tryNumericBranch(ctx, t, src, outcomes)
			if better(c, best) {
				best = c
			}
		} else if src.Type == schema.TypeString || src.Type == schema.TypeBoolean {
			c := tryEqualityBranch(ctx, t, src, outcomes)
			if better(c, best) {
				best = c
			}
		}
		if best != nil && best.consistency == 1.0 {
			break
		}
	}
	return best
}

// tryNumericBranch searches thresholds drawn from the observed source
// values with the rule: value >= threshold selects one outcome
func tryNumericBranch(ctx *detectContext, t *targetField, src *schema.SchemaField, outcomes []values.Value) *candidate {
	var thresholds []float64
	seen := make(map[float64]bool)
	for _, sv := range src.Samples {
		if f, ok := sv.Numeric(); ok && !seen[f] {
			seen[f] = true
			thresholds = append(thresholds, f)
		}
	}
	// Ascending for determinism
	for i := 1; i < len(thresholds); i++ {
		for j := i; j > 0 && thresholds[j] < thresholds[j-1]; j-- {
			thresholds[j], thresholds[j-1] = thresholds[j-1], thresholds[j]
		}
	}

	var best *candidate
	for _, th := range thresholds {
		for flip := 0; flip < 2; flip++ {
			high, low := outcomes[0], outcomes[1]
			if flip == 1 {
				high, low = low, high
			}
			matches := make([]bool, ctx.total)
			for i := 0; i < ctx.total; i++ {
				sv, tv := src.Samples[i], t.vals[i]
				if tv.IsNull() {
					continue
				}
				f, ok := sv.Numeric()
				if !ok {
					continue
				}
				want := low
				if f >= th {
					want = high
				}
				matches[i] = tv.Equal(want)
			}
			supporting, consistency := tally(matches)
			if consistency == 0 {
				continue
			}
			c := &candidate{
				ptype:       Conditional,
				sourcePaths: []string{src.Path},
				description: fmt.Sprintf("if %s >= %v then %s else %s", src.Path, th, high.Render(), low.Render()),
				supporting:  supporting,
				consistency: consistency,
				typeCompat:  1.0,
			}
			if better(c, best) {
				best = c
			}
			if consistency == 1.0 {
				return best
			}
		}
	}
	return best
}

// tryEqualityBranch searches rules of the form: source == v selects one
// outcome, anything else the other
func tryEqualityBranch(ctx *detectContext, t *targetField, src *schema.SchemaField, outcomes []values.Value) *candidate {
	var pivots []values.Value
	seen := make(map[string]bool)
	for _, sv := range src.Samples {
		if sv.IsNull() || seen[sv.Canon()] {
			continue
		}
		seen[sv.Canon()] = true
		pivots = append(pivots, sv)
	}

	var best *candidate
	for _, pivot := range pivots {
		for flip := 0; flip < 2; flip++ {
			hit, miss := outcomes[0], outcomes[1]
			if flip == 1 {
				hit, miss = miss, hit
			}
			matches := make([]bool, ctx.total)
			for i := 0; i < ctx.total; i++ {
				sv, tv := src.Samples[i], t.vals[i]
				if tv.IsNull() || sv.IsNull() {
					continue
				}
				want := miss
				if sv.Equal(pivot) {
					want = hit
				}
				matches[i] = tv.Equal(want)
			}
			supporting, consistency := tally(matches)
			if consistency == 0 {
				continue
			}
			c := &candidate{
				ptype:       Conditional,
				sourcePaths: []string{src.Path},
				description: fmt.Sprintf("if %s == %s then %s else %s", src.Path, pivot.Render(), hit.Render(), miss.Render()),
				supporting:  supporting,
				consistency: consistency,
				typeCompat:  1.0,
			}
			if better(c, best) {
				best = c
			}
			if consistency == 1.0 {
				return best
			}
		}
	}
	return best
}

// detectDefaultValue finds a source passed through with one constant
// substitute wherever the source is null or missing. Requires at least one
// null source observation.
func detectDefaultValue(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if !src.Nullable || src.SampleCount == ctx.total {
			continue
		}

		// Constant comes from the first null-source example
		var constant values.Value
		haveConstant := false
		for i := 0; i < ctx.total; i++ {
			if src.Samples[i].IsNull() && !t.vals[i].IsNull() {
				constant = t.vals[i]
				haveConstant = true
				break
			}
		}
		if !haveConstant {
			continue
		}

		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			sv, tv := src.Samples[i], t.vals[i]
			if tv.IsNull() {
				continue
			}
			if sv.IsNull() {
				matches[i] = tv.Equal(constant)
			} else {
				matches[i] = values.CoercionEqual(sv, tv)
			}
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		typeCompat := 0.5
		if src.Type == t.field.Type {
			typeCompat = 1.0
		}
		c := &candidate{
			ptype:       DefaultValue,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("value of %q with default %s when missing", src.Path, constant.Render()),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  typeCompat,
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

// detectCustom is the fallback: the target is still a deterministic
// function of the inputs, but no known shape explains it. The concrete
// rule: (a) identical flattened input tuples never map to different
// targets, and (b) a correlation witness exists, either a constant target
// over two or more examples or a single source that functionally
// determines the target with tested repeats and at least two distinct
// outcomes. Emitted with confidence capped at 0.6.
func detectCustom(ctx *detectContext, t *targetField) *candidate {
	if t.field.SampleCount == 0 {
		return nil
	}

	// (a) full-tuple functional consistency
	tuples := make(map[string]string)
	for i := 0; i < ctx.total; i++ {
		var sb strings.Builder
		for _, src := range ctx.inputSchema.Fields() {
			sb.WriteString(src.Samples[i].Canon())
			sb.WriteByte('\x1d')
		}
		key := sb.String()
		tgt := t.vals[i].Canon()
		if prev, seen := tuples[key]; seen && prev != tgt {
			return nil
		}
		tuples[key] = tgt
	}

	// (b) correlation witness
	constant := t.field.SampleCount >= 2
	var first values.Value
	haveFirst := false
	for _, tv := range t.vals {
		if tv.IsNull() {
			continue
		}
		if !haveFirst {
			first, haveFirst = tv, true
			continue
		}
		if !tv.Equal(first) {
			constant = false
			break
		}
	}
	if constant && ctx.total >= 2 {
		paths := ctx.inputSchema.Paths()
		if len(paths) == 0 {
			return nil
		}
		return &candidate{
			ptype:       Custom,
			sourcePaths: paths[:1],
			description: fmt.Sprintf("constant value %s across all examples", first.Render()),
			supporting:  allIndices(ctx.total),
			consistency: 1.0,
			typeCompat:  0.5,
		}
	}

	var witnesses []string
	for _, src := range ctx.inputSchema.Fields() {
		if functionalWitness(src, t, ctx.total) {
			witnesses = append(witnesses, src.Path)
		}
	}
	if len(witnesses) == 0 {
		return nil
	}
	return &candidate{
		ptype:       Custom,
		sourcePaths: witnesses,
		description: fmt.Sprintf("deterministic but unclassified function of %s", strings.Join(witnesses, ", ")),
		supporting:  allIndices(ctx.total),
		consistency: 1.0,
		typeCompat:  0.5,
	}
}

// functionalWitness reports whether a single source functionally
// determines the target with at least one repeated (tested) source value
// and at least two distinct outcomes
func functionalWitness(src *schema.SchemaField, t *targetField, total int) bool {
	mapping := make(map[string]string)
	counts := make(map[string]int)
	targets := make(map[string]bool)
	for i := 0; i < total; i++ {
		sv, tv := src.Samples[i], t.vals[i]
		if sv.IsNull() || tv.IsNull() {
			return false
		}
		key, tgt := sv.Canon(), tv.Canon()
		if prev, seen := mapping[key]; seen && prev != tgt {
			return false
		}
		mapping[key] = tgt
		counts[key]++
		targets[tgt] = true
	}
	repeated := false
	for _, c := range counts {
		if c >= 2 {
			repeated = true
			break
		}
	}
	return repeated && len(mapping) >= 2 && len(targets) >= 2
}

func allIndices(n int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = i
	}
	return out
}
