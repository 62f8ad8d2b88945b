/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: detectors_text.go
Description: Text-shape detectors for the Akaylee Mapper: concatenation with an
inferred separator, contiguous substring extraction, and fixed-template string
formatting over multiple source fields.
*/

package patterns

import (
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/schema"
)

// concatParts bounds the number of joined fields considered
const concatMaxParts = 3

// templateMaxFields bounds the number of fields in a formatting template
const templateMaxFields = 4

// detectConcatenation finds two or more sources whose values joined with a
// consistently-inferred separator (possibly empty) reproduce the target
func detectConcatenation(ctx *detectContext, t *targetField) *candidate {
	if t.field.Type != schema.TypeString || t.field.SampleCount == 0 {
		return nil
	}

	parts := concatCandidates(ctx)
	if len(parts) < 2 {
		return nil
	}

	var best *candidate
	// Pairs first, then triples: fewer parts are the simpler explanation
	for _, combo := range orderedCombos(len(parts), 2) {
		c := tryConcat(ctx, t, pick(parts, combo))
		if better(c, best) {
			best = c
		}
		if best != nil && best.consistency == 1.0 {
			return best
		}
	}
	if concatMaxParts >= 3 {
		for _, combo := range orderedCombos(len(parts), 3) {
			c := tryConcat(ctx, t, pick(parts, combo))
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

// concatCandidates selects scalar source fields present and non-empty in
// every example
func concatCandidates(ctx *detectContext) []*schema.SchemaField {
	var out []*schema.SchemaField
	for _, src := range ctx.inputSchema.Fields() {
		if src.Type == schema.TypeList || src.Type == schema.TypeDict {
			continue
		}
		if src.SampleCount != ctx.total {
			continue
		}
		usable := true
		for _, v := range src.Samples {
			if v.Render() == "" {
				usable = false
				break
			}
		}
		if usable {
			out = append(out, src)
		}
	}
	return out
}

// tryConcat checks target == part0 + sep + part1 (+ sep + part2) with a
// single separator inferred from the first structurally-matching example
func tryConcat(ctx *detectContext, t *targetField, parts []*schema.SchemaField) *candidate {
	sep, sepKnown := "", false
	matches := make([]bool, ctx.total)
	for i := 0; i < ctx.total; i++ {
		if t.vals[i].IsNull() {
			continue
		}
		tgt := t.vals[i].Render()
		rendered := make([]string, len(parts))
		for j, p := range parts {
			rendered[j] = p.Samples[i].Render()
		}
		if !sepKnown {
			s, ok := inferSeparator(tgt, rendered)
			if !ok {
				continue
			}
			sep, sepKnown = s, true
		}
		matches[i] = tgt == strings.Join(rendered, sep)
	}
	if !sepKnown {
		return nil
	}
	supporting, consistency := tally(matches)
	if consistency == 0 {
		return nil
	}

	paths := make([]string, len(parts))
	typeCompat := 1.0
	for i, p := range parts {
		paths[i] = p.Path
		if p.Type != schema.TypeString {
			typeCompat = 0.5
		}
	}
	return &candidate{
		ptype:       Concatenation,
		sourcePaths: paths,
		description: fmt.Sprintf("concatenation of %s with separator %q", strings.Join(paths, " + "), sep),
		supporting:  supporting,
		consistency: consistency,
		typeCompat:  typeCompat,
	}
}

// inferSeparator derives the single separator joining the rendered parts
// into the target, or fails when no such separator exists
func inferSeparator(target string, parts []string) (string, bool) {
	if !strings.HasPrefix(target, parts[0]) {
		return "", false
	}
	last := parts[len(parts)-1]
	if !strings.HasSuffix(target, last) {
		return "", false
	}
	middle := target[len(parts[0]) : len(target)-len(last)]
	switch len(parts) {
	case 2:
		return middle, true
	case 3:
		// middle must be sep + parts[1] + sep for one separator
		for idx := 0; ; {
			rel := strings.Index(middle[idx:], parts[1])
			if rel < 0 {
				return "", false
			}
			at := idx + rel
			pre, post := middle[:at], middle[at+len(parts[1]):]
			if pre == post {
				return pre, true
			}
			idx = at + 1
			if idx >= len(middle) {
				return "", false
			}
		}
	default:
		return "", false
	}
}

// detectFieldExtraction finds exactly one source whose value contains the
// target as a contiguous substring in every example
func detectFieldExtraction(ctx *detectContext, t *targetField) *candidate {
	if t.field.Type != schema.TypeString || t.field.SampleCount == 0 {
		return nil
	}

	var full []*candidate
	var best *candidate
	for _, src := range ctx.inputSchema.Fields() {
		if src.Type == schema.TypeList || src.Type == schema.TypeDict || src.SampleCount == 0 {
			continue
		}
		matches := make([]bool, ctx.total)
		for i := 0; i < ctx.total; i++ {
			if t.vals[i].IsNull() || src.Samples[i].IsNull() {
				continue
			}
			tgt, from := t.vals[i].Render(), src.Samples[i].Render()
			matches[i] = tgt != "" && tgt != from && strings.Contains(from, tgt)
		}
		supporting, consistency := tally(matches)
		if consistency == 0 {
			continue
		}
		typeCompat := 0.5
		if src.Type == schema.TypeString {
			typeCompat = 1.0
		}
		c := &candidate{
			ptype:       FieldExtraction,
			sourcePaths: []string{src.Path},
			description: fmt.Sprintf("substring extracted from %q", src.Path),
			supporting:  supporting,
			consistency: consistency,
			typeCompat:  typeCompat,
		}
		if consistency == 1.0 {
			full = append(full, c)
		}
		if better(c, best) {
			best = c
		}
	}

	// The target must come from exactly one source; two full matches mean
	// the examples cannot tell them apart
	if len(full) == 1 {
		return full[0]
	}
	if len(full) > 1 {
		return nil
	}
	return best
}

// detectStringFormatting finds a fixed template rearranging two or more
// source fields into the target
func detectStringFormatting(ctx *detectContext, t *targetField) *candidate {
	if t.field.Type != schema.TypeString || t.field.SampleCount == 0 {
		return nil
	}

	// First example with a target value anchors the template
	anchor := -1
	for i := 0; i < ctx.total; i++ {
		if !t.vals[i].IsNull() {
			anchor = i
			break
		}
	}
	if anchor < 0 {
		return nil
	}
	anchorTarget := t.vals[anchor].Render()

	// Fields contained in the target of every example
	type placed struct {
		field *schema.SchemaField
		pos   int
	}
	var contained []placed
	for _, src := range ctx.inputSchema.Fields() {
		if src.Type == schema.TypeList || src.Type == schema.TypeDict || src.SampleCount != ctx.total {
			continue
		}
		ok := true
		for i := 0; i < ctx.total; i++ {
			if t.vals[i].IsNull() {
				continue
			}
			r := src.Samples[i].Render()
			if r == "" || !strings.Contains(t.vals[i].Render(), r) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		contained = append(contained, placed{src, strings.Index(anchorTarget, src.Samples[anchor].Render())})
	}
	if len(contained) < 2 {
		return nil
	}

	// Order by position in the anchor target, stable for equal positions
	ordered := make([]placed, len(contained))
	copy(ordered, contained)
	for i := 1; i < len(ordered); i++ {
		for j := i; j > 0 && ordered[j].pos < ordered[j-1].pos; j-- {
			ordered[j], ordered[j-1] = ordered[j-1], ordered[j]
		}
	}
	if len(ordered) > templateMaxFields {
		ordered = ordered[:templateMaxFields]
	}

	fields := make([]*schema.SchemaField, len(ordered))
	for i, p := range ordered {
		fields[i] = p.field
	}

	segments, ok := deriveTemplate(anchorTarget, fields, anchor)
	if !ok {
		return nil
	}

	matches := make([]bool, ctx.total)
	for i := 0; i < ctx.total; i++ {
		if t.vals[i].IsNull() {
			continue
		}
		var sb strings.Builder
		for j, f := range fields {
			sb.WriteString(segments[j])
			sb.WriteString(f.Samples[i].Render())
		}
		sb.WriteString(segments[len(fields)])
		matches[i] = sb.String() == t.vals[i].Render()
	}
	supporting, consistency := tally(matches)
	if consistency == 0 {
		return nil
	}

	paths := make([]string, len(fields))
	for i, f := range fields {
		paths[i] = f.Path
	}
	return &candidate{
		ptype:       StringFormatting,
		sourcePaths: paths,
		description: fmt.Sprintf("template %q", renderTemplate(segments, paths)),
		supporting:  supporting,
		consistency: consistency,
		typeCompat:  1.0,
	}
}

// deriveTemplate splits the anchor target into literal segments around the
// ordered field values: seg0 + v0 + seg1 + v1 + ... + segN
func deriveTemplate(target string, fields []*schema.SchemaField, anchor int) ([]string, bool) {
	segments := make([]string, 0, len(fields)+1)
	pos := 0
	for _, f := range fields {
		val := f.Samples[anchor].Render()
		rel := strings.Index(target[pos:], val)
		if rel < 0 {
			return nil, false
		}
		segments = append(segments, target[pos:pos+rel])
		pos += rel + len(val)
	}
	segments = append(segments, target[pos:])
	return segments, true
}

func renderTemplate(segments []string, paths []string) string {
	var sb strings.Builder
	for i, p := range paths {
		sb.WriteString(segments[i])
		sb.WriteString("{" + p + "}")
	}
	sb.WriteString(segments[len(paths)])
	return sb.String()
}

// orderedCombos enumerates k-element index combinations of n fields in a
// fixed order: all orderings matter because join order matters
func orderedCombos(n, k int) [][]int {
	var out [][]int
	switch k {
	case 2:
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				if i != j {
					out = append(out, []int{i, j})
				}
			}
		}
	case 3:
		for i := 0; i < n; i++ {
			for j := 0; j < n; j++ {
				for l := 0; l < n; l++ {
					if i != j && i != l && j != l {
						out = append(out, []int{i, j, l})
					}
				}
			}
		}
	}
	return out
}

func pick(fields []*schema.SchemaField, idx []int) []*schema.SchemaField {
	out := make([]*schema.SchemaField, len(idx))
	for i, j := range idx {
		out[i] = fields[j]
	}
	return out
}
