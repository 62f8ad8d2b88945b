/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: parser.go
Description: The example parser for the Akaylee Mapper. Validates example pairs,
infers input and output schemas, runs the detector precedence list per output
field on a bounded worker pool, and assembles the immutable ParsedExamples
result in output-schema order.
*/

package patterns

import (
	"runtime"
	"sync"

	"github.com/kleascm/akaylee-mapper/pkg/schema"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// ParseOptions tunes the example parser. The zero value uses defaults.
type ParseOptions struct {
	MaxDepth int // Nesting depth bound for schema inference, default 5
	Workers  int // Worker pool size, default min(NumCPU, target count)
}

// ParseExamples analyzes example pairs and classifies how each output field
// is derived from the input. Detection per target field is dispatched onto a
// bounded worker pool; the result is deterministic regardless of pool size.
func ParseExamples(examples []ExamplePair, opts ...ParseOptions) (*ParsedExamples, error) {
	var opt ParseOptions
	if len(opts) > 0 {
		opt = opts[0]
	}
	if opt.MaxDepth <= 0 {
		opt.MaxDepth = schema.DefaultMaxDepth
	}

	if len(examples) == 0 {
		return nil, &schema.EmptyInputError{Op: "parse_examples"}
	}
	for i, ex := range examples {
		if ex.Input.Kind() != values.KindObject {
			return nil, &InvalidExampleError{Index: i, Reason: "input is missing or not an object"}
		}
		if ex.Output.Kind() != values.KindObject {
			return nil, &InvalidExampleError{Index: i, Reason: "output is missing or not an object"}
		}
	}

	inputs := make([]values.Value, len(examples))
	outputs := make([]values.Value, len(examples))
	for i, ex := range examples {
		inputs[i] = ex.Input
		outputs[i] = ex.Output
	}

	inferOpts := schema.InferOptions{MaxDepth: opt.MaxDepth}
	inputSchema, err := schema.InferSchema(inputs, inferOpts)
	if err != nil {
		return nil, err
	}
	outputSchema, err := schema.InferSchema(outputs, inferOpts)
	if err != nil {
		return nil, err
	}

	ctx := &detectContext{
		inputSchema:  inputSchema,
		outputSchema: outputSchema,
		total:        len(examples),
	}

	targets := outputSchema.Fields()
	results := make([]*candidate, len(targets))

	workers := opt.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	if workers > len(targets) {
		workers = len(targets)
	}
	if workers < 1 {
		workers = 1
	}

	jobs := make(chan int)
	var wg sync.WaitGroup
	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				f := targets[idx]
				results[idx] = detectTarget(ctx, &targetField{
					path:  f.Path,
					field: f,
					vals:  f.Samples,
				})
			}
		}()
	}
	for idx := range targets {
		jobs <- idx
	}
	close(jobs)
	wg.Wait()

	parsed := &ParsedExamples{
		InputSchema:   inputSchema,
		OutputSchema:  outputSchema,
		ExamplesCount: len(examples),
	}
	for idx, f := range targets {
		if c := results[idx]; c != nil {
			parsed.Patterns = append(parsed.Patterns, c.pattern(f.Path))
		} else {
			parsed.Unresolved = append(parsed.Unresolved, f.Path)
		}
	}
	return parsed, nil
}

// detectTarget runs the detector precedence list for one output field. The
// first detector holding exactly for every example wins; otherwise the best
// partial candidate above the consistency floor is kept, and CUSTOM is the
// final fallback.
func detectTarget(ctx *detectContext, t *targetField) *candidate {
	var best *candidate
	for _, d := range detectorList {
		c := d.fn(ctx, t)
		if c == nil {
			continue
		}
		if c.consistency == 1.0 {
			return c
		}
		if c.consistency >= minPartialConsistency && better(c, best) {
			best = c
		}
	}
	if best != nil {
		return best
	}
	return detectCustom(ctx, t)
}
