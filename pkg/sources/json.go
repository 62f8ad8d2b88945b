/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: json.go
Description: JSON file example source. Loads example pairs from a single JSON
document, preserving field order so downstream detection stays deterministic.
*/

package sources

import (
	"context"
	"fmt"
	"os"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// JSONFileSource reads example pairs from a JSON file. The document is
// either a bare list of {"input": {...}, "output": {...}} objects or an
// object with an "examples" key holding that list.
type JSONFileSource struct {
	path string
}

// NewJSONFileSource creates a source for the given file path
func NewJSONFileSource(path string) *JSONFileSource {
	return &JSONFileSource{path: path}
}

// Name identifies the source
func (s *JSONFileSource) Name() string { return "json:" + s.path }

// Description describes the source for display
func (s *JSONFileSource) Description() string {
	return fmt.Sprintf("JSON example file %s", s.path)
}

// Load reads and decodes the example file
func (s *JSONFileSource) Load(ctx context.Context) ([]patterns.ExamplePair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read example file: %w", err)
	}
	doc, err := values.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("failed to decode example file: %w", err)
	}

	list := doc
	if doc.Kind() == values.KindObject {
		inner, ok := doc.Get("examples")
		if !ok {
			return nil, fmt.Errorf("example file object has no \"examples\" key")
		}
		list = inner
	}
	if list.Kind() != values.KindList {
		return nil, fmt.Errorf("example file must hold a list of example pairs")
	}

	pairs := make([]patterns.ExamplePair, 0, len(list.ListVal()))
	for i, elem := range list.ListVal() {
		if elem.Kind() != values.KindObject {
			return nil, fmt.Errorf("example %d is not an object", i)
		}
		input, okIn := elem.Get("input")
		output, okOut := elem.Get("output")
		if !okIn || !okOut {
			return nil, fmt.Errorf("example %d is missing its input or output object", i)
		}
		pairs = append(pairs, patterns.ExamplePair{Input: input, Output: output})
	}
	return pairs, nil
}
