/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: csv.go
Description: CSV file example source. Loads example pairs from two parallel CSV
files, one holding input records and one holding the desired output records,
row i of each forming example pair i.
*/

package sources

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
	"github.com/kleascm/akaylee-mapper/pkg/values"
)

// CSVFileSource reads paired input and output CSV files. The first row of
// each file is the header, every following row is one record; the two
// files must have the same number of data rows.
type CSVFileSource struct {
	inputPath  string
	outputPath string
}

// NewCSVFileSource creates a source for the given file pair
func NewCSVFileSource(inputPath, outputPath string) *CSVFileSource {
	return &CSVFileSource{inputPath: inputPath, outputPath: outputPath}
}

// Name identifies the source
func (s *CSVFileSource) Name() string { return "csv:" + s.inputPath }

// Description describes the source for display
func (s *CSVFileSource) Description() string {
	return fmt.Sprintf("CSV example files %s -> %s", s.inputPath, s.outputPath)
}

// Load reads both files and zips their rows into example pairs
func (s *CSVFileSource) Load(ctx context.Context) ([]patterns.ExamplePair, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inputs, err := readCSVRecords(s.inputPath)
	if err != nil {
		return nil, fmt.Errorf("input side: %w", err)
	}
	outputs, err := readCSVRecords(s.outputPath)
	if err != nil {
		return nil, fmt.Errorf("output side: %w", err)
	}
	if len(inputs) != len(outputs) {
		return nil, fmt.Errorf("row count mismatch: %d input rows, %d output rows", len(inputs), len(outputs))
	}

	pairs := make([]patterns.ExamplePair, len(inputs))
	for i := range inputs {
		pairs[i] = patterns.ExamplePair{Input: inputs[i], Output: outputs[i]}
	}
	return pairs, nil
}

// readCSVRecords reads one CSV file into ordered record objects
func readCSVRecords(path string) ([]values.Value, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(rows) < 2 {
		return nil, fmt.Errorf("%s has no data rows", path)
	}

	header := rows[0]
	records := make([]values.Value, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) != len(header) {
			return nil, fmt.Errorf("%s row has %d cells, header has %d", path, len(row), len(header))
		}
		pairs := make([]any, 0, len(header)*2)
		for i, name := range header {
			pairs = append(pairs, name, cellValue(row[i]))
		}
		records = append(records, values.Object(pairs...))
	}
	return records, nil
}

// cellValue types a CSV cell the way a JSON document would carry it:
// empty cells become null, numerals keep their integer/float distinction,
// everything else stays a string
func cellValue(cell string) values.Value {
	trimmed := strings.TrimSpace(cell)
	if trimmed == "" {
		return values.Null()
	}
	if i, err := strconv.ParseInt(trimmed, 10, 64); err == nil {
		return values.Int(i)
	}
	if f, err := strconv.ParseFloat(trimmed, 64); err == nil {
		return values.Float(f)
	}
	return values.String(cell)
}
