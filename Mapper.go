/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: Mapper.go
Description: Standalone demo for the Akaylee Mapper. Analyzes a built-in employee
record example set, prints every detected pattern with its confidence, and writes
JSON reports to ./mapper_output. Modular, clean, and beautiful.
*/

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// demoExamples is a small employee-record mapping: renames, a
// concatenation, a type conversion, and a boolean conversion
var demoExamples = [][2]string{
	{
		`{"employee_id": "E1001", "first_name": "Alice", "last_name": "Johnson", "salary": 95000, "active": "Yes"}`,
		`{"id": "E1001", "full_name": "Alice Johnson", "annual_salary_usd": 95000.0, "is_active": true}`,
	},
	{
		`{"employee_id": "E1002", "first_name": "Bob", "last_name": "Smith", "salary": 72000, "active": "No"}`,
		`{"id": "E1002", "full_name": "Bob Smith", "annual_salary_usd": 72000.0, "is_active": false}`,
	},
	{
		`{"employee_id": "E1003", "first_name": "Carol", "last_name": "Nguyen", "salary": 88000, "active": "Yes"}`,
		`{"id": "E1003", "full_name": "Carol Nguyen", "annual_salary_usd": 88000.0, "is_active": true}`,
	},
}

func main() {
	fmt.Println("🗺️  Akaylee Mapper Demo")
	fmt.Println("=======================")
	fmt.Println()

	pairs := make([]patterns.ExamplePair, 0, len(demoExamples))
	for i, ex := range demoExamples {
		pair, err := patterns.PairFromJSON([]byte(ex[0]), []byte(ex[1]))
		if err != nil {
			fmt.Fprintf(os.Stderr, "example %d: %v\n", i, err)
			os.Exit(1)
		}
		pairs = append(pairs, pair)
	}

	start := time.Now()
	parsed, err := patterns.ParseExamples(pairs)
	if err != nil {
		fmt.Fprintf(os.Stderr, "analysis failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Analyzed %d examples in %v\n\n", parsed.ExamplesCount, time.Since(start).Round(time.Microsecond))

	for _, p := range parsed.Patterns {
		fmt.Printf("  %-7s %-20s %v -> %s\n", p.ConfidencePercent(), p.Type, p.SourcePaths, p.TargetPath)
	}
	for _, path := range parsed.Unresolved {
		fmt.Printf("  ???     unresolved            -> %s\n", path)
	}
	fmt.Println()

	filtered, err := filter.ByThreshold(parsed, filter.Balanced)
	if err != nil {
		fmt.Fprintf(os.Stderr, "filter failed: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Threshold %.2f: %d included, %d excluded\n",
		filtered.Threshold, len(filtered.Included), len(filtered.Excluded))

	outputDir := "./mapper_output"
	os.MkdirAll(outputDir, 0755)
	timestamp := time.Now().Format("2006-01-02_15-04-05")

	jsonPath := filepath.Join(outputDir, fmt.Sprintf("mapper_demo_%s.json", timestamp))
	jsonData, _ := json.MarshalIndent(struct {
		Parsed   *patterns.ParsedExamples       `json:"analysis"`
		Filtered *filter.FilteredParsedExamples `json:"filtered"`
	}{parsed, filtered}, "", "  ")
	os.WriteFile(jsonPath, jsonData, 0644)
	fmt.Printf("\nReport written to %s\n", jsonPath)

	// Show the inferred input schema too
	fmt.Println("\nInput schema:")
	for _, f := range parsed.InputSchema.Fields() {
		nullable := ""
		if f.Nullable {
			nullable = " (nullable)"
		}
		fmt.Printf("  %-14s %s%s\n", f.Path, f.Type, nullable)
	}
}
