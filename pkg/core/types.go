/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: types.go
Description: Core types for the Akaylee Mapper engine. Defines session statistics
and the analysis result bundle handed to reporters and the code generator.
*/

package core

import (
	"sync"
	"time"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// MapperStats tracks statistics for one engine session
type MapperStats struct {
	SessionID     string    `json:"session_id"`
	StartTime     time.Time `json:"start_time"`
	Analyses      int64     `json:"analyses"`
	ExamplesSeen  int64     `json:"examples_seen"`
	PatternsFound int64     `json:"patterns_found"`
	Unresolved    int64     `json:"unresolved"`
	Excluded      int64     `json:"excluded"`
	Warnings      int64     `json:"warnings"`

	mu sync.Mutex
}

// record folds one analysis result into the running totals
func (s *MapperStats) record(result *AnalysisResult) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Analyses++
	s.ExamplesSeen += int64(result.Parsed.ExamplesCount)
	s.PatternsFound += int64(len(result.Parsed.Patterns))
	s.Unresolved += int64(len(result.Parsed.Unresolved))
	s.Excluded += int64(len(result.Filtered.Excluded))
	s.Warnings += int64(len(result.Filtered.Warnings))
}

// Snapshot returns a copy of the current totals
func (s *MapperStats) Snapshot() MapperStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return MapperStats{
		SessionID:     s.SessionID,
		StartTime:     s.StartTime,
		Analyses:      s.Analyses,
		ExamplesSeen:  s.ExamplesSeen,
		PatternsFound: s.PatternsFound,
		Unresolved:    s.Unresolved,
		Excluded:      s.Excluded,
		Warnings:      s.Warnings,
	}
}

// AnalysisResult bundles everything one engine run produced
type AnalysisResult struct {
	SourceName string
	Parsed     *patterns.ParsedExamples
	Filtered   *filter.FilteredParsedExamples
	Duration   time.Duration
}
