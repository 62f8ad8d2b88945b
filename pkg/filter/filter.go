/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: filter.go
Description: Confidence-threshold filtering for detected patterns. Partitions a
ParsedExamples result into included and excluded patterns without mutating the
source, and attaches advisory warnings about suspicious exclusions.
*/

package filter

import (
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// Named threshold presets. Informational constants for callers and the CLI;
// filtering itself accepts any threshold in [0, 1].
const (
	Conservative = 0.8
	Balanced     = 0.7
	Aggressive   = 0.6
)

// Excluded-count at which a summary warning is produced
const summaryWarningMin = 3

// InvalidThresholdError indicates a threshold outside [0.0, 1.0]
type InvalidThresholdError struct {
	Threshold float64
}

func (e *InvalidThresholdError) Error() string {
	return fmt.Sprintf("threshold %v is outside [0.0, 1.0]", e.Threshold)
}

// FilteredParsedExamples is the result of one threshold filter call. The
// source ParsedExamples is never mutated.
type FilteredParsedExamples struct {
	Included  []patterns.Pattern `json:"included"`
	Excluded  []patterns.Pattern `json:"excluded"`
	Threshold float64            `json:"threshold"`
	Warnings  []string           `json:"warnings"`
}

// ByThreshold partitions the parsed patterns by confidence. Patterns with
// confidence >= threshold are included, the rest excluded; unresolved
// targets stay out regardless of threshold.
func ByThreshold(parsed *patterns.ParsedExamples, threshold float64) (*FilteredParsedExamples, error) {
	if threshold < 0.0 || threshold > 1.0 {
		return nil, &InvalidThresholdError{Threshold: threshold}
	}

	out := &FilteredParsedExamples{Threshold: threshold}
	for _, p := range parsed.Patterns {
		if p.Confidence >= threshold {
			out.Included = append(out.Included, p)
		} else {
			out.Excluded = append(out.Excluded, p)
		}
	}
	out.Warnings = buildWarnings(out.Excluded)
	return out, nil
}

// buildWarnings flags exclusion shapes that usually mean the examples are
// noisy rather than the mapping genuinely uncertain
func buildWarnings(excluded []patterns.Pattern) []string {
	var warnings []string

	if len(excluded) >= summaryWarningMin {
		fields := make([]string, len(excluded))
		for i, p := range excluded {
			fields[i] = p.TargetPath
		}
		warnings = append(warnings, fmt.Sprintf(
			"%d patterns excluded by threshold: %s",
			len(excluded), strings.Join(fields, ", ")))
	}

	// A direct field mapping below threshold almost always means the example
	// set is noisy, not that the rename is uncertain
	for _, p := range excluded {
		if p.Type == patterns.FieldMapping {
			warnings = append(warnings, fmt.Sprintf(
				"excluded FIELD_MAPPING for %q (confidence %s); review recommended, low confidence on a direct mapping usually indicates noisy examples",
				p.TargetPath, p.ConfidencePercent()))
		}
	}
	return warnings
}
