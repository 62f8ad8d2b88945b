/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: reporter.go
Description: Reporter implementations for Akaylee Mapper analysis results.
Supports structured logging output and future integrations for live display.
*/

package core

import (
	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// LoggerReporter logs analysis results using the standard logger.
type LoggerReporter struct {
	logger *logrus.Logger
}

// NewLoggerReporter creates a new LoggerReporter.
func NewLoggerReporter(logger *logrus.Logger) *LoggerReporter {
	return &LoggerReporter{logger: logger}
}

// Name identifies the reporter.
func (r *LoggerReporter) Name() string { return "logger" }

// Report logs one line per pattern plus a filter summary.
func (r *LoggerReporter) Report(parsed *patterns.ParsedExamples, filtered *filter.FilteredParsedExamples) error {
	for i := range parsed.Patterns {
		p := &parsed.Patterns[i]
		r.logger.WithFields(logrus.Fields{
			"target":     p.TargetPath,
			"type":       p.Type,
			"confidence": p.ConfidencePercent(),
		}).Info("Pattern detected")
	}
	for _, path := range parsed.Unresolved {
		r.logger.WithFields(logrus.Fields{"target": path}).Warn("Target unresolved")
	}
	r.logger.WithFields(logrus.Fields{
		"threshold": filtered.Threshold,
		"included":  len(filtered.Included),
		"excluded":  len(filtered.Excluded),
	}).Info("Patterns filtered")
	for _, w := range filtered.Warnings {
		r.logger.Warn(w)
	}
	return nil
}
