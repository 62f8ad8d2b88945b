/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: report.go
Description: HTML report system for the Akaylee Mapper. Generates beautiful web
reports of one analysis: detected patterns with confidence bands, unresolved
targets, filter results, and warnings.
*/

package reporting

import (
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// HTMLReportGenerator renders analysis results into standalone HTML files
type HTMLReportGenerator struct {
	outputDir string
	logger    *logrus.Logger
	templates *template.Template
}

// ReportData contains all data for report generation
type ReportData struct {
	Title         string
	GeneratedAt   time.Time
	ExamplesCount int
	Threshold     float64

	High   []patterns.Pattern
	Medium []patterns.Pattern
	Low    []patterns.Pattern

	Included   []patterns.Pattern
	Excluded   []patterns.Pattern
	Unresolved []string
	Warnings   []string
}

// NewHTMLReportGenerator creates a generator writing into outputDir
func NewHTMLReportGenerator(outputDir string, logger *logrus.Logger) (*HTMLReportGenerator, error) {
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create report directory: %w", err)
	}
	tmpl, err := template.New("report").Parse(reportTemplate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse report template: %w", err)
	}
	return &HTMLReportGenerator{
		outputDir: outputDir,
		logger:    logger,
		templates: tmpl,
	}, nil
}

// Name identifies the reporter
func (g *HTMLReportGenerator) Name() string { return "html" }

// Report renders one analysis into a timestamped HTML file
func (g *HTMLReportGenerator) Report(parsed *patterns.ParsedExamples, filtered *filter.FilteredParsedExamples) error {
	data := &ReportData{
		Title:         "Akaylee Mapper Analysis",
		GeneratedAt:   time.Now(),
		ExamplesCount: parsed.ExamplesCount,
		Threshold:     filtered.Threshold,
		High:          parsed.HighConfidencePatterns(),
		Medium:        parsed.MediumConfidencePatterns(),
		Low:           parsed.LowConfidencePatterns(),
		Included:      filtered.Included,
		Excluded:      filtered.Excluded,
		Unresolved:    parsed.Unresolved,
		Warnings:      filtered.Warnings,
	}

	filename := fmt.Sprintf("mapper-report_%s.html", data.GeneratedAt.Format("2006-01-02_15-04-05"))
	path := filepath.Join(g.outputDir, filename)

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer f.Close()

	if err := g.templates.Execute(f, data); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}

	if g.logger != nil {
		g.logger.WithFields(logrus.Fields{
			"path":     path,
			"patterns": len(data.Included) + len(data.Excluded),
		}).Info("HTML report generated")
	}
	return nil
}
