/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: engine.go
Description: Main mapper engine implementation. Loads example pairs from registered
sources, runs pattern detection and confidence filtering, and fans results out to
registered reporters. Components are injected before Initialize, mirroring the
dependency injection style used across the project.
*/

package core

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/interfaces"
	"github.com/kleascm/akaylee-mapper/pkg/logging"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// Engine drives analysis sessions: sources in, patterns and reports out
type Engine struct {
	config *interfaces.MapperConfig
	stats  *MapperStats
	logger *logging.Logger

	// Injected components
	sources   []interfaces.ExampleSource
	reporters []interfaces.Reporter
	generator interfaces.Generator

	// State management
	initialized bool
	mu          sync.RWMutex
}

// NewEngine creates a new mapper engine instance
func NewEngine(logger *logging.Logger) *Engine {
	return &Engine{
		stats: &MapperStats{
			SessionID: uuid.New().String(),
			StartTime: time.Now(),
		},
		logger: logger,
	}
}

// Initialize validates the configuration and prepares the engine
func (e *Engine) Initialize(config *interfaces.MapperConfig) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := config.Validate(); err != nil {
		return fmt.Errorf("invalid mapper config: %w", err)
	}
	if len(e.sources) == 0 {
		return fmt.Errorf("no sources registered - use AddSource() before Initialize()")
	}

	e.config = config
	e.initialized = true

	e.logger.Info("Mapper engine initialized", map[string]interface{}{
		"session_id": e.stats.SessionID,
		"sources":    len(e.sources),
		"reporters":  len(e.reporters),
		"threshold":  config.Threshold,
	})
	return nil
}

// AddSource registers an example source
func (e *Engine) AddSource(src interfaces.ExampleSource) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.sources = append(e.sources, src)
}

// AddReporter registers a reporter for analysis results
func (e *Engine) AddReporter(r interfaces.Reporter) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.reporters = append(e.reporters, r)
}

// SetGenerator sets the code generation backend
func (e *Engine) SetGenerator(g interfaces.Generator) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.generator = g
}

// Stats returns a snapshot of the session statistics
func (e *Engine) Stats() MapperStats {
	return e.stats.Snapshot()
}

// Run analyzes every registered source in order and returns one result per
// source. A source that fails to load aborts the run; detection failures on
// valid examples cannot happen by construction, they degrade into unresolved
// targets instead.
func (e *Engine) Run(ctx context.Context) ([]*AnalysisResult, error) {
	e.mu.RLock()
	if !e.initialized {
		e.mu.RUnlock()
		return nil, fmt.Errorf("engine not initialized")
	}
	sources := e.sources
	e.mu.RUnlock()

	results := make([]*AnalysisResult, 0, len(sources))
	for _, src := range sources {
		result, err := e.analyzeSource(ctx, src)
		if err != nil {
			return nil, fmt.Errorf("source %q: %w", src.Name(), err)
		}
		results = append(results, result)
	}

	stats := e.stats.Snapshot()
	e.logger.LogStats(stats.Analyses, stats.PatternsFound, stats.Unresolved, nil)
	return results, nil
}

// analyzeSource loads, analyzes, filters, and reports one source
func (e *Engine) analyzeSource(ctx context.Context, src interfaces.ExampleSource) (*AnalysisResult, error) {
	loadCtx := ctx
	if e.config.Timeout > 0 {
		var cancel context.CancelFunc
		loadCtx, cancel = context.WithTimeout(ctx, e.config.Timeout)
		defer cancel()
	}

	examples, err := src.Load(loadCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to load examples: %w", err)
	}

	start := time.Now()
	parsed, err := patterns.ParseExamples(examples, patterns.ParseOptions{
		MaxDepth: e.config.MaxDepth,
		Workers:  e.config.Workers,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse examples: %w", err)
	}

	filtered, err := filter.ByThreshold(parsed, e.config.Threshold)
	if err != nil {
		return nil, fmt.Errorf("failed to filter patterns: %w", err)
	}
	duration := time.Since(start)

	result := &AnalysisResult{
		SourceName: src.Name(),
		Parsed:     parsed,
		Filtered:   filtered,
		Duration:   duration,
	}
	e.stats.record(result)

	e.logger.LogAnalysis(e.stats.SessionID, parsed.ExamplesCount,
		len(parsed.Patterns), len(parsed.Unresolved), duration,
		map[string]interface{}{"source": src.Name()})
	for i := range parsed.Patterns {
		p := &parsed.Patterns[i]
		e.logger.LogPattern(p.TargetPath, string(p.Type), p.Confidence, nil)
	}
	for _, path := range parsed.Unresolved {
		e.logger.LogUnresolved(path, nil)
	}
	e.logger.LogFilter(e.config.Threshold, len(filtered.Included),
		len(filtered.Excluded), len(filtered.Warnings), nil)

	for _, r := range e.reporters {
		if err := r.Report(parsed, filtered); err != nil {
			e.logger.Error("Reporter failed", map[string]interface{}{
				"reporter": r.Name(),
				"error":    err.Error(),
			})
		}
	}
	return result, nil
}

// Generate hands the filtered patterns of a result to the configured code
// generation backend
func (e *Engine) Generate(ctx context.Context, result *AnalysisResult) (string, error) {
	e.mu.RLock()
	gen := e.generator
	e.mu.RUnlock()

	if gen == nil {
		return "", fmt.Errorf("generator not set - use SetGenerator() before Generate()")
	}
	code, err := gen.Generate(ctx, result.Filtered)
	if err != nil {
		return "", fmt.Errorf("code generation failed: %w", err)
	}
	return code, nil
}
