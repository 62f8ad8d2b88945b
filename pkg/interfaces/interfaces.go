/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: interfaces.go
Description: Shared interfaces for the Akaylee Mapper. Defines the core interfaces
used across all packages to break import cycles and enable proper modular design.
*/

package interfaces

import (
	"context"
	"fmt"
	"time"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
)

// MapperConfig represents the configuration for one analysis run
type MapperConfig struct {
	Threshold  float64       // Confidence threshold for pattern filtering
	MaxDepth   int           // Nesting depth bound for schema inference
	Workers    int           // Detection worker pool size, 0 = NumCPU
	OutputDir  string        // Directory for reports and artifacts
	ProjectDir string        // Directory for saved project files
	Model      string        // LLM model for code generation
	Timeout    time.Duration // Per-source load timeout
	LogLevel   string
	LogFile    string
	JSONLogs   bool
}

// Validate checks the MapperConfig for invalid values
func (c *MapperConfig) Validate() error {
	if c.Threshold < 0.0 || c.Threshold > 1.0 {
		return fmt.Errorf("threshold must be in [0.0, 1.0], got %v", c.Threshold)
	}
	if c.MaxDepth < 0 {
		return fmt.Errorf("max_depth must not be negative, got %d", c.MaxDepth)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}

// ExampleSource loads example pairs from somewhere: files, URLs, a live
// browser session. Load honors the context for cancellation.
type ExampleSource interface {
	Load(ctx context.Context) ([]patterns.ExamplePair, error)
	Name() string
	Description() string
}

// Generator turns filtered patterns into executable transformation code
// via an external backend
type Generator interface {
	Generate(ctx context.Context, filtered *filter.FilteredParsedExamples) (string, error)
	Name() string
}

// Reporter renders one completed analysis for humans or machines
type Reporter interface {
	Report(parsed *patterns.ParsedExamples, filtered *filter.FilteredParsedExamples) error
	Name() string
}
