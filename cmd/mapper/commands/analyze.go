/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: analyze.go
Description: Analyze command implementation for the Akaylee Mapper. Loads example
pairs from the configured source, runs pattern detection and confidence filtering,
displays the results, and optionally saves the analysis as a project.
*/

package commands

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mapper/pkg/core"
	"github.com/kleascm/akaylee-mapper/pkg/interfaces"
	"github.com/kleascm/akaylee-mapper/pkg/logging"
	"github.com/kleascm/akaylee-mapper/pkg/project"
	"github.com/kleascm/akaylee-mapper/pkg/reporting"
)

// RunAnalyze loads examples, detects patterns, and reports the result
func RunAnalyze(cmd *cobra.Command, args []string) error {
	fmt.Println("🗺️  Akaylee Mapper - Example Analysis")
	fmt.Println("=====================================")
	fmt.Println()

	// Load configuration first
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// Setup logging for analysis
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	src, sourceKind, sourceArgs, err := BuildSource()
	if err != nil {
		return err
	}

	fmt.Printf("📥 Source: %s\n", src.Description())
	fmt.Println()

	logger, err := logging.NewLogger(&logging.LoggerConfig{
		Level:     logging.LogLevel(viper.GetString("log_level")),
		Format:    logging.LogFormat(viper.GetString("log_format")),
		OutputDir: viper.GetString("log_dir"),
		MaxFiles:  viper.GetInt("log_max_files"),
		MaxSize:   viper.GetInt64("log_max_size"),
		Timestamp: true,
		Caller:    false,
		Colors:    true,
	})
	if err != nil {
		return fmt.Errorf("failed to create logger: %w", err)
	}
	defer logger.Close()

	config := &interfaces.MapperConfig{
		Threshold:  viper.GetFloat64("threshold"),
		MaxDepth:   viper.GetInt("max_depth"),
		Workers:    viper.GetInt("workers"),
		OutputDir:  viper.GetString("output_dir"),
		ProjectDir: viper.GetString("project_dir"),
		Timeout:    viper.GetDuration("timeout"),
	}

	engine := core.NewEngine(logger)
	engine.AddSource(src)

	if viper.GetBool("html_report") {
		reporter, err := reporting.NewHTMLReportGenerator(config.OutputDir, logger.GetLogger())
		if err != nil {
			return fmt.Errorf("failed to create HTML reporter: %w", err)
		}
		engine.AddReporter(reporter)
	}

	if err := engine.Initialize(config); err != nil {
		return err
	}

	start := time.Now()
	results, err := engine.Run(context.Background())
	if err != nil {
		return err
	}
	result := results[0]

	fmt.Printf("✅ Analyzed %d examples in %v\n", result.Parsed.ExamplesCount, time.Since(start).Round(time.Millisecond))
	fmt.Printf("   %d patterns detected, %d targets unresolved\n",
		len(result.Parsed.Patterns), len(result.Parsed.Unresolved))
	fmt.Println()

	PrintFiltered(result.Filtered, result.Parsed.Unresolved)

	// Save as a project if requested
	if name := viper.GetString("save"); name != "" {
		store, err := project.NewStore(config.ProjectDir)
		if err != nil {
			return err
		}
		proj, err := project.New(name, sourceKind, sourceArgs, config.Threshold)
		if err != nil {
			return err
		}
		proj.RecordAnalysis(result.Parsed, config.Threshold)
		if err := store.Save(proj); err != nil {
			return fmt.Errorf("failed to save project: %w", err)
		}
		fmt.Println(styleSuccess.Render(fmt.Sprintf("💾 Saved as project %q (%s)", name, proj.ID[:8])))
	}

	return nil
}
