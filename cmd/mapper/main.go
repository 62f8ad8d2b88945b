/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: main.go
Description: Main command-line interface for the Akaylee Mapper. Provides comprehensive
command-line options, configuration management, and beautiful user interface for
example-driven transformation analysis with advanced logging capabilities.
*/

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/kleascm/akaylee-mapper/cmd/mapper/commands"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	// Configuration
	configFile string
	logLevel   string
	jsonLogs   bool

	// Logging configuration
	logDir      string
	logFormat   string
	logMaxFiles int
	logMaxSize  int64

	// Analysis configuration
	threshold float64
	maxDepth  int
	workers   int
	timeout   time.Duration

	// Source configuration
	examplesFile   string
	csvInput       string
	csvOutput      string
	webURL         string
	inputSelector  string
	outputSelector string
	useBrowser     bool
	browserHeaders []string

	// Output configuration
	outputDir   string
	projectDir  string
	projectName string
	htmlReport  bool

	// Generation configuration
	model    string
	language string
	dryRun   bool
)

func main() {
	// Create root command
	rootCmd := &cobra.Command{
		Use:   "akaylee-mapper",
		Short: "Akaylee Mapper - Example-driven data transformation inference engine",
		Long: `Akaylee Mapper infers data transformations from paired examples. Supply a
handful of input/output record pairs and it detects, per output field, which
transformation pattern produced it and how confident that inference is, then
hands the result to a code generation backend to produce executable mapping code.`,
		Version: "1.0.0",
	}

	// Add persistent flags
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Logging level (debug, info, warn, error)")
	rootCmd.PersistentFlags().BoolVar(&jsonLogs, "json-logs", false, "Use JSON log format")

	// Add logging-specific flags
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "./logs", "Log output directory")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "custom", "Log format (text, json, custom)")
	rootCmd.PersistentFlags().IntVar(&logMaxFiles, "log-max-files", 10, "Maximum number of log files to keep")
	rootCmd.PersistentFlags().Int64Var(&logMaxSize, "log-max-size", 100*1024*1024, "Maximum log file size in bytes")

	// Add project flags
	rootCmd.PersistentFlags().StringVar(&projectDir, "project-dir", "./projects", "Directory for saved projects")

	// Bind flags to viper
	viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	viper.BindPFlag("log_level", rootCmd.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("json_logs", rootCmd.PersistentFlags().Lookup("json-logs"))
	viper.BindPFlag("log_dir", rootCmd.PersistentFlags().Lookup("log-dir"))
	viper.BindPFlag("log_format", rootCmd.PersistentFlags().Lookup("log-format"))
	viper.BindPFlag("log_max_files", rootCmd.PersistentFlags().Lookup("log-max-files"))
	viper.BindPFlag("log_max_size", rootCmd.PersistentFlags().Lookup("log-max-size"))
	viper.BindPFlag("project_dir", rootCmd.PersistentFlags().Lookup("project-dir"))

	// Add analyze command
	analyzeCmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze example pairs and detect transformation patterns",
		Long: `Analyze a set of paired examples and detect, for every output field, the
transformation pattern that produced it: direct mappings, concatenations, type
conversions, lookup tables, aggregations, and more, each with a confidence score.`,
		RunE: commands.RunAnalyze,
	}

	// Add analyze command flags
	analyzeCmd.Flags().StringVar(&examplesFile, "examples", "", "Path to JSON example file")
	analyzeCmd.Flags().StringVar(&csvInput, "csv-input", "", "Path to CSV file of input records")
	analyzeCmd.Flags().StringVar(&csvOutput, "csv-output", "", "Path to CSV file of output records")
	analyzeCmd.Flags().StringVar(&webURL, "url", "", "URL of a page holding example tables")
	analyzeCmd.Flags().StringVar(&inputSelector, "input-selector", "table.input", "CSS selector for the input table")
	analyzeCmd.Flags().StringVar(&outputSelector, "output-selector", "table.output", "CSS selector for the output table")
	analyzeCmd.Flags().BoolVar(&useBrowser, "browser", false, "Render the page in headless Chrome before extraction")
	analyzeCmd.Flags().StringSliceVar(&browserHeaders, "header", []string{}, "Custom browser headers (key=value)")

	analyzeCmd.Flags().Float64Var(&threshold, "threshold", 0.7, "Confidence threshold for pattern filtering")
	analyzeCmd.Flags().IntVar(&maxDepth, "max-depth", 5, "Maximum nesting depth for schema inference")
	analyzeCmd.Flags().IntVar(&workers, "workers", 0, "Number of detection workers (0 = auto-detect)")
	analyzeCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "Source load timeout")

	analyzeCmd.Flags().StringVar(&outputDir, "output", "./mapper_output", "Directory for reports")
	analyzeCmd.Flags().BoolVar(&htmlReport, "html-report", false, "Generate an HTML report")
	analyzeCmd.Flags().StringVar(&projectName, "save", "", "Save the analysis as a named project")

	// Bind flags to viper
	viper.BindPFlag("examples", analyzeCmd.Flags().Lookup("examples"))
	viper.BindPFlag("csv_input", analyzeCmd.Flags().Lookup("csv-input"))
	viper.BindPFlag("csv_output", analyzeCmd.Flags().Lookup("csv-output"))
	viper.BindPFlag("url", analyzeCmd.Flags().Lookup("url"))
	viper.BindPFlag("input_selector", analyzeCmd.Flags().Lookup("input-selector"))
	viper.BindPFlag("output_selector", analyzeCmd.Flags().Lookup("output-selector"))
	viper.BindPFlag("browser", analyzeCmd.Flags().Lookup("browser"))
	viper.BindPFlag("headers", analyzeCmd.Flags().Lookup("header"))
	viper.BindPFlag("threshold", analyzeCmd.Flags().Lookup("threshold"))
	viper.BindPFlag("max_depth", analyzeCmd.Flags().Lookup("max-depth"))
	viper.BindPFlag("workers", analyzeCmd.Flags().Lookup("workers"))
	viper.BindPFlag("timeout", analyzeCmd.Flags().Lookup("timeout"))
	viper.BindPFlag("output_dir", analyzeCmd.Flags().Lookup("output"))
	viper.BindPFlag("html_report", analyzeCmd.Flags().Lookup("html-report"))
	viper.BindPFlag("save", analyzeCmd.Flags().Lookup("save"))

	rootCmd.AddCommand(analyzeCmd)

	// Add filter command for re-thresholding saved analyses
	filterCmd := &cobra.Command{
		Use:   "filter <project>",
		Short: "Re-filter a saved analysis with a new confidence threshold",
		Long: `Apply a new confidence threshold to a saved project's analysis without
re-running detection. With no --threshold flag an interactive picker offers
the conservative, balanced, and aggressive presets.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunFilter,
	}
	filterCmd.Flags().Float64Var(&threshold, "threshold", -1, "Confidence threshold (omit for interactive picker)")
	viper.BindPFlag("filter_threshold", filterCmd.Flags().Lookup("threshold"))
	rootCmd.AddCommand(filterCmd)

	// Add generate command for code generation
	generateCmd := &cobra.Command{
		Use:   "generate <project>",
		Short: "Generate transformation code from a saved analysis",
		Long: `Hand the filtered patterns of a saved project to the code generation
backend and write the produced transformation function to a file.`,
		Args: cobra.ExactArgs(1),
		RunE: commands.RunGenerate,
	}
	generateCmd.Flags().StringVar(&model, "model", "", "LLM model (default gpt-4o-mini)")
	generateCmd.Flags().StringVar(&language, "language", "python", "Target language for generated code")
	generateCmd.Flags().StringVar(&outputDir, "output", "./mapper_output", "Directory for generated code")
	generateCmd.Flags().BoolVar(&dryRun, "dry-run", false, "Print the prompt without calling the backend")
	viper.BindPFlag("model", generateCmd.Flags().Lookup("model"))
	viper.BindPFlag("language", generateCmd.Flags().Lookup("language"))
	viper.BindPFlag("generate_output_dir", generateCmd.Flags().Lookup("output"))
	viper.BindPFlag("dry_run", generateCmd.Flags().Lookup("dry-run"))
	rootCmd.AddCommand(generateCmd)

	// Add project management commands
	projectCmd := &cobra.Command{
		Use:   "project",
		Short: "Manage saved mapping projects",
	}
	projectCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List saved projects",
		RunE:  commands.RunProjectList,
	})
	projectCmd.AddCommand(&cobra.Command{
		Use:   "show <project>",
		Short: "Show a saved project's analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.RunProjectShow,
	})
	projectCmd.AddCommand(&cobra.Command{
		Use:   "delete <project>",
		Short: "Delete a saved project",
		Args:  cobra.ExactArgs(1),
		RunE:  commands.RunProjectDelete,
	})
	rootCmd.AddCommand(projectCmd)

	// Execute root command
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
