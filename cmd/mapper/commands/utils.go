/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: utils.go
Description: Shared utilities for the Akaylee Mapper commands. Provides common
configuration loading, logging setup, source construction, and styled terminal
output used across all command implementations.
*/

package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/interfaces"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
	"github.com/kleascm/akaylee-mapper/pkg/sources"
)

// Styles shared across commands
var (
	styleSuccess = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f"))
	styleLabel   = lipgloss.NewStyle().Foreground(lipgloss.Color("#bababa"))
	styleWarn    = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24"))
	styleHigh    = lipgloss.NewStyle().Foreground(lipgloss.Color("#27ca3f")).Bold(true)
	styleMedium  = lipgloss.NewStyle().Foreground(lipgloss.Color("#f9ca24")).Bold(true)
	styleLow     = lipgloss.NewStyle().Foreground(lipgloss.Color("#ff6b6b")).Bold(true)
)

// LoadConfig loads configuration from files and environment
func LoadConfig() error {
	// Set config file if specified
	if configFile := viper.GetString("config"); configFile != "" {
		viper.SetConfigFile(configFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Set environment variable prefix
	viper.SetEnvPrefix("AKAYLEE")
	viper.AutomaticEnv()

	return nil
}

// SetupLogging configures the logging system
func SetupLogging() error {
	logLevel := viper.GetString("log_level")
	level, err := logrus.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}

	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	return nil
}

// BuildSource constructs an example source from the bound flags. Exactly
// one source kind must be configured.
func BuildSource() (interfaces.ExampleSource, string, map[string]string, error) {
	examplesFile := viper.GetString("examples")
	csvInput := viper.GetString("csv_input")
	csvOutput := viper.GetString("csv_output")
	url := viper.GetString("url")

	switch {
	case examplesFile != "":
		return sources.NewJSONFileSource(examplesFile), "json",
			map[string]string{"path": examplesFile}, nil

	case csvInput != "" || csvOutput != "":
		if csvInput == "" || csvOutput == "" {
			return nil, "", nil, fmt.Errorf("--csv-input and --csv-output must be given together")
		}
		return sources.NewCSVFileSource(csvInput, csvOutput), "csv",
			map[string]string{"input": csvInput, "output": csvOutput}, nil

	case url != "":
		inputSel := viper.GetString("input_selector")
		outputSel := viper.GetString("output_selector")
		args := map[string]string{
			"url":             url,
			"input_selector":  inputSel,
			"output_selector": outputSel,
		}
		if viper.GetBool("browser") {
			src := sources.NewBrowserSource(url, inputSel, outputSel)
			src.SetHeaders(parseHeaders(viper.GetStringSlice("headers")))
			return src, "browser", args, nil
		}
		return sources.NewWebTableSource(url, inputSel, outputSel), "web", args, nil

	default:
		return nil, "", nil, fmt.Errorf("no example source given: use --examples, --csv-input/--csv-output, or --url")
	}
}

// parseHeaders turns key=value pairs into a header map
func parseHeaders(raw []string) map[string]string {
	headers := make(map[string]string, len(raw))
	for _, h := range raw {
		if k, v, ok := strings.Cut(h, "="); ok {
			headers[k] = v
		}
	}
	return headers
}

// RebuildSource reconstructs a source from persisted project configuration
func RebuildSource(kind string, args map[string]string) (interfaces.ExampleSource, error) {
	switch kind {
	case "json":
		return sources.NewJSONFileSource(args["path"]), nil
	case "csv":
		return sources.NewCSVFileSource(args["input"], args["output"]), nil
	case "web":
		return sources.NewWebTableSource(args["url"], args["input_selector"], args["output_selector"]), nil
	case "browser":
		return sources.NewBrowserSource(args["url"], args["input_selector"], args["output_selector"]), nil
	default:
		return nil, fmt.Errorf("unknown source kind %q", kind)
	}
}

// confidenceStyle picks the display style for a confidence value
func confidenceStyle(confidence float64) lipgloss.Style {
	switch {
	case confidence >= patterns.HighConfidenceMin:
		return styleHigh
	case confidence >= patterns.MediumConfidenceMin:
		return styleMedium
	default:
		return styleLow
	}
}

// PrintPatterns renders a pattern list as a styled table
func PrintPatterns(title string, pats []patterns.Pattern) {
	if len(pats) == 0 {
		return
	}
	fmt.Println(styleLabel.Render(title))
	for _, p := range pats {
		conf := confidenceStyle(p.Confidence).Render(p.ConfidencePercent())
		fmt.Printf("  %s %-22s %s -> %s\n", conf, string(p.Type),
			strings.Join(p.SourcePaths, " + "), p.TargetPath)
		if p.Description != "" {
			fmt.Printf("      %s\n", styleLabel.Render(p.Description))
		}
	}
	fmt.Println()
}

// PrintFiltered renders one filter result with warnings
func PrintFiltered(filtered *filter.FilteredParsedExamples, unresolved []string) {
	PrintPatterns(fmt.Sprintf("Included (threshold %.2f):", filtered.Threshold), filtered.Included)
	PrintPatterns("Excluded:", filtered.Excluded)

	if len(unresolved) > 0 {
		fmt.Println(styleLabel.Render("Unresolved targets:"))
		for _, path := range unresolved {
			fmt.Printf("  %s %s\n", styleLow.Render("?"), path)
		}
		fmt.Println()
	}
	for _, w := range filtered.Warnings {
		fmt.Println(styleWarn.Render("⚠ " + w))
	}
}
