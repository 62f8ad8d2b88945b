/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: filter.go
Description: Filter command implementation for the Akaylee Mapper. Re-applies a
confidence threshold to a saved project's analysis, with an interactive preset
picker when no threshold is given on the command line.
*/

package commands

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
	"github.com/kleascm/akaylee-mapper/pkg/project"
)

// RunFilter re-filters a saved analysis with a new threshold
func RunFilter(cmd *cobra.Command, args []string) error {
	fmt.Println("🗺️  Akaylee Mapper - Pattern Filter")
	fmt.Println("===================================")
	fmt.Println()

	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := SetupLogging(); err != nil {
		return fmt.Errorf("failed to setup logging: %w", err)
	}

	store, err := project.NewStore(viper.GetString("project_dir"))
	if err != nil {
		return err
	}
	proj, err := store.Load(args[0])
	if err != nil {
		return err
	}
	if proj.Artifact == nil {
		return fmt.Errorf("project %q has no saved analysis; run analyze --save first", proj.Name)
	}

	threshold := viper.GetFloat64("filter_threshold")
	if threshold < 0 {
		threshold, err = pickThreshold(proj.Threshold)
		if err != nil {
			return err
		}
	}

	parsed := &patterns.ParsedExamples{
		Patterns:      proj.Artifact.Patterns,
		Unresolved:    proj.Artifact.Unresolved,
		ExamplesCount: proj.Artifact.ExamplesCount,
	}
	filtered, err := filter.ByThreshold(parsed, threshold)
	if err != nil {
		return err
	}

	fmt.Printf("📂 Project %q, analyzed %s, %d examples\n",
		proj.Name, proj.Artifact.AnalyzedAt.Format("2006-01-02 15:04"), proj.Artifact.ExamplesCount)
	fmt.Println()
	PrintFiltered(filtered, parsed.Unresolved)

	// Persist the new threshold
	proj.Threshold = threshold
	proj.Artifact.Threshold = threshold
	if err := store.Save(proj); err != nil {
		return fmt.Errorf("failed to update project: %w", err)
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("💾 Threshold %.2f saved to project %q", threshold, proj.Name)))
	return nil
}

// pickThreshold offers the named presets plus a custom entry
func pickThreshold(current float64) (float64, error) {
	var choice string
	sel := huh.NewSelect[string]().
		Title(fmt.Sprintf("Confidence threshold (current %.2f)", current)).
		Options(
			huh.NewOption(fmt.Sprintf("Conservative (%.1f) - only well-supported patterns", filter.Conservative), "conservative"),
			huh.NewOption(fmt.Sprintf("Balanced (%.1f) - the usual default", filter.Balanced), "balanced"),
			huh.NewOption(fmt.Sprintf("Aggressive (%.1f) - include speculative patterns", filter.Aggressive), "aggressive"),
			huh.NewOption("Custom value", "custom"),
		).
		Value(&choice)
	if err := huh.NewForm(huh.NewGroup(sel)).Run(); err != nil {
		return 0, err
	}

	switch choice {
	case "conservative":
		return filter.Conservative, nil
	case "balanced":
		return filter.Balanced, nil
	case "aggressive":
		return filter.Aggressive, nil
	}

	var raw string
	input := huh.NewInput().
		Title("Threshold in [0.0, 1.0]").
		Validate(func(s string) error {
			f, err := strconv.ParseFloat(s, 64)
			if err != nil {
				return fmt.Errorf("not a number")
			}
			if f < 0 || f > 1 {
				return fmt.Errorf("must be in [0.0, 1.0]")
			}
			return nil
		}).
		Value(&raw)
	if err := huh.NewForm(huh.NewGroup(input)).Run(); err != nil {
		return 0, err
	}
	return strconv.ParseFloat(raw, 64)
}
