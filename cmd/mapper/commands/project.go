/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: project.go
Description: Project management commands for the Akaylee Mapper. Lists, shows, and
deletes saved mapping projects.
*/

package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mapper/pkg/project"
)

// RunProjectList lists saved projects
func RunProjectList(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	store, err := project.NewStore(viper.GetString("project_dir"))
	if err != nil {
		return err
	}
	names, err := store.List()
	if err != nil {
		return err
	}
	if len(names) == 0 {
		fmt.Println("📭 No saved projects.")
		return nil
	}
	fmt.Printf("📂 %d saved projects:\n", len(names))
	for _, name := range names {
		p, err := store.Load(name)
		if err != nil {
			continue
		}
		status := styleLabel.Render("not analyzed")
		if p.Artifact != nil {
			status = fmt.Sprintf("%d patterns, threshold %.2f", len(p.Artifact.Patterns), p.Threshold)
		}
		fmt.Printf("  %s %-20s %s (%s)\n", styleSuccess.Render("•"), name, status, p.SourceKind)
	}
	return nil
}

// RunProjectShow displays a saved project's analysis
func RunProjectShow(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	store, err := project.NewStore(viper.GetString("project_dir"))
	if err != nil {
		return err
	}
	p, err := store.Load(args[0])
	if err != nil {
		return err
	}

	fmt.Printf("📂 Project %q (%s)\n", p.Name, p.ID[:8])
	fmt.Printf("   Source: %s, created %s\n", p.SourceKind, p.CreatedAt.Format("2006-01-02 15:04"))
	if p.Artifact == nil {
		fmt.Println("   No saved analysis.")
		return nil
	}
	fmt.Printf("   Analyzed %s over %d examples\n", p.Artifact.AnalyzedAt.Format("2006-01-02 15:04"), p.Artifact.ExamplesCount)
	fmt.Println()
	PrintPatterns("Patterns:", p.Artifact.Patterns)
	if len(p.Artifact.Unresolved) > 0 {
		fmt.Println(styleLabel.Render("Unresolved targets:"))
		for _, path := range p.Artifact.Unresolved {
			fmt.Printf("  %s %s\n", styleLow.Render("?"), path)
		}
	}
	return nil
}

// RunProjectDelete deletes a saved project
func RunProjectDelete(cmd *cobra.Command, args []string) error {
	if err := LoadConfig(); err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	store, err := project.NewStore(viper.GetString("project_dir"))
	if err != nil {
		return err
	}
	if err := store.Delete(args[0]); err != nil {
		return err
	}
	fmt.Println(styleSuccess.Render(fmt.Sprintf("🗑️  Deleted project %q", args[0])))
	return nil
}
