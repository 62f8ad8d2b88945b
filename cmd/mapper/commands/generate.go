/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: generate.go
Description: Generate command implementation for the Akaylee Mapper. Feeds the
filtered patterns of a saved project to the code generation backend and writes
the produced transformation function to disk.
*/

package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/kleascm/akaylee-mapper/pkg/codegen"
	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/patterns"
	"github.com/kleascm/akaylee-mapper/pkg/project"
)

// languageExtensions maps target languages to output file extensions
var languageExtensions = map[string]string{
	"python":     "py",
	"go":         "go",
	"javascript": "js",
	"typescript": "ts",
	"ruby":       "rb",
}

// RunGenerate turns a saved analysis into transformation code
func RunGenerate(cmd *cobra.Command, args []string) error {
	fmt.Println("🗺️  Akaylee Mapper - Code Generation")
	fmt.Println("====================================")
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

	parsed := &patterns.ParsedExamples{
		Patterns:      proj.Artifact.Patterns,
		Unresolved:    proj.Artifact.Unresolved,
		ExamplesCount: proj.Artifact.ExamplesCount,
	}
	filtered, err := filter.ByThreshold(parsed, proj.Threshold)
	if err != nil {
		return err
	}
	if len(filtered.Included) == 0 {
		return fmt.Errorf("no patterns above threshold %.2f; lower it with the filter command", proj.Threshold)
	}

	language := viper.GetString("language")
	builder := codegen.NewPromptBuilder(language)

	if viper.GetBool("dry_run") {
		fmt.Println("📝 Prompt that would be sent:")
		fmt.Println()
		fmt.Println(builder.Build(filtered))
		return nil
	}

	generator, err := codegen.NewOpenAIGenerator("", viper.GetString("model"), language, nil)
	if err != nil {
		return err
	}

	fmt.Printf("🧠 Generating %s code with %s for %d patterns...\n", language, generator.Name(), len(filtered.Included))
	code, err := generator.Generate(context.Background(), filtered)
	if err != nil {
		return err
	}

	outputDir := viper.GetString("generate_output_dir")
	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	ext := languageExtensions[language]
	if ext == "" {
		ext = "txt"
	}
	path := filepath.Join(outputDir, fmt.Sprintf("transform_%s.%s", proj.Name, ext))
	if err := os.WriteFile(path, []byte(code), 0644); err != nil {
		return fmt.Errorf("failed to write generated code: %w", err)
	}

	fmt.Println(styleSuccess.Render("✨ Generated code written to " + path))
	return nil
}
