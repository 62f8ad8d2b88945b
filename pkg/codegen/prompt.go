/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: prompt.go
Description: Prompt construction for the code generation backend. Renders filtered
patterns into a structured natural-language prompt an LLM can turn into executable
transformation code.
*/

package codegen

import (
	"fmt"
	"strings"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
)

// PromptBuilder renders a filtered analysis into an LLM prompt
type PromptBuilder struct {
	Language string // Target language for the generated code, default "python"
}

// NewPromptBuilder creates a builder for the given target language
func NewPromptBuilder(language string) *PromptBuilder {
	if language == "" {
		language = "python"
	}
	return &PromptBuilder{Language: language}
}

// Build renders the included patterns into a generation prompt. Pattern
// type spellings are emitted verbatim so the backend sees the same
// vocabulary persisted analyses use.
func (b *PromptBuilder) Build(filtered *filter.FilteredParsedExamples) string {
	var sb strings.Builder

	sb.WriteString("Write a ")
	sb.WriteString(b.Language)
	sb.WriteString(" function `transform(record)` that maps an input record to an output record.\n")
	sb.WriteString("The transformation was inferred from examples; apply these field rules:\n\n")

	for i, p := range filtered.Included {
		fmt.Fprintf(&sb, "%d. [%s] %s -> %q (confidence %s)\n",
			i+1, p.Type, strings.Join(p.SourcePaths, " + "), p.TargetPath, p.ConfidencePercent())
		if p.Description != "" {
			fmt.Fprintf(&sb, "   Rule: %s\n", p.Description)
		}
	}

	if len(filtered.Excluded) > 0 {
		sb.WriteString("\nThe following fields were inferred with low confidence and need a reviewer; emit them with a TODO comment:\n")
		for _, p := range filtered.Excluded {
			fmt.Fprintf(&sb, "- [%s] %s -> %q (confidence %s)\n",
				p.Type, strings.Join(p.SourcePaths, " + "), p.TargetPath, p.ConfidencePercent())
		}
	}

	sb.WriteString("\nReturn only the function body, no explanation.\n")
	return sb.String()
}
