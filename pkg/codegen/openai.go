/*
Author: KleaSCM
Email: KleaSCM@gmail.com
File: openai.go
Description: OpenAI-backed code generator. Turns filtered patterns into executable
transformation code by prompting a chat completion model with the inferred rules.
*/

package codegen

import (
	"context"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/kleascm/akaylee-mapper/pkg/filter"
	"github.com/kleascm/akaylee-mapper/pkg/logging"
)

const defaultModel = openai.GPT4oMini

const systemPrompt = "You are a senior data engineer. You write minimal, correct record " +
	"transformation functions from field mapping rules. You output only code."

// OpenAIGenerator implements the Generator interface against the OpenAI
// chat completion API
type OpenAIGenerator struct {
	client  *openai.Client
	model   string
	builder *PromptBuilder
	logger  *logging.Logger
}

// NewOpenAIGenerator creates a generator. The API key comes from the
// argument or, when empty, the OPENAI_API_KEY environment variable.
func NewOpenAIGenerator(apiKey, model, language string, logger *logging.Logger) (*OpenAIGenerator, error) {
	if apiKey == "" {
		apiKey = os.Getenv("OPENAI_API_KEY")
	}
	if apiKey == "" {
		return nil, fmt.Errorf("no API key supplied and OPENAI_API_KEY not set")
	}
	if model == "" {
		model = defaultModel
	}
	return &OpenAIGenerator{
		client:  openai.NewClient(apiKey),
		model:   model,
		builder: NewPromptBuilder(language),
		logger:  logger,
	}, nil
}

// Name identifies the generator backend
func (g *OpenAIGenerator) Name() string { return "openai:" + g.model }

// Generate prompts the model with the filtered patterns and returns the
// produced transformation code
func (g *OpenAIGenerator) Generate(ctx context.Context, filtered *filter.FilteredParsedExamples) (string, error) {
	prompt := g.builder.Build(filtered)
	if g.logger != nil {
		g.logger.LogGeneration(g.model, len(filtered.Included), len(prompt), nil)
	}

	resp, err := g.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: g.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		return "", fmt.Errorf("OpenAI API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("OpenAI returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}
