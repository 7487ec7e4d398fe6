package generator

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

const DefaultModel = "gemini-2.0-flash"

// GenAICompleter sends prompts to the Gemini API.
type GenAICompleter struct {
	client *genai.Client
	model  string
}

func NewGenAICompleter(ctx context.Context, apiKey, model string) (*GenAICompleter, error) {
	if apiKey == "" {
		return nil, errors.New("generation API key is empty")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}
	return &GenAICompleter{client: client, model: model}, nil
}

func (c *GenAICompleter) Complete(ctx context.Context, prompt string) (string, error) {
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("call to %s failed: %w", c.model, err)
	}

	text := result.Text()
	if text == "" {
		return "", errors.New("model returned an empty response")
	}
	return text, nil
}
