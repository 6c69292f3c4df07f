package generator

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

// GenAIClient calls Gemini through the unified google.golang.org/genai SDK.
type GenAIClient struct {
	client *genai.Client
	model  string
	config *genai.GenerateContentConfig
}

func NewGenAIClient(ctx context.Context, apiKey string, s Settings) (*GenAIClient, error) {
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}

	return &GenAIClient{
		client: client,
		model:  s.Model,
		config: &genai.GenerateContentConfig{
			Temperature:     genai.Ptr(s.Temperature),
			TopP:            genai.Ptr(s.TopP),
			MaxOutputTokens: s.MaxOutputTokens,
		},
	}, nil
}

// Close is a no-op; the genai client holds no connection to release.
func (g *GenAIClient) Close() error { return nil }

func (g *GenAIClient) Generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt), g.config)
	if err != nil {
		return "", fmt.Errorf("GenAI generate failed: %w", err)
	}

	text := resp.Text()
	if text == "" {
		return "", ErrEmptyResponse
	}
	return text, nil
}
