// Package generator wraps the single stateless call to the text-generation
// service. There is no retry, streaming or conversation history: a call
// returns the full reply text or fails.
package generator

import (
	"context"
	"errors"
	"fmt"
)

const DefaultModel = "gemini-2.5-flash-lite"

// Backends selectable through configuration.
const (
	BackendGenerativeAI = "generative-ai"
	BackendGenAI        = "genai"
)

var (
	ErrMissingAPIKey = errors.New("generation API key is not configured")
	ErrEmptyResponse = errors.New("no content generated")
)

type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Func adapts a plain function to the Generator interface.
type Func func(ctx context.Context, prompt string) (string, error)

func (f Func) Generate(ctx context.Context, prompt string) (string, error) {
	return f(ctx, prompt)
}

// Settings shared by both SDK backends.
type Settings struct {
	Model           string
	Temperature     float32
	TopP            float32
	MaxOutputTokens int32
}

func DefaultSettings() Settings {
	return Settings{
		Model:           DefaultModel,
		Temperature:     0.7,
		TopP:            0.95,
		MaxOutputTokens: 2048,
	}
}

type Closer interface {
	Generator
	Close() error
}

// New picks the backend. An empty key yields a generator that fails every
// call with ErrMissingAPIKey so the failure surfaces per request.
func New(ctx context.Context, backend, apiKey string, s Settings) (Closer, error) {
	if apiKey == "" {
		return missingKey{}, nil
	}
	if s.Model == "" {
		s.Model = DefaultModel
	}

	switch backend {
	case "", BackendGenerativeAI:
		return NewGeminiClient(ctx, apiKey, s)
	case BackendGenAI:
		return NewGenAIClient(ctx, apiKey, s)
	default:
		return nil, fmt.Errorf("unknown generation backend %q", backend)
	}
}

type missingKey struct{}

func (missingKey) Generate(context.Context, string) (string, error) {
	return "", ErrMissingAPIKey
}

func (missingKey) Close() error { return nil }
