package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Client is the minimal completion surface shared by every provider backend.
// Both pipeline stages (semantic extraction and score adjustment) go through
// it, so backends stay interchangeable behind configuration.
type Client interface {
	Complete(ctx context.Context, prompt string) (string, error)
	Provider() string
}

// Embedder is implemented by backends that can also produce text embeddings.
// Anthropic has no embedding endpoint, so callers must type-assert.
type Embedder interface {
	Embed(ctx context.Context, text string) ([]float32, error)
}

// Config carries the provider selection. Model, APIKey and BaseURL are
// interpreted per provider; empty values fall back to provider defaults.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string
}

// ErrNotConfigured signals that no usable provider is configured. Callers
// treat this as the degraded mode, not as a hard failure.
var ErrNotConfigured = errors.New("no language model provider configured")

// New builds the configured provider backend.
func New(cfg Config) (Client, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "openai":
		return newOpenAIClient(cfg)
	case "anthropic":
		return newAnthropicClient(cfg)
	case "ollama":
		return newOllamaClient(cfg, nil), nil
	case "gemini":
		return newGeminiClient(cfg)
	case "":
		return nil, ErrNotConfigured
	default:
		return nil, fmt.Errorf("%w: unsupported provider %q", ErrNotConfigured, cfg.Provider)
	}
}
