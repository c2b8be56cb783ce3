package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"
)

const (
	defaultGeminiModel = "gemini-2.5-flash"
	geminiEmbedModel   = "text-embedding-004"

	// Roughly the embedding model's token budget.
	maxEmbedChars = 40000
)

type geminiClient struct {
	client     *genai.Client
	model      string
	embedModel string
}

func newGeminiClient(cfg Config) (Client, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: gemini api key missing", ErrNotConfigured)
	}

	client, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}

	model := cfg.Model
	if model == "" {
		model = defaultGeminiModel
	}

	return &geminiClient{
		client:     client,
		model:      model,
		embedModel: geminiEmbedModel,
	}, nil
}

// Complete implements Client.
func (c *geminiClient) Complete(ctx context.Context, prompt string) (string, error) {
	config := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr[float32](0),
		MaxOutputTokens: 4096,
	}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(prompt), config)
	if err != nil {
		return "", fmt.Errorf("gemini completion: %w", err)
	}

	if resp == nil {
		return "", fmt.Errorf("gemini completion: nil response")
	}

	text := resp.Text()
	if text == "" {
		return "", fmt.Errorf("gemini completion: no text content in response")
	}

	return text, nil
}

// Embed implements Embedder.
func (c *geminiClient) Embed(ctx context.Context, text string) ([]float32, error) {
	if len(text) > maxEmbedChars {
		text = text[:maxEmbedChars]
	}

	result, err := c.client.Models.EmbedContent(ctx, c.embedModel, genai.Text(text), nil)
	if err != nil {
		return nil, fmt.Errorf("gemini embedding: %w", err)
	}

	if result == nil || len(result.Embeddings) == 0 {
		return nil, fmt.Errorf("gemini embedding: empty result")
	}

	return result.Embeddings[0].Values, nil
}

// Provider implements Client.
func (c *geminiClient) Provider() string {
	return "gemini"
}
