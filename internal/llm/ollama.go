package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultOllamaURL   = "http://localhost:11434"
	defaultOllamaModel = "llama3.1"
)

// ollamaClient talks to a local ollama instance over its native JSON API.
type ollamaClient struct {
	baseURL string
	model   string
	client  *http.Client
}

func newOllamaClient(cfg Config, httpClient *http.Client) *ollamaClient {
	baseURL := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	if baseURL == "" {
		baseURL = defaultOllamaURL
	}

	model := cfg.Model
	if model == "" {
		model = defaultOllamaModel
	}

	if httpClient == nil {
		httpClient = &http.Client{Timeout: 120 * time.Second}
	}

	return &ollamaClient{
		baseURL: baseURL,
		model:   model,
		client:  httpClient,
	}
}

// Complete implements Client.
func (c *ollamaClient) Complete(ctx context.Context, prompt string) (string, error) {
	payload := ollamaChatRequest{
		Model:  c.model,
		Format: "json",
		Stream: false,
		Messages: []ollamaMessage{
			{Role: "user", Content: prompt},
		},
	}

	data, err := json.Marshal(payload)
	if err != nil {
		return "", fmt.Errorf("marshal ollama payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/chat", bytes.NewReader(data))
	if err != nil {
		return "", fmt.Errorf("new ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return "", fmt.Errorf("ollama http %d", resp.StatusCode)
	}

	var body ollamaChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return "", fmt.Errorf("decode ollama response: %w", err)
	}

	text := strings.TrimSpace(body.Message.Content)
	if text == "" {
		return "", fmt.Errorf("ollama response empty")
	}

	return text, nil
}

// Embed implements Embedder.
func (c *ollamaClient) Embed(ctx context.Context, text string) ([]float32, error) {
	payload := ollamaEmbeddingRequest{Model: c.model, Prompt: text}

	data, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal ollama payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/api/embeddings", bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("new ollama request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("ollama request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return nil, fmt.Errorf("ollama http %d", resp.StatusCode)
	}

	var body ollamaEmbeddingResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("decode ollama response: %w", err)
	}

	if len(body.Embedding) == 0 {
		return nil, fmt.Errorf("ollama embedding empty")
	}

	embedding := make([]float32, len(body.Embedding))
	for i, v := range body.Embedding {
		embedding[i] = float32(v)
	}

	return embedding, nil
}

// Provider implements Client.
func (c *ollamaClient) Provider() string {
	return "ollama"
}

type ollamaChatRequest struct {
	Model    string          `json:"model"`
	Format   string          `json:"format,omitempty"`
	Stream   bool            `json:"stream"`
	Messages []ollamaMessage `json:"messages"`
}

type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ollamaChatResponse struct {
	Message ollamaMessage `json:"message"`
}

type ollamaEmbeddingRequest struct {
	Model  string `json:"model"`
	Prompt string `json:"prompt"`
}

type ollamaEmbeddingResponse struct {
	Embedding []float64 `json:"embedding"`
}
