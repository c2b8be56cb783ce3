package llm

import (
	"errors"
	"testing"
)

func TestNewSelectsProvider(t *testing.T) {
	cases := []struct {
		name     string
		cfg      Config
		provider string
	}{
		{"openai", Config{Provider: "openai", APIKey: "sk-test"}, "openai"},
		{"anthropic", Config{Provider: "anthropic", APIKey: "sk-ant-test"}, "anthropic"},
		{"ollama", Config{Provider: "ollama"}, "ollama"},
		{"case and spaces ignored", Config{Provider: "  OpenAI ", APIKey: "sk-test"}, "openai"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			client, err := New(tc.cfg)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if client.Provider() != tc.provider {
				t.Fatalf("Provider() = %q, want %q", client.Provider(), tc.provider)
			}
		})
	}
}

func TestNewWithoutProvider(t *testing.T) {
	if _, err := New(Config{}); !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestNewRejectsUnknownProvider(t *testing.T) {
	_, err := New(Config{Provider: "mistral"})
	if !errors.Is(err, ErrNotConfigured) {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}

func TestEmbedderCapability(t *testing.T) {
	// Anthropic has no embedding API; every other backend does.
	openai, err := New(Config{Provider: "openai", APIKey: "sk-test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := openai.(Embedder); !ok {
		t.Fatal("openai backend must implement Embedder")
	}

	anthropic, err := New(Config{Provider: "anthropic", APIKey: "sk-ant-test"})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := anthropic.(Embedder); ok {
		t.Fatal("anthropic backend must not implement Embedder")
	}
}
