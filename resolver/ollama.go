package resolver

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/ollama/ollama/api"
)

// OllamaGenerator runs the fallback tier against a local Ollama server.
type OllamaGenerator struct {
	client *api.Client
	model  string
}

// NewOllamaGenerator creates an Ollama-backed generator.
//
// baseURL defaults to "http://localhost:11434" and model to
// "llama3.1:latest" when empty.
func NewOllamaGenerator(baseURL, model string) (*OllamaGenerator, error) {
	if baseURL == "" {
		baseURL = "http://localhost:11434"
	}
	if model == "" {
		model = "llama3.1:latest"
	}

	parsedURL, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid Ollama URL: %w", err)
	}

	return &OllamaGenerator{
		client: api.NewClient(parsedURL, http.DefaultClient),
		model:  model,
	}, nil
}

// Generate implements Generator. The response is streamed internally and
// returned whole; the resolver presents complete answers only.
func (g *OllamaGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	req := &api.ChatRequest{
		Model: g.model,
		Messages: []api.Message{
			{Role: "user", Content: prompt},
		},
		Stream: func(b bool) *bool { return &b }(true),
	}

	var builder strings.Builder
	respFunc := func(resp api.ChatResponse) error {
		builder.WriteString(resp.Message.Content)
		return nil
	}

	if err := g.client.Chat(ctx, req, respFunc); err != nil {
		return "", fmt.Errorf("ollama chat failed: %w", err)
	}

	return builder.String(), nil
}

// Ping checks if the Ollama server is reachable.
func (g *OllamaGenerator) Ping(ctx context.Context) error {
	_, err := g.client.List(ctx)
	return err
}
