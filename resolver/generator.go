package resolver

import (
	"context"
	"fmt"

	"infosetu/config"
)

// Generator is the generative fallback capability: it sends the persona
// prompt to an external model and returns the generated text.
type Generator interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// GeneratorType identifies the generator implementation.
type GeneratorType string

const (
	GeneratorTypeOllama    GeneratorType = "ollama"
	GeneratorTypeOpenAI    GeneratorType = "openai"
	GeneratorTypeAnthropic GeneratorType = "anthropic"
)

// GeneratorConfig holds generator-specific configuration.
type GeneratorConfig struct {
	Type    GeneratorType
	BaseURL string
	Model   string
	APIKey  string // unused for Ollama
}

// NewGenerator creates a generator based on configuration.
//
// This is the centralized factory for the generative tier. Supported types:
//   - GeneratorTypeOllama: local Ollama server
//   - GeneratorTypeOpenAI: OpenAI API
//   - GeneratorTypeAnthropic: Anthropic API
func NewGenerator(cfg GeneratorConfig) (Generator, error) {
	switch cfg.Type {
	case GeneratorTypeOllama:
		return NewOllamaGenerator(cfg.BaseURL, cfg.Model)
	case GeneratorTypeOpenAI:
		return NewOpenAIGenerator(cfg.BaseURL, cfg.APIKey, cfg.Model)
	case GeneratorTypeAnthropic:
		return NewAnthropicGenerator(cfg.BaseURL, cfg.APIKey, cfg.Model)
	default:
		return nil, fmt.Errorf("unknown generator type: %s", cfg.Type)
	}
}

// InitializeGenerator builds the fallback generator from application config.
// Returns nil when the tier is disabled or construction fails: the resolver
// then runs deterministic-only, mirroring the rest of the app's treatment of
// absent capabilities.
func InitializeGenerator(cfg *config.Config) Generator {
	if !cfg.Fallback.Enabled {
		return nil
	}

	gen, err := NewGenerator(GeneratorConfig{
		Type:    GeneratorType(cfg.Fallback.Provider),
		BaseURL: cfg.Fallback.Host,
		Model:   cfg.Fallback.Model,
		APIKey:  cfg.FallbackAPIKey(),
	})
	if err != nil {
		if config.Debug && config.DebugLog != nil {
			config.DebugLog.Printf("[Resolver] generator init failed, running deterministic-only: %v", err)
		}
		return nil
	}

	if config.Debug && config.DebugLog != nil {
		config.DebugLog.Printf("[Resolver] initialized %s generator", cfg.Fallback.Provider)
	}
	return gen
}
