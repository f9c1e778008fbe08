// Package ai wraps the LLM backends behind a single text-completion call.
package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrMissingAPIKey is returned when a hosted provider has no API key configured.
	ErrMissingAPIKey = errors.New("missing API key")
	// ErrEmptyResponse is returned when a provider answers with no text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// Provider names accepted by NewProvider.
const (
	ProviderOpenAI    = "openai"
	ProviderAnthropic = "anthropic"
	ProviderOllama    = "ollama"
	ProviderGemini    = "gemini"
)

const (
	defaultTemperature = 0.7
	defaultMaxTokens   = 2000
	defaultOllamaURL   = "http://localhost:11434/v1"
)

// Request is a single system + user completion.
type Request struct {
	System string
	User   string
	// Temperature and MaxTokens fall back to the provider's Config when zero.
	Temperature float64
	MaxTokens   int
}

// Provider defines the interface for text completion
type Provider interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// Config selects and configures a provider.
type Config struct {
	Provider    string
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float64
	MaxTokens   int
}

func (c Config) temperature(req Request) float64 {
	if req.Temperature != 0 {
		return req.Temperature
	}
	if c.Temperature != 0 {
		return c.Temperature
	}
	return defaultTemperature
}

func (c Config) maxTokens(req Request) int {
	if req.MaxTokens != 0 {
		return req.MaxTokens
	}
	if c.MaxTokens != 0 {
		return c.MaxTokens
	}
	return defaultMaxTokens
}

// NewProvider creates a new AI provider based on the provider name
func NewProvider(ctx context.Context, cfg Config) (Provider, error) {
	switch strings.ToLower(cfg.Provider) {
	case "claude", ProviderAnthropic:
		return NewClaudeProvider(cfg)
	case "", "gpt", ProviderOpenAI:
		return NewOpenAIProvider(cfg)
	case ProviderOllama:
		return NewOllamaProvider(cfg)
	case "google", ProviderGemini:
		return NewGeminiProvider(ctx, cfg)
	default:
		return nil, fmt.Errorf("unknown provider: %s (supported: openai, anthropic, ollama, gemini)", cfg.Provider)
	}
}
