package utils

import (
	"context"
	"fmt"
	"strings"
	"time"
)

// GenerationClientInterface sends a prompt to a text-generation provider and
// returns the raw response text. Failures wrap ErrGenerationFailed.
type GenerationClientInterface interface {
	Generate(ctx context.Context, prompt string) (string, error)
	Provider() string
}

type GenerationConfig struct {
	Provider string
	APIKey   string
	Model    string
	BaseURL  string
	Timeout  time.Duration
}

// NewGenerationClient picks the provider implementation. A missing API key is
// not fatal: the returned client fails every call so requests fall back.
func NewGenerationClient(cfg GenerationConfig) (GenerationClientInterface, error) {
	provider := strings.ToLower(cfg.Provider)
	if cfg.Timeout <= 0 {
		cfg.Timeout = 60 * time.Second
	}
	if cfg.APIKey == "" {
		return unconfiguredClient{provider: provider}, nil
	}

	switch provider {
	case "openai":
		return NewOpenAIGenerationClient(cfg), nil
	case "gemini", "":
		client, err := NewGeminiGenerationClient(cfg)
		if err != nil {
			return nil, err
		}
		return client, nil
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s. Use 'openai' or 'gemini'", cfg.Provider)
	}
}

type unconfiguredClient struct {
	provider string
}

func (u unconfiguredClient) Generate(context.Context, string) (string, error) {
	return "", fmt.Errorf("%w: no API key configured for %s", ErrGenerationFailed, u.provider)
}

func (u unconfiguredClient) Provider() string { return u.provider }
