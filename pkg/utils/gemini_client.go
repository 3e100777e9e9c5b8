package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

// GeminiGenerationClient implements GenerationClientInterface using Google's Gemini models
type GeminiGenerationClient struct {
	client  *genai.Client
	model   string
	timeout time.Duration
}

// NewGeminiGenerationClient creates a new Gemini client
func NewGeminiGenerationClient(cfg GenerationConfig) (*GeminiGenerationClient, error) {
	model := cfg.Model
	if model == "" {
		model = "gemini-1.5-flash" // Free tier model
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiGenerationClient{
		client:  client,
		model:   model,
		timeout: cfg.Timeout,
	}, nil
}

func (c *GeminiGenerationClient) Provider() string { return "gemini" }

func (c *GeminiGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	m := c.client.GenerativeModel(c.model)
	// JSON-only output, the parser still tolerates code fences.
	m.ResponseMIMEType = "application/json"
	m.SetTemperature(0.2)
	m.SetTopP(0.8)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := m.GenerateContent(ctx, genai.Text(prompt))
	if err != nil {
		return "", fmt.Errorf("%w: gemini: %v", ErrGenerationFailed, err)
	}
	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil || len(resp.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("%w: gemini returned no content", ErrGenerationFailed)
	}

	var sb strings.Builder
	for _, part := range resp.Candidates[0].Content.Parts {
		if text, ok := part.(genai.Text); ok {
			sb.WriteString(string(text))
		}
	}
	if strings.TrimSpace(sb.String()) == "" {
		return "", fmt.Errorf("%w: gemini returned an empty response", ErrGenerationFailed)
	}
	return sb.String(), nil
}

// Close closes the Gemini client
func (c *GeminiGenerationClient) Close() error {
	return c.client.Close()
}
