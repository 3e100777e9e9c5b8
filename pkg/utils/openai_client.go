package utils

import (
	"context"
	"fmt"
	"strings"
	"time"

	openai "github.com/sashabaranov/go-openai"
)

const itinerarySystemPrompt = "You are a travel planning assistant. Reply with a single JSON object and nothing else."

type OpenAIGenerationClient struct {
	client  *openai.Client
	model   string
	timeout time.Duration
}

func NewOpenAIGenerationClient(cfg GenerationConfig) *OpenAIGenerationClient {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	model := cfg.Model
	if model == "" {
		model = openai.GPT4oMini
	}
	return &OpenAIGenerationClient{
		client:  openai.NewClientWithConfig(clientCfg),
		model:   model,
		timeout: cfg.Timeout,
	}
}

func (c *OpenAIGenerationClient) Provider() string { return "openai" }

func (c *OpenAIGenerationClient) Generate(ctx context.Context, prompt string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: itinerarySystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature: 0.2,
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: openai: %v", ErrGenerationFailed, err)
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", fmt.Errorf("%w: openai returned no content", ErrGenerationFailed)
	}
	return resp.Choices[0].Message.Content, nil
}
