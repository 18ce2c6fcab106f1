package core

import (
	"context"
	"fmt"

	"github.com/sashabaranov/go-openai"
)

// OpenAIService holds the client for the OpenAI connectivity probe.
type OpenAIService struct {
	client *openai.Client
}

func NewOpenAIService(apiKey string) *OpenAIService {
	return &OpenAIService{client: openai.NewClient(apiKey)}
}

// Probe sends a fixed greeting and returns the completion text and the model
// that served it.
func (s *OpenAIService) Probe(ctx context.Context) (message, model string, err error) {
	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: openai.GPT3Dot5Turbo,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleUser, Content: "Hello, OpenAI!"},
		},
	})
	if err != nil {
		return "", "", fmt.Errorf("openai chat completion failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", "", fmt.Errorf("openai response had no choices")
	}
	return resp.Choices[0].Message.Content, resp.Model, nil
}
