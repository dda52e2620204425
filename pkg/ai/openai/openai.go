package openai

import (
	"context"
	"fmt"
	"log/slog"

	openai "github.com/sashabaranov/go-openai"

	"github.com/aretacare/aretacare/pkg/ai"
	"github.com/aretacare/aretacare/pkg/types"
)

const (
	NAME = "openai"
)

type Driver struct {
	client *openai.Client
	model  ai.ModelName
	usage  func(promptTokens int)
}

func New(token, proxy string, model ai.ModelName) *Driver {
	cfg := openai.DefaultConfig(token)
	if proxy != "" {
		cfg.BaseURL = proxy
	}

	if model.ChatModel == "" {
		model.ChatModel = openai.GPT4oMini
	}

	return &Driver{
		client: openai.NewClientWithConfig(cfg),
		model:  model,
	}
}

// WithUsageObserver 每次请求前上报 prompt token 数
func (s *Driver) WithUsageObserver(fn func(promptTokens int)) *Driver {
	s.usage = fn
	return s
}

func (s *Driver) Model() string {
	return s.model.ChatModel
}

func (s *Driver) reportPromptTokens(tokens int) {
	slog.Debug("Query", slog.String("driver", NAME), slog.String("model", s.model.ChatModel), slog.Int("prompt_tokens", tokens))
	if s.usage != nil {
		s.usage(tokens)
	}
}

func (s *Driver) Query(ctx context.Context, query []*types.MessageContext) (*openai.ChatCompletionResponse, error) {
	messages := ai.BuildChatMessages(query)
	if tokens, err := ai.NumTokens(messages, s.model.ChatModel); err == nil {
		s.reportPromptTokens(tokens)
	}

	req := openai.ChatCompletionRequest{
		Model:    s.model.ChatModel,
		Messages: messages,
	}

	resp, err := s.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to request openai chat completion, %w", err)
	}
	if len(resp.Choices) == 0 {
		return nil, fmt.Errorf("openai chat completion returned no choices")
	}
	return &resp, nil
}
