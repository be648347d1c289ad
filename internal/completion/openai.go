package completion

import (
	"context"
	"fmt"
	"math"
	"strings"

	"github.com/sashabaranov/go-openai"
)

const continuationSystemPrompt = "Continue the user's text exactly where it stops. " +
	"Do not repeat any of it and do not add commentary."

// OpenAIConfig configures the OpenAI backend. Mode "completion" uses the
// legacy completions endpoint (instruct models), "chat" asks a chat model
// to continue the text.
type OpenAIConfig struct {
	APIKey  string
	BaseURL string
	Mode    string
}

type openAIBackend struct {
	client *openai.Client
	chat   bool
}

// NewOpenAIBackend creates a Backend talking to the OpenAI API.
func NewOpenAIBackend(cfg OpenAIConfig) Backend {
	clientConfig := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientConfig.BaseURL = cfg.BaseURL
	}

	return &openAIBackend{
		client: openai.NewClientWithConfig(clientConfig),
		chat:   cfg.Mode == "chat",
	}
}

// openAITemperature maps a temperature onto go-openai's request field,
// which drops zero values. A nil temperature leaves the server default.
func openAITemperature(t *float32) float32 {
	if t == nil {
		return 0
	}
	if *t == 0 {
		return math.SmallestNonzeroFloat32
	}
	return *t
}

func (b *openAIBackend) Name() string {
	return "openai"
}

func (b *openAIBackend) Generate(ctx context.Context, prompt string, req Request) (Generation, error) {
	if b.chat {
		return b.generateChat(ctx, prompt, req)
	}

	resp, err := b.client.CreateCompletion(ctx, openai.CompletionRequest{
		Model:       req.Model,
		Prompt:      prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: openAITemperature(req.Temperature),
		TopP:        req.TopP,
		Stop:        req.Stop,
	})
	if err != nil {
		return Generation{}, fmt.Errorf("create completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Generation{}, errEmpty
	}

	return Generation{
		Text:         resp.Choices[0].Text,
		Model:        resp.Model,
		FinishReason: resp.Choices[0].FinishReason,
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}

func (b *openAIBackend) generateChat(ctx context.Context, prompt string, req Request) (Generation, error) {
	resp, err := b.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: req.Model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: continuationSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		MaxTokens:   req.MaxTokens,
		Temperature: openAITemperature(req.Temperature),
		TopP:        req.TopP,
		Stop:        req.Stop,
	})
	if err != nil {
		return Generation{}, fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return Generation{}, errEmpty
	}

	return Generation{
		Text:         strings.TrimPrefix(resp.Choices[0].Message.Content, prompt),
		Model:        resp.Model,
		FinishReason: string(resp.Choices[0].FinishReason),
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
		},
	}, nil
}
