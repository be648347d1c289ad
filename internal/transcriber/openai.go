package transcriber

import (
	"context"
	"fmt"
	"strings"

	"github.com/sashabaranov/go-openai"
)

type OpenAIConfig struct {
	APIKey   string
	BaseURL  string
	Language string
	Prompt   string
}

type openAITranscriber struct {
	client *openai.Client
	cfg    OpenAIConfig
}

// NewOpenAI transcribes with the hosted Whisper model.
func NewOpenAI(cfg OpenAIConfig) Transcriber {
	clientCfg := openai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = cfg.BaseURL
	}
	return &openAITranscriber{client: openai.NewClientWithConfig(clientCfg), cfg: cfg}
}

func (t *openAITranscriber) Name() string {
	return "openai"
}

func (t *openAITranscriber) Transcribe(ctx context.Context, audioPath string) (string, error) {
	resp, err := t.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    openai.Whisper1,
		FilePath: audioPath,
		Language: t.cfg.Language,
		Prompt:   t.cfg.Prompt,
	})
	if err != nil {
		return "", fmt.Errorf("openai transcribe: %w", err)
	}
	return strings.TrimSpace(resp.Text), nil
}
