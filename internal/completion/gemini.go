package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"google.golang.org/genai"
)

type geminiBackend struct {
	mu         sync.Mutex
	apiKeys    []string
	currentKey int
}

// NewGeminiBackend creates a Backend that rotates through the supplied
// Gemini API keys when one is rate limited.
func NewGeminiBackend(apiKeys []string) Backend {
	return &geminiBackend{apiKeys: apiKeys}
}

func (b *geminiBackend) Name() string {
	return "gemini"
}

func (b *geminiBackend) Generate(ctx context.Context, prompt string, req Request) (Generation, error) {
	if len(b.apiKeys) == 0 {
		return Generation{}, errors.New("no Gemini API keys configured")
	}

	config := &genai.GenerateContentConfig{
		Temperature:     req.Temperature,
		TopP:            genai.Ptr(req.TopP),
		MaxOutputTokens: int32(req.MaxTokens),
		StopSequences:   req.Stop,
	}

	var lastErr error
	for range len(b.apiKeys) {
		key := b.key()

		client, err := genai.NewClient(ctx, &genai.ClientConfig{
			APIKey:  key,
			Backend: genai.BackendGeminiAPI,
		})
		if err != nil {
			lastErr = fmt.Errorf("create client: %w", err)
			b.rotateKey()
			continue
		}

		result, err := client.Models.GenerateContent(ctx, req.Model, genai.Text(prompt), config)
		if err != nil {
			if isQuotaError(err) {
				b.rotateKey()
				lastErr = err
				continue
			}
			return Generation{}, fmt.Errorf("generate content: %w", err)
		}

		return toGeneration(result)
	}

	return Generation{}, fmt.Errorf("all API keys exhausted: %w", lastErr)
}

func toGeneration(result *genai.GenerateContentResponse) (Generation, error) {
	if result == nil || len(result.Candidates) == 0 || result.Candidates[0].Content == nil {
		return Generation{}, errEmpty
	}

	candidate := result.Candidates[0]
	var text strings.Builder
	for _, part := range candidate.Content.Parts {
		if part.Text != "" {
			text.WriteString(part.Text)
		}
	}

	gen := Generation{
		Text:         text.String(),
		Model:        result.ModelVersion,
		FinishReason: string(candidate.FinishReason),
	}
	if result.UsageMetadata != nil {
		gen.Usage = Usage{
			PromptTokens:     int(result.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(result.UsageMetadata.CandidatesTokenCount),
		}
	}
	return gen, nil
}

func isQuotaError(err error) bool {
	msg := err.Error()
	return strings.Contains(msg, "429") || strings.Contains(msg, "quota") || strings.Contains(msg, "RESOURCE_EXHAUSTED")
}

func (b *geminiBackend) key() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.apiKeys[b.currentKey]
}

func (b *geminiBackend) rotateKey() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.currentKey = (b.currentKey + 1) % len(b.apiKeys)
}
