package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/nguyentantai21042004/podcast2podcast/internal/completion"
	"github.com/nguyentantai21042004/podcast2podcast/internal/config"
	"github.com/nguyentantai21042004/podcast2podcast/internal/ledger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/processor"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
	"github.com/nguyentantai21042004/podcast2podcast/internal/structured"
	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
	"github.com/nguyentantai21042004/podcast2podcast/internal/synthesis"
	"github.com/nguyentantai21042004/podcast2podcast/internal/transcriber"
	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
)

// app holds the wired components shared by the subcommands.
type app struct {
	cfg       *config.Config
	log       logger.Logger
	ledger    ledger.Ledger
	processor processor.Processor
}

func loadConfig(ctx context.Context, opts *rootOptions) (*config.Config, logger.Logger, error) {
	if err := config.LoadEnv(opts.envFile); err != nil {
		return nil, nil, err
	}
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Logging.Level
	if opts.debug {
		level = "debug"
	}
	log := logger.New(level, cfg.Logging.Format)
	log.Debug(ctx, "Configuration loaded from %s", opts.configPath)
	return cfg, log, nil
}

func newApp(ctx context.Context, opts *rootOptions) (*app, error) {
	cfg, log, err := loadConfig(ctx, opts)
	if err != nil {
		return nil, err
	}

	log.Info(ctx, "System: %s/%s, %d CPU cores", runtime.GOOS, runtime.GOARCH, runtime.NumCPU())
	if err := ensureDirectories(cfg); err != nil {
		return nil, err
	}

	l, err := ledger.Open(ctx, cfg.Paths.Ledger, log)
	if err != nil {
		return nil, err
	}

	policy := retryPolicy(cfg)
	exec := executor.New()

	sum, err := newSummarizer(cfg, log, policy)
	if err != nil {
		l.Close()
		return nil, err
	}
	trans := newTranscriber(cfg, exec)
	synth, err := newSynthesizer(cfg, exec)
	if err != nil {
		l.Close()
		return nil, err
	}
	log.Info(ctx, "Completion: %s (%s), transcription: %s, speech: %s",
		cfg.Completion.Backend, cfg.Completion.Model, trans.Name(), synth.Name())

	proc := processor.New(cfg, processor.Dependencies{
		Executor:    exec,
		Transcriber: trans,
		Summarizer:  sum,
		Dispatcher: synthesis.New(synth, log, synthesis.Options{
			MaxWords: cfg.Synthesis.MaxWords,
			Retry:    policy,
			Joiner:   synthesis.NewFFmpegJoiner(exec, cfg.FFmpeg.BinaryPath, cfg.Paths.Temp),
		}),
		Ledger: l,
	}, log)

	return &app{cfg: cfg, log: log, ledger: l, processor: proc}, nil
}

func (a *app) Close() error {
	return a.ledger.Close()
}

func retryPolicy(cfg *config.Config) retry.Policy {
	p := retry.Policy{
		Attempts: cfg.Retry.Attempts,
		Base:     cfg.Retry.Base,
		Unit:     cfg.Retry.Unit,
	}
	if cfg.Retry.ImmediateOnShapeErrors {
		p.Immediate = structured.IsShapeError
	}
	return p
}

func newCompleter(cfg *config.Config, log logger.Logger) (completion.Completer, error) {
	var backend completion.Backend
	switch cfg.Completion.Backend {
	case "gemini":
		keys := cfg.GeminiKeys()
		if len(keys) == 0 {
			return nil, fmt.Errorf("no Gemini API keys in $%s", cfg.Completion.GeminiKeysEnv)
		}
		backend = completion.NewGeminiBackend(keys)
	default:
		key := cfg.OpenAIKey()
		if key == "" && cfg.Completion.BaseURL == "" {
			return nil, fmt.Errorf("no OpenAI API key in $%s", cfg.Completion.APIKeyEnv)
		}
		backend = completion.NewOpenAIBackend(completion.OpenAIConfig{
			APIKey:  key,
			BaseURL: cfg.Completion.BaseURL,
			Mode:    cfg.Completion.Mode,
		})
	}

	return completion.New(backend, log,
		completion.WithDefaults(completion.Request{
			Model:       cfg.Completion.Model,
			MaxTokens:   cfg.Completion.MaxTokens,
			Temperature: cfg.Completion.Temperature,
			TopP:        cfg.Completion.TopP,
		}),
		completion.WithTimeout(cfg.Completion.Timeout),
	), nil
}

func newSummarizer(cfg *config.Config, log logger.Logger, policy retry.Policy) (summarizer.Summarizer, error) {
	completer, err := newCompleter(cfg, log)
	if err != nil {
		return nil, err
	}
	templates, err := summarizer.LoadTemplates(cfg.Summarizer.TemplatesPath)
	if err != nil {
		return nil, err
	}
	dialogRepair, err := structured.RepairerByName(cfg.Summarizer.DialogRepair)
	if err != nil {
		return nil, fmt.Errorf("summarizer.dialog_repair: %w", err)
	}
	summaryRepair, err := structured.RepairerByName(cfg.Summarizer.SummaryRepair)
	if err != nil {
		return nil, fmt.Errorf("summarizer.summary_repair: %w", err)
	}

	return summarizer.New(structured.New(completer, log), templates, log, summarizer.Options{
		PageSize:        cfg.Summarizer.PageSize,
		Concurrency:     cfg.Summarizer.Concurrency,
		MaxTokens:       cfg.Completion.MaxTokens,
		DialogMaxTokens: cfg.Completion.DialogMaxTokens,
		DialogRepair:    withTagline(dialogRepair, templates.Tagline),
		SummaryRepair:   summaryRepair,
		Retry:           policy,
	}), nil
}

// withTagline makes tagline salvage restore the configured closing line.
func withTagline(r structured.Repairer, tagline string) structured.Repairer {
	switch v := r.(type) {
	case structured.TaglineSalvage:
		v.Tagline = tagline
		return v
	case structured.Chain:
		chain := make(structured.Chain, len(v))
		for i, inner := range v {
			chain[i] = withTagline(inner, tagline)
		}
		return chain
	}
	return r
}

func newTranscriber(cfg *config.Config, exec executor.Executor) transcriber.Transcriber {
	tc := cfg.Transcription
	switch tc.Backend {
	case "whisper-cpp":
		return transcriber.NewWhisperCpp(exec, transcriber.WhisperConfig{
			BinaryPath: tc.BinaryPath,
			ModelPath:  tc.ModelPath,
			Language:   tc.Language,
			Prompt:     tc.Prompt,
			Threads:    tc.Threads,
		})
	default:
		return transcriber.NewOpenAI(transcriber.OpenAIConfig{
			APIKey:   cfg.OpenAIKey(),
			Language: tc.Language,
			Prompt:   tc.Prompt,
		})
	}
}

func newSynthesizer(cfg *config.Config, exec executor.Executor) (synthesis.Synthesizer, error) {
	sc := cfg.Synthesis
	switch sc.Backend {
	case "command":
		return synthesis.NewCommandSynthesizer(exec, synthesis.CommandConfig{
			Command:  sc.Command,
			Args:     sc.Args,
			Format:   sc.Format,
			TempDir:  cfg.Paths.Temp,
			MaxChars: sc.MaxChars,
		}), nil
	default:
		key := cfg.OpenAIKey()
		if key == "" {
			return nil, fmt.Errorf("no OpenAI API key in $%s", cfg.Completion.APIKeyEnv)
		}
		return synthesis.NewOpenAISynthesizer(synthesis.OpenAIConfig{
			APIKey:  key,
			BaseURL: sc.BaseURL,
			Model:   sc.Model,
			Voice:   sc.Voice,
		}), nil
	}
}

// ensureDirectories creates required directories if they don't exist
func ensureDirectories(cfg *config.Config) error {
	dirs := []string{
		cfg.Paths.Input,
		cfg.Paths.Output,
		cfg.Paths.Temp,
		filepath.Dir(cfg.Paths.Ledger),
	}

	for _, dir := range dirs {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
