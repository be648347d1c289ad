package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

type Config struct {
	Completion    CompletionConfig    `yaml:"completion"`
	Retry         RetryConfig         `yaml:"retry"`
	Summarizer    SummarizerConfig    `yaml:"summarizer"`
	Synthesis     SynthesisConfig     `yaml:"synthesis"`
	Transcription TranscriptionConfig `yaml:"transcription"`
	FFmpeg        FFmpegConfig        `yaml:"ffmpeg"`
	Paths         PathsConfig         `yaml:"paths"`
	Logging       LoggingConfig       `yaml:"logging"`
	Performance   PerformanceConfig   `yaml:"performance"`
}

type CompletionConfig struct {
	Backend         string        `yaml:"backend"` // openai | gemini
	Mode            string        `yaml:"mode"`    // completion | chat (openai only)
	Model           string        `yaml:"model"`
	BaseURL         string        `yaml:"base_url"`
	MaxTokens       int           `yaml:"max_tokens"`
	DialogMaxTokens int           `yaml:"dialog_max_tokens"`
	Temperature     *float32      `yaml:"temperature"`
	TopP            float32       `yaml:"top_p"`
	Timeout         time.Duration `yaml:"timeout"`
	APIKeyEnv       string        `yaml:"api_key_env"`
	GeminiKeysEnv   string        `yaml:"gemini_keys_env"`
}

type RetryConfig struct {
	Attempts               int           `yaml:"attempts"`
	Base                   float64       `yaml:"base"`
	Unit                   time.Duration `yaml:"unit"`
	ImmediateOnShapeErrors bool          `yaml:"immediate_on_shape_errors"`
}

type SummarizerConfig struct {
	PageSize      int    `yaml:"page_size"`
	Concurrency   int    `yaml:"concurrency"`
	TemplatesPath string `yaml:"templates_path"`
	DialogRepair  string `yaml:"dialog_repair"`
	SummaryRepair string `yaml:"summary_repair"`
}

type SynthesisConfig struct {
	Backend  string   `yaml:"backend"` // openai | command
	Model    string   `yaml:"model"`
	Voice    string   `yaml:"voice"`
	BaseURL  string   `yaml:"base_url"` // openai backend, defaults to completion.base_url
	Format   string   `yaml:"format"`   // command backend output, default wav
	MaxWords int      `yaml:"max_words"`
	MaxChars int      `yaml:"max_chars"` // command backend only, 0 = unlimited
	Command  string   `yaml:"command"`
	Args     []string `yaml:"args"`
}

type TranscriptionConfig struct {
	Backend    string        `yaml:"backend"` // whisper-cpp | openai
	ModelPath  string        `yaml:"model_path"`
	BinaryPath string        `yaml:"binary_path"`
	Language   string        `yaml:"language"`
	Prompt     string        `yaml:"prompt"`
	Threads    int           `yaml:"threads"`
	Duration   time.Duration `yaml:"duration"`
}

type FFmpegConfig struct {
	BinaryPath string `yaml:"binary_path"`
}

type PathsConfig struct {
	Input  string `yaml:"input"`
	Output string `yaml:"output"`
	Temp   string `yaml:"temp"`
	Ledger string `yaml:"ledger"`
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

type PerformanceConfig struct {
	MaxConcurrent int `yaml:"max_concurrent"`
}

// Load reads and validates the YAML configuration at path.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validate config: %w", err)
	}
	return &cfg, nil
}

// LoadEnv loads credentials from the given .env files into the process
// environment. Missing files are ignored; variables already set win.
func LoadEnv(files ...string) error {
	var existing []string
	for _, f := range files {
		if _, err := os.Stat(f); err == nil {
			existing = append(existing, f)
		}
	}
	if len(existing) == 0 {
		return nil
	}
	if err := godotenv.Load(existing...); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	switch c.Completion.Backend {
	case "":
		c.Completion.Backend = "openai"
	case "openai", "gemini":
	default:
		return fmt.Errorf("completion.backend %q is not supported", c.Completion.Backend)
	}
	switch c.Synthesis.Backend {
	case "":
		c.Synthesis.Backend = "openai"
	case "openai":
	case "command":
		if c.Synthesis.Command == "" {
			return fmt.Errorf("synthesis.command is required for the command backend")
		}
	default:
		return fmt.Errorf("synthesis.backend %q is not supported", c.Synthesis.Backend)
	}
	switch c.Transcription.Backend {
	case "":
		c.Transcription.Backend = "openai"
	case "openai":
	case "whisper-cpp":
		if c.Transcription.ModelPath == "" {
			return fmt.Errorf("transcription.model_path is required for whisper-cpp")
		}
		if c.Transcription.BinaryPath == "" {
			return fmt.Errorf("transcription.binary_path is required for whisper-cpp")
		}
	default:
		return fmt.Errorf("transcription.backend %q is not supported", c.Transcription.Backend)
	}
	if c.Paths.Input == "" {
		return fmt.Errorf("paths.input is required")
	}
	if c.Paths.Output == "" {
		return fmt.Errorf("paths.output is required")
	}

	if c.Completion.Mode == "" {
		c.Completion.Mode = "completion"
	}
	if c.Completion.Model == "" {
		if c.Completion.Backend == "gemini" {
			c.Completion.Model = "gemini-2.5-flash"
		} else {
			c.Completion.Model = "gpt-3.5-turbo-instruct"
		}
	}
	if c.Completion.MaxTokens == 0 {
		c.Completion.MaxTokens = 256
	}
	if c.Completion.DialogMaxTokens == 0 {
		c.Completion.DialogMaxTokens = 1000
	}
	if c.Completion.Temperature == nil {
		t := float32(0.7)
		c.Completion.Temperature = &t
	}
	if c.Completion.TopP == 0 {
		c.Completion.TopP = 1
	}
	if c.Completion.Timeout == 0 {
		c.Completion.Timeout = 90 * time.Second
	}
	if c.Completion.APIKeyEnv == "" {
		c.Completion.APIKeyEnv = "OPENAI_API_KEY"
	}
	if c.Completion.GeminiKeysEnv == "" {
		c.Completion.GeminiKeysEnv = "GEMINI_API_KEYS"
	}
	if c.Retry.Attempts == 0 {
		c.Retry.Attempts = 3
	}
	if c.Retry.Base == 0 {
		c.Retry.Base = 2
	}
	if c.Retry.Unit == 0 {
		c.Retry.Unit = time.Second
	}
	if c.Summarizer.PageSize == 0 {
		c.Summarizer.PageSize = 100
	}
	if c.Summarizer.Concurrency == 0 {
		c.Summarizer.Concurrency = 1
	}
	if c.Summarizer.DialogRepair == "" {
		c.Summarizer.DialogRepair = "tagline-salvage"
	}
	if c.Synthesis.BaseURL == "" && c.Completion.Backend == "openai" {
		c.Synthesis.BaseURL = c.Completion.BaseURL
	}
	if c.Synthesis.Format == "" {
		c.Synthesis.Format = "wav"
	}
	if c.Synthesis.Model == "" {
		c.Synthesis.Model = "tts-1"
	}
	if c.Synthesis.Voice == "" {
		c.Synthesis.Voice = "onyx"
	}
	if c.Synthesis.MaxWords == 0 {
		c.Synthesis.MaxWords = 25
	}
	if c.Transcription.Language == "" {
		c.Transcription.Language = "en"
	}
	if c.Transcription.Threads == 0 {
		c.Transcription.Threads = 8
	}
	if c.Transcription.Duration == 0 {
		c.Transcription.Duration = 5 * time.Minute
	}
	if c.FFmpeg.BinaryPath == "" {
		c.FFmpeg.BinaryPath = "ffmpeg"
	}
	if c.Paths.Temp == "" {
		c.Paths.Temp = "data/temp"
	}
	if c.Paths.Ledger == "" {
		c.Paths.Ledger = "data/ledger.db"
	}
	if c.Performance.MaxConcurrent == 0 {
		c.Performance.MaxConcurrent = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}

	return nil
}

// OpenAIKey returns the OpenAI API key from the configured env variable.
func (c *Config) OpenAIKey() string {
	return os.Getenv(c.Completion.APIKeyEnv)
}

// GeminiKeys returns the comma separated Gemini API keys from the
// configured env variable.
func (c *Config) GeminiKeys() []string {
	var keys []string
	for _, k := range strings.Split(os.Getenv(c.Completion.GeminiKeysEnv), ",") {
		if k = strings.TrimSpace(k); k != "" {
			keys = append(keys, k)
		}
	}
	return keys
}
