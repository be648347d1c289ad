package synthesis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
)

type CommandConfig struct {
	// Command is the TTS program. Args may hold the {text} and {output}
	// placeholders.
	Command  string
	Args     []string
	// Format is the extension of the file the command writes, "wav" when
	// empty. Tools like say pick the container from it.
	Format   string
	TempDir  string
	MaxChars int
}

type commandSynthesizer struct {
	executor executor.Executor
	cfg      CommandConfig
}

// NewCommandSynthesizer renders speech by running an external program that
// writes the audio to a file.
func NewCommandSynthesizer(exec executor.Executor, cfg CommandConfig) Synthesizer {
	cfg.Format = strings.TrimPrefix(strings.ToLower(cfg.Format), ".")
	if cfg.Format == "" {
		cfg.Format = "wav"
	}
	return &commandSynthesizer{executor: exec, cfg: cfg}
}

func (s *commandSynthesizer) Name() string {
	return filepath.Base(s.cfg.Command)
}

func (s *commandSynthesizer) Format() string {
	return s.cfg.Format
}

func (s *commandSynthesizer) Synthesize(ctx context.Context, text string) ([]byte, error) {
	if s.cfg.Command == "" {
		return nil, errors.New("no synthesis command configured")
	}
	if s.cfg.MaxChars > 0 && utf8.RuneCountInString(text) > s.cfg.MaxChars {
		return nil, ErrTextTooLong
	}

	out, err := os.CreateTemp(s.cfg.TempDir, "tts-*."+s.cfg.Format)
	if err != nil {
		return nil, fmt.Errorf("create output file: %w", err)
	}
	outPath := out.Name()
	out.Close()
	defer os.Remove(outPath)

	args := make([]string, len(s.cfg.Args))
	for i, arg := range s.cfg.Args {
		arg = strings.ReplaceAll(arg, "{text}", text)
		args[i] = strings.ReplaceAll(arg, "{output}", outPath)
	}

	if _, err := s.executor.Execute(ctx, s.cfg.Command, args...); err != nil {
		return nil, err
	}

	audio, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read output file: %w", err)
	}
	if len(audio) == 0 {
		return nil, fmt.Errorf("%s wrote no audio", s.Name())
	}
	return audio, nil
}
