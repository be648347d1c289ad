package transcriber

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
)

type WhisperConfig struct {
	BinaryPath string
	ModelPath  string
	Language   string
	Prompt     string
	Threads    int
}

type whisperCpp struct {
	executor executor.Executor
	cfg      WhisperConfig
}

// NewWhisperCpp transcribes with a local whisper.cpp binary. Input must be
// 16kHz WAV, see Trim.
func NewWhisperCpp(exec executor.Executor, cfg WhisperConfig) Transcriber {
	return &whisperCpp{executor: exec, cfg: cfg}
}

func (w *whisperCpp) Name() string {
	return "whisper-cpp"
}

func (w *whisperCpp) Transcribe(ctx context.Context, audioPath string) (string, error) {
	// whisper.cpp appends .txt to the output prefix
	outputPrefix := strings.TrimSuffix(audioPath, filepath.Ext(audioPath))

	args := []string{
		"-m", w.cfg.ModelPath,
		"-f", audioPath,
		"-otxt",
		"-nt",
		"-l", w.cfg.Language,
		"-t", strconv.Itoa(w.cfg.Threads),
		"--output-file", outputPrefix,
	}
	if w.cfg.Prompt != "" {
		args = append(args, "--prompt", w.cfg.Prompt)
	}

	if _, err := w.executor.Execute(ctx, w.cfg.BinaryPath, args...); err != nil {
		return "", fmt.Errorf("whisper transcribe: %w", err)
	}

	txtPath := outputPrefix + ".txt"
	data, err := os.ReadFile(txtPath)
	if err != nil {
		return "", fmt.Errorf("read transcript: %w", err)
	}
	os.Remove(txtPath)

	return strings.Join(strings.Fields(string(data)), " "), nil
}
