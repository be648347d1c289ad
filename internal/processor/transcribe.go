package processor

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/nguyentantai21042004/podcast2podcast/internal/transcriber"
)

// transcribe fetches the job's audio if needed, trims it to the configured
// duration and runs speech recognition on it.
func (p *implProcessor) transcribe(ctx context.Context, job Job) (string, error) {
	if err := os.MkdirAll(p.cfg.Paths.Temp, 0755); err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	// isolated temp dir per episode so concurrent runs never collide
	tempDir, err := os.MkdirTemp(p.cfg.Paths.Temp, "episode-*")
	if err != nil {
		return "", fmt.Errorf("create temp dir: %w", err)
	}
	defer p.cleanupTempDir(ctx, tempDir)

	source := job.AudioPath
	if source == "" {
		if source, err = p.download(ctx, job.AudioURL, tempDir); err != nil {
			return "", err
		}
	}

	wavPath := filepath.Join(tempDir, "audio.wav")
	p.logger.Info(ctx, "Trimming audio to %s: %s", p.cfg.Transcription.Duration, source)
	if err := transcriber.Trim(ctx, p.executor, p.cfg.FFmpeg.BinaryPath, source, wavPath, p.cfg.Transcription.Duration); err != nil {
		return "", err
	}

	p.logger.Info(ctx, "Transcribing with %s", p.transcriber.Name())
	text, err := p.transcriber.Transcribe(ctx, wavPath)
	if err != nil {
		return "", err
	}
	p.logger.Debug(ctx, "Transcription: %s", text)
	return text, nil
}
