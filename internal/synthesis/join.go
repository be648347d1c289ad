package synthesis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
)

type ffmpegJoiner struct {
	executor executor.Executor
	ffmpeg   string
	tempDir  string
}

// NewFFmpegJoiner joins segments with ffmpeg's concat demuxer. Segments
// must share codec, sample rate and channel layout, which holds for the
// output of one synthesizer.
func NewFFmpegJoiner(exec executor.Executor, ffmpeg, tempDir string) Joiner {
	if ffmpeg == "" {
		ffmpeg = "ffmpeg"
	}
	return &ffmpegJoiner{executor: exec, ffmpeg: ffmpeg, tempDir: tempDir}
}

func (j *ffmpegJoiner) Join(ctx context.Context, format string, segments [][]byte) ([]byte, error) {
	if j.tempDir != "" {
		if err := os.MkdirAll(j.tempDir, 0755); err != nil {
			return nil, fmt.Errorf("create temp dir: %w", err)
		}
	}
	dir, err := os.MkdirTemp(j.tempDir, "join-*")
	if err != nil {
		return nil, fmt.Errorf("create temp dir: %w", err)
	}
	defer os.RemoveAll(dir)

	var list strings.Builder
	for i, segment := range segments {
		name := fmt.Sprintf("segment-%04d.%s", i, format)
		if err := os.WriteFile(filepath.Join(dir, name), segment, 0644); err != nil {
			return nil, fmt.Errorf("write segment %d: %w", i, err)
		}
		fmt.Fprintf(&list, "file '%s'\n", name)
	}

	listPath := filepath.Join(dir, "segments.txt")
	if err := os.WriteFile(listPath, []byte(list.String()), 0644); err != nil {
		return nil, fmt.Errorf("write segment list: %w", err)
	}

	outPath := filepath.Join(dir, "joined."+format)
	// -c copy: segments already share one codec, only the container is rebuilt
	if _, err := j.executor.Execute(ctx, j.ffmpeg,
		"-f", "concat",
		"-safe", "0",
		"-i", listPath,
		"-c", "copy",
		"-y",
		outPath,
	); err != nil {
		return nil, fmt.Errorf("ffmpeg concat: %w", err)
	}

	data, err := os.ReadFile(outPath)
	if err != nil {
		return nil, fmt.Errorf("read joined audio: %w", err)
	}
	return data, nil
}
