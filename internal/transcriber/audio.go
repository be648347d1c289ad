package transcriber

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
)

// Trim converts audioPath to a 16kHz mono WAV at outPath, keeping only the
// first duration of audio. A zero duration keeps everything.
func Trim(ctx context.Context, exec executor.Executor, ffmpeg, audioPath, outPath string, duration time.Duration) error {
	// -vn: drop cover art and video streams
	// -ar 16000 -ac 1 pcm_s16le: the input format whisper.cpp expects
	args := []string{"-i", audioPath}
	if duration > 0 {
		args = append(args, "-t", strconv.FormatFloat(duration.Seconds(), 'f', -1, 64))
	}
	args = append(args,
		"-vn",
		"-ar", "16000",
		"-ac", "1",
		"-c:a", "pcm_s16le",
		"-threads", "0",
		"-y",
		outPath,
	)

	if _, err := exec.Execute(ctx, ffmpeg, args...); err != nil {
		return fmt.Errorf("ffmpeg trim audio: %w", err)
	}
	return nil
}
