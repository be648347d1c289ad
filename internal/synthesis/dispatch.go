package synthesis

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/internal/chunker"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
)

// Synthesize splits the transcript into sentences, bisects long ones on
// commas and semicolons, renders every chunk in order and concatenates the
// audio.
func (d *implDispatcher) Synthesize(ctx context.Context, transcript string) (Audio, error) {
	sentences := chunker.Sentences(transcript)
	if len(sentences) == 0 {
		return Audio{}, ErrNothingToSay
	}

	chunks := chunker.Bisect(sentences, chunker.MaxWords(d.maxWords))
	d.logger.Info(ctx, "Synthesizing %d sentences in %d chunks with %s", len(sentences), len(chunks), d.synthesizer.Name())

	segments := make([][]byte, 0, len(chunks))
	for i, chunk := range chunks {
		segment, err := d.synthesizeChunk(ctx, i, chunk)
		if err != nil {
			return Audio{}, err
		}
		segments = append(segments, segment)
	}

	format := d.synthesizer.Format()
	data, err := d.join(ctx, format, segments)
	if err != nil {
		return Audio{}, err
	}
	return Audio{Data: data, Format: format}, nil
}

// join merges the segments in order. MP3 frames are appended as they are;
// containers with a header need the Joiner.
func (d *implDispatcher) join(ctx context.Context, format string, segments [][]byte) ([]byte, error) {
	if len(segments) == 1 {
		return segments[0], nil
	}
	if format == FormatMP3 {
		return bytes.Join(segments, nil), nil
	}
	if d.joiner == nil {
		return nil, fmt.Errorf("cannot join %d %s segments: no joiner configured", len(segments), format)
	}

	d.logger.Debug(ctx, "Joining %d %s segments", len(segments), format)
	data, err := d.joiner.Join(ctx, format, segments)
	if err != nil {
		return nil, fmt.Errorf("join %s segments: %w", format, err)
	}
	return data, nil
}

func (d *implDispatcher) synthesizeChunk(ctx context.Context, i int, chunk string) ([]byte, error) {
	d.logger.Debug(ctx, "Running tts on: %s", chunk)

	policy := d.retry
	policy.OnRetry = func(attempt int, wait time.Duration, err error) {
		d.logger.Warn(ctx, "Retrying chunk %d (attempt %d in %s): %v", i, attempt, wait, err)
	}

	var segment []byte
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		out, err := d.synthesizer.Synthesize(ctx, chunk)
		if errors.Is(err, ErrTextTooLong) {
			return retry.Stop(&ChunkingExhaustedError{
				Backend: d.synthesizer.Name(),
				Chunk:   chunk,
				Words:   chunker.Words(chunk),
			})
		}
		if err != nil {
			return &Error{Backend: d.synthesizer.Name(), Chunk: i, Err: err}
		}
		segment = out
		return nil
	})
	return segment, err
}
