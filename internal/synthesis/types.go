package synthesis

import (
	"errors"
	"fmt"
)

// ErrTextTooLong is returned by a Synthesizer for input it cannot take in
// one request.
var ErrTextTooLong = errors.New("text too long for synthesizer")

// ErrNothingToSay is returned for transcripts without any sentence.
var ErrNothingToSay = errors.New("transcript has no sentences")

// FormatMP3 is the only format whose segments play back when appended
// byte by byte.
const FormatMP3 = "mp3"

// Audio is a rendered transcript.
type Audio struct {
	Data   []byte
	Format string
}

// Error is a synthesis backend failure.
type Error struct {
	Backend string
	Chunk   int
	Err     error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s synthesis of chunk %d: %v", e.Backend, e.Chunk, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ChunkingExhaustedError means the backend rejected a chunk that cannot be
// split any further.
type ChunkingExhaustedError struct {
	Backend string
	Chunk   string
	Words   int
}

func (e *ChunkingExhaustedError) Error() string {
	return fmt.Sprintf("%s rejected an unsplittable chunk of %d words: %q", e.Backend, e.Words, e.Chunk)
}

func (e *ChunkingExhaustedError) Unwrap() error {
	return ErrTextTooLong
}
