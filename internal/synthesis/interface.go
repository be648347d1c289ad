//go:generate mockgen -source=interface.go -destination=mock_synthesizer.go -package=synthesis

package synthesis

import "context"

// Synthesizer renders one chunk of text to audio.
type Synthesizer interface {
	Name() string
	// Format is the container of the returned audio, as a file extension
	// without the dot: "mp3", "wav", "aiff".
	Format() string
	// Synthesize returns ErrTextTooLong when text exceeds what the backend
	// accepts in one request.
	Synthesize(ctx context.Context, text string) ([]byte, error)
}

// Dispatcher renders a whole transcript by splitting it into chunks small
// enough for a Synthesizer.
type Dispatcher interface {
	Synthesize(ctx context.Context, transcript string) (Audio, error)
}

// Joiner concatenates audio segments of one container format into a
// single playable file.
type Joiner interface {
	Join(ctx context.Context, format string, segments [][]byte) ([]byte, error)
}
