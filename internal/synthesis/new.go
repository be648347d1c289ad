package synthesis

import (
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
)

// DefaultMaxWords bounds the chunks sent to a synthesizer.
const DefaultMaxWords = 25

// Options tunes a Dispatcher. Zero values fall back to defaults.
type Options struct {
	MaxWords int
	Retry    retry.Policy
	// Joiner merges segments of formats other than mp3. Without one, such
	// transcripts must fit in a single chunk.
	Joiner Joiner
}

type implDispatcher struct {
	synthesizer Synthesizer
	logger      logger.Logger
	joiner      Joiner
	maxWords    int
	retry       retry.Policy
}

// New creates a Dispatcher over synthesizer.
func New(synthesizer Synthesizer, log logger.Logger, opts Options) Dispatcher {
	d := &implDispatcher{
		synthesizer: synthesizer,
		logger:      log,
		joiner:      opts.Joiner,
		maxWords:    opts.MaxWords,
		retry:       opts.Retry,
	}
	if d.maxWords <= 0 {
		d.maxWords = DefaultMaxWords
	}
	if d.retry.Attempts <= 0 {
		d.retry = retry.Default
	}
	return d
}
