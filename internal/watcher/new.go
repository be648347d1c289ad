package watcher

import (
	"fmt"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
)

// Options tunes a Watcher. Zero values fall back to defaults.
type Options struct {
	// Filter selects the files handed to the handler. Nil accepts all.
	Filter Filter
	// MaxConcurrent bounds the episodes processed at once.
	MaxConcurrent int
	// Settle is the pause between a create event and handling the file,
	// letting the writer finish the copy.
	Settle time.Duration
}

const (
	defaultMaxConcurrent = 2
	defaultSettle        = 500 * time.Millisecond
)

// New watches inbox for new episode files.
func New(inbox string, handler EventHandler, log logger.Logger, opts Options) (Watcher, error) {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fw.Add(inbox); err != nil {
		fw.Close()
		return nil, fmt.Errorf("watch inbox %s: %w", inbox, err)
	}

	if opts.MaxConcurrent <= 0 {
		opts.MaxConcurrent = defaultMaxConcurrent
	}
	if opts.Settle <= 0 {
		opts.Settle = defaultSettle
	}

	return &implWatcher{
		inputDir:      inbox,
		handler:       handler,
		filter:        opts.Filter,
		logger:        log,
		watcher:       fw,
		maxConcurrent: opts.MaxConcurrent,
		semaphore:     newSemaphore(opts.MaxConcurrent),
		settle:        opts.Settle,
	}, nil
}
