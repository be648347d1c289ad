package watcher

import "context"

// Watcher hands episode files dropped into an inbox folder to a handler.
// Start blocks until ctx is done; files present at startup are handled
// first.
type Watcher interface {
	Start(ctx context.Context) error
	Stop() error
}

// EventHandler processes one inbox file.
type EventHandler func(ctx context.Context, filePath string) error

// Filter reports whether a file should be handed to the EventHandler.
type Filter func(filePath string) bool
