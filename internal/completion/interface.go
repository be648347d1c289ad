//go:generate mockgen -source=interface.go -destination=mock_completer.go -package=completion

package completion

import "context"

// Completer issues a single completion request.
type Completer interface {
	Complete(ctx context.Context, req Request) (Result, error)
}

// Backend is a language model that continues a prompt.
type Backend interface {
	Name() string
	Generate(ctx context.Context, prompt string, req Request) (Generation, error)
}
