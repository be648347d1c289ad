package completion

import (
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
)

type implClient struct {
	backend  Backend
	defaults Request
	timeout  time.Duration
	logger   logger.Logger
}

// Option configures the Client.
type Option func(*implClient)

// WithDefaults sets the values used for zero fields of a request.
func WithDefaults(req Request) Option {
	return func(c *implClient) {
		c.defaults = req
	}
}

// WithTimeout bounds every backend call.
func WithTimeout(d time.Duration) Option {
	return func(c *implClient) {
		c.timeout = d
	}
}

// New creates a Completer on top of backend.
func New(backend Backend, log logger.Logger, opts ...Option) Completer {
	c := &implClient{
		backend: backend,
		defaults: Request{
			MaxTokens:   256,
			Temperature: Float32(0.7),
			TopP:        1,
		},
		logger: log,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
