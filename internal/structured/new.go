package structured

import (
	"github.com/nguyentantai21042004/podcast2podcast/internal/completion"
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
)

type implEngine struct {
	completer completion.Completer
	logger    logger.Logger
}

// New creates an Engine on top of completer.
func New(completer completion.Completer, log logger.Logger) Engine {
	return &implEngine{
		completer: completer,
		logger:    log,
	}
}
