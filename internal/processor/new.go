package processor

import (
	"net/http"

	"github.com/nguyentantai21042004/podcast2podcast/internal/config"
	"github.com/nguyentantai21042004/podcast2podcast/internal/ledger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
	"github.com/nguyentantai21042004/podcast2podcast/internal/synthesis"
	"github.com/nguyentantai21042004/podcast2podcast/internal/transcriber"
	"github.com/nguyentantai21042004/podcast2podcast/pkg/executor"
)

// Dependencies are the collaborators of a Processor. Ledger and HTTPClient
// are optional.
type Dependencies struct {
	Executor    executor.Executor
	Transcriber transcriber.Transcriber
	Summarizer  summarizer.Summarizer
	Dispatcher  synthesis.Dispatcher
	Ledger      ledger.Ledger
	HTTPClient  *http.Client
}

type implProcessor struct {
	cfg         *config.Config
	executor    executor.Executor
	transcriber transcriber.Transcriber
	summarizer  summarizer.Summarizer
	dispatcher  synthesis.Dispatcher
	ledger      ledger.Ledger
	http        *http.Client
	logger      logger.Logger
}

// New creates a new Processor instance
func New(cfg *config.Config, deps Dependencies, log logger.Logger) Processor {
	client := deps.HTTPClient
	if client == nil {
		client = http.DefaultClient
	}
	return &implProcessor{
		cfg:         cfg,
		executor:    deps.Executor,
		transcriber: deps.Transcriber,
		summarizer:  deps.Summarizer,
		dispatcher:  deps.Dispatcher,
		ledger:      deps.Ledger,
		http:        client,
		logger:      log,
	}
}
