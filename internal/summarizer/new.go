package summarizer

import (
	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
	"github.com/nguyentantai21042004/podcast2podcast/internal/structured"
)

// Options tunes a Summarizer. Zero values fall back to defaults.
type Options struct {
	PageSize        int
	Concurrency     int
	MaxTokens       int
	DialogMaxTokens int
	DialogRepair    structured.Repairer
	SummaryRepair   structured.Repairer
	Retry           retry.Policy
}

const (
	defaultPageSize        = 100
	defaultDialogMaxTokens = 1000
)

type implSummarizer struct {
	engine    structured.Engine
	templates Templates
	logger    logger.Logger

	pageSize        int
	concurrency     int
	maxTokens       int
	dialogMaxTokens int
	dialogRepair    structured.Repairer
	summaryRepair   structured.Repairer
	retry           retry.Policy
}

// New creates a Summarizer issuing its calls through engine.
func New(engine structured.Engine, templates Templates, log logger.Logger, opts Options) Summarizer {
	s := &implSummarizer{
		engine:          engine,
		templates:       templates,
		logger:          log,
		pageSize:        opts.PageSize,
		concurrency:     opts.Concurrency,
		maxTokens:       opts.MaxTokens,
		dialogMaxTokens: opts.DialogMaxTokens,
		dialogRepair:    opts.DialogRepair,
		summaryRepair:   opts.SummaryRepair,
		retry:           opts.Retry,
	}
	if s.pageSize <= 0 {
		s.pageSize = defaultPageSize
	}
	if s.concurrency <= 0 {
		s.concurrency = 1
	}
	if s.dialogMaxTokens <= 0 {
		s.dialogMaxTokens = defaultDialogMaxTokens
	}
	if s.retry.Attempts <= 0 {
		s.retry = retry.Default
	}
	return s
}
