package processor

import (
	"context"

	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
)

// Processor turns one episode into a summary podcast.
type Processor interface {
	// Run executes the pipeline for job.
	Run(ctx context.Context, job Job) (Result, error)
	// Process runs the pipeline for a file dropped into the inbox: an audio
	// file or a .txt transcript.
	Process(ctx context.Context, path string) error
}

// Job describes the input of one run. The first non-empty of Transcript,
// AudioPath, AudioURL and Description is used.
type Job struct {
	Podcast     string
	Episode     string
	Transcript  string
	AudioPath   string
	AudioURL    string
	Description string
	// TextOnly skips speech synthesis.
	TextOnly bool
}

// Result lists what a run produced. Empty paths were not written.
type Result struct {
	RunID       string
	Transcript  summarizer.Transcript
	DialogPath  string
	AudioPath   string
	ReportPath  string
	ArchivePath string
}
