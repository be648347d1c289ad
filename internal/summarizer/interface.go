package summarizer

import "context"

// Summarizer condenses a podcast transcript into a single-host dialog.
type Summarizer interface {
	// Summarize runs every stage from the raw transcript to the dialog.
	Summarize(ctx context.Context, episode Episode, raw string, rec Recorder) (Transcript, error)
	// SummarizeDescription writes the dialog from an episode description
	// instead of a transcript.
	SummarizeDescription(ctx context.Context, episode Episode, description string, rec Recorder) (Transcript, error)
}

// Recorder receives each stage value as soon as it is produced. Seq
// numbers the snippet summaries and is 0 for the other stages.
type Recorder interface {
	Record(ctx context.Context, stage Stage, seq int, content string) error
}
