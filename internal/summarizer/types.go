package summarizer

import (
	"errors"
	"fmt"
	"strings"
)

// Stage identifies one step of the summarization pipeline.
type Stage int

const (
	StageRawTranscript Stage = iota
	StageSnippetSummaries
	StageMergedSummary
	StageSponsorFreeSummary
	StageFinalDialog
	StageDescriptionSummary
)

var stageNames = map[Stage]string{
	StageRawTranscript:      "raw transcript",
	StageSnippetSummaries:   "snippet summaries",
	StageMergedSummary:      "merged summary",
	StageSponsorFreeSummary: "sponsor-free summary",
	StageFinalDialog:        "final dialog",
	StageDescriptionSummary: "description summary",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// Episode names what is being summarized.
type Episode struct {
	Podcast string
	Title   string
}

// Transcript holds the value of every stage of one run.
type Transcript struct {
	Episode          Episode
	Raw              string
	Description      string
	Snippets         []string
	SnippetSummaries []string
	Merged           string
	SponsorFree      string
	Dialog           string
}

// Keys of the single-field objects each stage asks for.
const (
	keySummary         = "summary"
	keyDetailedSummary = "detailedSummary"
	keyDialog          = "dialog"
)

// ErrEmptyTranscript is returned for transcripts with no sentences.
var ErrEmptyTranscript = errors.New("transcript is empty")

// StageError reports the stage whose transition failed.
type StageError struct {
	Stage Stage
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error {
	return e.Err
}

// FirstLine is the opening the dialog is seeded with. A period is added to
// the episode title when it does not end a sentence itself.
func FirstLine(t Templates, episode Episode) (string, error) {
	title := strings.TrimSpace(episode.Title)
	if !strings.HasSuffix(title, ".") && !strings.HasSuffix(title, "!") && !strings.HasSuffix(title, "?") {
		title += "."
	}
	return t.render(t.dialogFirstLine, promptData{Podcast: strings.TrimSpace(episode.Podcast), Episode: title})
}

// bulletList formats items as " - item" lines.
func bulletList(items []string) string {
	lines := make([]string, len(items))
	for i, item := range items {
		lines[i] = " - " + item
	}
	return strings.Join(lines, "\n")
}
