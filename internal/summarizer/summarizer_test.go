package summarizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/internal/logger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
	"github.com/nguyentantai21042004/podcast2podcast/internal/structured"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var fastRetry = retry.Policy{Attempts: 2, Base: 1, Unit: time.Millisecond}

const firstLine = "Welcome back. I'm JeremyBot, an artificial intelligence that summarizes podcasts. Today we are summarizing Show: Episode One."

func syntheticTranscript(n int) string {
	sentences := make([]string, n)
	for i := range sentences {
		sentences[i] = fmt.Sprintf("Sentence number %d.", i+1)
	}
	return strings.Join(sentences, " ")
}

func pageOf(prompt string) int {
	switch {
	case strings.Contains(prompt, "Sentence number 1."):
		return 1
	case strings.Contains(prompt, "Sentence number 101."):
		return 2
	case strings.Contains(prompt, "Sentence number 201."):
		return 3
	}
	return 0
}

// scriptedEngine answers every stage with a deterministic value.
func scriptedEngine(t *testing.T, ctrl *gomock.Controller, snippetCalls *int) *structured.MockEngine {
	t.Helper()
	var mu sync.Mutex

	engine := structured.NewMockEngine(ctrl)
	engine.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, call structured.Call) (string, error) {
		switch {
		case call.Key == "summary" && strings.Contains(call.Prompt, "snippet from the transcript"):
			mu.Lock()
			*snippetCalls++
			mu.Unlock()
			return fmt.Sprintf("summary of part %d", pageOf(call.Prompt)), nil
		case call.Key == "detailedSummary":
			assert.Contains(t, call.Prompt, " - summary of part 1\n - summary of part 2\n - summary of part 3\n")
			return "merged summary", nil
		case call.Key == "summary" && strings.Contains(call.Prompt, "sponsors"):
			assert.Contains(t, call.Prompt, "merged summary")
			return "clean summary", nil
		case call.Key == "dialog":
			assert.Equal(t, firstLine+" ", call.OutputPrefix)
			assert.Equal(t, 1000, call.MaxTokens)
			assert.Equal(t, structured.TaglineSalvage{}, call.Repair)
			assert.Contains(t, call.Prompt, "clean summary")
			return call.OutputPrefix + "It was great. " + structured.DefaultTagline, nil
		}
		t.Errorf("unexpected call %+v", call)
		return "", errors.New("unexpected call")
	}).AnyTimes()
	return engine
}

func newTestSummarizer(t *testing.T, engine structured.Engine, concurrency int) Summarizer {
	t.Helper()
	templates, err := DefaultTemplates()
	require.NoError(t, err)

	return New(engine, templates, logger.NewNop(), Options{
		PageSize:     100,
		Concurrency:  concurrency,
		DialogRepair: structured.TaglineSalvage{},
		Retry:        fastRetry,
	})
}

func TestSummarizePipeline(t *testing.T) {
	ctrl := gomock.NewController(t)
	snippetCalls := 0
	s := newTestSummarizer(t, scriptedEngine(t, ctrl, &snippetCalls), 1)

	transcript, err := s.Summarize(context.Background(), Episode{Podcast: "Show", Title: "Episode One"}, syntheticTranscript(250), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, snippetCalls)
	assert.Len(t, transcript.Snippets, 3)
	assert.Equal(t, []string{"summary of part 1", "summary of part 2", "summary of part 3"}, transcript.SnippetSummaries)
	assert.Equal(t, "merged summary", transcript.Merged)
	assert.Equal(t, "clean summary", transcript.SponsorFree)
	assert.Equal(t, firstLine+" It was great. "+structured.DefaultTagline, transcript.Dialog)
}

func TestSummarizeParallelSnippetsKeepOrder(t *testing.T) {
	ctrl := gomock.NewController(t)
	snippetCalls := 0
	s := newTestSummarizer(t, scriptedEngine(t, ctrl, &snippetCalls), 3)

	transcript, err := s.Summarize(context.Background(), Episode{Podcast: "Show", Title: "Episode One"}, syntheticTranscript(250), nil)

	require.NoError(t, err)
	assert.Equal(t, 3, snippetCalls)
	assert.Equal(t, []string{"summary of part 1", "summary of part 2", "summary of part 3"}, transcript.SnippetSummaries)
}

type recorded struct {
	stage Stage
	seq   int
}

type memoryRecorder struct {
	mu      sync.Mutex
	entries []recorded
}

func (r *memoryRecorder) Record(_ context.Context, stage Stage, seq int, _ string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, recorded{stage, seq})
	return nil
}

func TestSummarizeRecordsStages(t *testing.T) {
	ctrl := gomock.NewController(t)
	snippetCalls := 0
	s := newTestSummarizer(t, scriptedEngine(t, ctrl, &snippetCalls), 1)
	rec := &memoryRecorder{}

	_, err := s.Summarize(context.Background(), Episode{Podcast: "Show", Title: "Episode One"}, syntheticTranscript(250), rec)

	require.NoError(t, err)
	assert.Equal(t, []recorded{
		{StageRawTranscript, 0},
		{StageSnippetSummaries, 0},
		{StageSnippetSummaries, 1},
		{StageSnippetSummaries, 2},
		{StageMergedSummary, 0},
		{StageSponsorFreeSummary, 0},
		{StageFinalDialog, 0},
	}, rec.entries)
}

func TestSummarizeStageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := structured.NewMockEngine(ctrl)
	shape := &structured.ShapeError{Key: "detailedSummary", Reason: "no balanced object", Text: "nope"}

	engine.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, call structured.Call) (string, error) {
		if call.Key == "detailedSummary" {
			return "", shape
		}
		return "fine", nil
	}).Times(3)

	s := newTestSummarizer(t, engine, 1)
	_, err := s.Summarize(context.Background(), Episode{Podcast: "Show", Title: "Episode One"}, "One sentence. Two sentences.", nil)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageMergedSummary, stageErr.Stage)
	assert.ErrorIs(t, err, shape)
	assert.Contains(t, err.Error(), "merged summary")
}

func TestSummarizeEmptyTranscript(t *testing.T) {
	ctrl := gomock.NewController(t)
	s := newTestSummarizer(t, structured.NewMockEngine(ctrl), 1)

	_, err := s.Summarize(context.Background(), Episode{}, "  \n ", nil)

	var stageErr *StageError
	require.ErrorAs(t, err, &stageErr)
	assert.Equal(t, StageRawTranscript, stageErr.Stage)
	assert.ErrorIs(t, err, ErrEmptyTranscript)
}

func TestSummarizeDescription(t *testing.T) {
	ctrl := gomock.NewController(t)
	engine := structured.NewMockEngine(ctrl)
	gomock.InOrder(
		engine.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, call structured.Call) (string, error) {
			assert.Equal(t, "summary", call.Key)
			assert.Contains(t, call.Prompt, "In this episode we talk about bees.")
			return "Bees are discussed.", nil
		}),
		engine.EXPECT().Complete(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, call structured.Call) (string, error) {
			assert.Equal(t, "dialog", call.Key)
			assert.Contains(t, call.Prompt, "Bees are discussed.")
			return call.OutputPrefix + "Bees!", nil
		}),
	)

	s := newTestSummarizer(t, engine, 1)
	transcript, err := s.SummarizeDescription(context.Background(), Episode{Podcast: "Show", Title: "Episode One"}, "In this episode we talk about bees.", nil)

	require.NoError(t, err)
	assert.Equal(t, "Bees are discussed.", transcript.SponsorFree)
	assert.Equal(t, firstLine+" Bees!", transcript.Dialog)
}

func TestFirstLinePunctuation(t *testing.T) {
	templates, err := DefaultTemplates()
	require.NoError(t, err)

	tests := []struct {
		title string
		want  string
	}{
		{"Episode One", "Episode One."},
		{"Is it over?", "Is it over?"},
		{"Wow!", "Wow!"},
		{"Done.", "Done."},
	}
	for _, tt := range tests {
		line, err := FirstLine(templates, Episode{Podcast: "Show", Title: tt.title})
		require.NoError(t, err)
		assert.True(t, strings.HasSuffix(line, "Show: "+tt.want), line)
	}
}

func TestLoadTemplatesOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prompts.toml")
	require.NoError(t, os.WriteFile(path, []byte(`tagline = "Bye now."`), 0644))

	templates, err := LoadTemplates(path)
	require.NoError(t, err)
	assert.Equal(t, "Bye now.", templates.Tagline)

	prompt, err := templates.render(templates.rewriteAsDialog, promptData{Podcast: "Show", Episode: "Ep", Summary: "S"})
	require.NoError(t, err)
	assert.Contains(t, prompt, `end with
the tagline: "Bye now."`)
}

func TestParseTemplatesErrors(t *testing.T) {
	_, err := ParseTemplates(`tagline = "x"`)
	assert.Error(t, err)

	_, err = LoadTemplates(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "broken.toml")
	require.NoError(t, os.WriteFile(path, []byte(`summarize_snippet = "{{.Snippet"`), 0644))
	_, err = LoadTemplates(path)
	assert.ErrorContains(t, err, "summarize_snippet")
}

func TestStageString(t *testing.T) {
	assert.Equal(t, "final dialog", StageFinalDialog.String())
	assert.Equal(t, "stage(42)", Stage(42).String())
}
