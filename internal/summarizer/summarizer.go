package summarizer

import (
	"context"
	"strings"
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/internal/chunker"
	"github.com/nguyentantai21042004/podcast2podcast/internal/retry"
	"github.com/nguyentantai21042004/podcast2podcast/internal/structured"
	"golang.org/x/sync/errgroup"
)

// Summarize pages the transcript, summarizes every page, merges the page
// summaries, strips sponsor reads and rewrites the result as a dialog.
func (s *implSummarizer) Summarize(ctx context.Context, episode Episode, raw string, rec Recorder) (Transcript, error) {
	sentences := chunker.Sentences(raw)
	if len(sentences) == 0 {
		return Transcript{}, &StageError{Stage: StageRawTranscript, Err: ErrEmptyTranscript}
	}

	t := Transcript{Episode: episode, Raw: raw}
	s.record(ctx, rec, StageRawTranscript, 0, raw)

	t.Snippets = chunker.Pages(sentences, s.pageSize)
	s.logger.Info(ctx, "Summarizing %s: %d sentences in %d snippets", episode.Title, len(sentences), len(t.Snippets))

	summaries, err := s.summarizeSnippets(ctx, t.Snippets)
	if err != nil {
		return Transcript{}, err
	}
	t.SnippetSummaries = summaries
	for i, summary := range summaries {
		s.record(ctx, rec, StageSnippetSummaries, i, summary)
	}

	prompt, err := s.templates.render(s.templates.summarizeSummaries, promptData{Summaries: bulletList(summaries)})
	if err != nil {
		return Transcript{}, &StageError{Stage: StageMergedSummary, Err: err}
	}
	if t.Merged, err = s.complete(ctx, StageMergedSummary, structured.Call{
		Key:       keyDetailedSummary,
		Prompt:    prompt,
		MaxTokens: s.maxTokens,
		Repair:    s.summaryRepair,
	}); err != nil {
		return Transcript{}, err
	}
	s.record(ctx, rec, StageMergedSummary, 0, t.Merged)

	prompt, err = s.templates.render(s.templates.removeSponsors, promptData{Summary: t.Merged})
	if err != nil {
		return Transcript{}, &StageError{Stage: StageSponsorFreeSummary, Err: err}
	}
	if t.SponsorFree, err = s.complete(ctx, StageSponsorFreeSummary, structured.Call{
		Key:       keySummary,
		Prompt:    prompt,
		MaxTokens: s.maxTokens,
		Repair:    s.summaryRepair,
	}); err != nil {
		return Transcript{}, err
	}
	s.record(ctx, rec, StageSponsorFreeSummary, 0, t.SponsorFree)

	if t.Dialog, err = s.dialog(ctx, episode, t.SponsorFree); err != nil {
		return Transcript{}, err
	}
	s.record(ctx, rec, StageFinalDialog, 0, t.Dialog)
	return t, nil
}

// SummarizeDescription condenses an episode description and rewrites it as
// a dialog.
func (s *implSummarizer) SummarizeDescription(ctx context.Context, episode Episode, description string, rec Recorder) (Transcript, error) {
	if strings.TrimSpace(description) == "" {
		return Transcript{}, &StageError{Stage: StageDescriptionSummary, Err: ErrEmptyTranscript}
	}

	t := Transcript{Episode: episode, Description: description}
	prompt, err := s.templates.render(s.templates.summarizeDescription, promptData{Description: description})
	if err != nil {
		return Transcript{}, &StageError{Stage: StageDescriptionSummary, Err: err}
	}
	if t.SponsorFree, err = s.complete(ctx, StageDescriptionSummary, structured.Call{
		Key:       keySummary,
		Prompt:    prompt,
		MaxTokens: s.maxTokens,
		Repair:    s.summaryRepair,
	}); err != nil {
		return Transcript{}, err
	}
	s.record(ctx, rec, StageDescriptionSummary, 0, t.SponsorFree)

	if t.Dialog, err = s.dialog(ctx, episode, t.SponsorFree); err != nil {
		return Transcript{}, err
	}
	s.record(ctx, rec, StageFinalDialog, 0, t.Dialog)
	return t, nil
}

// summarizeSnippets summarizes every snippet, at most s.concurrency at a
// time. Results keep the order of the snippets.
func (s *implSummarizer) summarizeSnippets(ctx context.Context, snippets []string) ([]string, error) {
	summaries := make([]string, len(snippets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.concurrency)
	for i, snippet := range snippets {
		g.Go(func() error {
			prompt, err := s.templates.render(s.templates.summarizeSnippet, promptData{Snippet: snippet})
			if err != nil {
				return &StageError{Stage: StageSnippetSummaries, Err: err}
			}
			summary, err := s.complete(gctx, StageSnippetSummaries, structured.Call{
				Key:       keySummary,
				Prompt:    prompt,
				MaxTokens: s.maxTokens,
				Repair:    s.summaryRepair,
			})
			if err != nil {
				return err
			}
			s.logger.Debug(gctx, "Snippet %d/%d: %s", i+1, len(snippets), summary)
			summaries[i] = summary
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return summaries, nil
}

func (s *implSummarizer) dialog(ctx context.Context, episode Episode, summary string) (string, error) {
	first, err := FirstLine(s.templates, episode)
	if err != nil {
		return "", &StageError{Stage: StageFinalDialog, Err: err}
	}
	prompt, err := s.templates.render(s.templates.rewriteAsDialog, promptData{
		Podcast: episode.Podcast,
		Episode: episode.Title,
		Summary: summary,
	})
	if err != nil {
		return "", &StageError{Stage: StageFinalDialog, Err: err}
	}

	return s.complete(ctx, StageFinalDialog, structured.Call{
		Key:          keyDialog,
		Prompt:       prompt,
		OutputPrefix: first + " ",
		MaxTokens:    s.dialogMaxTokens,
		Repair:       s.dialogRepair,
	})
}

// complete runs one structured call under the retry policy.
func (s *implSummarizer) complete(ctx context.Context, stage Stage, call structured.Call) (string, error) {
	policy := s.retry
	policy.OnRetry = func(attempt int, wait time.Duration, err error) {
		s.logger.Warn(ctx, "Retrying %s (attempt %d in %s): %v", stage, attempt, wait, err)
	}

	var value string
	err := retry.Do(ctx, policy, func(ctx context.Context) error {
		v, err := s.engine.Complete(ctx, call)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		return "", &StageError{Stage: stage, Err: err}
	}
	return value, nil
}

func (s *implSummarizer) record(ctx context.Context, rec Recorder, stage Stage, seq int, content string) {
	if rec == nil {
		return
	}
	if err := rec.Record(ctx, stage, seq, content); err != nil {
		s.logger.Warn(ctx, "Failed to record %s: %v", stage, err)
	}
}
