package processor

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/nguyentantai21042004/podcast2podcast/internal/ledger"
	"github.com/nguyentantai21042004/podcast2podcast/internal/summarizer"
)

// ErrNoInput is returned for a job without transcript, audio or
// description.
var ErrNoInput = errors.New("job has no transcript, audio or description")

const unknownPodcast = "Unknown Podcast"

// Run orchestrates the entire pipeline
func (p *implProcessor) Run(ctx context.Context, job Job) (Result, error) {
	startTime := time.Now()

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Starting episode: %s: %s", job.Podcast, job.Episode)
	p.logger.Info(ctx, "========================================")

	runID, rec := p.startRun(ctx, job)
	res, err := p.run(ctx, runID, rec, job)
	p.finishRun(ctx, runID, err)
	if err != nil {
		return Result{}, err
	}

	p.logger.Info(ctx, "========================================")
	p.logger.Info(ctx, "Processing completed successfully!")
	p.logger.Info(ctx, "Run: %s", res.RunID)
	p.logger.Info(ctx, "Dialog: %s", res.DialogPath)
	if res.AudioPath != "" {
		p.logger.Info(ctx, "Audio: %s", res.AudioPath)
	}
	p.logger.Info(ctx, "Processing time: %s", time.Since(startTime))
	p.logger.Info(ctx, "========================================")
	return res, nil
}

func (p *implProcessor) run(ctx context.Context, runID string, rec summarizer.Recorder, job Job) (Result, error) {
	res := Result{RunID: runID}
	episode := summarizer.Episode{Podcast: job.Podcast, Title: job.Episode}

	raw := job.Transcript
	if raw == "" && (job.AudioPath != "" || job.AudioURL != "") {
		err := p.step(ctx, "transcribing", func(ctx context.Context) error {
			var err error
			raw, err = p.transcribe(ctx, job)
			return err
		})
		if err != nil {
			return Result{}, fmt.Errorf("transcribe: %w", err)
		}
	}

	err := p.step(ctx, "creating new dialog", func(ctx context.Context) error {
		var err error
		switch {
		case raw != "":
			res.Transcript, err = p.summarizer.Summarize(ctx, episode, raw, rec)
		case job.Description != "":
			res.Transcript, err = p.summarizer.SummarizeDescription(ctx, episode, job.Description, rec)
		default:
			err = ErrNoInput
		}
		return err
	})
	if err != nil {
		return Result{}, fmt.Errorf("summarize: %w", err)
	}

	if err := os.MkdirAll(p.cfg.Paths.Output, 0755); err != nil {
		return Result{}, fmt.Errorf("create output dir: %w", err)
	}
	base := filepath.Join(p.cfg.Paths.Output, outputName(job.Podcast, job.Episode))

	res.DialogPath = base + ".txt"
	if err := os.WriteFile(res.DialogPath, []byte(res.Transcript.Dialog+"\n"), 0644); err != nil {
		return Result{}, fmt.Errorf("write dialog: %w", err)
	}

	if !job.TextOnly {
		err := p.step(ctx, "generating audio", func(ctx context.Context) error {
			audio, err := p.dispatcher.Synthesize(ctx, res.Transcript.Dialog)
			if err != nil {
				return err
			}
			res.AudioPath = base + "." + audio.Format
			return os.WriteFile(res.AudioPath, audio.Data, 0644)
		})
		if err != nil {
			return Result{}, fmt.Errorf("synthesize: %w", err)
		}
	}

	res.ReportPath, res.ArchivePath = p.writeArtifacts(ctx, runID, base, res.Transcript)
	return res, nil
}

// Process handles a file from the inbox and moves it to the processed
// folder once the run succeeded.
func (p *implProcessor) Process(ctx context.Context, path string) error {
	job, err := p.jobFromFile(path)
	if err != nil {
		return err
	}
	if _, err := p.Run(ctx, job); err != nil {
		return err
	}

	if err := p.moveToProcessed(ctx, path); err != nil {
		p.logger.Warn(ctx, "Failed to move %s to processed folder: %v", path, err)
	}
	return nil
}

// jobFromFile names the episode after the file: "Podcast - Episode.mp3",
// or just "Episode.mp3".
func (p *implProcessor) jobFromFile(path string) (Job, error) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	job := Job{Podcast: unknownPodcast, Episode: name}
	if podcast, episode, ok := strings.Cut(name, " - "); ok {
		job.Podcast = strings.TrimSpace(podcast)
		job.Episode = strings.TrimSpace(episode)
	}

	if IsTranscriptFile(path) {
		data, err := os.ReadFile(path)
		if err != nil {
			return Job{}, fmt.Errorf("read transcript: %w", err)
		}
		job.Transcript = string(data)
		return job, nil
	}
	if IsAudioFile(path) {
		job.AudioPath = path
		return job, nil
	}
	return Job{}, fmt.Errorf("unsupported input file: %s", path)
}

// step logs the start and duration of one pipeline phase.
func (p *implProcessor) step(ctx context.Context, about string, fn func(ctx context.Context) error) error {
	start := time.Now()
	p.logger.Info(ctx, "Starting %s...", about)
	if err := fn(ctx); err != nil {
		return err
	}
	p.logger.Info(ctx, "...done %s. (%.2fs elapsed.)", about, time.Since(start).Seconds())
	return nil
}

func (p *implProcessor) startRun(ctx context.Context, job Job) (string, summarizer.Recorder) {
	if p.ledger == nil {
		return uuid.NewString(), nil
	}
	run, err := p.ledger.Start(ctx, job.Podcast, job.Episode)
	if err != nil {
		p.logger.Warn(ctx, "Failed to start ledger run: %v", err)
		return uuid.NewString(), nil
	}
	return run.ID, ledger.RunRecorder{Ledger: p.ledger, RunID: run.ID}
}

func (p *implProcessor) finishRun(ctx context.Context, runID string, runErr error) {
	if p.ledger == nil {
		return
	}
	if err := p.ledger.Finish(ctx, runID, runErr); err != nil && !errors.Is(err, ledger.ErrRunNotFound) {
		p.logger.Warn(ctx, "Failed to finish ledger run %s: %v", runID, err)
	}
}
