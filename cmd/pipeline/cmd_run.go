package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/nguyentantai21042004/podcast2podcast/internal/processor"
	"github.com/spf13/cobra"
)

type runOptions struct {
	podcast    string
	episode    string
	audio      string
	url        string
	transcript string
	textOnly   bool
}

func newRunCommand(root *rootOptions) *cobra.Command {
	opts := &runOptions{}
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Summarize a single episode",
		Long: `Summarize one episode from a local audio file, an audio URL or an
existing transcript, then render the dialog as audio.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			job, err := opts.job()
			if err != nil {
				return err
			}
			return runJob(cmd, root, job)
		},
	}

	cmd.Flags().StringVar(&opts.podcast, "podcast", "", "Podcast name")
	cmd.Flags().StringVar(&opts.episode, "episode", "", "Episode title")
	cmd.Flags().StringVar(&opts.audio, "audio", "", "Local audio file to transcribe")
	cmd.Flags().StringVar(&opts.url, "url", "", "Audio URL to download and transcribe")
	cmd.Flags().StringVar(&opts.transcript, "transcript", "", "Plain text transcript, skips transcription")
	cmd.Flags().BoolVar(&opts.textOnly, "text-only", false, "Write the dialog without synthesizing audio")
	cmd.MarkFlagsMutuallyExclusive("audio", "url", "transcript")
	cmd.MarkFlagsOneRequired("audio", "url", "transcript")
	_ = cmd.MarkFlagRequired("podcast")
	_ = cmd.MarkFlagRequired("episode")

	return cmd
}

func (o *runOptions) job() (processor.Job, error) {
	job := processor.Job{
		Podcast:   o.podcast,
		Episode:   o.episode,
		AudioPath: o.audio,
		AudioURL:  o.url,
		TextOnly:  o.textOnly,
	}
	if o.transcript != "" {
		data, err := os.ReadFile(o.transcript)
		if err != nil {
			return processor.Job{}, fmt.Errorf("read transcript: %w", err)
		}
		job.Transcript = string(data)
	}
	return job, nil
}

func runJob(cmd *cobra.Command, root *rootOptions, job processor.Job) error {
	ctx := cmd.Context()
	a, err := newApp(ctx, root)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.processor.Run(ctx, job)
	if err != nil {
		if errors.Is(err, processor.ErrNoInput) {
			return fmt.Errorf("%s: %s has nothing to summarize", job.Podcast, job.Episode)
		}
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "run %s\n", res.RunID)
	fmt.Fprintf(cmd.OutOrStdout(), "dialog: %s\n", res.DialogPath)
	if res.AudioPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "audio:  %s\n", res.AudioPath)
	}
	if res.ReportPath != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", res.ReportPath)
	}
	return nil
}
