package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"github.com/nguyentantai21042004/podcast2podcast/internal/processor"
	"github.com/nguyentantai21042004/podcast2podcast/internal/watcher"
	"github.com/spf13/cobra"
)

func newWatchCommand(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "watch",
		Short: "Process audio files and transcripts dropped into the inbox",
		Long: `Watch the configured input folder. Every audio file or .txt transcript
named "Podcast - Episode.ext" is summarized and moved to the processed
folder. Files already present at startup are processed first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := newApp(ctx, root)
			if err != nil {
				return err
			}
			defer a.Close()

			w, err := watcher.New(a.cfg.Paths.Input, a.processor.Process, a.log, watcher.Options{
				Filter:        processor.IsSupported,
				MaxConcurrent: a.cfg.Performance.MaxConcurrent,
			})
			if err != nil {
				return err
			}
			defer w.Stop()

			a.log.Info(ctx, "========================================")
			a.log.Info(ctx, "Podcast pipeline is ready!")
			a.log.Info(ctx, "Monitoring: %s", a.cfg.Paths.Input)
			a.log.Info(ctx, "Output: %s", a.cfg.Paths.Output)
			a.log.Info(ctx, "Concurrent: %d episodes at once", a.cfg.Performance.MaxConcurrent)
			a.log.Info(ctx, "Press Ctrl+C to stop")
			a.log.Info(ctx, "========================================")

			err = w.Start(ctx)
			a.log.Info(context.Background(), "Podcast pipeline stopped")
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}
}
