package main

import (
	"fmt"

	"github.com/nguyentantai21042004/podcast2podcast/internal/feed"
	"github.com/nguyentantai21042004/podcast2podcast/internal/processor"
	"github.com/spf13/cobra"
)

type feedOptions struct {
	episode     string
	description bool
	textOnly    bool
	list        bool
}

func newFeedCommand(root *rootOptions) *cobra.Command {
	opts := &feedOptions{}
	cmd := &cobra.Command{
		Use:   "feed <rss-url>",
		Short: "Summarize an episode of an RSS feed",
		Long: `Fetch a podcast RSS feed and summarize one of its episodes. Without
--episode the newest episode is used. With --description the episode's
show notes are summarized instead of its audio.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			podcast, err := feed.Parse(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			if opts.list {
				for _, e := range podcast.Episodes {
					fmt.Fprintf(cmd.OutOrStdout(), "%s  %s\n", e.Published.Format("2006-01-02"), e.Title)
				}
				return nil
			}

			episode, ok := podcast.Find(opts.episode)
			if !ok {
				return fmt.Errorf("no episode matching %q in %s", opts.episode, podcast.Title)
			}

			job := processor.Job{
				Podcast:  podcast.Title,
				Episode:  episode.Title,
				TextOnly: opts.textOnly,
			}
			if opts.description {
				job.Description = episode.Description
			} else {
				job.AudioURL = episode.AudioURL
			}
			return runJob(cmd, root, job)
		},
	}

	cmd.Flags().StringVar(&opts.episode, "episode", "", "Part of the episode title, defaults to the newest episode")
	cmd.Flags().BoolVar(&opts.description, "description", false, "Summarize the episode description instead of the audio")
	cmd.Flags().BoolVar(&opts.textOnly, "text-only", false, "Write the dialog without synthesizing audio")
	cmd.Flags().BoolVar(&opts.list, "list", false, "List the feed's episodes and exit")

	return cmd
}
