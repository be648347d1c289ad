package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nguyentantai21042004/podcast2podcast/internal/processor"
	"github.com/spf13/cobra"
)

func newSummarizeCommand(root *rootOptions) *cobra.Command {
	var (
		podcast string
		episode string
		speak   bool
	)
	cmd := &cobra.Command{
		Use:   "summarize <transcript.txt>",
		Short: "Turn an existing transcript into a dialog",
		Long: `Summarize a plain text transcript into a two-host dialog. No audio is
rendered unless --speak is given. The podcast and episode default to the
"Podcast - Episode.txt" file name.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := os.ReadFile(args[0])
			if err != nil {
				return fmt.Errorf("read transcript: %w", err)
			}

			namePodcast, nameEpisode := splitName(args[0])
			if podcast == "" {
				podcast = namePodcast
			}
			if episode == "" {
				episode = nameEpisode
			}

			return runJob(cmd, root, processor.Job{
				Podcast:    podcast,
				Episode:    episode,
				Transcript: string(data),
				TextOnly:   !speak,
			})
		},
	}

	cmd.Flags().StringVar(&podcast, "podcast", "", "Podcast name")
	cmd.Flags().StringVar(&episode, "episode", "", "Episode title")
	cmd.Flags().BoolVar(&speak, "speak", false, "Also synthesize the dialog")
	return cmd
}

// splitName reads "Podcast - Episode.txt".
func splitName(path string) (string, string) {
	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	if podcast, episode, ok := strings.Cut(name, " - "); ok {
		return strings.TrimSpace(podcast), strings.TrimSpace(episode)
	}
	return "Unknown Podcast", name
}
