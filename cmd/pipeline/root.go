package main

import (
	"github.com/spf13/cobra"
)

var version = "dev"

type rootOptions struct {
	configPath string
	envFile    string
	debug      bool
}

func newRootCommand() *cobra.Command {
	opts := &rootOptions{}
	cmd := &cobra.Command{
		Use:   "pipeline",
		Short: "Turn podcast episodes into short AI-hosted summary episodes",
		Long: `pipeline transcribes a podcast episode, condenses the transcript into a
two-host dialog and reads the dialog back as a new audio episode.

Episodes can come from an RSS feed, a local audio file, a plain text
transcript, or a watched inbox folder.`,
		Version:      version,
		SilenceUsage: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "config.yaml", "Path to the YAML configuration")
	cmd.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env", "Dotenv file holding API keys")
	cmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "Enable debug logging")

	cmd.AddCommand(newRunCommand(opts))
	cmd.AddCommand(newSummarizeCommand(opts))
	cmd.AddCommand(newFeedCommand(opts))
	cmd.AddCommand(newWatchCommand(opts))
	cmd.AddCommand(newRunsCommand(opts))

	return cmd
}
