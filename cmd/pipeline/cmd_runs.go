package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/nguyentantai21042004/podcast2podcast/internal/ledger"
	"github.com/spf13/cobra"
)

func newRunsCommand(root *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect past pipeline runs",
	}
	cmd.AddCommand(newRunsListCommand(root))
	cmd.AddCommand(newRunsShowCommand(root))
	return cmd
}

func openLedger(cmd *cobra.Command, root *rootOptions) (ledger.Ledger, error) {
	cfg, log, err := loadConfig(cmd.Context(), root)
	if err != nil {
		return nil, err
	}
	return ledger.Open(cmd.Context(), cfg.Paths.Ledger, log)
}

func newRunsListCommand(root *rootOptions) *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the most recent runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, root)
			if err != nil {
				return err
			}
			defer l.Close()

			runs, err := l.Runs(cmd.Context(), limit)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTARTED\tSTATUS\tPODCAST\tEPISODE")
			for _, r := range runs {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", r.ID, r.StartedAt.Format(time.DateTime), r.Status, r.Podcast, r.Episode)
			}
			return tw.Flush()
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "Number of runs to show")
	return cmd
}

func newRunsShowCommand(root *rootOptions) *cobra.Command {
	var stage string
	cmd := &cobra.Command{
		Use:   "show <run-id>",
		Short: "Print the intermediate artifacts of a run",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := openLedger(cmd, root)
			if err != nil {
				return err
			}
			defer l.Close()

			run, err := l.Run(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			stages, err := l.Stages(cmd.Context(), run.ID)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "%s: %s (%s)\n", run.Podcast, run.Episode, run.Status)
			if run.Error != "" {
				fmt.Fprintf(out, "error: %s\n", run.Error)
			}
			for _, s := range stages {
				if stage != "" && s.Stage != stage {
					continue
				}
				fmt.Fprintf(out, "\n## %s #%d\n%s\n", s.Stage, s.Seq, s.Content)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&stage, "stage", "", `Only print one stage, e.g. "final dialog"`)
	return cmd
}
