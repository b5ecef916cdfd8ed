package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kbukum/voicefeedback/feedback"
	"github.com/kbukum/voicefeedback/util"
)

func newRecentCommand(opts *rootOptions) *cobra.Command {
	var predictionID string
	cmd := &cobra.Command{
		Use:   "recent",
		Short: "List the voice feedback stored for a prediction",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			e, err := opts.load()
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if err := requireLogin(cmd.Context(), e.store, out); err != nil {
				return err
			}
			client, err := feedback.NewClient(e.cfg.Server, e.store, e.log)
			if err != nil {
				return err
			}
			records, err := client.Recent(cmd.Context(), predictionID)
			if err != nil {
				return err
			}
			return printRecords(out, predictionID, records)
		},
	}
	cmd.Flags().StringVarP(&predictionID, "prediction-id", "p", "", "prediction to list")
	_ = cmd.MarkFlagRequired("prediction-id")
	return cmd
}

func printRecords(out io.Writer, predictionID string, records []feedback.Record) error {
	if len(records) == 0 {
		_, err := fmt.Fprintf(out, "No voice feedback for prediction %s.\n", predictionID)
		return err
	}
	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tUSER\tLENGTH\tSIZE\tRECEIVED\tTRANSCRIPTION")
	for _, r := range records {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			r.ID, r.UserID, util.FormatClock(r.Duration), util.FormatBytes(r.Size),
			r.CreatedAt.Local().Format("2006-01-02 15:04"), r.Transcription)
	}
	return tw.Flush()
}
