package main

import (
	"fmt"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"reelcast/internal/history"
)

func newHistoryCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recent generation runs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := ctx.openHistory()
			if err != nil {
				return fmt.Errorf("open run history: %w", err)
			}
			defer store.Close()

			runs, err := store.List(cmd.Context(), limit)
			if err != nil {
				return fmt.Errorf("list runs: %w", err)
			}
			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				rows = append(rows, historyRow(run))
			}
			var footer []string
			if stats, err := store.Stats(cmd.Context()); err == nil {
				footer = []string{fmt.Sprintf("%d succeeded, %d failed", stats[history.StatusSucceeded], stats[history.StatusFailed])}
			}
			fmt.Fprintln(out, renderTable(historyColumns, rows, footer))
			return nil
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", history.DefaultListLimit, "Number of runs to show")
	return cmd
}

var historyColumns = []column{
	{title: "Started"},
	{title: "Kind"},
	{title: "Status"},
	{title: "Output"},
	{title: "Length", numeric: true},
	{title: "Size", numeric: true},
	{title: "Detail"},
}

func historyRow(run history.Run) []string {
	size := "-"
	if run.SizeBytes > 0 {
		size = humanize.Bytes(uint64(run.SizeBytes))
	}
	length := "-"
	if run.DurationSeconds > 0 {
		length = formatSeconds(run.DurationSeconds)
	}
	detail := run.Encoder
	if run.Status == history.StatusFailed {
		detail = run.ErrorMessage
	}
	if detail == "" {
		detail = strconv.Itoa(run.ImageCount) + " images"
	}
	return []string{
		humanize.Time(run.StartedAt),
		string(run.Kind),
		string(run.Status),
		run.OutputPath,
		length,
		size,
		detail,
	}
}
