package main

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/pdiddy/photoconv/pkg/types"
)

// historyTable renders run records as a rounded table, in the order given
// (RecentRuns hands them over newest first).
func historyTable(records []types.RunRecord) string {
	tw := table.NewWriter()
	tw.SetStyle(table.StyleRounded)
	tw.AppendHeader(table.Row{"ID", "Started", "Format", "Input", "Output", "OK", "Failed", "Elapsed"})

	for _, r := range records {
		tw.AppendRow(table.Row{
			r.ID,
			r.StartedAt.Local().Format("2006-01-02 15:04"),
			r.Format,
			r.InputRoot,
			r.OutputRoot,
			r.Successful,
			r.Failed,
			fmt.Sprintf("%.1fs", r.Elapsed.Seconds()),
		})
	}

	// Counts and durations read better right-aligned.
	tw.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 6, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 7, Align: text.AlignRight, AlignHeader: text.AlignLeft},
		{Number: 8, Align: text.AlignRight, AlignHeader: text.AlignLeft},
	})

	return tw.Render()
}
