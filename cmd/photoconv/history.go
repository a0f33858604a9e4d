package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/photoconv/internal/history"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent conversion runs",
	Long: `History lists completed runs from the local history database, newest
first. The history is informational only; it is never consulted to skip or
resume conversions.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := history.NewStore(viper.GetString("history_db"))
		if err != nil {
			return err
		}
		defer store.Close()

		limit, _ := cmd.Flags().GetInt("limit")
		records, err := store.RecentRuns(limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No runs recorded.")
			return nil
		}

		fmt.Fprintln(cmd.OutOrStdout(), historyTable(records))
		return nil
	},
}

func init() {
	historyCmd.Flags().Int("limit", 20, "maximum number of runs to list")

	rootCmd.AddCommand(historyCmd)
}
