package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/photoconv/pkg/types"
)

var formatsCmd = &cobra.Command{
	Use:   "formats",
	Short: "List the supported format families",
	Run: func(cmd *cobra.Command, args []string) {
		for _, f := range types.Formats() {
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", f.Name, strings.Join(f.Extensions, " "))
		}
	},
}

func init() {
	rootCmd.AddCommand(formatsCmd)
}
