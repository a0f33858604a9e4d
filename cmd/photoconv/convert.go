package main

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/photoconv/internal/codec"
	"github.com/pdiddy/photoconv/internal/convert"
	"github.com/pdiddy/photoconv/internal/history"
	"github.com/pdiddy/photoconv/pkg/types"
)

var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert an image tree to PNG",
	Long: `Convert walks the input directory for files of the chosen format family
(HEIC or CR2), mirrors the subtree under the output directory, and converts
each file to PNG on a bounded worker pool. Per-file failures are reported and
tallied; they never abort the batch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()

		format, _ := cmd.Flags().GetString("format")
		inputRoot, _ := cmd.Flags().GetString("input")
		outputRoot, _ := cmd.Flags().GetString("output")
		jobs, _ := cmd.Flags().GetInt("jobs")
		if !cmd.Flags().Changed("jobs") {
			jobs = viper.GetInt("jobs")
		}

		cfg := types.RunConfig{
			Format:      format,
			InputRoot:   inputRoot,
			OutputRoot:  outputRoot,
			Concurrency: jobs,
		}
		if err := cfg.Validate(); err != nil {
			return err
		}
		spec, _ := types.FormatByName(cfg.Format)
		cfg.Format = spec.Name

		tc, err := codec.DetectToolchain()
		if err != nil {
			return err
		}
		adapter, err := codec.ForFormat(cfg.Format, tc)
		if err != nil {
			return err
		}

		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			fmt.Fprintf(out, "Format:  %s\n", cfg.Format)
			fmt.Fprintf(out, "Input:   %s\n", cfg.InputRoot)
			fmt.Fprintf(out, "Output:  %s\n", cfg.OutputRoot)
			fmt.Fprintf(out, "Workers: %d (via %s)\n", cfg.Concurrency, tc.Name())
			if !confirm(cmd) {
				fmt.Fprintln(out, "Conversion cancelled.")
				return nil
			}
		}

		startedAt := time.Now()
		result, err := convert.RunBatch(cfg, adapter, out)
		if err != nil {
			if errors.Is(err, convert.ErrNoMatches) {
				fmt.Fprintf(out, "No %s files found under %s\n", cfg.Format, cfg.InputRoot)
				return nil
			}
			return err
		}

		if reportPath, _ := cmd.Flags().GetString("report"); reportPath != "" {
			if err := convert.WriteReport(reportPath, cfg, startedAt, result); err != nil {
				fmt.Fprintf(os.Stderr, "warning: %v\n", err)
			}
		}

		if noHistory, _ := cmd.Flags().GetBool("no-history"); !noHistory {
			recordHistory(cfg, startedAt, result)
		}

		return nil
	},
}

// confirm asks for a yes/no answer on the command's input stream.
// Anything but y/yes declines.
func confirm(cmd *cobra.Command) bool {
	fmt.Fprint(cmd.OutOrStdout(), "Proceed with conversion? [y/N]: ")
	reader := bufio.NewReader(cmd.InOrStdin())
	line, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

// recordHistory appends the run to the history store. History is reporting
// only; failure to record never fails the run.
func recordHistory(cfg types.RunConfig, startedAt time.Time, result types.RunResult) {
	store, err := history.NewStore(viper.GetString("history_db"))
	if err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not open history: %v\n", err)
		return
	}
	defer store.Close()

	if _, err := store.RecordRun(cfg, startedAt, result); err != nil {
		fmt.Fprintf(os.Stderr, "warning: could not record run: %v\n", err)
	}
}

func init() {
	convertCmd.Flags().String("format", "", "format family to convert: HEIC or CR2")
	convertCmd.Flags().String("input", "", "input directory scanned recursively")
	convertCmd.Flags().String("output", "", "output directory for the converted tree")
	convertCmd.Flags().Int("jobs", types.DefaultConcurrency, "number of parallel conversion workers")
	convertCmd.Flags().Bool("yes", false, "skip the confirmation prompt")
	convertCmd.Flags().String("report", "", "write a YAML run report to this path")
	convertCmd.Flags().Bool("no-history", false, "do not record this run in the history database")

	convertCmd.MarkFlagRequired("format")
	convertCmd.MarkFlagRequired("input")
	convertCmd.MarkFlagRequired("output")

	rootCmd.AddCommand(convertCmd)
}
