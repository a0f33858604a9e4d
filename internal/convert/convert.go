// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert orchestrates the batch pipeline: discover source files,
// map them to output paths, fan them across the scheduler, and report the
// tally.
package convert

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pdiddy/photoconv/internal/codec"
	"github.com/pdiddy/photoconv/internal/discover"
	"github.com/pdiddy/photoconv/internal/pathmap"
	"github.com/pdiddy/photoconv/internal/schedule"
	"github.com/pdiddy/photoconv/pkg/types"
)

// ErrNoMatches reports that discovery found nothing to convert. The
// scheduler is never invoked in that case and no result is produced.
var ErrNoMatches = errors.New("no matching files found")

// RunBatch executes one conversion run under cfg, writing per-file
// diagnostics, progress, and the summary to w. Files whose output directory
// cannot be created are tallied as failures without being dispatched, so the
// returned counts always cover every discovered file. The only errors
// returned are ErrNoMatches and discovery-level failures; per-file problems
// never unwind past the scheduler.
func RunBatch(cfg types.RunConfig, adapter codec.Adapter, w io.Writer) (types.RunResult, error) {
	spec, ok := types.FormatByName(cfg.Format)
	if !ok {
		return types.RunResult{}, fmt.Errorf("unknown format %q", cfg.Format)
	}

	start := time.Now()

	files, err := discover.Discover(cfg.InputRoot, spec.Extensions)
	if err != nil {
		return types.RunResult{}, err
	}
	if len(files) == 0 {
		return types.RunResult{}, fmt.Errorf("%w: no %s files under %s", ErrNoMatches, spec.Name, cfg.InputRoot)
	}

	fmt.Fprintf(w, "Found %d %s files\n", len(files), spec.Name)

	tasks := make([]types.ConversionTask, 0, len(files))
	var preFailures []types.TaskFailure
	for _, f := range files {
		out, err := pathmap.MapOutput(cfg.InputRoot, cfg.OutputRoot, f)
		if err == nil {
			err = pathmap.EnsureParents(out)
		}
		if err != nil {
			fmt.Fprintf(w, "failed: %s (%v)\n", f, err)
			preFailures = append(preFailures, types.TaskFailure{Path: f, Reason: err.Error()})
			continue
		}
		tasks = append(tasks, types.ConversionTask{InputPath: f, OutputPath: out})
	}

	result := schedule.Run(tasks, adapter, cfg.Concurrency, w)
	result.Failed += len(preFailures)
	result.Failures = append(preFailures, result.Failures...)
	result.Elapsed = time.Since(start)

	fmt.Fprintf(w, "\nConverted %d files: %d succeeded, %d failed in %.2fs\n",
		result.Total(), result.Successful, result.Failed, result.Elapsed.Seconds())

	return result, nil
}
