// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package schedule fans conversion tasks across a bounded worker pool and
// aggregates per-task outcomes.
package schedule

import (
	"fmt"
	"io"
	"sync"
	"sync/atomic"

	"github.com/schollz/progressbar/v3"

	"github.com/pdiddy/photoconv/internal/codec"
	"github.com/pdiddy/photoconv/pkg/types"
)

// Run dispatches every task to a pool of exactly concurrency workers and
// blocks until all of them have completed. Tasks enter the queue in slice
// order; completion order is unconstrained. Each completion advances the
// progress bar once and increments exactly one of the two counters, so
// Successful + Failed always equals len(tasks) on return. A failed task
// prints a one-line diagnostic to w and never disturbs the rest of the
// batch. Elapsed is left zero for the caller to fill in.
func Run(tasks []types.ConversionTask, adapter codec.Adapter, concurrency int, w io.Writer) types.RunResult {
	if concurrency < 1 {
		concurrency = 1
	}

	bar := progressbar.NewOptions(len(tasks),
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("converting"),
		progressbar.OptionShowCount(),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)

	var successful, failed atomic.Int64

	var mu sync.Mutex // guards failures and diagnostic lines on w
	var failures []types.TaskFailure

	queue := make(chan types.ConversionTask)
	var wg sync.WaitGroup
	for i := 0; i < concurrency; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for task := range queue {
				if err := adapter.Convert(task.InputPath, task.OutputPath); err != nil {
					failed.Add(1)
					mu.Lock()
					failures = append(failures, types.TaskFailure{Path: task.InputPath, Reason: err.Error()})
					fmt.Fprintf(w, "failed: %s (%v)\n", task.InputPath, err)
					mu.Unlock()
				} else {
					successful.Add(1)
				}
				bar.Add(1)
			}
		}()
	}

	for _, t := range tasks {
		queue <- t
	}
	close(queue)
	wg.Wait()

	return types.RunResult{
		Successful: int(successful.Load()),
		Failed:     int(failed.Load()),
		Failures:   failures,
	}
}
