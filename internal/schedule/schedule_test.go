// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package schedule

import (
	"bytes"
	"errors"
	"fmt"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/photoconv/pkg/types"
)

// scriptedAdapter fails inputs listed in failPaths and succeeds otherwise.
type scriptedAdapter struct {
	failPaths map[string]bool
	calls     atomic.Int64
}

func (a *scriptedAdapter) Convert(inputPath, outputPath string) error {
	a.calls.Add(1)
	if a.failPaths[inputPath] {
		return errors.New("decode failed for " + inputPath)
	}
	return nil
}

func makeTasks(n int) []types.ConversionTask {
	tasks := make([]types.ConversionTask, n)
	for i := range tasks {
		tasks[i] = types.ConversionTask{
			InputPath:  fmt.Sprintf("/in/photo%03d.heic", i),
			OutputPath: fmt.Sprintf("/out/photo%03d.png", i),
		}
	}
	return tasks
}

func TestRun_TallyIsExhaustive(t *testing.T) {
	tasks := makeTasks(25)
	adapter := &scriptedAdapter{failPaths: map[string]bool{
		tasks[3].InputPath:  true,
		tasks[11].InputPath: true,
		tasks[24].InputPath: true,
	}}

	var out bytes.Buffer
	result := Run(tasks, adapter, 4, &out)

	assert.Equal(t, 22, result.Successful)
	assert.Equal(t, 3, result.Failed)
	assert.Equal(t, len(tasks), result.Total())
	assert.Equal(t, int64(len(tasks)), adapter.calls.Load())
	assert.Len(t, result.Failures, 3)
}

func TestRun_FailureNeverAbortsBatch(t *testing.T) {
	tasks := makeTasks(10)
	fail := make(map[string]bool)
	for _, task := range tasks[:9] {
		fail[task.InputPath] = true
	}
	adapter := &scriptedAdapter{failPaths: fail}

	var out bytes.Buffer
	result := Run(tasks, adapter, 2, &out)

	assert.Equal(t, 1, result.Successful)
	assert.Equal(t, 9, result.Failed)
	assert.True(t, result.HasFailures())
}

func TestRun_DiagnosticNamesFailingFile(t *testing.T) {
	tasks := makeTasks(2)
	adapter := &scriptedAdapter{failPaths: map[string]bool{tasks[0].InputPath: true}}

	var out bytes.Buffer
	result := Run(tasks, adapter, 1, &out)

	require.Len(t, result.Failures, 1)
	assert.Equal(t, tasks[0].InputPath, result.Failures[0].Path)
	assert.Contains(t, out.String(), "failed: "+tasks[0].InputPath)
	assert.Contains(t, result.Failures[0].Reason, tasks[0].InputPath)
}

// gaugeAdapter tracks how many Convert calls run concurrently.
type gaugeAdapter struct {
	current atomic.Int64
	peak    atomic.Int64
}

func (a *gaugeAdapter) Convert(inputPath, outputPath string) error {
	n := a.current.Add(1)
	for {
		peak := a.peak.Load()
		if n <= peak || a.peak.CompareAndSwap(peak, n) {
			break
		}
	}
	time.Sleep(2 * time.Millisecond)
	a.current.Add(-1)
	return nil
}

func TestRun_RespectsConcurrencyBound(t *testing.T) {
	const bound = 4
	adapter := &gaugeAdapter{}

	var out bytes.Buffer
	result := Run(makeTasks(40), adapter, bound, &out)

	assert.Equal(t, 40, result.Successful)
	peak := adapter.peak.Load()
	assert.LessOrEqual(t, peak, int64(bound), "observed %d concurrent conversions", peak)
	assert.Greater(t, peak, int64(1), "pool never ran in parallel")
}

func TestRun_EmptyTaskList(t *testing.T) {
	var out bytes.Buffer
	result := Run(nil, &scriptedAdapter{}, 8, &out)

	assert.Equal(t, 0, result.Total())
	assert.False(t, result.HasFailures())
}
