// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the value types shared across the conversion
// pipeline: run configuration, format families, tasks, and results.
package types

import "time"

// ConversionTask pairs one source file with its destination PNG path.
// Tasks are immutable once created and consumed exactly once.
type ConversionTask struct {
	InputPath  string `json:"input_path" yaml:"input_path"`
	OutputPath string `json:"output_path" yaml:"output_path"`
}

// TaskFailure records one file that could not be converted.
type TaskFailure struct {
	Path   string `json:"path" yaml:"path"`
	Reason string `json:"reason" yaml:"reason"`
}

// RunResult holds the aggregate outcome of a conversion run.
type RunResult struct {
	Successful int           `json:"successful" yaml:"successful"`
	Failed     int           `json:"failed" yaml:"failed"`
	Elapsed    time.Duration `json:"elapsed" yaml:"elapsed"`

	// Failures lists the failed files with their diagnostics, in
	// completion order.
	Failures []TaskFailure `json:"failures,omitempty" yaml:"failures,omitempty"`
}

// Total returns the total number of files processed.
func (r RunResult) Total() int {
	return r.Successful + r.Failed
}

// HasFailures reports whether any file failed conversion.
func (r RunResult) HasFailures() bool {
	return r.Failed > 0
}

// RunRecord is one row of the run history store.
type RunRecord struct {
	ID          int64         `json:"id" yaml:"id"`
	StartedAt   time.Time     `json:"started_at" yaml:"started_at"`
	Format      string        `json:"format" yaml:"format"`
	InputRoot   string        `json:"input_root" yaml:"input_root"`
	OutputRoot  string        `json:"output_root" yaml:"output_root"`
	Concurrency int           `json:"concurrency" yaml:"concurrency"`
	Successful  int           `json:"successful" yaml:"successful"`
	Failed      int           `json:"failed" yaml:"failed"`
	Elapsed     time.Duration `json:"elapsed" yaml:"elapsed"`
}
