// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/photoconv/pkg/types"
)

// RunReport is the YAML sidecar written after a run when requested.
type RunReport struct {
	Format         string              `yaml:"format"`
	InputRoot      string              `yaml:"input_root"`
	OutputRoot     string              `yaml:"output_root"`
	Concurrency    int                 `yaml:"concurrency"`
	StartedAt      string              `yaml:"started_at"`
	ElapsedSeconds float64             `yaml:"elapsed_seconds"`
	Successful     int                 `yaml:"successful"`
	Failed         int                 `yaml:"failed"`
	Failures       []types.TaskFailure `yaml:"failures,omitempty"`
}

// WriteReport marshals the run outcome to YAML at path.
func WriteReport(path string, cfg types.RunConfig, startedAt time.Time, result types.RunResult) error {
	report := RunReport{
		Format:         cfg.Format,
		InputRoot:      cfg.InputRoot,
		OutputRoot:     cfg.OutputRoot,
		Concurrency:    cfg.Concurrency,
		StartedAt:      startedAt.UTC().Format(time.RFC3339),
		ElapsedSeconds: result.Elapsed.Seconds(),
		Successful:     result.Successful,
		Failed:         result.Failed,
		Failures:       result.Failures,
	}

	data, err := yaml.Marshal(&report)
	if err != nil {
		return fmt.Errorf("marshaling run report: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing run report %s: %w", path, err)
	}
	return nil
}
