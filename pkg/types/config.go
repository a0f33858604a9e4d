// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DefaultConcurrency is the worker pool size used when none is configured.
const DefaultConcurrency = 16

// FormatSpec describes one convertible format family: its display name and
// the literal filename suffixes that identify it. Suffixes are matched
// case-sensitively, so both casings of an extension are listed explicitly.
type FormatSpec struct {
	// Name is the canonical family name ("HEIC" or "CR2").
	Name string `json:"name" yaml:"name"`

	// Extensions lists the filename suffixes belonging to the family,
	// each with a leading dot.
	Extensions []string `json:"extensions" yaml:"extensions"`
}

// formats is the closed set of supported format families.
var formats = []FormatSpec{
	{Name: "HEIC", Extensions: []string{".heic", ".HEIC", ".heif", ".HEIF"}},
	{Name: "CR2", Extensions: []string{".cr2", ".CR2"}},
}

// Formats returns the registered format families.
func Formats() []FormatSpec {
	out := make([]FormatSpec, len(formats))
	copy(out, formats)
	return out
}

// FormatByName looks up a format family by name, case-insensitively.
func FormatByName(name string) (FormatSpec, bool) {
	for _, f := range formats {
		if strings.EqualFold(f.Name, name) {
			return f, true
		}
	}
	return FormatSpec{}, false
}

// RunConfig holds the validated configuration for one conversion run. It is
// built once from flags and config, then passed unchanged into the pipeline.
type RunConfig struct {
	// Format selects the format family: "HEIC" or "CR2".
	Format string `json:"format" yaml:"format"`

	// InputRoot is the directory scanned recursively for source files.
	InputRoot string `json:"input_root" yaml:"input_root"`

	// OutputRoot is the directory the converted tree is written under.
	// It is created on demand; only its parent must already exist.
	OutputRoot string `json:"output_root" yaml:"output_root"`

	// Concurrency is the fixed worker pool size (default 16).
	Concurrency int `json:"concurrency" yaml:"concurrency"`
}

// Validate checks the configuration: the format must be registered, the
// input root must be an existing directory, the output root's parent must
// exist, and concurrency must be positive. The output root itself need not
// exist yet; its writability is not probed here.
func (c RunConfig) Validate() error {
	if _, ok := FormatByName(c.Format); !ok {
		return fmt.Errorf("unknown format %q (supported: HEIC, CR2)", c.Format)
	}

	info, err := os.Stat(c.InputRoot)
	if err != nil {
		return fmt.Errorf("input directory %s: %w", c.InputRoot, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("input path %s is not a directory", c.InputRoot)
	}

	if c.OutputRoot == "" {
		return fmt.Errorf("output directory must be set")
	}
	parent := filepath.Dir(filepath.Clean(c.OutputRoot))
	if info, err := os.Stat(parent); err != nil || !info.IsDir() {
		return fmt.Errorf("parent of output directory does not exist: %s", parent)
	}

	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}

	return nil
}
