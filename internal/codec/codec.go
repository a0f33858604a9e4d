// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package codec adapts external image decoders into the conversion
// capability the pipeline calls. Pixel work is delegated to an ImageMagick
// toolchain; this package only shapes the invocation per format family.
package codec

import (
	"fmt"
	"os"
)

// Adapter converts one source image into a PNG at outputPath. A nil return
// is success; a non-nil error names the failing input and the underlying
// tool diagnostic. Adapters make exactly one attempt and never panic.
type Adapter interface {
	Convert(inputPath, outputPath string) error
}

// encodeArgs per family, inserted between input and output path.
//
// HEIC decodes losslessly; PNG gets maximum compression. CR2 is demosaiced
// by the raw delegate and encoded at quality 90; any alpha channel is
// flattened away since raw sensor data carries no meaningful alpha.
var encodeArgs = map[string][]string{
	"HEIC": {"-define", "png:compression-level=9"},
	"CR2":  {"-quality", "90", "-alpha", "remove"},
}

// magickAdapter shells out to the detected toolchain with per-family
// encoding arguments.
type magickAdapter struct {
	tc   *Toolchain
	args []string
}

// ForFormat returns the adapter variant for the named format family,
// bound to the given toolchain. Selection happens once per run.
func ForFormat(name string, tc *Toolchain) (Adapter, error) {
	args, ok := encodeArgs[name]
	if !ok {
		return nil, fmt.Errorf("no conversion adapter for format %q", name)
	}
	return &magickAdapter{tc: tc, args: args}, nil
}

func (a *magickAdapter) Convert(inputPath, outputPath string) error {
	args := make([]string, 0, len(a.args)+2)
	args = append(args, inputPath)
	args = append(args, a.args...)
	args = append(args, outputPath)

	stderr, err := a.tc.run(args...)
	if err != nil {
		// A failed invocation can leave a truncated output file behind.
		os.Remove(outputPath)
		if stderr != "" {
			return fmt.Errorf("converting %s: %s: %w", inputPath, stderr, err)
		}
		return fmt.Errorf("converting %s: %w", inputPath, err)
	}
	return nil
}
