// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pathmap derives output PNG paths from discovered source files,
// re-rooting each file's position under the output directory.
package pathmap

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// MapOutput returns filePath's location re-rooted from inputRoot to
// outputRoot, with the file extension replaced by ".png". The source
// extension's casing does not matter; the output extension is always
// lower-case. Discovery only hands over paths inside the input root, so a
// file that escapes it indicates a caller bug and is rejected.
func MapOutput(inputRoot, outputRoot, filePath string) (string, error) {
	rel, err := filepath.Rel(inputRoot, filePath)
	if err != nil {
		return "", fmt.Errorf("relativizing %s against %s: %w", filePath, inputRoot, err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("file %s is not under input root %s", filePath, inputRoot)
	}

	rel = strings.TrimSuffix(rel, filepath.Ext(rel)) + ".png"
	return filepath.Join(outputRoot, rel), nil
}

// EnsureParents creates every missing intermediate directory for outputPath.
// Idempotent: pre-existing directories are not an error.
func EnsureParents(outputPath string) error {
	dir := filepath.Dir(outputPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating output directory %s: %w", dir, err)
	}
	return nil
}
