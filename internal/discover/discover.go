// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package discover enumerates convertible source files under an input root.
package discover

import (
	"fmt"
	"io/fs"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks the tree rooted at inputRoot and returns every regular file
// whose name ends with one of the given suffixes. Suffixes are compared as
// literal strings, so ".heic" does not match "photo.HEIC"; callers list each
// wanted casing explicitly. A file matching several listed suffixes is
// returned once. The result is sorted lexicographically so downstream task
// submission order is deterministic. Zero matches is not an error, and an
// unreadable entry somewhere in the tree is skipped rather than aborting
// the traversal.
func Discover(inputRoot string, extensions []string) ([]string, error) {
	if len(extensions) == 0 {
		return nil, fmt.Errorf("no extensions given for discovery under %s", inputRoot)
	}

	seen := make(map[string]bool)
	var files []string

	err := filepath.WalkDir(inputRoot, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// One unreadable entry must not sink the whole run; skip it
			// and keep walking the rest of the tree.
			if d != nil && d.IsDir() {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			return nil
		}
		for _, ext := range extensions {
			if strings.HasSuffix(d.Name(), ext) {
				if !seen[path] {
					seen[path] = true
					files = append(files, path)
				}
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", inputRoot, err)
	}

	sort.Strings(files)
	return files, nil
}
