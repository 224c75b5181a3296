// Package files expands caller-supplied paths into the concrete file list
// handed to the commit flow.
package files

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	ghcerrors "ghcommit.dev/ghcommit/internal/errors"
)

// ExpandPaths resolves a mix of file and directory paths into a flat,
// de-duplicated list of files. Directories are walked recursively, skipping
// .git. A missing path fails the whole expansion.
func ExpandPaths(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var expanded []string

	add := func(path string) {
		path = filepath.Clean(path)
		if !seen[path] {
			seen[path] = true
			expanded = append(expanded, path)
		}
	}

	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			if os.IsNotExist(err) {
				return nil, ghcerrors.NewFileNotFoundError(path)
			}
			return nil, fmt.Errorf("failed to stat %s: %w", path, err)
		}

		if !info.IsDir() {
			add(path)
			continue
		}

		var dirFiles []string
		err = filepath.WalkDir(path, func(walkPath string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if d.Name() == ".git" {
					return filepath.SkipDir
				}
				return nil
			}
			if !d.Type().IsRegular() {
				return nil
			}
			dirFiles = append(dirFiles, walkPath)
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("failed to walk %s: %w", path, err)
		}

		// WalkDir is already lexical, but keep the contract explicit
		sort.Strings(dirFiles)
		for _, file := range dirFiles {
			add(file)
		}
	}

	return expanded, nil
}
