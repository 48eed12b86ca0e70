// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package vault enumerates the local Markdown files to import.
package vault

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// List returns the files under root whose base name matches glob, in
// lexicographically sorted full-path order. The walk is recursive;
// directories themselves never match. When maxFiles is greater than zero
// and more files match, the first maxFiles in sorted order are returned.
// A nonexistent root is an error.
func List(root, glob string, maxFiles int) ([]string, error) {
	info, err := os.Stat(root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("vault path does not exist: %s", root)
		}
		return nil, fmt.Errorf("stat vault path: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("vault path is not a directory: %s", root)
	}

	var files []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		ok, err := filepath.Match(glob, d.Name())
		if err != nil {
			return fmt.Errorf("glob pattern %q: %w", glob, err)
		}
		if ok {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", root, err)
	}

	sort.Strings(files)
	if maxFiles > 0 && len(files) > maxFiles {
		files = files[:maxFiles]
	}
	return files, nil
}
