// Package workspace resolves and validates the filesystem roots a
// scenery library is built from: the X-Plane installation root, the
// active package, and the ordered list of custom packages.
package workspace

import (
	"fmt"
	"os"
	"path/filepath"
)

// NormalizeRepoPath resolves path to an absolute path, defaulting to
// the current directory when path is empty.
func NormalizeRepoPath(path string) (string, error) {
	if path == "" {
		path = "."
	}
	return filepath.Abs(path)
}

// ResolveRoot resolves path to an absolute directory and confirms it
// exists on disk. It is used for xp_root, the active package, and
// every entry of the custom-package list, all of which must be real
// directories before the builder starts walking them.
func ResolveRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve path %s: %w", path, err)
	}
	info, err := os.Stat(abs)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", abs, err)
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%s is not a directory", abs)
	}
	return abs, nil
}

// ResolveRoots applies ResolveRoot to every entry of paths, preserving
// order, and fails fast on the first unusable entry.
func ResolveRoots(paths []string) ([]string, error) {
	resolved := make([]string, 0, len(paths))
	for _, path := range paths {
		root, err := ResolveRoot(path)
		if err != nil {
			return nil, err
		}
		resolved = append(resolved, root)
	}
	return resolved, nil
}
