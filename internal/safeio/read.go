// Package safeio reads config files and library.txt manifests through
// an os.Root jail with a size ceiling, so a symlink escape or a
// runaway file (a misauthored manifest, a config pointed at a device
// node) can't pull arbitrary or unbounded data into the process.
package safeio

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// MaxFileSize bounds a single config file or library.txt manifest.
// X-Plane manifests are hand-authored directive lists; a real one
// never approaches this, so tripping it means the path is wrong, not
// that the ceiling needs raising.
const MaxFileSize = 32 << 20 // 32 MiB

// ReadFileUnder reads targetPath only if it resolves under rootDir,
// and fails if the file exceeds MaxFileSize.
func ReadFileUnder(rootDir, targetPath string) ([]byte, error) {
	rootAbs, err := filepath.Abs(rootDir)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}

	rel, err := filepath.Rel(rootAbs, targetAbs)
	if err != nil {
		return nil, fmt.Errorf("compute relative path: %w", err)
	}
	if rel == ".." || strings.HasPrefix(rel, ".."+string(os.PathSeparator)) {
		return nil, fmt.Errorf("path escapes root: %s", targetPath)
	}

	root, err := os.OpenRoot(rootAbs)
	if err != nil {
		return nil, fmt.Errorf("open root: %w", err)
	}
	defer root.Close()

	rel = filepath.Clean(rel)
	file, err := root.Open(rel)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readBounded(file)
}

// ReadFile reads the exact targetPath by opening its parent directory
// as a root, and fails if the file exceeds MaxFileSize.
func ReadFile(targetPath string) ([]byte, error) {
	targetAbs, err := filepath.Abs(targetPath)
	if err != nil {
		return nil, fmt.Errorf("resolve target path: %w", err)
	}
	parentDir := filepath.Dir(targetAbs)
	fileName := filepath.Base(targetAbs)

	root, err := os.OpenRoot(parentDir)
	if err != nil {
		return nil, fmt.Errorf("open parent root: %w", err)
	}
	defer root.Close()

	file, err := root.Open(fileName)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	return readBounded(file)
}

// readBounded reads file up to MaxFileSize+1 bytes, erroring if the
// extra byte is reached so truncation never masquerades as success.
func readBounded(file *os.File) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(file, MaxFileSize+1))
	if err != nil {
		return nil, err
	}
	if len(data) > MaxFileSize {
		return nil, fmt.Errorf("file exceeds %d byte limit: %s", MaxFileSize, file.Name())
	}
	return data, nil
}
