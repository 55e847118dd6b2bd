// Package store reads raw contact files and writes exports to the filesystem.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sentinel errors for caller-checkable conditions.
var (
	ErrNotFound = errors.New("store: file not found")
	ErrExists   = errors.New("store: file already exists")
	ErrNoPath   = errors.New("store: empty path")
)

// ReadText returns the contents of path as text.
// A missing file yields an error wrapping ErrNotFound.
func ReadText(path string) (string, error) {
	if path == "" {
		return "", ErrNoPath
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return "", fmt.Errorf("store: reading %s: %w", path, err)
	}
	return string(data), nil
}

// WriteOptions controls WriteFile.
type WriteOptions struct {
	Overwrite bool // Replace an existing file instead of failing with ErrExists.
}

// WriteFile creates path (and its parent directory) and fills it from fill.
// Content is buffered until fill returns, so a failed fill writes nothing.
func WriteFile(path string, opts WriteOptions, fill func(io.Writer) error) error {
	if path == "" {
		return ErrNoPath
	}
	if !opts.Overwrite {
		if _, err := os.Stat(path); err == nil {
			return fmt.Errorf("%w: %s", ErrExists, path)
		}
	}

	var buf bytes.Buffer
	if err := fill(&buf); err != nil {
		return fmt.Errorf("store: writing %s: %w", path, err)
	}

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("store: creating directory %s: %w", dir, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("store: writing %s: %w", path, err)
	}
	return nil
}
