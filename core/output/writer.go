// Package output writes a rendered document to a single named file or
// to a stream.
package output

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Writer writes rendered output.
type Writer struct {
	stdout io.Writer
}

// New creates a Writer that falls back to w when no path is given.
func New(w io.Writer) *Writer {
	return &Writer{stdout: w}
}

// Write stores data at path, or on the stream when path is "" or "-".
// A path without an extension gets ext appended. It returns where the
// data went.
func (w *Writer) Write(path string, data []byte, ext string) (string, error) {
	if path == "" || path == "-" {
		if _, err := w.stdout.Write(data); err != nil {
			return "", fmt.Errorf("writing output: %w", err)
		}
		return "-", nil
	}

	if filepath.Ext(path) == "" {
		path += ext
	}

	// Ensure the parent directory exists.
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return "", fmt.Errorf("creating directory %s: %w", dir, err)
		}
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing file %s: %w", path, err)
	}
	return path, nil
}
