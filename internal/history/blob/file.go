package blob

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
)

// File persists the blob as a single file on disk, the CLI analog of a
// browser's local storage.
type File struct {
	path string
}

// NewFile creates a file-backed blob store at path.
func NewFile(path string) *File {
	return &File{path: path}
}

// DefaultFilePath returns the conventional history location under the
// user's config directory.
func DefaultFilePath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	return filepath.Join(dir, "linksnap", "history.json"), nil
}

func (f *File) Get(_ context.Context) ([]byte, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return data, nil
}

func (f *File) Set(_ context.Context, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(f.path), 0o755); err != nil {
		return err
	}

	return os.WriteFile(f.path, data, 0o600)
}

func (f *File) Clear(_ context.Context) error {
	err := os.Remove(f.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	return err
}
