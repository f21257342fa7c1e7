package document

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
)

var (
	// ErrExists is returned when the target file is already present.
	ErrExists = errors.New("file already exists")
	// ErrNoOutputDir is returned when the output directory is missing.
	ErrNoOutputDir = errors.New("output directory does not exist")
)

// CheckDir verifies that dir exists and is a directory.
func CheckDir(dir string) error {
	info, err := os.Stat(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("%w: %s", ErrNoOutputDir, dir)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", ErrNoOutputDir, dir)
	}
	return nil
}

// createFile opens a new file for writing, failing if it exists.
// Replaced in tests.
var createFile = func(path string) (io.WriteCloser, error) {
	return os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0o644) //nolint:gosec // documents are meant to be shared
}

// Write creates dir/name with body. An existing file is never overwritten;
// it yields ErrExists instead. A failed write removes the partial file so
// the next run writes it again.
func Write(dir, name string, body []byte) (string, error) {
	if err := CheckDir(dir); err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	f, err := createFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrExist) {
			return path, fmt.Errorf("%w: %s", ErrExists, path)
		}
		return path, fmt.Errorf("create %s: %w", path, err)
	}

	if _, err := f.Write(body); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return path, fmt.Errorf("write %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return path, fmt.Errorf("close %s: %w", path, err)
	}
	return path, nil
}
