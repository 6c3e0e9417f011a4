// Package fsutil holds filesystem helpers shared by the config store and the
// downloader.
package fsutil

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// TempPattern is the name pattern of in-flight temporary files.
const TempPattern = ".tmp-*"

// AtomicWrite streams r into path using a temp file + rename strategy, so
// path is never observed partially written.
//
// The operation works as follows:
//  1. Copy r into a temporary file in the same directory
//  2. Sync the temp file to disk (fsync)
//  3. Rename the temp file to the target path
//
// The temporary file is removed on every failure path. It returns the number
// of bytes written.
func AtomicWrite(fs afero.Fs, path string, r io.Reader, perm os.FileMode) (int64, error) {
	dir := filepath.Dir(path)
	if err := fs.MkdirAll(dir, 0755); err != nil {
		return 0, fmt.Errorf("failed to ensure parent directory: %w", err)
	}

	tmpFile, err := afero.TempFile(fs, dir, TempPattern)
	if err != nil {
		return 0, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()

	success := false
	defer func() {
		if !success {
			_ = tmpFile.Close()
			_ = fs.Remove(tmpPath)
		}
	}()

	n, err := io.Copy(tmpFile, r)
	if err != nil {
		return n, fmt.Errorf("failed to write to temp file: %w", err)
	}

	if err := tmpFile.Sync(); err != nil {
		return n, fmt.Errorf("failed to sync temp file: %w", err)
	}

	if err := tmpFile.Close(); err != nil {
		return n, fmt.Errorf("failed to close temp file: %w", err)
	}

	if err := fs.Chmod(tmpPath, perm); err != nil {
		return n, fmt.Errorf("failed to set permissions on temp file: %w", err)
	}

	if err := fs.Rename(tmpPath, path); err != nil {
		return n, fmt.Errorf("failed to rename temp file to target: %w", err)
	}

	success = true
	return n, nil
}

// AtomicWriteBytes is AtomicWrite for an in-memory payload.
func AtomicWriteBytes(fs afero.Fs, path string, data []byte, perm os.FileMode) error {
	_, err := AtomicWrite(fs, path, bytes.NewReader(data), perm)
	return err
}
