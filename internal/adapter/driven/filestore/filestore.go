// Package filestore persists encrypted database bytes on the local filesystem.
package filestore

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/natefinch/atomic"

	"github.com/ericfisherdev/pwdb/internal/domain/port/driven"
)

// FilePermission restricts database files to their owner.
const FilePermission fs.FileMode = 0o600

// Compile-time interface satisfaction check.
var _ driven.EnvelopeFile = (*Store)(nil)

// Store is the filesystem implementation of the EnvelopeFile port.
// It performs no locking: two processes saving the same path race, and the
// last rename wins.
type Store struct{}

// New creates a new Store.
func New() *Store {
	return &Store{}
}

// Create writes data to a new file at path with FilePermission. The file is
// created exclusively, so an existing file is never truncated. A partially
// written file is removed before returning an error.
func (s *Store) Create(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, FilePermission)
	if errors.Is(err, fs.ErrExist) {
		return fmt.Errorf("create %q: %w", path, driven.ErrAlreadyExists)
	}
	if err != nil {
		return fmt.Errorf("create %q: %w: %v", path, driven.ErrWriteFailure, err)
	}

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("write %q: %w: %v", path, driven.ErrWriteFailure, err)
	}
	if err := f.Sync(); err != nil {
		_ = f.Close()
		_ = os.Remove(path)
		return fmt.Errorf("sync %q: %w: %v", path, driven.ErrWriteFailure, err)
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(path)
		return fmt.Errorf("close %q: %w: %v", path, driven.ErrWriteFailure, err)
	}
	return nil
}

// Read returns the contents of the file at path.
func (s *Store) Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("read %q: %w", path, driven.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("read %q: %w", path, err)
	}
	return data, nil
}

// Replace writes data to a temporary file beside path and renames it over
// path once it has been synced. On failure the previous file is untouched.
func (s *Store) Replace(path string, data []byte) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("replace %q: %w: %v", path, driven.ErrWriteFailure, err)
	}
	return nil
}
