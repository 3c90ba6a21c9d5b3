package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Storage provides low-level file operations on top of an afero filesystem.
type Storage struct {
	fs afero.Fs
}

// New creates a new Storage instance.
func New(fs afero.Fs) *Storage {
	return &Storage{fs: fs}
}

// FileSystem returns the underlying filesystem.
func (s *Storage) FileSystem() afero.Fs {
	return s.fs
}

// WriteFileAtomic writes data to a temporary file next to path and renames it into place,
// so readers observe either the old or the new content.
func (s *Storage) WriteFileAtomic(path string, data []byte) (err error) {
	dir := filepath.Dir(path)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}

	tmp, err := afero.TempFile(s.fs, dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	_, writeErr := tmp.Write(data)
	closeErr := tmp.Close()

	if writeErr != nil || closeErr != nil {
		s.fs.Remove(tmpName)
		if writeErr != nil {
			return fmt.Errorf("write data: %w", writeErr)
		}
		return fmt.Errorf("close temp file: %w", closeErr)
	}

	if err := s.fs.Chmod(tmpName, 0o644); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}

	// rename(2) replaces the destination atomically on the same filesystem
	if err := s.fs.Rename(tmpName, path); err != nil {
		s.fs.Remove(tmpName)
		return fmt.Errorf("atomic rename: %w", err)
	}

	return nil
}

// ReadFile reads the entire file.
func (s *Storage) ReadFile(path string) ([]byte, error) {
	return afero.ReadFile(s.fs, path)
}

// Exists checks if a path exists.
func (s *Storage) Exists(path string) (bool, error) {
	return afero.Exists(s.fs, path)
}

// IsDir reports whether path exists and is a directory. Inspection errors yield false.
func (s *Storage) IsDir(path string) bool {
	info, err := s.fs.Stat(path)
	if err != nil {
		return false
	}
	return info.IsDir()
}

// Stat returns file information.
func (s *Storage) Stat(path string) (os.FileInfo, error) {
	return s.fs.Stat(path)
}

// MkdirAll creates a directory chain with the given permissions.
func (s *Storage) MkdirAll(path string, perm os.FileMode) error {
	return s.fs.MkdirAll(path, perm)
}

// Remove deletes a file. A missing file is not an error.
func (s *Storage) Remove(path string) error {
	if err := s.fs.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
