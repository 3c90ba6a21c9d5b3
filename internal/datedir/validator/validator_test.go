package validator

// Tests for base path validation.
//
// The write probe must leave the directory exactly as it found it, so every
// accepting case also checks for residue.

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/spf13/afero"

	"github.com/example/datedir/internal/datedir/domain"
)

func TestValidatePath_AcceptsWritableDirectory(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := fs.MkdirAll("/data/work", 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}
	if err := afero.WriteFile(fs, "/data/work/notes.txt", []byte("keep"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	v := New(fs)
	if err := v.ValidatePath("/data/work"); err != nil {
		t.Fatalf("expected valid directory, got %v", err)
	}

	entries, err := afero.ReadDir(fs, "/data/work")
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 1 || entries[0].Name() != "notes.txt" {
		t.Fatalf("probe left residue: %v", entries)
	}
}

func TestValidatePath_Rejections(t *testing.T) {
	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "/data/file.txt", []byte("x"), 0o644); err != nil {
		t.Fatalf("setup: %v", err)
	}

	tests := []struct {
		name      string
		candidate string
		want      error
	}{
		{"empty", "", domain.ErrInvalidPath},
		{"whitespace", "   ", domain.ErrInvalidPath},
		{"nonexistent", "/data/missing", domain.ErrInvalidPath},
		{"regular file", "/data/file.txt", domain.ErrInvalidPath},
	}

	v := New(fs)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidatePath(tt.candidate)
			if !errors.Is(err, tt.want) {
				t.Fatalf("ValidatePath(%q) = %v, want %v", tt.candidate, err, tt.want)
			}
		})
	}
}

func TestValidatePath_ReadOnlyDirectory(t *testing.T) {
	base := afero.NewMemMapFs()
	if err := base.MkdirAll("/data/locked", 0o755); err != nil {
		t.Fatalf("setup: %v", err)
	}

	v := New(afero.NewReadOnlyFs(base))
	err := v.ValidatePath("/data/locked")
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}

	entries, _ := afero.ReadDir(base, "/data/locked")
	if len(entries) != 0 {
		t.Fatalf("read-only probe left residue: %v", entries)
	}
}

func TestValidatePath_OsReadOnlyDirectory(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory mode bits are not enforced for this user")
	}
	dir := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(dir, 0o555); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0o755) })

	err := New(afero.NewOsFs()).ValidatePath(dir)
	if !errors.Is(err, domain.ErrPermissionDenied) {
		t.Fatalf("expected ErrPermissionDenied, got %v", err)
	}
}

func TestValidatePath_OsWritableDirectoryUnmodified(t *testing.T) {
	dir := t.TempDir()

	if err := New(afero.NewOsFs()).ValidatePath(dir); err != nil {
		t.Fatalf("expected valid, got %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("readdir: %v", err)
	}
	if len(entries) != 0 {
		t.Fatalf("expected empty directory after probe, found %d entries", len(entries))
	}
}
