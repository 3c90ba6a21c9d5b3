package validator

import (
	"strings"

	"github.com/spf13/afero"

	"github.com/example/datedir/internal/datedir/domain"
)

// probePattern names the sentinel file used by the write probe. A unique suffix keeps a stale
// sentinel from an interrupted probe from being mistaken for a permission failure.
const probePattern = ".datedir-write-probe-*"

// Validator checks that candidate base paths are usable for dated folders.
type Validator struct {
	fs afero.Fs
}

// New creates a new Validator instance.
func New(fs afero.Fs) *Validator {
	return &Validator{fs: fs}
}

// ValidatePath validates a candidate base directory.
//
// The function checks, in order:
//   - the path is non-empty and exists
//   - the path is a directory
//   - a sentinel file can be created and removed inside it (write probe)
//
// Missing paths and non-directories fail with domain.ErrInvalidPath; a failed probe fails with
// domain.ErrPermissionDenied. The probe leaves nothing behind on success or failure.
func (v *Validator) ValidatePath(candidate string) error {
	if strings.TrimSpace(candidate) == "" {
		return domain.InvalidPath("path is empty")
	}

	info, err := v.fs.Stat(candidate)
	if err != nil {
		return domain.Wrap(domain.KindInvalidPath, "path does not exist", err)
	}
	if !info.IsDir() {
		return domain.InvalidPath("path is not a directory")
	}

	probe, err := afero.TempFile(v.fs, candidate, probePattern)
	if err != nil {
		return domain.PermissionDenied("directory is not writable", err)
	}
	name := probe.Name()
	closeErr := probe.Close()
	removeErr := v.fs.Remove(name)
	if closeErr != nil {
		return domain.PermissionDenied("directory is not writable", closeErr)
	}
	if removeErr != nil {
		return domain.PermissionDenied("write probe could not be removed", removeErr)
	}
	return nil
}
