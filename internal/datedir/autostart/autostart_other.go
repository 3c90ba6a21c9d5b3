//go:build !windows && !darwin

package autostart

import (
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/spf13/afero"
)

// New returns the XDG autostart registration for command.
func New(fs afero.Fs, command []string) (Launcher, error) {
	path := filepath.Join(xdg.ConfigHome, "autostart", "datedir.desktop")
	return NewFileLauncher(fs, path, desktopEntry("datedir", command)), nil
}
