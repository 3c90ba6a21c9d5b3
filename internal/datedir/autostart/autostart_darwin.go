package autostart

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

const launchAgentLabel = "io.github.datedir"

// New returns the launchd agent registration for command.
func New(fs afero.Fs, command []string) (Launcher, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}
	path := filepath.Join(home, "Library", "LaunchAgents", launchAgentLabel+".plist")
	return NewFileLauncher(fs, path, launchAgentPlist(launchAgentLabel, command)), nil
}
