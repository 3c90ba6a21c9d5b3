package paths

import (
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
)

// Directory and file name constants for datedir state.
const (
	AppName          = "datedir"
	SettingsFileName = "settings.json"
	SocketFileName   = "datedir.sock"
	LockFileName     = "datedir.lock"
)

// PathBuilder provides methods to construct datedir paths relative to a config and runtime directory.
type PathBuilder struct {
	configDir  string
	runtimeDir string
}

// New creates a new PathBuilder. Empty arguments fall back to the XDG locations.
func New(configDir, runtimeDir string) *PathBuilder {
	if strings.TrimSpace(configDir) == "" {
		configDir = DefaultConfigDir()
	}
	if strings.TrimSpace(runtimeDir) == "" {
		runtimeDir = DefaultRuntimeDir()
	}
	return &PathBuilder{configDir: configDir, runtimeDir: runtimeDir}
}

// ConfigDir returns the per-user configuration directory.
func (p *PathBuilder) ConfigDir() string {
	return p.configDir
}

// RuntimeDir returns the directory holding the control socket and the instance lock.
func (p *PathBuilder) RuntimeDir() string {
	return p.runtimeDir
}

// SettingsPath returns the path to the persisted settings record.
func (p *PathBuilder) SettingsPath() string {
	return filepath.Join(p.configDir, SettingsFileName)
}

// SocketPath returns the path of the daemon's control socket.
func (p *PathBuilder) SocketPath() string {
	return filepath.Join(p.runtimeDir, SocketFileName)
}

// LockPath returns the path of the single-instance lock file.
func (p *PathBuilder) LockPath() string {
	return filepath.Join(p.runtimeDir, LockFileName)
}

func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

func DefaultRuntimeDir() string {
	return filepath.Join(xdg.RuntimeDir, AppName)
}

// DesktopDir returns the user's desktop directory, or "." when the platform does not report one.
func DesktopDir() string {
	if desktop := strings.TrimSpace(xdg.UserDirs.Desktop); desktop != "" {
		return desktop
	}
	return "."
}
