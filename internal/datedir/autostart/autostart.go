// Package autostart registers datedir to launch at login.
package autostart

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/afero"

	"github.com/example/datedir/internal/datedir/storage"
)

// Launcher is the platform auto-launch registration.
type Launcher interface {
	Enable() error
	Disable() error
	IsEnabled() (bool, error)
}

// FileLauncher registers auto-launch by writing a file the session manager reads at login
// (an XDG desktop entry or a launchd agent).
type FileLauncher struct {
	storage *storage.Storage
	path    string
	content []byte
}

// NewFileLauncher creates a FileLauncher writing content to path when enabled.
func NewFileLauncher(fs afero.Fs, path string, content []byte) *FileLauncher {
	return &FileLauncher{storage: storage.New(fs), path: path, content: content}
}

// Path returns the registration file location.
func (l *FileLauncher) Path() string {
	return l.path
}

func (l *FileLauncher) Enable() error {
	if err := l.storage.WriteFileAtomic(l.path, l.content); err != nil {
		return fmt.Errorf("write autostart entry: %w", err)
	}
	return nil
}

func (l *FileLauncher) Disable() error {
	if err := l.storage.Remove(l.path); err != nil {
		return fmt.Errorf("remove autostart entry: %w", err)
	}
	return nil
}

func (l *FileLauncher) IsEnabled() (bool, error) {
	exists, err := l.storage.Exists(l.path)
	if err != nil {
		return false, fmt.Errorf("inspect autostart entry: %w", err)
	}
	return exists, nil
}

// Command returns the command line registered for login: the running executable followed by
// args.
func Command(args ...string) ([]string, error) {
	exe, err := os.Executable()
	if err != nil {
		return nil, fmt.Errorf("resolve executable: %w", err)
	}
	return append([]string{exe}, args...), nil
}

func desktopEntry(name string, command []string) []byte {
	quoted := make([]string, len(command))
	for i, arg := range command {
		quoted[i] = quoteDesktopArg(arg)
	}
	var b strings.Builder
	b.WriteString("[Desktop Entry]\n")
	b.WriteString("Type=Application\n")
	b.WriteString("Name=" + name + "\n")
	b.WriteString("Comment=Creates today's dated folder\n")
	b.WriteString("Exec=" + strings.Join(quoted, " ") + "\n")
	b.WriteString("Terminal=false\n")
	b.WriteString("X-GNOME-Autostart-enabled=true\n")
	return []byte(b.String())
}

// quoteDesktopArg quotes an Exec argument the way freedesktop Exec keys expect.
func quoteDesktopArg(arg string) string {
	if arg != "" && !strings.ContainsAny(arg, " \t\n\"'\\><~|&;$*?#()`") {
		return arg
	}
	replacer := strings.NewReplacer(`\`, `\\`, `"`, `\"`, "`", "\\`", `$`, `\$`)
	return `"` + replacer.Replace(arg) + `"`
}

func launchAgentPlist(label string, command []string) []byte {
	var b strings.Builder
	b.WriteString(`<?xml version="1.0" encoding="UTF-8"?>` + "\n")
	b.WriteString(`<!DOCTYPE plist PUBLIC "-//Apple//DTD PLIST 1.0//EN" "http://www.apple.com/DTDs/PropertyList-1.0.dtd">` + "\n")
	b.WriteString(`<plist version="1.0">` + "\n<dict>\n")
	b.WriteString("  <key>Label</key>\n  <string>" + xmlEscape(label) + "</string>\n")
	b.WriteString("  <key>ProgramArguments</key>\n  <array>\n")
	for _, arg := range command {
		b.WriteString("    <string>" + xmlEscape(arg) + "</string>\n")
	}
	b.WriteString("  </array>\n")
	b.WriteString("  <key>RunAtLoad</key>\n  <true/>\n")
	b.WriteString("</dict>\n</plist>\n")
	return []byte(b.String())
}

func xmlEscape(s string) string {
	return strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;", "'", "&apos;").Replace(s)
}
