package autostart

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/afero"
)

func TestFileLauncherLifecycle(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := "/home/test/.config/autostart/datedir.desktop"
	l := NewFileLauncher(fs, path, []byte("entry"))

	enabled, err := l.IsEnabled()
	if err != nil || enabled {
		t.Fatalf("expected disabled initially, got %v %v", enabled, err)
	}

	if err := l.Enable(); err != nil {
		t.Fatalf("Enable: %v", err)
	}
	data, err := afero.ReadFile(fs, path)
	if err != nil || string(data) != "entry" {
		t.Fatalf("unexpected entry %q %v", data, err)
	}
	if enabled, _ := l.IsEnabled(); !enabled {
		t.Fatal("expected enabled after Enable")
	}

	if err := l.Disable(); err != nil {
		t.Fatalf("Disable: %v", err)
	}
	if enabled, _ := l.IsEnabled(); enabled {
		t.Fatal("expected disabled after Disable")
	}
	if err := l.Disable(); err != nil {
		t.Fatalf("Disable should be idempotent: %v", err)
	}
}

func TestFileLauncherEnableFailure(t *testing.T) {
	l := NewFileLauncher(afero.NewReadOnlyFs(afero.NewMemMapFs()), "/x/datedir.desktop", []byte("entry"))
	if err := l.Enable(); err == nil {
		t.Fatal("expected error on read-only filesystem")
	}
}

func TestDesktopEntry(t *testing.T) {
	entry := string(desktopEntry("datedir", []string{"/opt/my apps/datedir", "run"}))

	for _, want := range []string{
		"[Desktop Entry]\n",
		"Type=Application\n",
		"Name=datedir\n",
		`Exec="/opt/my apps/datedir" run` + "\n",
	} {
		if !strings.Contains(entry, want) {
			t.Errorf("desktop entry missing %q:\n%s", want, entry)
		}
	}
}

func TestQuoteDesktopArg(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"run", "run"},
		{"/usr/bin/datedir", "/usr/bin/datedir"},
		{"has space", `"has space"`},
		{`a"b`, `"a\"b"`},
		{"$HOME", `"\$HOME"`},
		{"", `""`},
	}
	for _, tt := range tests {
		if got := quoteDesktopArg(tt.in); got != tt.want {
			t.Errorf("quoteDesktopArg(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestLaunchAgentPlist(t *testing.T) {
	plist := string(launchAgentPlist("io.github.datedir", []string{"/Apps/a&b/datedir", "run"}))

	for _, want := range []string{
		"<string>io.github.datedir</string>",
		"<string>/Apps/a&amp;b/datedir</string>",
		"<string>run</string>",
		"<key>RunAtLoad</key>",
	} {
		if !strings.Contains(plist, want) {
			t.Errorf("plist missing %q:\n%s", want, plist)
		}
	}
}

func TestCommand(t *testing.T) {
	cmd, err := Command("run")
	if err != nil {
		t.Fatalf("Command: %v", err)
	}
	if len(cmd) != 2 || cmd[1] != "run" || !filepath.IsAbs(cmd[0]) {
		t.Fatalf("unexpected command %v", cmd)
	}
}
