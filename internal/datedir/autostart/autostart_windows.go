package autostart

import (
	"errors"
	"fmt"
	"strings"
	"syscall"

	"github.com/spf13/afero"
	"golang.org/x/sys/windows/registry"
)

const (
	runKeyPath   = `Software\Microsoft\Windows\CurrentVersion\Run`
	runValueName = "datedir"
)

type registryLauncher struct {
	command string
}

// New returns the per-user Run key registration for command. fs is unused on Windows.
func New(_ afero.Fs, command []string) (Launcher, error) {
	quoted := make([]string, len(command))
	for i, arg := range command {
		quoted[i] = syscall.EscapeArg(arg)
	}
	return &registryLauncher{command: strings.Join(quoted, " ")}, nil
}

func (l *registryLauncher) Enable() error {
	key, _, err := registry.CreateKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		return fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()
	if err := key.SetStringValue(runValueName, l.command); err != nil {
		return fmt.Errorf("write run value: %w", err)
	}
	return nil
}

func (l *registryLauncher) Disable() error {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.SET_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()
	if err := key.DeleteValue(runValueName); err != nil && !errors.Is(err, registry.ErrNotExist) {
		return fmt.Errorf("delete run value: %w", err)
	}
	return nil
}

func (l *registryLauncher) IsEnabled() (bool, error) {
	key, err := registry.OpenKey(registry.CURRENT_USER, runKeyPath, registry.QUERY_VALUE)
	if err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("open run key: %w", err)
	}
	defer key.Close()
	if _, _, err := key.GetStringValue(runValueName); err != nil {
		if errors.Is(err, registry.ErrNotExist) {
			return false, nil
		}
		return false, fmt.Errorf("read run value: %w", err)
	}
	return true, nil
}
