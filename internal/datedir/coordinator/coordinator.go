package coordinator

import (
	"context"
	"io"
	"log/slog"
	"sync"

	"github.com/example/datedir/internal/datedir/autostart"
	"github.com/example/datedir/internal/datedir/dialog"
	"github.com/example/datedir/internal/datedir/domain"
	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/settings"
)

// Options wires a Coordinator. Shared, Store and Folders are required.
type Options struct {
	Shared    *settings.Shared
	Store     *settings.Store
	Folders   *folder.Lifecycle
	Window    Window
	Autostart autostart.Launcher
	Picker    dialog.Picker
	// Terminate ends the process after Shutdown's cleanup.
	Terminate func()
	Logger    *slog.Logger
}

// Coordinator serialises both surfaces through the shared settings container.
//
// Operations that decide a folder path hold the container only for the read; the filesystem
// or external-process work happens after it is released. SaveSettings holds it across
// validate, persist and replace.
type Coordinator struct {
	shared    *settings.Shared
	store     *settings.Store
	folders   *folder.Lifecycle
	window    Window
	autostart autostart.Launcher
	picker    dialog.Picker
	terminate func()
	logger    *slog.Logger

	shutdownOnce sync.Once
}

var _ Foreground = (*Coordinator)(nil)

// New creates a Coordinator.
func New(opts Options) *Coordinator {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	terminate := opts.Terminate
	if terminate == nil {
		terminate = func() {}
	}
	return &Coordinator{
		shared:    opts.Shared,
		store:     opts.Store,
		folders:   opts.Folders,
		window:    opts.Window,
		autostart: opts.Autostart,
		picker:    opts.Picker,
		terminate: terminate,
		logger:    logger,
	}
}

func (c *Coordinator) CreateTodayFolder(ctx context.Context) (string, error) {
	rec, err := c.shared.Get()
	if err != nil {
		return "", err
	}
	return c.folders.CreateToday(rec)
}

func (c *Coordinator) OpenFolder(ctx context.Context, path string) error {
	if path == "" {
		rec, err := c.shared.Get()
		if err != nil {
			return err
		}
		path = c.folders.OpenTarget(rec)
	}
	return c.folders.Open(path)
}

func (c *Coordinator) Settings(ctx context.Context) (settings.Record, error) {
	return c.shared.Get()
}

// SaveSettings validates and persists rec, then makes it the live record. When auto_start
// changed, the launch registration is brought in line afterwards on a best-effort basis.
func (c *Coordinator) SaveSettings(ctx context.Context, rec settings.Record) error {
	var previous settings.Record
	err := c.shared.Update(func(current settings.Record) (settings.Record, error) {
		previous = current
		if err := c.store.Save(rec); err != nil {
			return settings.Record{}, err
		}
		return rec, nil
	})
	if err != nil {
		return err
	}

	if previous.AutoStart != rec.AutoStart && c.autostart != nil {
		if err := c.setAutostart(rec.AutoStart); err != nil {
			c.logger.Warn("failed to sync autostart registration",
				"enabled", rec.AutoStart,
				"error", err)
		}
	}
	return nil
}

func (c *Coordinator) ValidateFolderPath(ctx context.Context, path string) error {
	return c.folders.ValidatePath(path)
}

func (c *Coordinator) TodayStatus(ctx context.Context) (folder.Status, error) {
	rec, err := c.shared.Get()
	if err != nil {
		return folder.Status{}, err
	}
	return c.folders.TodayStatus(rec), nil
}

func (c *Coordinator) ShowWindow(ctx context.Context) error {
	if c.window == nil {
		return nil
	}
	if err := c.window.Show(); err != nil {
		return domain.Configuration("cannot show main window", err)
	}
	return nil
}

func (c *Coordinator) HideWindow(ctx context.Context) error {
	if c.window == nil {
		return nil
	}
	if err := c.window.Hide(); err != nil {
		return domain.Configuration("cannot hide main window", err)
	}
	return nil
}

// Quit runs the shutdown sequence. The process is expected to terminate afterwards.
func (c *Coordinator) Quit(ctx context.Context) error {
	c.Shutdown()
	return nil
}

func (c *Coordinator) EnableAutostart(ctx context.Context) error {
	return c.setAutostart(true)
}

func (c *Coordinator) DisableAutostart(ctx context.Context) error {
	return c.setAutostart(false)
}

func (c *Coordinator) AutostartEnabled(ctx context.Context) (bool, error) {
	if c.autostart == nil {
		return false, domain.Configuration("autostart is unavailable", nil)
	}
	enabled, err := c.autostart.IsEnabled()
	if err != nil {
		return false, domain.Configuration("cannot query autostart", err)
	}
	return enabled, nil
}

func (c *Coordinator) setAutostart(enabled bool) error {
	if c.autostart == nil {
		return domain.Configuration("autostart is unavailable", nil)
	}
	if enabled {
		if err := c.autostart.Enable(); err != nil {
			return domain.Configuration("cannot enable autostart", err)
		}
		return nil
	}
	if err := c.autostart.Disable(); err != nil {
		return domain.Configuration("cannot disable autostart", err)
	}
	return nil
}

// SelectFolder reads the starting directory, releases the settings, then blocks on the picker.
func (c *Coordinator) SelectFolder(ctx context.Context) (string, bool, error) {
	if c.picker == nil {
		return "", false, domain.Configuration("folder dialog is unavailable", nil)
	}
	rec, err := c.shared.Get()
	if err != nil {
		return "", false, err
	}
	path, ok, err := c.picker.PickFolder(ctx, rec.FolderPath)
	if err != nil {
		return "", false, domain.Configuration("folder dialog failed", err)
	}
	return path, ok, nil
}
