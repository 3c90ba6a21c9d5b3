package coordinator

import (
	"context"
)

// HandleMenu runs a background menu action. There is no caller to report to, so failures are
// logged only.
func (c *Coordinator) HandleMenu(ctx context.Context, action MenuAction) {
	logger := c.logger.With("action", string(action))

	switch action {
	case MenuQuit:
		c.Shutdown()
	case MenuShow:
		if err := c.ShowWindow(ctx); err != nil {
			logger.Error("failed to show window", "error", err)
		}
	case MenuCreateNow:
		path, err := c.CreateTodayFolder(ctx)
		if err != nil {
			logger.Error("failed to create folder", "error", err)
			return
		}
		logger.Info("folder ready", "path", path)
	case MenuOpenFolder:
		if err := c.OpenFolder(ctx, ""); err != nil {
			logger.Error("failed to open folder", "error", err)
		}
	default:
		logger.Warn("unknown menu action")
	}
}

// HandleSecondInstance brings the existing window forward when the user launches datedir
// again.
func (c *Coordinator) HandleSecondInstance(ctx context.Context) {
	if err := c.ShowWindow(ctx); err != nil {
		c.logger.Error("failed to show window for second instance", "error", err)
	}
}

// Startup runs the post-load part of the startup sequence: create today's folder when
// configured (failure is logged, not fatal), then hide the window.
func (c *Coordinator) Startup(ctx context.Context) {
	rec, err := c.shared.Get()
	if err != nil {
		c.logger.Error("settings unavailable at startup", "error", err)
	} else if rec.AutoCreateOnStartup {
		path, err := c.folders.CreateToday(rec)
		if err != nil {
			c.logger.Error("failed to create today's folder on startup", "error", err)
		} else {
			c.logger.Info("today's folder ready", "path", path)
		}
	}

	if err := c.HideWindow(ctx); err != nil {
		c.logger.Warn("failed to hide window on startup", "error", err)
	}
}

// Shutdown disables the auto-launch registration on a best-effort basis and terminates. It
// runs once no matter how many surfaces ask to quit.
func (c *Coordinator) Shutdown() {
	c.shutdownOnce.Do(func() {
		if c.autostart != nil {
			if err := c.autostart.Disable(); err != nil {
				c.logger.Warn("failed to disable autostart on exit", "error", err)
			} else {
				c.logger.Info("autostart disabled on exit")
			}
		}
		c.terminate()
	})
}
