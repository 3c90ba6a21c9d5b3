// Package watch streams today's folder status as the base directory changes.
package watch

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fsnotify/fsnotify"

	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/settings"
)

// Source answers status queries, either in-process or through the control API.
type Source interface {
	Settings(ctx context.Context) (settings.Record, error)
	TodayStatus(ctx context.Context) (folder.Status, error)
}

// Watcher re-queries the status whenever an entry in the base directory changes.
type Watcher struct {
	source Source
	logger *slog.Logger
}

// New creates a Watcher.
func New(source Source, logger *slog.Logger) *Watcher {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Watcher{source: source, logger: logger}
}

// Run emits the current status, then every change to it, until ctx is done.
func (w *Watcher) Run(ctx context.Context, emit func(folder.Status)) error {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	base, err := w.follow(ctx, fsw, "")
	if err != nil {
		return err
	}

	last, err := w.source.TodayStatus(ctx)
	if err != nil {
		return err
	}
	emit(last)

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Remove) && !ev.Has(fsnotify.Rename) {
				continue
			}
			w.logger.Debug("base directory changed", "path", ev.Name, "op", ev.Op.String())

			if base, err = w.follow(ctx, fsw, base); err != nil {
				return err
			}
			status, err := w.source.TodayStatus(ctx)
			if err != nil {
				w.logger.Warn("status query failed", "error", err)
				continue
			}
			if status != last {
				last = status
				emit(status)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// follow makes sure the watcher tracks the current base directory.
func (w *Watcher) follow(ctx context.Context, fsw *fsnotify.Watcher, current string) (string, error) {
	rec, err := w.source.Settings(ctx)
	if err != nil {
		return current, err
	}
	if rec.FolderPath == current {
		return current, nil
	}
	if current != "" {
		_ = fsw.Remove(current)
	}
	if err := fsw.Add(rec.FolderPath); err != nil {
		return current, fmt.Errorf("watch %s: %w", rec.FolderPath, err)
	}
	w.logger.Debug("watching base directory", "path", rec.FolderPath)
	return rec.FolderPath, nil
}
