// Package app wires the datedir object graph and runs the daemon.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"

	"github.com/example/datedir/internal/datedir/autostart"
	"github.com/example/datedir/internal/datedir/config"
	"github.com/example/datedir/internal/datedir/control"
	"github.com/example/datedir/internal/datedir/coordinator"
	"github.com/example/datedir/internal/datedir/dialog"
	"github.com/example/datedir/internal/datedir/folder"
	"github.com/example/datedir/internal/datedir/instance"
	"github.com/example/datedir/internal/datedir/logging"
	"github.com/example/datedir/internal/datedir/opener"
	"github.com/example/datedir/internal/datedir/paths"
	"github.com/example/datedir/internal/datedir/settings"
	"github.com/example/datedir/internal/datedir/storage"
	"github.com/example/datedir/internal/datedir/tray"
	"github.com/example/datedir/internal/datedir/validator"
)

// Graph is the in-process object graph behind both surfaces.
type Graph struct {
	Paths       *paths.PathBuilder
	Store       *settings.Store
	Shared      *settings.Shared
	Folders     *folder.Lifecycle
	Window      *coordinator.HeadlessWindow
	Coordinator *coordinator.Coordinator
}

// Build loads the settings and assembles the graph on fs. terminate is called by the quit
// sequence.
func Build(fs afero.Fs, pb *paths.PathBuilder, logger *slog.Logger, terminate func()) (*Graph, error) {
	if logger == nil {
		logger = logging.Discard()
	}
	st := storage.New(fs)
	v := validator.New(fs)

	store := settings.NewStore(st, v, pb.SettingsPath(), settings.Default(paths.DesktopDir()), logger)
	rec, err := store.Load()
	if err != nil {
		return nil, err
	}

	var launcher autostart.Launcher
	if command, err := autostart.Command("run"); err != nil {
		logger.Warn("autostart unavailable", "error", err)
	} else if launcher, err = autostart.New(fs, command); err != nil {
		logger.Warn("autostart unavailable", "error", err)
		launcher = nil
	}

	g := &Graph{
		Paths:   pb,
		Store:   store,
		Shared:  settings.NewShared(rec),
		Folders: folder.New(st, v, opener.New(), logger),
		Window:  coordinator.NewHeadlessWindow(logger),
	}
	g.Coordinator = coordinator.New(coordinator.Options{
		Shared:    g.Shared,
		Store:     store,
		Folders:   g.Folders,
		Window:    g.Window,
		Autostart: launcher,
		Picker:    dialog.NewZenity(),
		Terminate: terminate,
		Logger:    logger,
	})
	return g, nil
}

// RunDaemon runs the background process until it is asked to quit or ctx ends. When another
// daemon already holds the instance lock, RunDaemon asks it to show its window and returns nil.
func RunDaemon(ctx context.Context, opts config.Options, logger *slog.Logger) error {
	if logger == nil {
		logger = logging.Discard()
	}
	pb := paths.New(opts.ConfigDir, opts.RuntimeDir)

	lock, err := instance.Acquire(pb.LockPath())
	if errors.Is(err, instance.ErrAlreadyRunning) {
		return handOff(ctx, pb, logger)
	}
	if err != nil {
		return err
	}
	defer func() {
		if err := lock.Release(); err != nil {
			logger.Warn("failed to release instance lock", "error", err)
		}
	}()

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	graph, err := Build(afero.NewOsFs(), pb, logger, cancel)
	if err != nil {
		return fmt.Errorf("load settings: %w", err)
	}

	ln, err := control.Listen(pb.SocketPath())
	if err != nil {
		return err
	}
	server := control.NewServer(graph.Coordinator, control.ServerOptions{
		Workers: opts.Workers,
		Logger:  logger,
	})

	group, gctx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return server.Serve(gctx, ln)
	})

	graph.Coordinator.Startup(gctx)
	logger.Info("datedir running",
		"pid", instance.Owner(pb.LockPath()),
		"settings", pb.SettingsPath(),
		"socket", pb.SocketPath())

	if opts.NoTray {
		<-gctx.Done()
	} else {
		tray.New(graph.Coordinator, logger).Run(gctx, nil)
	}
	cancel()

	if err := group.Wait(); err != nil {
		return err
	}
	logger.Info("datedir stopped")
	return nil
}

func handOff(ctx context.Context, pb *paths.PathBuilder, logger *slog.Logger) error {
	logger.Info("datedir is already running; showing its window",
		"pid", instance.Owner(pb.LockPath()))
	if err := control.NewClient(pb.SocketPath()).ShowWindow(ctx); err != nil {
		return fmt.Errorf("contact running instance: %w", err)
	}
	return nil
}
