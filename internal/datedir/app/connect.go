package app

import (
	"context"
	"log/slog"

	"github.com/spf13/afero"

	"github.com/example/datedir/internal/datedir/config"
	"github.com/example/datedir/internal/datedir/control"
	"github.com/example/datedir/internal/datedir/coordinator"
	"github.com/example/datedir/internal/datedir/logging"
	"github.com/example/datedir/internal/datedir/paths"
)

// Connect returns the daemon's Foreground when one is running, or an in-process coordinator
// otherwise. remote reports which one was chosen.
func Connect(ctx context.Context, opts config.Options, logger *slog.Logger) (fg coordinator.Foreground, remote bool, err error) {
	if logger == nil {
		logger = logging.Discard()
	}
	pb := paths.New(opts.ConfigDir, opts.RuntimeDir)

	if !opts.Local {
		client := control.NewClient(pb.SocketPath())
		err := client.Ping(ctx)
		if err == nil {
			logger.Debug("using running daemon", "socket", pb.SocketPath())
			return client, true, nil
		}
		if !control.IsUnavailable(err) {
			return nil, false, err
		}
		logger.Debug("no daemon answering, running in-process", "socket", pb.SocketPath())
	}

	g, err := Build(afero.NewOsFs(), pb, logger, nil)
	if err != nil {
		return nil, false, err
	}
	return g.Coordinator, false, nil
}
