package bootstrap

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/osse101/BurgerClient_Go/internal/scheduler"
	"github.com/osse101/BurgerClient_Go/internal/stubapi"
	"github.com/osse101/BurgerClient_Go/internal/worker"
)

// ShutdownComponents holds everything that needs an orderly stop. Nil
// fields are skipped.
type ShutdownComponents struct {
	Server    *stubapi.Server
	Scheduler *scheduler.Scheduler
	Pool      *worker.Pool
	Closers   []io.Closer
}

// GracefulShutdown stops components in order:
//  1. HTTP server (stop accepting new requests)
//  2. scheduler and worker pool (finish the running poll)
//  3. closers such as the state database
//
// Every step runs even if an earlier one fails; the failures are joined.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) error {
	var errs []error

	if components.Server != nil {
		slog.Info(LogMsgShuttingDownServer)
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
			errs = append(errs, err)
		}
	}

	stopWatch(components)

	for _, c := range components.Closers {
		if err := c.Close(); err != nil {
			slog.Error(LogMsgCloseFailed, "error", err)
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

func stopWatch(components ShutdownComponents) {
	if components.Scheduler != nil {
		components.Scheduler.Stop()
	}
	if components.Pool != nil {
		components.Pool.Stop()
	}
}
