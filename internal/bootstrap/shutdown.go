package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/osse101/HunterSystem_Go/internal/event"
	"github.com/osse101/HunterSystem_Go/internal/hunter"
	"github.com/osse101/HunterSystem_Go/internal/server"
	"github.com/osse101/HunterSystem_Go/internal/sse"
	"github.com/osse101/HunterSystem_Go/internal/worker"
)

// ShutdownComponents holds everything stopped on exit; nil fields are skipped
type ShutdownComponents struct {
	Server             *server.Server
	HunterService      hunter.Service
	ResetWorker        *worker.ResetWorker
	SSEHub             *sse.Hub
	ResilientPublisher *event.ResilientPublisher
	Store              *Store
}

type shutdownStep struct {
	name string
	stop func(context.Context) error
}

// GracefulShutdown stops the components in dependency order. SSE streams are
// closed first because the HTTP server waits for open requests. Every step runs
// even when an earlier one fails; the failures are returned joined.
func GracefulShutdown(ctx context.Context, c ShutdownComponents) error {
	slog.Info(LogMsgShuttingDownServer)

	var steps []shutdownStep
	if c.SSEHub != nil {
		steps = append(steps, shutdownStep{"sse", func(context.Context) error { c.SSEHub.Stop(); return nil }})
	}
	if c.Server != nil {
		steps = append(steps, shutdownStep{"http", c.Server.Stop})
	}
	if c.ResetWorker != nil {
		steps = append(steps, shutdownStep{"reset_worker", c.ResetWorker.Shutdown})
	}
	if c.HunterService != nil {
		steps = append(steps, shutdownStep{ServiceNameHunter, c.HunterService.Shutdown})
	}
	// after the service, so events from in-flight actions are flushed
	if c.ResilientPublisher != nil {
		steps = append(steps, shutdownStep{"event_publisher", c.ResilientPublisher.Shutdown})
	}
	if c.Store != nil && c.Store.Close != nil {
		steps = append(steps, shutdownStep{"store", func(context.Context) error { return c.Store.Close() }})
	}

	err := runShutdown(ctx, steps)
	slog.Info(LogMsgServerStopped)
	return err
}

func runShutdown(ctx context.Context, steps []shutdownStep) error {
	var errs []error
	for _, s := range steps {
		start := time.Now()
		if err := s.stop(ctx); err != nil {
			slog.Error(s.name+LogMsgServiceShutdownFailed, "error", err, "elapsed", time.Since(start))
			errs = append(errs, fmt.Errorf("%s: %w", s.name, err))
			continue
		}
		slog.Debug(LogMsgComponentStopped, "component", s.name, "elapsed", time.Since(start))
	}
	return errors.Join(errs...)
}
