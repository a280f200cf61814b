package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/GiftMarket_Go/internal/economy"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/server"
	"github.com/osse101/GiftMarket_Go/internal/session"
	"github.com/osse101/GiftMarket_Go/internal/sse"
	"github.com/osse101/GiftMarket_Go/internal/worker"
)

// ShutdownComponents holds all components that need graceful shutdown.
type ShutdownComponents struct {
	Server             *server.Server
	SSEHub             *sse.Hub
	EconomyService     economy.Service
	Sessions           *session.Manager
	CompensationPool   *worker.Pool
	ResilientPublisher *event.ResilientPublisher
	Ledger             *Ledger
}

// GracefulShutdown stops the application in order:
// 1. HTTP server and event streams (stop accepting new requests)
// 2. Economy service (wait for in-flight operations)
// 3. Compensation pool (run queued refunds)
// 4. Sessions (release their subscriptions)
// 5. Event publisher (flush pending events)
// 6. Ledger connection
//
// Errors during shutdown are logged but do not stop the sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	// the hub closes open streams so Stop does not wait on them
	if components.SSEHub != nil {
		components.SSEHub.Stop()
	}
	if err := components.Server.Stop(ctx); err != nil {
		slog.Error(LogMsgServerForcedShutdown, "error", err)
	}

	shutdownService(ctx, ServiceNameEconomy, components.EconomyService)

	if components.CompensationPool != nil {
		components.CompensationPool.Stop()
	}

	if components.Sessions != nil {
		components.Sessions.CloseAll()
		slog.Info(LogMsgSessionsClosed)
	}

	slog.Info(LogMsgShuttingDownEventPublisher)
	if components.ResilientPublisher != nil {
		if err := components.ResilientPublisher.Shutdown(ctx); err != nil {
			slog.Error(LogMsgResilientPublisherFailed, "error", err)
		}
	}

	if components.Ledger != nil {
		components.Ledger.Close()
	}

	slog.Info(LogMsgServerStopped)
}

type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if service == nil {
		return
	}
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
