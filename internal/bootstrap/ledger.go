package bootstrap

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/osse101/GiftMarket_Go/internal/config"
	"github.com/osse101/GiftMarket_Go/internal/database"
	"github.com/osse101/GiftMarket_Go/internal/database/postgres"
	"github.com/osse101/GiftMarket_Go/internal/handler"
	"github.com/osse101/GiftMarket_Go/internal/memstore"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// Ledger bundles the remote store client with its push transport
type Ledger struct {
	Store      repository.Ledger
	Settings   repository.Settings
	Subscriber repository.Subscriber
	// Pinger is nil for the in-memory ledger
	Pinger handler.Pinger

	close func()
}

// Close stops the change listener and releases the connection pool
func (l *Ledger) Close() {
	if l.close != nil {
		l.close()
	}
}

// InitializeLedger connects the ledger selected by cfg.LedgerDriver. For
// PostgreSQL it applies migrations when enabled and starts the LISTEN loop
// feeding row changes to the realtime hub; the loop stops when ctx is done.
func InitializeLedger(ctx context.Context, cfg *config.Config) (*Ledger, error) {
	hub := realtime.NewHub()

	switch cfg.LedgerDriver {
	case config.LedgerDriverMemory:
		slog.Warn(LogMsgMemoryLedger)
		store := memstore.New(hub)
		return &Ledger{Store: store, Settings: store, Subscriber: hub}, nil

	case config.LedgerDriverPostgres:
		connString := cfg.GetDBConnString()
		if cfg.AutoMigrate {
			if err := database.Migrate(ctx, connString); err != nil {
				return nil, fmt.Errorf("%s: %w", ErrMsgFailedMigrate, err)
			}
		}

		pool, err := database.NewPool(ctx, connString, database.PoolConfig{MaxConns: cfg.DBMaxConns})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgFailedConnectDB, err)
		}

		store := postgres.NewLedgerRepository(pool)
		listenCtx, cancel := context.WithCancel(ctx)
		listener := postgres.NewListener(pool, store, hub)
		listener.Start(listenCtx)
		slog.Info(LogMsgPostgresLedger, "max_conns", cfg.DBMaxConns)
		slog.Info(LogMsgListenerStarted)

		return &Ledger{
			Store:      store,
			Settings:   postgres.NewSettingsRepository(pool),
			Subscriber: hub,
			Pinger:     pool,
			close: func() {
				cancel()
				listener.Wait()
				pool.Close()
			},
		}, nil

	default:
		return nil, fmt.Errorf(ErrMsgUnknownLedger, cfg.LedgerDriver)
	}
}
