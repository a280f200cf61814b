package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
)

// Notification is the JSON document emitted by notify_ledger_change().
// It carries keys only; inserted rows are re-read through a RowLoader.
type Notification struct {
	Table   string           `json:"table"`
	Op      string           `json:"op"`
	ID      int64            `json:"id"`
	UserID  int64            `json:"user_id"`
	ItemID  string           `json:"nft_id,omitempty"`
	Balance *decimal.Decimal `json:"balance,omitempty"`
}

// RowLoader re-reads the rows a notification points at
type RowLoader interface {
	GetTransaction(ctx context.Context, id int64) (*domain.TransactionRecord, error)
	GetOwnedItem(ctx context.Context, id int64) (*domain.OwnedItemRecord, error)
}

// Listener forwards ledger_changes notifications to a realtime.Publisher
type Listener struct {
	pool      *pgxpool.Pool
	loader    RowLoader
	publisher realtime.Publisher

	mu        sync.RWMutex
	connected bool
	wg        sync.WaitGroup
}

// NewListener creates a listener over the given pool. Inserted rows are
// fetched with loader before they are published.
func NewListener(pool *pgxpool.Pool, loader RowLoader, publisher realtime.Publisher) *Listener {
	return &Listener{pool: pool, loader: loader, publisher: publisher}
}

// Start runs the listen loop until ctx is cancelled
func (l *Listener) Start(ctx context.Context) {
	l.wg.Add(1)
	go l.loop(ctx)
}

// Wait blocks until the listen loop has exited
func (l *Listener) Wait() {
	l.wg.Wait()
}

// IsConnected reports whether a LISTEN connection is currently held
func (l *Listener) IsConnected() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.connected
}

func (l *Listener) setConnected(v bool) {
	l.mu.Lock()
	l.connected = v
	l.mu.Unlock()
}

func (l *Listener) loop(ctx context.Context) {
	defer l.wg.Done()

	failures := 0
	for {
		err := l.listen(ctx)
		l.setConnected(false)
		if ctx.Err() != nil {
			slog.Info(LogMsgListenerStopped)
			return
		}

		delay := listenerBackoff(failures)
		failures++
		slog.Warn(LogMsgListenerDisconnected, "error", err, "backoff", delay, "consecutive_failures", failures)

		select {
		case <-time.After(delay):
		case <-ctx.Done():
			slog.Info(LogMsgListenerStopped)
			return
		}
	}
}

func (l *Listener) listen(ctx context.Context) error {
	conn, err := l.pool.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer conn.Release()

	if _, err := conn.Exec(ctx, "LISTEN "+NotifyChannel); err != nil {
		return fmt.Errorf("listen %s: %w", NotifyChannel, err)
	}
	l.setConnected(true)
	slog.Info(LogMsgListenerConnected, "channel", NotifyChannel)

	for {
		n, err := conn.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if err := Dispatch(ctx, l.loader, l.publisher, n.Payload); err != nil {
			slog.Warn(LogMsgNotificationDropped, "error", err, "payload_bytes", len(n.Payload))
		}
	}
}

// listenerBackoff doubles from ListenerBaseBackoff up to ListenerMaxBackoff
func listenerBackoff(failures int) time.Duration {
	if failures < 0 {
		return ListenerBaseBackoff
	}
	if failures > 30 {
		return ListenerMaxBackoff
	}
	d := ListenerBaseBackoff * time.Duration(1<<failures)
	if d > ListenerMaxBackoff {
		return ListenerMaxBackoff
	}
	return d
}

// Dispatch decodes one notification payload and publishes the typed record.
// Unknown table/op pairs are ignored, as are inserted rows already gone by
// the time they are read.
func Dispatch(ctx context.Context, loader RowLoader, publisher realtime.Publisher, payload string) error {
	var n Notification
	if err := json.Unmarshal([]byte(payload), &n); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrMalformedRecord, err)
	}

	switch {
	case n.Table == TableUsers && n.Op == OpUpdate:
		if n.Balance == nil || n.Balance.IsNegative() || n.UserID <= 0 {
			return fmt.Errorf("%w: users notification for %d has balance %v", domain.ErrMalformedRecord, n.UserID, n.Balance)
		}
		return publisher.PublishBalance(n.UserID, *n.Balance)

	case n.Table == TableTransactions && n.Op == OpInsert:
		rec, err := loader.GetTransaction(ctx, n.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		return publisher.PublishTransaction(*rec)

	case n.Table == TableOwnedItems && n.Op == OpInsert:
		rec, err := loader.GetOwnedItem(ctx, n.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			return nil
		}
		if err != nil {
			return err
		}
		return publisher.PublishItemAdded(*rec)

	case n.Table == TableOwnedItems && n.Op == OpDelete:
		if n.ItemID == "" {
			return fmt.Errorf("%w: user_nfts notification %d has no item id", domain.ErrMalformedRecord, n.ID)
		}
		return publisher.PublishItemRemoved(n.UserID, n.ItemID)
	}
	return nil
}
