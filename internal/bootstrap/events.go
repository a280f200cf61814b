package bootstrap

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/osse101/GiftMarket_Go/internal/config"
	"github.com/osse101/GiftMarket_Go/internal/event"
)

// ledgerEvents are the outcomes the economy service publishes. Deliveries
// that keep failing land in the dead-letter file tagged with their user so
// support can reconcile the ledger by hand.
var ledgerEvents = []event.Type{
	event.WalletDeposited,
	event.ItemPurchased,
	event.ListingCreated,
	event.ItemPublished,
	event.DepositRequestCreated,
	event.SagaPartiallyFailed,
	event.CompensationCompleted,
}

// publisherSettings is the retry policy for ledger events
type publisherSettings struct {
	maxRetries     int
	retryDelay     time.Duration
	deadLetterPath string
}

// ledgerPublisherSettings reads the retry policy. A zero retry count is
// honoured (one background attempt, then dead-letter); a missing path puts
// the dead-letter file next to the logs.
func ledgerPublisherSettings(cfg *config.Config) publisherSettings {
	s := publisherSettings{
		maxRetries:     cfg.EventMaxRetries,
		retryDelay:     cfg.EventRetryDelay,
		deadLetterPath: cfg.EventDeadLetterPath,
	}
	if s.maxRetries < 0 {
		s.maxRetries = 0
	}
	if s.retryDelay <= 0 {
		s.retryDelay = EventDefaultRetryDelay
	}
	if s.deadLetterPath == "" {
		dir := cfg.LogDir
		if dir == "" {
			dir = DefaultLogDir
		}
		s.deadLetterPath = filepath.Join(dir, EventDeadLetterFile)
	}
	return s
}

// InitializeEventSystem creates the in-process bus for ledger outcomes and
// the publisher the economy service retries failed deliveries through
func InitializeEventSystem(cfg *config.Config) (event.Bus, *event.ResilientPublisher, error) {
	s := ledgerPublisherSettings(cfg)
	if err := os.MkdirAll(filepath.Dir(s.deadLetterPath), DirPermission); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateDeadLetterDir, err)
	}

	bus := event.NewMemoryBus()
	publisher, err := event.NewResilientPublisher(bus, s.maxRetries, s.retryDelay, s.deadLetterPath)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", LogMsgFailedCreateResilientPublisher, err)
	}

	slog.Info(LogMsgEventSystemInitialized,
		"ledger_events", ledgerEvents,
		"max_retries", s.maxRetries,
		"retry_delay", s.retryDelay,
		"deadletter_path", s.deadLetterPath)

	return bus, publisher, nil
}
