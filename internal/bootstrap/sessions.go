package bootstrap

import (
	"github.com/osse101/GiftMarket_Go/internal/config"
	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/metrics"
	"github.com/osse101/GiftMarket_Go/internal/session"
	"github.com/osse101/GiftMarket_Go/internal/sse"
)

// NewSessionManager builds the session cache over the ledger and reports its
// activity to metrics. Every newly opened session streams its mirror changes
// to the owner's SSE clients.
func NewSessionManager(cfg *config.Config, ledger *Ledger, items []domain.Item, sseSub *sse.Subscriber) *session.Manager {
	mgr := session.NewManager(ledger.Store, ledger.Subscriber, items, session.Config{
		Capacity: cfg.SessionCapacity,
		TTL:      cfg.SessionTTL,
	})

	mgr.OnCountChange(metrics.SetOpenSessions)
	mgr.OnMerge(metrics.RecordMerge)
	if sseSub != nil {
		mgr.OnOpen(sseSub.WatchMirror)
	}
	return mgr
}
