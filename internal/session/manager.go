package session

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/concurrency"
	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// Config sizes the open-session cache
type Config struct {
	Capacity int
	TTL      time.Duration
}

// Manager opens, caches and closes sessions. Eviction and expiry close the
// evicted session, which releases its three subscriptions.
type Manager struct {
	store      repository.Ledger
	subscriber repository.Subscriber
	catalog    []domain.Item

	sessions  *expirable.LRU[int64, *Session]
	openLocks *concurrency.LockManager[int64]
	anonymous *Session
	open      atomic.Int64

	onCount func(open int)
	onMerge func(kind string, applied bool)
	onOpen  func(sess *Session)
}

// NewManager builds a manager over the store client and its push transport
func NewManager(store repository.Ledger, subscriber repository.Subscriber, catalog []domain.Item, cfg Config) *Manager {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultCapacity
	}
	if cfg.TTL <= 0 {
		cfg.TTL = DefaultTTL
	}

	m := &Manager{
		store:      store,
		subscriber: subscriber,
		catalog:    catalog,
		openLocks:  concurrency.NewLockManager[int64](),
		anonymous:  newSession(0, domain.Profile{}, mirror.NewPlaceholder(catalog)),
	}
	m.sessions = expirable.NewLRU[int64, *Session](cfg.Capacity, m.evicted, cfg.TTL)
	return m
}

// OnCountChange registers a callback receiving the open-session count after every open or close
func (m *Manager) OnCountChange(fn func(open int)) {
	m.onCount = fn
}

// OnMerge registers a callback receiving every push merged into a mirror and
// whether it changed anything
func (m *Manager) OnMerge(fn func(kind string, applied bool)) {
	m.onMerge = fn
}

// OnOpen registers a callback run once for every newly created session,
// after its mirror has been loaded
func (m *Manager) OnOpen(fn func(sess *Session)) {
	m.onOpen = fn
}

func (m *Manager) merged(kind string, applied bool) {
	if m.onMerge != nil {
		m.onMerge(kind, applied)
	}
}

func (m *Manager) evicted(identity int64, sess *Session) {
	sess.close()
	n := m.open.Add(-1)
	slog.Info(LogMsgSessionClosed, "identity", identity, "open", n)
	if m.onCount != nil {
		m.onCount(int(n))
	}
}

// Open loads the identity's mirror and subscribes it to the store's pushes.
// Opening an already open identity returns the existing session.
func (m *Manager) Open(ctx context.Context, identity int64, profile domain.Profile) (*Session, error) {
	if identity <= 0 {
		return nil, fmt.Errorf("%w: %d", domain.ErrUnknownIdentity, identity)
	}

	lock := m.openLocks.GetLock(identity)
	lock.Lock()
	defer lock.Unlock()

	if sess, ok := m.sessions.Get(identity); ok {
		m.sessions.Add(identity, sess)
		return sess, nil
	}

	// an expired entry the janitor has not swept yet would be overwritten
	// without its eviction callback; remove it so its subscriptions are released
	m.sessions.Remove(identity)

	mir := mirror.New(identity, m.catalog)
	sess := newSession(identity, profile, mir)

	// subscribe before loading so nothing committed during the load is missed;
	// the id-keyed merges absorb anything delivered twice
	sess.unsubs = m.subscribe(identity, mir)
	mir.Load(ctx, m.store, profile)

	m.sessions.Add(identity, sess)
	n := m.open.Add(1)
	logger.FromContext(ctx).Info(LogMsgSessionOpened, "identity", identity, "open", n)
	if m.onCount != nil {
		m.onCount(int(n))
	}
	if m.onOpen != nil {
		m.onOpen(sess)
	}
	return sess, nil
}

func (m *Manager) subscribe(identity int64, mir *mirror.Mirror) []repository.Unsubscribe {
	return []repository.Unsubscribe{
		m.subscriber.SubscribeBalance(identity, func(balance decimal.Decimal) {
			m.merged(MergeBalance, mir.ApplyRemoteBalance(balance))
		}),
		m.subscriber.SubscribeTransactions(identity, func(rec domain.TransactionRecord) {
			if err := rec.Validate(); err != nil {
				slog.Warn(LogMsgPushDropped, "identity", identity, "error", err)
				return
			}
			m.merged(MergeTransaction, mir.ApplyRemoteTransaction(rec.ToTransaction()))
		}),
		m.subscriber.SubscribeOwnedItems(identity,
			func(rec domain.OwnedItemRecord) {
				if err := rec.Validate(); err != nil {
					slog.Warn(LogMsgPushDropped, "identity", identity, "error", err)
					return
				}
				m.merged(MergeItemAdded, mir.ApplyRemoteItemAdded(rec.ToItem()))
			},
			func(itemID string) {
				m.merged(MergeItemRemoved, mir.ApplyRemoteItemRemoved(itemID))
			}),
	}
}

// Get returns the open session for identity and refreshes its TTL
func (m *Manager) Get(identity int64) (*Session, error) {
	sess, ok := m.sessions.Get(identity)
	if !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrSessionNotFound, identity)
	}
	m.sessions.Add(identity, sess)
	return sess, nil
}

// Close releases the identity's session. Closing an unknown identity is a no-op.
func (m *Manager) Close(identity int64) bool {
	return m.sessions.Remove(identity)
}

// CloseAll releases every open session
func (m *Manager) CloseAll() {
	m.sessions.Purge()
}

// Anonymous returns the shared placeholder session. It never reaches the store.
func (m *Manager) Anonymous() *Session {
	return m.anonymous
}

// Count returns the number of open sessions
func (m *Manager) Count() int {
	return m.sessions.Len()
}
