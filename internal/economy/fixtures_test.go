package economy

import (
	"context"
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/memstore"
	"github.com/osse101/GiftMarket_Go/internal/mocks"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
	"github.com/osse101/GiftMarket_Go/internal/repository"
	"github.com/osse101/GiftMarket_Go/internal/session"
	"github.com/osse101/GiftMarket_Go/internal/worker"
)

const buyer int64 = 777

func testCatalog() []domain.Item {
	return []domain.Item{
		{ID: "pepe-1", Title: "Plush Pepe", Price: decimal.NewFromInt(30), Image: "pepe.png", Collection: "Plush Pepe", Model: "Classic", Backdrop: "Onyx"},
		{ID: "cap-2", Title: "Durov's Cap", Price: decimal.RequireFromString("12.5"), Image: "cap.png", Collection: "Durov's Cap"},
	}
}

// recordingPublisher captures published events; compensation jobs publish from pool goroutines
type recordingPublisher struct {
	mu     sync.Mutex
	events []event.Event
}

func (p *recordingPublisher) PublishWithRetry(_ context.Context, evt event.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, evt)
}

func (p *recordingPublisher) types() []event.Type {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]event.Type, 0, len(p.events))
	for _, e := range p.events {
		out = append(out, e.Type)
	}
	return out
}

func (p *recordingPublisher) find(t event.Type) (event.Event, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	for _, e := range p.events {
		if e.Type == t {
			return e, true
		}
	}
	return event.Event{}, false
}

type fixture struct {
	svc       Service
	sess      *session.Session
	manager   *session.Manager
	pool      *worker.Pool
	publisher *recordingPublisher
}

func newFixture(t *testing.T, store repository.Ledger, subscriber repository.Subscriber) *fixture {
	t.Helper()

	mgr := session.NewManager(store, subscriber, testCatalog(), session.Config{})
	t.Cleanup(mgr.CloseAll)

	sess, err := mgr.Open(context.Background(), buyer, domain.Profile{Username: "ann"})
	require.NoError(t, err)

	pool := worker.NewPool(1, 10)
	pool.Start()
	t.Cleanup(pool.Stop)

	pub := &recordingPublisher{}
	return &fixture{
		svc:       NewService(store, pool, pub),
		sess:      sess,
		manager:   mgr,
		pool:      pool,
		publisher: pub,
	}
}

// newMemFixture opens buyer's session over an in-memory ledger seeded with balance
func newMemFixture(t *testing.T, balance string) (*fixture, *memstore.Store, *realtime.Hub) {
	t.Helper()
	hub := realtime.NewHub()
	store := memstore.New(hub)
	store.SeedUser(domain.UserRecord{ID: buyer, Username: "ann", Balance: decimal.RequireFromString(balance)})
	return newFixture(t, store, hub), store, hub
}

// newMockFixture opens buyer's session over a testify mock. Only the load
// calls are stubbed; each test adds the expectations it needs.
func newMockFixture(t *testing.T, balance string, owned ...domain.OwnedItemRecord) (*fixture, *mocks.MockLedger) {
	t.Helper()
	store := new(mocks.MockLedger)
	store.On("GetOrCreateUser", mock.Anything, buyer, mock.Anything).
		Return(&domain.UserRecord{ID: buyer, Username: "ann", Balance: decimal.RequireFromString(balance)}, nil).Once()
	store.On("ListTransactions", mock.Anything, buyer).Return([]domain.TransactionRecord{}, nil).Once()
	store.On("ListOwnedItems", mock.Anything, buyer).Return(owned, nil).Once()
	return newFixture(t, store, realtime.NewHub()), store
}

func decimalEq(s string) interface{} {
	want := decimal.RequireFromString(s)
	return mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(want) })
}

func txOfType(txType domain.TxType) interface{} {
	return mock.MatchedBy(func(tx domain.NewTransaction) bool { return tx.Type == txType })
}

func userRecord(balance string) *domain.UserRecord {
	return &domain.UserRecord{ID: buyer, Balance: decimal.RequireFromString(balance)}
}
