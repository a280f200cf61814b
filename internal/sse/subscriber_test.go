package sse

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/event"
	"github.com/osse101/GiftMarket_Go/internal/memstore"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
	"github.com/osse101/GiftMarket_Go/internal/session"
)

func TestSubscriber_RoutesLedgerEventsToTheirUser(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	bus := event.NewMemoryBus()
	NewSubscriber(hub, bus).Subscribe()

	owner := hub.Register(42, nil)
	other := hub.Register(7, nil)
	require.Eventually(t, func() bool { return hub.ClientCount() == 2 }, time.Second, 5*time.Millisecond)

	require.NoError(t, bus.Publish(context.Background(), event.NewSagaPartiallyFailedEvent("purchase", 42, []string{"add-owned-item"})))
	require.NoError(t, bus.Publish(context.Background(), event.NewCompensationCompletedEvent("purchase", 42, "pepe-1", true)))

	assert.Equal(t, EventTypeOperationPartial, receive(t, owner).Type)
	assert.Equal(t, EventTypeCompensated, receive(t, owner).Type)
	assertSilent(t, other)
}

func TestSubscriber_WatchMirrorForwardsChanges(t *testing.T) {
	hub := NewHub()
	hub.Start()
	defer hub.Stop()

	sub := NewSubscriber(hub, event.NewMemoryBus())
	pushes := realtime.NewHub()
	store := memstore.New(pushes)
	manager := session.NewManager(store, pushes, []domain.Item{{ID: "pepe-1", Title: "Plush Pepe", Price: decimal.NewFromInt(30)}}, session.Config{})
	manager.OnOpen(sub.WatchMirror)

	c := hub.Register(42, nil)
	require.Eventually(t, func() bool { return hub.ClientCount() == 1 }, time.Second, 5*time.Millisecond)

	_, err := manager.Open(context.Background(), 42, domain.Profile{})
	require.NoError(t, err)

	_, err = store.SetBalance(context.Background(), 42, decimal.NewFromInt(5))
	require.NoError(t, err)
	assert.Equal(t, EventTypeUserChanged, receive(t, c).Type)

	// nothing is forwarded once the session has been closed
	manager.Close(42)
	_, err = store.SetBalance(context.Background(), 42, decimal.NewFromInt(6))
	require.NoError(t, err)
	assertSilent(t, c)
}
