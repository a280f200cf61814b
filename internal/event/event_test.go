package event

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"os"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

func TestMemoryBus_PublishSubscribe(t *testing.T) {
	bus := NewMemoryBus()
	var got []Event

	bus.Subscribe(WalletDeposited, func(_ context.Context, e Event) error {
		got = append(got, e)
		return nil
	})

	require.NoError(t, bus.Publish(context.Background(), NewWalletDepositedEvent(42, "100", "150", false)))
	require.NoError(t, bus.Publish(context.Background(), NewSagaPartiallyFailedEvent("deposit", 42, nil)))

	require.Len(t, got, 1, "only wallet.deposited handlers run")
	assert.Equal(t, EventSchemaVersion, got[0].Version)

	payload, err := DecodePayload[domain.WalletDepositedPayload](got[0].Payload)
	require.NoError(t, err)
	assert.Equal(t, int64(42), payload.UserID)
	assert.Equal(t, "150", payload.NewBalance)
}

func TestMemoryBus_PublishJoinsHandlerErrors(t *testing.T) {
	bus := NewMemoryBus()
	calls := 0
	bus.Subscribe(ItemPurchased, func(context.Context, Event) error { calls++; return errors.New("first") })
	bus.Subscribe(ItemPurchased, func(context.Context, Event) error { calls++; return nil })

	err := bus.Publish(context.Background(), NewItemPurchasedEvent(42, "pepe-1", "Plush Pepe", "30", "120", nil))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 errors")
	assert.Equal(t, 2, calls, "a failing handler does not stop the others")
}

func TestDecodePayload_FromMap(t *testing.T) {
	// Dead-letter replays carry payloads as generic maps
	raw := map[string]interface{}{"listing_id": 7, "seller_id": 42, "item_id": "pepe-1", "price": "25"}

	payload, err := DecodePayload[domain.ListingCreatedPayload](raw)
	require.NoError(t, err)
	assert.Equal(t, int64(7), payload.ListingID)
	assert.Equal(t, "25", payload.Price)
}

func TestNewListingEvent(t *testing.T) {
	e := NewListingEvent(ItemPublished, domain.Listing{ID: 3, SellerID: 42, ItemID: "cap", Price: decimal.RequireFromString("12.50")})

	assert.Equal(t, ItemPublished, e.Type)
	payload := e.Payload.(domain.ListingCreatedPayload)
	assert.Equal(t, "12.5", payload.Price)
}

func TestCalculateRetryDelay(t *testing.T) {
	assert.Equal(t, RetryInitialDelay, CalculateRetryDelay(RetryInitialDelay, 1))
	assert.Equal(t, 4*RetryInitialDelay, CalculateRetryDelay(RetryInitialDelay, 3))
	assert.Equal(t, RetryInitialDelay, CalculateRetryDelay(RetryInitialDelay, 0))
}

func TestDeadLetterWriter_RecordsUser(t *testing.T) {
	path := t.TempDir() + "/deadletter.jsonl"
	dlw, err := NewDeadLetterWriter(path)
	require.NoError(t, err)

	evt := NewSagaPartiallyFailedEvent("purchase", 77, []string{"add-owned-item"})
	require.NoError(t, dlw.Write(evt, 3, errors.New("bus down")))
	require.NoError(t, dlw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry DeadLetterEntry
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, int64(77), entry.UserID)
	assert.Equal(t, 3, entry.Attempts)
	assert.Equal(t, "bus down", entry.LastError)
	assert.Equal(t, SagaPartiallyFailed, entry.Event.Type)
}
