package realtime

import (
	"sync"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

func TestHub_RoutesByIdentityAndChannel(t *testing.T) {
	hub := NewHub()

	var balances []decimal.Decimal
	var txs []int64
	hub.SubscribeBalance(1, func(b decimal.Decimal) { balances = append(balances, b) })
	hub.SubscribeTransactions(1, func(tx domain.TransactionRecord) { txs = append(txs, tx.ID) })

	var otherCalls int
	hub.SubscribeBalance(2, func(decimal.Decimal) { otherCalls++ })

	require.NoError(t, hub.PublishBalance(1, decimal.NewFromInt(150)))
	require.NoError(t, hub.PublishTransaction(domain.TransactionRecord{ID: 5, UserID: 1, Type: domain.TxDeposit, Amount: decimal.NewFromInt(100)}))

	require.Len(t, balances, 1)
	assert.True(t, balances[0].Equal(decimal.NewFromInt(150)))
	assert.Equal(t, []int64{5}, txs)
	assert.Zero(t, otherCalls, "identity 2 must not see identity 1's notifications")
}

func TestHub_OwnedItemsInsertAndRemove(t *testing.T) {
	hub := NewHub()

	var inserted []string
	var removed []string
	hub.SubscribeOwnedItems(7,
		func(item domain.OwnedItemRecord) { inserted = append(inserted, item.ItemID) },
		func(itemID string) { removed = append(removed, itemID) })

	rec := domain.OwnedItemRecord{ID: 1, UserID: 7, ItemID: "pepe-1", Price: decimal.NewFromInt(30), Origin: domain.OriginPurchase}
	require.NoError(t, hub.PublishItemAdded(rec))
	require.NoError(t, hub.PublishItemRemoved(7, "pepe-1"))

	assert.Equal(t, []string{"pepe-1"}, inserted)
	assert.Equal(t, []string{"pepe-1"}, removed)
}

func TestHub_RejectsMalformedRecords(t *testing.T) {
	hub := NewHub()
	calls := 0
	hub.SubscribeTransactions(1, func(domain.TransactionRecord) { calls++ })
	hub.SubscribeBalance(1, func(decimal.Decimal) { calls++ })

	err := hub.PublishTransaction(domain.TransactionRecord{ID: 1, UserID: 1, Type: "bogus"})
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)

	err = hub.PublishBalance(1, decimal.NewFromInt(-5))
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)

	err = hub.PublishItemRemoved(1, "")
	assert.ErrorIs(t, err, domain.ErrMalformedRecord)

	assert.Zero(t, calls)
}

func TestHub_UnsubscribeIsIdempotent(t *testing.T) {
	hub := NewHub()

	calls := 0
	unsub := hub.SubscribeBalance(1, func(decimal.Decimal) { calls++ })
	keep := hub.SubscribeTransactions(1, func(domain.TransactionRecord) {})
	assert.Equal(t, 2, hub.SubscriptionCount(1))

	unsub()
	unsub()
	assert.Equal(t, 1, hub.SubscriptionCount(1))

	require.NoError(t, hub.PublishBalance(1, decimal.NewFromInt(1)))
	assert.Zero(t, calls)

	keep()
	assert.Zero(t, hub.IdentityCount())
}

func TestHub_ConcurrentSubscribeAndPublish(t *testing.T) {
	hub := NewHub()

	var mu sync.Mutex
	total := 0
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsub := hub.SubscribeBalance(1, func(decimal.Decimal) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			_ = hub.PublishBalance(1, decimal.NewFromInt(1))
			unsub()
		}()
	}
	wg.Wait()

	assert.Zero(t, hub.SubscriptionCount(1))
	assert.Positive(t, total)
}
