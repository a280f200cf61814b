package mirror

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/memstore"
	"github.com/osse101/GiftMarket_Go/internal/mocks"
)

func TestLoad_DerivesCountersFromHistory(t *testing.T) {
	ctx := context.Background()
	store := memstore.New(nil)
	store.SeedUser(domain.UserRecord{ID: buyer, Username: "ann", Balance: decimal.NewFromInt(50)})

	_, err := store.CreateTransaction(ctx, buyer, domain.NewTransaction{Type: domain.TxDeposit, Title: "Deposit", Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)
	_, err = store.CreateTransaction(ctx, buyer, domain.NewTransaction{Type: domain.TxBuy, Title: "Buy", Amount: decimal.RequireFromString("30.10"), ItemID: "pepe-1"})
	require.NoError(t, err)
	_, err = store.CreateTransaction(ctx, buyer, domain.NewTransaction{Type: domain.TxSell, Title: "Sell", Amount: decimal.RequireFromString("12.25")})
	require.NoError(t, err)
	_, err = store.AddOwnedItem(ctx, buyer, domain.NewOwnedItem{ItemID: "pepe-1", Title: "Plush Pepe", Image: "pepe.png", Price: decimal.NewFromInt(30), Origin: domain.OriginPurchase})
	require.NoError(t, err)
	_, err = store.AddOwnedItem(ctx, buyer, domain.NewOwnedItem{ItemID: "gift-9", Title: "Gift", Image: "gift.png", Price: decimal.NewFromInt(3), Origin: domain.OriginGift})
	require.NoError(t, err)

	m := New(buyer, testCatalog())
	snap := m.Load(ctx, store, domain.Profile{Username: "ann"})

	assert.Equal(t, "50", snap.User.Balance.String())
	assert.Equal(t, 1, snap.User.BoughtCount)
	assert.Equal(t, 1, snap.User.SoldCount)
	assert.Equal(t, "42.35", snap.User.TotalVolume.String())
	assert.Len(t, snap.History, 3)

	require.Len(t, snap.Items, 3)
	assert.Equal(t, "gift-9", snap.Items[0].ID, "unknown owned item is prepended")
	assert.Equal(t, "pepe-1", snap.Items[1].ID, "catalog item is replaced in place")
	assert.True(t, snap.Items[1].Owner.Is(buyer))
	assert.Len(t, m.OwnedItems(OriginGift), 1)
}

func TestLoad_FailsSoft(t *testing.T) {
	store := new(mocks.MockLedger)
	store.On("GetOrCreateUser", mock.Anything, buyer, mock.Anything).Return(nil, assert.AnError)
	store.On("ListTransactions", mock.Anything, buyer).Return(nil, assert.AnError)
	store.On("ListOwnedItems", mock.Anything, buyer).Return(nil, assert.AnError)

	m := New(buyer, testCatalog())
	snap := m.Load(context.Background(), store, domain.Profile{FirstName: "Ann"})

	assert.Equal(t, buyer, snap.User.ID)
	assert.Equal(t, "Ann", snap.User.DisplayName)
	assert.True(t, snap.User.Balance.IsZero())
	assert.Empty(t, snap.History)
	assert.Len(t, snap.Items, 2)
	store.AssertExpectations(t)
}

func TestLoad_DropsMalformedRecords(t *testing.T) {
	now := time.Now()
	store := new(mocks.MockLedger)
	store.On("GetOrCreateUser", mock.Anything, buyer, mock.Anything).
		Return(&domain.UserRecord{ID: buyer, Balance: decimal.NewFromInt(10)}, nil)
	store.On("ListTransactions", mock.Anything, buyer).Return([]domain.TransactionRecord{
		{ID: 2, UserID: buyer, Type: "refund", Amount: decimal.NewFromInt(1), CreatedAt: now},
		{ID: 1, UserID: buyer, Type: domain.TxBuy, Amount: decimal.NewFromInt(5), CreatedAt: now},
	}, nil)
	store.On("ListOwnedItems", mock.Anything, buyer).Return([]domain.OwnedItemRecord{
		{ID: 1, UserID: buyer, ItemID: "", Price: decimal.NewFromInt(1), Origin: domain.OriginGift},
	}, nil)

	m := New(buyer, nil)
	snap := m.Load(context.Background(), store, domain.Profile{})

	require.Len(t, snap.History, 1)
	assert.Equal(t, int64(1), snap.History[0].ID)
	assert.Equal(t, 1, snap.User.BoughtCount)
	assert.Empty(t, snap.Items)
}

// committingStore commits more ledger changes right after the history
// snapshot, the way another device would while the session is loading
type committingStore struct {
	*memstore.Store
	afterHistory func()
}

func (s *committingStore) ListTransactions(ctx context.Context, identity int64) ([]domain.TransactionRecord, error) {
	recs, err := s.Store.ListTransactions(ctx, identity)
	s.afterHistory()
	return recs, err
}

func TestLoad_KeepsPushesMergedDuringLoad(t *testing.T) {
	ctx := context.Background()
	base := memstore.New(nil)
	base.SeedUser(domain.UserRecord{ID: buyer, Username: "ann", Balance: decimal.NewFromInt(50)})
	_, err := base.AddOwnedItem(ctx, buyer, domain.NewOwnedItem{ItemID: "pepe-1", Title: "Plush Pepe", Image: "pepe.png", Price: decimal.NewFromInt(30), Origin: domain.OriginPurchase})
	require.NoError(t, err)

	m := New(buyer, testCatalog())
	store := &committingStore{Store: base}
	store.afterHistory = func() {
		rec, err := base.SetBalance(ctx, buyer, decimal.NewFromInt(500))
		assert.NoError(t, err)
		m.ApplyRemoteBalance(rec.Balance)

		tx, err := base.CreateTransaction(ctx, buyer, domain.NewTransaction{Type: domain.TxBuy, Title: "Buy", Amount: decimal.NewFromInt(7), ItemID: "cap-2"})
		assert.NoError(t, err)
		m.ApplyRemoteTransaction(tx.ToTransaction())

		m.ApplyRemoteItemRemoved("pepe-1")
	}

	snap := m.Load(ctx, store, domain.Profile{Username: "ann"})

	assert.Equal(t, "500", snap.User.Balance.String(), "balance pushed during load wins")
	require.Len(t, snap.History, 1)
	assert.Equal(t, domain.TxBuy, snap.History[0].Type)
	assert.Equal(t, 1, snap.User.BoughtCount)

	it, ok := m.Item("pepe-1")
	require.True(t, ok)
	assert.Equal(t, domain.Unowned, it.Owner, "removal pushed during load is not undone")

	m.ApplyRemoteTransaction(snap.History[0])
	assert.Len(t, m.History(), 1)
}

func TestLoad_StoreBalanceWinsWithoutPush(t *testing.T) {
	store := memstore.New(nil)
	store.SeedUser(domain.UserRecord{ID: buyer, Balance: decimal.NewFromInt(80)})

	m := New(buyer, nil)
	withBalance(t, m, 10)
	snap := m.Load(context.Background(), store, domain.Profile{})

	assert.Equal(t, "80", snap.User.Balance.String())
}
