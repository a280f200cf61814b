package memstore

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
)

func TestStore_GetOrCreateUser(t *testing.T) {
	ctx := context.Background()
	store := New(nil)

	created, err := store.GetOrCreateUser(ctx, 12345, domain.Profile{Username: "ann"})
	require.NoError(t, err)
	assert.Equal(t, "ann", created.Username)
	assert.Equal(t, "000009IX", created.ReferralCode)
	assert.True(t, created.Balance.IsZero())

	again, err := store.GetOrCreateUser(ctx, 12345, domain.Profile{Username: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "ann", again.Username, "existing user is returned unchanged")

	_, err = store.GetOrCreateUser(ctx, 0, domain.Profile{})
	assert.ErrorIs(t, err, domain.ErrUnknownIdentity)
}

func TestStore_PushesNotifications(t *testing.T) {
	ctx := context.Background()
	hub := realtime.NewHub()
	store := New(hub)
	store.SeedUser(domain.UserRecord{ID: 1, Balance: decimal.NewFromInt(50)})

	var balances []string
	var txIDs []int64
	var added, removed []string
	hub.SubscribeBalance(1, func(b decimal.Decimal) { balances = append(balances, b.String()) })
	hub.SubscribeTransactions(1, func(tx domain.TransactionRecord) { txIDs = append(txIDs, tx.ID) })
	hub.SubscribeOwnedItems(1,
		func(item domain.OwnedItemRecord) { added = append(added, item.ItemID) },
		func(id string) { removed = append(removed, id) })

	_, err := store.SetBalance(ctx, 1, decimal.NewFromInt(150))
	require.NoError(t, err)
	// unchanged balance does not notify
	_, err = store.SetBalance(ctx, 1, decimal.RequireFromString("150.00"))
	require.NoError(t, err)

	tx, err := store.CreateTransaction(ctx, 1, domain.NewTransaction{Type: domain.TxDeposit, Title: "Deposit", Amount: decimal.NewFromInt(100)})
	require.NoError(t, err)

	item := domain.NewOwnedItem{ItemID: "a", Title: "A", Image: "a.png", Price: decimal.NewFromInt(30), Origin: domain.OriginPurchase}
	_, err = store.AddOwnedItem(ctx, 1, item)
	require.NoError(t, err)
	// repeat insert is an in-place update without an insert notification
	_, err = store.AddOwnedItem(ctx, 1, item)
	require.NoError(t, err)

	require.NoError(t, store.RemoveOwnedItem(ctx, 1, "a"))
	require.NoError(t, store.RemoveOwnedItem(ctx, 1, "a"))

	assert.Equal(t, []string{"150"}, balances)
	assert.Equal(t, []int64{tx.ID}, txIDs)
	assert.Equal(t, []string{"a"}, added)
	assert.Equal(t, []string{"a"}, removed)
}

func TestStore_ListsNewestFirst(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	store.SeedUser(domain.UserRecord{ID: 1})

	first, err := store.CreateTransaction(ctx, 1, domain.NewTransaction{Type: domain.TxDeposit, Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)
	second, err := store.CreateTransaction(ctx, 1, domain.NewTransaction{Type: domain.TxBuy, Amount: decimal.NewFromInt(1)})
	require.NoError(t, err)

	rows, err := store.ListTransactions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, second.ID, rows[0].ID)
	assert.Equal(t, first.ID, rows[1].ID)
}

func TestStore_Constraints(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	store.SeedUser(domain.UserRecord{ID: 1})

	_, err := store.SetBalance(ctx, 1, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)

	_, err = store.SetBalance(ctx, 99, decimal.NewFromInt(1))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = store.CreateListing(ctx, domain.NewListing{SellerID: 1, ItemID: "a", Price: decimal.RequireFromString("0.5")})
	assert.ErrorIs(t, err, domain.ErrInvalidPrice)

	_, err = store.CreateDepositRequest(ctx, 1, decimal.Zero, decimal.NewFromInt(100))
	assert.ErrorIs(t, err, domain.ErrInvalidAmount)
}

func TestStore_ListingStatusTransitions(t *testing.T) {
	ctx := context.Background()
	store := New(nil)
	store.SeedUser(domain.UserRecord{ID: 1})

	listing, err := store.CreateListing(ctx, domain.NewListing{SellerID: 1, ItemID: "a", Price: decimal.NewFromInt(25)})
	require.NoError(t, err)
	assert.Equal(t, domain.ListingPending, listing.Status)

	assert.Error(t, store.SetListingStatus(listing.ID, domain.ListingSold))
	require.NoError(t, store.SetListingStatus(listing.ID, domain.ListingApproved))
	require.NoError(t, store.SetListingStatus(listing.ID, domain.ListingSold))

	rows, err := store.ListListings(ctx, 1)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, domain.ListingSold, rows[0].Status)
}
