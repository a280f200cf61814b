package domain

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionRecord_Validate(t *testing.T) {
	valid := TransactionRecord{ID: 7, UserID: 42, Type: TxBuy, Title: "Buy", Amount: decimal.NewFromInt(30)}

	t.Run("valid record", func(t *testing.T) {
		assert.NoError(t, valid.Validate())
	})

	t.Run("unknown type", func(t *testing.T) {
		rec := valid
		rec.Type = "refund"
		err := rec.Validate()
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrMalformedRecord)
		assert.Contains(t, err.Error(), "refund")
	})

	t.Run("missing id", func(t *testing.T) {
		rec := valid
		rec.ID = 0
		assert.ErrorIs(t, rec.Validate(), ErrMalformedRecord)
	})

	t.Run("negative amount", func(t *testing.T) {
		rec := valid
		rec.Amount = decimal.NewFromInt(-1)
		assert.ErrorIs(t, rec.Validate(), ErrMalformedRecord)
	})
}

func TestTransactionRecord_ToTransaction(t *testing.T) {
	created := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	rec := TransactionRecord{
		ID: 9, UserID: 42, Type: TxBuy, Title: "Purchase: Plush Pepe",
		Amount: decimal.NewFromInt(30), ItemID: "pepe-1", ItemTitle: "Plush Pepe", CreatedAt: created,
	}

	tx := rec.ToTransaction()

	assert.Equal(t, int64(9), tx.ID)
	assert.Equal(t, "-30 TON", tx.Display)
	assert.Equal(t, "pepe-1", tx.ItemID)
	assert.Equal(t, created, tx.Timestamp)
	assert.False(t, tx.LocalOnly)
}

func TestOwnedItemRecord_Validate(t *testing.T) {
	valid := OwnedItemRecord{ID: 1, UserID: 42, ItemID: "pepe-1", Title: "Plush Pepe", Price: decimal.NewFromInt(30), Origin: OriginPurchase}

	assert.NoError(t, valid.Validate())

	noItem := valid
	noItem.ItemID = ""
	assert.ErrorIs(t, noItem.Validate(), ErrMalformedRecord)

	badOrigin := valid
	badOrigin.Origin = "stolen"
	assert.ErrorIs(t, badOrigin.Validate(), ErrMalformedRecord)

	zeroPrice := valid
	zeroPrice.Price = decimal.Zero
	assert.ErrorIs(t, zeroPrice.Validate(), ErrMalformedRecord)

	item := valid.ToItem()
	assert.True(t, item.Owner.Is(42))
	assert.Equal(t, OriginPurchase, item.Origin)
}

func TestUserRecord_ToUser(t *testing.T) {
	rec := UserRecord{ID: 42, FirstName: "Ann", Balance: decimal.RequireFromString("50.004")}

	require.NoError(t, rec.Validate())
	user := rec.ToUser()

	assert.Equal(t, "Ann", user.DisplayName)
	assert.Equal(t, "50", user.Balance.String())
	assert.Equal(t, "EQ42", user.Address())

	rec.Balance = decimal.NewFromInt(-1)
	assert.ErrorIs(t, rec.Validate(), ErrMalformedRecord)
}

func TestListingStatus_Transitions(t *testing.T) {
	assert.True(t, ListingPending.CanTransitionTo(ListingApproved))
	assert.True(t, ListingPending.CanTransitionTo(ListingRejected))
	assert.True(t, ListingApproved.CanTransitionTo(ListingSold))

	assert.False(t, ListingPending.CanTransitionTo(ListingSold))
	assert.False(t, ListingRejected.CanTransitionTo(ListingApproved))
	assert.False(t, ListingSold.CanTransitionTo(ListingPending))

	assert.True(t, ListingSold.Terminal())
	assert.True(t, ListingRejected.Terminal())
	assert.False(t, ListingPending.Terminal())
}

func TestLocalTransaction(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	tx := LocalTransaction(NewTransaction{Type: TxDeposit, Title: "Deposit", Amount: TestDepositAmount}, now)

	assert.Less(t, tx.ID, int64(0))
	assert.True(t, tx.LocalOnly)
	assert.Equal(t, "+100 TON", tx.Display)
}

func TestLocalTransaction_SameInstantGetsDistinctIDs(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	a := LocalTransaction(NewTransaction{Type: TxDeposit, Amount: TestDepositAmount}, now)
	b := LocalTransaction(NewTransaction{Type: TxDeposit, Amount: TestDepositAmount}, now)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Less(t, b.ID, int64(0))
}
