package mirror

import (
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

const buyer int64 = 42

func testCatalog() []domain.Item {
	return []domain.Item{
		{ID: "pepe-1", Title: "Plush Pepe", Price: decimal.NewFromInt(30), Image: "pepe.png", Collection: "Plush Pepe"},
		{ID: "cap-2", Title: "Durov's Cap", Price: decimal.NewFromInt(500), Image: "cap.png"},
	}
}

func withBalance(t *testing.T, m *Mirror, amount int64) {
	t.Helper()
	require.True(t, m.ApplyRemoteBalance(decimal.NewFromInt(amount)))
}

func TestApplyRemoteTransaction_Idempotent(t *testing.T) {
	m := New(buyer, testCatalog())
	tx := domain.Transaction{ID: 7, Type: domain.TxDeposit, Title: "Deposit", Amount: decimal.NewFromInt(100), Display: "+100 TON"}

	assert.True(t, m.ApplyRemoteTransaction(tx))
	once := m.History()

	assert.False(t, m.ApplyRemoteTransaction(tx))
	assert.Equal(t, once, m.History())
	assert.Len(t, m.History(), 1)
}

func TestApplyRemoteTransaction_PrependsNewestFirst(t *testing.T) {
	m := New(buyer, nil)
	m.ApplyRemoteTransaction(domain.Transaction{ID: 1, Type: domain.TxDeposit})
	m.ApplyRemoteTransaction(domain.Transaction{ID: 2, Type: domain.TxBuy})

	h := m.History()
	require.Len(t, h, 2)
	assert.Equal(t, int64(2), h[0].ID)
	assert.Equal(t, int64(1), h[1].ID)
}

func TestApplyRemoteItemAdded_ReplacesInPlace(t *testing.T) {
	m := New(buyer, testCatalog())

	owned := domain.Item{ID: "cap-2", Title: "Durov's Cap", Price: decimal.NewFromInt(500), Owner: domain.Owner(buyer), Origin: domain.OriginGift}
	assert.False(t, m.ApplyRemoteItemAdded(owned), "known id is replaced, not added")
	assert.False(t, m.ApplyRemoteItemAdded(owned))

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "cap-2", items[1].ID, "position is kept")
	assert.True(t, items[1].Owner.Is(buyer))

	fresh := domain.Item{ID: "new-3", Title: "New", Price: decimal.NewFromInt(5), Owner: domain.Owner(buyer), Origin: domain.OriginPurchase}
	assert.True(t, m.ApplyRemoteItemAdded(fresh))
	assert.Equal(t, "new-3", m.Items()[0].ID, "unknown id is prepended")
}

func TestApplyRemoteItemRemoved_ClearsOwnerKeepsPosition(t *testing.T) {
	m := New(buyer, testCatalog())
	m.ApplyRemoteItemAdded(domain.Item{ID: "pepe-1", Title: "Plush Pepe", Price: decimal.NewFromInt(30), Owner: domain.Owner(buyer)})

	assert.True(t, m.ApplyRemoteItemRemoved("pepe-1"))
	assert.False(t, m.ApplyRemoteItemRemoved("unknown"))

	items := m.Items()
	require.Len(t, items, 2)
	assert.Equal(t, "pepe-1", items[0].ID)
	assert.Equal(t, domain.Unowned, items[0].Owner)
	assert.Empty(t, m.OwnedItems(OriginAll))
}

func TestApplyRemoteBalance(t *testing.T) {
	m := New(buyer, nil)

	assert.True(t, m.ApplyRemoteBalance(decimal.RequireFromString("150.004")))
	assert.Equal(t, "150", m.Balance().String())

	assert.False(t, m.ApplyRemoteBalance(decimal.NewFromInt(-1)))
	assert.Equal(t, "150", m.Balance().String(), "negative push is dropped")
}

func TestApplyPurchase(t *testing.T) {
	t.Run("debits and transfers", func(t *testing.T) {
		m := New(buyer, testCatalog())
		withBalance(t, m, 150)

		item, undo, err := m.ApplyPurchase("pepe-1")
		require.NoError(t, err)

		u := m.User()
		assert.Equal(t, "120", u.Balance.String())
		assert.Equal(t, 1, u.BoughtCount)
		assert.Equal(t, "30", u.TotalVolume.String())
		assert.True(t, item.Owner.Is(buyer))
		assert.Equal(t, domain.OriginPurchase, item.Origin)
		assert.Equal(t, "150", undo.Balance.String())

		stored, _ := m.Item("pepe-1")
		assert.True(t, stored.Owner.Is(buyer))
	})

	t.Run("insufficient funds leaves state untouched", func(t *testing.T) {
		m := New(buyer, testCatalog())
		withBalance(t, m, 100)
		before := m.Snapshot()

		_, _, err := m.ApplyPurchase("cap-2")
		assert.ErrorIs(t, err, domain.ErrInsufficientFunds)
		assert.Equal(t, before, m.Snapshot())
	})

	t.Run("already owned", func(t *testing.T) {
		m := New(buyer, testCatalog())
		withBalance(t, m, 150)
		_, _, err := m.ApplyPurchase("pepe-1")
		require.NoError(t, err)
		before := m.Snapshot()

		_, _, err = m.ApplyPurchase("pepe-1")
		assert.ErrorIs(t, err, domain.ErrAlreadyOwned)
		assert.Equal(t, before, m.Snapshot())
	})

	t.Run("unknown item", func(t *testing.T) {
		m := New(buyer, testCatalog())
		_, _, err := m.ApplyPurchase("nope")
		assert.ErrorIs(t, err, domain.ErrItemNotFound)
	})
}

func TestRevertPurchase(t *testing.T) {
	m := New(buyer, testCatalog())
	withBalance(t, m, 150)

	_, undo, err := m.ApplyPurchase("pepe-1")
	require.NoError(t, err)
	m.RevertPurchase(undo)

	u := m.User()
	assert.Equal(t, "150", u.Balance.String())
	assert.Zero(t, u.BoughtCount)
}

func TestOwnedItems_OriginFilter(t *testing.T) {
	m := New(buyer, nil)
	m.ApplyRemoteItemAdded(domain.Item{ID: "g", Owner: domain.Owner(buyer), Origin: domain.OriginGift, Price: decimal.NewFromInt(1)})
	m.ApplyRemoteItemAdded(domain.Item{ID: "p", Owner: domain.Owner(buyer), Origin: domain.OriginPurchase, Price: decimal.NewFromInt(1)})
	m.ApplyRemoteItemAdded(domain.Item{ID: "other", Owner: 7, Origin: domain.OriginGift, Price: decimal.NewFromInt(1)})

	assert.Len(t, m.OwnedItems(OriginAll), 2)
	require.Len(t, m.OwnedItems(OriginGift), 1)
	assert.Equal(t, "g", m.OwnedItems(OriginGift)[0].ID)
	require.Len(t, m.OwnedItems(OriginPurchase), 1)
	assert.Equal(t, "p", m.OwnedItems(OriginPurchase)[0].ID)
}

func TestAddLocalTransaction_MarksLocalOnly(t *testing.T) {
	m := New(buyer, nil)
	tx := domain.LocalTransaction(domain.NewTransaction{Type: domain.TxDeposit, Title: "Deposit", Amount: decimal.NewFromInt(100)}, time.Now())

	m.AddLocalTransaction(tx)

	h := m.History()
	require.Len(t, h, 1)
	assert.True(t, h[0].LocalOnly)
	assert.Less(t, h[0].ID, int64(0))
}

func TestOnChange(t *testing.T) {
	m := New(buyer, testCatalog())
	var kinds []ChangeKind
	m.OnChange(func(c Change) { kinds = append(kinds, c.Kind) })

	withBalance(t, m, 100)
	m.ApplyRemoteTransaction(domain.Transaction{ID: 1, Type: domain.TxDeposit})
	m.ApplyRemoteTransaction(domain.Transaction{ID: 1, Type: domain.TxDeposit})
	_, _, err := m.ApplyPurchase("pepe-1")
	require.NoError(t, err)

	assert.Equal(t, []ChangeKind{ChangeUser, ChangeHistory, ChangeUser, ChangeItem}, kinds)
}

func TestNewPlaceholder(t *testing.T) {
	m := NewPlaceholder(testCatalog())

	assert.Zero(t, m.Identity())
	assert.Equal(t, "guest", m.User().DisplayName)
	assert.Len(t, m.Items(), 2)
	assert.Empty(t, m.OwnedItems(OriginAll), "unowned items never count as the guest's")
}

func TestMirror_ConcurrentMerges(t *testing.T) {
	m := New(buyer, testCatalog())

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func(id int64) {
			defer wg.Done()
			m.ApplyRemoteTransaction(domain.Transaction{ID: id % 10, Type: domain.TxDeposit})
		}(int64(i))
		go func() {
			defer wg.Done()
			_ = m.Snapshot()
		}()
	}
	wg.Wait()

	assert.Len(t, m.History(), 10)
}

func TestAddLocalTransaction_SameInstantKeepsBoth(t *testing.T) {
	m := New(buyer, nil)
	now := time.Now()
	m.AddLocalTransaction(domain.LocalTransaction(domain.NewTransaction{Type: domain.TxDeposit, Title: "Deposit", Amount: decimal.NewFromInt(1)}, now))
	m.AddLocalTransaction(domain.LocalTransaction(domain.NewTransaction{Type: domain.TxDeposit, Title: "Deposit", Amount: decimal.NewFromInt(2)}, now))

	assert.Len(t, m.History(), 2)
}
