// Package mirror holds one identity's best-known copy of the ledger:
// the user, the catalog view with ownership, and the transaction history.
package mirror

import (
	"log/slog"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Snapshot is a consistent copy of the mirror's state
type Snapshot struct {
	User    domain.User          `json:"user"`
	Items   []domain.Item        `json:"items"`
	History []domain.Transaction `json:"history"`
}

// Change describes one applied mutation. Exactly one of the pointers is set.
type Change struct {
	Kind        ChangeKind          `json:"kind"`
	User        *domain.User        `json:"user,omitempty"`
	Item        *domain.Item        `json:"item,omitempty"`
	Transaction *domain.Transaction `json:"transaction,omitempty"`
}

// Mirror is safe for concurrent use. Engine writes and push merges both go
// through id-keyed upserts, so replaying a fact is a no-op.
type Mirror struct {
	mu       sync.RWMutex
	identity int64
	user     domain.User

	items    []*domain.Item
	itemByID map[string]*domain.Item

	history []domain.Transaction
	txIDs   map[int64]struct{}

	// gen counts remote merges; balanceAt and itemAt record the gen of the
	// last merge that touched them so Load can keep facts newer than its reads
	gen       uint64
	balanceAt uint64
	itemAt    map[string]uint64

	obsMu     sync.RWMutex
	observers []func(Change)
}

// New creates a mirror for identity over a copy of the catalog
func New(identity int64, catalog []domain.Item) *Mirror {
	m := &Mirror{
		identity: identity,
		itemByID: make(map[string]*domain.Item, len(catalog)),
		txIDs:    make(map[int64]struct{}),
		itemAt:   make(map[string]uint64),
	}
	for i := range catalog {
		it := catalog[i]
		if _, dup := m.itemByID[it.ID]; dup {
			continue
		}
		m.items = append(m.items, &it)
		m.itemByID[it.ID] = &it
	}
	m.user = domain.User{ID: identity, Balance: decimal.Zero, TotalVolume: decimal.Zero}
	return m
}

// NewPlaceholder creates an identity-less mirror with the guest user. It never talks to a store.
func NewPlaceholder(catalog []domain.Item) *Mirror {
	m := New(0, catalog)
	m.user = domain.PlaceholderUser()
	return m
}

// Identity returns the identity the mirror belongs to; 0 for the placeholder
func (m *Mirror) Identity() int64 {
	return m.identity
}

// OnChange registers an observer called after every applied mutation, outside the mirror lock
func (m *Mirror) OnChange(fn func(Change)) {
	m.obsMu.Lock()
	m.observers = append(m.observers, fn)
	m.obsMu.Unlock()
}

func (m *Mirror) notify(changes ...Change) {
	m.obsMu.RLock()
	observers := append([]func(Change){}, m.observers...)
	m.obsMu.RUnlock()

	for _, c := range changes {
		for _, fn := range observers {
			fn(c)
		}
	}
}

func userChange(u domain.User) Change {
	return Change{Kind: ChangeUser, User: &u}
}

func itemChange(it domain.Item) Change {
	return Change{Kind: ChangeItem, Item: &it}
}

func historyChange(tx domain.Transaction) Change {
	return Change{Kind: ChangeHistory, Transaction: &tx}
}

// --- read accessors ---

// User returns a copy of the current user
func (m *Mirror) User() domain.User {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user
}

// Balance returns the current balance
func (m *Mirror) Balance() decimal.Decimal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.user.Balance
}

// Items returns the catalog view in display order
func (m *Mirror) Items() []domain.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.itemsLocked()
}

func (m *Mirror) itemsLocked() []domain.Item {
	out := make([]domain.Item, len(m.items))
	for i, it := range m.items {
		out[i] = *it
	}
	return out
}

// Item looks an item up by id
func (m *Mirror) Item(id string) (domain.Item, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	it, ok := m.itemByID[id]
	if !ok {
		return domain.Item{}, false
	}
	return *it, true
}

// OwnedItems returns the identity's items, optionally restricted to one origin
func (m *Mirror) OwnedItems(filter OriginFilter) []domain.Item {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []domain.Item
	for _, it := range m.items {
		if !it.Owner.Is(m.identity) {
			continue
		}
		switch filter {
		case OriginGift:
			if it.Origin != domain.OriginGift {
				continue
			}
		case OriginPurchase:
			if it.Origin != domain.OriginPurchase {
				continue
			}
		}
		out = append(out, *it)
	}
	return out
}

// History returns history newest-first by insertion
func (m *Mirror) History() []domain.Transaction {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]domain.Transaction(nil), m.history...)
}

// Snapshot returns user, items and history under one read lock
func (m *Mirror) Snapshot() Snapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return Snapshot{
		User:    m.user,
		Items:   m.itemsLocked(),
		History: append([]domain.Transaction(nil), m.history...),
	}
}

// --- remote merges ---

// ApplyRemoteBalance overwrites the balance. The store is authoritative for balance.
func (m *Mirror) ApplyRemoteBalance(balance decimal.Decimal) bool {
	if balance.IsNegative() {
		slog.Warn(LogMsgNegativeBalanceDropped, "identity", m.identity, "balance", balance.String())
		return false
	}
	m.mu.Lock()
	m.gen++
	m.balanceAt = m.gen
	m.user.Balance = domain.Round2(balance)
	u := m.user
	m.mu.Unlock()

	m.notify(userChange(u))
	return true
}

// ApplyRemoteTransaction prepends tx unless an entry with the same id exists.
// It reports whether the history changed.
func (m *Mirror) ApplyRemoteTransaction(tx domain.Transaction) bool {
	m.mu.Lock()
	if !m.prependTxLocked(tx) {
		m.mu.Unlock()
		return false
	}
	m.mu.Unlock()

	m.notify(historyChange(tx))
	return true
}

func (m *Mirror) prependTxLocked(tx domain.Transaction) bool {
	if _, dup := m.txIDs[tx.ID]; dup {
		return false
	}
	m.txIDs[tx.ID] = struct{}{}
	m.history = append([]domain.Transaction{tx}, m.history...)
	return true
}

// ApplyRemoteItemAdded upserts by id: replace in place, else prepend.
// It reports whether the item was new.
func (m *Mirror) ApplyRemoteItemAdded(item domain.Item) bool {
	m.mu.Lock()
	m.touchItemLocked(item.ID)
	added := m.upsertItemLocked(item)
	m.mu.Unlock()

	m.notify(itemChange(item))
	return added
}

func (m *Mirror) touchItemLocked(id string) {
	m.gen++
	m.itemAt[id] = m.gen
}

func (m *Mirror) upsertItemLocked(item domain.Item) bool {
	if existing, ok := m.itemByID[item.ID]; ok {
		*existing = item
		return false
	}
	it := item
	m.items = append([]*domain.Item{&it}, m.items...)
	m.itemByID[it.ID] = &it
	return true
}

// ApplyRemoteItemRemoved clears the owner but keeps the item and its position.
// It reports whether the item was known.
func (m *Mirror) ApplyRemoteItemRemoved(itemID string) bool {
	m.mu.Lock()
	it, ok := m.itemByID[itemID]
	if !ok {
		m.mu.Unlock()
		return false
	}
	m.touchItemLocked(itemID)
	it.Owner = domain.Unowned
	cp := *it
	m.mu.Unlock()

	m.notify(itemChange(cp))
	return true
}

// --- optimistic mutators (engine only) ---

// SetBalance applies an optimistic balance. Negative values are refused.
func (m *Mirror) SetBalance(balance decimal.Decimal) bool {
	return m.ApplyRemoteBalance(balance)
}

// PurchaseUndo restores what a panicking purchase may have changed
type PurchaseUndo struct {
	Balance     decimal.Decimal
	BoughtCount int
}

// ApplyPurchase checks funds and ownership and, if both pass, debits price,
// bumps boughtCount and totalVolume and hands the item to the buyer.
// On error nothing changes.
func (m *Mirror) ApplyPurchase(itemID string) (domain.Item, PurchaseUndo, error) {
	m.mu.Lock()

	it, ok := m.itemByID[itemID]
	if !ok {
		m.mu.Unlock()
		return domain.Item{}, PurchaseUndo{}, domain.ErrItemNotFound
	}
	if m.user.Balance.LessThan(it.Price) {
		m.mu.Unlock()
		return domain.Item{}, PurchaseUndo{}, domain.ErrInsufficientFunds
	}
	if it.Owner.Is(m.identity) {
		m.mu.Unlock()
		return domain.Item{}, PurchaseUndo{}, domain.ErrAlreadyOwned
	}

	undo := PurchaseUndo{Balance: m.user.Balance, BoughtCount: m.user.BoughtCount}
	m.user.Balance = domain.Round2(m.user.Balance.Sub(it.Price))
	m.user.BoughtCount++
	m.user.TotalVolume = domain.Round2(m.user.TotalVolume.Add(it.Price))
	it.Owner = domain.Owner(m.identity)
	it.Origin = domain.OriginPurchase

	u, bought := m.user, *it
	m.mu.Unlock()

	m.notify(userChange(u), itemChange(bought))
	return bought, undo, nil
}

// RevertPurchase restores balance and boughtCount from undo
func (m *Mirror) RevertPurchase(undo PurchaseUndo) {
	m.mu.Lock()
	m.user.Balance = undo.Balance
	m.user.BoughtCount = undo.BoughtCount
	u := m.user
	m.mu.Unlock()

	m.notify(userChange(u))
}

// AddLocalTransaction records a history entry the store never acknowledged
func (m *Mirror) AddLocalTransaction(tx domain.Transaction) {
	tx.LocalOnly = true
	m.ApplyRemoteTransaction(tx)
}

// AddItem puts an item the user just created at the top of the catalog view
func (m *Mirror) AddItem(item domain.Item) {
	m.ApplyRemoteItemAdded(item)
}
