// Package realtime fans ledger change notifications out to per-identity subscribers.
package realtime

import (
	"fmt"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// Channel names one of the three per-identity notification streams
type Channel string

const (
	ChannelBalance      Channel = "balance"
	ChannelTransactions Channel = "transactions"
	ChannelOwnedItems   Channel = "owned_items"
)

type subscription struct {
	channel      Channel
	onBalance    func(decimal.Decimal)
	onInsertTx   func(domain.TransactionRecord)
	onInsertItem func(domain.OwnedItemRecord)
	onRemoveItem func(string)
}

// Hub routes notifications to the subscriptions registered for an identity.
// Callbacks run synchronously on the publisher's goroutine, outside the hub lock.
type Hub struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[int64]map[uint64]*subscription
}

var _ repository.Subscriber = (*Hub)(nil)

// NewHub creates an empty hub
func NewHub() *Hub {
	return &Hub{subs: make(map[int64]map[uint64]*subscription)}
}

func (h *Hub) add(identity int64, sub *subscription) repository.Unsubscribe {
	h.mu.Lock()
	h.nextID++
	id := h.nextID
	if h.subs[identity] == nil {
		h.subs[identity] = make(map[uint64]*subscription)
	}
	h.subs[identity][id] = sub
	h.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			h.mu.Lock()
			defer h.mu.Unlock()
			delete(h.subs[identity], id)
			if len(h.subs[identity]) == 0 {
				delete(h.subs, identity)
			}
		})
	}
}

// SubscribeBalance registers a balance listener for identity
func (h *Hub) SubscribeBalance(identity int64, onChange func(balance decimal.Decimal)) repository.Unsubscribe {
	return h.add(identity, &subscription{channel: ChannelBalance, onBalance: onChange})
}

// SubscribeTransactions registers a transaction-insert listener for identity
func (h *Hub) SubscribeTransactions(identity int64, onInsert func(tx domain.TransactionRecord)) repository.Unsubscribe {
	return h.add(identity, &subscription{channel: ChannelTransactions, onInsertTx: onInsert})
}

// SubscribeOwnedItems registers owned-item insert and remove listeners for identity
func (h *Hub) SubscribeOwnedItems(identity int64, onInsert func(item domain.OwnedItemRecord), onRemove func(itemID string)) repository.Unsubscribe {
	return h.add(identity, &subscription{channel: ChannelOwnedItems, onInsertItem: onInsert, onRemoveItem: onRemove})
}

// snapshot copies the identity's subscriptions on one channel
func (h *Hub) snapshot(identity int64, channel Channel) []*subscription {
	h.mu.RLock()
	defer h.mu.RUnlock()

	out := make([]*subscription, 0, len(h.subs[identity]))
	for _, sub := range h.subs[identity] {
		if sub.channel == channel {
			out = append(out, sub)
		}
	}
	return out
}

// PublishBalance delivers a new balance to identity's balance subscribers
func (h *Hub) PublishBalance(identity int64, balance decimal.Decimal) error {
	if balance.IsNegative() {
		return fmt.Errorf("%w: negative balance %s for user %d", domain.ErrMalformedRecord, balance, identity)
	}
	for _, sub := range h.snapshot(identity, ChannelBalance) {
		sub.onBalance(balance)
	}
	return nil
}

// PublishTransaction delivers an inserted history row to its owner's subscribers
func (h *Hub) PublishTransaction(rec domain.TransactionRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	for _, sub := range h.snapshot(rec.UserID, ChannelTransactions) {
		sub.onInsertTx(rec)
	}
	return nil
}

// PublishItemAdded delivers an inserted owned-item row to its owner's subscribers
func (h *Hub) PublishItemAdded(rec domain.OwnedItemRecord) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	for _, sub := range h.snapshot(rec.UserID, ChannelOwnedItems) {
		if sub.onInsertItem != nil {
			sub.onInsertItem(rec)
		}
	}
	return nil
}

// PublishItemRemoved tells identity's subscribers an owned item is gone
func (h *Hub) PublishItemRemoved(identity int64, itemID string) error {
	if itemID == "" {
		return fmt.Errorf("%w: removal without item id for user %d", domain.ErrMalformedRecord, identity)
	}
	for _, sub := range h.snapshot(identity, ChannelOwnedItems) {
		if sub.onRemoveItem != nil {
			sub.onRemoveItem(itemID)
		}
	}
	return nil
}

// SubscriptionCount returns how many subscriptions identity holds
func (h *Hub) SubscriptionCount(identity int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[identity])
}

// IdentityCount returns how many identities hold at least one subscription
func (h *Hub) IdentityCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs)
}
