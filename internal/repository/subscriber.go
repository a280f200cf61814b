package repository

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Unsubscribe releases a subscription. Calling it more than once is a no-op.
type Unsubscribe func()

// Subscriber delivers the store's change notifications for one identity.
// Callbacks run on the transport's goroutine.
type Subscriber interface {
	SubscribeBalance(identity int64, onChange func(balance decimal.Decimal)) Unsubscribe
	SubscribeTransactions(identity int64, onInsert func(tx domain.TransactionRecord)) Unsubscribe
	SubscribeOwnedItems(identity int64, onInsert func(item domain.OwnedItemRecord), onRemove func(itemID string)) Unsubscribe
}
