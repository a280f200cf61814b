package realtime

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Publisher is the producing side of the hub, fed by a store transport
type Publisher interface {
	PublishBalance(identity int64, balance decimal.Decimal) error
	PublishTransaction(rec domain.TransactionRecord) error
	PublishItemAdded(rec domain.OwnedItemRecord) error
	PublishItemRemoved(identity int64, itemID string) error
}

var _ Publisher = (*Hub)(nil)
