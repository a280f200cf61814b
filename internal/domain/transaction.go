package domain

import (
	"sync/atomic"
	"time"

	"github.com/shopspring/decimal"
)

// TxType is the kind of economic event a history row records
type TxType string

const (
	TxDeposit  TxType = "deposit"
	TxWithdraw TxType = "withdraw"
	TxBuy      TxType = "buy"
	TxSell     TxType = "sell"
)

// Valid reports whether the type is a known value
func (t TxType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdraw, TxBuy, TxSell:
		return true
	}
	return false
}

// IsCredit is true for types that add to the balance
func (t TxType) IsCredit() bool {
	return t == TxDeposit || t == TxSell
}

// Transaction is a single history entry. Local-only entries carry a negative ID.
type Transaction struct {
	ID        int64           `json:"id"`
	Type      TxType          `json:"type"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"-"`
	Display   string          `json:"amount"`
	Timestamp time.Time       `json:"timestamp"`
	ItemID    string          `json:"item_id,omitempty"`
	ItemTitle string          `json:"item_title,omitempty"`
	LocalOnly bool            `json:"local_only,omitempty"`
}

// NewTransaction is the store payload for a history row
type NewTransaction struct {
	Type      TxType
	Title     string
	Amount    decimal.Decimal
	ItemID    string
	ItemTitle string
}

var localTxSeq atomic.Int64

// LocalTransaction synthesizes a history entry that exists only in this session.
// IDs are negative and unique per process so they never collide with
// store-assigned ones or with each other.
func LocalTransaction(tx NewTransaction, now time.Time) Transaction {
	return Transaction{
		ID:        -localTxSeq.Add(1),
		Type:      tx.Type,
		Title:     tx.Title,
		Amount:    tx.Amount,
		Display:   FormatSignedAmount(tx.Type, tx.Amount),
		Timestamp: now,
		ItemID:    tx.ItemID,
		ItemTitle: tx.ItemTitle,
		LocalOnly: true,
	}
}
