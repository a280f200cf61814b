package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Ledger defines the remote ledger store consumed by the mirror and the economy service
type Ledger interface {
	GetOrCreateUser(ctx context.Context, identity int64, profile domain.Profile) (*domain.UserRecord, error)
	SetBalance(ctx context.Context, identity int64, balance decimal.Decimal) (*domain.UserRecord, error)

	CreateTransaction(ctx context.Context, identity int64, tx domain.NewTransaction) (*domain.TransactionRecord, error)
	// ListTransactions returns the user's history, newest first
	ListTransactions(ctx context.Context, identity int64) ([]domain.TransactionRecord, error)

	AddOwnedItem(ctx context.Context, identity int64, item domain.NewOwnedItem) (*domain.OwnedItemRecord, error)
	ListOwnedItems(ctx context.Context, identity int64) ([]domain.OwnedItemRecord, error)
	RemoveOwnedItem(ctx context.Context, identity int64, itemID string) error
	OwnsItem(ctx context.Context, identity int64, itemID string) (bool, error)

	CreateListing(ctx context.Context, listing domain.NewListing) (*domain.ListingRecord, error)
	ListListings(ctx context.Context, sellerID int64) ([]domain.ListingRecord, error)

	CreateDepositRequest(ctx context.Context, identity int64, amountTon, amountRub decimal.Decimal) (*domain.DepositRequestRecord, error)
}

// Settings defines read access to operator-managed key/value settings
type Settings interface {
	GetSetting(ctx context.Context, key string) (string, error)
	ListSettings(ctx context.Context) (map[string]string, error)
}
