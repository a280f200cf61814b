// Package mocks holds testify mocks of the repository interfaces.
package mocks

import (
	"context"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// MockLedger implements repository.Ledger for testing
type MockLedger struct {
	mock.Mock
}

var _ repository.Ledger = (*MockLedger)(nil)

func (m *MockLedger) GetOrCreateUser(ctx context.Context, identity int64, profile domain.Profile) (*domain.UserRecord, error) {
	args := m.Called(ctx, identity, profile)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRecord), args.Error(1)
}

func (m *MockLedger) SetBalance(ctx context.Context, identity int64, balance decimal.Decimal) (*domain.UserRecord, error) {
	args := m.Called(ctx, identity, balance)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.UserRecord), args.Error(1)
}

func (m *MockLedger) CreateTransaction(ctx context.Context, identity int64, tx domain.NewTransaction) (*domain.TransactionRecord, error) {
	args := m.Called(ctx, identity, tx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.TransactionRecord), args.Error(1)
}

func (m *MockLedger) ListTransactions(ctx context.Context, identity int64) ([]domain.TransactionRecord, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.TransactionRecord), args.Error(1)
}

func (m *MockLedger) AddOwnedItem(ctx context.Context, identity int64, item domain.NewOwnedItem) (*domain.OwnedItemRecord, error) {
	args := m.Called(ctx, identity, item)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.OwnedItemRecord), args.Error(1)
}

func (m *MockLedger) ListOwnedItems(ctx context.Context, identity int64) ([]domain.OwnedItemRecord, error) {
	args := m.Called(ctx, identity)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.OwnedItemRecord), args.Error(1)
}

func (m *MockLedger) RemoveOwnedItem(ctx context.Context, identity int64, itemID string) error {
	return m.Called(ctx, identity, itemID).Error(0)
}

func (m *MockLedger) OwnsItem(ctx context.Context, identity int64, itemID string) (bool, error) {
	args := m.Called(ctx, identity, itemID)
	return args.Bool(0), args.Error(1)
}

func (m *MockLedger) CreateListing(ctx context.Context, listing domain.NewListing) (*domain.ListingRecord, error) {
	args := m.Called(ctx, listing)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ListingRecord), args.Error(1)
}

func (m *MockLedger) ListListings(ctx context.Context, sellerID int64) ([]domain.ListingRecord, error) {
	args := m.Called(ctx, sellerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.ListingRecord), args.Error(1)
}

func (m *MockLedger) CreateDepositRequest(ctx context.Context, identity int64, amountTon, amountRub decimal.Decimal) (*domain.DepositRequestRecord, error) {
	args := m.Called(ctx, identity, amountTon, amountRub)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.DepositRequestRecord), args.Error(1)
}

// MockSettings implements repository.Settings for testing
type MockSettings struct {
	mock.Mock
}

var _ repository.Settings = (*MockSettings)(nil)

func (m *MockSettings) GetSetting(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockSettings) ListSettings(ctx context.Context) (map[string]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]string), args.Error(1)
}
