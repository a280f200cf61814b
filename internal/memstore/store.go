// Package memstore is an in-process ledger used by tests and local development.
// It mimics the store's constraints and pushes the same notifications the
// database triggers would.
package memstore

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/realtime"
	"github.com/osse101/GiftMarket_Go/internal/repository"
)

// Store is a mutex-guarded in-memory ledger
type Store struct {
	mu        sync.Mutex
	publisher realtime.Publisher
	now       func() time.Time
	seq       int64

	users    map[int64]*domain.UserRecord
	txs      map[int64][]domain.TransactionRecord
	items    map[int64][]domain.OwnedItemRecord
	listings []domain.ListingRecord
	deposits []domain.DepositRequestRecord
	settings map[string]string
}

var (
	_ repository.Ledger   = (*Store)(nil)
	_ repository.Settings = (*Store)(nil)
)

// New creates an empty store. publisher may be nil when nobody listens.
func New(publisher realtime.Publisher) *Store {
	return &Store{
		publisher: publisher,
		now:       time.Now,
		users:     make(map[int64]*domain.UserRecord),
		txs:       make(map[int64][]domain.TransactionRecord),
		items:     make(map[int64][]domain.OwnedItemRecord),
		settings:  map[string]string{domain.SettingSupportUsername: domain.DefaultSupportUsername},
	}
}

func (s *Store) nextID() int64 {
	s.seq++
	return s.seq
}

// publish runs after the store lock is released
func (s *Store) publish(fn func(p realtime.Publisher) error) {
	if s.publisher == nil {
		return
	}
	if err := fn(s.publisher); err != nil {
		slog.Default().Warn("Dropped ledger notification", "error", err)
	}
}

// SeedUser installs or replaces a user row without notifications
func (s *Store) SeedUser(rec domain.UserRecord) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if rec.ReferralCode == "" {
		rec.ReferralCode = domain.ReferralCode(rec.ID)
	}
	s.users[rec.ID] = &rec
}

// SetSetting stores an operator setting
func (s *Store) SetSetting(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settings[key] = value
}

func (s *Store) GetOrCreateUser(_ context.Context, identity int64, profile domain.Profile) (*domain.UserRecord, error) {
	if identity <= 0 {
		return nil, fmt.Errorf("%w: identity %d", domain.ErrUnknownIdentity, identity)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if u, ok := s.users[identity]; ok {
		out := *u
		return &out, nil
	}

	now := s.now()
	u := &domain.UserRecord{
		ID:           identity,
		Username:     profile.Username,
		FirstName:    profile.FirstName,
		AvatarURL:    profile.AvatarURL,
		Balance:      decimal.Zero,
		ReferralCode: domain.ReferralCode(identity),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	s.users[identity] = u
	out := *u
	return &out, nil
}

func (s *Store) SetBalance(_ context.Context, identity int64, balance decimal.Decimal) (*domain.UserRecord, error) {
	if balance.IsNegative() {
		return nil, fmt.Errorf("%w: balance %s", domain.ErrInvalidAmount, balance)
	}

	s.mu.Lock()
	u, ok := s.users[identity]
	if !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, identity)
	}
	balance = domain.Round2(balance)
	changed := !u.Balance.Equal(balance)
	u.Balance = balance
	u.UpdatedAt = s.now()
	out := *u
	s.mu.Unlock()

	if changed {
		s.publish(func(p realtime.Publisher) error { return p.PublishBalance(identity, out.Balance) })
	}
	return &out, nil
}

func (s *Store) CreateTransaction(_ context.Context, identity int64, tx domain.NewTransaction) (*domain.TransactionRecord, error) {
	if !tx.Type.Valid() {
		return nil, fmt.Errorf("%w: transaction type %q", domain.ErrInvalidInput, tx.Type)
	}

	s.mu.Lock()
	if _, ok := s.users[identity]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, identity)
	}
	rec := domain.TransactionRecord{
		ID:        s.nextID(),
		UserID:    identity,
		Type:      tx.Type,
		Title:     tx.Title,
		Amount:    domain.Round2(tx.Amount),
		ItemID:    tx.ItemID,
		ItemTitle: tx.ItemTitle,
		CreatedAt: s.now(),
	}
	s.txs[identity] = append(s.txs[identity], rec)
	s.mu.Unlock()

	s.publish(func(p realtime.Publisher) error { return p.PublishTransaction(rec) })
	return &rec, nil
}

func (s *Store) ListTransactions(_ context.Context, identity int64) ([]domain.TransactionRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.txs[identity]
	out := make([]domain.TransactionRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

func (s *Store) AddOwnedItem(_ context.Context, identity int64, item domain.NewOwnedItem) (*domain.OwnedItemRecord, error) {
	if !item.Origin.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidOrigin, item.Origin)
	}
	if !item.Price.IsPositive() {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPrice, item.Price)
	}

	s.mu.Lock()
	if _, ok := s.users[identity]; !ok {
		s.mu.Unlock()
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, identity)
	}

	rec := domain.OwnedItemRecord{
		UserID:      identity,
		ItemID:      item.ItemID,
		Title:       item.Title,
		Subtitle:    item.Subtitle,
		Description: item.Description,
		Image:       item.Image,
		Price:       item.Price,
		Collection:  item.Collection,
		Model:       item.Model,
		Backdrop:    item.Backdrop,
		Origin:      item.Origin,
		PurchasedAt: s.now(),
	}

	// (user_id, nft_id) is unique; a repeat insert updates in place and, like
	// an ON CONFLICT update, does not fire the insert notification
	rows := s.items[identity]
	for i := range rows {
		if rows[i].ItemID == item.ItemID {
			rec.ID = rows[i].ID
			rows[i] = rec
			s.mu.Unlock()
			return &rec, nil
		}
	}
	rec.ID = s.nextID()
	s.items[identity] = append(rows, rec)
	s.mu.Unlock()

	s.publish(func(p realtime.Publisher) error { return p.PublishItemAdded(rec) })
	return &rec, nil
}

func (s *Store) ListOwnedItems(_ context.Context, identity int64) ([]domain.OwnedItemRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows := s.items[identity]
	out := make([]domain.OwnedItemRecord, 0, len(rows))
	for i := len(rows) - 1; i >= 0; i-- {
		out = append(out, rows[i])
	}
	return out, nil
}

func (s *Store) RemoveOwnedItem(_ context.Context, identity int64, itemID string) error {
	s.mu.Lock()
	rows := s.items[identity]
	removed := false
	for i := range rows {
		if rows[i].ItemID == itemID {
			s.items[identity] = append(rows[:i:i], rows[i+1:]...)
			removed = true
			break
		}
	}
	s.mu.Unlock()

	if removed {
		s.publish(func(p realtime.Publisher) error { return p.PublishItemRemoved(identity, itemID) })
	}
	return nil
}

func (s *Store) OwnsItem(_ context.Context, identity int64, itemID string) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, row := range s.items[identity] {
		if row.ItemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

func (s *Store) CreateListing(_ context.Context, listing domain.NewListing) (*domain.ListingRecord, error) {
	if !domain.PriceInListingBounds(listing.Price) {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidPrice, listing.Price)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[listing.SellerID]; !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, listing.SellerID)
	}
	now := s.now()
	rec := domain.ListingRecord{
		ID:        s.nextID(),
		ItemID:    listing.ItemID,
		ItemTitle: listing.ItemTitle,
		ItemImage: listing.ItemImage,
		SellerID:  listing.SellerID,
		Price:     domain.Round2(listing.Price),
		Status:    domain.ListingPending,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.listings = append(s.listings, rec)
	return &rec, nil
}

func (s *Store) ListListings(_ context.Context, sellerID int64) ([]domain.ListingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var out []domain.ListingRecord
	for i := len(s.listings) - 1; i >= 0; i-- {
		if s.listings[i].SellerID == sellerID {
			out = append(out, s.listings[i])
		}
	}
	return out, nil
}

// SetListingStatus plays the external approval process in tests
func (s *Store) SetListingStatus(id int64, status domain.ListingStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.listings {
		if s.listings[i].ID != id {
			continue
		}
		if !s.listings[i].Status.CanTransitionTo(status) {
			return fmt.Errorf("%w: listing %d cannot move from %s to %s",
				domain.ErrInvalidInput, id, s.listings[i].Status, status)
		}
		s.listings[i].Status = status
		s.listings[i].UpdatedAt = s.now()
		return nil
	}
	return fmt.Errorf("%w: listing %d", domain.ErrItemNotFound, id)
}

func (s *Store) CreateDepositRequest(_ context.Context, identity int64, amountTon, amountRub decimal.Decimal) (*domain.DepositRequestRecord, error) {
	if !amountTon.IsPositive() || !amountRub.IsPositive() {
		return nil, fmt.Errorf("%w: %s TON / %s RUB", domain.ErrInvalidAmount, amountTon, amountRub)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.users[identity]; !ok {
		return nil, fmt.Errorf("%w: %d", domain.ErrUserNotFound, identity)
	}
	rec := domain.DepositRequestRecord{
		ID:        s.nextID(),
		UserID:    identity,
		AmountTon: domain.Round2(amountTon),
		AmountRub: domain.Round2(amountRub),
		Status:    domain.DepositRequestPending,
		CreatedAt: s.now(),
	}
	s.deposits = append(s.deposits, rec)
	return &rec, nil
}

// DepositRequests returns every stored card deposit request
func (s *Store) DepositRequests() []domain.DepositRequestRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]domain.DepositRequestRecord(nil), s.deposits...)
}

func (s *Store) GetSetting(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.settings[key], nil
}

func (s *Store) ListSettings(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[string]string, len(s.settings))
	for k, v := range s.settings {
		out[k] = v
	}
	return out, nil
}
