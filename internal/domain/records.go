package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// Store records. JSON tags follow the column names so the same types decode
// rows pushed by the realtime channel.

// UserRecord is a row of the users table
type UserRecord struct {
	ID           int64           `json:"id"`
	Username     string          `json:"username"`
	FirstName    string          `json:"first_name"`
	AvatarURL    string          `json:"avatar_url"`
	Balance      decimal.Decimal `json:"balance"`
	ReferrerID   *int64          `json:"referrer_id"`
	ReferralCode string          `json:"referral_code"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// Validate rejects rows the mirror cannot hold
func (r UserRecord) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: user id %d", ErrMalformedRecord, r.ID)
	}
	if r.Balance.IsNegative() {
		return fmt.Errorf("%w: negative balance %s for user %d", ErrMalformedRecord, r.Balance, r.ID)
	}
	return nil
}

// ToUser converts the row into the mirror's user. Counters are derived elsewhere.
func (r UserRecord) ToUser() User {
	name := r.Username
	if name == "" {
		name = r.FirstName
	}
	return User{
		ID:          r.ID,
		DisplayName: name,
		Avatar:      r.AvatarURL,
		Balance:     Round2(r.Balance),
		TotalVolume: decimal.Zero,
	}
}

// TransactionRecord is a row of the transactions table
type TransactionRecord struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Type      TxType          `json:"type"`
	Title     string          `json:"title"`
	Amount    decimal.Decimal `json:"amount"`
	ItemID    string          `json:"nft_id"`
	ItemTitle string          `json:"nft_title"`
	CreatedAt time.Time       `json:"created_at"`
}

// Validate rejects rows the mirror cannot hold
func (r TransactionRecord) Validate() error {
	if r.ID <= 0 {
		return fmt.Errorf("%w: transaction id %d", ErrMalformedRecord, r.ID)
	}
	if !r.Type.Valid() {
		return fmt.Errorf("%w: transaction %d has type %q", ErrMalformedRecord, r.ID, r.Type)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: transaction %d has negative amount", ErrMalformedRecord, r.ID)
	}
	return nil
}

// ToTransaction converts the row into a history entry
func (r TransactionRecord) ToTransaction() Transaction {
	return Transaction{
		ID:        r.ID,
		Type:      r.Type,
		Title:     r.Title,
		Amount:    r.Amount,
		Display:   FormatSignedAmount(r.Type, r.Amount),
		Timestamp: r.CreatedAt,
		ItemID:    r.ItemID,
		ItemTitle: r.ItemTitle,
	}
}

// OwnedItemRecord is a row of the user_nfts table
type OwnedItemRecord struct {
	ID          int64           `json:"id"`
	UserID      int64           `json:"user_id"`
	ItemID      string          `json:"nft_id"`
	Title       string          `json:"nft_title"`
	Subtitle    string          `json:"nft_subtitle"`
	Description string          `json:"nft_description"`
	Image       string          `json:"nft_image"`
	Price       decimal.Decimal `json:"nft_price"`
	Collection  string          `json:"nft_collection"`
	Model       string          `json:"nft_model"`
	Backdrop    string          `json:"nft_backdrop"`
	Origin      Origin          `json:"origin"`
	PurchasedAt time.Time       `json:"purchased_at"`
}

// Validate rejects rows the mirror cannot hold
func (r OwnedItemRecord) Validate() error {
	if r.ItemID == "" {
		return fmt.Errorf("%w: owned item row %d has no item id", ErrMalformedRecord, r.ID)
	}
	if r.UserID <= 0 {
		return fmt.Errorf("%w: owned item %s has owner %d", ErrMalformedRecord, r.ItemID, r.UserID)
	}
	if !r.Price.IsPositive() {
		return fmt.Errorf("%w: owned item %s has price %s", ErrMalformedRecord, r.ItemID, r.Price)
	}
	if !r.Origin.Valid() {
		return fmt.Errorf("%w: owned item %s has origin %q", ErrMalformedRecord, r.ItemID, r.Origin)
	}
	return nil
}

// ToItem converts the row into a catalog item owned by the row's user
func (r OwnedItemRecord) ToItem() Item {
	return Item{
		ID:          r.ItemID,
		Title:       r.Title,
		Subtitle:    r.Subtitle,
		Description: r.Description,
		Price:       r.Price,
		Image:       r.Image,
		Owner:       Owner(r.UserID),
		Collection:  r.Collection,
		Model:       r.Model,
		Backdrop:    r.Backdrop,
		Origin:      r.Origin,
	}
}

// ListingRecord is a row of the nft_listings table
type ListingRecord struct {
	ID        int64           `json:"id"`
	ItemID    string          `json:"nft_id"`
	ItemTitle string          `json:"nft_title"`
	ItemImage string          `json:"nft_image"`
	SellerID  int64           `json:"seller_id"`
	Price     decimal.Decimal `json:"price"`
	Status    ListingStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// Validate rejects rows the mirror cannot hold
func (r ListingRecord) Validate() error {
	if r.ID <= 0 || r.ItemID == "" {
		return fmt.Errorf("%w: listing %d for item %q", ErrMalformedRecord, r.ID, r.ItemID)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: listing %d has status %q", ErrMalformedRecord, r.ID, r.Status)
	}
	return nil
}

// ToListing converts the row
func (r ListingRecord) ToListing() Listing {
	return Listing{
		ID:        r.ID,
		ItemID:    r.ItemID,
		ItemTitle: r.ItemTitle,
		ItemImage: r.ItemImage,
		SellerID:  r.SellerID,
		Price:     r.Price,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}

// DepositRequestRecord is a row of the deposit_requests table
type DepositRequestRecord struct {
	ID          int64                `json:"id"`
	UserID      int64                `json:"user_id"`
	AmountTon   decimal.Decimal      `json:"amount"`
	AmountRub   decimal.Decimal      `json:"amount_rub"`
	Status      DepositRequestStatus `json:"status"`
	CreatedAt   time.Time            `json:"created_at"`
	ProcessedAt *time.Time           `json:"processed_at"`
	ProcessedBy *int64               `json:"processed_by"`
}

// Validate rejects rows the mirror cannot hold
func (r DepositRequestRecord) Validate() error {
	if r.ID <= 0 || r.UserID <= 0 {
		return fmt.Errorf("%w: deposit request %d for user %d", ErrMalformedRecord, r.ID, r.UserID)
	}
	if !r.Status.Valid() {
		return fmt.Errorf("%w: deposit request %d has status %q", ErrMalformedRecord, r.ID, r.Status)
	}
	return nil
}

// ToDepositRequest converts the row
func (r DepositRequestRecord) ToDepositRequest() DepositRequest {
	return DepositRequest{
		ID:        r.ID,
		UserID:    r.UserID,
		AmountTon: r.AmountTon,
		AmountRub: r.AmountRub,
		Status:    r.Status,
		CreatedAt: r.CreatedAt,
	}
}
