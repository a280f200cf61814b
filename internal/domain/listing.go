package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ListingStatus is owned by the external approval process
type ListingStatus string

const (
	ListingPending  ListingStatus = "pending"
	ListingApproved ListingStatus = "approved"
	ListingRejected ListingStatus = "rejected"
	ListingSold     ListingStatus = "sold"
)

var listingTransitions = map[ListingStatus][]ListingStatus{
	ListingPending:  {ListingApproved, ListingRejected},
	ListingApproved: {ListingSold},
}

// Valid reports whether the status is a known value
func (s ListingStatus) Valid() bool {
	switch s {
	case ListingPending, ListingApproved, ListingRejected, ListingSold:
		return true
	}
	return false
}

// CanTransitionTo reports whether the approval process may move a listing from s to next
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	for _, allowed := range listingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// Terminal is true once no further transitions exist
func (s ListingStatus) Terminal() bool {
	return len(listingTransitions[s]) == 0
}

// Listing is an offer to sell an owned item
type Listing struct {
	ID        int64           `json:"id"`
	ItemID    string          `json:"item_id"`
	ItemTitle string          `json:"item_title"`
	ItemImage string          `json:"item_image"`
	SellerID  int64           `json:"seller_id"`
	Price     decimal.Decimal `json:"price" swaggertype:"string"`
	Status    ListingStatus   `json:"status"`
	CreatedAt time.Time       `json:"created_at"`
}

// NewListing is the store payload for a sell request
type NewListing struct {
	SellerID  int64
	ItemID    string
	ItemTitle string
	ItemImage string
	Price     decimal.Decimal
}

// DepositRequestStatus is owned by support staff processing card payments
type DepositRequestStatus string

const (
	DepositRequestPending  DepositRequestStatus = "pending"
	DepositRequestApproved DepositRequestStatus = "approved"
	DepositRequestRejected DepositRequestStatus = "rejected"
)

// Valid reports whether the status is a known value
func (s DepositRequestStatus) Valid() bool {
	switch s {
	case DepositRequestPending, DepositRequestApproved, DepositRequestRejected:
		return true
	}
	return false
}

// DepositRequest asks support to credit a card payment
type DepositRequest struct {
	ID        int64                `json:"id"`
	UserID    int64                `json:"user_id"`
	AmountTon decimal.Decimal      `json:"amount_ton" swaggertype:"string"`
	AmountRub decimal.Decimal      `json:"amount_rub" swaggertype:"string"`
	Status    DepositRequestStatus `json:"status"`
	CreatedAt time.Time            `json:"created_at"`
}
