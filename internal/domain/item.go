package domain

import "github.com/shopspring/decimal"

// Owner is the identity owning an item, or Unowned
type Owner int64

// Is reports whether the item belongs to identity
func (o Owner) Is(identity int64) bool {
	return o != Unowned && int64(o) == identity
}

// Origin records how an item entered a user's collection
type Origin string

const (
	OriginGift     Origin = "gift"
	OriginPurchase Origin = "purchase"
)

// Valid reports whether the origin is a known value
func (o Origin) Valid() bool {
	return o == OriginGift || o == OriginPurchase
}

// Item is a tradeable collectible
type Item struct {
	ID          string          `json:"id"`
	Title       string          `json:"title"`
	Subtitle    string          `json:"subtitle,omitempty"`
	Description string          `json:"description"`
	Price       decimal.Decimal `json:"price" swaggertype:"string"`
	Image       string          `json:"image"`
	Owner       Owner           `json:"owner"`
	Collection  string          `json:"collection,omitempty"`
	Model       string          `json:"model,omitempty"`
	Backdrop    string          `json:"backdrop,omitempty"`
	Origin      Origin          `json:"origin,omitempty"`
}

// NewOwnedItem carries the fields written when an item is recorded as owned
type NewOwnedItem struct {
	ItemID      string
	Title       string
	Subtitle    string
	Description string
	Image       string
	Price       decimal.Decimal
	Collection  string
	Model       string
	Backdrop    string
	Origin      Origin
}

// OwnedItemFrom builds the store payload for an item being recorded as owned
func OwnedItemFrom(item Item, origin Origin) NewOwnedItem {
	return NewOwnedItem{
		ItemID:      item.ID,
		Title:       item.Title,
		Subtitle:    item.Subtitle,
		Description: item.Description,
		Image:       item.Image,
		Price:       item.Price,
		Collection:  item.Collection,
		Model:       item.Model,
		Backdrop:    item.Backdrop,
		Origin:      origin,
	}
}
