package event

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Type represents the type of an event
type Type string

// Event represents a generic event in the system
type Event struct {
	Version  string                 `json:"version"` // Event schema version (e.g., "1.0")
	Type     Type                   `json:"type"`
	Payload  interface{}            `json:"payload"`
	Metadata map[string]interface{} `json:"metadata,omitempty"`
}

// GetMetadataValue extracts a value from the event metadata safely
func (e Event) GetMetadataValue(key string) interface{} {
	if e.Metadata == nil {
		return nil
	}
	return e.Metadata[key]
}

// Ledger event types
const (
	WalletDeposited       Type = domain.EventTypeWalletDeposited
	ItemPurchased         Type = domain.EventTypeItemPurchased
	ListingCreated        Type = domain.EventTypeListingCreated
	ItemPublished         Type = domain.EventTypeItemPublished
	DepositRequestCreated Type = domain.EventTypeDepositRequestCreated
	SagaPartiallyFailed   Type = domain.EventTypeSagaPartiallyFailed
	CompensationCompleted Type = domain.EventTypeCompensationCompleted
)

// AllTypes lists every ledger event type, for subscribers that want all of them
var AllTypes = []Type{
	WalletDeposited,
	ItemPurchased,
	ListingCreated,
	ItemPublished,
	DepositRequestCreated,
	SagaPartiallyFailed,
	CompensationCompleted,
}

// NewWalletDepositedEvent creates a wallet.deposited event
func NewWalletDepositedEvent(userID int64, amount, newBalance string, localOnly bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    WalletDeposited,
		Payload: domain.WalletDepositedPayload{
			UserID:     userID,
			Amount:     amount,
			NewBalance: newBalance,
			LocalOnly:  localOnly,
			Timestamp:  time.Now().Unix(),
		},
	}
}

// NewItemPurchasedEvent creates an item.purchased event. failedSteps is empty on full success.
func NewItemPurchasedEvent(userID int64, itemID, itemTitle, price, newBalance string, failedSteps []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    ItemPurchased,
		Payload: domain.ItemPurchasedPayload{
			UserID:      userID,
			ItemID:      itemID,
			ItemTitle:   itemTitle,
			Price:       price,
			NewBalance:  newBalance,
			FailedSteps: failedSteps,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewListingEvent creates a listing.created or item.published event
func NewListingEvent(eventType Type, listing domain.Listing) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    eventType,
		Payload: domain.ListingCreatedPayload{
			ListingID: listing.ID,
			SellerID:  listing.SellerID,
			ItemID:    listing.ItemID,
			Price:     listing.Price.String(),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewDepositRequestCreatedEvent creates a deposit_request.created event
func NewDepositRequestCreatedEvent(req domain.DepositRequest) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    DepositRequestCreated,
		Payload: domain.DepositRequestCreatedPayload{
			RequestID: req.ID,
			UserID:    req.UserID,
			AmountTon: req.AmountTon.String(),
			AmountRub: req.AmountRub.String(),
			Timestamp: time.Now().Unix(),
		},
	}
}

// NewSagaPartiallyFailedEvent creates a saga.partially_failed event
func NewSagaPartiallyFailedEvent(operation string, userID int64, failedSteps []string) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    SagaPartiallyFailed,
		Payload: domain.SagaPartiallyFailedPayload{
			Operation:   operation,
			UserID:      userID,
			FailedSteps: failedSteps,
			Timestamp:   time.Now().Unix(),
		},
	}
}

// NewCompensationCompletedEvent creates a saga.compensated event
func NewCompensationCompletedEvent(operation string, userID int64, itemID string, success bool) Event {
	return Event{
		Version: EventSchemaVersion,
		Type:    CompensationCompleted,
		Payload: domain.CompensationCompletedPayload{
			Operation: operation,
			UserID:    userID,
			ItemID:    itemID,
			Success:   success,
			Timestamp: time.Now().Unix(),
		},
	}
}

// DecodePayload decodes an event payload into T via type assertion then JSON fallback.
// In-process MemoryBus payloads are already the right struct; replayed dead letters are maps.
func DecodePayload[T any](input interface{}) (T, error) {
	if v, ok := input.(T); ok {
		return v, nil
	}
	var result T
	data, err := json.Marshal(input)
	if err != nil {
		return result, err
	}
	return result, json.Unmarshal(data, &result)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler for the event type synchronously and joins their errors
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := append([]Handler(nil), b.handlers[event.Type]...)
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf(LogMsgHandlerErrorFormat, len(errs), event.Type, errs)
	}
	return nil
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
