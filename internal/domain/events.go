package domain

// Event type constants used across the application for event bus subscriptions
// and metrics tracking.
//
// Event types follow the pattern: <entity>.<action> (e.g., "item.purchased")
const (
	// EventTypeWalletDeposited is published after a deposit reached the store
	EventTypeWalletDeposited = "wallet.deposited"

	// EventTypeItemPurchased is published after a purchase saga finished (fully or partially)
	EventTypeItemPurchased = "item.purchased"

	// EventTypeListingCreated is published when a pending listing was stored
	EventTypeListingCreated = "listing.created"

	// EventTypeItemPublished is published when a user published a new item for sale
	EventTypeItemPublished = "item.published"

	// EventTypeDepositRequestCreated is published when a card deposit request was stored
	EventTypeDepositRequestCreated = "deposit_request.created"

	// EventTypeSagaPartiallyFailed is published when a remote step failed after the optimistic apply
	EventTypeSagaPartiallyFailed = "saga.partially_failed"

	// EventTypeCompensationCompleted is published when a compensating job finished
	EventTypeCompensationCompleted = "saga.compensated"
)
