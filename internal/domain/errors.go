package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Wallet errors
	ErrMsgInsufficientFunds = "insufficient funds"
	ErrMsgInvalidAmount     = "invalid amount"
	ErrMsgInvalidCard       = "invalid card number"

	// Item errors
	ErrMsgItemNotFound  = "item not found"
	ErrMsgAlreadyOwned  = "item is already owned by the buyer"
	ErrMsgNotOwner      = "item is not owned by the seller"
	ErrMsgInvalidPrice  = "price is out of bounds"
	ErrMsgInvalidTitle  = "title is required"
	ErrMsgInvalidOrigin = "invalid item origin"

	// Session errors
	ErrMsgUnknownIdentity = "unknown identity"
	ErrMsgSessionNotFound = "session not found"

	// Store errors
	ErrMsgRemoteUnavailable = "remote ledger unavailable"
	ErrMsgMalformedRecord   = "malformed record"
	ErrMsgUserNotFound      = "user not found"

	// Saga outcomes
	ErrMsgPartiallyFailed = "operation partially failed"
	ErrMsgPurchaseAborted = "purchase aborted"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// These errors should be used consistently across all layers of the application.
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Wallet errors
	ErrInsufficientFunds = errors.New(ErrMsgInsufficientFunds)
	ErrInvalidAmount     = errors.New(ErrMsgInvalidAmount)
	ErrInvalidCard       = errors.New(ErrMsgInvalidCard)

	// Item errors
	ErrItemNotFound  = errors.New(ErrMsgItemNotFound)
	ErrAlreadyOwned  = errors.New(ErrMsgAlreadyOwned)
	ErrNotOwner      = errors.New(ErrMsgNotOwner)
	ErrInvalidPrice  = errors.New(ErrMsgInvalidPrice)
	ErrInvalidTitle  = errors.New(ErrMsgInvalidTitle)
	ErrInvalidOrigin = errors.New(ErrMsgInvalidOrigin)

	// Session errors
	ErrUnknownIdentity = errors.New(ErrMsgUnknownIdentity)
	ErrSessionNotFound = errors.New(ErrMsgSessionNotFound)

	// Store errors
	ErrRemoteUnavailable = errors.New(ErrMsgRemoteUnavailable)
	ErrMalformedRecord   = errors.New(ErrMsgMalformedRecord)
	ErrUserNotFound      = errors.New(ErrMsgUserNotFound)

	// Saga outcomes
	ErrPartiallyFailed = errors.New(ErrMsgPartiallyFailed)
	ErrPurchaseAborted = errors.New(ErrMsgPurchaseAborted)

	// Input errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)
