package messages

import (
	"errors"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// Key identifies one user-facing message
type Key string

// Outcome messages
const (
	KeyDepositCompleted      Key = "deposit.completed"
	KeyDepositLocalOnly      Key = "deposit.local_only"
	KeyPurchaseCompleted     Key = "purchase.completed"
	KeyListingCreated        Key = "listing.created"
	KeyItemPublished         Key = "item.published"
	KeyCardDepositRequested  Key = "card_deposit.requested"
	KeyWithdrawalSameDetails Key = "withdrawal.same_details"
	KeyPartiallyFailed       Key = "operation.partially_failed"
)

// Error messages
const (
	KeyErrInsufficientFunds Key = "error.insufficient_funds"
	KeyErrInvalidAmount     Key = "error.invalid_amount"
	KeyErrInvalidCard       Key = "error.invalid_card"
	KeyErrItemNotFound      Key = "error.item_not_found"
	KeyErrAlreadyOwned      Key = "error.already_owned"
	KeyErrNotOwner          Key = "error.not_owner"
	KeyErrInvalidPrice      Key = "error.invalid_price"
	KeyErrInvalidTitle      Key = "error.invalid_title"
	KeyErrInvalidOrigin     Key = "error.invalid_origin"
	KeyErrUnknownIdentity   Key = "error.unknown_identity"
	KeyErrSessionNotFound   Key = "error.session_not_found"
	KeyErrRemoteUnavailable Key = "error.remote_unavailable"
	KeyErrMalformedRecord   Key = "error.malformed_record"
	KeyErrUserNotFound      Key = "error.user_not_found"
	KeyErrPurchaseAborted   Key = "error.purchase_aborted"
	KeyErrInvalidInput      Key = "error.invalid_input"
	KeyErrInternal          Key = "error.internal"
)

// errorKeys is checked in order; the first sentinel matched wins
var errorKeys = []struct {
	err error
	key Key
}{
	{domain.ErrPartiallyFailed, KeyPartiallyFailed},
	{domain.ErrInsufficientFunds, KeyErrInsufficientFunds},
	{domain.ErrInvalidAmount, KeyErrInvalidAmount},
	{domain.ErrInvalidCard, KeyErrInvalidCard},
	{domain.ErrItemNotFound, KeyErrItemNotFound},
	{domain.ErrAlreadyOwned, KeyErrAlreadyOwned},
	{domain.ErrNotOwner, KeyErrNotOwner},
	{domain.ErrInvalidPrice, KeyErrInvalidPrice},
	{domain.ErrInvalidTitle, KeyErrInvalidTitle},
	{domain.ErrInvalidOrigin, KeyErrInvalidOrigin},
	{domain.ErrUnknownIdentity, KeyErrUnknownIdentity},
	{domain.ErrSessionNotFound, KeyErrSessionNotFound},
	{domain.ErrPurchaseAborted, KeyErrPurchaseAborted},
	{domain.ErrMalformedRecord, KeyErrMalformedRecord},
	{domain.ErrUserNotFound, KeyErrUserNotFound},
	{domain.ErrRemoteUnavailable, KeyErrRemoteUnavailable},
	{domain.ErrInvalidInput, KeyErrInvalidInput},
}

// KeyForError maps an error to its message; unknown errors map to KeyErrInternal
func KeyForError(err error) Key {
	for _, ek := range errorKeys {
		if errors.Is(err, ek.err) {
			return ek.key
		}
	}
	return KeyErrInternal
}
