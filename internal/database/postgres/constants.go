package postgres

import "time"

// PostgreSQL Error Codes
const (
	// PgErrorCodeCheckViolation is raised by the balance and price CHECK constraints
	PgErrorCodeCheckViolation = "23514"
)

// Realtime channel
const (
	// NotifyChannel is the LISTEN channel the ledger triggers publish to
	NotifyChannel = "ledger_changes"

	ListenerBaseBackoff = 1 * time.Second
	ListenerMaxBackoff  = 60 * time.Second
)

// Notification tables and operations as emitted by notify_ledger_change()
const (
	TableUsers        = "users"
	TableTransactions = "transactions"
	TableOwnedItems   = "user_nfts"

	OpInsert = "INSERT"
	OpUpdate = "UPDATE"
	OpDelete = "DELETE"
)

// Error Messages - Ledger Operations
const (
	ErrMsgFailedToBeginTransaction  = "failed to begin transaction"
	ErrMsgFailedToCommitTransaction = "failed to commit transaction"
	ErrMsgFailedToCreateUser        = "failed to create user"
	ErrMsgFailedToGetUser           = "failed to get user"
	ErrMsgFailedToSetBalance        = "failed to set balance"
	ErrMsgFailedToCreateTransaction = "failed to create transaction"
	ErrMsgFailedToListTransactions  = "failed to list transactions"
	ErrMsgFailedToGetTransaction    = "failed to get transaction"
	ErrMsgFailedToGetOwnedItem      = "failed to get owned item"
	ErrMsgFailedToAddOwnedItem      = "failed to add owned item"
	ErrMsgFailedToListOwnedItems    = "failed to list owned items"
	ErrMsgFailedToRemoveOwnedItem   = "failed to remove owned item"
	ErrMsgFailedToCheckOwnership    = "failed to check ownership"
	ErrMsgFailedToCreateListing     = "failed to create listing"
	ErrMsgFailedToListListings      = "failed to list listings"
	ErrMsgFailedToCreateDepositReq  = "failed to create deposit request"
	ErrMsgFailedToGetSetting        = "failed to get setting"
	ErrMsgFailedToParseNumeric      = "failed to parse numeric column"
)

// Log Messages - Listener
const (
	LogMsgListenerConnected    = "Ledger listener connected"
	LogMsgListenerDisconnected = "Ledger listener disconnected, reconnecting"
	LogMsgListenerStopped      = "Ledger listener stopped"
	LogMsgNotificationDropped  = "Dropped malformed ledger notification"
)
