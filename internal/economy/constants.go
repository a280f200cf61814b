package economy

// ==================== Operations & Steps ====================

// Operation names used in logs, events and metrics labels
const (
	OpDeposit     = "deposit"
	OpPurchase    = "purchase"
	OpSell        = "sell"
	OpCardDeposit = "card_deposit"
	OpPublish     = "publish"

	OpListListings = "list_listings"
)

// Remote step names reported in Result.FailedSteps
const (
	StepSetBalance        = "set-balance"
	StepAddOwnedItem      = "add-owned-item"
	StepCreateTransaction = "create-transaction"
	StepCreateListing     = "create-listing"
)

// History titles
const (
	DepositTitle        = "TON deposit"
	ListingTitleFmt     = "Listing: %s"
	RefundTitleFmt      = "Refund: %s"
	compensationJobName = "purchase-refund"
)

// ==================== Error Messages ====================

// Formatted error messages
const (
	ErrMsgRemoteStepFailedFmt = "%s: %w"
	ErrMsgItemFmt             = "%w: %s"
	ErrMsgPriceFmt            = "%w: %s not within [%s, %s]"
	ErrMsgAmountFmt           = "%w: %s"
	ErrMsgIdentityFmt         = "%w: %d"
	ErrMsgPanicFmt            = "%w: %v"
)

// Shutdown error messages
const (
	ErrMsgShutdownTimedOut = "shutdown timed out: %w"
)

// ==================== Log Messages ====================

// Service operation log messages
const (
	LogMsgDepositCalled      = "Deposit called"
	LogMsgDepositCompleted   = "Deposit completed"
	LogMsgPurchaseCalled     = "Purchase called"
	LogMsgItemPurchased      = "Item purchased"
	LogMsgPurchaseAborted    = "Purchase aborted, optimistic state reverted"
	LogMsgSellCalled         = "Sell called"
	LogMsgListingCreated     = "Listing created"
	LogMsgCardDepositCreated = "Card deposit request created"
	LogMsgItemPublished      = "Item published"
	LogMsgRecordDropped      = "Dropped malformed store record"
)

// Saga log messages
const (
	LogMsgStepFailed            = "Remote step failed"
	LogMsgSagaPartiallyFailed   = "Operation partially failed"
	LogMsgCompensationQueued    = "Compensation queued"
	LogMsgCompensationInline    = "Worker pool unavailable, compensating inline"
	LogMsgCompensationFailed    = "Compensation failed"
	LogMsgCompensationCompleted = "Compensation completed"
)

// Background task log messages
const (
	LogMsgEconomyShuttingDown = "Economy service shutting down, waiting for in-flight operations..."
)
