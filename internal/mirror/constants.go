package mirror

// Log messages
const (
	LogMsgLoadUserFailed         = "Mirror load: get-or-create user failed, using defaults"
	LogMsgLoadHistoryFailed      = "Mirror load: list transactions failed"
	LogMsgLoadItemsFailed        = "Mirror load: list owned items failed"
	LogMsgRecordDropped          = "Mirror dropped malformed record"
	LogMsgNegativeBalanceDropped = "Mirror dropped negative balance"
	LogMsgLoaded                 = "Mirror loaded"
)

// ChangeKind names what part of the mirror a Change touches
type ChangeKind string

const (
	ChangeUser    ChangeKind = "user"
	ChangeItem    ChangeKind = "item"
	ChangeHistory ChangeKind = "history"
)

// OriginFilter selects owned items by how they were acquired
type OriginFilter string

const (
	OriginAll      OriginFilter = "all"
	OriginGift     OriginFilter = "gift"
	OriginPurchase OriginFilter = "purchase"
)
