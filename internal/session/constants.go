package session

import "time"

// Defaults used when the manager is built with zero values
const (
	DefaultCapacity = 10_000
	DefaultTTL      = 30 * time.Minute
)

// Log messages
const (
	LogMsgSessionOpened = "Session opened"
	LogMsgSessionClosed = "Session closed"
	LogMsgPushDropped   = "Dropped push for session"
)

// Merge kinds reported to the OnMerge hook
const (
	MergeBalance     = "balance"
	MergeTransaction = "transaction"
	MergeItemAdded   = "item_added"
	MergeItemRemoved = "item_removed"
)
