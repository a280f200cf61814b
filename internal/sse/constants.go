package sse

import "time"

// Buffer sizes
const (
	// BroadcastBufferSize is the buffer size for the broadcast channel
	BroadcastBufferSize = 100

	// ClientEventBuffer is the buffer size for each client's event channel
	ClientEventBuffer = 50

	// ClientChannelBuffer is the buffer size for register/unregister channels
	ClientChannelBuffer = 10
)

// SSE connection settings
const (
	// KeepaliveInterval is how often to send keepalive pings
	KeepaliveInterval = 30 * time.Second
)

// Event types for SSE
const (
	// EventTypeUserChanged carries the new user after any balance or counter change
	EventTypeUserChanged = "mirror.user"

	// EventTypeItemChanged carries an item whose ownership or fields changed
	EventTypeItemChanged = "mirror.item"

	// EventTypeHistoryAdded carries a new history entry
	EventTypeHistoryAdded = "mirror.history"

	// EventTypeOperationPartial tells the client a remote step failed and a refresh may be needed
	EventTypeOperationPartial = "operation.partially_failed"

	// EventTypeCompensated tells the client a compensating job finished
	EventTypeCompensated = "operation.compensated"

	// EventTypeDepositRequested confirms a card deposit request was filed
	EventTypeDepositRequested = "wallet.deposit_requested"

	// EventTypeConnected is the first event on every stream
	EventTypeConnected = "connected"

	// EventTypeKeepalive is the keepalive ping event type
	EventTypeKeepalive = "keepalive"
)

// Log messages
const (
	LogMsgClientConnected    = "SSE client connected"
	LogMsgClientDisconnected = "SSE client disconnected"
	LogMsgEventBroadcast     = "Broadcasting SSE event"
	LogMsgEventDropped       = "SSE event dropped, buffer full"
	LogMsgWriteError         = "Failed to write SSE event"
	LogMsgInvalidPayload     = "Invalid SSE source event payload"
	LogMsgSubscriberReady    = "SSE subscriber registered for event types"
)

// Error messages
const (
	ErrMsgStreamingUnsupported = "SSE not supported"
)
