package middleware

import "time"

// HTTP header names
const (
	// HeaderInitData carries the Mini-App's raw Telegram initData query string
	HeaderInitData = "X-Telegram-Init-Data"

	// HeaderAcceptLanguage is consulted when initData has no language code
	HeaderAcceptLanguage = "Accept-Language"
)

// DefaultMaxAge bounds how old a signed initData may be
const DefaultMaxAge = 24 * time.Hour

// Log messages
const (
	LogMsgInitDataRejected = "Telegram init data rejected"
	LogMsgUnsignedInitData = "Bot token not configured, accepting unsigned init data"
)

// Error messages
const (
	ErrMsgUnauthorized = "Unauthorized"
)
