package domain

// WalletDepositedPayload is the event payload for wallet.deposited events
type WalletDepositedPayload struct {
	UserID     int64  `json:"user_id"`
	Amount     string `json:"amount"`
	NewBalance string `json:"new_balance"`
	LocalOnly  bool   `json:"local_only"`
	Timestamp  int64  `json:"timestamp"`
}

// ItemPurchasedPayload is the event payload for item.purchased events
type ItemPurchasedPayload struct {
	UserID      int64    `json:"user_id"`
	ItemID      string   `json:"item_id"`
	ItemTitle   string   `json:"item_title"`
	Price       string   `json:"price"`
	NewBalance  string   `json:"new_balance"`
	FailedSteps []string `json:"failed_steps,omitempty"`
	Timestamp   int64    `json:"timestamp"`
}

// ListingCreatedPayload is the event payload for listing.created and item.published events
type ListingCreatedPayload struct {
	ListingID int64  `json:"listing_id"`
	SellerID  int64  `json:"seller_id"`
	ItemID    string `json:"item_id"`
	Price     string `json:"price"`
	Timestamp int64  `json:"timestamp"`
}

// DepositRequestCreatedPayload is the event payload for deposit_request.created events
type DepositRequestCreatedPayload struct {
	RequestID int64  `json:"request_id"`
	UserID    int64  `json:"user_id"`
	AmountTon string `json:"amount_ton"`
	AmountRub string `json:"amount_rub"`
	Timestamp int64  `json:"timestamp"`
}

// SagaPartiallyFailedPayload is the event payload for saga.partially_failed events
type SagaPartiallyFailedPayload struct {
	Operation   string   `json:"operation"`
	UserID      int64    `json:"user_id"`
	FailedSteps []string `json:"failed_steps"`
	Timestamp   int64    `json:"timestamp"`
}

// CompensationCompletedPayload is the event payload for saga.compensated events
type CompensationCompletedPayload struct {
	Operation string `json:"operation"`
	UserID    int64  `json:"user_id"`
	ItemID    string `json:"item_id,omitempty"`
	Success   bool   `json:"success"`
	Timestamp int64  `json:"timestamp"`
}
