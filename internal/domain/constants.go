package domain

import "github.com/shopspring/decimal"

// Currency is the ticker used in every display amount.
const Currency = "TON"

// Unowned marks an item that no user owns.
const Unowned Owner = 0

// Wallet limits
var (
	// TestDepositAmount is credited by the test deposit button.
	TestDepositAmount = decimal.NewFromInt(100)

	// MinListingPrice and MaxListingPrice bound listing prices (inclusive).
	MinListingPrice = decimal.NewFromInt(1)
	MaxListingPrice = decimal.NewFromInt(1_000_000)

	// TonToRubRate is the fixed card deposit conversion rate (RUB per TON).
	TonToRubRate = decimal.NewFromInt(300)

	MinCardDepositRub = decimal.NewFromInt(100)
	MaxCardDepositRub = decimal.NewFromInt(1_000_000)

	MinWithdrawAmount = decimal.NewFromInt(1)
)

// MinCardNumberDigits is the shortest accepted payout card number.
const MinCardNumberDigits = 13

// Setting keys stored in system_settings
const (
	SettingSupportUsername = "support_username"

	DefaultSupportUsername = "your_support_username"
)

// Views the presentation layer can be asked to navigate to
const (
	ViewOwnedItems = "gifts"
	ViewProfile    = "profile"
)
