package domain

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Round2 rounds an amount to two decimal places (half away from zero).
func Round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}

// FormatSignedAmount renders an amount the way history rows show it,
// e.g. "+100 TON" for deposits and sales, "-30 TON" for purchases and withdrawals.
func FormatSignedAmount(txType TxType, amount decimal.Decimal) string {
	sign := "-"
	if txType.IsCredit() {
		sign = "+"
	}
	return fmt.Sprintf("%s%s %s", sign, amount.Abs().String(), Currency)
}

// QuoteTon converts a RUB card deposit into TON at the fixed rate.
func QuoteTon(amountRub decimal.Decimal) decimal.Decimal {
	return Round2(amountRub.Div(TonToRubRate))
}

// PriceInListingBounds reports whether price is within [MinListingPrice, MaxListingPrice].
func PriceInListingBounds(price decimal.Decimal) bool {
	return price.GreaterThanOrEqual(MinListingPrice) && price.LessThanOrEqual(MaxListingPrice)
}
