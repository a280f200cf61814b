package economy

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

// validateListingPrice enforces the inclusive listing bounds
func validateListingPrice(price decimal.Decimal) error {
	if !domain.PriceInListingBounds(price) {
		return fmt.Errorf(ErrMsgPriceFmt, domain.ErrInvalidPrice, price.String(), domain.MinListingPrice.String(), domain.MaxListingPrice.String())
	}
	return nil
}

func validateCardDepositRub(amountRub decimal.Decimal) error {
	if amountRub.LessThan(domain.MinCardDepositRub) || amountRub.GreaterThan(domain.MaxCardDepositRub) {
		return fmt.Errorf(ErrMsgAmountFmt, domain.ErrInvalidAmount, amountRub.String())
	}
	return nil
}

func validateCardDeposit(amountTon, amountRub decimal.Decimal) error {
	if !amountTon.IsPositive() {
		return fmt.Errorf(ErrMsgAmountFmt, domain.ErrInvalidAmount, amountTon.String())
	}
	return validateCardDepositRub(amountRub)
}

// validateWithdrawal checks amount against the balance and the payout card
func validateWithdrawal(amount, balance decimal.Decimal, cardNumber string) error {
	if amount.LessThan(domain.MinWithdrawAmount) {
		return fmt.Errorf(ErrMsgAmountFmt, domain.ErrInvalidAmount, amount.String())
	}
	if amount.GreaterThan(balance) {
		return fmt.Errorf(ErrMsgAmountFmt, domain.ErrInsufficientFunds, amount.String())
	}

	digits := 0
	for _, r := range cardNumber {
		switch {
		case unicode.IsDigit(r):
			digits++
		case r == ' ' || r == '-':
		default:
			return domain.ErrInvalidCard
		}
	}
	if digits < domain.MinCardNumberDigits {
		return domain.ErrInvalidCard
	}
	return nil
}

func validateDraft(draft ItemDraft) error {
	if strings.TrimSpace(draft.Title) == "" {
		return domain.ErrInvalidTitle
	}
	if strings.TrimSpace(draft.Image) == "" {
		return fmt.Errorf("%w: image is required", domain.ErrInvalidInput)
	}
	return validateListingPrice(draft.Price)
}

func newItemID() string {
	return uuid.NewString()
}
