package handler

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type amountForm struct {
	Amount decimal.Decimal `json:"amount" validate:"gt=0"`
	Card   string          `json:"card" validate:"required,card"`
}

func TestValidator_DecimalsAndCards(t *testing.T) {
	v := GetValidator()

	tests := []struct {
		name    string
		form    amountForm
		wantErr map[string]string
	}{
		{name: "valid", form: amountForm{Amount: decimal.RequireFromString("0.5"), Card: "4111 1111-1111 1111"}},
		{name: "zero amount", form: amountForm{Amount: decimal.Zero, Card: "4111111111111111"}, wantErr: map[string]string{"amount": "Must be greater than 0"}},
		{name: "letters in card", form: amountForm{Amount: decimal.NewFromInt(1), Card: "4111abcd"}, wantErr: map[string]string{"card": "Only digits, spaces and dashes are allowed"}},
		{name: "missing card", form: amountForm{Amount: decimal.NewFromInt(1)}, wantErr: map[string]string{"card": "This field is required"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := v.ValidateStruct(tt.form)
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Equal(t, tt.wantErr, FormatValidationError(err))
		})
	}
}

func TestFormatValidationError_NonValidatorError(t *testing.T) {
	assert.Nil(t, FormatValidationError(nil))
	assert.Equal(t, map[string]string{"error": ErrMsgInvalidRequestFormat}, FormatValidationError(errors.New("boom")))
}
