package handler

import (
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/messages"
)

// CardDepositRequest is the card top-up form
type CardDepositRequest struct {
	AmountRub decimal.Decimal `json:"amount_rub" swaggertype:"string" validate:"gt=0"`
}

// WithdrawRequest is the withdrawal form
type WithdrawRequest struct {
	Amount     decimal.Decimal `json:"amount" swaggertype:"string" validate:"gt=0"`
	CardNumber string          `json:"card_number" validate:"required,card"`
}

// QuoteResponse is the TON a card payment buys
type QuoteResponse struct {
	AmountRub decimal.Decimal `json:"amount_rub" swaggertype:"string"`
	AmountTon decimal.Decimal `json:"amount_ton" swaggertype:"string"`
	Rate      decimal.Decimal `json:"rate" swaggertype:"string"`
}

// WithdrawResponse tells the user how to complete a valid withdrawal
type WithdrawResponse struct {
	Message         string `json:"message"`
	SupportUsername string `json:"support_username"`
}

// HandleDeposit credits the test deposit
// @Summary Make a test deposit
// @Tags wallet
// @Produce json
// @Success 200 {object} OperationResponse
// @Success 207 {object} OperationResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/wallet/deposit [post]
// @Security TelegramInitData
func (h *Handlers) HandleDeposit(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	res, err := h.economy.Deposit(r.Context(), sess)
	if err != nil {
		h.respondServiceError(w, r, opDeposit, err)
		return
	}
	h.respondResult(w, r, opDeposit, res, messages.KeyDepositCompleted,
		domain.TestDepositAmount.String(), res.User.Balance.String())
}

// HandleQuoteCardDeposit converts a RUB amount into TON
// @Summary Quote a card deposit
// @Tags wallet
// @Produce json
// @Param amount_rub query string true "Amount in RUB"
// @Success 200 {object} QuoteResponse
// @Failure 400 {object} ErrorResponse
// @Router /api/v1/wallet/card-deposit/quote [get]
func (h *Handlers) HandleQuoteCardDeposit(w http.ResponseWriter, r *http.Request) {
	amountRub, ok := GetDecimalQueryParam(r, w, QueryParamAmountRub)
	if !ok {
		return
	}

	ton, err := h.economy.QuoteCardDeposit(amountRub)
	if err != nil {
		h.respondServiceError(w, r, opQuote, err)
		return
	}
	respondJSON(w, http.StatusOK, QuoteResponse{AmountRub: amountRub, AmountTon: ton, Rate: domain.TonToRubRate})
}

// HandleCardDeposit quotes the amount and files a deposit request for support
// @Summary Request a card deposit
// @Description Files a deposit request for support to confirm. The balance is not credited.
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body CardDepositRequest true "Amount in RUB"
// @Success 200 {object} OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/wallet/card-deposit [post]
// @Security TelegramInitData
func (h *Handlers) HandleCardDeposit(w http.ResponseWriter, r *http.Request) {
	var req CardDepositRequest
	if err := DecodeAndValidateRequest(r, w, &req, opCardDeposit); err != nil {
		return
	}

	ton, err := h.economy.QuoteCardDeposit(req.AmountRub)
	if err != nil {
		h.respondServiceError(w, r, opCardDeposit, err)
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	res, err := h.economy.CreateCardDepositRequest(r.Context(), sess, ton, req.AmountRub)
	if err != nil {
		h.respondServiceError(w, r, opCardDeposit, err)
		return
	}
	h.respondResult(w, r, opCardDeposit, res, messages.KeyCardDepositRequested,
		ton.String(), domain.Round2(req.AmountRub).String())
}

// HandleValidateWithdrawal checks the withdrawal form and points the user to support
// @Summary Validate a withdrawal
// @Tags wallet
// @Accept json
// @Produce json
// @Param request body WithdrawRequest true "Amount and card"
// @Success 200 {object} WithdrawResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/wallet/withdraw/validate [post]
// @Security TelegramInitData
func (h *Handlers) HandleValidateWithdrawal(w http.ResponseWriter, r *http.Request) {
	var req WithdrawRequest
	if err := DecodeAndValidateRequest(r, w, &req, opWithdraw); err != nil {
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := h.economy.ValidateWithdrawal(sess, req.Amount, req.CardNumber); err != nil {
		h.respondServiceError(w, r, opWithdraw, err)
		return
	}

	support := h.settings.SupportUsername(r.Context())
	respondJSON(w, http.StatusOK, WithdrawResponse{
		Message:         h.messages.Text(h.lang(r), messages.KeyWithdrawalSameDetails, support),
		SupportUsername: support,
	})
}
