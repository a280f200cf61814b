package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/osse101/GiftMarket_Go/internal/economy"
	"github.com/osse101/GiftMarket_Go/internal/messages"
)

// URLParamItemID names the item in /items/{id}/... routes
const URLParamItemID = "id"

// SellRequest is the sell form
type SellRequest struct {
	Price decimal.Decimal `json:"price" swaggertype:"string" validate:"gt=0"`
}

// PublishRequest is the create-listing form
type PublishRequest struct {
	Title       string          `json:"title" validate:"required,max=128"`
	Description string          `json:"description" validate:"max=2000"`
	Image       string          `json:"image" validate:"required,url"`
	Collection  string          `json:"collection,omitempty" validate:"max=64"`
	Model       string          `json:"model,omitempty" validate:"max=64"`
	Backdrop    string          `json:"backdrop,omitempty" validate:"max=64"`
	Price       decimal.Decimal `json:"price" swaggertype:"string" validate:"gt=0"`
}

// HandlePurchase buys the item in the URL
// @Summary Buy an item
// @Description Debits the price and transfers the item. Returns 207 when some ledger steps failed.
// @Tags market
// @Produce json
// @Param id path string true "Item ID"
// @Success 200 {object} OperationResponse
// @Success 207 {object} OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 409 {object} ErrorResponse
// @Failure 503 {object} ErrorResponse
// @Router /api/v1/items/{id}/purchase [post]
// @Security TelegramInitData
func (h *Handlers) HandlePurchase(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	res, err := h.economy.Purchase(r.Context(), sess, chi.URLParam(r, URLParamItemID))
	if err != nil {
		h.respondServiceError(w, r, opPurchase, err)
		return
	}

	var title, price string
	if res.Item != nil {
		title, price = res.Item.Title, res.Item.Price.String()
	}
	h.respondResult(w, r, opPurchase, res, messages.KeyPurchaseCompleted, title, price, res.User.Balance.String())
}

// HandleSell offers an owned item for sale
// @Summary Sell an owned item
// @Tags market
// @Accept json
// @Produce json
// @Param id path string true "Item ID"
// @Param request body SellRequest true "Asking price"
// @Success 200 {object} OperationResponse
// @Success 207 {object} OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 403 {object} ErrorResponse
// @Router /api/v1/items/{id}/listings [post]
// @Security TelegramInitData
func (h *Handlers) HandleSell(w http.ResponseWriter, r *http.Request) {
	var req SellRequest
	if err := DecodeAndValidateRequest(r, w, &req, opSell); err != nil {
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	res, err := h.economy.Sell(r.Context(), sess, chi.URLParam(r, URLParamItemID), req.Price)
	if err != nil {
		h.respondServiceError(w, r, opSell, err)
		return
	}

	var title string
	if res.Item != nil {
		title = res.Item.Title
	}
	h.respondResult(w, r, opSell, res, messages.KeyListingCreated, title, req.Price.String())
}

// HandlePublish submits a new gift for listing
// @Summary Publish a new gift
// @Tags market
// @Accept json
// @Produce json
// @Param request body PublishRequest true "Gift details"
// @Success 200 {object} OperationResponse
// @Success 207 {object} OperationResponse
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Failure 413 {object} ErrorResponse
// @Router /api/v1/listings/publish [post]
// @Security TelegramInitData
func (h *Handlers) HandlePublish(w http.ResponseWriter, r *http.Request) {
	var req PublishRequest
	if err := DecodeAndValidateRequest(r, w, &req, opPublish); err != nil {
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	res, err := h.economy.PublishItem(r.Context(), sess, economy.ItemDraft{
		Title:       req.Title,
		Description: req.Description,
		Image:       req.Image,
		Collection:  req.Collection,
		Model:       req.Model,
		Backdrop:    req.Backdrop,
		Price:       req.Price,
	})
	if err != nil {
		h.respondServiceError(w, r, opPublish, err)
		return
	}
	h.respondResult(w, r, opPublish, res, messages.KeyItemPublished, req.Title)
}

// HandleListListings returns the caller's listings
// @Summary List the caller's listings
// @Tags market
// @Produce json
// @Success 200 {array} domain.Listing
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/listings [get]
// @Security TelegramInitData
func (h *Handlers) HandleListListings(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	listings, err := h.economy.ListListings(r.Context(), sess)
	if err != nil {
		h.respondServiceError(w, r, opListings, err)
		return
	}
	respondJSON(w, http.StatusOK, listings)
}
