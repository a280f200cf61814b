package handler

import (
	"fmt"
	"net/http"

	"github.com/osse101/GiftMarket_Go/internal/catalog"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
)

// Query parameters
const (
	QueryParamSearch     = "q"
	QueryParamCollection = "collection"
	QueryParamModel      = "model"
	QueryParamBackdrop   = "backdrop"
	QueryParamOrigin     = "origin"
	QueryParamAmountRub  = "amount_rub"
)

// HandleListItems returns the store view filtered by search text and facets
// @Summary List store items
// @Description Returns the caller's store view. Facet values combine with OR inside a facet and AND across facets.
// @Tags items
// @Produce json
// @Param q query string false "Search text"
// @Param collection query string false "Comma-separated collections"
// @Param model query string false "Comma-separated models"
// @Param backdrop query string false "Comma-separated backdrops"
// @Success 200 {array} domain.Item
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/items [get]
// @Security TelegramInitData
func (h *Handlers) HandleListItems(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	q := catalog.Query{
		Search:      r.URL.Query().Get(QueryParamSearch),
		Collections: GetListQueryParam(r, QueryParamCollection),
		Models:      GetListQueryParam(r, QueryParamModel),
		Backdrops:   GetListQueryParam(r, QueryParamBackdrop),
	}
	respondJSON(w, http.StatusOK, catalog.Filter(sess.Mirror.Items(), q))
}

// HandleFacets returns the filter options with floor prices
// @Summary List filter facets
// @Tags items
// @Produce json
// @Success 200 {object} catalog.Facets
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/items/facets [get]
// @Security TelegramInitData
func (h *Handlers) HandleFacets(w http.ResponseWriter, r *http.Request) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, catalog.BuildFacets(sess.Mirror.Items()))
}

// HandleOwnedItems returns the caller's gifts, optionally by origin
// @Summary List owned gifts
// @Tags items
// @Produce json
// @Param origin query string false "all, gift or purchase" default(all)
// @Success 200 {array} domain.Item
// @Failure 400 {object} ErrorResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/gifts [get]
// @Security TelegramInitData
func (h *Handlers) HandleOwnedItems(w http.ResponseWriter, r *http.Request) {
	filter := mirror.OriginFilter(GetOptionalQueryParam(r, QueryParamOrigin, string(mirror.OriginAll)))
	switch filter {
	case mirror.OriginAll, mirror.OriginGift, mirror.OriginPurchase:
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgInvalidQueryParam, QueryParamOrigin))
		return
	}

	sess, ok := h.session(w, r)
	if !ok {
		return
	}
	respondJSON(w, http.StatusOK, sess.Mirror.OwnedItems(filter))
}
