package handler

import (
	"net/http"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/middleware"
)

// SupportResponse names the support account
type SupportResponse struct {
	Username string `json:"username"`
}

// ReferralResponse carries the caller's invite code
type ReferralResponse struct {
	Code string `json:"code"`
}

// HandleSupport returns the support username
// @Summary Get the support account
// @Tags profile
// @Produce json
// @Success 200 {object} SupportResponse
// @Router /api/v1/settings/support [get]
func (h *Handlers) HandleSupport(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, SupportResponse{Username: h.settings.SupportUsername(r.Context())})
}

// HandleReferral returns the caller's referral code
// @Summary Get the caller's referral code
// @Tags profile
// @Produce json
// @Success 200 {object} ReferralResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/profile/referral [get]
// @Security TelegramInitData
func (h *Handlers) HandleReferral(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	if identity == 0 {
		h.respondServiceError(w, r, opReferral, domain.ErrUnknownIdentity)
		return
	}
	respondJSON(w, http.StatusOK, ReferralResponse{Code: domain.ReferralCode(identity)})
}
