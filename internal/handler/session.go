package handler

import (
	"net/http"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/logger"
	"github.com/osse101/GiftMarket_Go/internal/middleware"
	"github.com/osse101/GiftMarket_Go/internal/mirror"
)

// SessionResponse is the full state the Mini-App renders on open
type SessionResponse struct {
	mirror.Snapshot
	Address      string `json:"address,omitempty"`
	ReferralCode string `json:"referral_code,omitempty"`
	Anonymous    bool   `json:"anonymous"`
}

func (h *Handlers) snapshot(w http.ResponseWriter, r *http.Request, status int) {
	sess, ok := h.session(w, r)
	if !ok {
		return
	}

	resp := SessionResponse{Snapshot: sess.Mirror.Snapshot(), Anonymous: sess.Anonymous()}
	if !sess.Anonymous() {
		resp.Address = resp.User.Address()
		resp.ReferralCode = domain.ReferralCode(sess.Identity)
	}
	respondJSON(w, status, resp)
}

// HandleOpenSession opens (or refreshes) the caller's session and returns its snapshot
// @Summary Open a session
// @Description Loads the caller's user, history and gifts and subscribes to ledger changes. Without init data the guest view is returned.
// @Tags session
// @Produce json
// @Success 201 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/session [post]
// @Security TelegramInitData
func (h *Handlers) HandleOpenSession(w http.ResponseWriter, r *http.Request) {
	h.snapshot(w, r, http.StatusCreated)
}

// HandleGetSession returns the caller's snapshot
// @Summary Get the session snapshot
// @Tags session
// @Produce json
// @Success 200 {object} SessionResponse
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/session [get]
// @Security TelegramInitData
func (h *Handlers) HandleGetSession(w http.ResponseWriter, r *http.Request) {
	h.snapshot(w, r, http.StatusOK)
}

// HandleCloseSession drops the caller's session and its subscriptions
// @Summary Close the session
// @Tags session
// @Success 204
// @Failure 401 {object} ErrorResponse
// @Router /api/v1/session [delete]
// @Security TelegramInitData
func (h *Handlers) HandleCloseSession(w http.ResponseWriter, r *http.Request) {
	identity := middleware.Identity(r)
	if identity == 0 {
		h.respondServiceError(w, r, opOpenSession, domain.ErrUnknownIdentity)
		return
	}
	if h.sessions.Close(identity) {
		logger.FromContext(r.Context()).Info(LogMsgSessionClosed)
	}
	w.WriteHeader(http.StatusNoContent)
}
