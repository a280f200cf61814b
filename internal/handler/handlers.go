package handler

import (
	"net/http"

	"golang.org/x/text/language"

	"github.com/osse101/GiftMarket_Go/internal/economy"
	"github.com/osse101/GiftMarket_Go/internal/messages"
	"github.com/osse101/GiftMarket_Go/internal/middleware"
	"github.com/osse101/GiftMarket_Go/internal/session"
	"github.com/osse101/GiftMarket_Go/internal/settings"
)

// Operation names used in logs
const (
	opOpenSession = "open_session"
	opDeposit     = "deposit"
	opCardDeposit = "card_deposit"
	opQuote       = "card_deposit_quote"
	opWithdraw    = "withdraw_validate"
	opPurchase    = "purchase"
	opSell        = "sell"
	opPublish     = "publish"
	opListings    = "list_listings"
	opReferral    = "referral"
)

// Handlers serves the Mini-App API for the caller's session
type Handlers struct {
	sessions *session.Manager
	economy  economy.Service
	settings *settings.Service
	messages *messages.Translator
}

// NewHandlers creates the API handlers
func NewHandlers(sessions *session.Manager, economySvc economy.Service, settingsSvc *settings.Service, translator *messages.Translator) *Handlers {
	return &Handlers{
		sessions: sessions,
		economy:  economySvc,
		settings: settingsSvc,
		messages: translator,
	}
}

// session returns the caller's open session, opening it on first use.
// Anonymous callers get the placeholder session. On error the response
// has been written.
func (h *Handlers) session(w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	caller, ok := middleware.CallerFrom(r.Context())
	if !ok {
		return h.sessions.Anonymous(), true
	}

	sess, err := h.sessions.Open(r.Context(), caller.Identity, caller.Profile)
	if err != nil {
		h.respondServiceError(w, r, opOpenSession, err)
		return nil, false
	}
	return sess, true
}

func (h *Handlers) lang(r *http.Request) language.Tag {
	return h.messages.Match(middleware.Language(r)...)
}
