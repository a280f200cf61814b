// Package middleware authenticates Telegram Mini-App requests.
package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	initdata "github.com/telegram-mini-apps/init-data-golang"

	"github.com/osse101/GiftMarket_Go/internal/domain"
	"github.com/osse101/GiftMarket_Go/internal/logger"
)

// Errors returned by Verify
var (
	ErrMissingHash   = errors.New("init data has no hash")
	ErrBadSignature  = errors.New("init data signature mismatch")
	ErrExpired       = errors.New("init data expired")
	ErrMissingUser   = errors.New("init data has no user")
	ErrMalformedData = errors.New("malformed init data")
)

// TelegramUser is the user object embedded in initData
type TelegramUser struct {
	ID           int64
	FirstName    string
	LastName     string
	Username     string
	LanguageCode string
	PhotoURL     string
}

// Profile converts the Telegram user into the profile used on first open
func (u TelegramUser) Profile() domain.Profile {
	return domain.Profile{
		Username:     u.Username,
		FirstName:    u.FirstName,
		AvatarURL:    u.PhotoURL,
		LanguageCode: u.LanguageCode,
	}
}

// Verifier checks initData signatures for one bot
type Verifier struct {
	token  string
	maxAge time.Duration
	now    func() time.Time
}

// NewVerifier creates a verifier for botToken. An empty token disables
// signature checks, which is only meant for local development.
func NewVerifier(botToken string, maxAge time.Duration) *Verifier {
	if maxAge <= 0 {
		maxAge = DefaultMaxAge
	}
	if botToken == "" {
		logger.Warn(LogMsgUnsignedInitData)
	}
	return &Verifier{token: botToken, maxAge: maxAge, now: time.Now}
}

// Verify validates raw initData and returns its user
func (v *Verifier) Verify(raw string) (TelegramUser, error) {
	signed := v.token != ""
	if signed {
		// expiry is checked below against the verifier's clock
		if err := initdata.Validate(raw, v.token, 0); err != nil {
			return TelegramUser{}, validationError(err)
		}
	}

	data, err := initdata.Parse(raw)
	if err != nil {
		return TelegramUser{}, fmt.Errorf("%w: %w", ErrMalformedData, err)
	}
	if signed && v.now().Sub(data.AuthDate()) > v.maxAge {
		return TelegramUser{}, ErrExpired
	}
	if data.User.ID <= 0 {
		return TelegramUser{}, ErrMissingUser
	}

	return TelegramUser{
		ID:           data.User.ID,
		FirstName:    data.User.FirstName,
		LastName:     data.User.LastName,
		Username:     data.User.Username,
		LanguageCode: data.User.LanguageCode,
		PhotoURL:     data.User.PhotoURL,
	}, nil
}

func validationError(err error) error {
	switch {
	case errors.Is(err, initdata.ErrSignMissing):
		return ErrMissingHash
	case errors.Is(err, initdata.ErrSignInvalid):
		return ErrBadSignature
	case errors.Is(err, initdata.ErrExpired):
		return ErrExpired
	}
	return fmt.Errorf("%w: %w", ErrMalformedData, err)
}

// TelegramAuth resolves the caller from the init data header. Requests
// without it continue anonymously; requests with invalid data get 401.
func TelegramAuth(v *Verifier) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw := r.Header.Get(HeaderInitData)
			if raw == "" {
				next.ServeHTTP(w, r)
				return
			}

			u, err := v.Verify(raw)
			if err != nil {
				logger.FromContext(r.Context()).Warn(LogMsgInitDataRejected,
					"remote_addr", r.RemoteAddr,
					"path", r.URL.Path,
					"error", err)
				http.Error(w, ErrMsgUnauthorized, http.StatusUnauthorized)
				return
			}

			ctx := withCaller(r.Context(), Caller{Identity: u.ID, Profile: u.Profile()})
			ctx = logger.WithIdentity(ctx, u.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

type callerKey struct{}

// Caller is the authenticated Telegram user behind a request
type Caller struct {
	Identity int64
	Profile  domain.Profile
}

func withCaller(ctx context.Context, c Caller) context.Context {
	return context.WithValue(ctx, callerKey{}, c)
}

// CallerFrom returns the authenticated caller; ok is false for anonymous requests
func CallerFrom(ctx context.Context) (Caller, bool) {
	c, ok := ctx.Value(callerKey{}).(Caller)
	return c, ok
}

// Identity returns the caller's identity, zero for anonymous requests
func Identity(r *http.Request) int64 {
	c, _ := CallerFrom(r.Context())
	return c.Identity
}

// Language returns the caller's language preferences, most specific first
func Language(r *http.Request) []string {
	c, _ := CallerFrom(r.Context())
	return []string{c.Profile.LanguageCode, r.Header.Get(HeaderAcceptLanguage)}
}
