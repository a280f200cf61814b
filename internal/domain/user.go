package domain

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Profile is what the messaging platform tells us about a user on first open
type Profile struct {
	Username     string `json:"username,omitempty"`
	FirstName    string `json:"first_name,omitempty"`
	AvatarURL    string `json:"photo_url,omitempty"`
	LanguageCode string `json:"language_code,omitempty"`
}

// DisplayName prefers the username over the first name
func (p Profile) DisplayName() string {
	if p.Username != "" {
		return p.Username
	}
	return p.FirstName
}

// User is the mirror's view of a wallet owner
type User struct {
	ID          int64           `json:"id"`
	DisplayName string          `json:"display_name"`
	Avatar      string          `json:"avatar"`
	Balance     decimal.Decimal `json:"balance" swaggertype:"string"`
	TotalVolume decimal.Decimal `json:"total_volume" swaggertype:"string"`
	BoughtCount int             `json:"bought_count"`
	SoldCount   int             `json:"sold_count"`
}

// Address renders the wallet-style address shown in the profile header
func (u User) Address() string {
	return "EQ" + strconv.FormatInt(u.ID, 10)
}

// PlaceholderUser is shown when the app is opened outside a Telegram session
func PlaceholderUser() User {
	return User{
		DisplayName: "guest",
		Avatar:      "https://picsum.photos/200/200?random=user",
		Balance:     decimal.Zero,
		TotalVolume: decimal.Zero,
	}
}

// ReferralCode derives the invite code handed out to a user:
// base36 of the identity, upper-cased and left-padded with zeros to 8 characters.
func ReferralCode(identity int64) string {
	code := strings.ToUpper(strconv.FormatInt(identity, 36))
	if len(code) < 8 {
		code = strings.Repeat("0", 8-len(code)) + code
	}
	return code
}
