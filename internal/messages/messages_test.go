package messages

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"golang.org/x/text/language"

	"github.com/osse101/GiftMarket_Go/internal/domain"
)

func TestMatch(t *testing.T) {
	tr := New()

	tests := []struct {
		name  string
		prefs []string
		want  language.Tag
	}{
		{name: "telegram code", prefs: []string{"ru"}, want: language.Russian},
		{name: "accept-language", prefs: []string{"", "ru-RU,ru;q=0.9,en;q=0.8"}, want: language.Russian},
		{name: "english", prefs: []string{"en-GB"}, want: language.English},
		{name: "unsupported falls through", prefs: []string{"de", "ru"}, want: language.Russian},
		{name: "garbage", prefs: []string{"!!"}, want: language.English},
		{name: "none", want: language.English},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.Match(tt.prefs...))
		})
	}
}

func TestEveryKeyIsTranslatedAndDistinct(t *testing.T) {
	tr := New()

	for _, lang := range supported {
		seen := make(map[string]Key)
		for _, e := range entries {
			text := tr.Text(lang, e.key)
			assert.NotEqual(t, string(e.key), text, "%s missing in %s", e.key, lang)
			if other, dup := seen[text]; dup {
				t.Errorf("%s and %s render the same text in %s", e.key, other, lang)
			}
			seen[text] = e.key
		}
	}
}

func TestText_FormatsArguments(t *testing.T) {
	tr := New()

	assert.Equal(t, `You bought "Plush Pepe" for 30 TON. New balance: 70 TON`,
		tr.Text(language.English, KeyPurchaseCompleted, "Plush Pepe", "30", "70"))
	assert.Equal(t, "Недостаточно средств", tr.Text(language.Russian, KeyErrInsufficientFunds))
}

func TestKeyForError(t *testing.T) {
	tests := []struct {
		err  error
		want Key
	}{
		{fmt.Errorf("%w: pepe-1", domain.ErrAlreadyOwned), KeyErrAlreadyOwned},
		{fmt.Errorf("set-balance: %w", domain.ErrRemoteUnavailable), KeyErrRemoteUnavailable},
		{fmt.Errorf("%w: add-owned-item", domain.ErrPartiallyFailed), KeyPartiallyFailed},
		{domain.ErrInvalidCard, KeyErrInvalidCard},
		{errors.New("boom"), KeyErrInternal},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, KeyForError(tt.err), tt.err.Error())
	}
}

func TestError_RendersLocalised(t *testing.T) {
	tr := New()
	assert.Equal(t, "Вы уже владеете этим NFT", tr.Error(language.Russian, domain.ErrAlreadyOwned))
	assert.Equal(t, "Something went wrong", tr.Error(language.English, errors.New("boom")))
}
