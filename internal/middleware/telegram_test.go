package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const botToken = "123456:TEST-token"

var fixedNow = time.Unix(1_760_000_000, 0)

// signInitData builds initData the way Telegram clients receive it
func signInitData(t *testing.T, token string, fields map[string]string) string {
	t.Helper()
	secretMac := hmac.New(sha256.New, []byte("WebAppData"))
	secretMac.Write([]byte(token))

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	lines := make([]string, len(keys))
	values := url.Values{}
	for i, k := range keys {
		lines[i] = k + "=" + fields[k]
		values.Set(k, fields[k])
	}

	mac := hmac.New(sha256.New, secretMac.Sum(nil))
	mac.Write([]byte(strings.Join(lines, "\n")))
	values.Set("hash", hex.EncodeToString(mac.Sum(nil)))
	return values.Encode()
}

func validFields(authDate time.Time) map[string]string {
	return map[string]string{
		"auth_date": strconv.FormatInt(authDate.Unix(), 10),
		"query_id":  "AAF-abc",
		"user":      `{"id":777,"first_name":"Ann","username":"ann","language_code":"ru"}`,
	}
}

func newTestVerifier() *Verifier {
	v := NewVerifier(botToken, time.Hour)
	v.now = func() time.Time { return fixedNow }
	return v
}

func TestVerifier_Verify(t *testing.T) {
	v := newTestVerifier()

	tampered := signInitData(t, botToken, validFields(fixedNow))
	tampered = strings.Replace(tampered, "AAF-abc", "AAF-xyz", 1)

	noUser := validFields(fixedNow)
	delete(noUser, "user")

	noAuthDate := validFields(fixedNow)
	delete(noAuthDate, "auth_date")

	tests := []struct {
		name    string
		raw     string
		wantErr error
	}{
		{name: "valid", raw: signInitData(t, botToken, validFields(fixedNow))},
		{name: "wrong bot", raw: signInitData(t, "999:other", validFields(fixedNow)), wantErr: ErrBadSignature},
		{name: "tampered", raw: tampered, wantErr: ErrBadSignature},
		{name: "expired", raw: signInitData(t, botToken, validFields(fixedNow.Add(-2*time.Hour))), wantErr: ErrExpired},
		{name: "no hash", raw: "auth_date=1&user=%7B%7D", wantErr: ErrMissingHash},
		{name: "no user", raw: signInitData(t, botToken, noUser), wantErr: ErrMissingUser},
		{name: "no auth date", raw: signInitData(t, botToken, noAuthDate), wantErr: ErrExpired},
		{name: "hash not hex", raw: "auth_date=1&hash=zz&user=%7B%7D", wantErr: ErrBadSignature},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u, err := v.Verify(tt.raw)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(777), u.ID)
			assert.Equal(t, "ann", u.Profile().Username)
			assert.Equal(t, "ru", u.Profile().LanguageCode)
		})
	}
}

func TestVerifier_UnsignedWithoutToken(t *testing.T) {
	v := NewVerifier("", 0)

	u, err := v.Verify(url.Values{"user": {`{"id":5,"first_name":"Dev"}`}}.Encode())
	require.NoError(t, err)
	assert.Equal(t, int64(5), u.ID)
}

func TestTelegramAuth(t *testing.T) {
	var seen []int64
	var langs [][]string
	h := TelegramAuth(newTestVerifier())(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, Identity(r))
		langs = append(langs, Language(r))
		w.WriteHeader(http.StatusNoContent)
	}))

	// anonymous
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// signed
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderInitData, signInitData(t, botToken, validFields(fixedNow)))
	req.Header.Set(HeaderAcceptLanguage, "en-US")
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	// forged
	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderInitData, signInitData(t, "999:other", validFields(fixedNow)))
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	assert.Equal(t, []int64{0, 777}, seen)
	assert.Equal(t, [][]string{{"", ""}, {"ru", "en-US"}}, langs)
}
