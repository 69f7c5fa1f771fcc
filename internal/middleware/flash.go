package middleware

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

const flashCookieName = "flash"

// Flash is a one-shot notice surviving a single redirect, the usual
// post-guard "Please log in." message.
type Flash struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
}

// FlashManager signs and verifies the flash cookie with the session secret.
type FlashManager struct {
	secret []byte
}

// NewFlashManager creates a flash manager.
func NewFlashManager(sessionSecret string) *FlashManager {
	return &FlashManager{secret: []byte(sessionSecret)}
}

// Set stores a flash notice for the next request.
func (m *FlashManager) Set(c echo.Context, kind, message string) {
	payload, err := json.Marshal(Flash{Kind: kind, Message: message})
	if err != nil {
		return
	}
	encoded := base64.RawURLEncoding.EncodeToString(payload)
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    encoded + "." + m.sign(encoded),
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   300,
	})
}

// Take reads and clears the pending flash notice, if any. Tampered or
// malformed cookies are discarded silently.
func (m *FlashManager) Take(c echo.Context) *Flash {
	cookie, err := c.Cookie(flashCookieName)
	if err != nil || cookie.Value == "" {
		return nil
	}
	c.SetCookie(&http.Cookie{
		Name:     flashCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})

	encoded, sig, ok := strings.Cut(cookie.Value, ".")
	if !ok || !hmac.Equal([]byte(sig), []byte(m.sign(encoded))) {
		return nil
	}
	payload, err := base64.RawURLEncoding.DecodeString(encoded)
	if err != nil {
		return nil
	}
	var flash Flash
	if err := json.Unmarshal(payload, &flash); err != nil {
		return nil
	}
	return &flash
}

func (m *FlashManager) sign(encoded string) string {
	mac := hmac.New(sha256.New, m.secret)
	mac.Write([]byte(encoded))
	return hex.EncodeToString(mac.Sum(nil))
}
