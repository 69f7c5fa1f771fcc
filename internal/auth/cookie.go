package auth

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
)

// SetCookie attaches the signed token as the HTTP-only jwt cookie.
func SetCookie(c echo.Context, token string) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		Expires:  time.Now().Add(TokenExpiry),
		MaxAge:   int(TokenExpiry.Seconds()),
	})
}

// ClearCookie expires the jwt cookie.
func ClearCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
		MaxAge:   -1,
	})
}
