package middleware

import (
	"errors"
	"net/http"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"carlot/internal/auth"
	"carlot/internal/model"
)

const (
	// IdentityKey is the context key holding the verified *auth.Identity.
	IdentityKey = "identity"
	// TokenIDKey is the context key holding the token's JTI, kept for logout.
	TokenIDKey = "token_id"
	// TokenExpiresKey is the context key holding the token expiry time.
	TokenExpiresKey = "token_expires"

	loginPath = "/account/login"
)

// Auth builds the identity-loading middleware and the role guards.
type Auth struct {
	jwtSecret []byte
	store     auth.TokenStoreInterface
	flash     *FlashManager
}

// NewAuth creates the auth middleware set.
func NewAuth(jwtSecret string, store auth.TokenStoreInterface, flash *FlashManager) *Auth {
	return &Auth{
		jwtSecret: []byte(jwtSecret),
		store:     store,
		flash:     flash,
	}
}

// LoadIdentity verifies the jwt cookie on every request. A missing cookie is
// an anonymous visitor; an invalid, expired, or revoked token clears the
// cookie and also proceeds as anonymous rather than failing the request.
func (a *Auth) LoadIdentity() echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		SigningKey:             a.jwtSecret,
		TokenLookup:            "cookie:" + auth.CookieName,
		ContinueOnIgnoredError: true,
		ErrorHandler: func(c echo.Context, err error) error {
			if !errors.Is(err, echojwt.ErrJWTMissing) {
				auth.ClearCookie(c)
			}
			return nil
		},
		SuccessHandler: func(c echo.Context) {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return
			}
			claims, ok := token.Claims.(jwt.MapClaims)
			if !ok {
				return
			}

			tokenID, _ := claims["jti"].(string)
			if tokenID != "" {
				if revoked, _ := a.store.IsBlacklisted(c.Request().Context(), tokenID); revoked {
					auth.ClearCookie(c)
					return
				}
			}

			accountID, _ := claims["account_id"].(float64)
			firstname, _ := claims["firstname"].(string)
			lastname, _ := claims["lastname"].(string)
			email, _ := claims["email"].(string)
			accountType, _ := claims["account_type"].(string)

			c.Set(IdentityKey, &auth.Identity{
				AccountID: uint(accountID),
				Firstname: firstname,
				Lastname:  lastname,
				Email:     email,
				Type:      model.AccountType(accountType),
			})
			c.Set(TokenIDKey, tokenID)
			if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
				c.Set(TokenExpiresKey, exp.Time)
			}
		},
	})
}

// RequireLogin allows any authenticated account through.
func (a *Auth) RequireLogin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		if IdentityFrom(c) == nil {
			a.flash.Set(c, "notice", "Please log in.")
			return c.Redirect(http.StatusFound, loginPath)
		}
		return next(c)
	}
}

// RequireStaff allows Employee and Admin accounts through.
func (a *Auth) RequireStaff(next echo.HandlerFunc) echo.HandlerFunc {
	return a.requireRole(model.TypeEmployee, next)
}

// RequireAdmin allows only Admin accounts through.
func (a *Auth) RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return a.requireRole(model.TypeAdmin, next)
}

func (a *Auth) requireRole(min model.AccountType, next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ident := IdentityFrom(c)
		if ident == nil {
			a.flash.Set(c, "notice", "Please log in.")
			return c.Redirect(http.StatusFound, loginPath)
		}
		if !ident.Type.HasMinimumRole(min) {
			a.flash.Set(c, "notice", "You do not have permission to access that page.")
			return c.Redirect(http.StatusFound, loginPath)
		}
		return next(c)
	}
}

// IdentityFrom returns the request identity, or nil for anonymous visitors.
func IdentityFrom(c echo.Context) *auth.Identity {
	ident, _ := c.Get(IdentityKey).(*auth.Identity)
	return ident
}
