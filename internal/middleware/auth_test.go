package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"

	"carlot/internal/auth"
	"carlot/internal/model"
)

const testSecret = "test-secret"

func newTestAuth() *Auth {
	// A token store with no redis degrades to "nothing revoked", which is
	// exactly what these tests need.
	return NewAuth(testSecret, auth.NewTokenStore(nil), NewFlashManager("session-secret"))
}

func identityEcho(t *testing.T, a *Auth) (*echo.Echo, **auth.Identity) {
	t.Helper()
	e := echo.New()
	var seen *auth.Identity
	e.GET("/probe", func(c echo.Context) error {
		seen = IdentityFrom(c)
		return c.NoContent(http.StatusOK)
	}, a.LoadIdentity())
	return e, &seen
}

func TestLoadIdentity_NoCookieIsAnonymous(t *testing.T) {
	a := newTestAuth()
	e, seen := identityEcho(t, a)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, *seen)
}

func TestLoadIdentity_ValidCookie(t *testing.T) {
	a := newTestAuth()
	e, seen := identityEcho(t, a)

	token, err := auth.NewJWTService(testSecret).GenerateToken(&model.Account{
		ID:        5,
		Firstname: "Manager",
		Lastname:  "User",
		Email:     "manager@example.com",
		Type:      model.TypeAdmin,
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	ident := *seen
	assert.NotNil(t, ident)
	assert.Equal(t, uint(5), ident.AccountID)
	assert.Equal(t, "manager@example.com", ident.Email)
	assert.Equal(t, model.TypeAdmin, ident.Type)
	assert.True(t, ident.IsAdmin())
}

func TestLoadIdentity_TamperedCookieIsAnonymous(t *testing.T) {
	a := newTestAuth()
	e, seen := identityEcho(t, a)

	token, err := auth.NewJWTService(testSecret).GenerateToken(&model.Account{
		ID:    5,
		Email: "manager@example.com",
		Type:  model.TypeAdmin,
	})
	assert.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/probe", nil)
	req.AddCookie(&http.Cookie{Name: auth.CookieName, Value: token + "x"})
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	// Invalid tokens never fail the request; they clear the cookie and the
	// visitor proceeds anonymous.
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, *seen)

	cleared := false
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == auth.CookieName && cookie.MaxAge < 0 {
			cleared = true
		}
	}
	assert.True(t, cleared, "tampered jwt cookie should be cleared")
}

func TestRequireLogin_AnonymousRedirects(t *testing.T) {
	a := newTestAuth()
	e := echo.New()
	e.GET("/secure", func(c echo.Context) error {
		return c.NoContent(http.StatusOK)
	}, a.LoadIdentity(), a.RequireLogin)

	req := httptest.NewRequest(http.MethodGet, "/secure", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/account/login", rec.Header().Get(echo.HeaderLocation))
}

func TestRoleGuards(t *testing.T) {
	tests := []struct {
		name         string
		accountType  model.AccountType
		guard        func(a *Auth) echo.MiddlewareFunc
		expectedCode int
	}{
		{"client blocked from staff routes", model.TypeClient, func(a *Auth) echo.MiddlewareFunc { return a.RequireStaff }, http.StatusFound},
		{"employee allowed on staff routes", model.TypeEmployee, func(a *Auth) echo.MiddlewareFunc { return a.RequireStaff }, http.StatusOK},
		{"admin allowed on staff routes", model.TypeAdmin, func(a *Auth) echo.MiddlewareFunc { return a.RequireStaff }, http.StatusOK},
		{"employee blocked from admin routes", model.TypeEmployee, func(a *Auth) echo.MiddlewareFunc { return a.RequireAdmin }, http.StatusFound},
		{"admin allowed on admin routes", model.TypeAdmin, func(a *Auth) echo.MiddlewareFunc { return a.RequireAdmin }, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := newTestAuth()
			e := echo.New()

			seedIdentity := func(next echo.HandlerFunc) echo.HandlerFunc {
				return func(c echo.Context) error {
					c.Set(IdentityKey, &auth.Identity{AccountID: 1, Type: tt.accountType})
					return next(c)
				}
			}

			e.GET("/guarded", func(c echo.Context) error {
				return c.NoContent(http.StatusOK)
			}, seedIdentity, tt.guard(a))

			req := httptest.NewRequest(http.MethodGet, "/guarded", nil)
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.expectedCode, rec.Code)
			if tt.expectedCode == http.StatusFound {
				assert.Equal(t, "/account/login", rec.Header().Get(echo.HeaderLocation))
			}
		})
	}
}

func TestFlashRoundTrip(t *testing.T) {
	fm := NewFlashManager("session-secret")
	e := echo.New()

	// First request sets the flash.
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	fm.Set(c, "notice", "Please log in.")

	cookies := rec.Result().Cookies()
	assert.NotEmpty(t, cookies)

	// Second request carries the cookie back.
	req2 := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, cookie := range cookies {
		req2.AddCookie(cookie)
	}
	rec2 := httptest.NewRecorder()
	c2 := e.NewContext(req2, rec2)

	flash := fm.Take(c2)
	assert.NotNil(t, flash)
	assert.Equal(t, "notice", flash.Kind)
	assert.Equal(t, "Please log in.", flash.Message)
}

func TestFlashTamperedIsDropped(t *testing.T) {
	fm := NewFlashManager("session-secret")
	e := echo.New()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: flashCookieName, Value: "bm90aWNl.deadbeef"})
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	assert.Nil(t, fm.Take(c))
}
