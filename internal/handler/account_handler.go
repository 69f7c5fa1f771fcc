package handler

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"carlot/internal/auth"
	apperrors "carlot/internal/errors"
	"carlot/internal/middleware"
	"carlot/internal/service"
)

// AccountHandler handles registration, login, logout, and account updates.
type AccountHandler struct {
	authService      service.AuthService
	accountService   service.AccountService
	inventoryService service.InventoryService
	flash            *middleware.FlashManager
}

// NewAccountHandler creates a new account handler.
func NewAccountHandler(
	authService service.AuthService,
	accountService service.AccountService,
	inventoryService service.InventoryService,
	flash *middleware.FlashManager,
) *AccountHandler {
	return &AccountHandler{
		authService:      authService,
		accountService:   accountService,
		inventoryService: inventoryService,
		flash:            flash,
	}
}

// RegisterRequest represents a registration form submission.
type RegisterRequest struct {
	Firstname string `json:"firstname" form:"firstname" validate:"required,min=1,max=100"`
	Lastname  string `json:"lastname" form:"lastname" validate:"required,min=2,max=100"`
	Email     string `json:"email" form:"email" validate:"required,email"`
	Password  string `json:"password" form:"password" validate:"required,strongpassword"`
}

// LoginRequest represents a login form submission.
type LoginRequest struct {
	Email    string `json:"email" form:"email" validate:"required,email"`
	Password string `json:"password" form:"password" validate:"required"`
}

// UpdateAccountRequest represents a profile update submission.
type UpdateAccountRequest struct {
	Firstname string `json:"firstname" form:"firstname" validate:"required,min=2,max=100"`
	Lastname  string `json:"lastname" form:"lastname" validate:"required,min=2,max=100"`
	Email     string `json:"email" form:"email" validate:"required,email"`
}

// UpdatePasswordRequest represents a password change submission.
type UpdatePasswordRequest struct {
	Password string `json:"password" form:"password" validate:"required,strongpassword"`
}

// LoginView godoc
// @Summary Login page data
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /account/login [get]
func (h *AccountHandler) LoginView(c echo.Context) error {
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	payload := echo.Map{
		"title": "Login",
		"nav":   nav,
	}
	if flash := h.flash.Take(c); flash != nil {
		payload["notice"] = flash.Message
	}
	return c.JSON(http.StatusOK, payload)
}

// RegisterView godoc
// @Summary Registration page data
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /account/register [get]
func (h *AccountHandler) RegisterView(c echo.Context) error {
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title": "Register",
		"nav":   nav,
	})
}

// Register godoc
// @Summary Register a new account
// @Tags account
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /account/register [post]
func (h *AccountHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	account, err := h.authService.Register(c.Request().Context(), req.Firstname, req.Lastname, req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "Congratulations, you're registered. Please log in.",
		"account": account,
	})
}

// Login godoc
// @Summary Log in and receive the jwt cookie
// @Tags account
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/login [post]
func (h *AccountHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	token, account, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return domainError(err)
	}

	auth.SetCookie(c, token)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "logged in successfully",
		"account": account,
	})
}

// Logout godoc
// @Summary Log out, revoking the current token
// @Tags account
// @Success 302
// @Router /account/logout [get]
func (h *AccountHandler) Logout(c echo.Context) error {
	tokenID, _ := c.Get(middleware.TokenIDKey).(string)
	expires, _ := c.Get(middleware.TokenExpiresKey).(time.Time)
	if err := h.authService.Logout(c.Request().Context(), tokenID, expires); err != nil {
		return domainError(err)
	}
	auth.ClearCookie(c)
	return c.Redirect(http.StatusFound, "/")
}

// Management godoc
// @Summary Account management page data
// @Tags account
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} errors.ErrorResponse
// @Router /account/ [get]
func (h *AccountHandler) Management(c echo.Context) error {
	ident := middleware.IdentityFrom(c)
	account, err := h.accountService.Get(c.Request().Context(), ident.AccountID)
	if err != nil {
		return domainError(err)
	}
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Account Management",
		"nav":     nav,
		"account": account,
	})
}

// Update godoc
// @Summary Update the logged-in account's profile
// @Tags account
// @Accept json
// @Produce json
// @Param request body UpdateAccountRequest true "Profile data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /account/update [post]
func (h *AccountHandler) Update(c echo.Context) error {
	var req UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ident := middleware.IdentityFrom(c)
	account, err := h.accountService.UpdateProfile(c.Request().Context(), ident.AccountID, req.Firstname, req.Lastname, req.Email)
	if err != nil {
		if err == apperrors.ErrEmailExists {
			return echo.NewHTTPError(http.StatusConflict, apperrors.ErrorResponse{
				Error: "Email already exists. Please choose another.",
				Code:  "EMAIL_EXISTS",
			})
		}
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "account updated successfully",
		"account": account,
	})
}

// UpdatePassword godoc
// @Summary Change the logged-in account's password
// @Tags account
// @Accept json
// @Produce json
// @Param request body UpdatePasswordRequest true "New password"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Router /account/update-password [post]
func (h *AccountHandler) UpdatePassword(c echo.Context) error {
	var req UpdatePasswordRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ident := middleware.IdentityFrom(c)
	if err := h.accountService.UpdatePassword(c.Request().Context(), ident.AccountID, req.Password); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "password updated successfully",
	})
}
