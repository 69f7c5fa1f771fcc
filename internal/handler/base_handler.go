package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	apperrors "carlot/internal/errors"
	"carlot/internal/service"
)

// BaseHandler serves the home page data and the deliberate error route.
type BaseHandler struct {
	inventoryService service.InventoryService
}

// NewBaseHandler creates a new base handler.
func NewBaseHandler(inventoryService service.InventoryService) *BaseHandler {
	return &BaseHandler{inventoryService: inventoryService}
}

// Home godoc
// @Summary Home page data
// @Tags pages
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router / [get]
func (h *BaseHandler) Home(c echo.Context) error {
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title": "Home",
		"nav":   nav,
	})
}

// TestError deliberately fails so the centralized error handler can be
// exercised end to end.
func (h *BaseHandler) TestError(c echo.Context) error {
	return echo.NewHTTPError(http.StatusInternalServerError, "intentional server error for testing")
}

// domainError converts a service error into an echo error carrying the
// standardized body. Unrecognized errors become a 500.
func domainError(err error) *echo.HTTPError {
	httpErr := apperrors.MapErrorToHTTP(err)
	return echo.NewHTTPError(httpErr.StatusCode, httpErr.ToErrorResponse())
}

// paramUint parses a numeric path parameter.
func paramUint(c echo.Context, name string) (uint, error) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid "+name)
	}
	return uint(id), nil
}
