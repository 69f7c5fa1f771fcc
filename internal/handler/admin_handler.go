package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"carlot/internal/middleware"
	"carlot/internal/service"
)

// AdminHandler drives the approval dashboard and its actions.
type AdminHandler struct {
	approvalService  service.ApprovalService
	inventoryService service.InventoryService
}

// NewAdminHandler creates a new admin handler.
func NewAdminHandler(approvalService service.ApprovalService, inventoryService service.InventoryService) *AdminHandler {
	return &AdminHandler{
		approvalService:  approvalService,
		inventoryService: inventoryService,
	}
}

// ApprovalActionRequest identifies the item an admin is approving or
// rejecting.
type ApprovalActionRequest struct {
	ItemType string `json:"item_type" form:"item_type" validate:"required,oneof=classification vehicle"`
	ID       uint   `json:"id" form:"id" validate:"required"`
}

// Dashboard godoc
// @Summary Approval dashboard data
// @Tags admin
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /admin/approval [get]
func (h *AdminHandler) Dashboard(c echo.Context) error {
	pending, err := h.approvalService.Pending(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":   "Admin Approval Dashboard",
		"nav":     nav,
		"pending": pending,
	})
}

// Approve godoc
// @Summary Approve a pending classification or vehicle
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ApprovalActionRequest true "Item to approve"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /admin/approve [post]
func (h *AdminHandler) Approve(c echo.Context) error {
	var req ApprovalActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ident := middleware.IdentityFrom(c)
	if err := h.approvalService.Approve(c.Request().Context(), req.ItemType, req.ID, ident.AccountID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "item approved successfully",
	})
}

// Reject godoc
// @Summary Reject (delete) a pending classification or vehicle
// @Tags admin
// @Accept json
// @Produce json
// @Param request body ApprovalActionRequest true "Item to reject"
// @Success 200 {object} map[string]string
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Router /admin/reject [post]
func (h *AdminHandler) Reject(c echo.Context) error {
	var req ApprovalActionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.approvalService.Reject(c.Request().Context(), req.ItemType, req.ID); err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, map[string]string{
		"message": "item rejected and deleted",
	})
}
