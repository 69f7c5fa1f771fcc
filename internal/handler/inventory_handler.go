package handler

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"carlot/internal/service"
)

// InventoryHandler covers public browsing and staff inventory management.
type InventoryHandler struct {
	inventoryService service.InventoryService
}

// NewInventoryHandler creates a new inventory handler.
func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

// ClassificationRequest represents an add-classification submission.
type ClassificationRequest struct {
	Name string `json:"classification_name" form:"classification_name" validate:"required,min=1,max=100"`
}

// VehicleRequest represents an add-vehicle submission. Price arrives as a
// string so form and JSON submissions bind the same way.
type VehicleRequest struct {
	ClassificationID uint   `json:"classification_id" form:"classification_id" validate:"required"`
	Make             string `json:"inv_make" form:"inv_make" validate:"required,min=2,max=100"`
	Model            string `json:"inv_model" form:"inv_model" validate:"required,min=2,max=100"`
	Year             int    `json:"inv_year" form:"inv_year" validate:"required,gte=1900,lte=2100"`
	Description      string `json:"inv_description" form:"inv_description" validate:"required,min=4"`
	Image            string `json:"inv_image" form:"inv_image" validate:"omitempty,max=255"`
	Thumbnail        string `json:"inv_thumbnail" form:"inv_thumbnail" validate:"omitempty,max=255"`
	Price            string `json:"inv_price" form:"inv_price" validate:"required"`
	Miles            int    `json:"inv_miles" form:"inv_miles" validate:"gte=0"`
	Color            string `json:"inv_color" form:"inv_color" validate:"required,min=3,max=24"`
}

// UpdateVehicleRequest adds the target id to a vehicle submission.
type UpdateVehicleRequest struct {
	InvID uint `json:"inv_id" form:"inv_id" validate:"required"`
	VehicleRequest
}

// DeleteVehicleRequest carries the id of the vehicle to delete.
type DeleteVehicleRequest struct {
	InvID uint `json:"inv_id" form:"inv_id" validate:"required"`
}

func (r *VehicleRequest) toInput() (service.VehicleInput, error) {
	price, err := decimal.NewFromString(r.Price)
	if err != nil || price.IsNegative() {
		return service.VehicleInput{}, echo.NewHTTPError(http.StatusBadRequest, "invalid price")
	}
	return service.VehicleInput{
		ClassificationID: r.ClassificationID,
		Make:             r.Make,
		Model:            r.Model,
		Year:             r.Year,
		Description:      r.Description,
		Image:            r.Image,
		Thumbnail:        r.Thumbnail,
		Price:            price,
		Miles:            r.Miles,
		Color:            r.Color,
	}, nil
}

// Classification godoc
// @Summary Approved vehicles of one classification
// @Tags inventory
// @Produce json
// @Param classificationId path int true "Classification ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /inv/type/{classificationId} [get]
func (h *InventoryHandler) Classification(c echo.Context) error {
	id, err := paramUint(c, "classificationId")
	if err != nil {
		return err
	}

	classification, vehicles, err := h.inventoryService.ClassificationPage(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":          classification.Name + " vehicles",
		"nav":            nav,
		"classification": classification,
		"vehicles":       vehicles,
	})
}

// Detail godoc
// @Summary Public vehicle detail
// @Tags inventory
// @Produce json
// @Param invId path int true "Vehicle ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errors.ErrorResponse
// @Router /inv/detail/{invId} [get]
func (h *InventoryHandler) Detail(c echo.Context) error {
	id, err := paramUint(c, "invId")
	if err != nil {
		return err
	}

	vehicle, classification, err := h.inventoryService.VehicleDetail(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"title":               fmt.Sprintf("%d %s %s", vehicle.Year, vehicle.Make, vehicle.Model),
		"nav":                 nav,
		"vehicle":             vehicle,
		"classification_name": classification.Name,
	})
}

// Management godoc
// @Summary Inventory management page data
// @Tags inventory
// @Produce json
// @Success 200 {object} map[string]interface{}
// @Router /inv/ [get]
func (h *InventoryHandler) Management(c echo.Context) error {
	classifications, err := h.inventoryService.AllClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":           "Vehicle Management",
		"nav":             nav,
		"classifications": classifications,
	})
}

// AddClassificationView serves the add-classification form data.
func (h *InventoryHandler) AddClassificationView(c echo.Context) error {
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title": "Add New Classification",
		"nav":   nav,
	})
}

// AddClassification godoc
// @Summary Submit a new classification (starts unapproved)
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body ClassificationRequest true "Classification data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Router /inv/add-classification [post]
func (h *InventoryHandler) AddClassification(c echo.Context) error {
	var req ClassificationRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	classification, err := h.inventoryService.AddClassification(c.Request().Context(), req.Name)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message":        "classification submitted and awaiting approval",
		"classification": classification,
	})
}

// AddVehicleView serves the add-vehicle form data, including the
// classification options for the dropdown.
func (h *InventoryHandler) AddVehicleView(c echo.Context) error {
	classifications, err := h.inventoryService.AllClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	nav, err := h.inventoryService.PublicClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":           "Add New Vehicle",
		"nav":             nav,
		"classifications": classifications,
	})
}

// AddVehicle godoc
// @Summary Submit a new vehicle (starts unapproved)
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body VehicleRequest true "Vehicle data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /inv/add-vehicle [post]
func (h *InventoryHandler) AddVehicle(c echo.Context) error {
	var req VehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	vehicle, err := h.inventoryService.AddVehicle(c.Request().Context(), input)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusCreated, echo.Map{
		"message": "vehicle submitted and awaiting approval",
		"vehicle": vehicle,
	})
}

// EditView serves the edit form data for one vehicle.
func (h *InventoryHandler) EditView(c echo.Context) error {
	id, err := paramUint(c, "inv_id")
	if err != nil {
		return err
	}
	vehicle, err := h.inventoryService.StaffVehicle(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	classifications, err := h.inventoryService.AllClassifications(c.Request().Context())
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":           fmt.Sprintf("Edit %s %s", vehicle.Make, vehicle.Model),
		"vehicle":         vehicle,
		"classifications": classifications,
	})
}

// Update godoc
// @Summary Update an existing vehicle
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body UpdateVehicleRequest true "Vehicle data"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /inv/update [post]
func (h *InventoryHandler) Update(c echo.Context) error {
	var req UpdateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	input, err := req.toInput()
	if err != nil {
		return err
	}

	vehicle, err := h.inventoryService.UpdateVehicle(c.Request().Context(), req.InvID, input)
	if err != nil {
		return domainError(err)
	}

	return c.JSON(http.StatusOK, echo.Map{
		"message": "vehicle updated successfully",
		"vehicle": vehicle,
	})
}

// DeleteView serves the delete-confirmation data for one vehicle.
func (h *InventoryHandler) DeleteView(c echo.Context) error {
	id, err := paramUint(c, "inv_id")
	if err != nil {
		return err
	}
	vehicle, err := h.inventoryService.StaffVehicle(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"title":   fmt.Sprintf("Delete %s %s", vehicle.Make, vehicle.Model),
		"vehicle": vehicle,
	})
}

// Delete godoc
// @Summary Delete a vehicle
// @Tags inventory
// @Accept json
// @Produce json
// @Param request body DeleteVehicleRequest true "Vehicle id"
// @Success 200 {object} map[string]string
// @Failure 404 {object} errors.ErrorResponse
// @Router /inv/delete [post]
func (h *InventoryHandler) Delete(c echo.Context) error {
	var req DeleteVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid request body")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.inventoryService.DeleteVehicle(c.Request().Context(), req.InvID); err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{
		"message": "vehicle deleted successfully",
	})
}

// GetInventoryJSON godoc
// @Summary Approved vehicles of a classification as a bare JSON array
// @Tags inventory
// @Produce json
// @Param classification_id path int true "Classification ID"
// @Success 200 {array} model.VehicleWithClassification
// @Router /inv/getInventory/{classification_id} [get]
func (h *InventoryHandler) GetInventoryJSON(c echo.Context) error {
	id, err := paramUint(c, "classification_id")
	if err != nil {
		return err
	}

	// Unknown classifications come back as an empty array, never an error.
	vehicles, err := h.inventoryService.VehiclesByClassification(c.Request().Context(), id)
	if err != nil {
		return domainError(err)
	}
	return c.JSON(http.StatusOK, vehicles)
}
