package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	apperrors "carlot/internal/errors"
	"carlot/internal/model"
	"carlot/internal/service"
)

// MockInventoryService is a mock implementation of service.InventoryService.
type MockInventoryService struct {
	mock.Mock
}

func (m *MockInventoryService) PublicClassifications(ctx context.Context) ([]model.Classification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Classification), args.Error(1)
}

func (m *MockInventoryService) AllClassifications(ctx context.Context) ([]model.Classification, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Classification), args.Error(1)
}

func (m *MockInventoryService) ClassificationPage(ctx context.Context, id uint) (*model.Classification, []model.VehicleWithClassification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Classification), args.Get(1).([]model.VehicleWithClassification), args.Error(2)
}

func (m *MockInventoryService) VehicleDetail(ctx context.Context, id uint) (*model.Vehicle, *model.Classification, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*model.Vehicle), args.Get(1).(*model.Classification), args.Error(2)
}

func (m *MockInventoryService) StaffVehicle(ctx context.Context, id uint) (*model.Vehicle, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockInventoryService) VehiclesByClassification(ctx context.Context, classificationID uint) ([]model.VehicleWithClassification, error) {
	args := m.Called(ctx, classificationID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.VehicleWithClassification), args.Error(1)
}

func (m *MockInventoryService) AddClassification(ctx context.Context, name string) (*model.Classification, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Classification), args.Error(1)
}

func (m *MockInventoryService) AddVehicle(ctx context.Context, input service.VehicleInput) (*model.Vehicle, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockInventoryService) UpdateVehicle(ctx context.Context, id uint, input service.VehicleInput) (*model.Vehicle, error) {
	args := m.Called(ctx, id, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Vehicle), args.Error(1)
}

func (m *MockInventoryService) DeleteVehicle(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type testValidator struct {
	validator *validator.Validate
}

func (v *testValidator) Validate(i interface{}) error {
	if err := v.validator.Struct(i); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	return nil
}

func newInventoryEcho(svc service.InventoryService) *echo.Echo {
	e := echo.New()
	e.Validator = &testValidator{validator: validator.New()}
	h := NewInventoryHandler(svc)
	e.GET("/inv/type/:classificationId", h.Classification)
	e.GET("/inv/detail/:invId", h.Detail)
	e.GET("/inv/getInventory/:classification_id", h.GetInventoryJSON)
	e.POST("/inv/add-classification", h.AddClassification)
	e.POST("/inv/add-vehicle", h.AddVehicle)
	return e
}

func TestInventoryHandler_GetInventoryJSON_UnknownIsEmptyArray(t *testing.T) {
	svc := new(MockInventoryService)
	svc.On("VehiclesByClassification", mock.Anything, uint(999)).
		Return([]model.VehicleWithClassification{}, nil)

	e := newInventoryEcho(svc)
	req := httptest.NewRequest(http.MethodGet, "/inv/getInventory/999", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "[]", strings.TrimSpace(rec.Body.String()))
}

func TestInventoryHandler_Classification_NotFound(t *testing.T) {
	svc := new(MockInventoryService)
	svc.On("ClassificationPage", mock.Anything, uint(42)).
		Return(nil, nil, apperrors.ErrClassificationNotFound)

	e := newInventoryEcho(svc)
	req := httptest.NewRequest(http.MethodGet, "/inv/type/42", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInventoryHandler_Detail(t *testing.T) {
	svc := new(MockInventoryService)
	svc.On("VehicleDetail", mock.Anything, uint(7)).Return(
		&model.Vehicle{ID: 7, Make: "Jeep", Model: "Wrangler", Year: 2019, Approved: true},
		&model.Classification{ID: 2, Name: "SUV", Approved: true},
		nil,
	)
	svc.On("PublicClassifications", mock.Anything).Return([]model.Classification{{ID: 2, Name: "SUV"}}, nil)

	e := newInventoryEcho(svc)
	req := httptest.NewRequest(http.MethodGet, "/inv/detail/7", nil)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "2019 Jeep Wrangler")
	assert.Contains(t, rec.Body.String(), `"classification_name":"SUV"`)
}

func TestInventoryHandler_AddClassification(t *testing.T) {
	svc := new(MockInventoryService)
	svc.On("AddClassification", mock.Anything, "Convertibles").
		Return(&model.Classification{ID: 9, Name: "Convertibles"}, nil)

	e := newInventoryEcho(svc)
	req := httptest.NewRequest(http.MethodPost, "/inv/add-classification",
		strings.NewReader(`{"classification_name":"Convertibles"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Contains(t, rec.Body.String(), "awaiting approval")
	svc.AssertExpectations(t)
}

func TestInventoryHandler_AddVehicle_InvalidPrice(t *testing.T) {
	svc := new(MockInventoryService)

	e := newInventoryEcho(svc)
	body := `{"classification_id":2,"inv_make":"Mazda","inv_model":"MX-5","inv_year":2022,` +
		`"inv_description":"Small, light, fun.","inv_price":"-1","inv_miles":100,"inv_color":"Red"}`
	req := httptest.NewRequest(http.MethodPost, "/inv/add-vehicle", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	svc.AssertNotCalled(t, "AddVehicle", mock.Anything, mock.Anything)
}
