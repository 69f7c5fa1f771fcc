package service

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	apperrors "carlot/internal/errors"
	"carlot/internal/model"
)

func TestInventoryService_AddClassification_StartsUnapproved(t *testing.T) {
	classRepo := new(MockClassificationRepository)
	classRepo.On("Create", mock.Anything, mock.MatchedBy(func(c *model.Classification) bool {
		return c.Name == "Convertibles" && !c.Approved
	})).Return(nil)

	service := NewInventoryService(classRepo, new(MockVehicleRepository), nil)
	classification, err := service.AddClassification(context.Background(), "Convertibles")

	assert.NoError(t, err)
	assert.False(t, classification.Approved)
	classRepo.AssertExpectations(t)
}

func TestInventoryService_AddVehicle_StartsUnapproved(t *testing.T) {
	classRepo := new(MockClassificationRepository)
	vehicleRepo := new(MockVehicleRepository)

	classRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Classification{ID: 2, Name: "Sport"}, nil)
	vehicleRepo.On("Create", mock.Anything, mock.MatchedBy(func(v *model.Vehicle) bool {
		return v.Make == "Mazda" && !v.Approved
	})).Return(nil)

	service := NewInventoryService(classRepo, vehicleRepo, nil)
	vehicle, err := service.AddVehicle(context.Background(), VehicleInput{
		ClassificationID: 2,
		Make:             "Mazda",
		Model:            "MX-5",
		Year:             2022,
		Description:      "Small, light, fun.",
		Price:            decimal.NewFromInt(28000),
		Miles:            12000,
		Color:            "Red",
	})

	assert.NoError(t, err)
	assert.False(t, vehicle.Approved)
	classRepo.AssertExpectations(t)
	vehicleRepo.AssertExpectations(t)
}

func TestInventoryService_AddVehicle_UnknownClassification(t *testing.T) {
	classRepo := new(MockClassificationRepository)
	classRepo.On("FindByID", mock.Anything, uint(99)).Return(nil, gorm.ErrRecordNotFound)

	service := NewInventoryService(classRepo, new(MockVehicleRepository), nil)
	_, err := service.AddVehicle(context.Background(), VehicleInput{ClassificationID: 99, Make: "Mazda", Model: "MX-5"})

	assert.Equal(t, apperrors.ErrClassificationNotFound, err)
}

func TestInventoryService_VehiclesByClassification_UnknownIsEmpty(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	vehicleRepo.On("ListApprovedByClassification", mock.Anything, uint(999)).
		Return([]model.VehicleWithClassification{}, nil)

	service := NewInventoryService(new(MockClassificationRepository), vehicleRepo, nil)
	vehicles, err := service.VehiclesByClassification(context.Background(), 999)

	assert.NoError(t, err)
	assert.NotNil(t, vehicles)
	assert.Empty(t, vehicles)
}

func TestInventoryService_ClassificationPage_HidesUnapproved(t *testing.T) {
	classRepo := new(MockClassificationRepository)
	classRepo.On("FindByID", mock.Anything, uint(4)).
		Return(&model.Classification{ID: 4, Name: "Convertibles", Approved: false}, nil)

	service := NewInventoryService(classRepo, new(MockVehicleRepository), nil)
	_, _, err := service.ClassificationPage(context.Background(), 4)

	assert.Equal(t, apperrors.ErrClassificationNotFound, err)
}

func TestInventoryService_VehicleDetail_Visibility(t *testing.T) {
	tests := []struct {
		name                   string
		vehicleApproved        bool
		classificationApproved bool
		expectedError          error
	}{
		{"both approved", true, true, nil},
		{"vehicle unapproved", false, true, apperrors.ErrVehicleNotFound},
		{"classification unapproved", true, false, apperrors.ErrVehicleNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			classRepo := new(MockClassificationRepository)
			vehicleRepo := new(MockVehicleRepository)

			vehicleRepo.On("FindByID", mock.Anything, uint(1)).Return(&model.Vehicle{
				ID:               1,
				ClassificationID: 2,
				Make:             "Jeep",
				Model:            "Wrangler",
				Approved:         tt.vehicleApproved,
			}, nil)
			if tt.vehicleApproved {
				classRepo.On("FindByID", mock.Anything, uint(2)).Return(&model.Classification{
					ID:       2,
					Name:     "SUV",
					Approved: tt.classificationApproved,
				}, nil)
			}

			service := NewInventoryService(classRepo, vehicleRepo, nil)
			vehicle, classification, err := service.VehicleDetail(context.Background(), 1)

			if tt.expectedError != nil {
				assert.Equal(t, tt.expectedError, err)
				assert.Nil(t, vehicle)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, "Jeep", vehicle.Make)
				assert.Equal(t, "SUV", classification.Name)
			}
		})
	}
}

func TestInventoryService_PublicClassifications(t *testing.T) {
	classRepo := new(MockClassificationRepository)
	classRepo.On("ListPublic", mock.Anything).Return([]model.Classification{
		{ID: 1, Name: "Sedan", Approved: true},
		{ID: 2, Name: "Sport", Approved: true},
	}, nil)

	service := NewInventoryService(classRepo, new(MockVehicleRepository), nil)
	nav, err := service.PublicClassifications(context.Background())

	assert.NoError(t, err)
	assert.Len(t, nav, 2)
	assert.Equal(t, "Sedan", nav[0].Name)
}

func TestInventoryService_DeleteVehicle_Missing(t *testing.T) {
	vehicleRepo := new(MockVehicleRepository)
	vehicleRepo.On("Delete", mock.Anything, uint(12)).Return(false, nil)

	service := NewInventoryService(new(MockClassificationRepository), vehicleRepo, nil)
	err := service.DeleteVehicle(context.Background(), 12)

	assert.Equal(t, apperrors.ErrVehicleNotFound, err)
}
