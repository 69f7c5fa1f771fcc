package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"carlot/internal/cache"
	"carlot/internal/errors"
	"carlot/internal/model"
	"carlot/internal/repository"
)

const (
	navCacheKey = "nav:classifications"
	navCacheTTL = 5 * time.Minute
)

// VehicleInput carries the editable vehicle fields from add and update forms.
type VehicleInput struct {
	ClassificationID uint
	Make             string
	Model            string
	Year             int
	Description      string
	Image            string
	Thumbnail        string
	Price            decimal.Decimal
	Miles            int
	Color            string
}

// InventoryService covers public browsing and staff CRUD over vehicles and
// classifications.
type InventoryService interface {
	PublicClassifications(ctx context.Context) ([]model.Classification, error)
	AllClassifications(ctx context.Context) ([]model.Classification, error)
	ClassificationPage(ctx context.Context, id uint) (*model.Classification, []model.VehicleWithClassification, error)
	VehicleDetail(ctx context.Context, id uint) (*model.Vehicle, *model.Classification, error)
	StaffVehicle(ctx context.Context, id uint) (*model.Vehicle, error)
	VehiclesByClassification(ctx context.Context, classificationID uint) ([]model.VehicleWithClassification, error)
	AddClassification(ctx context.Context, name string) (*model.Classification, error)
	AddVehicle(ctx context.Context, input VehicleInput) (*model.Vehicle, error)
	UpdateVehicle(ctx context.Context, id uint, input VehicleInput) (*model.Vehicle, error)
	DeleteVehicle(ctx context.Context, id uint) error
}

type inventoryService struct {
	classRepo   repository.ClassificationRepository
	vehicleRepo repository.VehicleRepository
	cache       *cache.Client
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(classRepo repository.ClassificationRepository, vehicleRepo repository.VehicleRepository, cache *cache.Client) InventoryService {
	return &inventoryService{
		classRepo:   classRepo,
		vehicleRepo: vehicleRepo,
		cache:       cache,
	}
}

// PublicClassifications returns the navigation list: approved classifications
// holding at least one approved vehicle. The list is read on every page, so
// it is cached briefly and invalidated on any inventory mutation.
func (s *inventoryService) PublicClassifications(ctx context.Context) ([]model.Classification, error) {
	if data, _ := s.cache.Get(ctx, navCacheKey); data != nil {
		var cached []model.Classification
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	classifications, err := s.classRepo.ListPublic(ctx)
	if err != nil {
		return nil, fmt.Errorf("list public classifications: %w", err)
	}

	if payload, err := json.Marshal(classifications); err == nil {
		_ = s.cache.Set(ctx, navCacheKey, payload, navCacheTTL)
	}
	return classifications, nil
}

func (s *inventoryService) AllClassifications(ctx context.Context) ([]model.Classification, error) {
	return s.classRepo.ListAll(ctx)
}

// ClassificationPage returns one public classification and its approved
// vehicles. Unapproved classifications are invisible to the public.
func (s *inventoryService) ClassificationPage(ctx context.Context, id uint) (*model.Classification, []model.VehicleWithClassification, error) {
	classification, err := s.classRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrClassificationNotFound
		}
		return nil, nil, fmt.Errorf("find classification: %w", err)
	}
	if !classification.Approved {
		return nil, nil, errors.ErrClassificationNotFound
	}

	vehicles, err := s.vehicleRepo.ListApprovedByClassification(ctx, id)
	if err != nil {
		return nil, nil, fmt.Errorf("list vehicles: %w", err)
	}
	return classification, vehicles, nil
}

// VehicleDetail returns one vehicle for the public detail page. A vehicle is
// visible only once both it and its classification are approved.
func (s *inventoryService) VehicleDetail(ctx context.Context, id uint) (*model.Vehicle, *model.Classification, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrVehicleNotFound
		}
		return nil, nil, fmt.Errorf("find vehicle: %w", err)
	}
	if !vehicle.Approved {
		return nil, nil, errors.ErrVehicleNotFound
	}

	classification, err := s.classRepo.FindByID(ctx, vehicle.ClassificationID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, nil, errors.ErrVehicleNotFound
		}
		return nil, nil, fmt.Errorf("find classification: %w", err)
	}
	if !classification.Approved {
		return nil, nil, errors.ErrVehicleNotFound
	}
	return vehicle, classification, nil
}

// StaffVehicle returns a vehicle regardless of approval state, for the edit
// and delete-confirmation views.
func (s *inventoryService) StaffVehicle(ctx context.Context, id uint) (*model.Vehicle, error) {
	vehicle, err := s.vehicleRepo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}
	return vehicle, nil
}

// VehiclesByClassification backs the JSON endpoint. An unknown classification
// yields an empty slice, never an error.
func (s *inventoryService) VehiclesByClassification(ctx context.Context, classificationID uint) ([]model.VehicleWithClassification, error) {
	vehicles, err := s.vehicleRepo.ListApprovedByClassification(ctx, classificationID)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	return vehicles, nil
}

// AddClassification submits a new classification. It starts unapproved and
// stays off public pages until an admin approves it.
func (s *inventoryService) AddClassification(ctx context.Context, name string) (*model.Classification, error) {
	classification := &model.Classification{
		Name:     name,
		Approved: false,
	}
	if err := s.classRepo.Create(ctx, classification); err != nil {
		return nil, fmt.Errorf("create classification: %w", err)
	}
	_ = s.cache.Delete(ctx, navCacheKey)
	return classification, nil
}

// AddVehicle submits a new vehicle. Like classifications, it starts
// unapproved.
func (s *inventoryService) AddVehicle(ctx context.Context, input VehicleInput) (*model.Vehicle, error) {
	if _, err := s.classRepo.FindByID(ctx, input.ClassificationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClassificationNotFound
		}
		return nil, fmt.Errorf("find classification: %w", err)
	}

	vehicle := &model.Vehicle{
		ClassificationID: input.ClassificationID,
		Make:             input.Make,
		Model:            input.Model,
		Year:             input.Year,
		Description:      input.Description,
		Image:            input.Image,
		Thumbnail:        input.Thumbnail,
		Price:            input.Price,
		Miles:            input.Miles,
		Color:            input.Color,
		Approved:         false,
	}
	if err := s.vehicleRepo.Create(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	_ = s.cache.Delete(ctx, navCacheKey)
	return vehicle, nil
}

// UpdateVehicle rewrites the editable fields of an existing vehicle. Approval
// state is untouched.
func (s *inventoryService) UpdateVehicle(ctx context.Context, id uint, input VehicleInput) (*model.Vehicle, error) {
	if _, err := s.StaffVehicle(ctx, id); err != nil {
		return nil, err
	}
	if _, err := s.classRepo.FindByID(ctx, input.ClassificationID); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrClassificationNotFound
		}
		return nil, fmt.Errorf("find classification: %w", err)
	}

	vehicle := &model.Vehicle{
		ID:               id,
		ClassificationID: input.ClassificationID,
		Make:             input.Make,
		Model:            input.Model,
		Year:             input.Year,
		Description:      input.Description,
		Image:            input.Image,
		Thumbnail:        input.Thumbnail,
		Price:            input.Price,
		Miles:            input.Miles,
		Color:            input.Color,
	}
	if _, err := s.vehicleRepo.Update(ctx, vehicle); err != nil {
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	_ = s.cache.Delete(ctx, navCacheKey)
	return s.StaffVehicle(ctx, id)
}

func (s *inventoryService) DeleteVehicle(ctx context.Context, id uint) error {
	deleted, err := s.vehicleRepo.Delete(ctx, id)
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if !deleted {
		return errors.ErrVehicleNotFound
	}
	_ = s.cache.Delete(ctx, navCacheKey)
	return nil
}
