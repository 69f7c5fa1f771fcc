package service

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"carlot/internal/cache"
	"carlot/internal/errors"
	"carlot/internal/model"
	"carlot/internal/repository"
)

// Item types accepted by the approval actions.
const (
	ItemTypeClassification = "classification"
	ItemTypeVehicle        = "vehicle"
)

// PendingItems is the approval dashboard payload.
type PendingItems struct {
	Classifications []model.Classification            `json:"classifications"`
	Vehicles        []model.VehicleWithClassification `json:"vehicles"`
}

// ApprovalService drives the unapproved -> approved / deleted workflow.
// Approve and reject are admin actions; the route guards enforce that.
type ApprovalService interface {
	Pending(ctx context.Context) (*PendingItems, error)
	Approve(ctx context.Context, itemType string, id, approverID uint) error
	Reject(ctx context.Context, itemType string, id uint) error
}

type approvalService struct {
	classRepo   repository.ClassificationRepository
	vehicleRepo repository.VehicleRepository
	cache       *cache.Client
}

// NewApprovalService creates a new approval service.
func NewApprovalService(classRepo repository.ClassificationRepository, vehicleRepo repository.VehicleRepository, cache *cache.Client) ApprovalService {
	return &approvalService{
		classRepo:   classRepo,
		vehicleRepo: vehicleRepo,
		cache:       cache,
	}
}

// Pending lists every unapproved classification and vehicle.
func (s *approvalService) Pending(ctx context.Context) (*PendingItems, error) {
	classifications, err := s.classRepo.ListUnapproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unapproved classifications: %w", err)
	}
	vehicles, err := s.vehicleRepo.ListUnapproved(ctx)
	if err != nil {
		return nil, fmt.Errorf("list unapproved vehicles: %w", err)
	}
	return &PendingItems{
		Classifications: classifications,
		Vehicles:        vehicles,
	}, nil
}

// Approve transitions an item to approved, recording who approved it and
// when. Approving an already-approved item is a harmless no-op update.
func (s *approvalService) Approve(ctx context.Context, itemType string, id, approverID uint) error {
	var (
		found bool
		err   error
	)
	switch itemType {
	case ItemTypeClassification:
		found, err = s.classRepo.Approve(ctx, id, approverID)
		if err == nil && !found {
			return errors.ErrClassificationNotFound
		}
	case ItemTypeVehicle:
		found, err = s.vehicleRepo.Approve(ctx, id, approverID)
		if err == nil && !found {
			return errors.ErrVehicleNotFound
		}
	default:
		return errors.ErrUnknownItemType
	}
	if err != nil {
		return fmt.Errorf("approve %s: %w", itemType, err)
	}

	_ = s.cache.Delete(ctx, navCacheKey)
	return nil
}

// Reject hard-deletes an unapproved item. A classification is only deleted
// while no vehicle references it; the repository enforces that inside a
// single conditional DELETE, so here a refused delete just needs telling
// apart from a missing row.
func (s *approvalService) Reject(ctx context.Context, itemType string, id uint) error {
	switch itemType {
	case ItemTypeClassification:
		deleted, err := s.classRepo.DeleteIfUnreferenced(ctx, id)
		if err != nil {
			return fmt.Errorf("reject classification: %w", err)
		}
		if !deleted {
			if _, err := s.classRepo.FindByID(ctx, id); err != nil {
				if err == gorm.ErrRecordNotFound {
					return errors.ErrClassificationNotFound
				}
				return fmt.Errorf("find classification: %w", err)
			}
			return errors.ErrClassificationInUse
		}
	case ItemTypeVehicle:
		deleted, err := s.vehicleRepo.Delete(ctx, id)
		if err != nil {
			return fmt.Errorf("reject vehicle: %w", err)
		}
		if !deleted {
			return errors.ErrVehicleNotFound
		}
	default:
		return errors.ErrUnknownItemType
	}

	_ = s.cache.Delete(ctx, navCacheKey)
	return nil
}
