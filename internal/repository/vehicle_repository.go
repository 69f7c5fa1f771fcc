package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carlot/internal/model"
)

// VehicleRepository defines inventory persistence operations.
type VehicleRepository interface {
	Create(ctx context.Context, vehicle *model.Vehicle) error
	FindByID(ctx context.Context, id uint) (*model.Vehicle, error)
	ListApprovedByClassification(ctx context.Context, classificationID uint) ([]model.VehicleWithClassification, error)
	ListUnapproved(ctx context.Context) ([]model.VehicleWithClassification, error)
	Update(ctx context.Context, vehicle *model.Vehicle) (bool, error)
	Delete(ctx context.Context, id uint) (bool, error)
	Approve(ctx context.Context, id, approverID uint) (bool, error)
}

type vehicleRepository struct {
	db *gorm.DB
}

// NewVehicleRepository builds a GORM-backed vehicle repository.
func NewVehicleRepository(db *gorm.DB) VehicleRepository {
	return &vehicleRepository{db: db}
}

func (r *vehicleRepository) Create(ctx context.Context, vehicle *model.Vehicle) error {
	return r.db.WithContext(ctx).Create(vehicle).Error
}

func (r *vehicleRepository) FindByID(ctx context.Context, id uint) (*model.Vehicle, error) {
	var vehicle model.Vehicle
	if err := r.db.WithContext(ctx).First(&vehicle, id).Error; err != nil {
		return nil, err
	}
	return &vehicle, nil
}

// ListApprovedByClassification returns the approved vehicles of one
// classification with its name joined in. Unknown classifications simply
// produce an empty slice.
func (r *vehicleRepository) ListApprovedByClassification(ctx context.Context, classificationID uint) ([]model.VehicleWithClassification, error) {
	vehicles := []model.VehicleWithClassification{}
	err := r.db.WithContext(ctx).
		Table("vehicles").
		Select("vehicles.*, classifications.name AS classification_name").
		Joins("JOIN classifications ON classifications.id = vehicles.classification_id").
		Where("vehicles.classification_id = ? AND vehicles.approved = ?", classificationID, true).
		Order("vehicles.make, vehicles.model").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// ListUnapproved returns every pending vehicle for the approval dashboard.
func (r *vehicleRepository) ListUnapproved(ctx context.Context) ([]model.VehicleWithClassification, error) {
	vehicles := []model.VehicleWithClassification{}
	err := r.db.WithContext(ctx).
		Table("vehicles").
		Select("vehicles.*, classifications.name AS classification_name").
		Joins("JOIN classifications ON classifications.id = vehicles.classification_id").
		Where("vehicles.approved = ?", false).
		Order("vehicles.make, vehicles.model").
		Find(&vehicles).Error
	if err != nil {
		return nil, err
	}
	return vehicles, nil
}

// Update rewrites the editable vehicle columns. Approval state is untouched;
// only the admin approve action may change it.
func (r *vehicleRepository) Update(ctx context.Context, vehicle *model.Vehicle) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ?", vehicle.ID).
		Updates(map[string]interface{}{
			"classification_id": vehicle.ClassificationID,
			"make":              vehicle.Make,
			"model":             vehicle.Model,
			"year":              vehicle.Year,
			"description":       vehicle.Description,
			"image":             vehicle.Image,
			"thumbnail":         vehicle.Thumbnail,
			"price":             vehicle.Price,
			"miles":             vehicle.Miles,
			"color":             vehicle.Color,
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

func (r *vehicleRepository) Delete(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Delete(&model.Vehicle{}, id)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}

// Approve marks a vehicle approved and records the approver.
func (r *vehicleRepository) Approve(ctx context.Context, id, approverID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Vehicle{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"approved":    true,
			"approved_by": approverID,
			"approved_at": time.Now(),
		})
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
