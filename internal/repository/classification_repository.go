package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"carlot/internal/model"
)

// ClassificationRepository defines classification persistence operations.
type ClassificationRepository interface {
	Create(ctx context.Context, classification *model.Classification) error
	FindByID(ctx context.Context, id uint) (*model.Classification, error)
	ListAll(ctx context.Context) ([]model.Classification, error)
	ListPublic(ctx context.Context) ([]model.Classification, error)
	ListUnapproved(ctx context.Context) ([]model.Classification, error)
	Approve(ctx context.Context, id, approverID uint) (bool, error)
	DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error)
}

type classificationRepository struct {
	db *gorm.DB
}

// NewClassificationRepository builds a GORM-backed classification repository.
func NewClassificationRepository(db *gorm.DB) ClassificationRepository {
	return &classificationRepository{db: db}
}

func (r *classificationRepository) Create(ctx context.Context, classification *model.Classification) error {
	return r.db.WithContext(ctx).Create(classification).Error
}

func (r *classificationRepository) FindByID(ctx context.Context, id uint) (*model.Classification, error) {
	var classification model.Classification
	if err := r.db.WithContext(ctx).First(&classification, id).Error; err != nil {
		return nil, err
	}
	return &classification, nil
}

// ListAll returns every classification, approved or not, for staff forms.
func (r *classificationRepository) ListAll(ctx context.Context) ([]model.Classification, error) {
	var classifications []model.Classification
	if err := r.db.WithContext(ctx).Order("name").Find(&classifications).Error; err != nil {
		return nil, err
	}
	return classifications, nil
}

// ListPublic returns classifications visible on public pages: approved and
// holding at least one approved vehicle. Visibility is derived, not stored.
func (r *classificationRepository) ListPublic(ctx context.Context) ([]model.Classification, error) {
	var classifications []model.Classification
	err := r.db.WithContext(ctx).
		Where("approved = ?", true).
		Where("EXISTS (SELECT 1 FROM vehicles WHERE vehicles.classification_id = classifications.id AND vehicles.approved = ?)", true).
		Order("name").
		Find(&classifications).Error
	if err != nil {
		return nil, err
	}
	return classifications, nil
}

func (r *classificationRepository) ListUnapproved(ctx context.Context) ([]model.Classification, error) {
	var classifications []model.Classification
	if err := r.db.WithContext(ctx).
		Where("approved = ?", false).
		Order("name").
		Find(&classifications).Error; err != nil {
		return nil, err
	}
	return classifications, nil
}

// Approve marks a classification approved and records the approver.
// Re-approving an approved row is a harmless update.
func (r *classificationRepository) Approve(ctx context.Context, id, approverID uint) (bool, error) {
	res := r.db.WithContext(ctx).Model(&model.Classification{}).
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

// DeleteIfUnreferenced deletes the classification only while no vehicle
// references it. The guard runs inside the DELETE itself so two concurrent
// admin actions cannot race a check against the delete.
func (r *classificationRepository) DeleteIfUnreferenced(ctx context.Context, id uint) (bool, error) {
	res := r.db.WithContext(ctx).Exec(
		"DELETE FROM classifications WHERE id = ? AND NOT EXISTS (SELECT 1 FROM vehicles WHERE vehicles.classification_id = ?)",
		id, id,
	)
	if res.Error != nil {
		return false, res.Error
	}
	return res.RowsAffected > 0, nil
}
