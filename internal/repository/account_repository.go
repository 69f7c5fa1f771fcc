package repository

import (
	"context"

	"gorm.io/gorm"

	"carlot/internal/model"
)

// AccountRepository defines account persistence operations.
type AccountRepository interface {
	Create(ctx context.Context, account *model.Account) error
	FindByID(ctx context.Context, id uint) (*model.Account, error)
	FindByEmail(ctx context.Context, email string) (*model.Account, error)
	EmailExists(ctx context.Context, email string) (bool, error)
	EmailInUseByOther(ctx context.Context, email string, accountID uint) (bool, error)
	UpdateProfile(ctx context.Context, id uint, firstname, lastname, email string) (*model.Account, error)
	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

type accountRepository struct {
	db *gorm.DB
}

// NewAccountRepository builds a GORM-backed account repository.
func NewAccountRepository(db *gorm.DB) AccountRepository {
	return &accountRepository{db: db}
}

func (r *accountRepository) Create(ctx context.Context, account *model.Account) error {
	return r.db.WithContext(ctx).Create(account).Error
}

func (r *accountRepository) FindByID(ctx context.Context, id uint) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).First(&account, id).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) FindByEmail(ctx context.Context, email string) (*model.Account, error) {
	var account model.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&account).Error; err != nil {
		return nil, err
	}
	return &account, nil
}

func (r *accountRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// EmailInUseByOther reports whether another account already holds the email,
// so profile updates can keep the current address.
func (r *accountRepository) EmailInUseByOther(ctx context.Context, email string, accountID uint) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("email = ? AND id <> ?", email, accountID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *accountRepository) UpdateProfile(ctx context.Context, id uint, firstname, lastname, email string) (*model.Account, error) {
	updates := map[string]interface{}{
		"firstname": firstname,
		"lastname":  lastname,
		"email":     email,
	}
	if err := r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	return r.db.WithContext(ctx).Model(&model.Account{}).
		Where("id = ?", id).
		Update("password_hash", passwordHash).Error
}
