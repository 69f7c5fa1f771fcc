package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"carlot/internal/errors"
	"carlot/internal/model"
	"carlot/internal/repository"
)

// AccountService handles profile and password maintenance.
type AccountService interface {
	Get(ctx context.Context, id uint) (*model.Account, error)
	UpdateProfile(ctx context.Context, id uint, firstname, lastname, email string) (*model.Account, error)
	UpdatePassword(ctx context.Context, id uint, password string) error
}

type accountService struct {
	repo repository.AccountRepository
}

// NewAccountService creates a new account service.
func NewAccountService(repo repository.AccountRepository) AccountService {
	return &accountService{repo: repo}
}

func (s *accountService) Get(ctx context.Context, id uint) (*model.Account, error) {
	account, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find account: %w", err)
	}
	return account, nil
}

// UpdateProfile changes name and email. The account may keep its current
// email; any other account holding the address blocks the update.
func (s *accountService) UpdateProfile(ctx context.Context, id uint, firstname, lastname, email string) (*model.Account, error) {
	taken, err := s.repo.EmailInUseByOther(ctx, email, id)
	if err != nil {
		return nil, fmt.Errorf("check email in use: %w", err)
	}
	if taken {
		return nil, errors.ErrEmailExists
	}

	account, err := s.repo.UpdateProfile(ctx, id, firstname, lastname, email)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrAccountNotFound
		}
		return nil, fmt.Errorf("update profile: %w", err)
	}
	return account, nil
}

func (s *accountService) UpdatePassword(ctx context.Context, id uint, password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.repo.UpdatePassword(ctx, id, string(hashedPassword)); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}
