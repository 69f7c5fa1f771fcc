package service

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"carlot/internal/auth"
	"carlot/internal/errors"
	"carlot/internal/model"
	"carlot/internal/repository"
)

const bcryptCost = 10

// AuthService handles registration, login, and logout.
type AuthService interface {
	Register(ctx context.Context, firstname, lastname, email, password string) (*model.Account, error)
	Login(ctx context.Context, email, password string) (token string, account *model.Account, err error)
	Logout(ctx context.Context, tokenID string, expires time.Time) error
}

type authService struct {
	accountRepo repository.AccountRepository
	jwtService  *auth.JWTService
	tokenStore  auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(accountRepo repository.AccountRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
		tokenStore:  tokenStore,
	}
}

// Register creates a new Client account with a hashed password. Registration
// never assigns Employee or Admin; those are promoted out of band.
func (s *authService) Register(ctx context.Context, firstname, lastname, email, password string) (*model.Account, error) {
	exists, err := s.accountRepo.EmailExists(ctx, email)
	if err != nil {
		return nil, fmt.Errorf("check existing email: %w", err)
	}
	if exists {
		return nil, errors.ErrEmailExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	account := &model.Account{
		Firstname:    firstname,
		Lastname:     lastname,
		Email:        email,
		PasswordHash: string(hashedPassword),
		Type:         model.TypeClient,
	}

	if err := s.accountRepo.Create(ctx, account); err != nil {
		return nil, fmt.Errorf("create account: %w", err)
	}

	return account, nil
}

// Login authenticates by email and password and returns the signed cookie
// token. Unknown email and wrong password fail identically so the response
// does not reveal which accounts exist.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.Account, error) {
	account, err := s.accountRepo.FindByEmail(ctx, email)
	if err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	token, err := s.jwtService.GenerateToken(account)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, account, nil
}

// Logout revokes the presented token until its natural expiry. An anonymous
// logout (no token) is a no-op.
func (s *authService) Logout(ctx context.Context, tokenID string, expires time.Time) error {
	if tokenID == "" {
		return nil
	}
	return s.tokenStore.Blacklist(ctx, tokenID, time.Until(expires))
}
