package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"carlot/internal/model"
)

func TestJWTService_GenerateAndValidate(t *testing.T) {
	service := NewJWTService("test-secret")

	account := &model.Account{
		ID:           42,
		Firstname:    "Happy",
		Lastname:     "Employee",
		Email:        "happy@example.com",
		PasswordHash: "$2a$10$abcdefghijklmnopqrstuv",
		Type:         model.TypeEmployee,
	}

	token, err := service.GenerateToken(account)
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := service.ValidateToken(token)
	assert.NoError(t, err)
	assert.Equal(t, uint(42), claims.AccountID)
	assert.Equal(t, "Happy", claims.Firstname)
	assert.Equal(t, "Employee", claims.Lastname)
	assert.Equal(t, "happy@example.com", claims.Email)
	assert.Equal(t, string(model.TypeEmployee), claims.Type)
	assert.NotEmpty(t, claims.ID, "token should carry a JTI for revocation")

	expires := claims.ExpiresAt.Time
	assert.WithinDuration(t, time.Now().Add(TokenExpiry), expires, time.Minute)
}

func TestJWTService_ValidateToken_Tampered(t *testing.T) {
	service := NewJWTService("test-secret")

	token, err := service.GenerateToken(&model.Account{ID: 1, Email: "a@example.com", Type: model.TypeClient})
	assert.NoError(t, err)

	_, err = service.ValidateToken(token + "x")
	assert.Error(t, err)
}

func TestJWTService_ValidateToken_WrongSecret(t *testing.T) {
	issuer := NewJWTService("secret-one")
	verifier := NewJWTService("secret-two")

	token, err := issuer.GenerateToken(&model.Account{ID: 1, Email: "a@example.com", Type: model.TypeClient})
	assert.NoError(t, err)

	_, err = verifier.ValidateToken(token)
	assert.Error(t, err)
}
