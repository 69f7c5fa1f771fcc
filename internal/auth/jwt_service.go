package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"carlot/internal/model"
)

// TokenExpiry is the lifetime of the jwt cookie. Expired tokens simply fall
// back to an anonymous request, so the window stays short.
const TokenExpiry = time.Hour

// CookieName is the name of the HTTP-only cookie carrying the token.
const CookieName = "jwt"

// Claims is the account snapshot carried in the jwt cookie. The password
// hash is never included.
type Claims struct {
	AccountID uint   `json:"account_id"`
	Firstname string `json:"firstname"`
	Lastname  string `json:"lastname"`
	Email     string `json:"email"`
	Type      string `json:"account_type"`
	jwt.RegisteredClaims
}

// JWTService issues and validates the signed cookie tokens.
type JWTService struct {
	secret []byte
}

// NewJWTService creates a new JWT service with the given signing secret.
func NewJWTService(secret string) *JWTService {
	return &JWTService{
		secret: []byte(secret),
	}
}

// GenerateToken signs a one-hour token carrying the account snapshot.
func (s *JWTService) GenerateToken(account *model.Account) (string, error) {
	now := time.Now()
	claims := &Claims{
		AccountID: account.ID,
		Firstname: account.Firstname,
		Lastname:  account.Lastname,
		Email:     account.Email,
		Type:      string(account.Type),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(TokenExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken validates a token string and returns the claims.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
