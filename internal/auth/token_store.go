package auth

import (
	"context"
	"time"

	"carlot/internal/cache"
)

const blacklistKeyPrefix = "blacklist:jwt:"

// TokenStoreInterface defines the token revocation operations.
type TokenStoreInterface interface {
	Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error
	IsBlacklisted(ctx context.Context, tokenID string) (bool, error)
}

// TokenStore records revoked token IDs in Redis so logout takes effect
// before the cookie's natural expiry.
type TokenStore struct {
	cache *cache.Client
}

// Ensure TokenStore implements TokenStoreInterface
var _ TokenStoreInterface = (*TokenStore)(nil)

// NewTokenStore creates a new token store.
func NewTokenStore(cache *cache.Client) *TokenStore {
	return &TokenStore{cache: cache}
}

// Blacklist marks a token ID revoked until its expiry.
func (s *TokenStore) Blacklist(ctx context.Context, tokenID string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil // already expired
	}
	key := blacklistKeyPrefix + tokenID
	return s.cache.Set(ctx, key, []byte("1"), ttl)
}

// IsBlacklisted checks whether a token ID has been revoked.
func (s *TokenStore) IsBlacklisted(ctx context.Context, tokenID string) (bool, error) {
	key := blacklistKeyPrefix + tokenID
	data, err := s.cache.Get(ctx, key)
	if err != nil {
		return false, nil // fail open: treat redis trouble as not revoked
	}
	return data != nil, nil
}
