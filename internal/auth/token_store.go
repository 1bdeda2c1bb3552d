package auth

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

const denylistPrefix = "auth:denylist:"

// TokenStore tracks revoked token ids in Redis. Tokens are stateless JWTs;
// logout works by denylisting the token id until its natural expiry.
type TokenStore struct {
	client *redis.Client
}

// NewTokenStore wraps a redis client.
func NewTokenStore(client *redis.Client) *TokenStore {
	return &TokenStore{client: client}
}

// Revoke marks a token id as unusable for the remaining lifetime.
func (s *TokenStore) Revoke(ctx context.Context, tokenID string, until time.Time) error {
	if s == nil || s.client == nil {
		return nil
	}
	ttl := time.Until(until)
	if ttl <= 0 {
		return nil
	}
	return s.client.Set(ctx, denylistPrefix+tokenID, "1", ttl).Err()
}

// IsRevoked reports whether the token id has been denylisted. Redis being
// unreachable fails open so a cache outage does not lock everyone out.
func (s *TokenStore) IsRevoked(ctx context.Context, tokenID string) bool {
	if s == nil || s.client == nil {
		return false
	}
	res, err := s.client.Exists(ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		return false
	}
	return res > 0
}
