package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/toolkeep/toolkeep/internal/auth"
)

const (
	// identityCachePrefix is the Redis key prefix for resolved caller identities.
	identityCachePrefix = "identity:"
	// identityCacheTTL is the time-to-live for cached identities.
	// Short enough that deactivated accounts drop out quickly.
	identityCacheTTL = 5 * time.Minute
)

// cachedIdentity represents a resolved identity stored in Redis.
type cachedIdentity struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

// GetIdentity retrieves a cached identity by token cache key.
// Returns nil on cache miss.
func (c *Cache) GetIdentity(ctx context.Context, cacheKey string) (*auth.Identity, error) {
	key := identityCachePrefix + cacheKey

	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		// Cache miss is not an error
		return nil, nil //nolint:nilerr
	}

	var cached cachedIdentity
	if err := json.Unmarshal(data, &cached); err != nil {
		// Corrupted cache entry - treat as miss
		return nil, nil //nolint:nilerr
	}

	return &auth.Identity{
		UserID: cached.UserID,
		Email:  cached.Email,
	}, nil
}

// SetIdentity caches a resolved identity.
func (c *Cache) SetIdentity(ctx context.Context, cacheKey string, id *auth.Identity) error {
	key := identityCachePrefix + cacheKey

	data, err := json.Marshal(cachedIdentity{
		UserID: id.UserID,
		Email:  id.Email,
	})
	if err != nil {
		return fmt.Errorf("marshal identity: %w", err)
	}

	return c.client.Set(ctx, key, data, identityCacheTTL).Err()
}

// DeleteIdentity removes a cached identity.
func (c *Cache) DeleteIdentity(ctx context.Context, cacheKey string) error {
	key := identityCachePrefix + cacheKey
	return c.client.Del(ctx, key).Err()
}
