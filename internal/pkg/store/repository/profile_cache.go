package repository

import (
	"context"
	"encoding/json"
	"time"

	"pesanet/kopa_lending/configs"
	"pesanet/kopa_lending/internal/pkg/consts"
	"pesanet/kopa_lending/internal/pkg/models"
)

// ProfileCache holds the user profile in Redis; the TTL on the key is the
// cache-validity window, so a hit is by definition fresh.
type ProfileCache struct {
	store RedisStoreOperations
}

func NewProfileCache(store RedisStoreOperations) *ProfileCache {
	return &ProfileCache{store: store}
}

const profileKeyPrefix = "profile:"

func (c *ProfileCache) SaveProfile(ctx context.Context, user models.User) error {
	payload, err := json.Marshal(user)
	if err != nil {
		return err
	}
	ttl := time.Duration(configs.PROFILE_CACHE_TTL_MINUTES) * time.Minute
	return c.store.Set(ctx, profileKeyPrefix+user.UserID, payload, ttl)
}

func (c *ProfileCache) Profile(ctx context.Context, userID string) (*models.User, error) {
	raw, err := c.store.Get(ctx, profileKeyPrefix+userID)
	if err != nil {
		return nil, consts.ErrorProfileNotCached
	}
	bytes, ok := raw.([]byte)
	if !ok {
		return nil, consts.ErrorProfileNotCached
	}
	var user models.User
	if err := json.Unmarshal(bytes, &user); err != nil {
		return nil, consts.ErrorProfileNotCached
	}
	return &user, nil
}

func (c *ProfileCache) Invalidate(ctx context.Context, userID string) error {
	return c.store.Delete(ctx, profileKeyPrefix+userID)
}
