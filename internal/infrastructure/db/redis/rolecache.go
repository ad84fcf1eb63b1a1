package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const roleTTL = time.Minute

// RoleCache is a short-lived cache of per-user role strings, consulted by the
// admin check before hitting the user store. Any cache failure is a miss;
// the store remains the source of truth.
// Key format: roles:<user_id>
type RoleCache struct {
	client *redis.Client
	logger zerolog.Logger
}

// NewRoleCache creates a RoleCache wrapping the given Redis client.
func NewRoleCache(client *redis.Client, logger zerolog.Logger) *RoleCache {
	return &RoleCache{client: client, logger: logger}
}

func (c *RoleCache) GetRoles(ctx context.Context, userID uint) (string, bool) {
	val, err := c.client.Get(ctx, c.key(userID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.Warn().Err(err).Uint("user_id", userID).Msg("role cache read failed")
		}
		return "", false
	}
	return val, true
}

func (c *RoleCache) SetRoles(ctx context.Context, userID uint, roles string) {
	if err := c.client.Set(ctx, c.key(userID), roles, roleTTL).Err(); err != nil {
		c.logger.Warn().Err(err).Uint("user_id", userID).Msg("role cache write failed")
	}
}

func (c *RoleCache) key(userID uint) string {
	return fmt.Sprintf("roles:%d", userID)
}
