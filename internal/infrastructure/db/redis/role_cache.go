package redis

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/littlelemon/restaurant-api/internal/api/metrics"
	"github.com/littlelemon/restaurant-api/internal/core/domain"
)

const defaultRoleTTL = 5 * time.Minute

// RoleCache stores the resolved role of each user.
// Key format: role:<user_id>
type RoleCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoleCache creates a RoleCache wrapping the given Redis client. Entries
// expire after ttl so membership edits made outside the API are picked up.
func NewRoleCache(client *redis.Client, ttl time.Duration) *RoleCache {
	if ttl <= 0 {
		ttl = defaultRoleTTL
	}
	return &RoleCache{client: client, ttl: ttl}
}

// Get returns the cached role and whether it was present.
func (c *RoleCache) Get(ctx context.Context, userID uint) (domain.Role, bool, error) {
	v, err := c.client.Get(ctx, c.key(userID)).Int()
	if errors.Is(err, redis.Nil) {
		metrics.RoleCacheTotal.WithLabelValues("miss").Inc()
		return domain.RoleCustomer, false, nil
	}
	if err != nil {
		metrics.RoleCacheTotal.WithLabelValues("error").Inc()
		return domain.RoleCustomer, false, fmt.Errorf("role cache get: %w", err)
	}
	metrics.RoleCacheTotal.WithLabelValues("hit").Inc()
	return domain.Role(v), true, nil
}

func (c *RoleCache) Set(ctx context.Context, userID uint, role domain.Role) error {
	return c.client.Set(ctx, c.key(userID), int(role), c.ttl).Err()
}

func (c *RoleCache) Invalidate(ctx context.Context, userID uint) error {
	return c.client.Del(ctx, c.key(userID)).Err()
}

func (c *RoleCache) key(userID uint) string {
	return "role:" + strconv.FormatUint(uint64(userID), 10)
}
