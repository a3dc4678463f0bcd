// Package cache holds the Redis-backed stores: the institute name cache,
// account sessions and failed sign-in counters.
package cache

import (
	"context"
	"errors"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stemsi/placement-backend/internal/config"
)

// InstituteCache caches the immutable name → instituteId mapping.
type InstituteCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewInstituteCache creates a new InstituteCache.
func NewInstituteCache(rdb *redis.Client, ttl time.Duration) *InstituteCache {
	return &InstituteCache{rdb: rdb, ttl: ttl}
}

// Get returns the cached id and whether it was present.
func (c *InstituteCache) Get(ctx context.Context, name string) (int, bool, error) {
	v, err := c.rdb.Get(ctx, config.CacheKey.InstituteByNameKey(name)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, false, nil
		}
		return 0, false, err
	}
	id, err := strconv.Atoi(v)
	if err != nil {
		return 0, false, nil
	}
	return id, true, nil
}

// Set stores the mapping.
func (c *InstituteCache) Set(ctx context.Context, name string, instituteID int) error {
	return c.rdb.Set(ctx, config.CacheKey.InstituteByNameKey(name), instituteID, c.ttl).Err()
}
