package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// PermissionCache is a read-through cache for flattened permission sets.
// A nil *PermissionCache is valid and behaves as a cache that never hits,
// so callers don't need to branch on whether redis is configured.
type PermissionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// New connects to redis and returns a permission cache. Returns nil (cache
// disabled) when addr is empty.
func New(addr, password string, db int, ttl time.Duration) *PermissionCache {
	if addr == "" {
		return nil
	}
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	return &PermissionCache{client: client, ttl: ttl}
}

func key(userID uint) string {
	return fmt.Sprintf("perm:user:%d", userID)
}

// Get returns the cached permission names for a user, or ok=false on miss.
func (c *PermissionCache) Get(ctx context.Context, userID uint) ([]string, bool) {
	if c == nil {
		return nil, false
	}
	raw, err := c.client.Get(ctx, key(userID)).Bytes()
	if err != nil {
		return nil, false
	}
	var permissions []string
	if err := json.Unmarshal(raw, &permissions); err != nil {
		return nil, false
	}
	return permissions, true
}

// Set stores the permission names for a user with the configured TTL.
func (c *PermissionCache) Set(ctx context.Context, userID uint, permissions []string) {
	if c == nil {
		return
	}
	raw, err := json.Marshal(permissions)
	if err != nil {
		return
	}
	c.client.Set(ctx, key(userID), raw, c.ttl)
}

// Invalidate drops the cached permissions for a user. Called when roles or
// role assignments change so stale grants don't outlive the TTL.
func (c *PermissionCache) Invalidate(ctx context.Context, userID uint) {
	if c == nil {
		return
	}
	c.client.Del(ctx, key(userID))
}
