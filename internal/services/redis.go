package services

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// InitRedis connects the Redis client used for lookup caching.
func InitRedis() (*redis.Client, error) {
	redisURL := os.Getenv("REDIS_URL")
	if redisURL == "" {
		redisURL = "redis://redis:6379" // Default Redis address for Docker
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse Redis URL: %v", err)
	}

	client := redis.NewClient(opt)

	ctx := context.Background()
	if _, err := client.Ping(ctx).Result(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %v", err)
	}

	return client, nil
}

// VendorCache caches vendor whitelist flags. The open-market read path
// checks the flag on every request, so a short TTL keeps the vendor table
// out of the hot path without holding a stale flag for long.
type VendorCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewVendorCache(client *redis.Client) *VendorCache {
	return &VendorCache{client: client, ttl: 5 * time.Minute}
}

// GetWhitelisted returns the cached flag and whether a cached value existed.
func (c *VendorCache) GetWhitelisted(ctx context.Context, vendorID uint) (bool, bool, error) {
	result, err := c.client.Get(ctx, vendorWhitelistKey(vendorID)).Result()
	if err != nil {
		if err == redis.Nil {
			return false, false, nil
		}
		return false, false, err
	}
	return result == "true", true, nil
}

func (c *VendorCache) SetWhitelisted(ctx context.Context, vendorID uint, whitelisted bool) error {
	value := "false"
	if whitelisted {
		value = "true"
	}
	return c.client.Set(ctx, vendorWhitelistKey(vendorID), value, c.ttl).Err()
}

func vendorWhitelistKey(vendorID uint) string {
	return fmt.Sprintf("vendor:whitelisted:%d", vendorID)
}
