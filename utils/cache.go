// File: utils/cache.go
package utils

import (
	"context"
	"fmt"
	"log"
	"time"

	"mentora/config"

	"github.com/go-redis/redis/v8"
)

// CacheClient is the generic cache client.
var CacheClient *redis.Client

// InitCache initializes the Redis cache client.
func InitCache() {
	CacheClient = redis.NewClient(&redis.Options{
		Addr:     config.AppConfig.RedisAddr,
		Password: config.AppConfig.RedisPassword,
		DB:       config.AppConfig.RedisCacheDB,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	_, err := CacheClient.Ping(ctx).Result()
	if err != nil {
		log.Fatalf("Failed to connect to Redis (Cache): %v", err)
	}
}

// GetCacheClient returns the generic cache client.
func GetCacheClient() *redis.Client {
	if CacheClient == nil {
		InitCache()
	}
	return CacheClient
}

// ScheduleEpochKey is the per-provider cache generation counter. Bumping it
// on a schedule update orphans every cached availability entry at once.
func ScheduleEpochKey(providerID string) string {
	return "schedepoch:" + providerID
}

// AvailabilityCacheKey identifies one cached availability response.
func AvailabilityCacheKey(providerID, epoch, date string) string {
	return fmt.Sprintf("availability:%s:%s:%s", providerID, epoch, date)
}

// AvailabilityEpoch reads the provider's current cache generation.
func AvailabilityEpoch(ctx context.Context, client *redis.Client, providerID string) string {
	epoch, err := client.Get(ctx, ScheduleEpochKey(providerID)).Result()
	if err != nil {
		return "0"
	}
	return epoch
}
