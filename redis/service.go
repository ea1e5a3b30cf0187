package redisService

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
)

// LockTTL bounds how long an abandoned lock can block a retry.
const LockTTL = 30 * time.Second

func SetKey(ctx context.Context, redisClient *redis.Client, key string, value interface{}, ttl time.Duration) (err error) {
	err = redisClient.Set(ctx, key, value, ttl).Err()
	return
}

// GetKey returns found=false without error when the key is absent.
func GetKey(ctx context.Context, redisClient *redis.Client, key string) (val string, found bool, err error) {
	val, err = redisClient.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return val, true, nil
}

func DeleteKey(ctx context.Context, redisClient *redis.Client, key string) (err error) {
	resp := redisClient.Del(ctx, key)
	return resp.Err()
}

// TakeLock sets key only if it is not already held. It reports false when
// someone else holds the lock.
func TakeLock(ctx context.Context, redisClient *redis.Client, key string) (bool, error) {
	return redisClient.SetNX(ctx, key, true, LockTTL).Result()
}
