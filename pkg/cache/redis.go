// Package cache wraps a shared Redis client used for the dashboard stats
// cache. The application degrades gracefully when Redis is not reachable:
// Get reports a miss and Set / Del are no-ops, so every read falls through
// to MongoDB.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/YildirimDemir/E-Commerce-Project-Admin/config"
	"github.com/YildirimDemir/E-Commerce-Project-Admin/pkg/logger"
)

// RDB is the shared client. Nil until Connect succeeds.
var RDB *redis.Client

// ErrCacheMiss is returned by Get when the key is absent or Redis is down.
var ErrCacheMiss = errors.New("cache: miss")

// Connect dials Redis using the configured address. A failed ping leaves
// RDB nil and the cache disabled; callers should treat that as non-fatal.
func Connect(ctx context.Context) error {
	client := redis.NewClient(&redis.Options{
		Addr:     config.RedisAddr(),
		Password: config.RedisPassword(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return err
	}

	RDB = client
	logger.Info("redis connected", "addr", config.RedisAddr())
	return nil
}

// Close releases the client if one was established.
func Close() {
	if RDB != nil {
		_ = RDB.Close()
		RDB = nil
	}
}

// Get unmarshals the cached JSON value for key into dest.
func Get(ctx context.Context, key string, dest any) error {
	if RDB == nil {
		return ErrCacheMiss
	}
	raw, err := RDB.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return ErrCacheMiss
		}
		logger.Warn("cache get failed", "key", key, "error", err)
		return ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

// Set stores value as JSON under key with the given TTL.
func Set(ctx context.Context, key string, value any, ttl time.Duration) {
	if RDB == nil {
		return
	}
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := RDB.Set(ctx, key, raw, ttl).Err(); err != nil {
		logger.Warn("cache set failed", "key", key, "error", err)
	}
}

// Del removes one or more keys.
func Del(ctx context.Context, keys ...string) {
	if RDB == nil || len(keys) == 0 {
		return
	}
	if err := RDB.Del(ctx, keys...).Err(); err != nil {
		logger.Warn("cache del failed", "keys", keys, "error", err)
	}
}
