package utils

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	Ctx         = context.Background()
)

// InitRedis connects the shared Redis client used for reset tokens,
// the leaderboard cache and the pub/sub channels behind the SSE streams.
func InitRedis() error {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})

	if err := RedisClient.Ping(Ctx).Err(); err != nil {
		return err
	}

	log.Println("✅ Redis connected:", addr)
	return nil
}

// SetToken stores a value with a TTL (used for password reset tokens)
func SetToken(key, value string, ttl time.Duration) error {
	return RedisClient.Set(Ctx, key, value, ttl).Err()
}

// GetToken fetches a previously stored token value
func GetToken(key string) (string, error) {
	return RedisClient.Get(Ctx, key).Result()
}

// DeleteToken removes a token after use
func DeleteToken(key string) error {
	return RedisClient.Del(Ctx, key).Err()
}
