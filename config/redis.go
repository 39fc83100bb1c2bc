package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/spf13/viper"
)

var RedisClient *redis.Client

const categoryCacheKey = "prayers:categories"
const categoryCacheTTL = 5 * time.Minute

// InitRedis connects to Redis when REDIS_URL is configured. Redis only backs
// the category-list cache, so everything keeps working without it.
func InitRedis() {
	redisURL := viper.GetString("REDIS_URL")
	if redisURL == "" {
		log.Println("REDIS_URL not configured, category cache disabled")
		return
	}

	opt, err := redis.ParseURL(redisURL)
	if err != nil {
		log.Printf("Warning: failed to parse REDIS_URL: %v - category cache disabled", err)
		return
	}

	RedisClient = redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := RedisClient.Ping(ctx).Err(); err != nil {
		log.Printf("Warning: failed to connect to Redis: %v - category cache disabled", err)
		RedisClient = nil
		return
	}

	log.Println("Connected to Redis")
}

// GetCachedCategories returns the cached category list, or nil on a miss or
// when Redis is unavailable.
func GetCachedCategories(ctx context.Context) []string {
	if RedisClient == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	values, err := RedisClient.LRange(ctx, categoryCacheKey, 0, -1).Result()
	if err != nil || len(values) == 0 {
		return nil
	}
	return values
}

// SetCachedCategories stores the category list with a short TTL.
func SetCachedCategories(ctx context.Context, categories []string) {
	if RedisClient == nil || len(categories) == 0 {
		return
	}

	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	pipe := RedisClient.TxPipeline()
	pipe.Del(ctx, categoryCacheKey)
	args := make([]interface{}, len(categories))
	for i, c := range categories {
		args[i] = c
	}
	pipe.RPush(ctx, categoryCacheKey, args...)
	pipe.Expire(ctx, categoryCacheKey, categoryCacheTTL)
	_, _ = pipe.Exec(ctx)
}
