package config

import (
	"context"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis is the shared client for the seat-availability cache. It may be
// nil when REDIS_ADDR is unreachable; the cache layer tolerates that.
var Redis *redis.Client

func ConnectRedis(env Env) *redis.Client {
	client := redis.NewClient(&redis.Options{
		Addr: env.RedisAddr,
		DB:   0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		log.Printf("warning: redis unavailable at %s, availability cache disabled: %v", env.RedisAddr, err)
		_ = client.Close()
		return nil
	}

	Redis = client
	log.Println("connected to Redis")
	return Redis
}

func CloseRedis() {
	if Redis != nil {
		_ = Redis.Close()
		Redis = nil
	}
}
