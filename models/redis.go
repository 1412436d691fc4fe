package models

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisClient backs the checkout lock and the review-like cache. It stays
// nil when redis is unreachable; both features then fall back to postgres.
var RedisClient *redis.Client

type RedisSettings struct {
	URL      string
	Addr     string
	Password string
	DB       int
}

func InitRedis(settings RedisSettings) {
	opt, err := redisOptions(settings)
	if err != nil {
		log.Println("Redis disabled:", err)
		return
	}

	client := redis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.Println("Redis connection failed:", err)
		log.Println("Running without redis: checkout locks and like cache disabled")
		client.Close()
		return
	}

	RedisClient = client
	log.Printf("Redis connected (%s)", opt.Addr)
}

func redisOptions(s RedisSettings) (*redis.Options, error) {
	if s.URL != "" {
		return redis.ParseURL(s.URL)
	}
	if s.Addr == "" {
		return nil, errors.New("no redis address configured")
	}
	return &redis.Options{Addr: s.Addr, Password: s.Password, DB: s.DB}, nil
}

func CloseRedis() {
	if RedisClient != nil {
		RedisClient.Close()
		RedisClient = nil
	}
}
