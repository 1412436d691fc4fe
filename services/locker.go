package services

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	Release(ctx context.Context, key string) error
}

type RedisLocker struct {
	client *redis.Client
}

// NewLocker returns a redis-backed locker, or a no-op one when redis is
// not configured.
func NewLocker(client *redis.Client) Locker {
	if client == nil {
		return NoopLocker{}
	}
	return &RedisLocker{client: client}
}

func (l *RedisLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return l.client.SetNX(ctx, key, time.Now().Unix(), ttl).Result()
}

func (l *RedisLocker) Release(ctx context.Context, key string) error {
	return l.client.Del(ctx, key).Err()
}

type NoopLocker struct{}

func (NoopLocker) Acquire(context.Context, string, time.Duration) (bool, error) { return true, nil }

func (NoopLocker) Release(context.Context, string) error { return nil }
