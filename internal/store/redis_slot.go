package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/redis/go-redis/v9"
)

const redisKeyPrefix = "studysheet:"

// RedisSlot stores slot values as plain redis strings under studysheet:<key>.
type RedisSlot struct {
	client *redis.Client
}

func OpenRedisSlot(ctx context.Context, url string) (*RedisSlot, error) {
	url = strings.TrimSpace(url)
	if url == "" {
		return nil, errors.New("redis storage: missing url")
	}
	opt, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	client := redis.NewClient(opt)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	return &RedisSlot{client: client}, nil
}

func (r *RedisSlot) Get(ctx context.Context, key string) ([]byte, error) {
	b, err := r.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlotEmpty
		}
		return nil, err
	}
	return b, nil
}

func (r *RedisSlot) Put(ctx context.Context, key string, value []byte) error {
	return r.client.Set(ctx, redisKeyPrefix+key, value, 0).Err()
}

func (r *RedisSlot) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}
