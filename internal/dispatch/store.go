package dispatch

import (
	"context"
	"time"

	redis "github.com/go-redis/redis/v8"
)

// Store 下发引擎需要的临时存储操作。保持为小接口，
// 调度与下发逻辑可以脱离真实Redis测试。
type Store interface {
	Del(ctx context.Context, keys ...string) error
	Keys(ctx context.Context, pattern string) ([]string, error)
	LPush(ctx context.Context, key string, values ...string) error
	RPush(ctx context.Context, key string, value string) error
	SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error)
}

type redisStore struct {
	rdb *redis.Client
}

func NewRedisStore(rdb *redis.Client) Store {
	return &redisStore{rdb: rdb}
}

func (s *redisStore) Del(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	return s.rdb.Del(ctx, keys...).Err()
}

func (s *redisStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	return s.rdb.Keys(ctx, pattern).Result()
}

func (s *redisStore) LPush(ctx context.Context, key string, values ...string) error {
	args := make([]interface{}, len(values))
	for i, v := range values {
		args[i] = v
	}
	return s.rdb.LPush(ctx, key, args...).Err()
}

func (s *redisStore) RPush(ctx context.Context, key string, value string) error {
	return s.rdb.RPush(ctx, key, value).Err()
}

func (s *redisStore) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	return s.rdb.SetNX(ctx, key, value, ttl).Result()
}
