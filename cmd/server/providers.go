package main

import (
	"fmt"

	redis "github.com/go-redis/redis/v8"
	"github.com/heiseqiubite/Mapping/pkg/config"
)

// ProvideRedisClient 从配置构建redis客户端
func ProvideRedisClient(cfg *config.Config) *redis.Client {
	addr := fmt.Sprintf("%s:%d", cfg.Redis.Host, cfg.Redis.Port)
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
}
