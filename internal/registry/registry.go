// Package registry 维护在线工作节点视图。节点通过带TTL的心跳键
// 注册自己，在线集合在每次下发时即时扫描，不做缓存。
package registry

import (
	"context"
	"sort"
	"strings"
	"time"

	redis "github.com/go-redis/redis/v8"
)

const alivePrefix = "node:alive:"

type Registry struct {
	rdb *redis.Client
}

func New(rdb *redis.Client) *Registry {
	return &Registry{rdb: rdb}
}

// OnlineNodes 返回当前在线节点名集合，排序保证确定性
func (r *Registry) OnlineNodes(ctx context.Context) ([]string, error) {
	var names []string
	iter := r.rdb.Scan(ctx, 0, alivePrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		names = append(names, strings.TrimPrefix(iter.Val(), alivePrefix))
	}
	if err := iter.Err(); err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// Heartbeat 供节点侧刷新心跳，TTL过期即视为离线
func (r *Registry) Heartbeat(ctx context.Context, name string, ttl time.Duration) error {
	return r.rdb.Set(ctx, alivePrefix+name, time.Now().Format(time.RFC3339), ttl).Err()
}
