package dispatch

import (
	"context"
	"errors"
	"path"
	"sync"
	"time"
)

// fakeStore 内存版Store，测试下发逻辑不依赖真实Redis
type fakeStore struct {
	mu    sync.Mutex
	lists map[string][]string
	kv    map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		lists: make(map[string][]string),
		kv:    make(map[string]string),
	}
}

func (s *fakeStore) Del(ctx context.Context, keys ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, key := range keys {
		delete(s.lists, key)
		delete(s.kv, key)
	}
	return nil
}

func (s *fakeStore) Keys(ctx context.Context, pattern string) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []string
	for key := range s.lists {
		if ok, _ := path.Match(pattern, key); ok {
			out = append(out, key)
		}
	}
	for key := range s.kv {
		if ok, _ := path.Match(pattern, key); ok {
			out = append(out, key)
		}
	}
	return out, nil
}

func (s *fakeStore) LPush(ctx context.Context, key string, values ...string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, v := range values {
		s.lists[key] = append([]string{v}, s.lists[key]...)
	}
	return nil
}

func (s *fakeStore) RPush(ctx context.Context, key string, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lists[key] = append(s.lists[key], value)
	return nil
}

func (s *fakeStore) SetNX(ctx context.Context, key string, value string, ttl time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.kv[key]; ok {
		return false, nil
	}
	s.kv[key] = value
	return true, nil
}

func (s *fakeStore) list(key string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lists[key]))
	copy(out, s.lists[key])
	return out
}

func (s *fakeStore) set(key, value string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.kv[key] = value
}

func (s *fakeStore) get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.kv[key]
	return v, ok
}

// fakeNodes 固定的在线节点集合
type fakeNodes struct {
	online []string
}

func (f *fakeNodes) OnlineNodes(ctx context.Context) ([]string, error) {
	return f.online, nil
}

// rpushFailStore 指定键入队失败，其余行为同fakeStore
type rpushFailStore struct {
	*fakeStore
	failKey string
}

func (s *rpushFailStore) RPush(ctx context.Context, key string, value string) error {
	if key == s.failKey {
		return errors.New("connection reset by peer")
	}
	return s.fakeStore.RPush(ctx, key, value)
}
