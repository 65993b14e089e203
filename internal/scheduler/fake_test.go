package scheduler

import (
	"context"
	"path"
	"sync"
	"time"

	"github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/robfig/cron/v3"
)

// fakeCron 手动触发的调度运行时，测试不依赖真实时钟
type fakeCron struct {
	mu   sync.Mutex
	jobs map[string]fakeJob
}

type fakeJob struct {
	sched cron.Schedule
	fn    func()
}

func newFakeCron() *fakeCron {
	return &fakeCron{jobs: make(map[string]fakeJob)}
}

func (f *fakeCron) Start() {}
func (f *fakeCron) Stop()  {}

func (f *fakeCron) Register(id string, sched cron.Schedule, fn func()) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.jobs[id] = fakeJob{sched: sched, fn: fn}
}

func (f *fakeCron) Cancel(id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.jobs, id)
}

func (f *fakeCron) NextRun(id string) (time.Time, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	job, ok := f.jobs[id]
	if !ok {
		return time.Time{}, false
	}
	return job.sched.Next(time.Now()), true
}

// Fire 模拟时间越过触发点
func (f *fakeCron) Fire(id string) bool {
	f.mu.Lock()
	job, ok := f.jobs[id]
	f.mu.Unlock()
	if !ok {
		return false
	}
	job.fn()
	return true
}

func (f *fakeCron) registered(id string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.jobs[id]
	return ok
}

// fakeScheduleRepo 内存版周期任务存储
type fakeScheduleRepo struct {
	mu      sync.Mutex
	records map[string]*schedule.ScheduledTask
}

func newFakeScheduleRepo() *fakeScheduleRepo {
	return &fakeScheduleRepo{records: make(map[string]*schedule.ScheduledTask)}
}

func (f *fakeScheduleRepo) Create(ctx context.Context, st *schedule.ScheduledTask) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *st
	f.records[st.ID] = &cp
	return nil
}

func (f *fakeScheduleRepo) GetByID(ctx context.Context, id string) (*schedule.ScheduledTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *st
	return &cp, nil
}

func (f *fakeScheduleRepo) Update(ctx context.Context, id string, patch *schedule.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	st, ok := f.records[id]
	if !ok {
		return nil
	}
	if patch.Name != nil {
		st.Name = *patch.Name
	}
	if patch.State != nil {
		st.State = *patch.State
	}
	if patch.LastTime != nil {
		st.LastTime = *patch.LastTime
	}
	if patch.NextTime != nil {
		st.NextTime = *patch.NextTime
	}
	return nil
}

func (f *fakeScheduleRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeScheduleRepo) List(ctx context.Context, filter *schedule.Filter) ([]*schedule.ScheduledTask, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*schedule.ScheduledTask
	for _, st := range f.records {
		if filter.State.IsPresent() && st.State != filter.State.MustGet() {
			continue
		}
		cp := *st
		out = append(out, &cp)
	}
	return out, nil
}

// fakePageRepo 固定的页面监控目标
type fakePageRepo struct {
	urls []string
}

func (f *fakePageRepo) ListURLs(ctx context.Context) ([]string, error) {
	return f.urls, nil
}

// fakeStore 内存版临时存储，与下发引擎的Store接口对齐
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

// fakeNodes 固定的在线节点集合
type fakeNodes struct {
	online []string
}

func (f *fakeNodes) OnlineNodes(ctx context.Context) ([]string, error) {
	return f.online, nil
}
