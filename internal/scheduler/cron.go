package scheduler

import (
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// Cron 进程内调度运行时。按ID管理触发器，同一ID同时只存在一个
// 触发器，重复注册替换旧的。显式注入到 Manager，不做包级单例。
type Cron interface {
	Start()
	Stop()
	Register(id string, sched cron.Schedule, fn func())
	Cancel(id string)
	NextRun(id string) (time.Time, bool)
}

type cronService struct {
	c  *cron.Cron
	mu sync.Mutex

	entries map[string]cronEntry
}

type cronEntry struct {
	id    cron.EntryID
	sched cron.Schedule
}

func NewCron() Cron {
	return &cronService{
		c:       cron.New(),
		entries: make(map[string]cronEntry),
	}
}

func (s *cronService) Start() {
	s.c.Start()
}

func (s *cronService) Stop() {
	ctx := s.c.Stop()
	<-ctx.Done()
}

func (s *cronService) Register(id string, sched cron.Schedule, fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if old, ok := s.entries[id]; ok {
		s.c.Remove(old.id)
	}
	entryID := s.c.Schedule(sched, cron.FuncJob(fn))
	s.entries[id] = cronEntry{id: entryID, sched: sched}
}

func (s *cronService) Cancel(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[id]; ok {
		s.c.Remove(e.id)
		delete(s.entries, id)
	}
}

func (s *cronService) NextRun(id string) (time.Time, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		return time.Time{}, false
	}
	next := s.c.Entry(e.id).Next
	now := time.Now()
	if next.IsZero() || !next.After(now) {
		// 运行时尚未计算（未Start或恰在触发中），按计划自行推算
		next = e.sched.Next(now)
	}
	return next, true
}
