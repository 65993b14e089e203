package scheduler

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/biz/template"
	"github.com/heiseqiubite/Mapping/internal/dispatch"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeSubmitter struct {
	mu       sync.Mutex
	requests []dispatch.SubmitRequest
}

func (f *fakeSubmitter) Submit(ctx context.Context, req dispatch.SubmitRequest) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.requests = append(f.requests, req)
	return "task-1", nil
}

func (f *fakeSubmitter) all() []dispatch.SubmitRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]dispatch.SubmitRequest, len(f.requests))
	copy(out, f.requests)
	return out
}

type fakeTaskRepo struct {
	mu      sync.Mutex
	records map[string]*task.Task
}

func newFakeTaskRepo() *fakeTaskRepo {
	return &fakeTaskRepo{records: make(map[string]*task.Task)}
}

func (f *fakeTaskRepo) Create(ctx context.Context, t *task.Task) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *t
	f.records[t.ID] = &cp
	return nil
}

func (f *fakeTaskRepo) GetByID(ctx context.Context, id string) (*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil, nil
	}
	cp := *t
	return &cp, nil
}

func (f *fakeTaskRepo) Update(ctx context.Context, id string, patch *task.Patch) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	t, ok := f.records[id]
	if !ok {
		return nil
	}
	if patch.Name != nil {
		t.Name = *patch.Name
	}
	if patch.Status != nil {
		t.Status = *patch.Status
	}
	if patch.Progress != nil {
		t.Progress = *patch.Progress
	}
	if patch.EndTime != nil {
		t.EndTime = *patch.EndTime
	}
	return nil
}

func (f *fakeTaskRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.records, id)
	return nil
}

func (f *fakeTaskRepo) List(ctx context.Context, filter *task.Filter) ([]*task.Task, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*task.Task
	for _, t := range f.records {
		cp := *t
		out = append(out, &cp)
	}
	return out, nil
}

func (f *fakeTaskRepo) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.records)
}

type fakeTemplateRepo struct {
	templates map[string]*template.Template
}

func (f *fakeTemplateRepo) Create(ctx context.Context, t *template.Template) error { return nil }
func (f *fakeTemplateRepo) Delete(ctx context.Context, id string) error            { return nil }

func (f *fakeTemplateRepo) GetByID(ctx context.Context, id string) (*template.Template, error) {
	return f.templates[id], nil
}

type passResolver struct{}

func (passResolver) Resolve(ctx context.Context, parameters map[string]map[string]string) (map[string]map[string]string, error) {
	return parameters, nil
}

func newTestManager(t *testing.T) (*Manager, *fakeCron, *fakeScheduleRepo, *fakeSubmitter, *fakeStore) {
	t.Helper()
	fc := newFakeCron()
	repo := newFakeScheduleRepo()
	submitter := &fakeSubmitter{}
	store := newFakeStore()
	m := NewManager(fc, repo, submitter,
		&fakePageRepo{urls: []string{"https://a.example.com/login", "https://b.example.com/"}},
		store,
		&fakeNodes{online: []string{"node-1", "node-2"}},
		zap.NewNop())
	return m, fc, repo, submitter, store
}

func dailySchedule() *schedule.ScheduledTask {
	return &schedule.ScheduledTask{
		Name:      "asset-sweep",
		CycleType: schedule.CycleDaily,
		Hour:      2,
		Minute:    0,
		Target:    "www.example.com",
		Template:  "tpl-1",
		Node:      []string{"node-1"},
	}
}

func TestManagerRegister(t *testing.T) {
	m, fc, repo, _, _ := newTestManager(t)
	ctx := context.Background()

	st := dailySchedule()
	require.NoError(t, m.Register(ctx, st))

	require.NotEmpty(t, st.ID)
	assert.True(t, st.State)
	assert.Empty(t, st.LastTime)

	next, err := time.Parse(timeLayout, st.NextTime)
	require.NoError(t, err)
	assert.True(t, next.After(time.Now().Add(-time.Minute)))

	stored, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.Equal(t, st.NextTime, stored.NextTime)
	assert.True(t, fc.registered(st.ID))
}

func TestManagerRegisterKeepsProvidedID(t *testing.T) {
	m, fc, repo, _, _ := newTestManager(t)
	ctx := context.Background()

	st := dailySchedule()
	st.ID = "project-7"
	st.Type = "project"
	require.NoError(t, m.Register(ctx, st))

	assert.Equal(t, "project-7", st.ID)
	stored, err := repo.GetByID(ctx, "project-7")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, fc.registered("project-7"))
}

func TestManagerRegisterInvalidCycle(t *testing.T) {
	m, fc, repo, _, _ := newTestManager(t)
	ctx := context.Background()

	st := dailySchedule()
	st.CycleType = "fortnightly"
	err := m.Register(ctx, st)
	require.ErrorIs(t, err, ErrBadCycle)

	list, err := repo.List(ctx, &schedule.Filter{})
	require.NoError(t, err)
	assert.Empty(t, list)
	assert.Empty(t, fc.jobs)
}

func TestManagerRemoveCancelsFutureFires(t *testing.T) {
	m, fc, repo, submitter, _ := newTestManager(t)
	ctx := context.Background()

	st := dailySchedule()
	require.NoError(t, m.Register(ctx, st))
	require.NoError(t, m.Remove(ctx, st.ID))

	stored, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	assert.Nil(t, stored)

	// 触发器已随记录一起移除
	assert.False(t, fc.Fire(st.ID))
	assert.Empty(t, submitter.all())
}

func TestManagerFireSubmitsTask(t *testing.T) {
	m, fc, repo, submitter, _ := newTestManager(t)
	ctx := context.Background()

	st := dailySchedule()
	require.NoError(t, m.Register(ctx, st))
	require.True(t, fc.Fire(st.ID))

	reqs := submitter.all()
	require.Len(t, reqs, 1)
	assert.True(t, strings.HasPrefix(reqs[0].Name, "asset-sweep-scan-"))
	assert.Equal(t, "www.example.com", reqs[0].Target)
	assert.Equal(t, "tpl-1", reqs[0].Template)
	assert.Equal(t, []string{"node-1"}, reqs[0].Node)

	stored, err := repo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.NotEmpty(t, stored.LastTime)
	assert.NotEmpty(t, stored.NextTime)
}

func TestManagerFireAfterRecordGone(t *testing.T) {
	m, fc, repo, submitter, _ := newTestManager(t)
	ctx := context.Background()

	st := dailySchedule()
	require.NoError(t, m.Register(ctx, st))
	require.NoError(t, repo.Delete(ctx, st.ID))

	require.True(t, fc.Fire(st.ID))
	assert.Empty(t, submitter.all())
}

func TestManagerLoad(t *testing.T) {
	m, fc, repo, _, _ := newTestManager(t)
	ctx := context.Background()

	enabled := dailySchedule()
	enabled.ID = "s-enabled"
	enabled.State = true
	require.NoError(t, repo.Create(ctx, enabled))

	disabled := dailySchedule()
	disabled.ID = "s-disabled"
	disabled.State = false
	require.NoError(t, repo.Create(ctx, disabled))

	broken := dailySchedule()
	broken.ID = "s-broken"
	broken.State = true
	broken.CycleType = "fortnightly"
	require.NoError(t, repo.Create(ctx, broken))

	require.NoError(t, m.Load(ctx))

	assert.True(t, fc.registered("s-enabled"))
	assert.False(t, fc.registered("s-disabled"))
	assert.False(t, fc.registered("s-broken"))

	stored, err := repo.GetByID(ctx, "s-enabled")
	require.NoError(t, err)
	assert.NotEmpty(t, stored.NextTime)
}

func TestPageMonitoringFire(t *testing.T) {
	m, fc, _, submitter, store := newTestManager(t)
	ctx := context.Background()

	st := &schedule.ScheduledTask{
		ID:        schedule.PageMonitoringID,
		Name:      "page monitoring",
		CycleType: schedule.CycleNHours,
		Hour:      3,
		AllNode:   true,
	}
	require.NoError(t, m.Register(ctx, st))
	require.True(t, fc.Fire(schedule.PageMonitoringID))

	// 页面监控不走任务创建路径
	assert.Empty(t, submitter.all())

	queue := store.list(dispatch.TargetQueueKey(schedule.PageMonitoringID))
	assert.ElementsMatch(t, []string{"https://a.example.com/login", "https://b.example.com/"}, queue)

	want := `{"ID":"page_monitoring","type":"page_monitoring"}`
	for _, node := range []string{"node-1", "node-2"} {
		payloads := store.list(dispatch.NodeQueueKey(node))
		require.Len(t, payloads, 1, "node %s", node)
		assert.JSONEq(t, want, payloads[0])
	}
}

func TestPageMonitoringFireNoTargets(t *testing.T) {
	fc := newFakeCron()
	repo := newFakeScheduleRepo()
	store := newFakeStore()
	m := NewManager(fc, repo, &fakeSubmitter{}, &fakePageRepo{}, store,
		&fakeNodes{online: []string{"node-1"}}, zap.NewNop())
	ctx := context.Background()

	st := &schedule.ScheduledTask{
		ID:        schedule.PageMonitoringID,
		CycleType: schedule.CycleNHours,
		Hour:      3,
		AllNode:   true,
	}
	require.NoError(t, m.Register(ctx, st))
	require.True(t, fc.Fire(schedule.PageMonitoringID))

	assert.Empty(t, store.list(dispatch.NodeQueueKey("node-1")))
}

// 注册每日调度后触发一次，走完整的任务创建与下发链路
func TestDailyScheduleEndToEnd(t *testing.T) {
	fc := newFakeCron()
	scheduleRepo := newFakeScheduleRepo()
	taskRepo := newFakeTaskRepo()
	store := newFakeStore()
	nodes := &fakeNodes{online: []string{"node-1", "node-2"}}

	templates := &fakeTemplateRepo{templates: map[string]*template.Template{
		"tpl-1": {
			ID:   "tpl-1",
			Name: "default",
			Parameters: map[string]map[string]string{
				"SubdomainScan": {"plugin-a": "-depth 2"},
			},
		},
	}}
	builder := dispatch.NewBuilder(templates, passResolver{})
	dispatcher := dispatch.NewDispatcher(store, nodes, zap.NewNop())
	service := dispatch.NewService(taskRepo, builder, dispatcher, zap.NewNop())

	m := NewManager(fc, scheduleRepo, service, &fakePageRepo{}, store, nodes, zap.NewNop())
	ctx := context.Background()

	st := dailySchedule()
	require.NoError(t, m.Register(ctx, st))
	require.True(t, fc.Fire(st.ID))

	// 恰好创建一个任务记录
	require.Equal(t, 1, taskRepo.count())
	tasks, err := taskRepo.List(ctx, &task.Filter{})
	require.NoError(t, err)
	created := tasks[0]
	assert.True(t, strings.HasPrefix(created.Name, "asset-sweep-scan-"))
	assert.Equal(t, task.StatusRunning, created.Status)
	assert.Equal(t, 1, created.TaskNum)

	// 下发是异步的，等节点队列出现载荷
	require.Eventually(t, func() bool {
		return len(store.list(dispatch.NodeQueueKey("node-1"))) == 1
	}, time.Second, 10*time.Millisecond)
	assert.Empty(t, store.list(dispatch.NodeQueueKey("node-2")))
	assert.Equal(t, []string{"example.com"}, store.list(dispatch.TargetQueueKey(created.ID)))

	stored, err := scheduleRepo.GetByID(ctx, st.ID)
	require.NoError(t, err)
	require.NotEmpty(t, stored.LastTime)
	last, err := time.ParseInLocation(timeLayout, stored.LastTime, time.Local)
	require.NoError(t, err)
	next, err := time.ParseInLocation(timeLayout, stored.NextTime, time.Local)
	require.NoError(t, err)

	// 下次运行落在本次之后24小时内的下一个02:00
	assert.True(t, next.After(last))
	assert.LessOrEqual(t, next.Sub(last), 24*time.Hour)
	assert.Equal(t, 2, next.Hour())
	assert.Equal(t, 0, next.Minute())
}
