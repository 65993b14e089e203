package scheduler

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/heiseqiubite/Mapping/internal/biz/page"
	"github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/heiseqiubite/Mapping/internal/dispatch"
	"github.com/robfig/cron/v3"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05"

// Submitter 触发时提交新任务
type Submitter interface {
	Submit(ctx context.Context, req dispatch.SubmitRequest) (string, error)
}

// Manager 管理周期任务：注册/移除触发器、维护上次/下次运行时间、
// 触发时走统一的任务创建与下发路径。page_monitoring 是保留的
// 平台级调度，绕过模板解析直接下发固定载荷。
type Manager struct {
	cron      Cron
	schedules schedule.Repo
	service   Submitter
	pages     page.Repo
	store     dispatch.Store
	nodes     dispatch.NodeSource
	logger    *zap.Logger

	// mu 保证 取消触发器+删除记录 以及 建记录+挂触发器 两两互斥，
	// 记录删除之后触发器不可能再注册回来
	mu sync.Mutex
}

func NewManager(
	cron Cron,
	schedules schedule.Repo,
	service Submitter,
	pages page.Repo,
	store dispatch.Store,
	nodes dispatch.NodeSource,
	logger *zap.Logger,
) *Manager {
	return &Manager{
		cron:      cron,
		schedules: schedules,
		service:   service,
		pages:     pages,
		store:     store,
		nodes:     nodes,
		logger:    logger,
	}
}

func (m *Manager) Start() {
	m.cron.Start()
}

func (m *Manager) Stop() {
	m.cron.Stop()
}

// Load 启动时恢复全部启用状态的调度并重算下次运行时间
func (m *Manager) Load(ctx context.Context) error {
	list, err := m.schedules.List(ctx, &schedule.Filter{State: mo.Some(true)})
	if err != nil {
		return err
	}
	for _, st := range list {
		sched, err := CycleSchedule(st)
		if err != nil {
			m.logger.Warn("skipping schedule with invalid cycle",
				zap.String("schedule_id", st.ID),
				zap.Error(err))
			continue
		}
		m.mu.Lock()
		m.registerTrigger(st.ID, sched)
		m.mu.Unlock()

		nextTime := sched.Next(time.Now()).Format(timeLayout)
		if err := m.schedules.Update(ctx, st.ID, schedule.NewPatch().WithNextTime(nextTime)); err != nil {
			m.logger.Error("failed to update next run time",
				zap.String("schedule_id", st.ID),
				zap.Error(err))
		}
	}
	m.logger.Info("loaded schedules", zap.Int("count", len(list)))
	return nil
}

// Register 注册一个周期任务：立即计算首个下次运行时间并持久化，
// 然后挂上触发器。周期参数无效时直接失败，记录不会持久化。
// 传入ID为空时生成新ID；项目周期任务传项目ID作为调度ID。
func (m *Manager) Register(ctx context.Context, st *schedule.ScheduledTask) error {
	sched, err := CycleSchedule(st)
	if err != nil {
		return err
	}
	if st.ID == "" {
		st.ID = uuid.NewString()
	}
	st.State = true
	st.LastTime = ""
	st.NextTime = sched.Next(time.Now()).Format(timeLayout)

	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.schedules.Create(ctx, st); err != nil {
		return err
	}
	m.registerTrigger(st.ID, sched)

	m.logger.Info("registered schedule",
		zap.String("schedule_id", st.ID),
		zap.String("cycle_type", string(st.CycleType)),
		zap.String("next_time", st.NextTime))
	return nil
}

// Remove 取消未来的触发并删除持久化记录。先取消后删除，
// 记录删除后不会再有触发发生。
func (m *Manager) Remove(ctx context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cron.Cancel(id)
	if err := m.schedules.Delete(ctx, id); err != nil {
		return err
	}
	m.logger.Info("removed schedule", zap.String("schedule_id", id))
	return nil
}

func (m *Manager) registerTrigger(id string, sched cron.Schedule) {
	if id == schedule.PageMonitoringID {
		m.cron.Register(id, sched, func() { m.firePageMonitoring(id) })
		return
	}
	m.cron.Register(id, sched, func() { m.fire(id) })
}

// fire 周期触发：刷新时间戳，按存储的请求模板提交一个全新任务，
// 任务名追加时间后缀保证唯一。
func (m *Manager) fire(id string) {
	ctx := context.Background()
	m.logger.Info("schedule fired", zap.String("schedule_id", id))

	doc, err := m.stampTimes(ctx, id)
	if err != nil {
		m.logger.Error("failed to process schedule fire",
			zap.String("schedule_id", id),
			zap.Error(err))
		return
	}
	if doc == nil {
		return
	}

	taskType := doc.Type
	if taskType == "" {
		taskType = "scan"
	}
	name := doc.Name + "-" + taskType + "-" + time.Now().Format(timeLayout)
	taskID, err := m.service.Submit(ctx, dispatch.SubmitRequest{
		Name:       name,
		Target:     doc.Target,
		Ignore:     doc.Ignore,
		Duplicates: doc.Duplicates,
		Template:   doc.Template,
		Type:       taskType,
		Node:       doc.Node,
		AllNode:    doc.AllNode,
	})
	if err != nil {
		m.logger.Error("failed to submit scheduled task",
			zap.String("schedule_id", id),
			zap.Error(err))
		return
	}
	if taskID == "" {
		m.logger.Info("scheduled fire produced no task",
			zap.String("schedule_id", id))
	}
}

// firePageMonitoring 页面监控触发：不走模板解析，重填自己的目标
// 队列后向节点推送固定形状的轻量载荷。
func (m *Manager) firePageMonitoring(id string) {
	ctx := context.Background()
	m.logger.Info("page monitoring fired")

	doc, err := m.stampTimes(ctx, id)
	if err != nil {
		m.logger.Error("failed to process page monitoring fire", zap.Error(err))
		return
	}
	if doc == nil {
		return
	}

	nodes := doc.Node
	if doc.AllNode {
		online, err := m.nodes.OnlineNodes(ctx)
		if err != nil {
			m.logger.Error("failed to resolve online nodes", zap.Error(err))
			return
		}
		nodes = online
	}

	targets, err := m.pages.ListURLs(ctx)
	if err != nil {
		m.logger.Error("failed to load page monitoring targets", zap.Error(err))
		return
	}
	if len(targets) == 0 {
		return
	}

	queueKey := dispatch.TargetQueueKey(id)
	if err := m.store.Del(ctx, queueKey); err != nil {
		m.logger.Error("failed to reset page monitoring queue", zap.Error(err))
		return
	}
	if err := m.store.LPush(ctx, queueKey, targets...); err != nil {
		m.logger.Error("failed to fill page monitoring queue", zap.Error(err))
		return
	}

	data, err := json.Marshal(map[string]string{"ID": id, "type": "page_monitoring"})
	if err != nil {
		m.logger.Error("failed to marshal page monitoring payload", zap.Error(err))
		return
	}
	for _, name := range nodes {
		if err := m.store.RPush(ctx, dispatch.NodeQueueKey(name), string(data)); err != nil {
			m.logger.Error("failed to enqueue page monitoring payload",
				zap.String("node", name),
				zap.Error(err))
		}
	}
}

// stampTimes 触发时刷新 lastTime/nextTime 并返回调度记录；
// 记录已被删除时返回 nil
func (m *Manager) stampTimes(ctx context.Context, id string) (*schedule.ScheduledTask, error) {
	now := time.Now().Format(timeLayout)
	patch := schedule.NewPatch().WithLastTime(now)
	if next, ok := m.cron.NextRun(id); ok {
		patch = patch.WithNextTime(next.Format(timeLayout))
	}
	if err := m.schedules.Update(ctx, id, patch); err != nil {
		return nil, err
	}
	doc, err := m.schedules.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		m.logger.Warn("schedule record missing on fire",
			zap.String("schedule_id", id))
	}
	return doc, nil
}
