package dispatch

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/expand"
	"go.uber.org/zap"
)

const timeLayout = "2006-01-02 15:04:05"

// SubmitRequest 一次任务下发请求
type SubmitRequest struct {
	Name       string
	Target     string
	Ignore     string
	Duplicates string
	Template   string
	Type       string
	Node       []string
	AllNode    bool
}

// Service 串起目标展开、任务记录创建、载荷组装与下发
type Service struct {
	tasks      task.Repo
	builder    *Builder
	dispatcher *Dispatcher
	logger     *zap.Logger
}

func NewService(tasks task.Repo, builder *Builder, dispatcher *Dispatcher, logger *zap.Logger) *Service {
	return &Service{tasks: tasks, builder: builder, dispatcher: dispatcher, logger: logger}
}

// Submit 创建并下发一个新任务，返回任务ID。展开后目标为空是
// 合法结果而不是错误：不创建任务记录，返回空ID。模板不存在或
// 存储访问失败时任务记录同样不会创建。
func (s *Service) Submit(ctx context.Context, req SubmitRequest) (string, error) {
	targets := expand.Expand(req.Target, req.Ignore)
	if len(targets) == 0 {
		s.logger.Info("no targets after expansion, nothing to do",
			zap.String("task_name", req.Name))
		return "", nil
	}

	id := uuid.NewString()
	payload, err := s.builder.Build(ctx, req, id, false)
	if err != nil {
		return "", err
	}

	taskType := task.Type(payload.Type)
	t := &task.Task{
		ID:         id,
		Name:       req.Name,
		Status:     task.StatusRunning,
		Node:       req.Node,
		AllNode:    req.AllNode,
		Target:     strings.Join(targets, "\n"),
		Ignore:     req.Ignore,
		Duplicates: req.Duplicates,
		Template:   req.Template,
		Type:       taskType,
		TaskNum:    len(targets),
		Progress:   0,
		CreatTime:  time.Now().Format(timeLayout),
	}
	if err := s.tasks.Create(ctx, t); err != nil {
		return "", err
	}

	// 下发异步执行，节点入队失败不影响调用方
	go s.dispatch(payload, targets, req.Node, req.AllNode, false)

	return id, nil
}

// Resume 重新下发一个暂停的任务。临时状态（目标队列、进度、
// 去重标记）保持不动，节点拿到 IsStart 标记后续用已有进度。
func (s *Service) Resume(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}

	req := SubmitRequest{
		Name:       t.Name,
		Target:     t.Target,
		Ignore:     t.Ignore,
		Duplicates: t.Duplicates,
		Template:   t.Template,
		Type:       string(t.Type),
		Node:       t.Node,
		AllNode:    t.AllNode,
	}
	payload, err := s.builder.Build(ctx, req, id, true)
	if err != nil {
		return err
	}
	if err := s.tasks.Update(ctx, id, task.NewPatch().WithStatus(task.StatusRunning)); err != nil {
		return err
	}

	targets := strings.Split(t.Target, "\n")
	go s.dispatch(payload, targets, t.Node, t.AllNode, true)

	return nil
}

// Stop 停止任务。已入队的载荷不会被撤回，只更新状态并阻止后续
// 周期触发（由调度侧移除触发器）。
func (s *Service) Stop(ctx context.Context, id string) error {
	t, err := s.tasks.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if t == nil {
		return ErrTaskNotFound
	}
	patch, err := t.Stop()
	if err != nil {
		return err
	}
	return s.tasks.Update(ctx, id, patch)
}

func (s *Service) dispatch(payload *Payload, targets []string, explicit []string, allNode bool, resume bool) {
	ctx := context.Background()
	s.logger.Info("dispatch begin", zap.String("task_id", payload.ID))
	if err := s.dispatcher.Dispatch(ctx, payload, targets, explicit, allNode, resume); err != nil {
		s.logger.Error("dispatch failed",
			zap.String("task_id", payload.ID),
			zap.Error(err))
		return
	}
	s.logger.Info("dispatch end", zap.String("task_id", payload.ID))
}
