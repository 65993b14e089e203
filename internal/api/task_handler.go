package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/dispatch"
	"github.com/samber/mo"
	"go.uber.org/zap"
)

// TaskHandler 任务处理器
type TaskHandler struct {
	service *dispatch.Service
	tasks   task.Repo
	logger  *zap.Logger
}

func NewTaskHandler(service *dispatch.Service, tasks task.Repo, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{service: service, tasks: tasks, logger: logger}
}

type CreateTaskRequest struct {
	Name       string   `json:"name" binding:"required"`
	Target     string   `json:"target" binding:"required"`
	Ignore     string   `json:"ignore"`
	Duplicates string   `json:"duplicates"`
	Template   string   `json:"template" binding:"required"`
	Type       string   `json:"type"`
	Node       []string `json:"node"`
	AllNode    bool     `json:"allNode"`
}

// Create 创建并下发任务
func (h *TaskHandler) Create(c *gin.Context) {
	var req CreateTaskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	id, err := h.service.Submit(c.Request.Context(), dispatch.SubmitRequest{
		Name:       req.Name,
		Target:     req.Target,
		Ignore:     req.Ignore,
		Duplicates: req.Duplicates,
		Template:   req.Template,
		Type:       req.Type,
		Node:       req.Node,
		AllNode:    req.AllNode,
	})
	if err != nil {
		if errors.Is(err, dispatch.ErrTemplateNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if id == "" {
		// 全部目标被忽略，不创建任务
		c.JSON(http.StatusOK, gin.H{"message": "no targets to scan"})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": id})
}

// Get 获取任务详情
func (h *TaskHandler) Get(c *gin.Context) {
	t, err := h.tasks.GetByID(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	if t == nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "task not found"})
		return
	}
	c.JSON(http.StatusOK, taskToResponse(t))
}

// List 任务列表
func (h *TaskHandler) List(c *gin.Context) {
	filter := &task.Filter{}
	if s := c.Query("type"); s != "" {
		filter.Type = mo.Some(task.Type(s))
	}
	list, err := h.tasks.List(c.Request.Context(), filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, t := range list {
		out = append(out, taskToResponse(t))
	}
	c.JSON(http.StatusOK, gin.H{"list": out, "total": len(out)})
}

// Stop 停止任务。已下发到节点队列的载荷不会被撤回。
func (h *TaskHandler) Stop(c *gin.Context) {
	if err := h.service.Stop(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, dispatch.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "stopped"})
}

// Resume 恢复暂停的任务，临时状态保留
func (h *TaskHandler) Resume(c *gin.Context) {
	if err := h.service.Resume(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, dispatch.ErrTaskNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "resumed"})
}

func taskToResponse(t *task.Task) gin.H {
	return gin.H{
		"id":        t.ID,
		"name":      t.Name,
		"status":    t.Status,
		"node":      t.Node,
		"allNode":   t.AllNode,
		"taskNum":   t.TaskNum,
		"progress":  t.Progress,
		"type":      t.Type,
		"creatTime": t.CreatTime,
		"endTime":   t.EndTime,
	}
}
