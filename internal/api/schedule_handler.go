package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/heiseqiubite/Mapping/internal/scheduler"
	"go.uber.org/zap"
)

// ScheduleHandler 周期任务处理器
type ScheduleHandler struct {
	manager   *scheduler.Manager
	schedules schedule.Repo
	logger    *zap.Logger
}

func NewScheduleHandler(manager *scheduler.Manager, schedules schedule.Repo, logger *zap.Logger) *ScheduleHandler {
	return &ScheduleHandler{manager: manager, schedules: schedules, logger: logger}
}

type CreateScheduleRequest struct {
	ID         string   `json:"id"` // 项目周期任务传项目ID，留空自动生成
	Name       string   `json:"name" binding:"required"`
	CycleType  string   `json:"cycleType" binding:"required"`
	Day        int      `json:"day"`
	Hour       int      `json:"hour"`
	Minute     int      `json:"minute"`
	Week       int      `json:"week"`
	Target     string   `json:"target"`
	Ignore     string   `json:"ignore"`
	Duplicates string   `json:"duplicates"`
	Template   string   `json:"template"`
	Type       string   `json:"type"`
	Node       []string `json:"node"`
	AllNode    bool     `json:"allNode"`
}

// Create 注册周期任务
func (h *ScheduleHandler) Create(c *gin.Context) {
	var req CreateScheduleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	st := &schedule.ScheduledTask{
		ID:         req.ID,
		Name:       req.Name,
		CycleType:  schedule.CycleType(req.CycleType),
		Day:        req.Day,
		Hour:       req.Hour,
		Minute:     req.Minute,
		Week:       req.Week,
		Target:     req.Target,
		Ignore:     req.Ignore,
		Duplicates: req.Duplicates,
		Template:   req.Template,
		Type:       req.Type,
		Node:       req.Node,
		AllNode:    req.AllNode,
	}
	if err := h.manager.Register(c.Request.Context(), st); err != nil {
		if errors.Is(err, scheduler.ErrBadCycle) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, gin.H{"id": st.ID, "nextTime": st.NextTime})
}

// List 周期任务列表
func (h *ScheduleHandler) List(c *gin.Context) {
	list, err := h.schedules.List(c.Request.Context(), &schedule.Filter{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	out := make([]gin.H, 0, len(list))
	for _, st := range list {
		out = append(out, gin.H{
			"id":        st.ID,
			"name":      st.Name,
			"cycleType": st.CycleType,
			"state":     st.State,
			"lastTime":  st.LastTime,
			"nextTime":  st.NextTime,
			"node":      st.Node,
			"allNode":   st.AllNode,
		})
	}
	c.JSON(http.StatusOK, gin.H{"list": out, "total": len(out)})
}

// Delete 移除周期任务：取消未来触发并删除记录
func (h *ScheduleHandler) Delete(c *gin.Context) {
	if err := h.manager.Remove(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "removed"})
}
