package api

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/heiseqiubite/Mapping/internal/biz/schedule"
	"github.com/heiseqiubite/Mapping/internal/biz/task"
	"github.com/heiseqiubite/Mapping/internal/dispatch"
	"github.com/heiseqiubite/Mapping/internal/scheduler"
	"go.uber.org/zap"
)

// Server 任务与周期任务的HTTP边界。资产/漏洞等CRUD不在本服务内。
type Server struct {
	router *gin.Engine
}

func NewServer(
	service *dispatch.Service,
	manager *scheduler.Manager,
	tasks task.Repo,
	schedules schedule.Repo,
	logger *zap.Logger,
) *Server {
	gin.SetMode(gin.ReleaseMode)

	s := &Server{}
	s.router = gin.New()
	s.router.Use(gin.Recovery())

	config := cors.DefaultConfig()
	config.AllowAllOrigins = true
	config.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	s.router.Use(cors.New(config))

	taskHandler := NewTaskHandler(service, tasks, logger)
	scheduleHandler := NewScheduleHandler(manager, schedules, logger)

	v1 := s.router.Group("/api/v1")
	{
		tasksGroup := v1.Group("/tasks")
		{
			tasksGroup.POST("", taskHandler.Create)
			tasksGroup.GET("", taskHandler.List)
			tasksGroup.GET("/:id", taskHandler.Get)
			tasksGroup.POST("/:id/stop", taskHandler.Stop)
			tasksGroup.POST("/:id/resume", taskHandler.Resume)
		}
		schedulesGroup := v1.Group("/scheduled-tasks")
		{
			schedulesGroup.POST("", scheduleHandler.Create)
			schedulesGroup.GET("", scheduleHandler.List)
			schedulesGroup.DELETE("/:id", scheduleHandler.Delete)
		}
	}

	return s
}

func (s *Server) Router() *gin.Engine {
	return s.router
}

func (s *Server) Run(addr string) error {
	return s.router.Run(addr)
}
