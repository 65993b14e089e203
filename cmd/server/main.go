package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/heiseqiubite/Mapping/internal/api"
	"github.com/heiseqiubite/Mapping/internal/dispatch"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/dictrepo"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/pagerepo"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/schedulerepo"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/taskrepo"
	"github.com/heiseqiubite/Mapping/internal/infra/persistence/templaterepo"
	"github.com/heiseqiubite/Mapping/internal/orm"
	"github.com/heiseqiubite/Mapping/internal/params"
	"github.com/heiseqiubite/Mapping/internal/registry"
	"github.com/heiseqiubite/Mapping/internal/scheduler"
	"github.com/heiseqiubite/Mapping/pkg/config"
	"github.com/heiseqiubite/Mapping/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	var configPath string
	flag.StringVar(&configPath, "config", "configs/config.yaml", "path to config file")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	zapLogger, err := logger.New(cfg.Log.Level, cfg.Log.Format, cfg.Log.Output)
	if err != nil {
		log.Fatalf("Failed to create logger: %v", err)
	}
	defer zapLogger.Sync()

	zapLogger.Info("Starting scan task scheduler")

	db, err := orm.New(orm.Config{
		Host:                  cfg.Database.Host,
		Port:                  cfg.Database.Port,
		Database:              cfg.Database.Database,
		User:                  cfg.Database.User,
		Password:              cfg.Database.Password,
		MaxConnections:        cfg.Database.MaxConnections,
		MaxIdleConnections:    cfg.Database.MaxIdleConnections,
		ConnectionMaxLifetime: cfg.Database.ConnectionMaxLifetime,
	})
	if err != nil {
		zapLogger.Fatal("Failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rdb := ProvideRedisClient(cfg)
	defer rdb.Close()

	// repositories
	taskRepo := taskrepo.NewMysqlRepositoryImpl(db.DB())
	scheduleRepo := schedulerepo.NewMysqlRepositoryImpl(db.DB())
	templateRepo := templaterepo.NewMysqlRepositoryImpl(db.DB())
	dictRepo := dictrepo.NewMysqlRepositoryImpl(db.DB())
	pageRepo := pagerepo.NewMysqlRepositoryImpl(db.DB())

	// 下发引擎
	store := dispatch.NewRedisStore(rdb)
	nodes := registry.New(rdb)
	resolver := params.NewResolver(dictRepo, zapLogger)
	builder := dispatch.NewBuilder(templateRepo, resolver)
	dispatcher := dispatch.NewDispatcher(store, nodes, zapLogger)
	service := dispatch.NewService(taskRepo, builder, dispatcher, zapLogger)

	// 调度运行时
	cronService := scheduler.NewCron()
	manager := scheduler.NewManager(cronService, scheduleRepo, service, pageRepo, store, nodes, zapLogger)
	if err := manager.Load(context.Background()); err != nil {
		zapLogger.Fatal("Failed to load schedules", zap.Error(err))
	}
	manager.Start()

	apiServer := api.NewServer(service, manager, taskRepo, scheduleRepo, zapLogger)

	httpServer := &http.Server{
		Addr:         fmt.Sprintf("%s:%d", cfg.Server.IP, cfg.Server.Port),
		Handler:      apiServer.Router(),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		zapLogger.Info("Starting API server", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("Failed to start API server", zap.Error(err))
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	zapLogger.Info("Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(ctx); err != nil {
		zapLogger.Error("Failed to shutdown API server", zap.Error(err))
	}

	manager.Stop()

	zapLogger.Info("Shutdown complete")
}
