package main

import (
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	_ "github.com/edutech-id/campus-timetable-api/api/swagger"
	"github.com/edutech-id/campus-timetable-api/internal/handler"
	"github.com/edutech-id/campus-timetable-api/internal/middleware"
	"github.com/edutech-id/campus-timetable-api/internal/repository"
	"github.com/edutech-id/campus-timetable-api/internal/service"
	"github.com/edutech-id/campus-timetable-api/pkg/cache"
	"github.com/edutech-id/campus-timetable-api/pkg/config"
	"github.com/edutech-id/campus-timetable-api/pkg/logger"
	corsmiddleware "github.com/edutech-id/campus-timetable-api/pkg/middleware/cors"
	reqidmiddleware "github.com/edutech-id/campus-timetable-api/pkg/middleware/requestid"
)

// @title Campus Timetable API
// @version 0.1.0
// @description Class scheduling with overlap and travel-buffer conflict detection
// @BasePath /
// @schemes http

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logr, err := logger.New(cfg)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logr.Sync() //nolint:errcheck

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	registry := repository.NewRegistryRepository()
	schedule := repository.NewScheduleRepository()

	var redisClient *redis.Client
	if cfg.Reports.CacheEnabled {
		client, err := cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, report cache disabled", zap.Error(err))
		} else {
			redisClient = client
		}
	}
	cacheRepo := repository.NewCacheRepository(redisClient, logr)
	defer cacheRepo.Close() //nolint:errcheck

	metricsSvc := service.NewMetricsService()
	checker := service.NewConflictChecker(time.Duration(cfg.Scheduler.TravelBufferMinutes)*time.Minute, logr)

	rosterSvc := service.NewRosterService(registry, nil, logr)
	batchSvc := service.NewBatchService(registry, schedule, checker, cacheRepo, nil, logr)
	reportSvc := service.NewReportService(schedule, registry, cacheRepo, metricsSvc, service.ReportConfig{CacheTTL: cfg.Reports.CacheTTL}, logr)
	masterSvc := service.NewMasterListService(schedule, registry, cacheRepo, nil, logr)
	calendarSvc := service.NewCalendarService(schedule, registry, logr)
	exportSvc := service.NewExportService(masterSvc, reportSvc, nil, nil, logr)

	rosterHandler := handler.NewRosterHandler(rosterSvc)
	scheduleHandler := handler.NewScheduleHandler(batchSvc, masterSvc, calendarSvc, exportSvc, metricsSvc)
	reportHandler := handler.NewReportHandler(reportSvc, exportSvc)
	metricsHandler := handler.NewMetricsHandler(metricsSvc)

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.Metrics(metricsSvc))
	r.Use(middleware.WithResponseMeta())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", metricsHandler.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	{
		api.POST("/teachers/import", rosterHandler.ImportTeachers)
		api.GET("/teachers", rosterHandler.ListTeachers)
		api.PUT("/teachers/:id", rosterHandler.UpdateTeacher)
		api.POST("/rooms/import", rosterHandler.ImportRooms)
		api.GET("/rooms", rosterHandler.ListRooms)

		api.POST("/schedule/batch", scheduleHandler.Batch)
		api.GET("/schedule", scheduleHandler.List)
		api.PUT("/schedule", scheduleHandler.Replace)
		api.DELETE("/schedule", scheduleHandler.Clear)
		api.GET("/schedule/calendar", scheduleHandler.Calendar)
		api.GET("/schedule/export", scheduleHandler.ExportCSV)

		api.GET("/reports", reportHandler.Summary)
		api.GET("/reports/export", reportHandler.Export)
	}

	addr := fmt.Sprintf(":%d", cfg.Port)
	logr.Sugar().Infow("server starting", "addr", addr, "env", cfg.Env)
	if err := r.Run(addr); err != nil {
		logr.Sugar().Fatalw("server failed", "error", err)
	}
}
