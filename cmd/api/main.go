package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	_ "github.com/noah-isme/timetable-api/api/swagger"
	"github.com/noah-isme/timetable-api/internal/handler"
	"github.com/noah-isme/timetable-api/internal/repository"
	"github.com/noah-isme/timetable-api/internal/router"
	"github.com/noah-isme/timetable-api/internal/service"
	"github.com/noah-isme/timetable-api/pkg/cache"
	"github.com/noah-isme/timetable-api/pkg/config"
	"github.com/noah-isme/timetable-api/pkg/database"
	"github.com/noah-isme/timetable-api/pkg/logger"
	appValidator "github.com/noah-isme/timetable-api/pkg/validator"
)

// @title Timetable API
// @version 1.0.0
// @description School timetable management with class and teacher conflict detection.
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization

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

	db, err := database.NewPostgres(cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	var redisClient *redis.Client
	if cfg.Cache.Enabled {
		redisClient, err = cache.NewRedis(cfg.Redis)
		if err != nil {
			logr.Warn("redis unavailable, schedule cache disabled", zap.Error(err))
			redisClient = nil
		} else {
			defer redisClient.Close()
		}
	}

	metrics := service.NewMetricsService()
	validate := appValidator.New()

	classRepo := repository.NewClassRepository(db)
	subjectRepo := repository.NewSubjectRepository(db)
	teacherRepo := repository.NewTeacherRepository(db)
	periodRepo := repository.NewPeriodRepository(db)
	timetableRepo := repository.NewTimetableRepository(db)
	statsRepo := repository.NewStatsRepository(db)
	cacheRepo := repository.NewCacheRepository(redisClient, logr)

	cacheSvc := service.NewCacheService(cacheRepo, metrics, cfg.Cache.TTL, logr, redisClient != nil)
	classSvc := service.NewClassService(classRepo, cacheSvc, validate, logr)
	subjectSvc := service.NewSubjectService(subjectRepo, cacheSvc, validate, logr)
	teacherSvc := service.NewTeacherService(teacherRepo, cacheSvc, validate, logr)
	periodSvc := service.NewPeriodService(periodRepo, cacheSvc, validate, logr)
	checker := service.NewConflictChecker(timetableRepo, metrics, logr)
	timetableSvc := service.NewTimetableService(db, timetableRepo, service.TimetableLookups{
		Classes:  classRepo,
		Subjects: subjectRepo,
		Teachers: teacherRepo,
		Periods:  periodRepo,
	}, checker, cacheSvc, validate, logr)
	scheduleSvc := service.NewScheduleService(classRepo, teacherRepo, periodRepo, timetableRepo, cacheSvc, metrics, logr)
	statsSvc := service.NewStatsService(statsRepo, cacheSvc, metrics, logr)
	exportSvc := service.NewExportService(scheduleSvc, logr)
	authSvc := service.NewAuthService(validate, logr, service.AuthConfig{
		AccessTokenSecret: cfg.Auth.Secret,
		AccessTokenExpiry: cfg.Auth.Expiration,
		AdminUsername:     cfg.Auth.AdminUsername,
		AdminPasswordHash: cfg.Auth.AdminPasswordHash,
	})

	checks := map[string]handler.Pinger{"database": db}
	if redisClient != nil {
		checks["redis"] = cache.Pinger{Client: redisClient}
	}

	engine := router.New(router.Options{
		APIPrefix:      cfg.APIPrefix,
		AllowedOrigins: cfg.CORS.AllowedOrigins,
		EnableDocs:     cfg.Env != config.EnvProduction,
		EnableMetrics:  cfg.Metrics.Enabled,
		AuthEnabled:    cfg.Auth.Enabled,
		Tokens:         authSvc,
		Metrics:        metrics,
		Logger:         logr,
	}, router.Handlers{
		Auth:      handler.NewAuthHandler(authSvc),
		Class:     handler.NewClassHandler(classSvc),
		Subject:   handler.NewSubjectHandler(subjectSvc),
		Teacher:   handler.NewTeacherHandler(teacherSvc),
		Period:    handler.NewPeriodHandler(periodSvc),
		Timetable: handler.NewTimetableHandler(timetableSvc),
		Schedule:  handler.NewScheduleHandler(scheduleSvc, statsSvc, exportSvc),
		System:    handler.NewSystemHandler(metrics, checks),
	})

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: engine,
	}

	go func() {
		logr.Sugar().Infow("server starting", "addr", srv.Addr, "env", cfg.Env, "auth", cfg.Auth.Enabled, "cache", redisClient != nil)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Sugar().Fatalw("server failed", "error", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logr.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
}
