package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	_ "github.com/noah-isme/kinemathika-api/api/swagger"
	"github.com/noah-isme/kinemathika-api/internal/analytics"
	"github.com/noah-isme/kinemathika-api/internal/handler"
	"github.com/noah-isme/kinemathika-api/internal/middleware"
	"github.com/noah-isme/kinemathika-api/internal/repository"
	"github.com/noah-isme/kinemathika-api/internal/service"
	"github.com/noah-isme/kinemathika-api/pkg/cache"
	"github.com/noah-isme/kinemathika-api/pkg/config"
	"github.com/noah-isme/kinemathika-api/pkg/database"
	"github.com/noah-isme/kinemathika-api/pkg/jobs"
	"github.com/noah-isme/kinemathika-api/pkg/logger"
	corsmiddleware "github.com/noah-isme/kinemathika-api/pkg/middleware/cors"
	reqidmiddleware "github.com/noah-isme/kinemathika-api/pkg/middleware/requestid"
	"github.com/noah-isme/kinemathika-api/pkg/tracing"
)

const (
	shutdownTimeout = 15 * time.Second
	cacheKeyPrefix  = "kinemathika"
)

// @title Kinemathika Analytics API
// @version 1.0.0
// @description Attempt aggregation and progress analytics for the teacher dashboard
// @BasePath /api/v1
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Init(cfg.Tracing)
	if err != nil {
		logr.Fatal("failed to init tracing", zap.Error(err))
	}

	db, err := database.NewPostgres(ctx, cfg.Database)
	if err != nil {
		logr.Fatal("failed to connect database", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := cache.NewRedis(ctx, cfg.Redis)
	if err != nil {
		logr.Warn("redis unavailable, analytics cache disabled", zap.Error(err))
		redisClient = nil
	}

	catalog, err := buildCatalog(cfg.Analytics)
	if err != nil {
		logr.Fatal("invalid concept catalog", zap.Error(err))
	}
	engine := analytics.NewEngine(catalog, analytics.Config{
		MasteryThreshold: cfg.Analytics.MasteryThreshold,
		Window:           cfg.Analytics.Window,
		RecentLimit:      cfg.Analytics.RecentLimit,
	})

	metricsSvc := service.NewMetricsService()
	cacheRepo := repository.NewCacheRepository(redisClient, cacheKeyPrefix, logr)
	defer cacheRepo.Close() //nolint:errcheck
	cacheSvc := service.NewCacheService(cacheRepo, metricsSvc, cfg.Analytics.CacheTTL, logr, cfg.Analytics.CacheEnabled && redisClient != nil)

	classRepo := repository.NewClassRepository(db)
	analyticsSvc := service.NewAnalyticsService(
		engine,
		repository.NewAttemptRepository(db),
		classRepo,
		repository.NewEnrollmentRepository(db),
		repository.NewStudentRepository(db),
		cacheSvc,
		metricsSvc,
		logr,
	)
	reportSvc := service.NewReportService(analyticsSvc, classRepo, logr)

	var warmer handler.ScopeWarmer
	if cacheSvc.Enabled() {
		cacheWarmer := service.NewCacheWarmer(analyticsSvc, classRepo, metricsSvc, jobs.Config{Workers: cfg.Analytics.WarmWorkers, Logger: logr})
		cacheWarmer.Start(ctx)
		defer cacheWarmer.Stop()
		warmer = cacheWarmer
	}

	checks := []handler.ReadinessCheck{{Name: "database", Check: func(ctx context.Context) error { return database.Ping(ctx, db) }}}
	if redisClient != nil {
		checks = append(checks, handler.ReadinessCheck{Name: "cache", Check: cacheRepo.Ping})
	}

	validate := validator.New()
	handlers := routeHandlers{
		analytics: handler.NewAnalyticsHandler(analyticsSvc, warmer, validate),
		reports:   handler.NewReportHandler(reportSvc, validate),
		metrics:   handler.NewMetricsHandler(metricsSvc, checks...),
	}

	if cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(reqidmiddleware.Middleware())
	r.Use(logger.GinMiddleware(logr))
	if cfg.Tracing.Enabled {
		r.Use(tracing.GinMiddleware())
	}
	r.Use(corsmiddleware.New(cfg.CORS.AllowedOrigins))
	r.Use(middleware.WithResponseMeta())
	r.Use(middleware.Metrics(metricsSvc))
	registerRoutes(r, cfg, handlers)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logr.Info("server starting",
			zap.String("addr", srv.Addr),
			zap.String("env", cfg.Env),
			zap.Bool("analytics_cache", cacheSvc.Enabled()),
			zap.Int("concepts", len(catalog.Concepts())),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logr.Fatal("server failed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	logr.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logr.Error("graceful shutdown failed", zap.Error(err))
	}
	if err := shutdownTracing(shutdownCtx); err != nil {
		logr.Warn("tracing shutdown failed", zap.Error(err))
	}
}

func buildCatalog(cfg config.AnalyticsConfig) (*analytics.Catalog, error) {
	if len(cfg.Concepts) == 0 {
		return analytics.DefaultCatalog(cfg.ProblemsPerConcept), nil
	}
	concepts := make([]analytics.Concept, 0, len(cfg.Concepts))
	for _, concept := range cfg.Concepts {
		concepts = append(concepts, analytics.Concept{Code: concept.Code, Name: concept.Name, Problems: concept.Problems})
	}
	return analytics.NewCatalog(concepts...)
}
