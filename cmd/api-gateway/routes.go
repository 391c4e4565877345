package main

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/noah-isme/kinemathika-api/internal/handler"
	"github.com/noah-isme/kinemathika-api/pkg/config"
)

type routeHandlers struct {
	analytics *handler.AnalyticsHandler
	reports   *handler.ReportHandler
	metrics   *handler.MetricsHandler
}

// analyticsScopes maps a route prefix to the scope it selects.
var analyticsScopes = []string{
	"/overview",
	"/classes/:classId",
	"/students/:studentId",
}

func registerRoutes(r *gin.Engine, cfg *config.Config, h routeHandlers) {
	r.GET("/health", h.metrics.Health)
	r.GET("/ready", h.metrics.Ready)
	r.GET("/metrics", h.metrics.Prometheus)

	if cfg.Env != config.EnvProduction {
		r.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	}

	api := r.Group(cfg.APIPrefix)
	analyticsGroup := api.Group("/analytics")
	for _, prefix := range analyticsScopes {
		scoped := analyticsGroup.Group(prefix)
		scoped.GET("/trend", h.analytics.Trend)
		scoped.GET("/concept-summary", h.analytics.ConceptSummary)
		scoped.GET("/concept-bars", h.analytics.ConceptBars)
		scoped.GET("/progress", h.analytics.Progress)
		scoped.GET("/summary", h.analytics.Summary)
		scoped.GET("/recent-attempts", h.analytics.RecentAttempts)
	}
	analyticsGroup.GET("/classes/:classId/students", h.analytics.ClassStudents)
	analyticsGroup.POST("/cache/invalidate", h.analytics.InvalidateCache)
	analyticsGroup.GET("/system", h.analytics.System)

	if cfg.Reports.Enabled {
		api.GET("/reports/classes/:classId", h.reports.ClassReport)
	}
}
