package main

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kinemathika-api/internal/handler"
	"github.com/noah-isme/kinemathika-api/pkg/config"
)

func newTestRouter(cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	registerRoutes(r, cfg, routeHandlers{
		analytics: handler.NewAnalyticsHandler(nil, nil, nil),
		reports:   handler.NewReportHandler(nil, nil),
		metrics:   handler.NewMetricsHandler(nil),
	})
	return r
}

func routeSet(r *gin.Engine) map[string]bool {
	routes := make(map[string]bool)
	for _, route := range r.Routes() {
		routes[route.Method+" "+route.Path] = true
	}
	return routes
}

func TestRegisterRoutes(t *testing.T) {
	cfg := &config.Config{Env: config.EnvDevelopment, APIPrefix: "/api/v1", Reports: config.ReportsConfig{Enabled: true}}
	routes := routeSet(newTestRouter(cfg))

	for _, path := range []string{
		"/api/v1/analytics/overview/trend",
		"/api/v1/analytics/classes/:classId/concept-bars",
		"/api/v1/analytics/students/:studentId/progress",
		"/api/v1/analytics/classes/:classId/recent-attempts",
		"/api/v1/analytics/classes/:classId/students",
		"/api/v1/analytics/system",
		"/api/v1/reports/classes/:classId",
		"/docs/*any",
		"/health",
		"/ready",
		"/metrics",
	} {
		assert.True(t, routes["GET "+path], path)
	}
	assert.True(t, routes["POST /api/v1/analytics/cache/invalidate"])
}

func TestRegisterRoutesProductionWithoutReports(t *testing.T) {
	cfg := &config.Config{Env: config.EnvProduction, APIPrefix: "/api/v1"}
	routes := routeSet(newTestRouter(cfg))

	assert.False(t, routes["GET /docs/*any"])
	assert.False(t, routes["GET /api/v1/reports/classes/:classId"])
	assert.True(t, routes["GET /api/v1/analytics/overview/summary"])
}

func TestHealthRoute(t *testing.T) {
	r := newTestRouter(&config.Config{APIPrefix: "/api/v1"})
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestBuildCatalog(t *testing.T) {
	catalog, err := buildCatalog(config.AnalyticsConfig{Concepts: []config.ConceptConfig{
		{Code: "dd", Name: "Distance & Displacement", Problems: 10},
		{Code: "fm", Name: "Free Motion", Problems: 5},
	}})
	require.NoError(t, err)
	assert.Len(t, catalog.Concepts(), 2)
	assert.Equal(t, 15, catalog.TotalProblems(""))

	catalog, err = buildCatalog(config.AnalyticsConfig{ProblemsPerConcept: 4})
	require.NoError(t, err)
	assert.Equal(t, 12, catalog.TotalProblems(""))

	_, err = buildCatalog(config.AnalyticsConfig{Concepts: []config.ConceptConfig{{Code: "dd"}, {Code: "DD"}}})
	assert.Error(t, err)
}
