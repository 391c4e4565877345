package service

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMetricsServiceSnapshot(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveHTTPRequest(http.MethodGet, "/api/v1/analytics/overview/trend", http.StatusOK, 20*time.Millisecond)
	metrics.ObserveDBQuery("analytics_attempts", 4*time.Millisecond)
	metrics.ObserveEngineCompute("trend", "program", 2*time.Millisecond)
	metrics.ObserveEngineCompute("trend", "class", 4*time.Millisecond)
	metrics.RecordMalformedRecord()
	metrics.RecordWarmTask(true)
	metrics.RecordWarmTask(false)
	metrics.RecordCacheOperation(true, time.Millisecond)
	metrics.ObserveCacheWrite(time.Millisecond)

	snapshot := metrics.Snapshot()
	assert.Equal(t, uint64(1), snapshot.RequestsTotal)
	assert.InDelta(t, 20, snapshot.AverageRequestDurationMs, 0.001)
	assert.Equal(t, uint64(1), snapshot.DBQueryCount)
	assert.Equal(t, uint64(2), snapshot.EngineComputeCount)
	assert.InDelta(t, 3, snapshot.AverageEngineComputeMs, 0.001)
	assert.Equal(t, uint64(1), snapshot.MalformedRecords)
	assert.Equal(t, uint64(1), snapshot.WarmTasksCompleted)
	assert.Equal(t, uint64(1), snapshot.WarmTasksFailed)
	assert.Equal(t, 1.0, snapshot.CacheHitRatio)
	assert.False(t, snapshot.GeneratedAt.IsZero())
}

func TestMetricsServiceHandlerExposesCollectors(t *testing.T) {
	metrics := NewMetricsService()
	metrics.ObserveEngineCompute("summary", "student", time.Millisecond)

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `kinemathika_analytics_compute_duration_seconds_count{operation="summary",scope="student"} 1`)
}

func TestMetricsServiceNilSafe(t *testing.T) {
	var metrics *MetricsService
	metrics.ObserveEngineCompute("trend", "program", time.Millisecond)
	metrics.RecordMalformedRecord()
	metrics.RecordCacheOperation(true, time.Millisecond)
	metrics.RecordWarmTask(true)
	assert.Zero(t, metrics.Snapshot().EngineComputeCount)

	w := httptest.NewRecorder()
	metrics.Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}
