package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/kinemathika-api/internal/analytics"
	"github.com/noah-isme/kinemathika-api/internal/middleware"
	"github.com/noah-isme/kinemathika-api/internal/models"
	"github.com/noah-isme/kinemathika-api/internal/service"
	appErrors "github.com/noah-isme/kinemathika-api/pkg/errors"
)

type fakeAnalytics struct {
	params        []service.AnalyticsParams
	cacheHit      bool
	err           error
	series        analytics.Series
	performances  []analytics.StudentPerformance
	invalidated   []analytics.Scope
	invalidateErr error
	calls         []string
}

func (f *fakeAnalytics) record(op string, params service.AnalyticsParams) {
	f.calls = append(f.calls, op)
	f.params = append(f.params, params)
}

func (f *fakeAnalytics) Trend(_ context.Context, params service.AnalyticsParams) (analytics.Series, bool, error) {
	f.record("trend", params)
	return f.series, f.cacheHit, f.err
}

func (f *fakeAnalytics) ConceptSummary(_ context.Context, params service.AnalyticsParams) (analytics.ConceptSummary, bool, error) {
	f.record("concept-summary", params)
	return analytics.ConceptSummary{AvgAttempts: 1.5, AvgTimeSec: 42}, f.cacheHit, f.err
}

func (f *fakeAnalytics) ConceptBars(_ context.Context, params service.AnalyticsParams) ([]analytics.Bar, bool, error) {
	f.record("concept-bars", params)
	return []analytics.Bar{{Label: "Distance & Displacement", Value: 50}}, f.cacheHit, f.err
}

func (f *fakeAnalytics) StudentProgress(_ context.Context, params service.AnalyticsParams) (analytics.StudentProgress, bool, error) {
	f.record("student-progress", params)
	return analytics.StudentProgress{Completed: 3, Total: 45, Fraction: 0.0667}, f.cacheHit, f.err
}

func (f *fakeAnalytics) GroupProgress(_ context.Context, params service.AnalyticsParams) (analytics.GroupProgress, bool, error) {
	f.record("group-progress", params)
	return analytics.GroupProgress{AvgFraction: 0.25, Population: 4}, f.cacheHit, f.err
}

func (f *fakeAnalytics) Summary(_ context.Context, params service.AnalyticsParams) (analytics.Summary, bool, error) {
	f.record("summary", params)
	return analytics.Summary{Attempts: 12, Population: 4}, f.cacheHit, f.err
}

func (f *fakeAnalytics) RecentAttempts(_ context.Context, params service.AnalyticsParams) ([]analytics.RecentAttempt, bool, error) {
	f.record("recent-attempts", params)
	return []analytics.RecentAttempt{{StudentID: "S1", Status: analytics.StatusComplete}}, f.cacheHit, f.err
}

func (f *fakeAnalytics) StudentPerformances(_ context.Context, params service.AnalyticsParams) ([]analytics.StudentPerformance, bool, error) {
	f.record("students", params)
	return f.performances, f.cacheHit, f.err
}

func (f *fakeAnalytics) InvalidateCache(_ context.Context, scope analytics.Scope) (int, error) {
	f.invalidated = append(f.invalidated, scope)
	return 7, f.invalidateErr
}

func (f *fakeAnalytics) SystemMetrics() models.AnalyticsSystemMetrics {
	return models.AnalyticsSystemMetrics{RequestsTotal: 3, EngineComputeCount: 2}
}

type responseEnvelope struct {
	Data       json.RawMessage        `json:"data"`
	Error      *appErrors.Error       `json:"error"`
	Pagination *models.Pagination     `json:"pagination"`
	Meta       map[string]interface{} `json:"meta"`
}

func newAnalyticsContext(method, target string, params gin.Params) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(method, target, nil)
	c.Params = params
	c.Set("response_meta", map[string]interface{}{})
	return c, rec
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) responseEnvelope {
	t.Helper()
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	return envelope
}

func TestAnalyticsHandlerTrendProgramScope(t *testing.T) {
	svc := &fakeAnalytics{
		cacheHit: true,
		series:   analytics.Series{MetricName: "Time", Unit: "ms", Points: []analytics.Point{{Date: "2025-09-01", Value: 1500}}},
	}
	handler := NewAnalyticsHandler(svc, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/overview/trend?metric=time&conceptId=dd&window=30d", nil)

	handler.Trend(c)

	require.Equal(t, http.StatusOK, rec.Code)
	require.Len(t, svc.params, 1)
	params := svc.params[0]
	assert.Equal(t, analytics.ProgramScope(), params.Scope)
	assert.Equal(t, analytics.MetricTime, params.Metric)
	assert.Equal(t, "dd", params.Concept)
	assert.Equal(t, 30*24*time.Hour, params.Window)

	envelope := decodeEnvelope(t, rec)
	var series analytics.Series
	require.NoError(t, json.Unmarshal(envelope.Data, &series))
	assert.Equal(t, "ms", series.Unit)
	assert.Len(t, series.Points, 1)
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Equal(t, map[string]interface{}{"kind": "program"}, envelope.Meta["scope"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")
}

func TestAnalyticsHandlerScopesFromRoute(t *testing.T) {
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)

	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/classes/c1/summary", gin.Params{{Key: "classId", Value: "c1"}})
	handler.Summary(c)
	require.Equal(t, http.StatusOK, rec.Code)

	c, rec = newAnalyticsContext(http.MethodGet, "/analytics/students/S1/concept-summary", gin.Params{{Key: "studentId", Value: "S1"}})
	handler.ConceptSummary(c)
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, svc.params, 2)
	assert.Equal(t, analytics.ClassScope("c1"), svc.params[0].Scope)
	assert.Equal(t, analytics.StudentScope("S1"), svc.params[1].Scope)
	assert.Equal(t, analytics.MetricAttempts, svc.params[0].Metric)
}

func TestAnalyticsHandlerProgressDispatch(t *testing.T) {
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)

	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/students/S1/progress", gin.Params{{Key: "studentId", Value: "S1"}})
	handler.Progress(c)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"completed":3,"total":45,"fraction":0.0667}`, string(envelope.Data))

	c, rec = newAnalyticsContext(http.MethodGet, "/analytics/classes/c1/progress", gin.Params{{Key: "classId", Value: "c1"}})
	handler.Progress(c)
	require.Equal(t, http.StatusOK, rec.Code)
	envelope = decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"avgFraction":0.25,"population":4}`, string(envelope.Data))

	assert.Equal(t, []string{"student-progress", "group-progress"}, svc.calls)
}

func TestAnalyticsHandlerConceptBarsModeAlias(t *testing.T) {
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/overview/concept-bars?mode=sv", nil)

	handler.ConceptBars(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "sv", svc.params[0].Concept)
}

func TestAnalyticsHandlerValidation(t *testing.T) {
	cases := []struct {
		name   string
		target string
	}{
		{name: "unknown metric", target: "/analytics/overview/trend?metric=speed"},
		{name: "bad window", target: "/analytics/overview/trend?window=fortnight"},
		{name: "overflowing window", target: "/analytics/overview/trend?window=200000d"},
		{name: "limit too large", target: "/analytics/overview/recent-attempts?limit=500"},
		{name: "limit not a number", target: "/analytics/overview/recent-attempts?limit=ten"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := &fakeAnalytics{}
			handler := NewAnalyticsHandler(svc, nil, nil)
			c, rec := newAnalyticsContext(http.MethodGet, tc.target, nil)

			if strings.Contains(tc.target, "recent-attempts") {
				handler.RecentAttempts(c)
			} else {
				handler.Trend(c)
			}

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Empty(t, svc.calls)
			envelope := decodeEnvelope(t, rec)
			require.NotNil(t, envelope.Error)
			assert.Equal(t, appErrors.ErrValidation.Code, envelope.Error.Code)
		})
	}
}

func TestAnalyticsHandlerRecentAttemptsLimit(t *testing.T) {
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/classes/c1/recent-attempts?limit=5", gin.Params{{Key: "classId", Value: "c1"}})

	handler.RecentAttempts(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 5, svc.params[0].Limit)
}

func TestAnalyticsHandlerServiceErrors(t *testing.T) {
	svc := &fakeAnalytics{err: appErrors.Clone(appErrors.ErrUnknownScope, `class "999" not found`)}
	handler := NewAnalyticsHandler(svc, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/classes/999/trend", gin.Params{{Key: "classId", Value: "999"}})

	handler.Trend(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	envelope := decodeEnvelope(t, rec)
	require.NotNil(t, envelope.Error)
	assert.Equal(t, "UNKNOWN_SCOPE", envelope.Error.Code)
}

func TestAnalyticsHandlerNilService(t *testing.T) {
	handler := NewAnalyticsHandler(nil, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/overview/summary", nil)

	handler.Summary(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestAnalyticsHandlerClassStudentsPagination(t *testing.T) {
	svc := &fakeAnalytics{performances: []analytics.StudentPerformance{
		{StudentID: "S1"}, {StudentID: "S2"}, {StudentID: "S3"},
	}}
	handler := NewAnalyticsHandler(svc, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/classes/c1/students?page=2&pageSize=2", gin.Params{{Key: "classId", Value: "c1"}})

	handler.ClassStudents(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	var rows []analytics.StudentPerformance
	require.NoError(t, json.Unmarshal(envelope.Data, &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "S3", rows[0].StudentID)
	require.NotNil(t, envelope.Pagination)
	assert.Equal(t, models.Pagination{Page: 2, PageSize: 2, TotalCount: 3}, *envelope.Pagination)
	assert.Equal(t, analytics.ClassScope("c1"), svc.params[0].Scope)
}

func TestPaginateBeyondLastPage(t *testing.T) {
	assert.Equal(t, []int{}, paginate([]int{1, 2}, 3, 2))
	assert.Equal(t, []int{1, 2}, paginate([]int{1, 2}, 1, 50))
}

func TestAnalyticsHandlerInvalidateCache(t *testing.T) {
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)

	c, rec := newAnalyticsContext(http.MethodPost, "/analytics/cache/invalidate", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/analytics/cache/invalidate", bytes.NewBufferString(`{"scope":"class","id":"c1"}`))
	c.Request.Header.Set("Content-Type", "application/json")
	handler.InvalidateCache(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"deleted":7}`, string(envelope.Data))

	c, rec = newAnalyticsContext(http.MethodPost, "/analytics/cache/invalidate", nil)
	handler.InvalidateCache(c)
	require.Equal(t, http.StatusOK, rec.Code)

	assert.Equal(t, []analytics.Scope{analytics.ClassScope("c1"), {}}, svc.invalidated)
}

func TestAnalyticsHandlerInvalidateCacheErrors(t *testing.T) {
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)
	c, rec := newAnalyticsContext(http.MethodPost, "/analytics/cache/invalidate", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/analytics/cache/invalidate", bytes.NewBufferString(`{"scope":"student"}`))
	handler.InvalidateCache(c)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, svc.invalidated)

	svc.invalidateErr = errors.New("redis down")
	c, rec = newAnalyticsContext(http.MethodPost, "/analytics/cache/invalidate", nil)
	handler.InvalidateCache(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

type fakeWarmer struct {
	scopes []analytics.Scope
	err    error
}

func (f *fakeWarmer) Warm(_ context.Context, scope analytics.Scope) (int, error) {
	f.scopes = append(f.scopes, scope)
	return 3, f.err
}

func TestAnalyticsHandlerInvalidateCacheWithWarmUp(t *testing.T) {
	svc := &fakeAnalytics{}
	warmer := &fakeWarmer{}
	handler := NewAnalyticsHandler(svc, warmer, nil)

	c, rec := newAnalyticsContext(http.MethodPost, "/analytics/cache/invalidate", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/analytics/cache/invalidate", bytes.NewBufferString(`{"warm":true}`))
	handler.InvalidateCache(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.JSONEq(t, `{"deleted":7,"warming":3}`, string(envelope.Data))
	assert.Equal(t, []analytics.Scope{{}}, warmer.scopes)

	warmer.err = errors.New("queue stopped")
	c, rec = newAnalyticsContext(http.MethodPost, "/analytics/cache/invalidate", nil)
	c.Request = httptest.NewRequest(http.MethodPost, "/analytics/cache/invalidate", bytes.NewBufferString(`{"scope":"class","id":"c1","warm":true}`))
	handler.InvalidateCache(c)
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestAnalyticsHandlerSystem(t *testing.T) {
	handler := NewAnalyticsHandler(&fakeAnalytics{}, nil, nil)
	c, rec := newAnalyticsContext(http.MethodGet, "/analytics/system", nil)

	handler.System(c)

	require.Equal(t, http.StatusOK, rec.Code)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	var snapshot models.AnalyticsSystemMetrics
	require.NoError(t, json.Unmarshal(envelope.Data, &snapshot))
	assert.Equal(t, uint64(2), snapshot.EngineComputeCount)
}

func TestAnalyticsHandlerThroughRouter(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := &fakeAnalytics{}
	handler := NewAnalyticsHandler(svc, nil, nil)
	router := gin.New()
	router.Use(middleware.WithResponseMeta())
	router.GET("/analytics/students/:studentId/trend", handler.Trend)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/analytics/students/S7/trend", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, analytics.StudentScope("S7"), svc.params[0].Scope)
	envelope := decodeEnvelope(t, rec)
	assert.Equal(t, map[string]interface{}{"kind": "student", "id": "S7"}, envelope.Meta["scope"])
}
