package handler

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/noah-isme/kinemathika-api/internal/analytics"
	"github.com/noah-isme/kinemathika-api/internal/dto"
	"github.com/noah-isme/kinemathika-api/internal/middleware"
	"github.com/noah-isme/kinemathika-api/internal/models"
	"github.com/noah-isme/kinemathika-api/internal/service"
	appErrors "github.com/noah-isme/kinemathika-api/pkg/errors"
	"github.com/noah-isme/kinemathika-api/pkg/response"
)

const (
	defaultStudentPageSize = 50
)

// AnalyticsProvider is the analytics surface consumed by the dashboard endpoints.
type AnalyticsProvider interface {
	Trend(ctx context.Context, params service.AnalyticsParams) (analytics.Series, bool, error)
	ConceptSummary(ctx context.Context, params service.AnalyticsParams) (analytics.ConceptSummary, bool, error)
	ConceptBars(ctx context.Context, params service.AnalyticsParams) ([]analytics.Bar, bool, error)
	StudentProgress(ctx context.Context, params service.AnalyticsParams) (analytics.StudentProgress, bool, error)
	GroupProgress(ctx context.Context, params service.AnalyticsParams) (analytics.GroupProgress, bool, error)
	Summary(ctx context.Context, params service.AnalyticsParams) (analytics.Summary, bool, error)
	RecentAttempts(ctx context.Context, params service.AnalyticsParams) ([]analytics.RecentAttempt, bool, error)
	StudentPerformances(ctx context.Context, params service.AnalyticsParams) ([]analytics.StudentPerformance, bool, error)
	InvalidateCache(ctx context.Context, scope analytics.Scope) (int, error)
	SystemMetrics() models.AnalyticsSystemMetrics
}

// ScopeWarmer schedules background recomputation of a scope.
type ScopeWarmer interface {
	Warm(ctx context.Context, scope analytics.Scope) (int, error)
}

// AnalyticsHandler exposes dashboard-ready analytics endpoints. The scope of every
// request comes from the route: no parameter means the whole program, :classId a
// class and :studentId a single student.
type AnalyticsHandler struct {
	analytics AnalyticsProvider
	warmer    ScopeWarmer
	validator *validator.Validate
}

// NewAnalyticsHandler constructs the analytics handler. The warmer is optional.
func NewAnalyticsHandler(analytics AnalyticsProvider, warmer ScopeWarmer, validate *validator.Validate) *AnalyticsHandler {
	if validate == nil {
		validate = validator.New()
	}
	return &AnalyticsHandler{analytics: analytics, warmer: warmer, validator: validate}
}

// Trend godoc
// @Summary Daily metric trend
// @Tags Analytics
// @Produce json
// @Param metric query string false "Attempts or Time"
// @Param conceptId query string false "Concept code"
// @Param window query string false "Lookback window, e.g. 30d or 72h"
// @Success 200 {object} response.Envelope
// @Router /analytics/overview/trend [get]
func (h *AnalyticsHandler) Trend(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	params, err := h.parseParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	series, cacheHit, err := h.analytics.Trend(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, series, nil, cacheHit, params.Scope)
}

// ConceptSummary returns the average attempts and time tiles.
func (h *AnalyticsHandler) ConceptSummary(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	params, err := h.parseParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.analytics.ConceptSummary(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, summary, nil, cacheHit, params.Scope)
}

// ConceptBars returns the concept accuracy chart. The mode query parameter is an alias for conceptId.
func (h *AnalyticsHandler) ConceptBars(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	params, err := h.parseParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	bars, cacheHit, err := h.analytics.ConceptBars(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, bars, nil, cacheHit, params.Scope)
}

// Progress returns the donut payload: per-student progress for student routes and
// mean progress otherwise.
func (h *AnalyticsHandler) Progress(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	params, err := h.parseParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	var (
		data     interface{}
		cacheHit bool
	)
	if params.Scope.Kind == analytics.ScopeStudent {
		data, cacheHit, err = h.analytics.StudentProgress(c.Request.Context(), params)
	} else {
		data, cacheHit, err = h.analytics.GroupProgress(c.Request.Context(), params)
	}
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, data, nil, cacheHit, params.Scope)
}

// Summary returns the overview tiles of the scope.
func (h *AnalyticsHandler) Summary(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	params, err := h.parseParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	summary, cacheHit, err := h.analytics.Summary(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, summary, nil, cacheHit, params.Scope)
}

// RecentAttempts godoc
// @Summary Most recent attempts
// @Tags Analytics
// @Produce json
// @Param limit query int false "Maximum rows (1-100)"
// @Success 200 {object} response.Envelope
// @Router /analytics/classes/{classId}/recent-attempts [get]
func (h *AnalyticsHandler) RecentAttempts(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	params, err := h.parseParams(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	rows, cacheHit, err := h.analytics.RecentAttempts(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	respond(c, start, rows, nil, cacheHit, params.Scope)
}

// ClassStudents godoc
// @Summary Per-student performance table of a class
// @Tags Analytics
// @Produce json
// @Param classId path string true "Class ID"
// @Param page query int false "Page number"
// @Param pageSize query int false "Page size (max 200)"
// @Success 200 {object} response.Envelope
// @Router /analytics/classes/{classId}/students [get]
func (h *AnalyticsHandler) ClassStudents(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var query dto.StudentListQuery
	if err := h.bindQuery(c, &query); err != nil {
		response.Error(c, err)
		return
	}
	params, err := toParams(scopeFromRoute(c), query.AnalyticsQuery)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	rows, cacheHit, err := h.analytics.StudentPerformances(c.Request.Context(), params)
	if err != nil {
		response.Error(c, err)
		return
	}
	page, pageSize := query.Page, query.PageSize
	if page <= 0 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = defaultStudentPageSize
	}
	pagination := &models.Pagination{Page: page, PageSize: pageSize, TotalCount: len(rows)}
	respond(c, start, paginate(rows, page, pageSize), pagination, cacheHit, params.Scope)
}

// InvalidateCache drops cached analytics. The body may narrow the flush to one scope and
// ask for the scope to be recomputed in the background.
func (h *AnalyticsHandler) InvalidateCache(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	var req dto.CacheInvalidateRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, appErrors.Clone(appErrors.ErrValidation, "invalid request body"))
			return
		}
	}
	if err := h.validator.Struct(req); err != nil {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, err.Error()))
		return
	}
	var scope analytics.Scope
	if req.Scope != "" {
		scope = analytics.Scope{Kind: analytics.ScopeKind(req.Scope), ID: strings.TrimSpace(req.ID)}
	}
	deleted, err := h.analytics.InvalidateCache(c.Request.Context(), scope)
	if err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "cache invalidation failed"))
		return
	}
	result := dto.CacheInvalidateResponse{Deleted: deleted}
	if req.Warm && h.warmer != nil {
		warming, err := h.warmer.Warm(c.Request.Context(), scope)
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrUnavailable.Code, appErrors.ErrUnavailable.Status, "cache warm-up could not be scheduled"))
			return
		}
		result.Warming = warming
	}
	response.JSON(c, http.StatusOK, result, nil)
}

// System returns instrumentation metrics snapshots.
func (h *AnalyticsHandler) System(c *gin.Context) {
	if h.analytics == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	start := time.Now()
	metrics := h.analytics.SystemMetrics()
	middleware.SetCacheHit(c, false)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, metrics, nil, meta)
}

func (h *AnalyticsHandler) parseParams(c *gin.Context) (service.AnalyticsParams, error) {
	var query dto.AnalyticsQuery
	if err := h.bindQuery(c, &query); err != nil {
		return service.AnalyticsParams{}, err
	}
	return toParams(scopeFromRoute(c), query)
}

func (h *AnalyticsHandler) bindQuery(c *gin.Context, dest interface{}) error {
	if err := c.ShouldBindQuery(dest); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, "invalid query parameters")
	}
	if err := h.validator.Struct(dest); err != nil {
		return appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return nil
}

func toParams(scope analytics.Scope, query dto.AnalyticsQuery) (service.AnalyticsParams, error) {
	metric, ok := analytics.ParseMetric(query.Metric)
	if !ok {
		return service.AnalyticsParams{}, appErrors.Clone(appErrors.ErrValidation, "metric must be Attempts or Time")
	}
	window, err := dto.ParseWindow(query.Window)
	if err != nil {
		return service.AnalyticsParams{}, appErrors.Clone(appErrors.ErrValidation, err.Error())
	}
	return service.AnalyticsParams{
		Scope:   scope,
		Concept: query.Concept(),
		Window:  window,
		Metric:  metric,
		Limit:   query.Limit,
	}, nil
}

func scopeFromRoute(c *gin.Context) analytics.Scope {
	if id, ok := c.Params.Get("classId"); ok {
		return analytics.ClassScope(id)
	}
	if id, ok := c.Params.Get("studentId"); ok {
		return analytics.StudentScope(id)
	}
	return analytics.ProgramScope()
}

func paginate[T any](rows []T, page, pageSize int) []T {
	offset := (page - 1) * pageSize
	if offset >= len(rows) {
		return []T{}
	}
	end := offset + pageSize
	if end > len(rows) {
		end = len(rows)
	}
	return rows[offset:end]
}

func respond(c *gin.Context, start time.Time, data interface{}, pagination *models.Pagination, cacheHit bool, scope analytics.Scope) {
	middleware.SetCacheHit(c, cacheHit)
	middleware.SetScope(c, string(scope.Kind), scope.ID)
	meta := middleware.ExtractMeta(c)
	if meta == nil {
		meta = make(map[string]interface{})
	}
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, data, pagination, meta)
}
