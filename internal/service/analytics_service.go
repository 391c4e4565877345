package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"github.com/noah-isme/kinemathika-api/internal/analytics"
	"github.com/noah-isme/kinemathika-api/internal/models"
	appErrors "github.com/noah-isme/kinemathika-api/pkg/errors"
	"github.com/noah-isme/kinemathika-api/pkg/middleware/requestid"
	"github.com/noah-isme/kinemathika-api/pkg/tracing"
)

const analyticsCachePrefix = "analytics"

// AttemptReader loads persisted attempts.
type AttemptReader interface {
	List(ctx context.Context, filter models.AttemptFilter) ([]models.AttemptRecord, error)
}

// ClassReader lists classrooms.
type ClassReader interface {
	List(ctx context.Context) ([]models.Class, error)
}

// EnrollmentReader loads class membership.
type EnrollmentReader interface {
	ListAll(ctx context.Context) ([]models.Enrollment, error)
}

// StudentReader loads student identities.
type StudentReader interface {
	Exists(ctx context.Context, id string) (bool, error)
	ListByIDs(ctx context.Context, ids []string) ([]models.Student, error)
}

// AnalyticsParams describes one dashboard query.
type AnalyticsParams struct {
	Scope   analytics.Scope
	Concept string
	Window  time.Duration
	Metric  analytics.Metric
	Limit   int
}

// AnalyticsService loads attempts and roster data for a scope and runs the aggregation
// engine over them. Roster data is read on every call; computed results may be cached.
type AnalyticsService struct {
	engine      *analytics.Engine
	attempts    AttemptReader
	classes     ClassReader
	enrollments EnrollmentReader
	students    StudentReader
	cache       *CacheService
	metrics     *MetricsService
	logger      *zap.Logger
	now         func() time.Time
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(engine *analytics.Engine, attempts AttemptReader, classes ClassReader, enrollments EnrollmentReader, students StudentReader, cache *CacheService, metrics *MetricsService, logger *zap.Logger) *AnalyticsService {
	if engine == nil {
		engine = analytics.NewEngine(nil, analytics.Config{})
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		engine:      engine,
		attempts:    attempts,
		classes:     classes,
		enrollments: enrollments,
		students:    students,
		cache:       cache,
		metrics:     metrics,
		logger:      logger,
		now:         time.Now,
	}
}

// Catalog exposes the concept catalog used by the engine.
func (s *AnalyticsService) Catalog() *analytics.Catalog {
	return s.engine.Catalog()
}

// Trend returns the per-day series for the requested metric.
func (s *AnalyticsService) Trend(ctx context.Context, params AnalyticsParams) (analytics.Series, bool, error) {
	return runAnalytics(ctx, s, "trend", params, func(_ context.Context, scoped *analytics.Scoped) (analytics.Series, error) {
		return s.engine.Trend(scoped, params.Metric), nil
	})
}

// ConceptSummary returns the average attempts and time tiles.
func (s *AnalyticsService) ConceptSummary(ctx context.Context, params AnalyticsParams) (analytics.ConceptSummary, bool, error) {
	return runAnalytics(ctx, s, "concept_summary", params, func(_ context.Context, scoped *analytics.Scoped) (analytics.ConceptSummary, error) {
		return s.engine.ConceptSummary(scoped), nil
	})
}

// ConceptBars returns the accuracy bars in catalog order.
func (s *AnalyticsService) ConceptBars(ctx context.Context, params AnalyticsParams) ([]analytics.Bar, bool, error) {
	return runAnalytics(ctx, s, "concept_bars", params, func(_ context.Context, scoped *analytics.Scoped) ([]analytics.Bar, error) {
		return s.engine.ConceptBars(scoped), nil
	})
}

// StudentProgress returns the completion donut of a single student.
func (s *AnalyticsService) StudentProgress(ctx context.Context, params AnalyticsParams) (analytics.StudentProgress, bool, error) {
	return runAnalytics(ctx, s, "student_progress", params, func(_ context.Context, scoped *analytics.Scoped) (analytics.StudentProgress, error) {
		return s.engine.StudentProgress(scoped), nil
	})
}

// GroupProgress returns the mean completion of a class or the whole program.
func (s *AnalyticsService) GroupProgress(ctx context.Context, params AnalyticsParams) (analytics.GroupProgress, bool, error) {
	return runAnalytics(ctx, s, "group_progress", params, func(_ context.Context, scoped *analytics.Scoped) (analytics.GroupProgress, error) {
		return s.engine.GroupProgress(scoped), nil
	})
}

// Summary returns the overview tiles of a scope.
func (s *AnalyticsService) Summary(ctx context.Context, params AnalyticsParams) (analytics.Summary, bool, error) {
	return runAnalytics(ctx, s, "summary", params, func(_ context.Context, scoped *analytics.Scoped) (analytics.Summary, error) {
		return s.engine.Summary(scoped), nil
	})
}

// RecentAttempts returns the newest attempts of a scope.
func (s *AnalyticsService) RecentAttempts(ctx context.Context, params AnalyticsParams) ([]analytics.RecentAttempt, bool, error) {
	return runAnalytics(ctx, s, "recent_attempts", params, func(_ context.Context, scoped *analytics.Scoped) ([]analytics.RecentAttempt, error) {
		return s.engine.RecentAttempts(scoped, params.Limit), nil
	})
}

// StudentPerformances returns one performance row per student of the scope.
func (s *AnalyticsService) StudentPerformances(ctx context.Context, params AnalyticsParams) ([]analytics.StudentPerformance, bool, error) {
	return runAnalytics(ctx, s, "student_performances", params, func(ctx context.Context, scoped *analytics.Scoped) ([]analytics.StudentPerformance, error) {
		info, err := s.studentInfo(ctx, scoped.StudentIDs)
		if err != nil {
			return nil, err
		}
		return s.engine.StudentPerformances(scoped, info), nil
	})
}

// InvalidateCache drops cached results. A zero scope clears every analytics entry.
func (s *AnalyticsService) InvalidateCache(ctx context.Context, scope analytics.Scope) (int, error) {
	pattern := analyticsCachePrefix + ":*"
	if scope.Kind != "" {
		pattern = fmt.Sprintf("%s:*:%s:%s:*", analyticsCachePrefix, scope.Kind, cacheKeyPart(scope.ID))
	}
	return s.cache.Invalidate(ctx, pattern)
}

// SystemMetrics returns the instrumentation snapshot.
func (s *AnalyticsService) SystemMetrics() models.AnalyticsSystemMetrics {
	return s.metrics.Snapshot()
}

type preparedQuery struct {
	roster   analytics.Roster
	query    analytics.Query
	students []string
}

func runAnalytics[T any](ctx context.Context, s *AnalyticsService, op string, params AnalyticsParams, compute func(context.Context, *analytics.Scoped) (T, error)) (T, bool, error) {
	var zero T
	ctx, span := tracing.Tracer().Start(ctx, "analytics."+op, trace.WithAttributes(
		attribute.String("analytics.scope.kind", string(params.Scope.Kind)),
		attribute.String("analytics.scope.id", params.Scope.ID),
		attribute.String("analytics.concept", params.Concept),
	))
	defer span.End()

	fail := func(err error) (T, bool, error) {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return zero, false, err
	}

	prepared, err := s.prepare(ctx, params)
	if err != nil {
		return fail(err)
	}

	key := s.cacheKey(op, params, prepared.roster, prepared.students)
	var cached T
	if s.cache.Get(ctx, key, &cached) {
		span.SetAttributes(attribute.Bool("analytics.cache_hit", true))
		return cached, true, nil
	}

	scoped, err := s.resolve(ctx, prepared)
	if err != nil {
		return fail(err)
	}

	start := time.Now()
	result, err := compute(ctx, scoped)
	if err != nil {
		return fail(err)
	}
	elapsed := time.Since(start)
	s.metrics.ObserveEngineCompute(op, string(params.Scope.Kind), elapsed)
	span.SetAttributes(
		attribute.Int("analytics.attempts", len(scoped.Attempts)),
		attribute.Int("analytics.population", len(scoped.StudentIDs)),
	)
	s.logger.Debug("analytics computed",
		zap.String("request_id", requestid.FromContext(ctx)),
		zap.String("operation", op),
		zap.String("scope", string(params.Scope.Kind)),
		zap.String("scope_id", params.Scope.ID),
		zap.Int("attempts", len(scoped.Attempts)),
		zap.Duration("elapsed", elapsed),
	)

	s.cache.Set(ctx, key, result, 0)
	return result, false, nil
}

func (s *AnalyticsService) prepare(ctx context.Context, params AnalyticsParams) (*preparedQuery, error) {
	roster, err := s.loadRoster(ctx, params.Scope)
	if err != nil {
		return nil, err
	}
	students, err := s.engine.Students(roster, params.Scope)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return &preparedQuery{
		roster:   roster,
		students: students,
		query: analytics.Query{
			Scope:   params.Scope,
			Concept: params.Concept,
			Window:  params.Window,
			Now:     s.now(),
		},
	}, nil
}

func (s *AnalyticsService) loadRoster(ctx context.Context, scope analytics.Scope) (analytics.Roster, error) {
	start := time.Now()
	defer func() { s.metrics.ObserveDBQuery("analytics_roster", time.Since(start)) }()

	classes, err := s.classes.List(ctx)
	if err != nil {
		return analytics.Roster{}, fmt.Errorf("load classes: %w", err)
	}
	enrollments, err := s.enrollments.ListAll(ctx)
	if err != nil {
		return analytics.Roster{}, fmt.Errorf("load enrollments: %w", err)
	}

	roster := analytics.Roster{
		Classrooms:  make([]analytics.Classroom, 0, len(classes)),
		Enrollments: make([]analytics.Enrollment, 0, len(enrollments)),
	}
	for _, class := range classes {
		roster.Classrooms = append(roster.Classrooms, analytics.Classroom{ID: class.ID, Name: class.Name, Archived: class.IsArchived})
	}
	for _, enrollment := range enrollments {
		roster.Enrollments = append(roster.Enrollments, analytics.Enrollment{StudentID: enrollment.StudentID, ClassID: enrollment.ClassID})
	}

	if scope.Kind == analytics.ScopeStudent && scope.ID != "" {
		exists, err := s.students.Exists(ctx, scope.ID)
		if err != nil {
			return analytics.Roster{}, fmt.Errorf("load student: %w", err)
		}
		if exists {
			roster.Students = []string{scope.ID}
		}
	}
	return roster, nil
}

func (s *AnalyticsService) resolve(ctx context.Context, prepared *preparedQuery) (*analytics.Scoped, error) {
	var records []models.AttemptRecord
	if prepared.query.Window >= 0 {
		filter := models.AttemptFilter{
			StudentIDs: prepared.students,
			Since:      s.engine.Since(prepared.query),
		}
		if prepared.query.Scope.Kind == analytics.ScopeClass {
			filter.ClassID = prepared.query.Scope.ID
		}
		start := time.Now()
		var err error
		records, err = s.attempts.List(ctx, filter)
		if err != nil {
			return nil, fmt.Errorf("load attempts: %w", err)
		}
		s.metrics.ObserveDBQuery("analytics_attempts", time.Since(start))
	}

	attempts, err := s.engine.Normalize(toRawAttempts(records))
	if err != nil {
		s.metrics.RecordMalformedRecord()
		s.logger.Error("rejecting attempt batch",
			zap.String("request_id", requestid.FromContext(ctx)),
			zap.String("scope", string(prepared.query.Scope.Kind)),
			zap.String("scope_id", prepared.query.Scope.ID),
			zap.Error(err),
		)
		return nil, mapEngineError(err)
	}

	scoped, err := s.engine.Resolve(analytics.Dataset{Attempts: attempts, Roster: prepared.roster}, prepared.query)
	if err != nil {
		return nil, mapEngineError(err)
	}
	return scoped, nil
}

func (s *AnalyticsService) studentInfo(ctx context.Context, ids []string) (map[string]analytics.StudentInfo, error) {
	start := time.Now()
	students, err := s.students.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load students: %w", err)
	}
	s.metrics.ObserveDBQuery("analytics_students", time.Since(start))

	info := make(map[string]analytics.StudentInfo, len(students))
	for _, student := range students {
		info[student.ID] = analytics.StudentInfo{ID: student.ID, Name: student.Name, Email: student.Email}
	}
	return info, nil
}

// cacheKey lays parts out positionally so InvalidateCache can match on scope.
// The trailing fingerprint keeps roster changes from serving stale results.
func (s *AnalyticsService) cacheKey(op string, params AnalyticsParams, roster analytics.Roster, students []string) string {
	parts := []string{
		analyticsCachePrefix,
		op,
		string(params.Scope.Kind),
		cacheKeyPart(params.Scope.ID),
		cacheKeyPart(s.engine.Catalog().NormalizeFilter(params.Concept)),
		cacheKeyPart(windowKey(params.Window)),
		cacheKeyPart(string(params.Metric)),
		strconv.Itoa(params.Limit),
		strconv.FormatUint(rosterFingerprint(roster, students), 16),
	}
	return strings.Join(parts, ":")
}

// rosterFingerprint hashes the resolved population, every classroom with its archive
// flag and every enrollment. Classrooms and enrollments are sorted first.
func rosterFingerprint(roster analytics.Roster, students []string) uint64 {
	classrooms := make([]string, 0, len(roster.Classrooms))
	for _, class := range roster.Classrooms {
		state := "active"
		if class.Archived {
			state = "archived"
		}
		classrooms = append(classrooms, class.ID+"\x00"+state)
	}
	sort.Strings(classrooms)
	enrollments := make([]string, 0, len(roster.Enrollments))
	for _, enrollment := range roster.Enrollments {
		enrollments = append(enrollments, enrollment.ClassID+"\x00"+enrollment.StudentID)
	}
	sort.Strings(enrollments)

	digest := xxhash.New()
	for _, section := range [][]string{students, classrooms, enrollments} {
		for _, value := range section {
			_, _ = digest.WriteString(value)
			_, _ = digest.Write([]byte{0})
		}
		_, _ = digest.Write([]byte{1})
	}
	return digest.Sum64()
}

func windowKey(window time.Duration) string {
	if window == 0 {
		return ""
	}
	return window.String()
}

func cacheKeyPart(part string) string {
	if part == "" {
		return "-"
	}
	return strings.NewReplacer(":", "|", "*", "_", "?", "_", "[", "_", "]", "_").Replace(part)
}

func toRawAttempts(records []models.AttemptRecord) []analytics.RawAttempt {
	raws := make([]analytics.RawAttempt, 0, len(records))
	for _, record := range records {
		raw := analytics.RawAttempt{
			SessionID:         record.SessionID,
			StudentID:         record.StudentID,
			ConceptID:         record.ConceptID,
			ProblemNo:         record.ProblemNo,
			AttemptsToCorrect: record.AttemptsToCorrect,
			TimeToCorrectMs:   record.TimeToCorrectMs,
			EndedAt:           record.EndedAt,
			EndedStatus:       record.EndedStatus,
		}
		if record.ClassID != nil {
			raw.ClassID = *record.ClassID
		}
		raws = append(raws, raw)
	}
	return raws
}

func mapEngineError(err error) error {
	var unknown *analytics.UnknownScopeError
	if errors.As(err, &unknown) {
		message := fmt.Sprintf("%s %q not found", unknown.Scope.Kind, unknown.Scope.ID)
		return appErrors.Wrap(err, appErrors.ErrUnknownScope.Code, appErrors.ErrUnknownScope.Status, message)
	}
	var malformed *analytics.MalformedRecordError
	if errors.As(err, &malformed) {
		return appErrors.Wrap(err, appErrors.ErrMalformedRecord.Code, appErrors.ErrMalformedRecord.Status, appErrors.ErrMalformedRecord.Message)
	}
	return err
}
