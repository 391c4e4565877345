package service

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/noah-isme/kinemathika-api/internal/analytics"
	"github.com/noah-isme/kinemathika-api/pkg/jobs"
)

// WarmTarget is the analytics surface recomputed when warming a scope.
type WarmTarget interface {
	Summary(ctx context.Context, params AnalyticsParams) (analytics.Summary, bool, error)
	Trend(ctx context.Context, params AnalyticsParams) (analytics.Series, bool, error)
	GroupProgress(ctx context.Context, params AnalyticsParams) (analytics.GroupProgress, bool, error)
	StudentProgress(ctx context.Context, params AnalyticsParams) (analytics.StudentProgress, bool, error)
}

// CacheWarmer recomputes the default dashboard tiles of a scope in the background so the
// next dashboard load after an invalidation is served from cache.
type CacheWarmer struct {
	target  WarmTarget
	classes ClassReader
	queue   *jobs.Queue[analytics.Scope]
	metrics *MetricsService
	logger  *zap.Logger
}

// NewCacheWarmer constructs a warmer backed by a worker queue. metrics may be nil.
func NewCacheWarmer(target WarmTarget, classes ClassReader, metrics *MetricsService, cfg jobs.Config) *CacheWarmer {
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	w := &CacheWarmer{target: target, classes: classes, metrics: metrics, logger: cfg.Logger}
	w.queue = jobs.New("analytics-warm", w.warmScope, cfg)
	return w
}

// Start launches the warm workers.
func (w *CacheWarmer) Start(ctx context.Context) {
	w.queue.Start(ctx)
}

// Stop waits for in-flight warm tasks to finish.
func (w *CacheWarmer) Stop() {
	w.queue.Stop()
}

// Warm schedules recomputation for a scope and returns the number of tasks enqueued.
// A zero or program scope also warms every active class.
func (w *CacheWarmer) Warm(ctx context.Context, scope analytics.Scope) (int, error) {
	scopes := []analytics.Scope{scope}
	if scope.Kind == "" || scope.Kind == analytics.ScopeProgram {
		classes, err := w.classes.List(ctx)
		if err != nil {
			return 0, fmt.Errorf("list classes for warm-up: %w", err)
		}
		scopes = []analytics.Scope{analytics.ProgramScope()}
		for _, class := range classes {
			if !class.IsArchived {
				scopes = append(scopes, analytics.ClassScope(class.ID))
			}
		}
	}

	enqueued := 0
	for _, s := range scopes {
		ok, err := w.queue.Enqueue(ctx, jobs.Task[analytics.Scope]{Key: fmt.Sprintf("%s:%s", s.Kind, s.ID), Payload: s})
		if err != nil {
			return enqueued, err
		}
		if ok {
			enqueued++
		}
	}
	return enqueued, nil
}

func (w *CacheWarmer) warmScope(ctx context.Context, task jobs.Task[analytics.Scope]) error {
	err := w.recompute(ctx, task)
	w.metrics.RecordWarmTask(err == nil)
	if errors.Is(err, analytics.ErrUnknownScope) {
		return jobs.Permanent(err)
	}
	return err
}

func (w *CacheWarmer) recompute(ctx context.Context, task jobs.Task[analytics.Scope]) error {
	// Same defaults as a dashboard request without query parameters, so the cache keys match.
	params := AnalyticsParams{Scope: task.Payload, Metric: analytics.MetricAttempts}
	if _, _, err := w.target.Summary(ctx, params); err != nil {
		return err
	}
	for _, metric := range []analytics.Metric{analytics.MetricAttempts, analytics.MetricTime} {
		params.Metric = metric
		if _, _, err := w.target.Trend(ctx, params); err != nil {
			return err
		}
	}
	params.Metric = analytics.MetricAttempts
	var err error
	if task.Payload.Kind == analytics.ScopeStudent {
		_, _, err = w.target.StudentProgress(ctx, params)
	} else {
		_, _, err = w.target.GroupProgress(ctx, params)
	}
	if err != nil {
		return err
	}
	w.logger.Debug("analytics scope warmed",
		zap.String("scope", string(task.Payload.Kind)),
		zap.String("id", task.Payload.ID),
		zap.Int("attempt", task.Attempt),
	)
	return nil
}
