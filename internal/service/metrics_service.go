package service

import (
	"net/http"
	"runtime"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/noah-isme/kinemathika-api/internal/models"
)

const metricsNamespace = "kinemathika"

// MetricsService encapsulates Prometheus instrumentation and provides lightweight snapshots for API consumption.
type MetricsService struct {
	handler http.Handler

	requestDuration *prometheus.HistogramVec
	requestTotal    *prometheus.CounterVec
	cacheDuration   *prometheus.HistogramVec
	cacheLookups    *prometheus.CounterVec
	cacheHitRatio   prometheus.Gauge
	dbQueryDuration *prometheus.HistogramVec
	engineDuration  *prometheus.HistogramVec
	malformed       prometheus.Counter
	warmTasks       *prometheus.CounterVec

	requests  durationStat
	dbQueries durationStat
	engine    durationStat

	cacheHitCount  uint64
	cacheMissCount uint64
	malformedCount uint64
	warmOK         uint64
	warmFailed     uint64
}

// durationStat keeps a running count and total for snapshot averages.
type durationStat struct {
	count uint64
	total uint64
}

func (d *durationStat) add(duration time.Duration) {
	atomic.AddUint64(&d.count, 1)
	atomic.AddUint64(&d.total, uint64(duration.Nanoseconds()))
}

func (d *durationStat) load() (uint64, float64) {
	count := atomic.LoadUint64(&d.count)
	if count == 0 {
		return 0, 0
	}
	return count, float64(atomic.LoadUint64(&d.total)) / float64(count) / float64(time.Millisecond)
}

// NewMetricsService registers the collectors on a private registry.
func NewMetricsService() *MetricsService {
	m := &MetricsService{
		requestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "Duration of HTTP requests in seconds",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "path", "status"}),
		requestTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		}, []string{"method", "path", "status"}),
		cacheDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "cache_operation_duration_seconds",
			Help:      "Latency of analytics cache reads and writes",
			Buckets:   []float64{0.0005, 0.001, 0.0025, 0.005, 0.01, 0.025, 0.05, 0.1},
		}, []string{"operation"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "cache_lookups_total",
			Help:      "Analytics cache lookups by result",
		}, []string{"result"}),
		cacheHitRatio: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "cache_hit_ratio",
			Help:      "Ratio of cache hits to total cache lookups",
		}),
		dbQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "db_query_duration_seconds",
			Help:      "Duration of database queries",
			Buckets:   prometheus.DefBuckets,
		}, []string{"query"}),
		engineDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "analytics_compute_duration_seconds",
			Help:      "Duration of in-memory analytics aggregation",
			Buckets:   []float64{0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		}, []string{"operation", "scope"}),
		malformed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "analytics_malformed_records_total",
			Help:      "Attempt batches rejected because a record was malformed",
		}),
		warmTasks: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "analytics_warm_tasks_total",
			Help:      "Background cache warm-up tasks by result",
		}, []string{"result"}),
	}
	goroutines := prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      "goroutines",
		Help:      "Number of running goroutines",
	}, func() float64 {
		return float64(runtime.NumGoroutine())
	})

	registry := prometheus.NewRegistry()
	registry.MustRegister(
		m.requestDuration,
		m.requestTotal,
		m.cacheDuration,
		m.cacheLookups,
		m.cacheHitRatio,
		m.dbQueryDuration,
		m.engineDuration,
		m.malformed,
		m.warmTasks,
		goroutines,
	)
	m.handler = promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
	return m
}

// Handler exposes the Prometheus HTTP handler.
func (m *MetricsService) Handler() http.Handler {
	if m == nil {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		})
	}
	return m.handler
}

// ObserveHTTPRequest records request metrics and aggregates simple stats for snapshots.
func (m *MetricsService) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	labelStatus := strconv.Itoa(status)
	m.requestDuration.WithLabelValues(method, path, labelStatus).Observe(duration.Seconds())
	m.requestTotal.WithLabelValues(method, path, labelStatus).Inc()
	m.requests.add(duration)
}

// RecordCacheOperation records a cache lookup and refreshes the hit ratio.
func (m *MetricsService) RecordCacheOperation(hit bool, duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("get").Observe(duration.Seconds())
	result := "miss"
	if hit {
		result = "hit"
		atomic.AddUint64(&m.cacheHitCount, 1)
	} else {
		atomic.AddUint64(&m.cacheMissCount, 1)
	}
	m.cacheLookups.WithLabelValues(result).Inc()

	hits := atomic.LoadUint64(&m.cacheHitCount)
	total := hits + atomic.LoadUint64(&m.cacheMissCount)
	m.cacheHitRatio.Set(float64(hits) / float64(total))
}

// ObserveCacheWrite tracks the duration for cache write operations.
func (m *MetricsService) ObserveCacheWrite(duration time.Duration) {
	if m == nil {
		return
	}
	m.cacheDuration.WithLabelValues("set").Observe(duration.Seconds())
}

// ObserveDBQuery records database query timing.
func (m *MetricsService) ObserveDBQuery(label string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(label).Observe(duration.Seconds())
	m.dbQueries.add(duration)
}

// ObserveEngineCompute records the time spent aggregating one query.
func (m *MetricsService) ObserveEngineCompute(operation, scope string, duration time.Duration) {
	if m == nil {
		return
	}
	m.engineDuration.WithLabelValues(operation, scope).Observe(duration.Seconds())
	m.engine.add(duration)
}

// RecordMalformedRecord counts a rejected attempt batch.
func (m *MetricsService) RecordMalformedRecord() {
	if m == nil {
		return
	}
	m.malformed.Inc()
	atomic.AddUint64(&m.malformedCount, 1)
}

// RecordWarmTask counts a finished cache warm-up task.
func (m *MetricsService) RecordWarmTask(ok bool) {
	if m == nil {
		return
	}
	if ok {
		m.warmTasks.WithLabelValues("ok").Inc()
		atomic.AddUint64(&m.warmOK, 1)
		return
	}
	m.warmTasks.WithLabelValues("error").Inc()
	atomic.AddUint64(&m.warmFailed, 1)
}

// Snapshot returns aggregated metrics suitable for analytics endpoints.
func (m *MetricsService) Snapshot() models.AnalyticsSystemMetrics {
	if m == nil {
		return models.AnalyticsSystemMetrics{}
	}
	hits := atomic.LoadUint64(&m.cacheHitCount)
	misses := atomic.LoadUint64(&m.cacheMissCount)
	var cacheRatio float64
	if hits+misses > 0 {
		cacheRatio = float64(hits) / float64(hits+misses)
	}
	requests, avgRequestMs := m.requests.load()
	dbCount, avgDBMs := m.dbQueries.load()
	engineCount, avgEngineMs := m.engine.load()

	return models.AnalyticsSystemMetrics{
		CacheHitRatio:            cacheRatio,
		CacheHits:                hits,
		CacheMisses:              misses,
		RequestsTotal:            requests,
		AverageRequestDurationMs: avgRequestMs,
		DBQueryCount:             dbCount,
		AverageDBQueryDurationMs: avgDBMs,
		EngineComputeCount:       engineCount,
		AverageEngineComputeMs:   avgEngineMs,
		MalformedRecords:         atomic.LoadUint64(&m.malformedCount),
		WarmTasksCompleted:       atomic.LoadUint64(&m.warmOK),
		WarmTasksFailed:          atomic.LoadUint64(&m.warmFailed),
		Goroutines:               runtime.NumGoroutine(),
		GeneratedAt:              time.Now().UTC(),
	}
}
