package models

import "time"

// AnalyticsSystemMetrics is the instrumentation snapshot served by the system endpoint.
type AnalyticsSystemMetrics struct {
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	RequestsTotal            uint64    `json:"requests_total"`
	AverageRequestDurationMs float64   `json:"average_request_duration_ms"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMs float64   `json:"average_db_query_duration_ms"`
	EngineComputeCount       uint64    `json:"engine_compute_count"`
	AverageEngineComputeMs   float64   `json:"average_engine_compute_ms"`
	MalformedRecords         uint64    `json:"malformed_records"`
	WarmTasksCompleted       uint64    `json:"warm_tasks_completed"`
	WarmTasksFailed          uint64    `json:"warm_tasks_failed"`
	Goroutines               int       `json:"goroutines"`
	GeneratedAt              time.Time `json:"generated_at"`
}
