package dto

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// AnalyticsQuery captures the query string accepted by the dashboard analytics endpoints.
type AnalyticsQuery struct {
	Metric    string `form:"metric" validate:"omitempty,max=32"`
	ConceptID string `form:"conceptId" validate:"omitempty,max=64"`
	Mode      string `form:"mode" validate:"omitempty,max=64"`
	Window    string `form:"window" validate:"omitempty,max=16"`
	Limit     int    `form:"limit" validate:"omitempty,min=1,max=100"`
}

// Concept returns the concept filter; mode is accepted as an alias used by the bar chart.
func (q AnalyticsQuery) Concept() string {
	if strings.TrimSpace(q.ConceptID) != "" {
		return q.ConceptID
	}
	return q.Mode
}

// StudentListQuery paginates the per-student performance table.
type StudentListQuery struct {
	AnalyticsQuery
	Page     int `form:"page" validate:"omitempty,min=1"`
	PageSize int `form:"pageSize" validate:"omitempty,min=1,max=200"`
}

// ClassReportQuery selects the export format and window of a class report.
type ClassReportQuery struct {
	Format string `form:"format" validate:"omitempty,oneof=csv pdf CSV PDF"`
	Window string `form:"window" validate:"omitempty,max=16"`
}

// CacheInvalidateRequest scopes a cache flush. An empty scope flushes everything.
type CacheInvalidateRequest struct {
	Scope string `json:"scope" validate:"omitempty,oneof=program class student"`
	ID    string `json:"id" validate:"required_if=Scope class,required_if=Scope student,max=64"`
	Warm  bool   `json:"warm"`
}

// CacheInvalidateResponse reports how many cached entries were dropped.
type CacheInvalidateResponse struct {
	Deleted int `json:"deleted"`
	Warming int `json:"warming,omitempty"`
}

const day = 24 * time.Hour

// maxWindowDays is the longest whole-day window a time.Duration can hold.
const maxWindowDays = int64(math.MaxInt64 / day)

// ParseWindow accepts Go durations ("72h") and whole days ("30d"). Empty means the default window.
func ParseWindow(raw string) (time.Duration, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return 0, nil
	}
	if days, ok := strings.CutSuffix(raw, "d"); ok {
		n, err := strconv.ParseInt(days, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("invalid window %q", raw)
		}
		if n > maxWindowDays || n < -maxWindowDays {
			return 0, fmt.Errorf("window %q exceeds %d days", raw, maxWindowDays)
		}
		return time.Duration(n) * day, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid window %q", raw)
	}
	return d, nil
}
