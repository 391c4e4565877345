package analytics

import (
	"sort"
	"strings"
)

// Metric selects the value plotted by a trend series.
type Metric string

// Supported trend metrics.
const (
	MetricAttempts Metric = "Attempts"
	MetricTime     Metric = "Time"
)

const dateLayout = "2006-01-02"

// ParseMetric accepts the metric names used by the dashboard, case-insensitively.
// An empty value selects attempts.
func ParseMetric(raw string) (Metric, bool) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "attempts", "attemptstocorrect":
		return MetricAttempts, true
	case "time", "timems", "timetocorrectms":
		return MetricTime, true
	default:
		return "", false
	}
}

// Unit names the measurement unit of the metric's values.
func (m Metric) Unit() string {
	if m == MetricTime {
		return "ms"
	}
	return "attempts"
}

// Point is one day of a trend series.
type Point struct {
	Date  string  `json:"date"`
	Value float64 `json:"value"`
}

// Series is a chart-ready trend.
type Series struct {
	MetricName string  `json:"metricName"`
	Unit       string  `json:"unit"`
	Points     []Point `json:"points"`
}

// Trend buckets attempts by UTC calendar day and averages the metric per day.
// Days without attempts are omitted.
func Trend(attempts []Attempt, metric Metric) []Point {
	type bucket struct {
		sum   float64
		count int
	}
	buckets := make(map[string]*bucket)
	for _, a := range attempts {
		day := a.EndedAt.UTC().Format(dateLayout)
		b, ok := buckets[day]
		if !ok {
			b = &bucket{}
			buckets[day] = b
		}
		if metric == MetricTime {
			b.sum += float64(a.TimeToCorrectMs)
		} else {
			b.sum += float64(a.AttemptsToCorrect)
		}
		b.count++
	}

	points := make([]Point, 0, len(buckets))
	for day, b := range buckets {
		points = append(points, Point{Date: day, Value: b.sum / float64(b.count)})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })
	return points
}
