// Package analytics turns raw problem-solving attempts into dashboard aggregates:
// trends, concept accuracy, progress and mastery. Every operation is a pure function
// of its inputs, so an Engine can be shared freely between goroutines.
package analytics

import (
	"sort"
	"time"
)

const (
	// DefaultMasteryThreshold is the largest attempts_to_correct still counted as completed.
	DefaultMasteryThreshold = 2
	// DefaultWindowMonths bounds queries to recent history.
	DefaultWindowMonths = 6
	// DefaultRecentLimit caps recent-attempt listings.
	DefaultRecentLimit = 10
)

// Config tunes the engine. Zero values select the defaults.
type Config struct {
	MasteryThreshold int
	Window           time.Duration
	RecentLimit      int
}

// Engine evaluates aggregation queries against a concept catalog.
type Engine struct {
	catalog *Catalog
	cfg     Config
}

// NewEngine constructs an engine; a nil catalog falls back to the default concepts.
func NewEngine(catalog *Catalog, cfg Config) *Engine {
	if catalog == nil {
		catalog = DefaultCatalog(DefaultProblemsPerConcept)
	}
	if cfg.MasteryThreshold <= 0 {
		cfg.MasteryThreshold = DefaultMasteryThreshold
	}
	if cfg.RecentLimit <= 0 {
		cfg.RecentLimit = DefaultRecentLimit
	}
	return &Engine{catalog: catalog, cfg: cfg}
}

// Catalog exposes the injected concept catalog.
func (e *Engine) Catalog() *Catalog { return e.catalog }

// MasteryThreshold returns the configured completion threshold.
func (e *Engine) MasteryThreshold() int { return e.cfg.MasteryThreshold }

// ConceptSummary backs the average attempts / time tiles.
type ConceptSummary struct {
	AvgAttempts float64 `json:"avgAttempts"`
	AvgTimeSec  float64 `json:"avgTimeSec"`
}

// Bar is one bar of the concept accuracy chart.
type Bar struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// StudentProgress is the donut payload for a single student.
type StudentProgress struct {
	Completed int     `json:"completed"`
	Total     int     `json:"total"`
	Fraction  float64 `json:"fraction"`
}

// GroupProgress is the donut payload for a class or the whole program.
type GroupProgress struct {
	AvgFraction float64 `json:"avgFraction"`
	Population  int     `json:"population"`
}

// ConceptProgress summarises one concept within a scope.
type ConceptProgress struct {
	ConceptID   string  `json:"conceptId"`
	Label       string  `json:"label"`
	Progress    float64 `json:"progress"`
	AvgAttempts float64 `json:"avgAttempts"`
	AvgTimeSec  float64 `json:"avgTimeSec"`
}

// Summary holds the overview tiles of a scope.
type Summary struct {
	Attempts     int               `json:"attempts"`
	Population   int               `json:"population"`
	Classes      int               `json:"classes"`
	AvgAttempts  float64           `json:"avgAttempts"`
	AvgTimeSec   float64           `json:"avgTimeSec"`
	AccuracyPct  float64           `json:"accuracyPct"`
	FirstTryRate float64           `json:"firstTryRate"`
	MasteryRate  float64           `json:"masteryRate"`
	Bars         []Bar             `json:"bars"`
	Concepts     []ConceptProgress `json:"concepts"`
}

// RecentAttempt is one row of the recent attempts table.
type RecentAttempt struct {
	EndedAt     time.Time `json:"endedAt"`
	StudentID   string    `json:"studentId"`
	Concept     string    `json:"concept"`
	ProblemNo   int       `json:"problemNo"`
	Status      string    `json:"status"`
	EndedStatus string    `json:"endedStatus,omitempty"`
	FirstTry    bool      `json:"firstTry"`
	Attempts    int       `json:"attempts"`
	TimeSec     float64   `json:"timeSec"`
}

// Recent attempt statuses derived from the mastery predicate.
const (
	StatusComplete   = "Complete"
	StatusIncomplete = "Incomplete"
)

// StudentInfo carries display fields for performance rows.
type StudentInfo struct {
	ID    string
	Name  string
	Email string
}

// StudentPerformance is one row of a class performance table.
type StudentPerformance struct {
	StudentID   string  `json:"studentId"`
	Name        string  `json:"name"`
	Email       string  `json:"email,omitempty"`
	Attempts    int     `json:"attempts"`
	ProgressPct float64 `json:"progressPct"`
	AvgAttempts float64 `json:"avgAttempts"`
	AvgTimeSec  float64 `json:"avgTimeSec"`
}

// Trend builds the chart series for the scoped attempts.
func (e *Engine) Trend(scoped *Scoped, metric Metric) Series {
	if metric == "" {
		metric = MetricAttempts
	}
	return Series{
		MetricName: string(metric),
		Unit:       metric.Unit(),
		Points:     Trend(scopedAttempts(scoped), metric),
	}
}

// ConceptSummary computes the tile values, rounded for display.
func (e *Engine) ConceptSummary(scoped *Scoped) ConceptSummary {
	attempts := scopedAttempts(scoped)
	return ConceptSummary{
		AvgAttempts: Round(AverageAttempts(attempts), 2),
		AvgTimeSec:  Round(AverageTimeSeconds(attempts), 0),
	}
}

// ConceptBars computes accuracy bars. Without a concept filter every catalog concept
// is listed in catalog order; records with unknown concepts are left out.
func (e *Engine) ConceptBars(scoped *Scoped) []Bar {
	byConcept := GroupByConcept(scopedAttempts(scoped))
	if scoped != nil && scoped.Concept != "" {
		return []Bar{{
			Label: e.catalog.Label(scoped.Concept),
			Value: Round(AccuracyProxy(byConcept[scoped.Concept]), 1),
		}}
	}
	concepts := e.catalog.Concepts()
	bars := make([]Bar, 0, len(concepts))
	for _, concept := range concepts {
		bars = append(bars, Bar{
			Label: concept.Name,
			Value: Round(AccuracyProxy(byConcept[concept.Code]), 1),
		})
	}
	return bars
}

// StudentProgress computes distinct-problem progress over the scoped attempts.
func (e *Engine) StudentProgress(scoped *Scoped) StudentProgress {
	total := e.catalog.TotalProblems(scopedConcept(scoped))
	completed := CompletedProblems(scopedAttempts(scoped), e.cfg.MasteryThreshold)
	return StudentProgress{
		Completed: completed,
		Total:     total,
		Fraction:  Round(Progress(completed, total), 4),
	}
}

// GroupProgress averages per-student progress over the scope's population.
func (e *Engine) GroupProgress(scoped *Scoped) GroupProgress {
	if scoped == nil {
		return GroupProgress{}
	}
	total := e.catalog.TotalProblems(scoped.Concept)
	byStudent := GroupByStudent(scoped.Attempts)
	return GroupProgress{
		AvgFraction: Round(MeanProgress(byStudent, scoped.StudentIDs, total, e.cfg.MasteryThreshold), 4),
		Population:  len(scoped.StudentIDs),
	}
}

// Summary assembles the overview tiles of a scope.
func (e *Engine) Summary(scoped *Scoped) Summary {
	attempts := scopedAttempts(scoped)
	summary := Summary{
		Attempts:     len(attempts),
		AvgAttempts:  Round(AverageAttempts(attempts), 2),
		AvgTimeSec:   Round(AverageTimeSeconds(attempts), 0),
		AccuracyPct:  Round(AccuracyProxy(attempts), 1),
		FirstTryRate: Round(FirstTryRate(attempts), 4),
		MasteryRate:  Round(MasteryRate(attempts, e.cfg.MasteryThreshold), 4),
		Bars:         e.ConceptBars(scoped),
		Concepts:     e.conceptProgress(scoped),
	}
	if scoped != nil {
		summary.Population = len(scoped.StudentIDs)
		summary.Classes = scoped.Classes
	}
	return summary
}

func (e *Engine) conceptProgress(scoped *Scoped) []ConceptProgress {
	if scoped == nil {
		return []ConceptProgress{}
	}
	byConcept := GroupByConcept(scoped.Attempts)
	codes := make([]string, 0)
	if scoped.Concept != "" {
		codes = append(codes, scoped.Concept)
	} else {
		for _, concept := range e.catalog.Concepts() {
			codes = append(codes, concept.Code)
		}
	}

	out := make([]ConceptProgress, 0, len(codes))
	for _, code := range codes {
		attempts := byConcept[code]
		total := e.catalog.TotalProblems(code)
		var progress float64
		if scoped.Scope.Kind == ScopeStudent {
			progress = Progress(CompletedProblems(attempts, e.cfg.MasteryThreshold), total)
		} else {
			progress = MeanProgress(GroupByStudent(attempts), scoped.StudentIDs, total, e.cfg.MasteryThreshold)
		}
		out = append(out, ConceptProgress{
			ConceptID:   code,
			Label:       e.catalog.Label(code),
			Progress:    Round(progress, 4),
			AvgAttempts: Round(AverageAttempts(attempts), 2),
			AvgTimeSec:  Round(AverageTimeSeconds(attempts), 0),
		})
	}
	return out
}

// RecentAttempts lists the newest attempts first. A non-positive limit uses the configured default.
func (e *Engine) RecentAttempts(scoped *Scoped, limit int) []RecentAttempt {
	if limit <= 0 {
		limit = e.cfg.RecentLimit
	}
	attempts := append([]Attempt(nil), scopedAttempts(scoped)...)
	sort.SliceStable(attempts, func(i, j int) bool {
		return attempts[i].EndedAt.After(attempts[j].EndedAt)
	})
	if len(attempts) > limit {
		attempts = attempts[:limit]
	}

	rows := make([]RecentAttempt, 0, len(attempts))
	for _, a := range attempts {
		status := StatusIncomplete
		if Completed(a, e.cfg.MasteryThreshold) {
			status = StatusComplete
		}
		rows = append(rows, RecentAttempt{
			EndedAt:     a.EndedAt,
			StudentID:   a.StudentID,
			Concept:     e.catalog.Label(a.ConceptID),
			ProblemNo:   a.ProblemNo,
			Status:      status,
			EndedStatus: a.EndedStatus,
			FirstTry:    a.FirstTry(),
			Attempts:    a.AttemptsToCorrect,
			TimeSec:     Round(float64(a.TimeToCorrectMs)/1000.0, 1),
		})
	}
	return rows
}

// StudentPerformances builds one row per resolved student, sorted by name then id.
// Students missing from info are listed under their id.
func (e *Engine) StudentPerformances(scoped *Scoped, info map[string]StudentInfo) []StudentPerformance {
	if scoped == nil {
		return []StudentPerformance{}
	}
	total := e.catalog.TotalProblems(scoped.Concept)
	byStudent := GroupByStudent(scoped.Attempts)

	rows := make([]StudentPerformance, 0, len(scoped.StudentIDs))
	for _, id := range scoped.StudentIDs {
		attempts := byStudent[id]
		student, ok := info[id]
		if !ok || student.Name == "" {
			student.Name = id
		}
		progress := Progress(CompletedProblems(attempts, e.cfg.MasteryThreshold), total)
		rows = append(rows, StudentPerformance{
			StudentID:   id,
			Name:        student.Name,
			Email:       student.Email,
			Attempts:    len(attempts),
			ProgressPct: Round(progress*100, 1),
			AvgAttempts: Round(AverageAttempts(attempts), 2),
			AvgTimeSec:  Round(AverageTimeSeconds(attempts), 0),
		})
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Name != rows[j].Name {
			return rows[i].Name < rows[j].Name
		}
		return rows[i].StudentID < rows[j].StudentID
	})
	return rows
}

func scopedAttempts(scoped *Scoped) []Attempt {
	if scoped == nil {
		return nil
	}
	return scoped.Attempts
}

func scopedConcept(scoped *Scoped) string {
	if scoped == nil {
		return ""
	}
	return scoped.Concept
}
