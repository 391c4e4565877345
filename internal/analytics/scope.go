package analytics

import (
	"sort"
	"strings"
	"time"
)

// ScopeKind is the population boundary of a query.
type ScopeKind string

// Supported scope kinds.
const (
	ScopeProgram ScopeKind = "program"
	ScopeClass   ScopeKind = "class"
	ScopeStudent ScopeKind = "student"
)

// Scope selects the population a query aggregates over.
type Scope struct {
	Kind ScopeKind
	ID   string
}

// ProgramScope selects every student in a non-archived class.
func ProgramScope() Scope { return Scope{Kind: ScopeProgram} }

// ClassScope selects the students of one classroom, archived or not.
func ClassScope(id string) Scope { return Scope{Kind: ScopeClass, ID: strings.TrimSpace(id)} }

// StudentScope selects a single student.
func StudentScope(id string) Scope { return Scope{Kind: ScopeStudent, ID: strings.TrimSpace(id)} }

// Classroom is a class as seen by scope resolution.
type Classroom struct {
	ID       string
	Name     string
	Archived bool
}

// Enrollment links a student to a classroom.
type Enrollment struct {
	StudentID string
	ClassID   string
}

// Roster carries the classroom and enrollment snapshot for one query.
// Students lists ids known to exist even when they have no enrollment.
type Roster struct {
	Classrooms  []Classroom
	Enrollments []Enrollment
	Students    []string
}

// Dataset is the complete input of one query.
type Dataset struct {
	Attempts []Attempt
	Roster   Roster
}

// Query describes what to aggregate. A zero Window means the configured default;
// a zero Now means the current time.
type Query struct {
	Scope   Scope
	Concept string
	Window  time.Duration
	Now     time.Time
}

// Scoped is the output of scope resolution: the filtered attempts and the population.
type Scoped struct {
	Scope      Scope
	Concept    string
	Since      time.Time
	Attempts   []Attempt
	StudentIDs []string
	Classes    int
}

// Students resolves the student-id set of a scope against the roster.
func (e *Engine) Students(roster Roster, scope Scope) ([]string, error) {
	switch scope.Kind {
	case ScopeProgram, "":
		active := make(map[string]bool, len(roster.Classrooms))
		for _, class := range roster.Classrooms {
			if !class.Archived {
				active[class.ID] = true
			}
		}
		set := make(map[string]struct{})
		for _, enrollment := range roster.Enrollments {
			if active[enrollment.ClassID] {
				set[enrollment.StudentID] = struct{}{}
			}
		}
		return sortedKeys(set), nil
	case ScopeClass:
		found := false
		for _, class := range roster.Classrooms {
			if class.ID == scope.ID {
				found = true
				break
			}
		}
		if !found || scope.ID == "" {
			return nil, &UnknownScopeError{Scope: scope}
		}
		set := make(map[string]struct{})
		for _, enrollment := range roster.Enrollments {
			if enrollment.ClassID == scope.ID {
				set[enrollment.StudentID] = struct{}{}
			}
		}
		return sortedKeys(set), nil
	case ScopeStudent:
		if scope.ID == "" || !rosterKnowsStudent(roster, scope.ID) {
			return nil, &UnknownScopeError{Scope: scope}
		}
		return []string{scope.ID}, nil
	default:
		return nil, &UnknownScopeError{Scope: scope}
	}
}

// Since returns the lower bound on ended_at for the query window.
func (e *Engine) Since(q Query) time.Time {
	now := q.Now
	if now.IsZero() {
		now = time.Now()
	}
	now = now.UTC()
	window := q.Window
	if window == 0 {
		window = e.cfg.Window
	}
	if window == 0 {
		day := now.Truncate(24 * time.Hour)
		return day.AddDate(0, -DefaultWindowMonths, 0)
	}
	return now.Add(-window)
}

// Resolve narrows the dataset to the attempts and students the query covers.
func (e *Engine) Resolve(data Dataset, q Query) (*Scoped, error) {
	students, err := e.Students(data.Roster, q.Scope)
	if err != nil {
		return nil, err
	}
	concept := e.catalog.NormalizeFilter(q.Concept)
	since := e.Since(q)
	scoped := &Scoped{
		Scope:      q.Scope,
		Concept:    concept,
		Since:      since,
		StudentIDs: students,
		Classes:    countClasses(data.Roster, q.Scope),
		Attempts:   []Attempt{},
	}
	if q.Window < 0 {
		return scoped, nil
	}

	member := make(map[string]bool, len(students))
	for _, id := range students {
		member[id] = true
	}
	enrolledIn := studentClasses(data.Roster)

	for _, attempt := range data.Attempts {
		if attempt.EndedAt.Before(since) {
			continue
		}
		if concept != "" && attempt.ConceptID != concept {
			continue
		}
		switch q.Scope.Kind {
		case ScopeClass:
			if !attemptInClass(attempt, q.Scope.ID, enrolledIn) {
				continue
			}
		default:
			if !member[attempt.StudentID] {
				continue
			}
		}
		scoped.Attempts = append(scoped.Attempts, attempt)
	}
	return scoped, nil
}

func attemptInClass(attempt Attempt, classID string, enrolledIn map[string]map[string]bool) bool {
	if attempt.ClassID != "" {
		return attempt.ClassID == classID
	}
	return enrolledIn[attempt.StudentID][classID]
}

func studentClasses(roster Roster) map[string]map[string]bool {
	out := make(map[string]map[string]bool, len(roster.Enrollments))
	for _, enrollment := range roster.Enrollments {
		classes, ok := out[enrollment.StudentID]
		if !ok {
			classes = make(map[string]bool, 1)
			out[enrollment.StudentID] = classes
		}
		classes[enrollment.ClassID] = true
	}
	return out
}

func rosterKnowsStudent(roster Roster, id string) bool {
	for _, student := range roster.Students {
		if student == id {
			return true
		}
	}
	for _, enrollment := range roster.Enrollments {
		if enrollment.StudentID == id {
			return true
		}
	}
	return false
}

func countClasses(roster Roster, scope Scope) int {
	switch scope.Kind {
	case ScopeClass:
		return 1
	case ScopeStudent:
		set := make(map[string]struct{})
		for _, enrollment := range roster.Enrollments {
			if enrollment.StudentID == scope.ID {
				set[enrollment.ClassID] = struct{}{}
			}
		}
		return len(set)
	default:
		count := 0
		for _, class := range roster.Classrooms {
			if !class.Archived {
				count++
			}
		}
		return count
	}
}

func sortedKeys(set map[string]struct{}) []string {
	out := make([]string, 0, len(set))
	for key := range set {
		out = append(out, key)
	}
	sort.Strings(out)
	return out
}
