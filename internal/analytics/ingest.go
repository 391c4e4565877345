package analytics

import (
	"strings"
	"time"
)

// Ended statuses recorded by the tutoring client. They are informational only.
const (
	EndedStatusCorrect = "correct"
	EndedStatusExit    = "exit"
	EndedStatusTimeout = "timeout"
)

// RawAttempt is an attempt as handed over by the data source, before validation.
type RawAttempt struct {
	SessionID         string
	StudentID         string
	ClassID           string
	ConceptID         string
	ProblemNo         int
	AttemptsToCorrect int
	TimeToCorrectMs   int64
	EndedAt           *time.Time
	EndedStatus       string
}

// Attempt is a validated attempt. Values are copied, never shared, between stages.
type Attempt struct {
	SessionID         string
	StudentID         string
	ClassID           string
	ConceptID         string
	ProblemNo         int
	AttemptsToCorrect int
	TimeToCorrectMs   int64
	EndedAt           time.Time
	EndedStatus       string
}

// FirstTry reports whether the problem was solved on the first submission.
func (a Attempt) FirstTry() bool {
	return a.AttemptsToCorrect == 1
}

// Normalize validates a batch of raw attempts. A record without ended_at aborts the whole batch.
func (e *Engine) Normalize(raws []RawAttempt) ([]Attempt, error) {
	out := make([]Attempt, 0, len(raws))
	for i, raw := range raws {
		attempt, err := e.normalizeOne(raw)
		if err != nil {
			if malformed, ok := err.(*MalformedRecordError); ok {
				malformed.Index = i
			}
			return nil, err
		}
		out = append(out, attempt)
	}
	return out, nil
}

func (e *Engine) normalizeOne(raw RawAttempt) (Attempt, error) {
	if raw.EndedAt == nil || raw.EndedAt.IsZero() {
		return Attempt{}, &MalformedRecordError{SessionID: raw.SessionID, Field: "ended_at"}
	}
	attempts := raw.AttemptsToCorrect
	if attempts < 1 {
		attempts = 1
	}
	elapsed := raw.TimeToCorrectMs
	if elapsed < 0 {
		elapsed = 0
	}
	return Attempt{
		SessionID:         raw.SessionID,
		StudentID:         strings.TrimSpace(raw.StudentID),
		ClassID:           strings.TrimSpace(raw.ClassID),
		ConceptID:         e.catalog.Canonical(raw.ConceptID),
		ProblemNo:         raw.ProblemNo,
		AttemptsToCorrect: attempts,
		TimeToCorrectMs:   elapsed,
		EndedAt:           raw.EndedAt.UTC(),
		EndedStatus:       strings.ToLower(strings.TrimSpace(raw.EndedStatus)),
	}, nil
}
