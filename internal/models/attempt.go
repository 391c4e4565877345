package models

import "time"

// AttemptRecord mirrors a row of attempt_records: one finished problem session.
// EndedAt is nullable in storage; rows without it are rejected during normalisation.
type AttemptRecord struct {
	ID                int64      `db:"id" json:"id"`
	SessionID         string     `db:"session_id" json:"session_id"`
	StudentID         string     `db:"student_id" json:"student_id"`
	ClassID           *string    `db:"class_id" json:"class_id,omitempty"`
	ConceptID         string     `db:"concept_id" json:"concept_id"`
	ProblemNo         int        `db:"problem_no" json:"problem_no"`
	AttemptsToCorrect int        `db:"attempts_to_correct" json:"attempts_to_correct"`
	TimeToCorrectMs   int64      `db:"time_to_correct_ms" json:"time_to_correct_ms"`
	StartedAt         *time.Time `db:"started_at" json:"started_at,omitempty"`
	EndedAt           *time.Time `db:"ended_at" json:"ended_at,omitempty"`
	EndedStatus       string     `db:"ended_status" json:"ended_status"`
}

// AttemptFilter narrows attempt queries to a population and a lower time bound.
// When ClassID is set, rows tagged with that class match as well as untagged rows of
// StudentIDs.
type AttemptFilter struct {
	ClassID    string
	StudentIDs []string
	Since      time.Time
}
