package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/kinemathika-api/internal/models"
)

const attemptColumns = `id, session_id, student_id, class_id, concept_id, problem_no, attempts_to_correct, time_to_correct_ms, started_at, ended_at, ended_status`

// AttemptRepository reads persisted problem attempts.
type AttemptRepository struct {
	db *sqlx.DB
}

// NewAttemptRepository constructs the repository.
func NewAttemptRepository(db *sqlx.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// List returns the attempts matching filter, oldest first. Rows with a NULL ended_at are
// returned regardless of the Since bound so the caller can reject them.
func (r *AttemptRepository) List(ctx context.Context, filter models.AttemptFilter) ([]models.AttemptRecord, error) {
	var conditions []string
	var args []interface{}

	switch {
	case filter.ClassID != "":
		conditions = append(conditions, fmt.Sprintf("(class_id = $%d OR (class_id IS NULL AND student_id = ANY($%d)))", len(args)+1, len(args)+2))
		args = append(args, filter.ClassID, pq.Array(nonNil(filter.StudentIDs)))
	case filter.StudentIDs != nil:
		if len(filter.StudentIDs) == 0 {
			return []models.AttemptRecord{}, nil
		}
		conditions = append(conditions, fmt.Sprintf("student_id = ANY($%d)", len(args)+1))
		args = append(args, pq.Array(filter.StudentIDs))
	}
	if !filter.Since.IsZero() {
		conditions = append(conditions, fmt.Sprintf("(ended_at IS NULL OR ended_at >= $%d)", len(args)+1))
		args = append(args, filter.Since)
	}

	query := "SELECT " + attemptColumns + " FROM attempt_records"
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY ended_at ASC NULLS FIRST, id ASC"

	var attempts []models.AttemptRecord
	if err := r.db.SelectContext(ctx, &attempts, query, args...); err != nil {
		return nil, fmt.Errorf("list attempts: %w", err)
	}
	return attempts, nil
}

func nonNil(ids []string) []string {
	if ids == nil {
		return []string{}
	}
	return ids
}
