package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/noah-isme/kinemathika-api/internal/models"
)

const studentColumns = `id, COALESCE(student_number, '') AS student_number, name, COALESCE(email, '') AS email`

// StudentRepository reads student display data.
type StudentRepository struct {
	db *sqlx.DB
}

// NewStudentRepository creates a new repository instance.
func NewStudentRepository(db *sqlx.DB) *StudentRepository {
	return &StudentRepository{db: db}
}

// Exists reports whether a student with id is registered.
func (r *StudentRepository) Exists(ctx context.Context, id string) (bool, error) {
	const query = `SELECT EXISTS(SELECT 1 FROM students WHERE id = $1)`
	var exists bool
	if err := r.db.GetContext(ctx, &exists, query, id); err != nil {
		return false, fmt.Errorf("check student %s: %w", id, err)
	}
	return exists, nil
}

// ListByIDs returns the students with the given ids, ordered by name.
func (r *StudentRepository) ListByIDs(ctx context.Context, ids []string) ([]models.Student, error) {
	if len(ids) == 0 {
		return []models.Student{}, nil
	}
	query := `SELECT ` + studentColumns + ` FROM students WHERE id = ANY($1) ORDER BY name ASC, id ASC`
	var students []models.Student
	if err := r.db.SelectContext(ctx, &students, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	return students, nil
}
