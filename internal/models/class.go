package models

import "time"

// Class is a classroom owned by a teacher. Archived classes drop out of the program scope.
type Class struct {
	ID         string    `db:"id" json:"id"`
	Name       string    `db:"name" json:"name"`
	TeacherID  *string   `db:"teacher_id" json:"teacher_id,omitempty"`
	IsArchived bool      `db:"is_archived" json:"is_archived"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
