package models

// Student holds the display fields used by performance tables and reports.
type Student struct {
	ID            string `db:"id" json:"id"`
	StudentNumber string `db:"student_number" json:"student_number"`
	Name          string `db:"name" json:"name"`
	Email         string `db:"email" json:"email"`
}
