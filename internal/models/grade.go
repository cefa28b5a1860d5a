package models

// GradeRecord is one subject's grade row for a student. Score pointers
// distinguish "not entered" (nil) from a real zero. UserID may be absent on
// legacy rows, which identify the student by username instead.
type GradeRecord struct {
	ID         int64    `db:"id" json:"id"`
	UserID     *int64   `db:"user_id" json:"user_id,omitempty"`
	Username   *string  `db:"username" json:"username,omitempty"`
	Year       string   `db:"year" json:"year"`
	Semester   string   `db:"semester" json:"semester"`
	Subject    string   `db:"subject" json:"subject"`
	Instructor *string  `db:"instructor" json:"instructor,omitempty"`
	Prelim     *float64 `db:"prelim_grade" json:"prelim_grade,omitempty"`
	Midterm    *float64 `db:"midterm_grade" json:"midterm_grade,omitempty"`
	Finals     *float64 `db:"finals_grade" json:"finals_grade,omitempty"`
}

// Graded reports whether at least one score field was entered.
func (g GradeRecord) Graded() bool {
	return g.Prelim != nil || g.Midterm != nil || g.Finals != nil
}

// GradeFilter scopes grade queries.
type GradeFilter struct {
	UserID   *int64
	Username string
	Year     string
	Semester string
}
