package models

// SubjectRecord is a curriculum subject. SubjectCode is the match key across
// collections and compares case-insensitively.
type SubjectRecord struct {
	ID          int64   `db:"id" json:"id"`
	SubjectCode string  `db:"subject_code" json:"subject_code"`
	Title       string  `db:"title" json:"title"`
	Units       float64 `db:"units" json:"units"`
	Course      string  `db:"course" json:"course"`
	Major       string  `db:"major" json:"major"`
	YearLevel   int     `db:"year_level" json:"year_level"`
	Semester    string  `db:"semester" json:"semester"`
}

// TeacherAssignmentRecord links a teacher to a subject they handle. UserID is
// optional; older rows only carry the teacher's display name.
type TeacherAssignmentRecord struct {
	ID          int64   `db:"id" json:"id"`
	SubjectCode string  `db:"subject_code" json:"subject_code"`
	TeacherName string  `db:"teacher_name" json:"teacher_name"`
	UserID      *int64  `db:"user_id" json:"user_id,omitempty"`
	FullName    *string `db:"full_name" json:"full_name,omitempty"`
}

// StudyLoadRecord is one row of a student cohort's subject load.
type StudyLoadRecord struct {
	Course       string  `db:"course" json:"course"`
	Major        string  `db:"major" json:"major"`
	YearLevel    int     `db:"year_level" json:"year_level"`
	Section      string  `db:"section" json:"section"`
	SubjectCode  string  `db:"subject_code" json:"subject_code"`
	SubjectTitle string  `db:"subject_title" json:"subject_title"`
	Units        float64 `db:"units" json:"units"`
	Semester     string  `db:"semester" json:"semester"`
	Teacher      *string `db:"teacher" json:"teacher,omitempty"`
}

// StudyLoadFilter scopes study-load queries.
type StudyLoadFilter struct {
	Course    string
	Major     string
	YearLevel int
	Semester  string
	Section   string
}
