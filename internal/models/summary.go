package models

// SemesterGradeSummary is the per-semester slice of a student's grade
// summary. Average is nil when no subject in the semester carried a usable
// score; that is "no data", not a zero.
type SemesterGradeSummary struct {
	Semester     string   `json:"semester"`
	SubjectCount int      `json:"subject_count"`
	GradedCount  int      `json:"graded_count"`
	Average      *float64 `json:"average,omitempty"`
}

// StudentGradeSummary aggregates one student's grade rows for a school year.
// SubjectsRecorded counts every row seen, including subjects that never
// received a score and therefore sit outside every average denominator.
type StudentGradeSummary struct {
	UserID           *int64                 `json:"user_id,omitempty"`
	Username         string                 `json:"username"`
	DisplayName      string                 `json:"display_name"`
	Year             string                 `json:"year"`
	Semesters        []SemesterGradeSummary `json:"semesters"`
	SubjectsRecorded int                    `json:"subjects_recorded"`
	OverallAverage   *float64               `json:"overall_average,omitempty"`
	SkippedRows      int                    `json:"skipped_rows,omitempty"`
}

// SectionFacility pairs a section with its room assignment, when one exists
// and is complete.
type SectionFacility struct {
	Section    SectionRecord
	Assignment *SectionAssignmentRecord
}

// Assigned reports whether the section has a complete room placement.
func (f SectionFacility) Assigned() bool {
	return f.Assignment != nil && f.Assignment.Located()
}

// BuildingLookup is the terminal result of the student -> assignment ->
// room-assignment chain. A missing link at any stage leaves Assignment nil;
// that is an "Unassigned" outcome, never an error.
type BuildingLookup struct {
	User       UserRecord
	Enrollment *AssignmentRecord
	Assignment *SectionAssignmentRecord
}
