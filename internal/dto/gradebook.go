package dto

// SemesterBadge is one semester chip on a student grade card.
type SemesterBadge struct {
	Label        string  `json:"label"`
	SubjectCount int     `json:"subject_count"`
	GradedCount  int     `json:"graded_count"`
	Average      *string `json:"average,omitempty"`
}

// StudentGradeCard is the caller-facing shape of a student's grade summary.
type StudentGradeCard struct {
	DisplayName      string          `json:"display_name"`
	YearLabel        string          `json:"year_label"`
	SummaryText      string          `json:"summary_text"`
	SemesterBadges   []SemesterBadge `json:"semester_badges"`
	OverallAverage   *float64        `json:"overall_average,omitempty"`
	SubjectsRecorded int             `json:"subjects_recorded"`
	Standing         string          `json:"standing"`
}
