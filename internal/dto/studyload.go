package dto

// StudyLoadRow is one subject line in a cohort's study load.
type StudyLoadRow struct {
	SubjectCode string  `json:"subject_code"`
	Title       string  `json:"title"`
	Units       float64 `json:"units"`
	Teacher     string  `json:"teacher"`
}

// StudyLoadResponse groups a cohort's subjects per semester.
type StudyLoadResponse struct {
	Course        string              `json:"course"`
	Major         string              `json:"major"`
	YearLabel     string              `json:"year_label"`
	Semesters     []StudyLoadSemester `json:"semesters"`
	TotalUnits    float64             `json:"total_units"`
	UnknownMajors bool                `json:"unknown_majors,omitempty"`
}

// StudyLoadSemester is one semester block of study-load rows.
type StudyLoadSemester struct {
	Label      string         `json:"label"`
	Rows       []StudyLoadRow `json:"rows"`
	TotalUnits float64        `json:"total_units"`
}

// TeacherScheduleEntry is one taught subject on a teacher's schedule.
type TeacherScheduleEntry struct {
	SubjectCode string  `json:"subject_code"`
	Title       string  `json:"title"`
	YearLabel   string  `json:"year_label"`
	Units       float64 `json:"units"`
}

// TeacherScheduleGroup holds a semester's worth of schedule entries.
type TeacherScheduleGroup struct {
	Label   string                 `json:"label"`
	Entries []TeacherScheduleEntry `json:"entries"`
}

// TeacherScheduleResponse is a teacher's schedule grouped per semester.
type TeacherScheduleResponse struct {
	TeacherName     string                 `json:"teacher_name"`
	Semesters       []TeacherScheduleGroup `json:"semesters"`
	SubjectCount    int                    `json:"subject_count"`
	UnknownSubjects int                    `json:"unknown_subjects,omitempty"`
}
