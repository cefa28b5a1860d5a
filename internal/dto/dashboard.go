package dto

// RoleCount is one slice of the user population breakdown.
type RoleCount struct {
	Role  string `json:"role"`
	Count int    `json:"count"`
}

// FacilityCoverage summarises room assignment coverage for the admin
// dashboard.
type FacilityCoverage struct {
	AssignedSections int     `json:"assigned_sections"`
	TotalSections    int     `json:"total_sections"`
	CoverageRate     float64 `json:"coverage_rate"`
}

// GradeDistributionBin is one bucket of the grade distribution chart.
type GradeDistributionBin struct {
	Bucket string `json:"bucket"`
	Count  int    `json:"count"`
}

// GradesOverview is the grades section of the admin dashboard.
type GradesOverview struct {
	OverallAverage *float64               `json:"overall_average,omitempty"`
	GradedStudents int                    `json:"graded_students"`
	Distribution   []GradeDistributionBin `json:"distribution"`
}

// StandingOverview counts payment and sanction states across enrollments.
type StandingOverview struct {
	OwingStudents      int `json:"owing_students"`
	SanctionedStudents int `json:"sanctioned_students"`
}

// AdminDashboardResponse is the composed admin overview payload.
type AdminDashboardResponse struct {
	UsersByRole       []RoleCount      `json:"users_by_role"`
	Facilities        FacilityCoverage `json:"facilities"`
	Grades            GradesOverview   `json:"grades"`
	Standing          StandingOverview `json:"standing"`
	OpenAnnouncements int              `json:"open_announcements"`
}
