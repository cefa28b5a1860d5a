package dto

// Facility status labels. Partial placements never show as partially
// assigned.
const (
	FacilityAssigned    = "Assigned"
	FacilityNotAssigned = "Not Assigned"
	FacilityUnassigned  = "Unassigned"
)

// SectionFacilityStatus is one row of the per-section facility map.
type SectionFacilityStatus struct {
	Year      string  `json:"year"`
	YearLabel string  `json:"year_label"`
	Section   string  `json:"section"`
	Status    string  `json:"status"`
	Location  *string `json:"location,omitempty"`
}

// FacilityMapResponse summarises room coverage across active sections.
type FacilityMapResponse struct {
	Sections      []SectionFacilityStatus `json:"sections"`
	AssignedCount int                     `json:"assigned_count"`
	TotalCount    int                     `json:"total_count"`
	SkippedRows   int                     `json:"skipped_rows,omitempty"`
}

// StudentBuildingResponse is the terminal answer of the building lookup
// chain for one student.
type StudentBuildingResponse struct {
	Username    string  `json:"username"`
	DisplayName string  `json:"display_name"`
	Status      string  `json:"status"`
	YearLabel   string  `json:"year_label,omitempty"`
	Section     string  `json:"section,omitempty"`
	Building    string  `json:"building,omitempty"`
	Floor       int     `json:"floor,omitempty"`
	Room        string  `json:"room,omitempty"`
	Location    *string `json:"location,omitempty"`
}
