package view

import (
	"fmt"
	"strconv"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

// Standing labels derived from a grade summary.
const (
	StandingPassing        = "Passing"
	StandingNeedsAttention = "Needs Attention"
	StandingNoData         = "No Data"
)

// ProjectGradeCard shapes a student grade summary for display. passThreshold
// classifies the overall average into a standing label.
func ProjectGradeCard(summary models.StudentGradeSummary, passThreshold float64) dto.StudentGradeCard {
	badges := make([]dto.SemesterBadge, 0, len(summary.Semesters))
	for _, semester := range summary.Semesters {
		badge := dto.SemesterBadge{
			Label:        semester.Semester,
			SubjectCount: semester.SubjectCount,
			GradedCount:  semester.GradedCount,
		}
		if semester.Average != nil {
			formatted := FormatAverage(*semester.Average)
			badge.Average = &formatted
		}
		badges = append(badges, badge)
	}

	standing := StandingNoData
	summaryText := fmt.Sprintf("%d subject(s) recorded, none graded yet", summary.SubjectsRecorded)
	if summary.OverallAverage != nil {
		summaryText = fmt.Sprintf("%d subject(s) recorded, overall average %s",
			summary.SubjectsRecorded, FormatAverage(*summary.OverallAverage))
		if *summary.OverallAverage >= passThreshold {
			standing = StandingPassing
		} else {
			standing = StandingNeedsAttention
		}
	}

	return dto.StudentGradeCard{
		DisplayName:      summary.DisplayName,
		YearLabel:        FormatYearLabel(summary.Year),
		SummaryText:      summaryText,
		SemesterBadges:   badges,
		OverallAverage:   summary.OverallAverage,
		SubjectsRecorded: summary.SubjectsRecorded,
		Standing:         standing,
	}
}

// ProjectSectionFacility classifies one section's room placement. Partial
// placements are Not Assigned outright.
func ProjectSectionFacility(facility models.SectionFacility) dto.SectionFacilityStatus {
	status := dto.SectionFacilityStatus{
		Year:      correlate.NormalizeYear(facility.Section.Year),
		YearLabel: FormatYearLabel(facility.Section.Year),
		Section:   facility.Section.Name,
		Status:    dto.FacilityNotAssigned,
	}
	if facility.Assigned() {
		status.Status = dto.FacilityAssigned
		location := FormatLocation(*facility.Assignment)
		status.Location = &location
	}
	return status
}

// ProjectBuildingLookup shapes the terminal result of the building lookup
// chain. A broken link anywhere leaves the student Unassigned.
func ProjectBuildingLookup(lookup models.BuildingLookup) dto.StudentBuildingResponse {
	resp := dto.StudentBuildingResponse{
		Username:    lookup.User.Username,
		DisplayName: lookup.User.DisplayName(),
		Status:      dto.FacilityUnassigned,
	}
	if lookup.Enrollment != nil {
		resp.YearLabel = FormatYearLabel(lookup.Enrollment.Year)
		resp.Section = lookup.Enrollment.Section
	}
	if lookup.Assignment != nil && lookup.Assignment.Located() {
		resp.Status = dto.FacilityAssigned
		resp.Building = lookup.Assignment.Building
		resp.Floor = lookup.Assignment.Floor
		resp.Room = lookup.Assignment.Room
		location := FormatLocation(*lookup.Assignment)
		resp.Location = &location
	}
	return resp
}

// ProjectStanding shapes payment and sanction status for one student.
func ProjectStanding(user models.UserRecord, enrollment *models.AssignmentRecord, sanction correlate.SanctionStatus) dto.StudentStandingResponse {
	resp := dto.StudentStandingResponse{
		Username:      user.Username,
		DisplayName:   user.DisplayName(),
		PaymentStatus: string(models.PaymentPaid),
		SanctionLabel: "No",
	}
	if enrollment != nil {
		if enrollment.PaymentStatus != "" {
			resp.PaymentStatus = string(enrollment.PaymentStatus)
		}
		resp.OwingAmount = enrollment.OwingAmount
	}
	switch sanction.Kind {
	case correlate.SanctionDays:
		resp.Sanctioned = true
		resp.SanctionLabel = fmt.Sprintf("%d day(s) remaining", sanction.DaysRemaining)
		resp.SanctionNote = sanction.Note
	case correlate.SanctionExpired:
		resp.SanctionLabel = "Expired"
		resp.SanctionNote = sanction.Note
	case correlate.SanctionNote:
		resp.Sanctioned = true
		resp.SanctionLabel = "Yes"
		resp.SanctionNote = sanction.Note
	}
	return resp
}

// FormatLocation renders a room placement as building/floor/room.
func FormatLocation(assignment models.SectionAssignmentRecord) string {
	return assignment.Building + "/" + strconv.Itoa(assignment.Floor) + "/" + assignment.Room
}
