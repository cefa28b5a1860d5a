package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

func floatPtr(v float64) *float64 { return &v }

func TestProjectGradeCard(t *testing.T) {
	summary := models.StudentGradeSummary{
		Username:         "jdoe",
		DisplayName:      "Jane Doe",
		Year:             "2",
		SubjectsRecorded: 3,
		OverallAverage:   floatPtr(86.25),
		Semesters: []models.SemesterGradeSummary{
			{Semester: "First Semester", SubjectCount: 2, GradedCount: 2, Average: floatPtr(82.5)},
			{Semester: "Second Semester", SubjectCount: 1, GradedCount: 1, Average: floatPtr(90)},
		},
	}

	card := ProjectGradeCard(summary, 75)
	assert.Equal(t, "Jane Doe", card.DisplayName)
	assert.Equal(t, "2nd Year", card.YearLabel)
	assert.Equal(t, StandingPassing, card.Standing)
	require.Len(t, card.SemesterBadges, 2)
	require.NotNil(t, card.SemesterBadges[0].Average)
	assert.Equal(t, "82.50", *card.SemesterBadges[0].Average)
	assert.Contains(t, card.SummaryText, "86.25")
}

func TestProjectGradeCardNoData(t *testing.T) {
	summary := models.StudentGradeSummary{Username: "jdoe", DisplayName: "jdoe", Year: "1", SubjectsRecorded: 2}
	card := ProjectGradeCard(summary, 75)
	assert.Equal(t, StandingNoData, card.Standing)
	assert.Nil(t, card.OverallAverage)
	assert.Contains(t, card.SummaryText, "none graded")
}

func TestProjectSectionFacility(t *testing.T) {
	assigned := models.SectionFacility{
		Section:    models.SectionRecord{Year: "1", Name: "Power"},
		Assignment: &models.SectionAssignmentRecord{Year: "1", Section: "Power", Building: "A", Floor: 2, Room: "201"},
	}
	status := ProjectSectionFacility(assigned)
	assert.Equal(t, dto.FacilityAssigned, status.Status)
	require.NotNil(t, status.Location)
	assert.Equal(t, "A/2/201", *status.Location)

	// partial placement is Not Assigned, never partially assigned
	partial := models.SectionFacility{
		Section:    models.SectionRecord{Year: "1", Name: "Integrity"},
		Assignment: &models.SectionAssignmentRecord{Year: "1", Section: "Integrity", Building: "A", Floor: 2},
	}
	status = ProjectSectionFacility(partial)
	assert.Equal(t, dto.FacilityNotAssigned, status.Status)
	assert.Nil(t, status.Location)

	missing := models.SectionFacility{Section: models.SectionRecord{Year: "1", Name: "Unity"}}
	assert.Equal(t, dto.FacilityNotAssigned, ProjectSectionFacility(missing).Status)
}

func TestProjectBuildingLookupUnassigned(t *testing.T) {
	lookup := models.BuildingLookup{User: models.UserRecord{Username: "jdoe"}}
	resp := ProjectBuildingLookup(lookup)
	assert.Equal(t, dto.FacilityUnassigned, resp.Status)
	assert.Empty(t, resp.Building)
}

func TestProjectStanding(t *testing.T) {
	user := models.UserRecord{Username: "jdoe"}
	enrollment := &models.AssignmentRecord{
		PaymentStatus: models.PaymentOwing,
		OwingAmount:   floatPtr(1500),
	}
	now := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)

	resp := ProjectStanding(user, enrollment, correlate.EvaluateSanction("15", now))
	assert.Equal(t, "owing", resp.PaymentStatus)
	assert.True(t, resp.Sanctioned)
	assert.Equal(t, "15 day(s) remaining", resp.SanctionLabel)

	resp = ProjectStanding(user, enrollment, correlate.EvaluateSanction("probation", now))
	assert.Equal(t, "Yes", resp.SanctionLabel)
	assert.Equal(t, "probation", resp.SanctionNote)

	resp = ProjectStanding(user, nil, correlate.EvaluateSanction("", now))
	assert.Equal(t, "paid", resp.PaymentStatus)
	assert.False(t, resp.Sanctioned)
	assert.Equal(t, "No", resp.SanctionLabel)
}

func TestCatalog(t *testing.T) {
	catalog := DefaultCatalog()
	assert.True(t, catalog.HasMajor("BSED", "English"))
	assert.True(t, catalog.HasMajor("BSEED", "english"), "alias and case fold through normalization")
	assert.False(t, catalog.HasMajor("BSED", "Botany"))
	assert.True(t, catalog.HasMajor("BSIT", ""), "majorless courses accept blank major")
	assert.True(t, catalog.HasMajor("BSIT", "None"))
	assert.Nil(t, DefaultCatalog().Majors("UNKNOWN"))
}
