package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

type fakeRoleCounter struct {
	counts map[models.UserRole]int
}

func (f *fakeRoleCounter) CountByRole(_ context.Context) (map[models.UserRole]int, error) {
	return f.counts, nil
}

type fakeAnnouncementRepo struct {
	rows  []models.Announcement
	total int
}

func (f *fakeAnnouncementRepo) List(_ context.Context, _ models.AnnouncementFilter) ([]models.Announcement, int, error) {
	return f.rows, f.total, nil
}

func TestAdminDashboardComposesAndCaches(t *testing.T) {
	cacheRepo := &stubCacheRepo{}
	cacheSvc := NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true)
	now := time.Date(2026, 3, 1, 8, 0, 0, 0, time.UTC)

	svc := NewDashboardService(DashboardServiceParams{
		Users: &fakeRoleCounter{counts: map[models.UserRole]int{
			models.RoleStudent: 120,
			models.RoleTeacher: 14,
			models.RoleAdmin:   2,
		}},
		Sections: &fakeSections{
			sections: []models.SectionRecord{
				{ID: 1, Year: "1", Name: "A"},
				{ID: 2, Year: "2", Name: "B"},
			},
			assignments: []models.SectionAssignmentRecord{
				{ID: 1, Year: "1", Section: "A", Building: "Main", Floor: 1, Room: "101"},
			},
		},
		Grades: &fakeGrades{rows: []models.GradeRecord{
			{Username: strPtr("jcruz"), Semester: "First Semester", Subject: "ENG101", Prelim: floatPtr(92)},
			{Username: strPtr("msantos"), Semester: "First Semester", Subject: "ENG101", Prelim: floatPtr(70)},
			{Username: strPtr("nobody-graded"), Semester: "First Semester", Subject: "PE101"},
		}},
		Enrollments: &fakeEnrollments{rows: []models.AssignmentRecord{
			{Username: "jcruz", Year: "3", Section: "A", PaymentStatus: models.PaymentPaid},
			{Username: "msantos", Year: "3", Section: "A", PaymentStatus: models.PaymentOwing, Sanctions: strPtr("5")},
		}},
		Announcements: &fakeAnnouncementRepo{total: 4},
		Cache:         cacheSvc,
		Logger:        zap.NewNop(),
		Now:           func() time.Time { return now },
	})

	resp, hit, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	require.Len(t, resp.UsersByRole, 3)
	assert.Equal(t, "ADMIN", resp.UsersByRole[0].Role)
	assert.Equal(t, "STUDENT", resp.UsersByRole[1].Role)
	assert.Equal(t, 120, resp.UsersByRole[1].Count)

	assert.Equal(t, 1, resp.Facilities.AssignedSections)
	assert.Equal(t, 2, resp.Facilities.TotalSections)
	assert.InDelta(t, 0.5, resp.Facilities.CoverageRate, 0.0001)

	assert.Equal(t, 2, resp.Grades.GradedStudents)
	require.NotNil(t, resp.Grades.OverallAverage)
	assert.InDelta(t, 81, *resp.Grades.OverallAverage, 0.0001)
	require.Len(t, resp.Grades.Distribution, 6)
	assert.Equal(t, "Below 75", resp.Grades.Distribution[0].Bucket)
	assert.Equal(t, 1, resp.Grades.Distribution[0].Count)
	assert.Equal(t, "90-94", resp.Grades.Distribution[4].Bucket)
	assert.Equal(t, 1, resp.Grades.Distribution[4].Count)

	assert.Equal(t, 1, resp.Standing.OwingStudents)
	assert.Equal(t, 1, resp.Standing.SanctionedStudents)
	assert.Equal(t, 4, resp.OpenAnnouncements)

	assert.Contains(t, cacheRepo.store, "dashboard:admin")

	cached, hit, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
	assert.Equal(t, resp, cached)
}

func TestAdminDashboardLastEnrollmentWins(t *testing.T) {
	svc := NewDashboardService(DashboardServiceParams{
		Users:    &fakeRoleCounter{},
		Sections: &fakeSections{},
		Grades:   &fakeGrades{},
		Enrollments: &fakeEnrollments{rows: []models.AssignmentRecord{
			// oldest-first listing: the later paid row supersedes the owing one
			{Username: "jcruz", Year: "3", Section: "A", PaymentStatus: models.PaymentOwing},
			{Username: "jcruz", Year: "3", Section: "A", PaymentStatus: models.PaymentPaid},
		}},
		Announcements: &fakeAnnouncementRepo{},
		Cache:         NewCacheService(nil, nil, time.Minute, zap.NewNop(), false),
	})

	resp, _, err := svc.AdminDashboard(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, resp.Standing.OwingStudents)
}
