package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
)

type fakeSections struct {
	sections    []models.SectionRecord
	assignments []models.SectionAssignmentRecord
}

func (f *fakeSections) ListSections(_ context.Context) ([]models.SectionRecord, error) {
	return f.sections, nil
}

func (f *fakeSections) ListAssignments(_ context.Context) ([]models.SectionAssignmentRecord, error) {
	return f.assignments, nil
}

func newFacilityService(sections *fakeSections, enrollments *fakeEnrollments, users *fakeUsers) *FacilityService {
	return NewFacilityService(FacilityServiceParams{
		Sections:    sections,
		Enrollments: enrollments,
		Users:       users,
		Cache:       NewCacheService(nil, nil, time.Minute, zap.NewNop(), false),
		Logger:      zap.NewNop(),
	})
}

func TestFacilityMapLastWinsAndPartialRows(t *testing.T) {
	sections := &fakeSections{
		sections: []models.SectionRecord{
			{ID: 1, Year: "1st Year", Name: "A"},
			{ID: 2, Year: "2nd Year", Name: "B"},
			{ID: 3, Year: "3rd Year", Name: "C"},
		},
		assignments: []models.SectionAssignmentRecord{
			// duplicate key: the later row must win
			{ID: 1, Year: "1", Section: "A", Building: "Old", Floor: 1, Room: "101"},
			{ID: 2, Year: "first year", Section: "A", Building: "Main", Floor: 2, Room: "204"},
			// partial placement counts as not assigned
			{ID: 3, Year: "2", Section: "B", Building: "Annex", Floor: 0, Room: ""},
		},
	}

	svc := newFacilityService(sections, &fakeEnrollments{}, &fakeUsers{})
	resp, hit, err := svc.FacilityMap(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)

	assert.Equal(t, 3, resp.TotalCount)
	assert.Equal(t, 1, resp.AssignedCount)
	require.Len(t, resp.Sections, 3)

	assert.Equal(t, dto.FacilityAssigned, resp.Sections[0].Status)
	require.NotNil(t, resp.Sections[0].Location)
	assert.Equal(t, "Main/2/204", *resp.Sections[0].Location)

	assert.Equal(t, dto.FacilityNotAssigned, resp.Sections[1].Status)
	assert.Nil(t, resp.Sections[1].Location)
	assert.Equal(t, dto.FacilityNotAssigned, resp.Sections[2].Status)
}

func TestFacilityMapCaches(t *testing.T) {
	cacheRepo := &stubCacheRepo{}
	sections := &fakeSections{sections: []models.SectionRecord{{ID: 1, Year: "1", Name: "A"}}}
	svc := NewFacilityService(FacilityServiceParams{
		Sections:    sections,
		Enrollments: &fakeEnrollments{},
		Users:       &fakeUsers{},
		Cache:       NewCacheService(cacheRepo, nil, time.Minute, zap.NewNop(), true),
		Logger:      zap.NewNop(),
	})

	_, hit, err := svc.FacilityMap(context.Background())
	require.NoError(t, err)
	assert.False(t, hit)
	assert.Contains(t, cacheRepo.store, "facility:map")

	_, hit, err = svc.FacilityMap(context.Background())
	require.NoError(t, err)
	assert.True(t, hit)
}

func TestStudentBuildingFullChain(t *testing.T) {
	sections := &fakeSections{assignments: []models.SectionAssignmentRecord{
		{ID: 1, Year: "3", Section: "A", Building: "Main", Floor: 3, Room: "301"},
	}}
	enrollments := &fakeEnrollments{rows: []models.AssignmentRecord{
		{UserID: int64Ptr(7), Username: "jcruz", Year: "3rd Year", Section: "A", PaymentStatus: models.PaymentPaid},
	}}
	users := &fakeUsers{users: []models.UserRecord{studentFixture()}}

	svc := newFacilityService(sections, enrollments, users)
	resp, err := svc.StudentBuilding(context.Background(), 7)
	require.NoError(t, err)

	assert.Equal(t, dto.FacilityAssigned, resp.Status)
	assert.Equal(t, "Main", resp.Building)
	assert.Equal(t, 3, resp.Floor)
	assert.Equal(t, "301", resp.Room)
	require.NotNil(t, resp.Location)
	assert.Equal(t, "Main/3/301", *resp.Location)
	assert.Equal(t, "3rd Year", resp.YearLabel)
}

func TestStudentBuildingBrokenChainIsUnassigned(t *testing.T) {
	// enrollment exists but the section has no room row
	enrollments := &fakeEnrollments{rows: []models.AssignmentRecord{
		{UserID: int64Ptr(7), Username: "jcruz", Year: "3", Section: "Z", PaymentStatus: models.PaymentPaid},
	}}
	svc := newFacilityService(&fakeSections{}, enrollments, &fakeUsers{users: []models.UserRecord{studentFixture()}})

	resp, err := svc.StudentBuilding(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, dto.FacilityUnassigned, resp.Status)
	assert.Empty(t, resp.Building)
}

func TestStudentBuildingNoEnrollment(t *testing.T) {
	svc := newFacilityService(&fakeSections{}, &fakeEnrollments{}, &fakeUsers{users: []models.UserRecord{studentFixture()}})

	resp, err := svc.StudentBuilding(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, dto.FacilityUnassigned, resp.Status)
	assert.Empty(t, resp.Section)
}
