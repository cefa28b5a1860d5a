package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

type fakeSubjects struct {
	subjects    []models.SubjectRecord
	assignments []models.TeacherAssignmentRecord
	loads       []models.StudyLoadRecord
}

func (f *fakeSubjects) ListSubjects(_ context.Context, _ string) ([]models.SubjectRecord, error) {
	return f.subjects, nil
}

func (f *fakeSubjects) ListTeacherAssignments(_ context.Context, _ string) ([]models.TeacherAssignmentRecord, error) {
	return f.assignments, nil
}

func (f *fakeSubjects) ListStudyLoads(_ context.Context, _ models.StudyLoadFilter) ([]models.StudyLoadRecord, error) {
	return f.loads, nil
}

func newStudyLoadService(subjects *fakeSubjects, users *fakeUsers) *StudyLoadService {
	return NewStudyLoadService(StudyLoadServiceParams{
		Subjects: subjects,
		Users:    users,
		Logger:   zap.NewNop(),
	})
}

func TestStudyLoadGroupsPerSemester(t *testing.T) {
	teacher := "Prof. Reyes"
	subjects := &fakeSubjects{loads: []models.StudyLoadRecord{
		{Course: "BSED", Major: "English", YearLevel: 3, SubjectCode: "ENG301", SubjectTitle: "Linguistics", Units: 3, Semester: "2nd", Teacher: &teacher},
		{Course: "BSED", Major: "English", YearLevel: 3, SubjectCode: "ENG302", SubjectTitle: "Literature", Units: 3, Semester: "First Semester"},
		{Course: "BSED", Major: "English", YearLevel: 3, SubjectCode: "ENG303", SubjectTitle: "Phonology", Units: 2, Semester: "1st sem"},
	}}

	svc := newStudyLoadService(subjects, &fakeUsers{})
	resp, err := svc.StudyLoad(context.Background(), models.StudyLoadFilter{Course: "bsed", Major: "English", YearLevel: 3})
	require.NoError(t, err)

	assert.Equal(t, "BSED", resp.Course)
	assert.Equal(t, "3rd Year", resp.YearLabel)
	assert.False(t, resp.UnknownMajors)
	assert.Equal(t, 8.0, resp.TotalUnits)

	require.Len(t, resp.Semesters, 2)
	assert.Equal(t, "First Semester", resp.Semesters[0].Label)
	assert.Equal(t, 5.0, resp.Semesters[0].TotalUnits)
	require.Len(t, resp.Semesters[0].Rows, 2)
	assert.Equal(t, "TBA", resp.Semesters[0].Rows[0].Teacher)

	assert.Equal(t, "Second Semester", resp.Semesters[1].Label)
	assert.Equal(t, "Prof. Reyes", resp.Semesters[1].Rows[0].Teacher)
}

func TestStudyLoadAliasCourseAndUnknownMajor(t *testing.T) {
	svc := newStudyLoadService(&fakeSubjects{}, &fakeUsers{})

	// BSEED is a historical typo for BSED
	resp, err := svc.StudyLoad(context.Background(), models.StudyLoadFilter{Course: "BSEED", Major: "English"})
	require.NoError(t, err)
	assert.Equal(t, "BSED", resp.Course)
	assert.False(t, resp.UnknownMajors)

	resp, err = svc.StudyLoad(context.Background(), models.StudyLoadFilter{Course: "BSED", Major: "Astrology"})
	require.NoError(t, err)
	assert.True(t, resp.UnknownMajors)
}

func TestStudyLoadRequiresCourse(t *testing.T) {
	svc := newStudyLoadService(&fakeSubjects{}, &fakeUsers{})
	_, err := svc.StudyLoad(context.Background(), models.StudyLoadFilter{})
	require.Error(t, err)
}

func TestTeacherScheduleJoinsSubjects(t *testing.T) {
	name := "Prof. Reyes"
	teacher := models.UserRecord{ID: 20, Username: "preyes", FullName: &name, Role: models.RoleTeacher, Active: true}

	subjects := &fakeSubjects{
		subjects: []models.SubjectRecord{
			{ID: 1, SubjectCode: "ENG301", Title: "Linguistics", Units: 3, YearLevel: 3, Semester: "First Semester"},
			{ID: 2, SubjectCode: "ENG302", Title: "Literature", Units: 3, YearLevel: 3, Semester: "Second Semester"},
		},
		assignments: []models.TeacherAssignmentRecord{
			// case differences in the code must not break the match
			{ID: 1, SubjectCode: "eng301", TeacherName: name},
			{ID: 2, SubjectCode: "ENG302", TeacherName: name},
			{ID: 3, SubjectCode: "GHOST999", TeacherName: name},
		},
	}

	svc := newStudyLoadService(subjects, &fakeUsers{users: []models.UserRecord{teacher}})
	resp, err := svc.TeacherSchedule(context.Background(), 20)
	require.NoError(t, err)

	assert.Equal(t, "Prof. Reyes", resp.TeacherName)
	assert.Equal(t, 2, resp.SubjectCount)
	assert.Equal(t, 1, resp.UnknownSubjects)
	require.Len(t, resp.Semesters, 2)
	assert.Equal(t, "First Semester", resp.Semesters[0].Label)
	require.Len(t, resp.Semesters[0].Entries, 1)
	assert.Equal(t, "ENG301", resp.Semesters[0].Entries[0].SubjectCode)
	assert.Equal(t, "3rd Year", resp.Semesters[0].Entries[0].YearLabel)
}

func TestTeacherScheduleDuplicateCodeFirstWins(t *testing.T) {
	name := "Prof. Reyes"
	teacher := models.UserRecord{ID: 20, Username: "preyes", FullName: &name, Role: models.RoleTeacher, Active: true}

	subjects := &fakeSubjects{
		subjects: []models.SubjectRecord{
			{ID: 1, SubjectCode: "ENG301", Title: "Linguistics", Units: 3, YearLevel: 3, Semester: "First Semester"},
			{ID: 2, SubjectCode: "ENG301", Title: "Linguistics (revised)", Units: 4, YearLevel: 3, Semester: "First Semester"},
		},
		assignments: []models.TeacherAssignmentRecord{
			{ID: 1, SubjectCode: "ENG301", TeacherName: name},
		},
	}

	svc := newStudyLoadService(subjects, &fakeUsers{users: []models.UserRecord{teacher}})
	resp, err := svc.TeacherSchedule(context.Background(), 20)
	require.NoError(t, err)

	require.Len(t, resp.Semesters, 1)
	require.Len(t, resp.Semesters[0].Entries, 1)
	assert.Equal(t, "Linguistics", resp.Semesters[0].Entries[0].Title)
	assert.InDelta(t, 3, resp.Semesters[0].Entries[0].Units, 0.0001)
}

func TestTeacherScheduleRejectsNonTeacher(t *testing.T) {
	svc := newStudyLoadService(&fakeSubjects{}, &fakeUsers{users: []models.UserRecord{studentFixture()}})
	_, err := svc.TeacherSchedule(context.Background(), 7)
	require.Error(t, err)
}
