package service

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/view"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type subjectRepository interface {
	ListSubjects(ctx context.Context, course string) ([]models.SubjectRecord, error)
	ListTeacherAssignments(ctx context.Context, teacherName string) ([]models.TeacherAssignmentRecord, error)
	ListStudyLoads(ctx context.Context, filter models.StudyLoadFilter) ([]models.StudyLoadRecord, error)
}

// StudyLoadServiceParams bundles dependencies for NewStudyLoadService.
type StudyLoadServiceParams struct {
	Subjects subjectRepository
	Users    facilityUserRepository
	Catalog  *view.Catalog
	Logger   *zap.Logger
}

// StudyLoadService assembles cohort study loads and teacher schedules.
type StudyLoadService struct {
	subjects subjectRepository
	users    facilityUserRepository
	catalog  *view.Catalog
	logger   *zap.Logger
}

// NewStudyLoadService constructs a StudyLoadService.
func NewStudyLoadService(params StudyLoadServiceParams) *StudyLoadService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Catalog == nil {
		params.Catalog = view.DefaultCatalog()
	}
	return &StudyLoadService{
		subjects: params.Subjects,
		users:    params.Users,
		catalog:  params.Catalog,
		logger:   params.Logger,
	}
}

// StudyLoad lists a cohort's subjects grouped per semester. The course and
// major are checked against the catalog; an unknown pairing is flagged but
// still answered from whatever rows exist.
func (s *StudyLoadService) StudyLoad(ctx context.Context, filter models.StudyLoadFilter) (*dto.StudyLoadResponse, error) {
	if strings.TrimSpace(filter.Course) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course is required")
	}

	course := correlate.NormalizeDepartment(filter.Course)
	unknown := !s.catalog.HasMajor(course, filter.Major)

	rows, err := s.subjects.ListStudyLoads(ctx, filter)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list study loads")
	}

	grouping := correlate.GroupBy(rows, func(r models.StudyLoadRecord) (string, bool) {
		return correlate.NormalizeSemester(r.Semester), true
	})

	resp := &dto.StudyLoadResponse{
		Course:        course,
		Major:         strings.TrimSpace(filter.Major),
		YearLabel:     view.FormatYearLabel(strconv.Itoa(filter.YearLevel)),
		UnknownMajors: unknown,
	}
	for _, label := range semesterOrder {
		group, ok := grouping.Groups[label]
		if !ok {
			continue
		}
		block := dto.StudyLoadSemester{Label: label, Rows: make([]dto.StudyLoadRow, 0, len(group))}
		for _, row := range group {
			loadRow := dto.StudyLoadRow{
				SubjectCode: row.SubjectCode,
				Title:       row.SubjectTitle,
				Units:       row.Units,
				Teacher:     "TBA",
			}
			if row.Teacher != nil && strings.TrimSpace(*row.Teacher) != "" {
				loadRow.Teacher = strings.TrimSpace(*row.Teacher)
			}
			block.Rows = append(block.Rows, loadRow)
			block.TotalUnits += row.Units
		}
		resp.TotalUnits += block.TotalUnits
		resp.Semesters = append(resp.Semesters, block)
	}

	return resp, nil
}

// TeacherSchedule lists the subjects a teacher handles, grouped per
// semester. Assignment rows naming a subject code absent from the curriculum
// are counted, not invented.
func (s *StudyLoadService) TeacherSchedule(ctx context.Context, teacherID int64) (*dto.TeacherScheduleResponse, error) {
	user, err := s.users.FindByID(ctx, teacherID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "teacher not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load teacher")
	}
	if user.Role != models.RoleTeacher {
		return nil, appErrors.Clone(appErrors.ErrValidation, "user is not a teacher")
	}

	assignments, err := s.subjects.ListTeacherAssignments(ctx, user.DisplayName())
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list teacher assignments")
	}

	subjects, err := s.subjects.ListSubjects(ctx, "")
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list subjects")
	}

	// Subject codes compare case-insensitively across collections. The
	// index keeps every row per code; the one-to-one join then resolves a
	// duplicated code to the first catalog row, not the last.
	subjectIndex := correlate.NewIndex(subjects, func(sub models.SubjectRecord) (string, bool) {
		code := strings.ToUpper(strings.TrimSpace(sub.SubjectCode))
		return code, code != ""
	}, true)

	joined, err := correlate.Join(assignments, subjectIndex, func(a models.TeacherAssignmentRecord) (string, bool) {
		code := strings.ToUpper(strings.TrimSpace(a.SubjectCode))
		return code, code != ""
	}, correlate.OneToOne)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to correlate schedule")
	}

	type entryWithSemester struct {
		entry    dto.TeacherScheduleEntry
		semester string
	}
	entries := make([]entryWithSemester, 0, len(joined.Matched))
	for _, pair := range joined.Matched {
		subject := *pair.Right
		entries = append(entries, entryWithSemester{
			entry: dto.TeacherScheduleEntry{
				SubjectCode: subject.SubjectCode,
				Title:       subject.Title,
				YearLabel:   view.FormatYearLabel(strconv.Itoa(subject.YearLevel)),
				Units:       subject.Units,
			},
			semester: correlate.NormalizeSemester(subject.Semester),
		})
	}

	grouping := correlate.GroupBy(entries, func(e entryWithSemester) (string, bool) {
		return e.semester, true
	})

	resp := &dto.TeacherScheduleResponse{
		TeacherName:     user.DisplayName(),
		SubjectCount:    len(joined.Matched),
		UnknownSubjects: len(joined.UnmatchedLeft),
	}
	for _, label := range semesterOrder {
		group, ok := grouping.Groups[label]
		if !ok {
			continue
		}
		block := dto.TeacherScheduleGroup{Label: label, Entries: make([]dto.TeacherScheduleEntry, 0, len(group))}
		for _, item := range group {
			block.Entries = append(block.Entries, item.entry)
		}
		resp.Semesters = append(resp.Semesters, block)
	}

	return resp, nil
}
