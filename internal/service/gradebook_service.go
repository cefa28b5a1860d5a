package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/view"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type gradeRepository interface {
	List(ctx context.Context, filter models.GradeFilter) ([]models.GradeRecord, error)
}

type enrollmentReader interface {
	List(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentRecord, error)
	FindCurrent(ctx context.Context, userID int64, username string) (*models.AssignmentRecord, error)
}

type studentDirectory interface {
	FindByID(ctx context.Context, id int64) (*models.UserRecord, error)
	ListByRole(ctx context.Context, role models.UserRole) ([]models.UserRecord, error)
}

// semesterOrder fixes the display order of semester groups regardless of row
// order in the source data.
var semesterOrder = []string{"First Semester", "Second Semester", "Other Semester"}

// GradebookServiceParams bundles dependencies for NewGradebookService.
type GradebookServiceParams struct {
	Grades        gradeRepository
	Enrollments   enrollmentReader
	Users         studentDirectory
	Cache         *CacheService
	PassThreshold float64
	CacheTTL      time.Duration
	Logger        *zap.Logger
}

// GradebookService correlates grade rows into per-student summaries and
// display-ready grade cards.
type GradebookService struct {
	grades        gradeRepository
	enrollments   enrollmentReader
	users         studentDirectory
	cache         *CacheService
	passThreshold float64
	cacheTTL      time.Duration
	logger        *zap.Logger
}

// NewGradebookService constructs a GradebookService filling sane defaults.
func NewGradebookService(params GradebookServiceParams) *GradebookService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.PassThreshold <= 0 {
		params.PassThreshold = 75
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = 5 * time.Minute
	}
	return &GradebookService{
		grades:        params.Grades,
		enrollments:   params.Enrollments,
		users:         params.Users,
		cache:         params.Cache,
		passThreshold: params.PassThreshold,
		cacheTTL:      params.CacheTTL,
		logger:        params.Logger,
	}
}

// StudentGradeCard builds the display card for one student's grades.
func (s *GradebookService) StudentGradeCard(ctx context.Context, userID int64) (*dto.StudentGradeCard, bool, error) {
	cacheKey := fmt.Sprintf("gradebook:student:%d", userID)
	return cachedFetch(ctx, s.cache, cacheKey, s.cacheTTL, func(ctx context.Context) (*dto.StudentGradeCard, error) {
		summary, err := s.StudentSummary(ctx, userID)
		if err != nil {
			return nil, err
		}
		card := view.ProjectGradeCard(*summary, s.passThreshold)
		return &card, nil
	})
}

// StudentSummary aggregates one student's grade rows across semesters.
func (s *GradebookService) StudentSummary(ctx context.Context, userID int64) (*models.StudentGradeSummary, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	year := ""
	if enrollment, err := s.enrollments.FindCurrent(ctx, user.ID, user.Username); err == nil {
		year = enrollment.Year
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}

	rows, err := s.grades.List(ctx, models.GradeFilter{UserID: &user.ID, Username: user.Username})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load grades")
	}

	summary := Summarize(*user, year, rows)
	return &summary, nil
}

// AllStudentSummaries aggregates grades for every active student. The second
// return value counts grade rows that reached no summary: rows with no
// derivable student key plus rows keyed to a username outside the roster.
func (s *GradebookService) AllStudentSummaries(ctx context.Context, year, semester string) ([]models.StudentGradeSummary, int, error) {
	students, err := s.users.ListByRole(ctx, models.RoleStudent)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list students")
	}

	rows, err := s.grades.List(ctx, models.GradeFilter{Year: year, Semester: semester})
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	enrollments, err := s.enrollments.List(ctx, models.AssignmentFilter{})
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	// Grade rows reference students weakly: newer rows by numeric id, legacy
	// rows by username. Resolve both through the id index before joining.
	usersByID := correlate.NewIndex(students, func(u models.UserRecord) (string, bool) {
		return strconv.FormatInt(u.ID, 10), true
	}, false)

	gradesByStudent := correlate.NewIndex(rows, func(g models.GradeRecord) (string, bool) {
		if g.Username != nil && *g.Username != "" {
			return *g.Username, true
		}
		if g.UserID != nil {
			if user, ok := usersByID.Get(strconv.FormatInt(*g.UserID, 10)); ok {
				return user.Username, true
			}
		}
		return "", false
	}, true)

	enrollmentByStudent := correlate.NewIndex(enrollments, func(a models.AssignmentRecord) (string, bool) {
		return a.Username, a.Username != ""
	}, false)

	joined, err := correlate.Join(students, gradesByStudent, func(u models.UserRecord) (string, bool) {
		return u.Username, u.Username != ""
	}, correlate.OneToMany)
	if err != nil {
		return nil, 0, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to correlate grades")
	}

	summaries := make([]models.StudentGradeSummary, 0, len(joined.Matched))
	for _, pair := range joined.Matched {
		yearValue := ""
		if enrollment, ok := enrollmentByStudent.Get(pair.Left.Username); ok {
			yearValue = enrollment.Year
		}
		summaries = append(summaries, Summarize(pair.Left, yearValue, pair.Rights))
	}

	orphaned := gradesByStudent.Skipped() + len(joined.UnmatchedRight)
	return summaries, orphaned, nil
}

// Summarize folds a student's grade rows into per-semester and overall
// aggregates. A subject with no entered score inflates SubjectCount but stays
// out of every average.
func Summarize(user models.UserRecord, year string, rows []models.GradeRecord) models.StudentGradeSummary {
	fields := []correlate.FieldFunc[models.GradeRecord]{
		func(g models.GradeRecord) (float64, bool) {
			if g.Prelim == nil {
				return 0, false
			}
			return *g.Prelim, true
		},
		func(g models.GradeRecord) (float64, bool) {
			if g.Midterm == nil {
				return 0, false
			}
			return *g.Midterm, true
		},
		func(g models.GradeRecord) (float64, bool) {
			if g.Finals == nil {
				return 0, false
			}
			return *g.Finals, true
		},
	}

	grouping := correlate.GroupBy(rows, func(g models.GradeRecord) (string, bool) {
		return correlate.NormalizeSemester(g.Semester), true
	})

	semesters := make([]models.SemesterGradeSummary, 0, len(grouping.Keys))
	for _, label := range semesterOrder {
		group, ok := grouping.Groups[label]
		if !ok {
			continue
		}
		entry := models.SemesterGradeSummary{
			Semester:     label,
			SubjectCount: len(group),
		}
		for _, row := range group {
			if row.Graded() {
				entry.GradedCount++
			}
		}
		if avg, ok := correlate.ReduceNumericAverage(group, fields...); ok {
			entry.Average = &avg
		}
		semesters = append(semesters, entry)
	}

	summary := models.StudentGradeSummary{
		UserID:           &user.ID,
		Username:         user.Username,
		DisplayName:      user.DisplayName(),
		Year:             year,
		Semesters:        semesters,
		SubjectsRecorded: len(rows),
		SkippedRows:      grouping.Skipped,
	}
	if avg, ok := correlate.ReduceNumericAverage(rows, fields...); ok {
		summary.OverallAverage = &avg
	}
	return summary
}
