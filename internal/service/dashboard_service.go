package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type roleCounter interface {
	CountByRole(ctx context.Context) (map[models.UserRole]int, error)
}

type announcementCounter interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
}

// distributionBuckets fixes the grade histogram layout. Averages below the
// lowest bound land in the first bucket.
var distributionBuckets = []struct {
	label string
	lower float64
}{
	{"Below 75", 0},
	{"75-79", 75},
	{"80-84", 80},
	{"85-89", 85},
	{"90-94", 90},
	{"95-100", 95},
}

// DashboardServiceParams bundles dependencies for NewDashboardService.
type DashboardServiceParams struct {
	Users         roleCounter
	Sections      sectionRepository
	Grades        gradeRepository
	Enrollments   enrollmentReader
	Announcements announcementCounter
	Cache         *CacheService
	CacheTTL      time.Duration
	Logger        *zap.Logger
	Now           func() time.Time
}

// DashboardService composes the admin overview from every collection the
// portal correlates.
type DashboardService struct {
	users         roleCounter
	sections      sectionRepository
	grades        gradeRepository
	enrollments   enrollmentReader
	announcements announcementCounter
	cache         *CacheService
	cacheTTL      time.Duration
	logger        *zap.Logger
	now           func() time.Time
}

// NewDashboardService constructs a DashboardService filling defaults.
func NewDashboardService(params DashboardServiceParams) *DashboardService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = 5 * time.Minute
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &DashboardService{
		users:         params.Users,
		sections:      params.Sections,
		grades:        params.Grades,
		enrollments:   params.Enrollments,
		announcements: params.Announcements,
		cache:         params.Cache,
		cacheTTL:      params.CacheTTL,
		logger:        params.Logger,
		now:           params.Now,
	}
}

// AdminDashboard builds the composed admin overview, served from cache when
// a fresh copy exists.
func (s *DashboardService) AdminDashboard(ctx context.Context) (*dto.AdminDashboardResponse, bool, error) {
	const cacheKey = "dashboard:admin"
	return cachedFetch(ctx, s.cache, cacheKey, s.cacheTTL, func(ctx context.Context) (*dto.AdminDashboardResponse, error) {
		resp := &dto.AdminDashboardResponse{}

		roles, err := s.users.CountByRole(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to count users")
		}
		resp.UsersByRole = make([]dto.RoleCount, 0, len(roles))
		for role, count := range roles {
			resp.UsersByRole = append(resp.UsersByRole, dto.RoleCount{Role: string(role), Count: count})
		}
		sort.Slice(resp.UsersByRole, func(i, j int) bool {
			return resp.UsersByRole[i].Role < resp.UsersByRole[j].Role
		})

		facilities, err := s.facilityCoverage(ctx)
		if err != nil {
			return nil, err
		}
		resp.Facilities = *facilities

		grades, err := s.gradesOverview(ctx)
		if err != nil {
			return nil, err
		}
		resp.Grades = *grades

		standing, err := s.standingOverview(ctx)
		if err != nil {
			return nil, err
		}
		resp.Standing = *standing

		active := true
		if _, total, err := s.announcements.List(ctx, models.AnnouncementFilter{Active: &active, PageSize: 1}); err == nil {
			resp.OpenAnnouncements = total
		} else {
			s.logger.Warn("failed to count announcements", zap.Error(err))
		}
		return resp, nil
	})
}

func (s *DashboardService) facilityCoverage(ctx context.Context) (*dto.FacilityCoverage, error) {
	sections, err := s.sections.ListSections(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
	}
	assignments, err := s.sections.ListAssignments(ctx)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list room assignments")
	}

	index := correlate.NewIndex(assignments, func(a models.SectionAssignmentRecord) (string, bool) {
		if a.Year == "" || a.Section == "" {
			return "", false
		}
		return correlate.SectionKey(a.Year, a.Section), true
	}, false)

	coverage := &dto.FacilityCoverage{TotalSections: len(sections)}
	for _, section := range sections {
		if assignment, ok := index.Get(correlate.SectionKey(section.Year, section.Name)); ok && assignment.Located() {
			coverage.AssignedSections++
		}
	}
	if coverage.TotalSections > 0 {
		coverage.CoverageRate = float64(coverage.AssignedSections) / float64(coverage.TotalSections)
	}
	return coverage, nil
}

func (s *DashboardService) gradesOverview(ctx context.Context) (*dto.GradesOverview, error) {
	rows, err := s.grades.List(ctx, models.GradeFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list grades")
	}

	grouping := correlate.GroupBy(rows, func(g models.GradeRecord) (string, bool) {
		if g.Username != nil && *g.Username != "" {
			return *g.Username, true
		}
		if g.UserID != nil {
			return "id:" + strconv.FormatInt(*g.UserID, 10), true
		}
		return "", false
	})

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

	counts := make([]int, len(distributionBuckets))
	var total float64
	var graded int
	for _, key := range grouping.Keys {
		avg, ok := correlate.ReduceNumericAverage(grouping.Groups[key], fields...)
		if !ok {
			continue
		}
		graded++
		total += avg
		counts[bucketFor(avg)]++
	}

	overview := &dto.GradesOverview{GradedStudents: graded}
	if graded > 0 {
		avg := total / float64(graded)
		overview.OverallAverage = &avg
	}
	overview.Distribution = make([]dto.GradeDistributionBin, len(distributionBuckets))
	for i, bucket := range distributionBuckets {
		overview.Distribution[i] = dto.GradeDistributionBin{Bucket: bucket.label, Count: counts[i]}
	}
	return overview, nil
}

func (s *DashboardService) standingOverview(ctx context.Context) (*dto.StandingOverview, error) {
	enrollments, err := s.enrollments.List(ctx, models.AssignmentFilter{})
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}

	// One row per student; listing order is oldest-first so last wins.
	index := correlate.NewIndex(enrollments, func(a models.AssignmentRecord) (string, bool) {
		return a.Username, a.Username != ""
	}, false)

	overview := &dto.StandingOverview{}
	now := s.now()
	for _, key := range index.Keys() {
		enrollment, _ := index.Get(key)
		if enrollment.PaymentStatus == models.PaymentOwing {
			overview.OwingStudents++
		}
		raw := ""
		if enrollment.Sanctions != nil {
			raw = *enrollment.Sanctions
		}
		switch correlate.EvaluateSanction(raw, now).Kind {
		case correlate.SanctionDays, correlate.SanctionNote:
			overview.SanctionedStudents++
		}
	}
	return overview, nil
}

func bucketFor(avg float64) int {
	idx := 0
	for i, bucket := range distributionBuckets {
		if avg >= bucket.lower {
			idx = i
		}
	}
	return idx
}
