package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/view"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type sectionRepository interface {
	ListSections(ctx context.Context) ([]models.SectionRecord, error)
	ListAssignments(ctx context.Context) ([]models.SectionAssignmentRecord, error)
}

type facilityUserRepository interface {
	FindByID(ctx context.Context, id int64) (*models.UserRecord, error)
}

// FacilityServiceParams bundles dependencies for NewFacilityService.
type FacilityServiceParams struct {
	Sections    sectionRepository
	Enrollments enrollmentReader
	Users       facilityUserRepository
	Cache       *CacheService
	CacheTTL    time.Duration
	Logger      *zap.Logger
}

// FacilityService resolves sections and students to physical rooms.
type FacilityService struct {
	sections    sectionRepository
	enrollments enrollmentReader
	users       facilityUserRepository
	cache       *CacheService
	cacheTTL    time.Duration
	logger      *zap.Logger
}

// NewFacilityService constructs a FacilityService.
func NewFacilityService(params FacilityServiceParams) *FacilityService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.CacheTTL <= 0 {
		params.CacheTTL = 5 * time.Minute
	}
	return &FacilityService{
		sections:    params.Sections,
		enrollments: params.Enrollments,
		users:       params.Users,
		cache:       params.Cache,
		cacheTTL:    params.CacheTTL,
		logger:      params.Logger,
	}
}

// FacilityMap reports the room placement status of every active section in
// listing order.
func (s *FacilityService) FacilityMap(ctx context.Context) (*dto.FacilityMapResponse, bool, error) {
	const cacheKey = "facility:map"
	return cachedFetch(ctx, s.cache, cacheKey, s.cacheTTL, func(ctx context.Context) (*dto.FacilityMapResponse, error) {
		sections, err := s.sections.ListSections(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list sections")
		}

		index, err := s.assignmentIndex(ctx)
		if err != nil {
			return nil, err
		}

		resp := &dto.FacilityMapResponse{
			Sections:    make([]dto.SectionFacilityStatus, 0, len(sections)),
			TotalCount:  len(sections),
			SkippedRows: index.Skipped(),
		}
		for _, section := range sections {
			facility := models.SectionFacility{Section: section}
			if assignment, ok := index.Get(correlate.SectionKey(section.Year, section.Name)); ok {
				facility.Assignment = &assignment
			}
			status := view.ProjectSectionFacility(facility)
			if status.Status == dto.FacilityAssigned {
				resp.AssignedCount++
			}
			resp.Sections = append(resp.Sections, status)
		}
		return resp, nil
	})
}

// StudentBuilding walks the student -> enrollment -> room-assignment chain.
// A broken link anywhere yields an Unassigned answer, not an error.
func (s *FacilityService) StudentBuilding(ctx context.Context, userID int64) (*dto.StudentBuildingResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	lookup := models.BuildingLookup{User: *user}

	enrollment, err := s.enrollments.FindCurrent(ctx, user.ID, user.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}
	if enrollment != nil {
		lookup.Enrollment = enrollment

		index, err := s.assignmentIndex(ctx)
		if err != nil {
			return nil, err
		}
		if assignment, ok := index.Get(correlate.SectionKey(enrollment.Year, enrollment.Section)); ok {
			lookup.Assignment = &assignment
		}
	}

	resp := view.ProjectBuildingLookup(lookup)
	return &resp, nil
}

// assignmentIndex builds the last-wins room lookup keyed by normalized
// (year, section). Listing order is id ascending, so the most recently saved
// duplicate wins.
func (s *FacilityService) assignmentIndex(ctx context.Context) (*correlate.Index[models.SectionAssignmentRecord], error) {
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
	if index.Skipped() > 0 {
		s.logger.Debug("room assignments skipped", zap.Int("count", index.Skipped()))
	}
	return index, nil
}
