package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/models"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type announcementRepository interface {
	List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error)
}

// AnnouncementService lists portal notices scoped to the caller's role.
type AnnouncementService struct {
	repo    announcementRepository
	logger  *zap.Logger
	enabled bool
}

// NewAnnouncementService constructs an AnnouncementService.
func NewAnnouncementService(repo announcementRepository, logger *zap.Logger, enabled bool) *AnnouncementService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnnouncementService{repo: repo, logger: logger, enabled: enabled}
}

// Enabled reports whether the announcements surface is switched on.
func (s *AnnouncementService) Enabled() bool {
	return s != nil && s.enabled
}

// List returns active announcements visible to the given role.
func (s *AnnouncementService) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, *models.Pagination, error) {
	if !s.Enabled() {
		return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "announcements are disabled")
	}

	announcements, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list announcements")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize <= 0 {
		pageSize = 20
	}

	return announcements, &models.Pagination{Page: page, PageSize: pageSize, TotalCount: total}, nil
}
