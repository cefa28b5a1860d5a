package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/campus-portal-api/internal/correlate"
	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/view"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

// StandingServiceParams bundles dependencies for NewStandingService.
type StandingServiceParams struct {
	Enrollments enrollmentReader
	Users       facilityUserRepository
	Logger      *zap.Logger
	Now         func() time.Time
}

// StandingService evaluates payment and sanction status per student.
type StandingService struct {
	enrollments enrollmentReader
	users       facilityUserRepository
	logger      *zap.Logger
	now         func() time.Time
}

// NewStandingService constructs a StandingService. Now is injectable so
// day-remaining arithmetic stays testable.
func NewStandingService(params StandingServiceParams) *StandingService {
	if params.Logger == nil {
		params.Logger = zap.NewNop()
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &StandingService{
		enrollments: params.Enrollments,
		users:       params.Users,
		logger:      params.Logger,
		now:         params.Now,
	}
}

// StudentStanding reports a student's payment state and sanction status. A
// student with no enrollment row is treated as settled and unsanctioned.
func (s *StandingService) StudentStanding(ctx context.Context, userID int64) (*dto.StudentStandingResponse, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load student")
	}

	enrollment, err := s.enrollments.FindCurrent(ctx, user.ID, user.Username)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load enrollment")
	}

	raw := ""
	if enrollment != nil && enrollment.Sanctions != nil {
		raw = *enrollment.Sanctions
	}
	sanction := correlate.EvaluateSanction(raw, s.now())

	resp := view.ProjectStanding(*user, enrollment, sanction)
	return &resp, nil
}
