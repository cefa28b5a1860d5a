package repository

import (
	"context"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// AnnouncementRepository fetches portal announcements.
type AnnouncementRepository struct {
	db *sqlx.DB
}

// NewAnnouncementRepository creates a new announcement repository.
func NewAnnouncementRepository(db *sqlx.DB) *AnnouncementRepository {
	return &AnnouncementRepository{db: db}
}

// List returns announcements matching the filter plus the unpaginated total.
// The audience column stores a comma-separated role list.
func (r *AnnouncementRepository) List(ctx context.Context, filter models.AnnouncementFilter) ([]models.Announcement, int, error) {
	where := " WHERE 1=1"
	var args []interface{}
	if filter.Role != nil {
		where += fmt.Sprintf(" AND (audience = '' OR audience ILIKE $%d)", len(args)+1)
		args = append(args, "%"+string(*filter.Role)+"%")
	}
	if filter.Active != nil && *filter.Active {
		where += " AND (expires_at IS NULL OR expires_at > NOW())"
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	pageSize := filter.PageSize
	if pageSize < 1 {
		pageSize = 20
	}

	query := fmt.Sprintf(`SELECT id, title, body, audience, posted_by, posted_at, expires_at
        FROM announcements%s ORDER BY posted_at DESC LIMIT %d OFFSET %d`, where, pageSize, (page-1)*pageSize)
	var announcements []models.Announcement
	if err := r.db.SelectContext(ctx, &announcements, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list announcements: %w", err)
	}

	for i := range announcements {
		announcements[i].AudienceRoles = parseAudience(announcements[i].Audience)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, "SELECT COUNT(*) FROM announcements"+where, args...); err != nil {
		return nil, 0, fmt.Errorf("count announcements: %w", err)
	}
	return announcements, total, nil
}

func parseAudience(raw string) []models.UserRole {
	if strings.TrimSpace(raw) == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	roles := make([]models.UserRole, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.ToUpper(strings.TrimSpace(part))
		if trimmed != "" {
			roles = append(roles, models.UserRole(trimmed))
		}
	}
	return roles
}
