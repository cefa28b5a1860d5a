package models

import "time"

// Announcement is a portal notice scoped to one or more audience roles.
type Announcement struct {
	ID            int64      `db:"id" json:"id"`
	Title         string     `db:"title" json:"title"`
	Body          string     `db:"body" json:"body"`
	AudienceRoles []UserRole `json:"audience_roles"`
	Audience      string     `db:"audience" json:"-"`
	PostedBy      string     `db:"posted_by" json:"posted_by"`
	PostedAt      time.Time  `db:"posted_at" json:"posted_at"`
	ExpiresAt     *time.Time `db:"expires_at" json:"expires_at,omitempty"`
}

// AnnouncementFilter scopes announcement listings.
type AnnouncementFilter struct {
	Role     *UserRole
	Active   *bool
	Page     int
	PageSize int
}
