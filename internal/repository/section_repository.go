package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// SectionRepository fetches sections and their room assignments.
type SectionRepository struct {
	db *sqlx.DB
}

// NewSectionRepository creates a new section repository.
func NewSectionRepository(db *sqlx.DB) *SectionRepository {
	return &SectionRepository{db: db}
}

// ListSections returns every active section in a stable order.
func (r *SectionRepository) ListSections(ctx context.Context) ([]models.SectionRecord, error) {
	const query = "SELECT id, year, name FROM sections ORDER BY year, name, id"
	var sections []models.SectionRecord
	if err := r.db.SelectContext(ctx, &sections, query); err != nil {
		return nil, fmt.Errorf("list sections: %w", err)
	}
	return sections, nil
}

// ListAssignments returns room assignments ordered oldest-first so a
// last-wins index keeps the most recently saved row per (year, section).
func (r *SectionRepository) ListAssignments(ctx context.Context) ([]models.SectionAssignmentRecord, error) {
	const query = "SELECT id, year, section, building, floor, room FROM section_assignments ORDER BY id ASC"
	var assignments []models.SectionAssignmentRecord
	if err := r.db.SelectContext(ctx, &assignments, query); err != nil {
		return nil, fmt.Errorf("list section assignments: %w", err)
	}
	return assignments, nil
}
