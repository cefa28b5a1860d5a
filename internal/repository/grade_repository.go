package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// GradeRepository fetches raw grade rows.
type GradeRepository struct {
	db *sqlx.DB
}

// NewGradeRepository creates a new grade repository.
func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

const gradeColumns = "id, user_id, username, year, semester, subject, instructor, prelim_grade, midterm_grade, finals_grade"

// List returns grade rows matching the filter in insertion order.
func (r *GradeRepository) List(ctx context.Context, filter models.GradeFilter) ([]models.GradeRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM grades WHERE 1=1", gradeColumns)
	var args []interface{}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND (user_id = $%d", len(args)+1)
		args = append(args, *filter.UserID)
		if filter.Username != "" {
			query += fmt.Sprintf(" OR (user_id IS NULL AND username = $%d)", len(args)+1)
			args = append(args, filter.Username)
		}
		query += ")"
	} else if filter.Username != "" {
		query += fmt.Sprintf(" AND username = $%d", len(args)+1)
		args = append(args, filter.Username)
	}
	if filter.Year != "" {
		query += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, filter.Year)
	}
	if filter.Semester != "" {
		query += fmt.Sprintf(" AND semester = $%d", len(args)+1)
		args = append(args, filter.Semester)
	}
	query += " ORDER BY id ASC"

	var grades []models.GradeRecord
	if err := r.db.SelectContext(ctx, &grades, query, args...); err != nil {
		return nil, fmt.Errorf("list grades: %w", err)
	}
	return grades, nil
}
