package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// EnrollmentRepository fetches student year/section assignment rows.
type EnrollmentRepository struct {
	db *sqlx.DB
}

// NewEnrollmentRepository creates a new enrollment repository.
func NewEnrollmentRepository(db *sqlx.DB) *EnrollmentRepository {
	return &EnrollmentRepository{db: db}
}

const enrollmentColumns = "id, user_id, username, year, section, department, major, payment_status, owing_amount, sanctions, updated_at"

// List returns enrollment rows matching the filter. Rows are ordered by
// updated_at ascending so a last-wins index keeps the most recently saved
// row per key.
func (r *EnrollmentRepository) List(ctx context.Context, filter models.AssignmentFilter) ([]models.AssignmentRecord, error) {
	query := fmt.Sprintf("SELECT %s FROM enrollments WHERE 1=1", enrollmentColumns)
	var args []interface{}
	if filter.UserID != nil {
		query += fmt.Sprintf(" AND user_id = $%d", len(args)+1)
		args = append(args, *filter.UserID)
	}
	if filter.Username != "" {
		query += fmt.Sprintf(" AND username = $%d", len(args)+1)
		args = append(args, filter.Username)
	}
	if filter.Year != "" {
		query += fmt.Sprintf(" AND year = $%d", len(args)+1)
		args = append(args, filter.Year)
	}
	if filter.Section != "" {
		query += fmt.Sprintf(" AND section = $%d", len(args)+1)
		args = append(args, filter.Section)
	}
	if filter.Department != "" {
		query += fmt.Sprintf(" AND department = $%d", len(args)+1)
		args = append(args, filter.Department)
	}
	query += " ORDER BY updated_at ASC, id ASC"

	var rows []models.AssignmentRecord
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list enrollments: %w", err)
	}
	return rows, nil
}

// FindCurrent returns the most recent enrollment row for a student,
// matching by user id or falling back to username for legacy rows.
func (r *EnrollmentRepository) FindCurrent(ctx context.Context, userID int64, username string) (*models.AssignmentRecord, error) {
	query := fmt.Sprintf(`SELECT %s FROM enrollments
        WHERE user_id = $1 OR (user_id IS NULL AND username = $2)
        ORDER BY updated_at DESC, id DESC LIMIT 1`, enrollmentColumns)
	var row models.AssignmentRecord
	if err := r.db.GetContext(ctx, &row, query, userID, username); err != nil {
		return nil, err
	}
	return &row, nil
}
