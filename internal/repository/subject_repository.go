package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

// SubjectRepository fetches curriculum subjects, teacher assignments and
// study-load rows.
type SubjectRepository struct {
	db *sqlx.DB
}

// NewSubjectRepository creates a new subject repository.
func NewSubjectRepository(db *sqlx.DB) *SubjectRepository {
	return &SubjectRepository{db: db}
}

// ListSubjects returns curriculum subjects, optionally scoped to a course.
func (r *SubjectRepository) ListSubjects(ctx context.Context, course string) ([]models.SubjectRecord, error) {
	query := "SELECT id, subject_code, title, units, course, major, year_level, semester FROM subjects"
	var args []interface{}
	if course != "" {
		query += " WHERE UPPER(course) = UPPER($1)"
		args = append(args, course)
	}
	query += " ORDER BY year_level, semester, subject_code"

	var subjects []models.SubjectRecord
	if err := r.db.SelectContext(ctx, &subjects, query, args...); err != nil {
		return nil, fmt.Errorf("list subjects: %w", err)
	}
	return subjects, nil
}

// ListTeacherAssignments returns teacher/subject links. When teacherName is
// set, both the roster name and the linked account's full name are matched.
func (r *SubjectRepository) ListTeacherAssignments(ctx context.Context, teacherName string) ([]models.TeacherAssignmentRecord, error) {
	query := `SELECT ta.id, ta.subject_code, ta.teacher_name, ta.user_id, u.full_name
        FROM teacher_assignments ta
        LEFT JOIN users u ON u.id = ta.user_id`
	var args []interface{}
	if teacherName != "" {
		query += " WHERE ta.teacher_name = $1 OR u.full_name = $1 OR u.username = $1"
		args = append(args, teacherName)
	}
	query += " ORDER BY ta.id ASC"

	var assignments []models.TeacherAssignmentRecord
	if err := r.db.SelectContext(ctx, &assignments, query, args...); err != nil {
		return nil, fmt.Errorf("list teacher assignments: %w", err)
	}
	return assignments, nil
}

// ListStudyLoads returns study-load rows matching the filter.
func (r *SubjectRepository) ListStudyLoads(ctx context.Context, filter models.StudyLoadFilter) ([]models.StudyLoadRecord, error) {
	query := `SELECT course, major, year_level, section, subject_code, subject_title, units, semester, teacher
        FROM study_loads WHERE 1=1`
	var args []interface{}
	if filter.Course != "" {
		query += fmt.Sprintf(" AND UPPER(course) = UPPER($%d)", len(args)+1)
		args = append(args, filter.Course)
	}
	if filter.Major != "" {
		query += fmt.Sprintf(" AND UPPER(major) = UPPER($%d)", len(args)+1)
		args = append(args, filter.Major)
	}
	if filter.YearLevel > 0 {
		query += fmt.Sprintf(" AND year_level = $%d", len(args)+1)
		args = append(args, filter.YearLevel)
	}
	if filter.Semester != "" {
		query += fmt.Sprintf(" AND semester = $%d", len(args)+1)
		args = append(args, filter.Semester)
	}
	if filter.Section != "" {
		query += fmt.Sprintf(" AND section = $%d", len(args)+1)
		args = append(args, filter.Section)
	}
	query += " ORDER BY semester, subject_code"

	var loads []models.StudyLoadRecord
	if err := r.db.SelectContext(ctx, &loads, query, args...); err != nil {
		return nil, fmt.Errorf("list study loads: %w", err)
	}
	return loads, nil
}
