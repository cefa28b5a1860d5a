package repository

import (
	"context"
	"regexp"
	"testing"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/campus-portal-api/internal/models"
)

func gradeRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "user_id", "username", "year", "semester", "subject", "instructor", "prelim_grade", "midterm_grade", "finals_grade"}).
		AddRow(int64(1), int64(7), "jcruz", "3", "First Semester", "ENG101", "Prof. Reyes", 82.5, 90.0, nil)
}

func TestListGradesByUserWithLegacyFallback(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	userID := int64(7)
	mock.ExpectQuery(regexp.QuoteMeta("AND (user_id = $1 OR (user_id IS NULL AND username = $2)) ORDER BY id ASC")).
		WithArgs(userID, "jcruz").
		WillReturnRows(gradeRows())

	grades, err := repo.List(context.Background(), models.GradeFilter{UserID: &userID, Username: "jcruz"})
	require.NoError(t, err)
	require.Len(t, grades, 1)
	assert.True(t, grades[0].Graded())
	assert.Nil(t, grades[0].Finals)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListGradesBySemester(t *testing.T) {
	db, mock, cleanup := newMock(t)
	defer cleanup()
	repo := NewGradeRepository(db)

	mock.ExpectQuery(regexp.QuoteMeta("AND username = $1 AND semester = $2 ORDER BY id ASC")).
		WithArgs("jcruz", "First Semester").
		WillReturnRows(gradeRows())

	grades, err := repo.List(context.Background(), models.GradeFilter{Username: "jcruz", Semester: "First Semester"})
	require.NoError(t, err)
	assert.Len(t, grades, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}
