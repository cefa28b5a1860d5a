package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	appErrors "github.com/noah-isme/campus-portal-api/pkg/errors"
)

type fakeGradebookSrv struct {
	card   *dto.StudentGradeCard
	hit    bool
	err    error
	lastID int64
}

func (f *fakeGradebookSrv) StudentGradeCard(_ context.Context, userID int64) (*dto.StudentGradeCard, bool, error) {
	f.lastID = userID
	return f.card, f.hit, f.err
}

func TestGradebookHandlerStudentGrades(t *testing.T) {
	gin.SetMode(gin.TestMode)
	service := &fakeGradebookSrv{
		card: &dto.StudentGradeCard{DisplayName: "Juan Cruz", Standing: "Passing"},
	}
	handler := NewGradebookHandler(service)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/7/grades", nil)
	c.Params = gin.Params{{Key: "id", Value: "7"}}

	handler.StudentGrades(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), service.lastID)
	var envelope responseEnvelope
	_ = json.Unmarshal(rec.Body.Bytes(), &envelope)
	assert.Equal(t, "Juan Cruz", envelope.Data["display_name"])
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestGradebookHandlerInvalidID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGradebookHandler(&fakeGradebookSrv{})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/abc/grades", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}

	handler.StudentGrades(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGradebookHandlerNotFound(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewGradebookHandler(&fakeGradebookSrv{err: appErrors.ErrNotFound})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/students/99/grades", nil)
	c.Params = gin.Params{{Key: "id", Value: "99"}}

	handler.StudentGrades(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
