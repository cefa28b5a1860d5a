package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/models"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

// StudyLoadHandler exposes curriculum and teacher schedule endpoints.
type StudyLoadHandler struct {
	service *service.StudyLoadService
}

// NewStudyLoadHandler creates a new study load handler.
func NewStudyLoadHandler(svc *service.StudyLoadService) *StudyLoadHandler {
	return &StudyLoadHandler{service: svc}
}

// StudyLoad godoc
// @Summary Study load for a course
// @Description Subjects grouped per semester for a course, major and year level
// @Tags StudyLoad
// @Produce json
// @Param course query string true "Course code"
// @Param major query string false "Major"
// @Param year_level query int false "Year level"
// @Param semester query string false "Semester filter"
// @Param section query string false "Section"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /study-loads [get]
func (h *StudyLoadHandler) StudyLoad(c *gin.Context) {
	filter := models.StudyLoadFilter{
		Course:   c.Query("course"),
		Major:    c.Query("major"),
		Semester: c.Query("semester"),
		Section:  c.Query("section"),
	}
	if year, err := strconv.Atoi(c.Query("year_level")); err == nil {
		filter.YearLevel = year
	}

	resp, err := h.service.StudyLoad(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp, nil)
}

// TeacherSchedule godoc
// @Summary Teacher schedule
// @Description Teaching assignments joined to the subject catalog
// @Tags StudyLoad
// @Produce json
// @Param id path int true "Teacher ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /teachers/{id}/schedule [get]
func (h *StudyLoadHandler) TeacherSchedule(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.TeacherSchedule(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp, nil)
}
