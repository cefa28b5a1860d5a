package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/dto"
	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

type gradebookService interface {
	StudentGradeCard(ctx context.Context, userID int64) (*dto.StudentGradeCard, bool, error)
}

// GradebookHandler exposes the student grade card endpoints.
type GradebookHandler struct {
	service gradebookService
}

// NewGradebookHandler creates a new gradebook handler.
func NewGradebookHandler(svc gradebookService) *GradebookHandler {
	return &GradebookHandler{service: svc}
}

// StudentGrades godoc
// @Summary Student grade card
// @Description Per-semester and overall grade averages for one student
// @Tags Gradebook
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/grades [get]
func (h *GradebookHandler) StudentGrades(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	card, cacheHit, err := h.service.StudentGradeCard(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, card, nil, middleware.ExtractMeta(c))
}
