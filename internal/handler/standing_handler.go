package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

// StandingHandler exposes the payment standing endpoint.
type StandingHandler struct {
	service *service.StandingService
}

// NewStandingHandler creates a new standing handler.
func NewStandingHandler(svc *service.StandingService) *StandingHandler {
	return &StandingHandler{service: svc}
}

// StudentStanding godoc
// @Summary Student payment standing
// @Description Payment status, balance and sanction countdown for one student
// @Tags Standing
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/standing [get]
func (h *StandingHandler) StudentStanding(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.StudentStanding(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp, nil)
}
