package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/campus-portal-api/internal/middleware"
	"github.com/noah-isme/campus-portal-api/internal/service"
	"github.com/noah-isme/campus-portal-api/pkg/response"
)

// FacilityHandler exposes room assignment endpoints.
type FacilityHandler struct {
	service *service.FacilityService
}

// NewFacilityHandler creates a new facility handler.
func NewFacilityHandler(svc *service.FacilityService) *FacilityHandler {
	return &FacilityHandler{service: svc}
}

// Map godoc
// @Summary Section facility map
// @Description Room assignment status for every section
// @Tags Facilities
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /sections/facilities [get]
func (h *FacilityHandler) Map(c *gin.Context) {
	resp, cacheHit, err := h.service.FacilityMap(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	middleware.SetCacheHit(c, cacheHit)
	response.JSON(c, http.StatusOK, resp, nil, middleware.ExtractMeta(c))
}

// StudentBuilding godoc
// @Summary Student building lookup
// @Description Resolve the building a student reports to
// @Tags Facilities
// @Produce json
// @Param id path int true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /students/{id}/building [get]
func (h *FacilityHandler) StudentBuilding(c *gin.Context) {
	id, err := idParam(c)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp, err := h.service.StudentBuilding(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.JSON(c, http.StatusOK, resp, nil)
}
