package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/response"
)

// DrilldownHandler exposes the admin drill-down browser. Every call
// answers with the session's current view so clients never track state
// themselves.
type DrilldownHandler struct {
	drilldown *service.DrilldownService
}

// NewDrilldownHandler constructs DrilldownHandler.
func NewDrilldownHandler(drilldown *service.DrilldownService) *DrilldownHandler {
	return &DrilldownHandler{drilldown: drilldown}
}

func (h *DrilldownHandler) respond(c *gin.Context, view *service.DrilldownView, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, view, nil)
}

// View godoc
// @Summary Current drill-down view
// @Tags Drilldown
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/drilldown [get]
func (h *DrilldownHandler) View(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.drilldown.View(c.Request.Context(), claims.UserID)
	h.respond(c, view, err)
}

// SelectCategory godoc
// @Summary Descend into a category
// @Tags Drilldown
// @Produce json
// @Param id path string true "Category ID"
// @Success 200 {object} response.Envelope
// @Router /admin/drilldown/categories/{id} [post]
func (h *DrilldownHandler) SelectCategory(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.drilldown.SelectCategory(c.Request.Context(), claims.UserID, c.Param("id"))
	h.respond(c, view, err)
}

// SelectCourse godoc
// @Summary Descend into a course
// @Tags Drilldown
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Router /admin/drilldown/courses/{id} [post]
func (h *DrilldownHandler) SelectCourse(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.drilldown.SelectCourse(c.Request.Context(), claims.UserID, c.Param("id"))
	h.respond(c, view, err)
}

// SelectStudent godoc
// @Summary Descend into a student
// @Tags Drilldown
// @Produce json
// @Param id path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Router /admin/drilldown/students/{id} [post]
func (h *DrilldownHandler) SelectStudent(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.drilldown.SelectStudent(c.Request.Context(), claims.UserID, c.Param("id"))
	h.respond(c, view, err)
}

// Back godoc
// @Summary Move one level up
// @Tags Drilldown
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/drilldown/back [post]
func (h *DrilldownHandler) Back(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.drilldown.Back(c.Request.Context(), claims.UserID)
	h.respond(c, view, err)
}

// Reset godoc
// @Summary Reset the session to the category level
// @Tags Drilldown
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/drilldown/reset [post]
func (h *DrilldownHandler) Reset(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}
	view, err := h.drilldown.Reset(c.Request.Context(), claims.UserID)
	h.respond(c, view, err)
}
