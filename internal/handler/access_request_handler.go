package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/response"
)

// AccessRequestHandler exposes course access request endpoints.
type AccessRequestHandler struct {
	requests *service.AccessRequestService
}

// NewAccessRequestHandler constructs AccessRequestHandler.
func NewAccessRequestHandler(requests *service.AccessRequestService) *AccessRequestHandler {
	return &AccessRequestHandler{requests: requests}
}

// Request godoc
// @Summary Request access to a course
// @Tags AccessRequests
// @Produce json
// @Param id path string true "Course ID"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /courses/{id}/request-access [post]
func (h *AccessRequestHandler) Request(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	request, err := h.requests.Request(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, request)
}

// ListMine godoc
// @Summary List the caller's access requests
// @Tags AccessRequests
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /me/access-requests [get]
func (h *AccessRequestHandler) ListMine(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	requests, err := h.requests.ListMine(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, nil)
}

// List godoc
// @Summary List access requests
// @Tags AccessRequests
// @Produce json
// @Param status query string false "Filter by status"
// @Param courseId query string false "Filter by course"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/access-requests [get]
func (h *AccessRequestHandler) List(c *gin.Context) {
	var filter models.AccessRequestFilter
	filter.Status = models.AccessRequestStatus(c.Query("status"))
	filter.CourseID = c.Query("courseId")
	filter.UserID = c.Query("userId")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	requests, pagination, err := h.requests.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, requests, &pagination)
}

// Approve godoc
// @Summary Approve an access request and enroll the student
// @Tags AccessRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/access-requests/{id}/approve [post]
func (h *AccessRequestHandler) Approve(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.requests.Approve(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// Reject godoc
// @Summary Reject an access request
// @Tags AccessRequests
// @Produce json
// @Param id path string true "Request ID"
// @Success 204 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Router /admin/access-requests/{id}/reject [post]
func (h *AccessRequestHandler) Reject(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.requests.Reject(c.Request.Context(), c.Param("id"), claims.UserID); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
