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

// ApplicationHandler exposes job application endpoints. Submissions are
// multipart so the resume travels with the form.
type ApplicationHandler struct {
	applications *service.ApplicationService
}

// NewApplicationHandler constructs ApplicationHandler.
func NewApplicationHandler(applications *service.ApplicationService) *ApplicationHandler {
	return &ApplicationHandler{applications: applications}
}

// Apply godoc
// @Summary Apply to a job posting
// @Tags Jobs
// @Accept multipart/form-data
// @Produce json
// @Param id path string true "Posting ID"
// @Param full_name formData string true "Full name"
// @Param email formData string true "Email"
// @Param phone formData string false "Phone"
// @Param cover_letter formData string false "Cover letter"
// @Param resume formData file false "Resume (PDF)"
// @Success 201 {object} response.Envelope
// @Failure 409 {object} response.Envelope
// @Failure 422 {object} response.Envelope
// @Router /jobs/{id}/apply [post]
func (h *ApplicationHandler) Apply(c *gin.Context) {
	req := service.ApplyRequest{
		JobID:       c.Param("id"),
		FullName:    c.PostForm("full_name"),
		Email:       c.PostForm("email"),
		Phone:       c.PostForm("phone"),
		CoverLetter: c.PostForm("cover_letter"),
	}

	if file, err := c.FormFile("resume"); err == nil && file != nil {
		reader, err := file.Open()
		if err != nil {
			response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "failed to read resume"))
			return
		}
		defer reader.Close()
		req.Resume = reader
		req.Filename = file.Filename
		req.Size = file.Size
		req.ContentType = file.Header.Get("Content-Type")
	}

	application, err := h.applications.Apply(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, application)
}

// List godoc
// @Summary List job applications
// @Tags Jobs
// @Produce json
// @Param jobId query string false "Filter by posting"
// @Param status query string false "Filter by status"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /admin/applications [get]
func (h *ApplicationHandler) List(c *gin.Context) {
	var filter models.JobApplicationFilter
	filter.JobID = c.Query("jobId")
	filter.Status = models.ApplicationStatus(c.Query("status"))
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}

	applications, pagination, err := h.applications.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, applications, &pagination)
}

// Get godoc
// @Summary Get one application with a resume link
// @Tags Jobs
// @Produce json
// @Param id path string true "Application ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/applications/{id} [get]
func (h *ApplicationHandler) Get(c *gin.Context) {
	application, resumeURL, err := h.applications.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}

	var meta map[string]interface{}
	if resumeURL != "" {
		meta = map[string]interface{}{"resume_url": resumeURL}
	}
	response.JSON(c, http.StatusOK, application, nil, meta)
}

// SetStatus godoc
// @Summary Move an application through review
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Application ID"
// @Param payload body map[string]string true "New status"
// @Success 204 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/applications/{id}/status [patch]
func (h *ApplicationHandler) SetStatus(c *gin.Context) {
	var payload struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "status required"))
		return
	}

	if err := h.applications.SetStatus(c.Request.Context(), c.Param("id"), models.ApplicationStatus(payload.Status)); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
