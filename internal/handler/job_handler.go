package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/response"
)

// JobHandler exposes job board endpoints, public and admin.
type JobHandler struct {
	jobs *service.JobService
}

// NewJobHandler constructs JobHandler.
func NewJobHandler(jobs *service.JobService) *JobHandler {
	return &JobHandler{jobs: jobs}
}

func jobFilterFromQuery(c *gin.Context) models.JobPostingFilter {
	var filter models.JobPostingFilter
	filter.Search = strings.TrimSpace(c.Query("search"))
	filter.Department = c.Query("department")
	if page, err := strconv.Atoi(c.DefaultQuery("page", "1")); err == nil {
		filter.Page = page
	}
	if size, err := strconv.Atoi(c.DefaultQuery("limit", "20")); err == nil {
		filter.PageSize = size
	}
	return filter
}

// ListPublic godoc
// @Summary List open job postings
// @Tags Jobs
// @Produce json
// @Param search query string false "Search by title"
// @Param department query string false "Filter by department"
// @Param page query int false "Page"
// @Param limit query int false "Page size"
// @Success 200 {object} response.Envelope
// @Router /jobs [get]
func (h *JobHandler) ListPublic(c *gin.Context) {
	postings, pagination, err := h.jobs.ListPublic(c.Request.Context(), jobFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, postings, &pagination)
}

// GetPublic godoc
// @Summary Get one open job posting
// @Tags Jobs
// @Produce json
// @Param id path string true "Posting ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /jobs/{id} [get]
func (h *JobHandler) GetPublic(c *gin.Context) {
	posting, err := h.jobs.Get(c.Request.Context(), c.Param("id"), false)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posting, nil)
}

// List godoc
// @Summary List all job postings including drafts
// @Tags Jobs
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /admin/jobs [get]
func (h *JobHandler) List(c *gin.Context) {
	postings, pagination, err := h.jobs.List(c.Request.Context(), jobFilterFromQuery(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, postings, &pagination)
}

// Get godoc
// @Summary Get one job posting including drafts
// @Tags Jobs
// @Produce json
// @Param id path string true "Posting ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id} [get]
func (h *JobHandler) Get(c *gin.Context) {
	posting, err := h.jobs.Get(c.Request.Context(), c.Param("id"), true)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posting, nil)
}

// Create godoc
// @Summary Create job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param payload body service.JobPostingRequest true "Posting payload"
// @Success 201 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Router /admin/jobs [post]
func (h *JobHandler) Create(c *gin.Context) {
	var req service.JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid posting payload"))
		return
	}

	posting, err := h.jobs.Create(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, posting)
}

// Update godoc
// @Summary Update job posting
// @Tags Jobs
// @Accept json
// @Produce json
// @Param id path string true "Posting ID"
// @Param payload body service.JobPostingRequest true "Posting payload"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id} [put]
func (h *JobHandler) Update(c *gin.Context) {
	var req service.JobPostingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid posting payload"))
		return
	}

	posting, err := h.jobs.Update(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, posting, nil)
}

// Delete godoc
// @Summary Delete job posting
// @Tags Jobs
// @Produce json
// @Param id path string true "Posting ID"
// @Success 204 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /admin/jobs/{id} [delete]
func (h *JobHandler) Delete(c *gin.Context) {
	if err := h.jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}
