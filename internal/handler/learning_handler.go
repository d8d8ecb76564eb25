package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/response"
)

// LearningHandler exposes progress tracking endpoints.
type LearningHandler struct {
	learning *service.LearningService
}

// NewLearningHandler constructs LearningHandler.
func NewLearningHandler(learning *service.LearningService) *LearningHandler {
	return &LearningHandler{learning: learning}
}

// GetProgress godoc
// @Summary Get the caller's progress in a course
// @Tags Learning
// @Produce json
// @Param id path string true "Course ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses/{id}/progress [get]
func (h *LearningHandler) GetProgress(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	record, err := h.learning.GetProgress(c.Request.Context(), claims.UserID, c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// MarkVideoComplete godoc
// @Summary Mark a video as watched
// @Tags Learning
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body map[string]string true "Video ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses/{id}/progress/videos [post]
func (h *LearningHandler) MarkVideoComplete(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var payload struct {
		VideoID string `json:"video_id" binding:"required"`
	}
	if err := c.ShouldBindJSON(&payload); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "video id required"))
		return
	}

	record, err := h.learning.MarkVideoComplete(c.Request.Context(), claims.UserID, c.Param("id"), payload.VideoID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// RecordQuizResult godoc
// @Summary Record a quiz attempt
// @Tags Learning
// @Accept json
// @Produce json
// @Param id path string true "Course ID"
// @Param payload body service.QuizAttempt true "Quiz attempt"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /courses/{id}/progress/quizzes [post]
func (h *LearningHandler) RecordQuizResult(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	var attempt service.QuizAttempt
	if err := c.ShouldBindJSON(&attempt); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, http.StatusBadRequest, "invalid quiz payload"))
		return
	}

	record, err := h.learning.RecordQuizResult(c.Request.Context(), claims.UserID, c.Param("id"), attempt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}

// IssueCertificate godoc
// @Summary Issue a completion certificate
// @Tags Learning
// @Produce json
// @Param id path string true "Course ID"
// @Success 204 {object} response.Envelope
// @Failure 412 {object} response.Envelope
// @Router /courses/{id}/certificate [post]
func (h *LearningHandler) IssueCertificate(c *gin.Context) {
	claims := claimsFromContext(c)
	if claims == nil {
		response.Error(c, appErrors.ErrUnauthorized)
		return
	}

	if err := h.learning.IssueCertificate(c.Request.Context(), claims.UserID, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}
	response.NoContent(c)
}

// StudentProgress godoc
// @Summary Get one student's progress in a course
// @Tags Learning
// @Produce json
// @Param id path string true "Course ID"
// @Param studentId path string true "Student ID"
// @Success 200 {object} response.Envelope
// @Failure 403 {object} response.Envelope
// @Router /admin/courses/{id}/students/{studentId}/progress [get]
func (h *LearningHandler) StudentProgress(c *gin.Context) {
	record, err := h.learning.GetProgress(c.Request.Context(), c.Param("studentId"), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, record, nil)
}
