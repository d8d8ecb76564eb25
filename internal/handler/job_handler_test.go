package handler

import (
	"context"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/service"
)

type responseEnvelope struct {
	Data  interface{}            `json:"data"`
	Error map[string]interface{} `json:"error"`
	Meta  map[string]interface{} `json:"meta"`
}

type stubPostingRepo struct {
	postings map[string]models.JobPosting
}

func (s *stubPostingRepo) List(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, int, error) {
	var list []models.JobPosting
	for _, p := range s.postings {
		if filter.PublishedOnly && !p.Published {
			continue
		}
		list = append(list, p)
	}
	return list, len(list), nil
}

func (s *stubPostingRepo) FindByID(ctx context.Context, id string) (*models.JobPosting, error) {
	if p, ok := s.postings[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (s *stubPostingRepo) Create(ctx context.Context, posting *models.JobPosting) error {
	s.postings[posting.ID] = *posting
	return nil
}

func (s *stubPostingRepo) Update(ctx context.Context, posting *models.JobPosting) error {
	s.postings[posting.ID] = *posting
	return nil
}

func (s *stubPostingRepo) Delete(ctx context.Context, id string) error {
	delete(s.postings, id)
	return nil
}

func jobTestHandler() *JobHandler {
	repo := &stubPostingRepo{postings: map[string]models.JobPosting{
		"j1": {ID: "j1", Title: "Backend Engineer", Published: true},
		"j2": {ID: "j2", Title: "Unpublished Role", Published: false},
	}}
	return NewJobHandler(service.NewJobService(repo, nil, nil))
}

func TestJobHandlerPublicListHidesDrafts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := jobTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/jobs", nil)

	h.ListPublic(c)

	assert.Equal(t, http.StatusOK, rec.Code)
	var envelope struct {
		Data []models.JobPosting `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 1)
	assert.Equal(t, "Backend Engineer", envelope.Data[0].Title)
}

func TestJobHandlerGetPublicHidesUnpublished(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := jobTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/jobs/j2", nil)
	c.Params = gin.Params{{Key: "id", Value: "j2"}}

	h.GetPublic(c)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "NOT_FOUND", envelope.Error["code"])
}

func TestJobHandlerCreateRejectsBadPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := jobTestHandler()

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodPost, "/admin/jobs", nil)

	h.Create(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
