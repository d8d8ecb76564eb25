package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type mockJobPostingRepo struct {
	postings map[string]models.JobPosting
	deleted  []string
}

func (m *mockJobPostingRepo) List(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, int, error) {
	var list []models.JobPosting
	for _, p := range m.postings {
		if filter.PublishedOnly && !p.Published {
			continue
		}
		list = append(list, p)
	}
	return list, len(list), nil
}

func (m *mockJobPostingRepo) FindByID(ctx context.Context, id string) (*models.JobPosting, error) {
	if p, ok := m.postings[id]; ok {
		return &p, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockJobPostingRepo) Create(ctx context.Context, posting *models.JobPosting) error {
	if m.postings == nil {
		m.postings = make(map[string]models.JobPosting)
	}
	if posting.ID == "" {
		posting.ID = "new-job"
	}
	m.postings[posting.ID] = *posting
	return nil
}

func (m *mockJobPostingRepo) Update(ctx context.Context, posting *models.JobPosting) error {
	if _, ok := m.postings[posting.ID]; !ok {
		return sql.ErrNoRows
	}
	m.postings[posting.ID] = *posting
	return nil
}

func (m *mockJobPostingRepo) Delete(ctx context.Context, id string) error {
	delete(m.postings, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func openPosting(id string, deadline *time.Time) models.JobPosting {
	return models.JobPosting{
		ID:             id,
		Title:          "Backend Engineer",
		Department:     "Engineering",
		Location:       "Remote",
		EmploymentType: "FULL_TIME",
		Published:      true,
		Deadline:       deadline,
	}
}

func TestJobListPublicHidesDrafts(t *testing.T) {
	draft := openPosting("j2", nil)
	draft.Published = false
	repo := &mockJobPostingRepo{postings: map[string]models.JobPosting{
		"j1": openPosting("j1", nil),
		"j2": draft,
	}}
	svc := NewJobService(repo, nil, zap.NewNop())

	postings, pagination, err := svc.ListPublic(context.Background(), models.JobPostingFilter{})
	require.NoError(t, err)
	require.Len(t, postings, 1)
	assert.Equal(t, "j1", postings[0].ID)
	assert.Equal(t, 1, pagination.TotalCount)
}

func TestJobGetHidesUnpublishedFromPublic(t *testing.T) {
	draft := openPosting("j1", nil)
	draft.Published = false
	repo := &mockJobPostingRepo{postings: map[string]models.JobPosting{"j1": draft}}
	svc := NewJobService(repo, nil, zap.NewNop())

	_, err := svc.Get(context.Background(), "j1", false)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)

	posting, err := svc.Get(context.Background(), "j1", true)
	require.NoError(t, err)
	assert.Equal(t, "j1", posting.ID)
}

func TestJobCreateValidatesEmploymentType(t *testing.T) {
	svc := NewJobService(&mockJobPostingRepo{}, nil, zap.NewNop())

	_, err := svc.Create(context.Background(), JobPostingRequest{
		Title:          "Backend Engineer",
		Department:     "Engineering",
		Location:       "Remote",
		EmploymentType: "GIG",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestAcceptsApplications(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	tests := []struct {
		name    string
		posting models.JobPosting
		want    bool
	}{
		{"published no deadline", openPosting("j1", nil), true},
		{"published future deadline", openPosting("j1", &future), true},
		{"deadline passed", openPosting("j1", &past), false},
		{"unpublished", func() models.JobPosting {
			p := openPosting("j1", nil)
			p.Published = false
			return p
		}(), false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			posting := tc.posting
			assert.Equal(t, tc.want, AcceptsApplications(&posting, now))
		})
	}
}
