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
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type mockJobApplicationRepo struct {
	applications map[string]models.JobApplication
	statuses     map[string]models.ApplicationStatus
}

func (m *mockJobApplicationRepo) Create(ctx context.Context, application *models.JobApplication) error {
	if m.applications == nil {
		m.applications = make(map[string]models.JobApplication)
	}
	if application.ID == "" {
		application.ID = "new-application"
	}
	m.applications[application.ID] = *application
	return nil
}

func (m *mockJobApplicationRepo) FindByID(ctx context.Context, id string) (*models.JobApplication, error) {
	if a, ok := m.applications[id]; ok {
		return &a, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockJobApplicationRepo) ExistsByEmail(ctx context.Context, jobID, email string) (bool, error) {
	for _, a := range m.applications {
		if a.JobID == jobID && a.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (m *mockJobApplicationRepo) List(ctx context.Context, filter models.JobApplicationFilter) ([]models.JobApplication, int, error) {
	var list []models.JobApplication
	for _, a := range m.applications {
		if filter.JobID != "" && a.JobID != filter.JobID {
			continue
		}
		list = append(list, a)
	}
	return list, len(list), nil
}

func (m *mockJobApplicationRepo) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	if _, ok := m.applications[id]; !ok {
		return sql.ErrNoRows
	}
	if m.statuses == nil {
		m.statuses = make(map[string]models.ApplicationStatus)
	}
	m.statuses[id] = status
	return nil
}

func applicationFixture(postings map[string]models.JobPosting) (*ApplicationService, *mockJobApplicationRepo) {
	applications := &mockJobApplicationRepo{}
	svc := NewApplicationService(applications, &mockJobPostingRepo{postings: postings}, nil,
		config.ObjectStoreConfig{}, nil, zap.NewNop())
	return svc, applications
}

func TestApplySubmitsApplication(t *testing.T) {
	svc, applications := applicationFixture(map[string]models.JobPosting{
		"j1": openPosting("j1", nil),
	})

	application, err := svc.Apply(context.Background(), ApplyRequest{
		JobID:    "j1",
		FullName: "Ada Lovelace",
		Email:    "Ada@Example.com",
		Phone:    "+1 555 0100",
	})
	require.NoError(t, err)
	assert.Equal(t, models.ApplicationStatusSubmitted, application.Status)
	// email is normalised before storage and dedupe
	assert.Equal(t, "ada@example.com", application.Email)
	assert.Len(t, applications.applications, 1)
}

func TestApplyAfterDeadlineRejected(t *testing.T) {
	past := time.Now().Add(-time.Hour)
	svc, _ := applicationFixture(map[string]models.JobPosting{
		"j1": openPosting("j1", &past),
	})

	_, err := svc.Apply(context.Background(), ApplyRequest{
		JobID:    "j1",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrDeadlinePassed.Code, appErrors.FromError(err).Code)
}

func TestApplyDuplicateEmailConflicts(t *testing.T) {
	svc, applications := applicationFixture(map[string]models.JobPosting{
		"j1": openPosting("j1", nil),
	})
	applications.applications = map[string]models.JobApplication{
		"a1": {ID: "a1", JobID: "j1", Email: "ada@example.com"},
	}

	_, err := svc.Apply(context.Background(), ApplyRequest{
		JobID:    "j1",
		FullName: "Ada Lovelace",
		Email:    "ADA@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrConflict.Code, appErrors.FromError(err).Code)
}

func TestApplyUnknownPosting(t *testing.T) {
	svc, _ := applicationFixture(nil)

	_, err := svc.Apply(context.Background(), ApplyRequest{
		JobID:    "missing",
		FullName: "Ada Lovelace",
		Email:    "ada@example.com",
	})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestSetStatusValidatesTransitionTarget(t *testing.T) {
	svc, applications := applicationFixture(map[string]models.JobPosting{
		"j1": openPosting("j1", nil),
	})
	applications.applications = map[string]models.JobApplication{
		"a1": {ID: "a1", JobID: "j1", Email: "ada@example.com", Status: models.ApplicationStatusSubmitted},
	}

	err := svc.SetStatus(context.Background(), "a1", "SHREDDED")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)

	require.NoError(t, svc.SetStatus(context.Background(), "a1", models.ApplicationStatusInReview))
	assert.Equal(t, models.ApplicationStatusInReview, applications.statuses["a1"])
}

func TestSetStatusUnknownApplication(t *testing.T) {
	svc, _ := applicationFixture(nil)

	err := svc.SetStatus(context.Background(), "missing", models.ApplicationStatusInReview)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
