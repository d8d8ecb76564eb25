package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type jobPostingRepository interface {
	List(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, int, error)
	FindByID(ctx context.Context, id string) (*models.JobPosting, error)
	Create(ctx context.Context, posting *models.JobPosting) error
	Update(ctx context.Context, posting *models.JobPosting) error
	Delete(ctx context.Context, id string) error
}

// JobService manages career page postings. The public listing only ever
// shows published postings whose deadline has not passed.
type JobService struct {
	postings jobPostingRepository
	validate *validator.Validate
	logger   *zap.Logger
}

// NewJobService constructs a JobService.
func NewJobService(postings jobPostingRepository, validate *validator.Validate, logger *zap.Logger) *JobService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &JobService{postings: postings, validate: validate, logger: logger}
}

// JobPostingRequest is the admin create/update payload.
type JobPostingRequest struct {
	Title          string     `json:"title" validate:"required,min=3,max=200"`
	Department     string     `json:"department" validate:"required,max=100"`
	Location       string     `json:"location" validate:"required,max=200"`
	EmploymentType string     `json:"employment_type" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT INTERNSHIP"`
	Requirements   []string   `json:"requirements" validate:"dive,max=500"`
	Benefits       []string   `json:"benefits" validate:"dive,max=500"`
	Deadline       *time.Time `json:"deadline"`
	Published      bool       `json:"published"`
}

// ListPublic returns open postings for the careers page.
func (s *JobService) ListPublic(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, models.Pagination, error) {
	filter.PublishedOnly = true
	return s.list(ctx, filter)
}

// List returns postings for admins, including drafts and closed ones.
func (s *JobService) List(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, models.Pagination, error) {
	return s.list(ctx, filter)
}

func (s *JobService) list(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	postings, total, err := s.postings.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, "JOB_LIST_FAILED", http.StatusInternalServerError, "failed to list job postings")
	}
	return postings, buildPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns a single posting. Unpublished postings are hidden from
// non-admin callers.
func (s *JobService) Get(ctx context.Context, id string, includeUnpublished bool) (*models.JobPosting, error) {
	posting, err := s.postings.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job posting not found")
		}
		return nil, appErrors.Wrap(err, "JOB_FETCH_FAILED", http.StatusInternalServerError, "failed to fetch job posting")
	}
	if !posting.Published && !includeUnpublished {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "job posting not found")
	}
	return posting, nil
}

// Create adds a posting.
func (s *JobService) Create(ctx context.Context, req JobPostingRequest) (*models.JobPosting, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, "invalid job posting payload")
	}
	posting := &models.JobPosting{
		Title:          req.Title,
		Department:     req.Department,
		Location:       req.Location,
		EmploymentType: req.EmploymentType,
		Requirements:   models.StringList(req.Requirements),
		Benefits:       models.StringList(req.Benefits),
		Deadline:       req.Deadline,
		Published:      req.Published,
	}
	if err := s.postings.Create(ctx, posting); err != nil {
		return nil, appErrors.Wrap(err, "JOB_CREATE_FAILED", http.StatusInternalServerError, "failed to create job posting")
	}
	s.logger.Info("job posting created", zap.String("job_id", posting.ID), zap.String("title", posting.Title))
	return posting, nil
}

// Update replaces a posting's editable fields.
func (s *JobService) Update(ctx context.Context, id string, req JobPostingRequest) (*models.JobPosting, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, "invalid job posting payload")
	}
	posting, err := s.Get(ctx, id, true)
	if err != nil {
		return nil, err
	}
	posting.Title = req.Title
	posting.Department = req.Department
	posting.Location = req.Location
	posting.EmploymentType = req.EmploymentType
	posting.Requirements = models.StringList(req.Requirements)
	posting.Benefits = models.StringList(req.Benefits)
	posting.Deadline = req.Deadline
	posting.Published = req.Published
	if err := s.postings.Update(ctx, posting); err != nil {
		return nil, appErrors.Wrap(err, "JOB_UPDATE_FAILED", http.StatusInternalServerError, "failed to update job posting")
	}
	return posting, nil
}

// Delete removes a posting and its applications cascade at the database.
func (s *JobService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id, true); err != nil {
		return err
	}
	if err := s.postings.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, "JOB_DELETE_FAILED", http.StatusInternalServerError, "failed to delete job posting")
	}
	s.logger.Info("job posting deleted", zap.String("job_id", id))
	return nil
}

// AcceptsApplications reports whether a posting can still receive
// applications.
func AcceptsApplications(posting *models.JobPosting, now time.Time) bool {
	if posting == nil || !posting.Published {
		return false
	}
	if posting.Deadline != nil && now.After(*posting.Deadline) {
		return false
	}
	return true
}
