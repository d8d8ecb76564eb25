package service

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/objstore"
)

type jobApplicationRepository interface {
	Create(ctx context.Context, application *models.JobApplication) error
	FindByID(ctx context.Context, id string) (*models.JobApplication, error)
	ExistsByEmail(ctx context.Context, jobID, email string) (bool, error)
	List(ctx context.Context, filter models.JobApplicationFilter) ([]models.JobApplication, int, error)
	SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error
}

type applicationPostingRepository interface {
	FindByID(ctx context.Context, id string) (*models.JobPosting, error)
}

// ApplicationService handles candidate submissions against job postings,
// including the resume upload.
type ApplicationService struct {
	applications jobApplicationRepository
	postings     applicationPostingRepository
	resumes      *objstore.FileStore
	cfg          config.ObjectStoreConfig
	validate     *validator.Validate
	logger       *zap.Logger
	now          func() time.Time
}

// NewApplicationService constructs an ApplicationService.
func NewApplicationService(
	applications jobApplicationRepository,
	postings applicationPostingRepository,
	resumes *objstore.FileStore,
	cfg config.ObjectStoreConfig,
	validate *validator.Validate,
	logger *zap.Logger,
) *ApplicationService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ApplicationService{
		applications: applications,
		postings:     postings,
		resumes:      resumes,
		cfg:          cfg,
		validate:     validate,
		logger:       logger,
		now:          time.Now,
	}
}

// ApplyRequest carries the multipart form fields of an application. Resume
// holds the file stream; Size and ContentType come from the upload part.
type ApplyRequest struct {
	JobID       string `validate:"required"`
	FullName    string `validate:"required,min=2,max=200"`
	Email       string `validate:"required,email"`
	Phone       string `validate:"max=30"`
	CoverLetter string `validate:"max=5000"`

	Resume      io.Reader
	Filename    string
	Size        int64
	ContentType string
}

// Apply validates and stores an application. One application per email per
// posting; the resume is uploaded before the row is written so a failed
// upload leaves no orphan record.
func (s *ApplicationService) Apply(ctx context.Context, req ApplyRequest) (*models.JobApplication, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, "VALIDATION_ERROR", http.StatusBadRequest, "invalid application payload")
	}

	posting, err := s.postings.FindByID(ctx, req.JobID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "job posting not found")
		}
		return nil, appErrors.Wrap(err, "APPLICATION_FAILED", http.StatusInternalServerError, "failed to load job posting")
	}
	if !AcceptsApplications(posting, s.now()) {
		return nil, appErrors.ErrDeadlinePassed
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	exists, err := s.applications.ExistsByEmail(ctx, req.JobID, email)
	if err != nil {
		return nil, appErrors.Wrap(err, "APPLICATION_FAILED", http.StatusInternalServerError, "failed to check existing applications")
	}
	if exists {
		return nil, appErrors.Clone(appErrors.ErrConflict, "an application with this email already exists for this posting")
	}

	application := &models.JobApplication{
		JobID:       req.JobID,
		FullName:    strings.TrimSpace(req.FullName),
		Email:       email,
		Phone:       strings.TrimSpace(req.Phone),
		CoverLetter: req.CoverLetter,
		Status:      models.ApplicationStatusSubmitted,
	}

	if req.Resume != nil {
		key, err := s.uploadResume(ctx, req)
		if err != nil {
			return nil, err
		}
		application.ResumeKey = key
	}

	if err := s.applications.Create(ctx, application); err != nil {
		return nil, appErrors.Wrap(err, "APPLICATION_FAILED", http.StatusInternalServerError, "failed to record application")
	}
	s.logger.Info("job application received",
		zap.String("job_id", application.JobID),
		zap.String("application_id", application.ID))
	return application, nil
}

func (s *ApplicationService) uploadResume(ctx context.Context, req ApplyRequest) (string, error) {
	if s.resumes == nil {
		return "", appErrors.Clone(appErrors.ErrUnsupportedFile, "resume uploads are not enabled")
	}
	if s.cfg.MaxResumeBytes > 0 && req.Size > s.cfg.MaxResumeBytes {
		return "", appErrors.ErrFileTooLarge
	}
	if !s.mimeAllowed(req.ContentType) {
		return "", appErrors.ErrUnsupportedFile
	}
	key, err := s.resumes.Upload(ctx, "resumes", req.JobID, req.Filename, req.Resume, req.Size, req.ContentType)
	if err != nil {
		return "", appErrors.Wrap(err, "UPLOAD_FAILED", http.StatusInternalServerError, "failed to store resume")
	}
	return key, nil
}

func (s *ApplicationService) mimeAllowed(contentType string) bool {
	if len(s.cfg.AllowedMIMEs) == 0 {
		return true
	}
	for _, allowed := range s.cfg.AllowedMIMEs {
		if strings.EqualFold(allowed, contentType) {
			return true
		}
	}
	return false
}

// List returns applications for admins.
func (s *ApplicationService) List(ctx context.Context, filter models.JobApplicationFilter) ([]models.JobApplication, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize < 1 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	applications, total, err := s.applications.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, "APPLICATION_LIST_FAILED", http.StatusInternalServerError, "failed to list applications")
	}
	return applications, buildPagination(filter.Page, filter.PageSize, total), nil
}

// Get returns one application, with a short-lived resume download URL when
// a resume was attached.
func (s *ApplicationService) Get(ctx context.Context, id string) (*models.JobApplication, string, error) {
	application, err := s.applications.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, "", appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return nil, "", appErrors.Wrap(err, "APPLICATION_FETCH_FAILED", http.StatusInternalServerError, "failed to fetch application")
	}
	var resumeURL string
	if application.ResumeKey != "" && s.resumes != nil {
		resumeURL, err = s.resumes.URL(ctx, application.ResumeKey)
		if err != nil {
			s.logger.Warn("failed to presign resume url", zap.String("application_id", id), zap.Error(err))
			resumeURL = ""
		}
	}
	return application, resumeURL, nil
}

// SetStatus advances an application through review.
func (s *ApplicationService) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	switch status {
	case models.ApplicationStatusSubmitted, models.ApplicationStatusInReview,
		models.ApplicationStatusRejected, models.ApplicationStatusAccepted:
	default:
		return appErrors.Clone(appErrors.ErrValidation, "unknown application status")
	}
	if err := s.applications.SetStatus(ctx, id, status); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return appErrors.Clone(appErrors.ErrNotFound, "application not found")
		}
		return appErrors.Wrap(err, "APPLICATION_UPDATE_FAILED", http.StatusInternalServerError, "failed to update application status")
	}
	return nil
}
