package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/access"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/notify"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type accessRequestRepository interface {
	Create(ctx context.Context, request *models.AccessRequest) error
	FindByID(ctx context.Context, id string) (*models.AccessRequest, error)
	FindLatest(ctx context.Context, userID, courseID string) (*models.AccessRequest, error)
	ListByUser(ctx context.Context, userID string) ([]models.AccessRequest, error)
	List(ctx context.Context, filter models.AccessRequestFilter) ([]models.AccessRequestDetail, int, error)
	Decide(ctx context.Context, id string, status models.AccessRequestStatus, decidedBy string) (bool, error)
}

type accessEnrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
}

// AccessRequestService handles the request/approve/reject flow that gates
// paid course enrollment.
type AccessRequestService struct {
	requests    accessRequestRepository
	enrollments accessEnrollmentRepository
	courses     courseRepository
	notifier    *notify.Center
	cache       *CacheService
	validator   *validator.Validate
	logger      *zap.Logger
}

// NewAccessRequestService constructs an AccessRequestService.
func NewAccessRequestService(requests accessRequestRepository, enrollments accessEnrollmentRepository, courses courseRepository, notifier *notify.Center, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *AccessRequestService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &AccessRequestService{
		requests:    requests,
		enrollments: enrollments,
		courses:     courses,
		notifier:    notifier,
		cache:       cache,
		validator:   validate,
		logger:      logger,
	}
}

// Request files a new access request for the user. Enrolled users and
// users with a pending request are rejected with typed errors; a prior
// rejection does not block a fresh request.
func (s *AccessRequestService) Request(ctx context.Context, userID, courseID string) (*models.AccessRequest, error) {
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	if course.Status != models.CourseStatusPublished {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
	}

	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if enrolled {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "")
	}

	latest, err := s.requests.FindLatest(ctx, userID, courseID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check request history")
	}
	if latest != nil && latest.Status == models.AccessStatusPending {
		return nil, appErrors.Clone(appErrors.ErrRequestPending, "")
	}

	request := &models.AccessRequest{UserID: userID, CourseID: courseID}
	if err := s.requests.Create(ctx, request); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create access request")
	}

	s.logger.Info("access requested",
		zap.String("user_id", userID),
		zap.String("course_id", courseID))
	return request, nil
}

// List returns request details for admins.
func (s *AccessRequestService) List(ctx context.Context, filter models.AccessRequestFilter) ([]models.AccessRequestDetail, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	requests, total, err := s.requests.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list access requests")
	}
	return requests, buildPagination(filter.Page, filter.PageSize, total), nil
}

// ListMine returns the caller's own requests, newest first.
func (s *AccessRequestService) ListMine(ctx context.Context, userID string) ([]models.AccessRequest, error) {
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list access requests")
	}
	return requests, nil
}

// Approve grants the request and enrolls the student. The enrollment is
// created only when the pending-to-approved transition actually happened,
// so concurrent approvals cannot double-enroll.
func (s *AccessRequestService) Approve(ctx context.Context, requestID, adminID string) error {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}

	transitioned, err := s.requests.Decide(ctx, requestID, models.AccessStatusApproved, adminID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to approve request")
	}
	if !transitioned {
		return appErrors.Clone(appErrors.ErrConflict, "request already decided")
	}

	enrolled, err := s.enrollments.Exists(ctx, request.UserID, request.CourseID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		enrollment := &models.Enrollment{UserID: request.UserID, CourseID: request.CourseID}
		if err := s.enrollments.Create(ctx, enrollment); err != nil {
			return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll student")
		}
	}

	s.notifyDecision(ctx, request, models.NotifySuccess, "Your course access request was approved")
	s.invalidate(ctx)
	return nil
}

// Reject denies the request.
func (s *AccessRequestService) Reject(ctx context.Context, requestID, adminID string) error {
	request, err := s.findRequest(ctx, requestID)
	if err != nil {
		return err
	}

	transitioned, err := s.requests.Decide(ctx, requestID, models.AccessStatusRejected, adminID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to reject request")
	}
	if !transitioned {
		return appErrors.Clone(appErrors.ErrConflict, "request already decided")
	}

	s.notifyDecision(ctx, request, models.NotifyWarning, "Your course access request was rejected")
	s.invalidate(ctx)
	return nil
}

// ActionForCourse derives the call to action the catalog shows the user
// for a course.
func (s *AccessRequestService) ActionForCourse(ctx context.Context, userID string, course models.Course) (string, error) {
	enrolled, err := s.enrollments.Exists(ctx, userID, course.ID)
	if err != nil {
		return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if enrolled {
		return access.ActionContinue, nil
	}

	latest, err := s.requests.FindLatest(ctx, userID, course.ID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			latest = nil
		} else {
			return "", appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
		}
	}

	var requests []models.AccessRequest
	if latest != nil {
		requests = []models.AccessRequest{*latest}
	}
	return access.ActionFor(course, nil, requests), nil
}

func (s *AccessRequestService) findRequest(ctx context.Context, requestID string) (*models.AccessRequest, error) {
	request, err := s.requests.FindByID(ctx, requestID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "access request not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load request")
	}
	return request, nil
}

func (s *AccessRequestService) notifyDecision(ctx context.Context, request *models.AccessRequest, level models.NotificationLevel, message string) {
	if s.notifier == nil {
		return
	}
	course, err := s.courses.FindByID(ctx, request.CourseID)
	if err == nil {
		message = fmt.Sprintf("%s: %s", message, course.Name)
	}
	s.notifier.Push(request.UserID, level, message)
}

func (s *AccessRequestService) invalidate(ctx context.Context) {
	if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, "dashboard:*"); err != nil {
		s.logger.Warn("failed to invalidate dashboard cache", zap.Error(err))
	}
}
