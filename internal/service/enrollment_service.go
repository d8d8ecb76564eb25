package service

import (
	"context"
	"database/sql"
	"errors"

	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/access"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type enrollmentRepository interface {
	Create(ctx context.Context, enrollment *models.Enrollment) error
	Exists(ctx context.Context, userID, courseID string) (bool, error)
	ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error)
	List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error)
	Roster(ctx context.Context, courseID string) ([]models.StudentProgress, error)
	Delete(ctx context.Context, userID, courseID string) error
}

// EnrolledCourse pairs a course with the student's status toward it.
type EnrolledCourse struct {
	Course   models.CourseDetail `json:"course"`
	Action   string              `json:"action"`
	Progress int                 `json:"progress"`
}

// EnrollmentService implements direct enrollment for free courses and the
// student's course overview.
type EnrollmentService struct {
	enrollments enrollmentRepository
	courses     courseRepository
	requests    accessRequestRepository
	progress    progressRepository
	cache       *CacheService
	logger      *zap.Logger
}

// NewEnrollmentService constructs an EnrollmentService.
func NewEnrollmentService(enrollments enrollmentRepository, courses courseRepository, requests accessRequestRepository, progress progressRepository, cache *CacheService, logger *zap.Logger) *EnrollmentService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &EnrollmentService{
		enrollments: enrollments,
		courses:     courses,
		requests:    requests,
		progress:    progress,
		cache:       cache,
		logger:      logger,
	}
}

// Enroll enrolls the user directly into a free published course. Paid
// courses must go through the access request flow.
func (s *EnrollmentService) Enroll(ctx context.Context, userID, courseID string) (*models.Enrollment, error) {
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
	if course.Price > 0 {
		return nil, appErrors.Clone(appErrors.ErrForbidden, "paid courses require an approved access request")
	}

	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if enrolled {
		return nil, appErrors.Clone(appErrors.ErrAlreadyEnrolled, "")
	}

	enrollment := &models.Enrollment{UserID: userID, CourseID: courseID}
	if err := s.enrollments.Create(ctx, enrollment); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to enroll")
	}

	if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
	return enrollment, nil
}

// MyCourses returns every published course annotated with the caller's
// action toward it, plus their progress where enrolled.
func (s *EnrollmentService) MyCourses(ctx context.Context, userID string) ([]EnrolledCourse, error) {
	enrollments, err := s.enrollments.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	requests, err := s.requests.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list requests")
	}

	courseIDs := make([]string, 0, len(enrollments))
	for _, e := range enrollments {
		courseIDs = append(courseIDs, e.CourseID)
	}
	courses, err := s.courses.FindByIDs(ctx, courseIDs)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses")
	}

	records, err := s.progress.ListByUser(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load progress")
	}
	progressByCourse := make(map[string]int, len(records))
	for _, p := range records {
		progressByCourse[p.CourseID] = p.Percentage
	}

	result := make([]EnrolledCourse, 0, len(courses))
	for _, course := range courses {
		result = append(result, EnrolledCourse{
			Course:   course,
			Action:   access.ActionFor(course.Course, enrollments, requests),
			Progress: progressByCourse[course.ID],
		})
	}
	return result, nil
}

// List returns enrollment details for admins.
func (s *EnrollmentService) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}
	enrollments, total, err := s.enrollments.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list enrollments")
	}
	return enrollments, buildPagination(filter.Page, filter.PageSize, total), nil
}

// Roster returns every enrolled student for a course with their progress.
func (s *EnrollmentService) Roster(ctx context.Context, courseID string) ([]models.StudentProgress, error) {
	if _, err := s.courses.FindByID(ctx, courseID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	roster, err := s.enrollments.Roster(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load roster")
	}
	if roster == nil {
		roster = []models.StudentProgress{}
	}
	return roster, nil
}

// Unenroll drops a student from a course.
func (s *EnrollmentService) Unenroll(ctx context.Context, userID, courseID string) error {
	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return appErrors.Clone(appErrors.ErrNotFound, "enrollment not found")
	}
	if err := s.enrollments.Delete(ctx, userID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to unenroll")
	}
	return nil
}
