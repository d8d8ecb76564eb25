package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/notify"
	"github.com/Harish222600/LMS-SELL-sub001/internal/progress"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type progressRepository interface {
	Find(ctx context.Context, userID, courseID string) (*models.CourseProgress, error)
	ListByUser(ctx context.Context, userID string) ([]models.CourseProgress, error)
	Upsert(ctx context.Context, progress *models.CourseProgress) error
	SetCertificateIssued(ctx context.Context, userID, courseID string) error
}

// LearningService tracks a student's movement through a course: videos
// watched, quizzes taken and the derived completion percentage.
type LearningService struct {
	progress    progressRepository
	enrollments accessEnrollmentRepository
	courses     courseRepository
	notifier    *notify.Center
	validator   *validator.Validate
	logger      *zap.Logger
	passMark    int
}

// NewLearningService constructs a LearningService. passMark is the quiz
// percentage required to pass; values outside 1..100 fall back to 60.
func NewLearningService(progressRepo progressRepository, enrollments accessEnrollmentRepository, courses courseRepository, notifier *notify.Center, validate *validator.Validate, logger *zap.Logger, passMark int) *LearningService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	if passMark < 1 || passMark > 100 {
		passMark = 60
	}
	return &LearningService{
		progress:    progressRepo,
		enrollments: enrollments,
		courses:     courses,
		notifier:    notifier,
		validator:   validate,
		logger:      logger,
		passMark:    passMark,
	}
}

// GetProgress returns the student's progress record for a course. A
// student who has not started gets a zeroed record rather than an error.
func (s *LearningService) GetProgress(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, err
	}

	record, err := s.progress.Find(ctx, userID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return &models.CourseProgress{
				UserID:            userID,
				CourseID:          courseID,
				CompletedVideoIDs: models.StringList{},
				PassedQuizIDs:     models.StringList{},
				QuizResults:       models.QuizResults{},
			}, nil
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load progress")
	}
	return record, nil
}

// MarkVideoComplete records a watched video and recomputes the course
// percentage. Marking the same video twice is a no-op.
func (s *LearningService) MarkVideoComplete(ctx context.Context, userID, courseID, videoID string) (*models.CourseProgress, error) {
	if videoID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "video id is required")
	}

	record, course, err := s.loadForUpdate(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	for _, id := range record.CompletedVideoIDs {
		if id == videoID {
			return record, nil
		}
	}
	record.CompletedVideoIDs = append(record.CompletedVideoIDs, videoID)
	s.recompute(record, course)

	if err := s.progress.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save progress")
	}

	s.maybeCongratulate(ctx, record, course)
	return record, nil
}

// QuizAttempt carries one quiz submission.
type QuizAttempt struct {
	QuizID string  `json:"quiz_id" validate:"required"`
	Score  float64 `json:"score" validate:"gte=0"`
	Total  float64 `json:"total" validate:"gt=0"`
}

// RecordQuizResult stores a quiz attempt, marking the quiz passed when the
// score meets the pass mark. Retakes bump the attempt counter; a pass is
// never downgraded by a later failing attempt.
func (s *LearningService) RecordQuizResult(ctx context.Context, userID, courseID string, attempt QuizAttempt) (*models.CourseProgress, error) {
	if err := s.validator.Struct(attempt); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid quiz payload")
	}

	record, course, err := s.loadForUpdate(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	pct := progress.Percent(int(attempt.Score), int(attempt.Total))
	passed := pct >= s.passMark
	now := time.Now().UTC()

	found := false
	for i := range record.QuizResults {
		if record.QuizResults[i].QuizID != attempt.QuizID {
			continue
		}
		found = true
		record.QuizResults[i].Attempts++
		record.QuizResults[i].Score = attempt.Score
		record.QuizResults[i].Percentage = pct
		record.QuizResults[i].CompletedAt = &now
		if passed {
			record.QuizResults[i].Passed = true
		}
		break
	}
	if !found {
		record.QuizResults = append(record.QuizResults, models.QuizResult{
			QuizID:      attempt.QuizID,
			Score:       attempt.Score,
			Percentage:  pct,
			Passed:      passed,
			Attempts:    1,
			CompletedAt: &now,
		})
	}

	if passed {
		alreadyPassed := false
		for _, id := range record.PassedQuizIDs {
			if id == attempt.QuizID {
				alreadyPassed = true
				break
			}
		}
		if !alreadyPassed {
			record.PassedQuizIDs = append(record.PassedQuizIDs, attempt.QuizID)
		}
	}

	s.recompute(record, course)

	if err := s.progress.Upsert(ctx, record); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to save progress")
	}

	s.maybeCongratulate(ctx, record, course)
	return record, nil
}

// IssueCertificate marks the course as certified once it is complete.
func (s *LearningService) IssueCertificate(ctx context.Context, userID, courseID string) error {
	record, err := s.GetProgress(ctx, userID, courseID)
	if err != nil {
		return err
	}
	if record.Percentage < 100 {
		return appErrors.Clone(appErrors.ErrPreconditionFailed, "course is not complete")
	}
	if record.CertificateIssued {
		return nil
	}
	if err := s.progress.SetCertificateIssued(ctx, userID, courseID); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to issue certificate")
	}
	return nil
}

func (s *LearningService) loadForUpdate(ctx context.Context, userID, courseID string) (*models.CourseProgress, *models.CourseDetail, error) {
	if err := s.requireEnrollment(ctx, userID, courseID); err != nil {
		return nil, nil, err
	}
	course, err := s.courses.FindByID(ctx, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	record, err := s.GetProgress(ctx, userID, courseID)
	if err != nil {
		return nil, nil, err
	}
	return record, course, nil
}

func (s *LearningService) requireEnrollment(ctx context.Context, userID, courseID string) error {
	enrolled, err := s.enrollments.Exists(ctx, userID, courseID)
	if err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to check enrollment")
	}
	if !enrolled {
		return appErrors.Clone(appErrors.ErrForbidden, "not enrolled in this course")
	}
	return nil
}

func (s *LearningService) recompute(record *models.CourseProgress, course *models.CourseDetail) {
	record.Percentage = progress.CoursePercent(
		len(record.CompletedVideoIDs), course.LessonCount,
		len(record.PassedQuizIDs), course.QuizCount,
	)
}

func (s *LearningService) maybeCongratulate(ctx context.Context, record *models.CourseProgress, course *models.CourseDetail) {
	if s.notifier == nil || record.Percentage < 100 {
		return
	}
	s.notifier.Push(record.UserID, models.NotifySuccess, "You completed "+course.Name)
}
