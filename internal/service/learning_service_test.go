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
	"github.com/Harish222600/LMS-SELL-sub001/internal/notify"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type mockProgressRepo struct {
	records   map[string]models.CourseProgress
	certified []string
}

func progressKey(userID, courseID string) string { return userID + "/" + courseID }

func (m *mockProgressRepo) Find(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	if r, ok := m.records[progressKey(userID, courseID)]; ok {
		return &r, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockProgressRepo) ListByUser(ctx context.Context, userID string) ([]models.CourseProgress, error) {
	var list []models.CourseProgress
	for _, r := range m.records {
		if r.UserID == userID {
			list = append(list, r)
		}
	}
	return list, nil
}

func (m *mockProgressRepo) Upsert(ctx context.Context, progress *models.CourseProgress) error {
	if m.records == nil {
		m.records = make(map[string]models.CourseProgress)
	}
	m.records[progressKey(progress.UserID, progress.CourseID)] = *progress
	return nil
}

func (m *mockProgressRepo) SetCertificateIssued(ctx context.Context, userID, courseID string) error {
	m.certified = append(m.certified, progressKey(userID, courseID))
	if r, ok := m.records[progressKey(userID, courseID)]; ok {
		r.CertificateIssued = true
		m.records[progressKey(userID, courseID)] = r
	}
	return nil
}

func learningFixture(t *testing.T) (*LearningService, *mockProgressRepo, *notify.Center) {
	t.Helper()
	course := publishedCourse("c1", "Go Basics", 0, 10)
	course.LessonCount = 2
	course.QuizCount = 2
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{"c1": course}}
	enrollments := &mockAccessEnrollmentRepo{enrolled: map[string]bool{"u1/c1": true}}
	progressRepo := &mockProgressRepo{}
	notifier := notify.NewCenter(time.Hour, time.Hour, 10, zap.NewNop())
	svc := NewLearningService(progressRepo, enrollments, courses, notifier, nil, zap.NewNop(), 60)
	return svc, progressRepo, notifier
}

func TestGetProgressRequiresEnrollment(t *testing.T) {
	svc, _, _ := learningFixture(t)

	_, err := svc.GetProgress(context.Background(), "stranger", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestGetProgressZeroRecordWhenNotStarted(t *testing.T) {
	svc, _, _ := learningFixture(t)

	record, err := svc.GetProgress(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, 0, record.Percentage)
	assert.Empty(t, record.CompletedVideoIDs)
}

func TestMarkVideoCompleteIsIdempotent(t *testing.T) {
	svc, repo, _ := learningFixture(t)

	record, err := svc.MarkVideoComplete(context.Background(), "u1", "c1", "v1")
	require.NoError(t, err)
	assert.Equal(t, 25, record.Percentage)

	record, err = svc.MarkVideoComplete(context.Background(), "u1", "c1", "v1")
	require.NoError(t, err)
	assert.Len(t, record.CompletedVideoIDs, 1)
	assert.Equal(t, 25, record.Percentage)
	assert.Len(t, repo.records, 1)
}

func TestRecordQuizResultPassAndRetake(t *testing.T) {
	svc, _, _ := learningFixture(t)

	record, err := svc.RecordQuizResult(context.Background(), "u1", "c1", QuizAttempt{
		QuizID: "q1", Score: 8, Total: 10,
	})
	require.NoError(t, err)
	require.Len(t, record.QuizResults, 1)
	assert.True(t, record.QuizResults[0].Passed)
	assert.Equal(t, 1, record.QuizResults[0].Attempts)
	assert.Contains(t, []string(record.PassedQuizIDs), "q1")

	// later failing attempt bumps the counter but keeps the pass
	record, err = svc.RecordQuizResult(context.Background(), "u1", "c1", QuizAttempt{
		QuizID: "q1", Score: 2, Total: 10,
	})
	require.NoError(t, err)
	require.Len(t, record.QuizResults, 1)
	assert.True(t, record.QuizResults[0].Passed)
	assert.Equal(t, 2, record.QuizResults[0].Attempts)
	assert.Contains(t, []string(record.PassedQuizIDs), "q1")
}

func TestRecordQuizResultBelowPassMark(t *testing.T) {
	svc, _, _ := learningFixture(t)

	record, err := svc.RecordQuizResult(context.Background(), "u1", "c1", QuizAttempt{
		QuizID: "q1", Score: 5, Total: 10,
	})
	require.NoError(t, err)
	require.Len(t, record.QuizResults, 1)
	assert.False(t, record.QuizResults[0].Passed)
	assert.Empty(t, record.PassedQuizIDs)
}

func TestCompletionTriggersNotification(t *testing.T) {
	svc, _, notifier := learningFixture(t)
	ctx := context.Background()

	_, err := svc.MarkVideoComplete(ctx, "u1", "c1", "v1")
	require.NoError(t, err)
	_, err = svc.MarkVideoComplete(ctx, "u1", "c1", "v2")
	require.NoError(t, err)
	_, err = svc.RecordQuizResult(ctx, "u1", "c1", QuizAttempt{QuizID: "q1", Score: 9, Total: 10})
	require.NoError(t, err)
	record, err := svc.RecordQuizResult(ctx, "u1", "c1", QuizAttempt{QuizID: "q2", Score: 10, Total: 10})
	require.NoError(t, err)

	assert.Equal(t, 100, record.Percentage)
	feed := notifier.List("u1")
	require.Len(t, feed, 1)
	assert.Equal(t, models.NotifySuccess, feed[0].Level)
}

func TestIssueCertificateRequiresCompletion(t *testing.T) {
	svc, repo, _ := learningFixture(t)

	_, err := svc.MarkVideoComplete(context.Background(), "u1", "c1", "v1")
	require.NoError(t, err)

	err = svc.IssueCertificate(context.Background(), "u1", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrPreconditionFailed.Code, appErrors.FromError(err).Code)
	assert.Empty(t, repo.certified)
}

func TestIssueCertificateIdempotent(t *testing.T) {
	svc, repo, _ := learningFixture(t)
	repo.records = map[string]models.CourseProgress{
		"u1/c1": {UserID: "u1", CourseID: "c1", Percentage: 100, CertificateIssued: true},
	}

	require.NoError(t, svc.IssueCertificate(context.Background(), "u1", "c1"))
	assert.Empty(t, repo.certified)
}

func TestIssueCertificateAtCompletion(t *testing.T) {
	svc, repo, _ := learningFixture(t)
	repo.records = map[string]models.CourseProgress{
		"u1/c1": {UserID: "u1", CourseID: "c1", Percentage: 100},
	}

	require.NoError(t, svc.IssueCertificate(context.Background(), "u1", "c1"))
	assert.Contains(t, repo.certified, "u1/c1")
}
