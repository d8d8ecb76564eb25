package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/access"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type mockEnrollmentRepo struct {
	mockAccessEnrollmentRepo
	byUser  map[string][]models.Enrollment
	rosters map[string][]models.StudentProgress
	removed []string
}

func (m *mockEnrollmentRepo) ListByUser(ctx context.Context, userID string) ([]models.Enrollment, error) {
	return m.byUser[userID], nil
}

func (m *mockEnrollmentRepo) List(ctx context.Context, filter models.EnrollmentFilter) ([]models.EnrollmentDetail, int, error) {
	var list []models.EnrollmentDetail
	for _, enrollments := range m.byUser {
		for _, e := range enrollments {
			list = append(list, models.EnrollmentDetail{Enrollment: e})
		}
	}
	return list, len(list), nil
}

func (m *mockEnrollmentRepo) Roster(ctx context.Context, courseID string) ([]models.StudentProgress, error) {
	return m.rosters[courseID], nil
}

func (m *mockEnrollmentRepo) Delete(ctx context.Context, userID, courseID string) error {
	m.removed = append(m.removed, userID+"/"+courseID)
	delete(m.enrolled, userID+"/"+courseID)
	return nil
}

func TestEnrollFreePublishedCourse(t *testing.T) {
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{
		"c1": publishedCourse("c1", "Go Basics", 0, 10),
	}}
	enrollments := &mockEnrollmentRepo{}
	svc := NewEnrollmentService(enrollments, courses, &mockAccessRequestRepo{}, &mockProgressRepo{}, nil, zap.NewNop())

	enrollment, err := svc.Enroll(context.Background(), "u1", "c1")
	require.NoError(t, err)
	assert.Equal(t, "u1", enrollment.UserID)
	assert.True(t, enrollments.enrolled["u1/c1"])
}

func TestEnrollPaidCourseForbidden(t *testing.T) {
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{
		"c1": publishedCourse("c1", "Advanced Go", 49, 10),
	}}
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, courses, &mockAccessRequestRepo{}, &mockProgressRepo{}, nil, zap.NewNop())

	_, err := svc.Enroll(context.Background(), "u1", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrForbidden.Code, appErrors.FromError(err).Code)
}

func TestEnrollTwiceConflicts(t *testing.T) {
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{
		"c1": publishedCourse("c1", "Go Basics", 0, 10),
	}}
	enrollments := &mockEnrollmentRepo{}
	enrollments.enrolled = map[string]bool{"u1/c1": true}
	svc := NewEnrollmentService(enrollments, courses, &mockAccessRequestRepo{}, &mockProgressRepo{}, nil, zap.NewNop())

	_, err := svc.Enroll(context.Background(), "u1", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrAlreadyEnrolled.Code, appErrors.FromError(err).Code)
}

func TestEnrollUnpublishedCourseHidden(t *testing.T) {
	draft := publishedCourse("c1", "Draft Course", 0, 0)
	draft.Status = models.CourseStatusDraft
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{"c1": draft}}
	svc := NewEnrollmentService(&mockEnrollmentRepo{}, courses, &mockAccessRequestRepo{}, &mockProgressRepo{}, nil, zap.NewNop())

	_, err := svc.Enroll(context.Background(), "u1", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestMyCoursesAnnotatesActionAndProgress(t *testing.T) {
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{
		"c1": publishedCourse("c1", "Go Basics", 0, 10),
	}}
	enrollments := &mockEnrollmentRepo{byUser: map[string][]models.Enrollment{
		"u1": {{ID: "e1", UserID: "u1", CourseID: "c1"}},
	}}
	progressRepo := &mockProgressRepo{records: map[string]models.CourseProgress{
		"u1/c1": {UserID: "u1", CourseID: "c1", Percentage: 40},
	}}
	svc := NewEnrollmentService(enrollments, courses, &mockAccessRequestRepo{}, progressRepo, nil, zap.NewNop())

	mine, err := svc.MyCourses(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, access.ActionContinue, mine[0].Action)
	assert.Equal(t, 40, mine[0].Progress)
}

func TestUnenrollRemovesEnrollment(t *testing.T) {
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{
		"c1": publishedCourse("c1", "Go Basics", 0, 10),
	}}
	enrollments := &mockEnrollmentRepo{}
	enrollments.enrolled = map[string]bool{"u1/c1": true}
	svc := NewEnrollmentService(enrollments, courses, &mockAccessRequestRepo{}, &mockProgressRepo{}, nil, zap.NewNop())

	require.NoError(t, svc.Unenroll(context.Background(), "u1", "c1"))
	assert.Contains(t, enrollments.removed, "u1/c1")
}
