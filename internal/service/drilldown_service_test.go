package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/drilldown"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type mockDrilldownCategories struct {
	categories []models.CategorySummary
}

func (m *mockDrilldownCategories) List(ctx context.Context) ([]models.CategorySummary, error) {
	return m.categories, nil
}

func drilldownFixture(t *testing.T) *DrilldownService {
	t.Helper()
	store := drilldown.NewStore(time.Hour, time.Hour, zap.NewNop())
	t.Cleanup(store.Stop)

	course := publishedCourse("c1", "Go Basics", 0, 2)
	course.CategoryID = "cat-1"
	courses := &mockCourseRepo{courses: map[string]models.CourseDetail{"c1": course}}
	enrollments := &mockEnrollmentRepo{rosters: map[string][]models.StudentProgress{
		"c1": {
			{StudentID: "s1", StudentName: "Ada", Percentage: 80},
			{StudentID: "s2", StudentName: "Linus", Percentage: 20},
		},
	}}
	progressRepo := &mockProgressRepo{records: map[string]models.CourseProgress{
		"s1/c1": {UserID: "s1", CourseID: "c1", Percentage: 80},
	}}
	categories := &mockDrilldownCategories{categories: []models.CategorySummary{
		category("cat-1", "Programming", 1, 2),
	}}
	return NewDrilldownService(store, categories, courses, enrollments, progressRepo,
		config.DrilldownConfig{SessionTTL: time.Hour}, zap.NewNop())
}

func TestDrilldownRootShowsCategories(t *testing.T) {
	svc := drilldownFixture(t)

	view, err := svc.View(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelRoot, view.Level)
	require.Len(t, view.Categories, 1)
	assert.Equal(t, "cat-1", view.Categories[0].ID)
}

func TestDrilldownDescendToStudent(t *testing.T) {
	svc := drilldownFixture(t)
	ctx := context.Background()

	view, err := svc.SelectCategory(ctx, "admin-1", "cat-1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelCategory, view.Level)
	require.Len(t, view.Courses, 1)

	view, err = svc.SelectCourse(ctx, "admin-1", "c1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelCourse, view.Level)
	require.Len(t, view.Roster, 2)

	view, err = svc.SelectStudent(ctx, "admin-1", "s1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelStudent, view.Level)
	require.NotNil(t, view.Progress)
	assert.Equal(t, 80, view.Progress.Percentage)
}

func TestDrilldownCourseRequiresCategory(t *testing.T) {
	svc := drilldownFixture(t)

	_, err := svc.SelectCourse(context.Background(), "admin-1", "c1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestDrilldownStudentWithoutRecordGetsZeroProgress(t *testing.T) {
	svc := drilldownFixture(t)
	ctx := context.Background()

	_, err := svc.SelectCategory(ctx, "admin-1", "cat-1")
	require.NoError(t, err)
	_, err = svc.SelectCourse(ctx, "admin-1", "c1")
	require.NoError(t, err)

	view, err := svc.SelectStudent(ctx, "admin-1", "s2")
	require.NoError(t, err)
	require.NotNil(t, view.Progress)
	assert.Equal(t, 0, view.Progress.Percentage)
}

func TestDrilldownBackPopsOneLevel(t *testing.T) {
	svc := drilldownFixture(t)
	ctx := context.Background()

	_, err := svc.SelectCategory(ctx, "admin-1", "cat-1")
	require.NoError(t, err)
	_, err = svc.SelectCourse(ctx, "admin-1", "c1")
	require.NoError(t, err)

	view, err := svc.Back(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelCategory, view.Level)
	assert.Empty(t, view.CourseID)

	view, err = svc.Back(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelRoot, view.Level)

	// at the root, back stays put
	view, err = svc.Back(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelRoot, view.Level)
}

func TestDrilldownResetClearsSelections(t *testing.T) {
	svc := drilldownFixture(t)
	ctx := context.Background()

	_, err := svc.SelectCategory(ctx, "admin-1", "cat-1")
	require.NoError(t, err)

	view, err := svc.Reset(ctx, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelRoot, view.Level)
	assert.Empty(t, view.CategoryID)
}

func TestDrilldownSessionsAreIsolated(t *testing.T) {
	svc := drilldownFixture(t)
	ctx := context.Background()

	_, err := svc.SelectCategory(ctx, "admin-1", "cat-1")
	require.NoError(t, err)

	view, err := svc.View(ctx, "admin-2")
	require.NoError(t, err)
	assert.Equal(t, drilldown.LevelRoot, view.Level)
}
