package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
)

type mockAnalyticsCategories struct {
	categories []models.CategorySummary
	err        error
}

func (m *mockAnalyticsCategories) List(ctx context.Context) ([]models.CategorySummary, error) {
	return m.categories, m.err
}

type mockAnalyticsProgress struct {
	stats []models.CourseCompletionSummary
	err   error
}

func (m *mockAnalyticsProgress) CompletionStats(ctx context.Context) ([]models.CourseCompletionSummary, error) {
	return m.stats, m.err
}

type mockAnalyticsCounts struct{ students int }

func (m *mockAnalyticsCounts) CountDistinctStudents(ctx context.Context) (int, error) {
	return m.students, nil
}

type mockAnalyticsCourses struct{ published int }

func (m *mockAnalyticsCourses) CountPublished(ctx context.Context) (int, error) {
	return m.published, nil
}

type mockAnalyticsRequests struct{ pending int }

func (m *mockAnalyticsRequests) CountPending(ctx context.Context) (int, error) {
	return m.pending, nil
}

func category(id, name string, courses, enrolled int) models.CategorySummary {
	return models.CategorySummary{
		Category:      models.Category{ID: id, Name: name},
		CourseCount:   courses,
		EnrolledCount: enrolled,
	}
}

func TestPlatformComposesRollupsAndCounts(t *testing.T) {
	svc := NewAnalyticsService(
		&mockAnalyticsCategories{categories: []models.CategorySummary{
			category("cat-1", "Programming", 3, 75),
			category("cat-2", "Design", 1, 25),
		}},
		&mockAnalyticsProgress{stats: []models.CourseCompletionSummary{
			{CourseID: "c1", CourseName: "Go Basics", EnrolledCount: 50, CompletedCount: 10},
		}},
		&mockAnalyticsCounts{students: 90},
		&mockAnalyticsCourses{published: 4},
		&mockAnalyticsRequests{pending: 2},
		nil, nil,
		config.AnalyticsConfig{Enabled: true},
		zap.NewNop(),
	)

	payload, cacheHit, demo, err := svc.Platform(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.False(t, demo)

	require.Len(t, payload.Categories, 2)
	assert.Equal(t, 75, payload.Categories[0].EnrolledShare)
	assert.Equal(t, 25, payload.Categories[1].EnrolledShare)

	require.Len(t, payload.Courses, 1)
	assert.Equal(t, 20, payload.Courses[0].CompletionRate)

	assert.Equal(t, 90, payload.TotalStudents)
	assert.Equal(t, 4, payload.TotalCourses)
	assert.Equal(t, 2, payload.PendingRequests)
}

func TestPlatformErrorWithoutFallback(t *testing.T) {
	svc := NewAnalyticsService(
		&mockAnalyticsCategories{err: errors.New("db down")},
		&mockAnalyticsProgress{},
		&mockAnalyticsCounts{},
		&mockAnalyticsCourses{},
		&mockAnalyticsRequests{},
		nil, nil,
		config.AnalyticsConfig{Enabled: true},
		zap.NewNop(),
	)

	_, _, demo, err := svc.Platform(context.Background())
	require.Error(t, err)
	assert.False(t, demo)
}

func TestPlatformServesDemoDataWhenEnabled(t *testing.T) {
	svc := NewAnalyticsService(
		&mockAnalyticsCategories{err: errors.New("db down")},
		&mockAnalyticsProgress{},
		&mockAnalyticsCounts{},
		&mockAnalyticsCourses{},
		&mockAnalyticsRequests{},
		nil, nil,
		config.AnalyticsConfig{Enabled: true, DemoFallback: true},
		zap.NewNop(),
	)

	payload, cacheHit, demo, err := svc.Platform(context.Background())
	require.NoError(t, err)
	assert.False(t, cacheHit)
	assert.True(t, demo)
	assert.NotEmpty(t, payload.Categories)
	assert.NotZero(t, payload.TotalStudents)
}
