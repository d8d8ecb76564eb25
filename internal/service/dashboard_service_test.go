package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/notify"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
)

func dashboardFixture(t *testing.T, categories *mockAnalyticsCategories) (*DashboardService, *notify.Center) {
	t.Helper()
	analytics := NewAnalyticsService(
		categories,
		&mockAnalyticsProgress{},
		&mockAnalyticsCounts{students: 40},
		&mockAnalyticsCourses{published: 6},
		&mockAnalyticsRequests{pending: 3},
		nil, nil,
		config.AnalyticsConfig{Enabled: true},
		zap.NewNop(),
	)
	notifier := notify.NewCenter(time.Hour, time.Hour, 10, zap.NewNop())
	svc := NewDashboardService(analytics, notifier, nil, config.DashboardConfig{Enabled: true}, zap.NewNop())
	return svc, notifier
}

func TestDashboardSummaryComposesCountsAndNotifications(t *testing.T) {
	svc, notifier := dashboardFixture(t, &mockAnalyticsCategories{categories: []models.CategorySummary{
		category("cat-1", "Programming", 2, 40),
	}})
	notifier.Push("admin-1", models.NotifyInfo, "welcome back")

	summary, err := svc.Summary(context.Background(), "admin-1")
	require.NoError(t, err)

	assert.Equal(t, 40, summary.TotalStudents)
	assert.Equal(t, 6, summary.TotalCourses)
	assert.Equal(t, 3, summary.PendingRequests)
	require.Len(t, summary.Notifications, 1)
	assert.Equal(t, "welcome back", summary.Notifications[0].Message)
}

func TestDashboardSummaryDegradesWhenAnalyticsFails(t *testing.T) {
	svc, _ := dashboardFixture(t, &mockAnalyticsCategories{err: errors.New("db down")})

	summary, err := svc.Summary(context.Background(), "admin-1")
	require.NoError(t, err)

	assert.Zero(t, summary.TotalStudents)
	assert.Empty(t, summary.Categories)
	assert.NotNil(t, summary.Notifications)
}

func TestDashboardNotificationsAreScopedPerUser(t *testing.T) {
	svc, notifier := dashboardFixture(t, &mockAnalyticsCategories{})
	notifier.Push("admin-1", models.NotifyWarning, "pending requests piling up")
	notifier.Push("admin-2", models.NotifyInfo, "other admin's note")

	summary, err := svc.Summary(context.Background(), "admin-1")
	require.NoError(t, err)
	require.Len(t, summary.Notifications, 1)
	assert.Equal(t, "pending requests piling up", summary.Notifications[0].Message)

	svc.DismissAll("admin-1")
	summary, err = svc.Summary(context.Background(), "admin-1")
	require.NoError(t, err)
	assert.Empty(t, summary.Notifications)
}
