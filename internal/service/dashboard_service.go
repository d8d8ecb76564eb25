package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/notify"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
)

// DashboardSummary is the admin landing payload: headline counts plus the
// caller's live notifications.
type DashboardSummary struct {
	TotalStudents   int                   `json:"total_students"`
	TotalCourses    int                   `json:"total_courses"`
	PendingRequests int                   `json:"pending_requests"`
	Categories      []models.CategoryRollup `json:"categories"`
	Notifications   []models.Notification `json:"notifications"`
	GeneratedAt     time.Time             `json:"generated_at"`
}

// DashboardService composes the admin dashboard. Count sources that fail
// degrade to zero values so the dashboard always renders; the analytics
// surface is the place for hard errors.
type DashboardService struct {
	analytics *AnalyticsService
	notifier  *notify.Center
	cache     *CacheService
	cfg       config.DashboardConfig
	logger    *zap.Logger
}

// NewDashboardService constructs a DashboardService.
func NewDashboardService(analytics *AnalyticsService, notifier *notify.Center, cache *CacheService, cfg config.DashboardConfig, logger *zap.Logger) *DashboardService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DashboardService{analytics: analytics, notifier: notifier, cache: cache, cfg: cfg, logger: logger}
}

const dashboardCacheKey = "dashboard:summary"

// Summary returns the dashboard payload for the user. The counts portion
// is shared and cached; notifications are always read live.
func (s *DashboardService) Summary(ctx context.Context, userID string) (*DashboardSummary, error) {
	summary := s.counts(ctx)
	if s.notifier != nil {
		summary.Notifications = s.notifier.List(userID)
	}
	if summary.Notifications == nil {
		summary.Notifications = []models.Notification{}
	}
	return summary, nil
}

func (s *DashboardService) counts(ctx context.Context) *DashboardSummary {
	var cached DashboardSummary
	if hit, _ := s.cache.Get(ctx, dashboardCacheKey, &cached); hit {
		return &cached
	}

	summary := &DashboardSummary{
		Categories:  []models.CategoryRollup{},
		GeneratedAt: time.Now().UTC(),
	}

	analytics, _, _, err := s.analytics.Platform(ctx)
	if err != nil {
		// degrade to an empty dashboard rather than failing the page
		s.logger.Warn("dashboard counts unavailable", zap.Error(err))
		return summary
	}

	summary.TotalStudents = analytics.TotalStudents
	summary.TotalCourses = analytics.TotalCourses
	summary.PendingRequests = analytics.PendingRequests
	summary.Categories = analytics.Categories

	if err := s.cache.Set(ctx, dashboardCacheKey, summary, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache dashboard counts", zap.Error(err))
	}
	return summary
}

// Notify pushes a dashboard notification to a user.
func (s *DashboardService) Notify(userID string, level models.NotificationLevel, message string) *models.Notification {
	if s.notifier == nil {
		return nil
	}
	n := s.notifier.Push(userID, level, message)
	return &n
}

// Dismiss removes one of the user's notifications.
func (s *DashboardService) Dismiss(userID, notificationID string) bool {
	if s.notifier == nil {
		return false
	}
	return s.notifier.Dismiss(userID, notificationID)
}

// DismissAll clears the user's notifications.
func (s *DashboardService) DismissAll(userID string) {
	if s.notifier != nil {
		s.notifier.DismissAll(userID)
	}
}
