package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/internal/progress"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
)

type analyticsCategoryRepository interface {
	List(ctx context.Context) ([]models.CategorySummary, error)
}

type analyticsProgressRepository interface {
	CompletionStats(ctx context.Context) ([]models.CourseCompletionSummary, error)
}

type analyticsCountsRepository interface {
	CountDistinctStudents(ctx context.Context) (int, error)
}

type analyticsCourseRepository interface {
	CountPublished(ctx context.Context) (int, error)
}

type analyticsRequestRepository interface {
	CountPending(ctx context.Context) (int, error)
}

// AnalyticsService composes the platform analytics payload from category
// rollups and course completion stats, with cache integration. When the
// demo fallback is enabled, a failed load degrades to a canned dataset
// flagged as demo data instead of an error.
type AnalyticsService struct {
	categories analyticsCategoryRepository
	progress   analyticsProgressRepository
	counts     analyticsCountsRepository
	courses    analyticsCourseRepository
	requests   analyticsRequestRepository
	cache      *CacheService
	metrics    *MetricsService
	cfg        config.AnalyticsConfig
	logger     *zap.Logger
}

// NewAnalyticsService constructs an analytics service.
func NewAnalyticsService(
	categories analyticsCategoryRepository,
	progressRepo analyticsProgressRepository,
	counts analyticsCountsRepository,
	courses analyticsCourseRepository,
	requests analyticsRequestRepository,
	cache *CacheService,
	metrics *MetricsService,
	cfg config.AnalyticsConfig,
	logger *zap.Logger,
) *AnalyticsService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AnalyticsService{
		categories: categories,
		progress:   progressRepo,
		counts:     counts,
		courses:    courses,
		requests:   requests,
		cache:      cache,
		metrics:    metrics,
		cfg:        cfg,
		logger:     logger,
	}
}

const analyticsCacheKey = "analytics:platform"

// Platform returns the composed analytics payload. The first boolean
// reports a cache hit; the second reports that the demo fallback served
// the data.
func (s *AnalyticsService) Platform(ctx context.Context) (*models.PlatformAnalytics, bool, bool, error) {
	var cached models.PlatformAnalytics
	if hit, _ := s.cache.Get(ctx, analyticsCacheKey, &cached); hit {
		return &cached, true, false, nil
	}

	payload, err := s.compose(ctx)
	if err != nil {
		if s.cfg.DemoFallback {
			s.logger.Warn("analytics unavailable, serving demo dataset", zap.Error(err))
			demo := demoAnalytics()
			return demo, false, true, nil
		}
		return nil, false, false, err
	}

	if err := s.cache.Set(ctx, analyticsCacheKey, payload, s.cfg.CacheTTL); err != nil {
		s.logger.Warn("failed to cache analytics", zap.Error(err))
	}
	return payload, false, false, nil
}

func (s *AnalyticsService) compose(ctx context.Context) (*models.PlatformAnalytics, error) {
	start := time.Now()

	categories, err := s.categories.List(ctx)
	if err != nil {
		return nil, err
	}
	stats, err := s.progress.CompletionStats(ctx)
	if err != nil {
		return nil, err
	}
	students, err := s.counts.CountDistinctStudents(ctx)
	if err != nil {
		return nil, err
	}
	courses, err := s.courses.CountPublished(ctx)
	if err != nil {
		return nil, err
	}
	pending, err := s.requests.CountPending(ctx)
	if err != nil {
		return nil, err
	}

	if s.metrics != nil {
		s.metrics.ObserveDBQuery("analytics_platform", time.Since(start))
	}

	for i := range stats {
		stats[i].CompletionRate = progress.CompletionRate(stats[i].CompletedCount, stats[i].EnrolledCount)
	}

	return &models.PlatformAnalytics{
		Categories:      progress.RollupCategories(categories),
		Courses:         stats,
		TotalStudents:   students,
		TotalCourses:    courses,
		PendingRequests: pending,
		GeneratedAt:     time.Now().UTC(),
	}, nil
}

// SystemMetrics returns runtime instrumentation counters.
func (s *AnalyticsService) SystemMetrics() models.AnalyticsSystemMetrics {
	return s.metrics.Snapshot()
}

// demoAnalytics is the canned dataset used when the opt-in fallback is
// active and the real sources are unreachable.
func demoAnalytics() *models.PlatformAnalytics {
	return &models.PlatformAnalytics{
		Categories: []models.CategoryRollup{
			{CategoryID: "demo-programming", CategoryName: "Programming", CourseCount: 4, EnrolledCount: 120, EnrolledShare: 60},
			{CategoryID: "demo-design", CategoryName: "Design", CourseCount: 2, EnrolledCount: 50, EnrolledShare: 25},
			{CategoryID: "demo-business", CategoryName: "Business", CourseCount: 2, EnrolledCount: 30, EnrolledShare: 15},
		},
		Courses: []models.CourseCompletionSummary{
			{CourseID: "demo-go", CourseName: "Go Fundamentals", EnrolledCount: 80, CompletedCount: 32, CompletionRate: 40, AverageProgress: 55, AverageRating: 4.6},
			{CourseID: "demo-sql", CourseName: "Practical SQL", EnrolledCount: 40, CompletedCount: 10, CompletionRate: 25, AverageProgress: 38, AverageRating: 4.2},
		},
		TotalStudents:   150,
		TotalCourses:    8,
		PendingRequests: 3,
		GeneratedAt:     time.Now().UTC(),
	}
}
