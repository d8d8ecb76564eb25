package models

import "time"

// CategoryRollup aggregates course and enrollment counts per category.
type CategoryRollup struct {
	CategoryID    string `db:"category_id" json:"category_id"`
	CategoryName  string `db:"category_name" json:"category_name"`
	CourseCount   int    `db:"course_count" json:"course_count"`
	EnrolledCount int    `db:"enrolled_count" json:"enrolled_count"`
	StudentCount  int    `db:"student_count" json:"student_count"`
	EnrolledShare int    `json:"enrolled_share"`
}

// CourseCompletionSummary aggregates learning outcomes for one course.
type CourseCompletionSummary struct {
	CourseID        string  `db:"course_id" json:"course_id"`
	CourseName      string  `db:"course_name" json:"course_name"`
	EnrolledCount   int     `db:"enrolled_count" json:"enrolled_count"`
	CompletedCount  int     `db:"completed_count" json:"completed_count"`
	CompletionRate  int     `json:"completion_rate"`
	AverageProgress int     `json:"average_progress"`
	AverageRating   float64 `db:"average_rating" json:"average_rating"`
}

// PlatformAnalytics is the composed analytics payload for admins.
type PlatformAnalytics struct {
	Categories      []CategoryRollup          `json:"categories"`
	Courses         []CourseCompletionSummary `json:"courses"`
	TotalStudents   int                       `json:"total_students"`
	TotalCourses    int                       `json:"total_courses"`
	PendingRequests int                       `json:"pending_requests"`
	GeneratedAt     time.Time                 `json:"generated_at"`
}

// AnalyticsSystemMetrics summarises runtime instrumentation counters.
type AnalyticsSystemMetrics struct {
	RequestCount             uint64    `json:"request_count"`
	AverageRequestDurationMS float64   `json:"average_request_duration_ms"`
	CacheHits                uint64    `json:"cache_hits"`
	CacheMisses              uint64    `json:"cache_misses"`
	CacheHitRatio            float64   `json:"cache_hit_ratio"`
	DBQueryCount             uint64    `json:"db_query_count"`
	AverageDBQueryDurationMS float64   `json:"average_db_query_duration_ms"`
	Goroutines               int       `json:"goroutines"`
	CollectedAt              time.Time `json:"collected_at"`
}
