package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// ProgressRepository manages per-student course progress records.
type ProgressRepository struct {
	db *sqlx.DB
}

// NewProgressRepository constructs a ProgressRepository.
func NewProgressRepository(db *sqlx.DB) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// Find returns the progress record for a user and course, or
// sql.ErrNoRows when the student has not started yet.
func (r *ProgressRepository) Find(ctx context.Context, userID, courseID string) (*models.CourseProgress, error) {
	const query = `SELECT id, user_id, course_id, percentage, completed_video_ids, passed_quiz_ids, quiz_results, certificate_issued, updated_at
        FROM course_progress WHERE user_id = $1 AND course_id = $2 LIMIT 1`
	var progress models.CourseProgress
	if err := r.db.GetContext(ctx, &progress, query, userID, courseID); err != nil {
		return nil, err
	}
	return &progress, nil
}

// ListByUser returns all of the user's progress records.
func (r *ProgressRepository) ListByUser(ctx context.Context, userID string) ([]models.CourseProgress, error) {
	const query = `SELECT id, user_id, course_id, percentage, completed_video_ids, passed_quiz_ids, quiz_results, certificate_issued, updated_at
        FROM course_progress WHERE user_id = $1`
	var records []models.CourseProgress
	if err := r.db.SelectContext(ctx, &records, query, userID); err != nil {
		return nil, fmt.Errorf("list progress by user: %w", err)
	}
	return records, nil
}

// Upsert writes the progress record, replacing any previous state for the
// same user and course.
func (r *ProgressRepository) Upsert(ctx context.Context, progress *models.CourseProgress) error {
	if progress.ID == "" {
		progress.ID = uuid.NewString()
	}
	progress.UpdatedAt = time.Now().UTC()
	const query = `INSERT INTO course_progress (id, user_id, course_id, percentage, completed_video_ids, passed_quiz_ids, quiz_results, certificate_issued, updated_at)
        VALUES (:id, :user_id, :course_id, :percentage, :completed_video_ids, :passed_quiz_ids, :quiz_results, :certificate_issued, :updated_at)
        ON CONFLICT (user_id, course_id) DO UPDATE SET
        percentage = EXCLUDED.percentage,
        completed_video_ids = EXCLUDED.completed_video_ids,
        passed_quiz_ids = EXCLUDED.passed_quiz_ids,
        quiz_results = EXCLUDED.quiz_results,
        certificate_issued = EXCLUDED.certificate_issued,
        updated_at = EXCLUDED.updated_at`
	if _, err := r.db.NamedExecContext(ctx, query, progress); err != nil {
		return fmt.Errorf("upsert progress: %w", err)
	}
	return nil
}

// SetCertificateIssued flags the course as certified for the student.
func (r *ProgressRepository) SetCertificateIssued(ctx context.Context, userID, courseID string) error {
	const query = `UPDATE course_progress SET certificate_issued = TRUE, updated_at = $3 WHERE user_id = $1 AND course_id = $2`
	if _, err := r.db.ExecContext(ctx, query, userID, courseID, time.Now().UTC()); err != nil {
		return fmt.Errorf("set certificate issued: %w", err)
	}
	return nil
}

// CompletionStats returns, per course, the enrolled and completed student
// counts used by the analytics rollups.
func (r *ProgressRepository) CompletionStats(ctx context.Context) ([]models.CourseCompletionSummary, error) {
	const query = `SELECT c.id AS course_id, c.name AS course_name, c.rating AS average_rating,
        COUNT(e.id) AS enrolled_count,
        COUNT(p.id) FILTER (WHERE p.percentage >= 100) AS completed_count
        FROM courses c
        LEFT JOIN enrollments e ON e.course_id = c.id
        LEFT JOIN course_progress p ON p.course_id = c.id AND p.user_id = e.user_id
        WHERE c.status = 'PUBLISHED'
        GROUP BY c.id, c.name, c.rating
        ORDER BY enrolled_count DESC`
	var stats []models.CourseCompletionSummary
	if err := r.db.SelectContext(ctx, &stats, query); err != nil {
		return nil, fmt.Errorf("completion stats: %w", err)
	}
	return stats, nil
}

// AveragePercentages returns the raw per-student percentages for a course.
func (r *ProgressRepository) AveragePercentages(ctx context.Context, courseID string) ([]int, error) {
	const query = `SELECT percentage FROM course_progress WHERE course_id = $1`
	var percentages []int
	if err := r.db.SelectContext(ctx, &percentages, query, courseID); err != nil {
		return nil, fmt.Errorf("progress percentages: %w", err)
	}
	return percentages, nil
}
