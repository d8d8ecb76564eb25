package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// JobApplicationRepository manages persistence for job applications.
type JobApplicationRepository struct {
	db *sqlx.DB
}

// NewJobApplicationRepository constructs a JobApplicationRepository.
func NewJobApplicationRepository(db *sqlx.DB) *JobApplicationRepository {
	return &JobApplicationRepository{db: db}
}

// Create inserts a new application in the submitted state.
func (r *JobApplicationRepository) Create(ctx context.Context, application *models.JobApplication) error {
	if application.ID == "" {
		application.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if application.CreatedAt.IsZero() {
		application.CreatedAt = now
	}
	application.UpdatedAt = now
	if application.Status == "" {
		application.Status = models.ApplicationStatusSubmitted
	}
	const query = `INSERT INTO job_applications (id, job_id, full_name, email, phone, cover_letter, resume_key, status, created_at, updated_at)
        VALUES (:id, :job_id, :full_name, :email, :phone, :cover_letter, :resume_key, :status, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, application); err != nil {
		return fmt.Errorf("create job application: %w", err)
	}
	return nil
}

// FindByID fetches an application by ID.
func (r *JobApplicationRepository) FindByID(ctx context.Context, id string) (*models.JobApplication, error) {
	const query = `SELECT id, job_id, full_name, email, phone, cover_letter, resume_key, status, created_at, updated_at
        FROM job_applications WHERE id = $1 LIMIT 1`
	var application models.JobApplication
	if err := r.db.GetContext(ctx, &application, query, id); err != nil {
		return nil, err
	}
	return &application, nil
}

// ExistsByEmail checks whether the candidate already applied to the job.
func (r *JobApplicationRepository) ExistsByEmail(ctx context.Context, jobID, email string) (bool, error) {
	const query = `SELECT 1 FROM job_applications WHERE job_id = $1 AND LOWER(email) = LOWER($2) LIMIT 1`
	var exists int
	if err := r.db.GetContext(ctx, &exists, query, jobID, email); err != nil {
		if err == sql.ErrNoRows {
			return false, nil
		}
		return false, fmt.Errorf("check application: %w", err)
	}
	return true, nil
}

// List returns applications matching the filter with a total count.
func (r *JobApplicationRepository) List(ctx context.Context, filter models.JobApplicationFilter) ([]models.JobApplication, int, error) {
	base := `FROM job_applications WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.JobID != "" {
		conditions = append(conditions, fmt.Sprintf("job_id = $%d", len(args)+1))
		args = append(args, filter.JobID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	if len(conditions) > 0 {
		base += " AND " + strings.Join(conditions, " AND ")
	}

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT id, job_id, full_name, email, phone, cover_letter, resume_key, status, created_at, updated_at
        %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, size, offset)

	var applications []models.JobApplication
	if err := r.db.SelectContext(ctx, &applications, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list job applications: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count job applications: %w", err)
	}
	return applications, total, nil
}

// SetStatus moves an application through the review lifecycle.
func (r *JobApplicationRepository) SetStatus(ctx context.Context, id string, status models.ApplicationStatus) error {
	const query = `UPDATE job_applications SET status = $2, updated_at = $3 WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("set application status: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
