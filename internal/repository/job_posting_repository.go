package repository

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// JobPostingRepository manages persistence for career openings.
type JobPostingRepository struct {
	db *sqlx.DB
}

// NewJobPostingRepository constructs a JobPostingRepository.
func NewJobPostingRepository(db *sqlx.DB) *JobPostingRepository {
	return &JobPostingRepository{db: db}
}

// List returns postings matching the filter with a total count.
func (r *JobPostingRepository) List(ctx context.Context, filter models.JobPostingFilter) ([]models.JobPosting, int, error) {
	base := `FROM job_postings WHERE 1=1`
	var conditions []string
	var args []interface{}

	if filter.PublishedOnly {
		conditions = append(conditions, "published = TRUE")
	}
	if filter.Department != "" {
		conditions = append(conditions, fmt.Sprintf("department = $%d", len(args)+1))
		args = append(args, filter.Department)
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(title) LIKE $%d OR LOWER(location) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
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

	query := fmt.Sprintf(`SELECT id, title, department, location, employment_type, requirements, benefits, deadline, published, created_at, updated_at
        %s ORDER BY created_at DESC LIMIT %d OFFSET %d`, base, size, offset)

	var postings []models.JobPosting
	if err := r.db.SelectContext(ctx, &postings, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list job postings: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count job postings: %w", err)
	}
	return postings, total, nil
}

// FindByID fetches a posting by ID.
func (r *JobPostingRepository) FindByID(ctx context.Context, id string) (*models.JobPosting, error) {
	const query = `SELECT id, title, department, location, employment_type, requirements, benefits, deadline, published, created_at, updated_at
        FROM job_postings WHERE id = $1 LIMIT 1`
	var posting models.JobPosting
	if err := r.db.GetContext(ctx, &posting, query, id); err != nil {
		return nil, err
	}
	return &posting, nil
}

// Create inserts a new posting.
func (r *JobPostingRepository) Create(ctx context.Context, posting *models.JobPosting) error {
	if posting.ID == "" {
		posting.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if posting.CreatedAt.IsZero() {
		posting.CreatedAt = now
	}
	posting.UpdatedAt = now
	const query = `INSERT INTO job_postings (id, title, department, location, employment_type, requirements, benefits, deadline, published, created_at, updated_at)
        VALUES (:id, :title, :department, :location, :employment_type, :requirements, :benefits, :deadline, :published, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, posting); err != nil {
		return fmt.Errorf("create job posting: %w", err)
	}
	return nil
}

// Update modifies an existing posting.
func (r *JobPostingRepository) Update(ctx context.Context, posting *models.JobPosting) error {
	posting.UpdatedAt = time.Now().UTC()
	const query = `UPDATE job_postings SET title = :title, department = :department, location = :location, employment_type = :employment_type,
        requirements = :requirements, benefits = :benefits, deadline = :deadline, published = :published, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, posting); err != nil {
		return fmt.Errorf("update job posting: %w", err)
	}
	return nil
}

// Delete removes a posting.
func (r *JobPostingRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM job_postings WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete job posting: %w", err)
	}
	return nil
}
