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

// AccessRequestRepository manages persistence for course access requests.
type AccessRequestRepository struct {
	db *sqlx.DB
}

// NewAccessRequestRepository constructs an AccessRequestRepository.
func NewAccessRequestRepository(db *sqlx.DB) *AccessRequestRepository {
	return &AccessRequestRepository{db: db}
}

// Create inserts a new access request in the pending state.
func (r *AccessRequestRepository) Create(ctx context.Context, request *models.AccessRequest) error {
	if request.ID == "" {
		request.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if request.CreatedAt.IsZero() {
		request.CreatedAt = now
	}
	request.UpdatedAt = now
	if request.Status == "" {
		request.Status = models.AccessStatusPending
	}
	const query = `INSERT INTO access_requests (id, user_id, course_id, status, decided_by, decided_at, created_at, updated_at)
        VALUES (:id, :user_id, :course_id, :status, :decided_by, :decided_at, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, request); err != nil {
		return fmt.Errorf("create access request: %w", err)
	}
	return nil
}

// FindByID fetches an access request by ID.
func (r *AccessRequestRepository) FindByID(ctx context.Context, id string) (*models.AccessRequest, error) {
	const query = `SELECT id, user_id, course_id, status, decided_by, decided_at, created_at, updated_at FROM access_requests WHERE id = $1 LIMIT 1`
	var request models.AccessRequest
	if err := r.db.GetContext(ctx, &request, query, id); err != nil {
		return nil, err
	}
	return &request, nil
}

// FindLatest returns the most recent request the user filed for the
// course, or sql.ErrNoRows when none exists.
func (r *AccessRequestRepository) FindLatest(ctx context.Context, userID, courseID string) (*models.AccessRequest, error) {
	const query = `SELECT id, user_id, course_id, status, decided_by, decided_at, created_at, updated_at
        FROM access_requests WHERE user_id = $1 AND course_id = $2 ORDER BY created_at DESC LIMIT 1`
	var request models.AccessRequest
	if err := r.db.GetContext(ctx, &request, query, userID, courseID); err != nil {
		return nil, err
	}
	return &request, nil
}

// ListByUser returns the user's requests, newest first.
func (r *AccessRequestRepository) ListByUser(ctx context.Context, userID string) ([]models.AccessRequest, error) {
	const query = `SELECT id, user_id, course_id, status, decided_by, decided_at, created_at, updated_at
        FROM access_requests WHERE user_id = $1 ORDER BY created_at DESC`
	var requests []models.AccessRequest
	if err := r.db.SelectContext(ctx, &requests, query, userID); err != nil {
		return nil, fmt.Errorf("list access requests by user: %w", err)
	}
	return requests, nil
}

// List returns request details matching the filter with a total count.
func (r *AccessRequestRepository) List(ctx context.Context, filter models.AccessRequestFilter) ([]models.AccessRequestDetail, int, error) {
	base := `FROM access_requests a
        JOIN courses c ON c.id = a.course_id
        JOIN users u ON u.id = a.user_id`
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.UserID != "" {
		conditions = append(conditions, fmt.Sprintf("a.user_id = $%d", len(args)+1))
		args = append(args, filter.UserID)
	}
	if filter.CourseID != "" {
		conditions = append(conditions, fmt.Sprintf("a.course_id = $%d", len(args)+1))
		args = append(args, filter.CourseID)
	}
	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("a.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 || size > 100 {
		size = 20
	}
	offset := (page - 1) * size

	query := fmt.Sprintf(`SELECT a.id, a.user_id, a.course_id, a.status, a.decided_by, a.decided_at, a.created_at, a.updated_at,
        c.name AS course_name, u.full_name AS user_name, u.email AS user_email
        %s ORDER BY a.created_at DESC LIMIT %d OFFSET %d`, base, size, offset)

	var requests []models.AccessRequestDetail
	if err := r.db.SelectContext(ctx, &requests, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list access requests: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count access requests: %w", err)
	}
	return requests, total, nil
}

// Decide records an approval or rejection. Only pending requests can be
// decided; it reports whether a row transitioned.
func (r *AccessRequestRepository) Decide(ctx context.Context, id string, status models.AccessRequestStatus, decidedBy string) (bool, error) {
	const query = `UPDATE access_requests SET status = $2, decided_by = $3, decided_at = $4, updated_at = $4 WHERE id = $1 AND status = $5`
	res, err := r.db.ExecContext(ctx, query, id, status, decidedBy, time.Now().UTC(), models.AccessStatusPending)
	if err != nil {
		return false, fmt.Errorf("decide access request: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("decide access request: %w", err)
	}
	return affected > 0, nil
}

// CountPending returns the number of undecided requests.
func (r *AccessRequestRepository) CountPending(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM access_requests WHERE status = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, models.AccessStatusPending); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("count pending access requests: %w", err)
	}
	return total, nil
}
