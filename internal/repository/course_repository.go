package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

const courseColumns = `c.id, c.name, c.description, c.category_id, c.instructor_id, c.price, c.rating, c.tags, c.status, c.lesson_count, c.quiz_count, c.created_at, c.updated_at,
        cat.name AS category_name, u.full_name AS instructor_name,
        COALESCE(en.enrolled_count, 0) AS enrolled_count`

const courseJoins = `FROM courses c
        LEFT JOIN categories cat ON cat.id = c.category_id
        LEFT JOIN users u ON u.id = c.instructor_id
        LEFT JOIN (SELECT course_id, COUNT(*) AS enrolled_count FROM enrollments GROUP BY course_id) en ON en.course_id = c.id`

// CourseRepository manages persistence for catalog courses.
type CourseRepository struct {
	db *sqlx.DB
}

// NewCourseRepository constructs a CourseRepository.
func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

// List returns courses matching the provided filters with a total count.
func (r *CourseRepository) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error) {
	base := courseJoins
	conditions := []string{"1=1"}
	var args []interface{}

	if filter.Status != "" {
		conditions = append(conditions, fmt.Sprintf("c.status = $%d", len(args)+1))
		args = append(args, filter.Status)
	}
	if filter.CategoryID != "" && !strings.EqualFold(filter.CategoryID, "all") {
		conditions = append(conditions, fmt.Sprintf("c.category_id = $%d", len(args)+1))
		args = append(args, filter.CategoryID)
	}
	if filter.FreeOnly {
		conditions = append(conditions, "c.price = 0")
	}
	if filter.Search != "" {
		conditions = append(conditions, fmt.Sprintf("(LOWER(c.name) LIKE $%d OR LOWER(c.description) LIKE $%d)", len(args)+1, len(args)+1))
		args = append(args, "%"+strings.ToLower(filter.Search)+"%")
	}

	base = fmt.Sprintf("%s WHERE %s", base, strings.Join(conditions, " AND "))

	orderBy := map[models.CourseSortKey]string{
		models.SortPopular:   "enrolled_count DESC",
		models.SortRating:    "c.rating DESC",
		models.SortPriceLow:  "c.price ASC",
		models.SortPriceHigh: "c.price DESC",
	}
	order, ok := orderBy[filter.SortKey]
	if !ok {
		order = "c.created_at DESC"
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

	query := fmt.Sprintf("SELECT %s %s ORDER BY %s, c.id LIMIT %d OFFSET %d", courseColumns, base, order, size, offset)

	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, args...); err != nil {
		return nil, 0, fmt.Errorf("list courses: %w", err)
	}

	countQuery := fmt.Sprintf("SELECT COUNT(*) %s", base)
	var total int
	if err := r.db.GetContext(ctx, &total, countQuery, args...); err != nil {
		return nil, 0, fmt.Errorf("count courses: %w", err)
	}
	return courses, total, nil
}

// ListByCategory returns all published courses in a category.
func (r *CourseRepository) ListByCategory(ctx context.Context, categoryID string) ([]models.CourseDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE c.category_id = $1 AND c.status = $2 ORDER BY c.name", courseColumns, courseJoins)
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, categoryID, models.CourseStatusPublished); err != nil {
		return nil, fmt.Errorf("list courses by category: %w", err)
	}
	return courses, nil
}

// FindByID fetches a course detail by ID.
func (r *CourseRepository) FindByID(ctx context.Context, id string) (*models.CourseDetail, error) {
	query := fmt.Sprintf("SELECT %s %s WHERE c.id = $1", courseColumns, courseJoins)
	var detail models.CourseDetail
	if err := r.db.GetContext(ctx, &detail, query, id); err != nil {
		return nil, err
	}
	return &detail, nil
}

// FindByIDs fetches course details for the given IDs, preserving the input
// order so relevance-ranked results stay ranked.
func (r *CourseRepository) FindByIDs(ctx context.Context, ids []string) ([]models.CourseDetail, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf("SELECT %s %s WHERE c.id = ANY($1)", courseColumns, courseJoins)
	var courses []models.CourseDetail
	if err := r.db.SelectContext(ctx, &courses, query, pq.Array(ids)); err != nil {
		return nil, fmt.Errorf("find courses by ids: %w", err)
	}

	byID := make(map[string]models.CourseDetail, len(courses))
	for _, c := range courses {
		byID[c.ID] = c
	}
	ordered := make([]models.CourseDetail, 0, len(ids))
	for _, id := range ids {
		if c, ok := byID[id]; ok {
			ordered = append(ordered, c)
		}
	}
	return ordered, nil
}

// Create inserts a new course record.
func (r *CourseRepository) Create(ctx context.Context, course *models.Course) error {
	if course.ID == "" {
		course.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if course.CreatedAt.IsZero() {
		course.CreatedAt = now
	}
	course.UpdatedAt = now
	if course.Status == "" {
		course.Status = models.CourseStatusDraft
	}
	const query = `INSERT INTO courses (id, name, description, category_id, instructor_id, price, rating, tags, status, lesson_count, quiz_count, created_at, updated_at)
        VALUES (:id, :name, :description, :category_id, :instructor_id, :price, :rating, :tags, :status, :lesson_count, :quiz_count, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("create course: %w", err)
	}
	return nil
}

// Update modifies an existing course.
func (r *CourseRepository) Update(ctx context.Context, course *models.Course) error {
	course.UpdatedAt = time.Now().UTC()
	const query = `UPDATE courses SET name = :name, description = :description, category_id = :category_id, price = :price, tags = :tags, status = :status, lesson_count = :lesson_count, quiz_count = :quiz_count, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, course); err != nil {
		return fmt.Errorf("update course: %w", err)
	}
	return nil
}

// SetStatus transitions a course between draft and published.
func (r *CourseRepository) SetStatus(ctx context.Context, id string, status models.CourseStatus) error {
	const query = `UPDATE courses SET status = $2, updated_at = $3 WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id, status, time.Now().UTC()); err != nil {
		return fmt.Errorf("set course status: %w", err)
	}
	return nil
}

// Delete removes a course.
func (r *CourseRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM courses WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete course: %w", err)
	}
	return nil
}

// CountPublished returns the number of published courses.
func (r *CourseRepository) CountPublished(ctx context.Context) (int, error) {
	const query = `SELECT COUNT(*) FROM courses WHERE status = $1`
	var total int
	if err := r.db.GetContext(ctx, &total, query, models.CourseStatusPublished); err != nil {
		if err == sql.ErrNoRows {
			return 0, nil
		}
		return 0, fmt.Errorf("count published courses: %w", err)
	}
	return total, nil
}
