package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// CategoryRepository manages persistence for course categories.
type CategoryRepository struct {
	db *sqlx.DB
}

// NewCategoryRepository constructs a CategoryRepository.
func NewCategoryRepository(db *sqlx.DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// List returns all categories with course and enrollment counts.
func (r *CategoryRepository) List(ctx context.Context) ([]models.CategorySummary, error) {
	const query = `SELECT cat.id, cat.name, cat.description, cat.created_at, cat.updated_at,
        COALESCE(co.course_count, 0) AS course_count,
        COALESCE(en.enrolled_count, 0) AS enrolled_count
        FROM categories cat
        LEFT JOIN (SELECT category_id, COUNT(*) AS course_count FROM courses WHERE status = 'PUBLISHED' GROUP BY category_id) co ON co.category_id = cat.id
        LEFT JOIN (SELECT c.category_id, COUNT(*) AS enrolled_count FROM enrollments e JOIN courses c ON c.id = e.course_id GROUP BY c.category_id) en ON en.category_id = cat.id
        ORDER BY cat.name`
	var categories []models.CategorySummary
	if err := r.db.SelectContext(ctx, &categories, query); err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

// FindByID fetches a category by ID.
func (r *CategoryRepository) FindByID(ctx context.Context, id string) (*models.Category, error) {
	const query = `SELECT id, name, description, created_at, updated_at FROM categories WHERE id = $1 LIMIT 1`
	var category models.Category
	if err := r.db.GetContext(ctx, &category, query, id); err != nil {
		return nil, err
	}
	return &category, nil
}

// Create inserts a new category.
func (r *CategoryRepository) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if category.CreatedAt.IsZero() {
		category.CreatedAt = now
	}
	category.UpdatedAt = now
	const query = `INSERT INTO categories (id, name, description, created_at, updated_at) VALUES (:id, :name, :description, :created_at, :updated_at)`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("create category: %w", err)
	}
	return nil
}

// Update modifies an existing category.
func (r *CategoryRepository) Update(ctx context.Context, category *models.Category) error {
	category.UpdatedAt = time.Now().UTC()
	const query = `UPDATE categories SET name = :name, description = :description, updated_at = :updated_at WHERE id = :id`
	if _, err := r.db.NamedExecContext(ctx, query, category); err != nil {
		return fmt.Errorf("update category: %w", err)
	}
	return nil
}

// Delete removes a category. Courses keep their rows; the foreign key is
// nulled by the schema.
func (r *CategoryRepository) Delete(ctx context.Context, id string) error {
	const query = `DELETE FROM categories WHERE id = $1`
	if _, err := r.db.ExecContext(ctx, query, id); err != nil {
		return fmt.Errorf("delete category: %w", err)
	}
	return nil
}
