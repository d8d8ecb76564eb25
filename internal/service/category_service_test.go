package service

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type mockCategoryRepo struct {
	summaries  []models.CategorySummary
	categories map[string]models.Category
	deleted    []string
}

func (m *mockCategoryRepo) List(ctx context.Context) ([]models.CategorySummary, error) {
	return m.summaries, nil
}

func (m *mockCategoryRepo) FindByID(ctx context.Context, id string) (*models.Category, error) {
	if c, ok := m.categories[id]; ok {
		return &c, nil
	}
	return nil, sql.ErrNoRows
}

func (m *mockCategoryRepo) Create(ctx context.Context, category *models.Category) error {
	if category.ID == "" {
		category.ID = "new-category"
	}
	if m.categories == nil {
		m.categories = make(map[string]models.Category)
	}
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepo) Update(ctx context.Context, category *models.Category) error {
	m.categories[category.ID] = *category
	return nil
}

func (m *mockCategoryRepo) Delete(ctx context.Context, id string) error {
	delete(m.categories, id)
	m.deleted = append(m.deleted, id)
	return nil
}

func TestCategoryListReturnsAggregates(t *testing.T) {
	repo := &mockCategoryRepo{summaries: []models.CategorySummary{
		category("cat-1", "Programming", 3, 120),
	}}
	svc := NewCategoryService(repo, nil, nil, nil)

	categories, err := svc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, categories, 1)
	assert.Equal(t, 3, categories[0].CourseCount)
	assert.Equal(t, 120, categories[0].EnrolledCount)
}

func TestCategoryGetNotFound(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, nil, nil, nil)

	_, err := svc.Get(context.Background(), "missing")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}

func TestCategoryCreateValidatesName(t *testing.T) {
	svc := NewCategoryService(&mockCategoryRepo{}, nil, nil, nil)

	_, err := svc.Create(context.Background(), CategoryRequest{Description: "no name"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrValidation.Code, appErrors.FromError(err).Code)
}

func TestCategoryUpdateRoundTrip(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[string]models.Category{
		"cat-1": {ID: "cat-1", Name: "Programming"},
	}}
	svc := NewCategoryService(repo, nil, nil, nil)

	updated, err := svc.Update(context.Background(), "cat-1", CategoryRequest{Name: "Software", Description: "renamed"})
	require.NoError(t, err)
	assert.Equal(t, "Software", updated.Name)
	assert.Equal(t, "Software", repo.categories["cat-1"].Name)
}

func TestCategoryDeleteRemoves(t *testing.T) {
	repo := &mockCategoryRepo{categories: map[string]models.Category{
		"cat-1": {ID: "cat-1", Name: "Programming"},
	}}
	svc := NewCategoryService(repo, nil, nil, nil)

	require.NoError(t, svc.Delete(context.Background(), "cat-1"))
	assert.Equal(t, []string{"cat-1"}, repo.deleted)

	err := svc.Delete(context.Background(), "cat-1")
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrNotFound.Code, appErrors.FromError(err).Code)
}
