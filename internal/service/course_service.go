package service

import (
	"context"
	"database/sql"
	"errors"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/catalog"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type courseRepository interface {
	List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, int, error)
	ListByCategory(ctx context.Context, categoryID string) ([]models.CourseDetail, error)
	FindByID(ctx context.Context, id string) (*models.CourseDetail, error)
	FindByIDs(ctx context.Context, ids []string) ([]models.CourseDetail, error)
	Create(ctx context.Context, course *models.Course) error
	Update(ctx context.Context, course *models.Course) error
	SetStatus(ctx context.Context, id string, status models.CourseStatus) error
	Delete(ctx context.Context, id string) error
}

type courseSearchIndex interface {
	Index(ctx context.Context, course models.Course) error
	Update(ctx context.Context, course models.Course) error
	Delete(ctx context.Context, courseID string) error
	Search(ctx context.Context, query, categoryID string, size int) ([]string, error)
}

// CourseService implements the catalog use cases: listing with search,
// category and sort, plus admin CRUD that keeps the search index and
// cache in step with Postgres.
type CourseService struct {
	repo      courseRepository
	index     courseSearchIndex
	cache     *CacheService
	validator *validator.Validate
	logger    *zap.Logger
}

// NewCourseService constructs a CourseService. The search index is
// optional; without it search falls back to SQL LIKE matching.
func NewCourseService(repo courseRepository, index courseSearchIndex, cache *CacheService, validate *validator.Validate, logger *zap.Logger) *CourseService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if validate == nil {
		validate = validator.New()
	}
	return &CourseService{repo: repo, index: index, cache: cache, validator: validate, logger: logger}
}

// maximum candidates pulled from the search index before paging
const searchCandidateLimit = 200

// List returns the catalog page for the filter. When a search term is
// present and the index is available, relevance ranking comes from
// Elasticsearch and the in-memory predicates narrow and order the rest;
// otherwise the SQL path handles everything.
func (s *CourseService) List(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, models.Pagination, error) {
	if filter.Page < 1 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 || filter.PageSize > 100 {
		filter.PageSize = 20
	}

	if filter.Search != "" && s.index != nil {
		return s.listViaIndex(ctx, filter)
	}

	courses, total, err := s.repo.List(ctx, filter)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
	}
	return courses, buildPagination(filter.Page, filter.PageSize, total), nil
}

func (s *CourseService) listViaIndex(ctx context.Context, filter models.CourseFilter) ([]models.CourseDetail, models.Pagination, error) {
	ids, err := s.index.Search(ctx, filter.Search, filter.CategoryID, searchCandidateLimit)
	if err != nil {
		// the index is an accelerator, not the source of truth
		s.logger.Warn("search index unavailable, falling back to sql", zap.Error(err))
		courses, total, sqlErr := s.repo.List(ctx, filter)
		if sqlErr != nil {
			return nil, models.Pagination{}, appErrors.Wrap(sqlErr, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list courses")
		}
		return courses, buildPagination(filter.Page, filter.PageSize, total), nil
	}

	candidates, err := s.repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, models.Pagination{}, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to resolve search results")
	}

	// Index hits can be stale relative to Postgres, so re-run the text
	// predicate over the loaded rows before the remaining narrowing.
	matched := make([]models.CourseDetail, 0, len(candidates))
	for _, c := range catalog.Filter(candidates, filter.Search, catalog.CategoryAll) {
		if filter.CategoryID != "" && c.CategoryID != filter.CategoryID {
			continue
		}
		if filter.Status != "" && c.Status != filter.Status {
			continue
		}
		if filter.FreeOnly && c.Price != 0 {
			continue
		}
		matched = append(matched, c)
	}
	if filter.SortKey != "" {
		matched = catalog.SortBy(matched, filter.SortKey)
	}

	pager := catalog.NewPager(len(matched), filter.PageSize).Goto(filter.Page)
	page := catalog.Paginate(matched, pager)
	return page, buildPagination(pager.Page, filter.PageSize, len(matched)), nil
}

// ListByCategory returns all published courses in a category, for the
// drill-down browser.
func (s *CourseService) ListByCategory(ctx context.Context, categoryID string) ([]models.CourseDetail, error) {
	courses, err := s.repo.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to list category courses")
	}
	return courses, nil
}

// Get returns one course with its category and enrollment context.
func (s *CourseService) Get(ctx context.Context, id string) (*models.CourseDetail, error) {
	course, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, appErrors.Clone(appErrors.ErrNotFound, "course not found")
		}
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load course")
	}
	return course, nil
}

// CreateCourseRequest carries the admin payload for a new course.
type CreateCourseRequest struct {
	Name         string   `json:"name" validate:"required"`
	Description  string   `json:"description"`
	CategoryID   string   `json:"category_id" validate:"required"`
	InstructorID string   `json:"instructor_id" validate:"required"`
	Price        float64  `json:"price" validate:"gte=0"`
	Tags         []string `json:"tags"`
	LessonCount  int      `json:"lesson_count" validate:"gte=0"`
	QuizCount    int      `json:"quiz_count" validate:"gte=0"`
}

// Create stores a new draft course and indexes it for search.
func (s *CourseService) Create(ctx context.Context, req CreateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	course := &models.Course{
		Name:         req.Name,
		Description:  req.Description,
		CategoryID:   req.CategoryID,
		InstructorID: req.InstructorID,
		Price:        req.Price,
		Tags:         models.StringList(req.Tags),
		LessonCount:  req.LessonCount,
		QuizCount:    req.QuizCount,
	}
	if err := s.repo.Create(ctx, course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to create course")
	}

	s.reindex(ctx, *course, false)
	s.invalidateCatalog(ctx)
	return course, nil
}

// UpdateCourseRequest carries mutable course fields.
type UpdateCourseRequest struct {
	Name        string   `json:"name" validate:"required"`
	Description string   `json:"description"`
	CategoryID  string   `json:"category_id" validate:"required"`
	Price       float64  `json:"price" validate:"gte=0"`
	Tags        []string `json:"tags"`
	LessonCount int      `json:"lesson_count" validate:"gte=0"`
	QuizCount   int      `json:"quiz_count" validate:"gte=0"`
}

// Update modifies an existing course and refreshes the search index.
func (s *CourseService) Update(ctx context.Context, id string, req UpdateCourseRequest) (*models.Course, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid course payload")
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	course := existing.Course
	course.Name = req.Name
	course.Description = req.Description
	course.CategoryID = req.CategoryID
	course.Price = req.Price
	course.Tags = models.StringList(req.Tags)
	course.LessonCount = req.LessonCount
	course.QuizCount = req.QuizCount

	if err := s.repo.Update(ctx, &course); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to update course")
	}

	s.reindex(ctx, course, true)
	s.invalidateCatalog(ctx)
	return &course, nil
}

// Publish transitions a course to the published state.
func (s *CourseService) Publish(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.SetStatus(ctx, id, models.CourseStatusPublished); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to publish course")
	}
	s.invalidateCatalog(ctx)
	return nil
}

// Delete removes a course and its search document.
func (s *CourseService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to delete course")
	}
	if s.index != nil {
		if err := s.index.Delete(ctx, id); err != nil {
			s.logger.Warn("failed to remove course from search index", zap.String("course_id", id), zap.Error(err))
		}
	}
	s.invalidateCatalog(ctx)
	return nil
}

func (s *CourseService) reindex(ctx context.Context, course models.Course, update bool) {
	if s.index == nil {
		return
	}
	var err error
	if update {
		err = s.index.Update(ctx, course)
	} else {
		err = s.index.Index(ctx, course)
	}
	if err != nil {
		s.logger.Warn("failed to index course", zap.String("course_id", course.ID), zap.Error(err))
	}
}

func (s *CourseService) invalidateCatalog(ctx context.Context) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, "catalog:*"); err != nil {
		s.logger.Warn("failed to invalidate catalog cache", zap.Error(err))
	}
	if err := s.cache.Invalidate(ctx, "analytics:*"); err != nil {
		s.logger.Warn("failed to invalidate analytics cache", zap.Error(err))
	}
}

func buildPagination(page, pageSize, total int) models.Pagination {
	return models.Pagination{
		Page:       page,
		PageSize:   pageSize,
		TotalCount: total,
		TotalPages: catalog.PageCount(total, pageSize),
	}
}
