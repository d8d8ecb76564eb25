package service

import (
	"context"
	"database/sql"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/Harish222600/LMS-SELL-sub001/internal/drilldown"
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	"github.com/Harish222600/LMS-SELL-sub001/pkg/config"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

type drilldownCategoryRepository interface {
	List(ctx context.Context) ([]models.CategorySummary, error)
}

type drilldownCourseRepository interface {
	ListByCategory(ctx context.Context, categoryID string) ([]models.CourseDetail, error)
}

type drilldownEnrollmentRepository interface {
	Roster(ctx context.Context, courseID string) ([]models.StudentProgress, error)
}

type drilldownProgressRepository interface {
	Find(ctx context.Context, userID, courseID string) (*models.CourseProgress, error)
}

// DrilldownView is the state of one admin's browse session as returned to
// the client after any navigation call.
type DrilldownView struct {
	Level      drilldown.Level          `json:"level"`
	Revision   uint64                   `json:"revision"`
	CategoryID string                   `json:"category_id,omitempty"`
	CourseID   string                   `json:"course_id,omitempty"`
	StudentID  string                   `json:"student_id,omitempty"`
	Categories []models.CategorySummary `json:"categories,omitempty"`
	Courses    []models.CourseDetail    `json:"courses,omitempty"`
	Roster     []models.StudentProgress `json:"roster,omitempty"`
	Progress   *models.CourseProgress   `json:"progress,omitempty"`
}

// DrilldownService drives the admin category > course > student browser.
// Navigation mutates the per-admin session first, then loads the data for
// the new position; loads carry the revision captured at selection time so
// a slower fetch cannot overwrite a newer selection.
type DrilldownService struct {
	store       *drilldown.Store
	categories  drilldownCategoryRepository
	courses     drilldownCourseRepository
	enrollments drilldownEnrollmentRepository
	progress    drilldownProgressRepository
	cfg         config.DrilldownConfig
	logger      *zap.Logger
}

// NewDrilldownService constructs a DrilldownService.
func NewDrilldownService(
	store *drilldown.Store,
	categories drilldownCategoryRepository,
	courses drilldownCourseRepository,
	enrollments drilldownEnrollmentRepository,
	progress drilldownProgressRepository,
	cfg config.DrilldownConfig,
	logger *zap.Logger,
) *DrilldownService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &DrilldownService{
		store:       store,
		categories:  categories,
		courses:     courses,
		enrollments: enrollments,
		progress:    progress,
		cfg:         cfg,
		logger:      logger,
	}
}

// View returns the admin's current position, with the category list for the
// root level fetched fresh on every call.
func (s *DrilldownService) View(ctx context.Context, userID string) (*DrilldownView, error) {
	var snapshot drilldown.State
	_ = s.store.Update(userID, func(state *drilldown.State) error {
		snapshot = *state
		return nil
	})
	return s.render(ctx, &snapshot)
}

// SelectCategory moves the session to a category and loads its courses.
func (s *DrilldownService) SelectCategory(ctx context.Context, userID, categoryID string) (*DrilldownView, error) {
	if categoryID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "category id is required")
	}
	var revision uint64
	if err := s.store.Update(userID, func(state *drilldown.State) error {
		revision = state.SelectCategory(categoryID)
		return nil
	}); err != nil {
		return nil, err
	}

	courses, err := s.courses.ListByCategory(ctx, categoryID)
	if err != nil {
		return nil, appErrors.Wrap(err, "DRILLDOWN_LOAD_FAILED", http.StatusInternalServerError, "failed to load category courses")
	}
	s.apply(userID, func(state *drilldown.State) bool {
		return state.ApplyCourses(revision, courses)
	})
	return s.View(ctx, userID)
}

// SelectCourse moves the session to a course within the current category and
// loads its enrolled-student roster.
func (s *DrilldownService) SelectCourse(ctx context.Context, userID, courseID string) (*DrilldownView, error) {
	if courseID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "course id is required")
	}
	var revision uint64
	if err := s.store.Update(userID, func(state *drilldown.State) error {
		rev, err := state.SelectCourse(courseID)
		revision = rev
		return err
	}); err != nil {
		return nil, err
	}

	roster, err := s.enrollments.Roster(ctx, courseID)
	if err != nil {
		return nil, appErrors.Wrap(err, "DRILLDOWN_LOAD_FAILED", http.StatusInternalServerError, "failed to load course roster")
	}
	s.apply(userID, func(state *drilldown.State) bool {
		return state.ApplyRoster(revision, roster)
	})
	return s.View(ctx, userID)
}

// SelectStudent moves the session to a student within the current course and
// loads that student's progress record.
func (s *DrilldownService) SelectStudent(ctx context.Context, userID, studentID string) (*DrilldownView, error) {
	if studentID == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "student id is required")
	}
	var (
		revision uint64
		courseID string
	)
	if err := s.store.Update(userID, func(state *drilldown.State) error {
		rev, err := state.SelectStudent(studentID)
		revision = rev
		courseID = state.CourseID
		return err
	}); err != nil {
		return nil, err
	}

	record, err := s.progress.Find(ctx, studentID, courseID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			record = &models.CourseProgress{UserID: studentID, CourseID: courseID}
		} else {
			return nil, appErrors.Wrap(err, "DRILLDOWN_LOAD_FAILED", http.StatusInternalServerError, "failed to load student progress")
		}
	}
	s.apply(userID, func(state *drilldown.State) bool {
		return state.ApplyProgress(revision, record)
	})
	return s.View(ctx, userID)
}

// Back pops the deepest selection. At the root it is a no-op.
func (s *DrilldownService) Back(ctx context.Context, userID string) (*DrilldownView, error) {
	if err := s.store.Update(userID, func(state *drilldown.State) error {
		state.Back()
		return nil
	}); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

// Reset returns the session to the root level.
func (s *DrilldownService) Reset(ctx context.Context, userID string) (*DrilldownView, error) {
	if err := s.store.Update(userID, func(state *drilldown.State) error {
		state.Reset()
		return nil
	}); err != nil {
		return nil, err
	}
	return s.View(ctx, userID)
}

func (s *DrilldownService) apply(userID string, fn func(*drilldown.State) bool) {
	_ = s.store.Update(userID, func(state *drilldown.State) error {
		if !fn(state) {
			s.logger.Debug("discarded stale drilldown load", zap.String("user_id", userID))
		}
		return nil
	})
}

func (s *DrilldownService) render(ctx context.Context, state *drilldown.State) (*DrilldownView, error) {
	view := &DrilldownView{
		Level:      state.Depth(),
		Revision:   state.Revision,
		CategoryID: state.CategoryID,
		CourseID:   state.CourseID,
		StudentID:  state.StudentID,
		Courses:    state.Courses,
		Roster:     state.Roster,
		Progress:   state.Progress,
	}
	if view.Level == drilldown.LevelRoot {
		categories, err := s.categories.List(ctx)
		if err != nil {
			return nil, appErrors.Wrap(err, "DRILLDOWN_LOAD_FAILED", http.StatusInternalServerError, "failed to load categories")
		}
		view.Categories = categories
	}
	return view, nil
}
