package repository

import (
	"context"
	"regexp"
	"testing"
	"time"

	sqlmock "github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func newCourseRepoMock(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock, func()) {
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	return sqlx.NewDb(db, "sqlmock"), mock, func() { db.Close() }
}

func courseRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{
		"id", "name", "description", "category_id", "instructor_id", "price", "rating", "tags",
		"status", "lesson_count", "quiz_count", "created_at", "updated_at",
		"category_name", "instructor_name", "enrolled_count",
	})
}

func TestCourseRepositoryListFiltersAndCounts(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	rows := courseRows().
		AddRow("course-1", "Go Fundamentals", "intro", "cat-1", "inst-1", 0.0, 4.5, []byte(`["backend"]`),
			models.CourseStatusPublished, 10, 2, time.Now(), time.Now(), "Programming", "Rob", 12)
	mock.ExpectQuery("SELECT c.id, c.name").
		WithArgs(models.CourseStatusPublished, "cat-1").
		WillReturnRows(rows)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs(models.CourseStatusPublished, "cat-1").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))

	courses, total, err := repo.List(context.Background(), models.CourseFilter{
		Status:     models.CourseStatusPublished,
		CategoryID: "cat-1",
		SortKey:    models.SortPopular,
	})
	require.NoError(t, err)
	require.Equal(t, 1, total)
	require.Len(t, courses, 1)
	require.Equal(t, "Programming", courses[0].CategoryName)
	require.Equal(t, 12, courses[0].EnrolledCount)
	require.Equal(t, models.StringList{"backend"}, courses[0].Tags)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDsPreservesOrder(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	// rows come back in storage order, not request order
	rows := courseRows().
		AddRow("course-1", "A", "", "cat-1", "inst-1", 0.0, 0.0, []byte(`[]`),
			models.CourseStatusPublished, 0, 0, time.Now(), time.Now(), "Programming", "Rob", 0).
		AddRow("course-2", "B", "", "cat-1", "inst-1", 0.0, 0.0, []byte(`[]`),
			models.CourseStatusPublished, 0, 0, time.Now(), time.Now(), "Programming", "Rob", 0)
	mock.ExpectQuery("SELECT c.id, c.name").
		WillReturnRows(rows)

	courses, err := repo.FindByIDs(context.Background(), []string{"course-2", "course-1", "course-9"})
	require.NoError(t, err)
	require.Len(t, courses, 2)
	require.Equal(t, "course-2", courses[0].ID)
	require.Equal(t, "course-1", courses[1].ID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestCourseRepositoryFindByIDsEmptyInput(t *testing.T) {
	db, _, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	courses, err := repo.FindByIDs(context.Background(), nil)
	require.NoError(t, err)
	require.Nil(t, courses)
}

func TestCourseRepositoryCreateDefaultsToDraft(t *testing.T) {
	db, mock, cleanup := newCourseRepoMock(t)
	defer cleanup()
	repo := NewCourseRepository(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO courses")).
		WillReturnResult(sqlmock.NewResult(0, 1))

	course := &models.Course{Name: "New Course", CategoryID: "cat-1", InstructorID: "inst-1"}
	err := repo.Create(context.Background(), course)
	require.NoError(t, err)
	require.Equal(t, models.CourseStatusDraft, course.Status)
	require.NotEmpty(t, course.ID)
	require.NoError(t, mock.ExpectationsWereMet())
}
