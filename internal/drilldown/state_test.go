package drilldown

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func TestSelectCategoryResetsDeeperLevels(t *testing.T) {
	s := &State{}
	s.SelectCategory("cat1")
	_, err := s.SelectCourse("c1")
	require.NoError(t, err)
	_, err = s.SelectStudent("u1")
	require.NoError(t, err)

	require.Equal(t, LevelStudent, s.Depth())

	s.SelectCategory("cat2")

	assert.Equal(t, "cat2", s.CategoryID)
	assert.Empty(t, s.CourseID)
	assert.Empty(t, s.StudentID)
	assert.Nil(t, s.Roster)
	assert.Nil(t, s.Progress)
	assert.Equal(t, LevelCategory, s.Depth())
}

func TestSelectCourseRequiresCategory(t *testing.T) {
	s := &State{}

	_, err := s.SelectCourse("c1")
	assert.Error(t, err)
	assert.Equal(t, LevelRoot, s.Depth())
}

func TestSelectStudentRequiresCourse(t *testing.T) {
	s := &State{}
	s.SelectCategory("cat1")

	_, err := s.SelectStudent("u1")
	assert.Error(t, err)
	assert.Equal(t, LevelCategory, s.Depth())
}

func TestBackPopsDeepestLevel(t *testing.T) {
	s := &State{}
	s.SelectCategory("cat1")
	_, _ = s.SelectCourse("c1")
	_, _ = s.SelectStudent("u1")

	s.Back()
	assert.Equal(t, LevelCourse, s.Depth())

	s.Back()
	assert.Equal(t, LevelCategory, s.Depth())

	s.Back()
	assert.Equal(t, LevelRoot, s.Depth())

	rev := s.Revision
	s.Back() // no-op at root
	assert.Equal(t, rev, s.Revision)
}

func TestResetClearsEverything(t *testing.T) {
	s := &State{}
	s.SelectCategory("cat1")
	_, _ = s.SelectCourse("c1")

	s.Reset()

	assert.Equal(t, LevelRoot, s.Depth())
	assert.Nil(t, s.Courses)
}

func TestApplyCoursesRejectsStaleRevision(t *testing.T) {
	s := &State{}
	rev := s.SelectCategory("cat1")

	// a newer selection supersedes the in-flight load
	s.SelectCategory("cat2")

	accepted := s.ApplyCourses(rev, []models.CourseDetail{{Course: models.Course{ID: "c1"}}})

	assert.False(t, accepted)
	assert.Nil(t, s.Courses)
}

func TestApplyCoursesAcceptsCurrentRevision(t *testing.T) {
	s := &State{}
	rev := s.SelectCategory("cat1")

	accepted := s.ApplyCourses(rev, []models.CourseDetail{{Course: models.Course{ID: "c1"}}})

	assert.True(t, accepted)
	require.Len(t, s.Courses, 1)
	assert.Equal(t, "c1", s.Courses[0].ID)
}

func TestApplyRosterAndProgressGuard(t *testing.T) {
	s := &State{}
	s.SelectCategory("cat1")
	rev, err := s.SelectCourse("c1")
	require.NoError(t, err)

	assert.True(t, s.ApplyRoster(rev, []models.StudentProgress{{StudentID: "u1"}}))

	staleRev := rev
	rev, err = s.SelectStudent("u1")
	require.NoError(t, err)

	assert.False(t, s.ApplyProgress(staleRev, &models.CourseProgress{}))
	assert.True(t, s.ApplyProgress(rev, &models.CourseProgress{Percentage: 40}))
	assert.Equal(t, 40, s.Progress.Percentage)
}
