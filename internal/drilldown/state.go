// Package drilldown manages the admin's hierarchical browsing state over
// categories, courses and students. A session holds at most one selection
// per level; picking a category clears everything beneath it, and each
// deeper level requires its parent. Loads are guarded by a revision
// counter so a slow response for an abandoned selection can never
// overwrite a newer one.
package drilldown

import (
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
	appErrors "github.com/Harish222600/LMS-SELL-sub001/pkg/errors"
)

// Level identifies the depth of the current selection.
type Level string

const (
	LevelRoot     Level = "root"
	LevelCategory Level = "category"
	LevelCourse   Level = "course"
	LevelStudent  Level = "student"
)

// State is one admin's position in the hierarchy. Revision increments on
// every selection change; data loaded for an older revision is discarded.
type State struct {
	CategoryID string `json:"category_id,omitempty"`
	CourseID   string `json:"course_id,omitempty"`
	StudentID  string `json:"student_id,omitempty"`
	Revision   uint64 `json:"revision"`

	Courses  []models.CourseDetail    `json:"courses,omitempty"`
	Roster   []models.StudentProgress `json:"roster,omitempty"`
	Progress *models.CourseProgress   `json:"progress,omitempty"`
}

// Depth returns the deepest level with a selection.
func (s *State) Depth() Level {
	switch {
	case s.StudentID != "":
		return LevelStudent
	case s.CourseID != "":
		return LevelCourse
	case s.CategoryID != "":
		return LevelCategory
	default:
		return LevelRoot
	}
}

// SelectCategory picks a category and discards any course or student
// selection beneath it, along with their loaded data.
func (s *State) SelectCategory(categoryID string) uint64 {
	s.CategoryID = categoryID
	s.CourseID = ""
	s.StudentID = ""
	s.Courses = nil
	s.Roster = nil
	s.Progress = nil
	s.Revision++
	return s.Revision
}

// SelectCourse picks a course within the current category. It fails when
// no category is selected.
func (s *State) SelectCourse(courseID string) (uint64, error) {
	if s.CategoryID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "select a category before a course")
	}
	s.CourseID = courseID
	s.StudentID = ""
	s.Roster = nil
	s.Progress = nil
	s.Revision++
	return s.Revision, nil
}

// SelectStudent picks a student within the current course. It fails when
// no course is selected.
func (s *State) SelectStudent(studentID string) (uint64, error) {
	if s.CourseID == "" {
		return 0, appErrors.Clone(appErrors.ErrValidation, "select a course before a student")
	}
	s.StudentID = studentID
	s.Progress = nil
	s.Revision++
	return s.Revision, nil
}

// Back clears the deepest selection. At the root it is a no-op and the
// revision does not move.
func (s *State) Back() uint64 {
	switch s.Depth() {
	case LevelStudent:
		s.StudentID = ""
		s.Progress = nil
	case LevelCourse:
		s.CourseID = ""
		s.Roster = nil
	case LevelCategory:
		s.CategoryID = ""
		s.Courses = nil
	default:
		return s.Revision
	}
	s.Revision++
	return s.Revision
}

// Reset clears the whole selection.
func (s *State) Reset() uint64 {
	s.CategoryID = ""
	s.CourseID = ""
	s.StudentID = ""
	s.Courses = nil
	s.Roster = nil
	s.Progress = nil
	s.Revision++
	return s.Revision
}

// ApplyCourses attaches a loaded course list if the state still sits at
// the revision the load was issued for. It reports whether the data was
// accepted.
func (s *State) ApplyCourses(revision uint64, courses []models.CourseDetail) bool {
	if revision != s.Revision {
		return false
	}
	s.Courses = courses
	return true
}

// ApplyRoster attaches a loaded student roster under the same guard.
func (s *State) ApplyRoster(revision uint64, roster []models.StudentProgress) bool {
	if revision != s.Revision {
		return false
	}
	s.Roster = roster
	return true
}

// ApplyProgress attaches one student's progress under the same guard.
func (s *State) ApplyProgress(revision uint64, progress *models.CourseProgress) bool {
	if revision != s.Revision {
		return false
	}
	s.Progress = progress
	return true
}
