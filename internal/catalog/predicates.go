// Package catalog implements the pure list-shaping logic shared by the
// course and job listing surfaces: search/category predicates, sort
// comparators and in-memory pagination. All functions derive new slices
// and never mutate their inputs.
package catalog

import (
	"strings"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// CategoryAll matches every category.
const CategoryAll = "all"

// Matches reports whether the course satisfies both the free-text search
// term and the active category. An empty term matches everything; the
// category "all" (or empty) matches everything. Missing fields never match
// the term but never cause a failure.
func Matches(course models.CourseDetail, searchTerm, activeCategory string) bool {
	return matchesText(course, searchTerm) && matchesCategory(course, activeCategory)
}

func matchesText(course models.CourseDetail, term string) bool {
	term = strings.ToLower(strings.TrimSpace(term))
	if term == "" {
		return true
	}
	if strings.Contains(strings.ToLower(course.Name), term) {
		return true
	}
	if strings.Contains(strings.ToLower(course.Description), term) {
		return true
	}
	for _, tag := range course.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

func matchesCategory(course models.CourseDetail, active string) bool {
	active = strings.ToLower(strings.TrimSpace(active))
	if active == "" || active == CategoryAll {
		return true
	}
	name := strings.ToLower(course.CategoryName)
	if name == active {
		return true
	}
	return name != "" && strings.Contains(name, active)
}

// Filter returns the courses matching the term and category. The result is
// always a fresh slice; the source is left untouched. Filtering is
// idempotent: applying the same term twice yields the same result.
func Filter(courses []models.CourseDetail, searchTerm, activeCategory string) []models.CourseDetail {
	filtered := make([]models.CourseDetail, 0, len(courses))
	for _, course := range courses {
		if Matches(course, searchTerm, activeCategory) {
			filtered = append(filtered, course)
		}
	}
	return filtered
}
