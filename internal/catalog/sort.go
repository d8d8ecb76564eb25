package catalog

import (
	"sort"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// Compare orders two courses by the given sort key. It returns a negative
// value when a sorts before b, positive when after, zero when equal.
// Numeric fields that are absent compare as zero; an unknown key keeps the
// original order.
func Compare(a, b models.CourseDetail, key models.CourseSortKey) int {
	switch key {
	case models.SortPopular:
		return b.EnrolledCount - a.EnrolledCount
	case models.SortRating:
		return compareFloat(b.Rating, a.Rating)
	case models.SortPriceLow:
		return compareFloat(a.Price, b.Price)
	case models.SortPriceHigh:
		return compareFloat(b.Price, a.Price)
	default:
		return 0
	}
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}

// SortBy returns a new slice sorted by the given key. The sort is stable so
// ties keep their relative input order, and the source slice is not
// modified.
func SortBy(courses []models.CourseDetail, key models.CourseSortKey) []models.CourseDetail {
	sorted := make([]models.CourseDetail, len(courses))
	copy(sorted, courses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return Compare(sorted[i], sorted[j], key) < 0
	})
	return sorted
}
