package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func TestSortByPopular(t *testing.T) {
	courses := []models.CourseDetail{
		{Course: models.Course{Name: "a"}, EnrolledCount: 2},
		{Course: models.Course{Name: "b"}, EnrolledCount: 1},
		{Course: models.Course{Name: "c"}, EnrolledCount: 0},
	}

	got := SortBy(courses, models.SortPopular)

	assert.Equal(t, "a", got[0].Name)
	assert.Equal(t, "b", got[1].Name)
	assert.Equal(t, "c", got[2].Name)
	// input untouched
	assert.Equal(t, "a", courses[0].Name)
}

func TestSortByRatingMissingTreatedAsZero(t *testing.T) {
	courses := []models.CourseDetail{
		{Course: models.Course{Name: "unrated"}},
		{Course: models.Course{Name: "top", Rating: 4.8}},
		{Course: models.Course{Name: "mid", Rating: 3.1}},
	}

	got := SortBy(courses, models.SortRating)

	assert.Equal(t, []string{"top", "mid", "unrated"}, names(got))
}

func TestSortByPrice(t *testing.T) {
	courses := []models.CourseDetail{
		{Course: models.Course{Name: "mid", Price: 49}},
		{Course: models.Course{Name: "free"}},
		{Course: models.Course{Name: "pro", Price: 199}},
	}

	low := SortBy(courses, models.SortPriceLow)
	assert.Equal(t, []string{"free", "mid", "pro"}, names(low))

	high := SortBy(courses, models.SortPriceHigh)
	assert.Equal(t, []string{"pro", "mid", "free"}, names(high))
}

func TestSortByUnknownKeyKeepsOrder(t *testing.T) {
	courses := []models.CourseDetail{
		{Course: models.Course{Name: "first"}},
		{Course: models.Course{Name: "second"}},
	}

	got := SortBy(courses, models.CourseSortKey("bogus"))

	assert.Equal(t, []string{"first", "second"}, names(got))
}

func TestSortIsStableOnTies(t *testing.T) {
	courses := []models.CourseDetail{
		{Course: models.Course{Name: "x", Rating: 4}, EnrolledCount: 5},
		{Course: models.Course{Name: "y", Rating: 4}, EnrolledCount: 5},
		{Course: models.Course{Name: "z", Rating: 4}, EnrolledCount: 5},
	}

	got := SortBy(courses, models.SortPopular)

	assert.Equal(t, []string{"x", "y", "z"}, names(got))
}

func names(courses []models.CourseDetail) []string {
	out := make([]string, len(courses))
	for i, c := range courses {
		out[i] = c.Name
	}
	return out
}
