package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func sampleCourses() []models.CourseDetail {
	return []models.CourseDetail{
		{
			Course: models.Course{
				Name:        "Go Fundamentals",
				Description: "Learn the basics of Go",
				Tags:        models.StringList{"programming", "backend"},
			},
			CategoryName: "Programming",
		},
		{
			Course: models.Course{
				Name:        "Watercolor Painting",
				Description: "Brush techniques for beginners",
				Tags:        models.StringList{"art"},
			},
			CategoryName: "Art",
		},
		{
			Course: models.Course{
				Name:        "Advanced Databases",
				Description: "Indexing and query planning in Postgres",
				Tags:        models.StringList{"sql", "backend"},
			},
			CategoryName: "Programming",
		},
	}
}

func TestMatches(t *testing.T) {
	courses := sampleCourses()

	tests := []struct {
		name     string
		course   models.CourseDetail
		term     string
		category string
		want     bool
	}{
		{"empty term matches all", courses[1], "", CategoryAll, true},
		{"name match is case insensitive", courses[0], "go funda", CategoryAll, true},
		{"description match", courses[2], "query planning", CategoryAll, true},
		{"tag match", courses[0], "backend", CategoryAll, true},
		{"no match", courses[1], "kubernetes", CategoryAll, false},
		{"category filter matches", courses[0], "", "programming", true},
		{"category filter rejects", courses[1], "", "programming", false},
		{"empty category matches all", courses[1], "", "", true},
		{"term and category must both match", courses[2], "painting", "programming", false},
		{"missing fields never match a term", models.CourseDetail{}, "go", CategoryAll, false},
		{"missing fields still match empty term", models.CourseDetail{}, "", CategoryAll, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Matches(tt.course, tt.term, tt.category))
		})
	}
}

func TestFilterDoesNotMutateInput(t *testing.T) {
	courses := sampleCourses()

	got := Filter(courses, "backend", CategoryAll)

	assert.Len(t, got, 2)
	assert.Len(t, courses, 3)
	assert.Equal(t, "Go Fundamentals", courses[0].Name)
}

func TestFilterIsIdempotent(t *testing.T) {
	courses := sampleCourses()

	once := Filter(courses, "backend", CategoryAll)
	twice := Filter(once, "backend", CategoryAll)

	assert.Equal(t, once, twice)
}

func TestFilterEmptyInput(t *testing.T) {
	assert.Empty(t, Filter(nil, "anything", CategoryAll))
	assert.Empty(t, Filter([]models.CourseDetail{}, "", CategoryAll))
}
