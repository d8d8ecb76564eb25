package progress

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func TestPercent(t *testing.T) {
	tests := []struct {
		name  string
		done  int
		total int
		want  int
	}{
		{"zero total yields zero", 5, 0, 0},
		{"negative total yields zero", 5, -1, 0},
		{"half", 1, 2, 50},
		{"rounds to nearest", 1, 3, 33},
		{"rounds up", 2, 3, 67},
		{"complete", 7, 7, 100},
		{"overshoot clamps to 100", 12, 10, 100},
		{"negative done clamps to zero", -3, 10, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Percent(tt.done, tt.total))
		})
	}
}

func TestPercentFloat(t *testing.T) {
	assert.Equal(t, 0.0, PercentFloat(3, 0))
	assert.Equal(t, 100.0, PercentFloat(8, 4))
	assert.InDelta(t, 62.5, PercentFloat(5, 8), 0.001)
}

func TestCoursePercent(t *testing.T) {
	// 3 of 4 videos plus 1 of 2 quizzes -> 4 of 6 items
	assert.Equal(t, 67, CoursePercent(3, 4, 1, 2))
	// course with no content is simply 0, not an error
	assert.Equal(t, 0, CoursePercent(0, 0, 0, 0))
}

func TestAverageProgress(t *testing.T) {
	assert.Equal(t, 0, AverageProgress(nil))
	assert.Equal(t, 50, AverageProgress([]int{0, 100}))
	assert.Equal(t, 60, AverageProgress([]int{40, 60, 80}))
	// dirty input is clamped before averaging
	assert.Equal(t, 50, AverageProgress([]int{-20, 150, 100, 0}))
}

func TestQuizSuccessRate(t *testing.T) {
	assert.Equal(t, 0, QuizSuccessRate(nil))

	results := []models.QuizResult{
		{QuizID: "q1", Passed: true},
		{QuizID: "q2", Passed: false},
		{QuizID: "q3", Passed: true},
		{QuizID: "q4", Passed: true},
	}
	assert.Equal(t, 75, QuizSuccessRate(results))
}

func TestSummarizeCourse(t *testing.T) {
	roster := []models.StudentProgress{
		{StudentID: "s1", Percentage: 100},
		{StudentID: "s2", Percentage: 100},
		{StudentID: "s3", Percentage: 40},
		{StudentID: "s4", Percentage: 0},
	}

	got := SummarizeCourse("c1", "Go Fundamentals", roster)

	assert.Equal(t, "c1", got.CourseID)
	assert.Equal(t, 4, got.EnrolledCount)
	assert.Equal(t, 2, got.CompletedCount)
	assert.Equal(t, 50, got.CompletionRate)
	assert.Equal(t, 60, got.AverageProgress)
}

func TestSummarizeCourseEmptyRoster(t *testing.T) {
	got := SummarizeCourse("c1", "empty", nil)

	assert.Equal(t, 0, got.EnrolledCount)
	assert.Equal(t, 0, got.CompletionRate)
	assert.Equal(t, 0, got.AverageProgress)
}

func TestRollupCategories(t *testing.T) {
	categories := []models.CategorySummary{
		{Category: models.Category{ID: "cat1", Name: "Programming"}, CourseCount: 3, EnrolledCount: 30},
		{Category: models.Category{ID: "cat2", Name: "Art"}, CourseCount: 1, EnrolledCount: 10},
	}

	got := RollupCategories(categories)

	assert.Len(t, got, 2)
	assert.Equal(t, 75, got[0].EnrolledShare)
	assert.Equal(t, 25, got[1].EnrolledShare)
}

func TestRollupCategoriesNoEnrollments(t *testing.T) {
	categories := []models.CategorySummary{
		{Category: models.Category{ID: "cat1", Name: "Programming"}, CourseCount: 2},
	}

	got := RollupCategories(categories)

	assert.Equal(t, 0, got[0].EnrolledShare)
}
