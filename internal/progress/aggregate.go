// Package progress holds the aggregation arithmetic behind the learning
// analytics: completion percentages, quiz success rates and per-category
// rollups. Every ratio guards against a zero denominator and clamps into
// the 0..100 range so upstream data glitches never surface as NaN or
// out-of-range figures.
package progress

import (
	"math"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// Percent returns done/total as a whole-number percentage clamped to
// [0, 100]. A zero or negative total yields 0.
func Percent(done, total int) int {
	if total <= 0 {
		return 0
	}
	pct := int(math.Round(float64(done) / float64(total) * 100))
	return clamp(pct)
}

// PercentFloat is Percent over float inputs, for averaged figures.
func PercentFloat(done, total float64) float64 {
	if total <= 0 {
		return 0
	}
	pct := done / total * 100
	if math.IsNaN(pct) || pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

func clamp(pct int) int {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}

// CoursePercent computes a student's completion percentage for a course
// from the videos watched and quizzes passed, weighted equally per item.
func CoursePercent(videosDone, videosTotal, quizzesDone, quizzesTotal int) int {
	return Percent(videosDone+quizzesDone, videosTotal+quizzesTotal)
}

// CompletionRate returns the share of enrolled students who finished the
// course, as a clamped percentage.
func CompletionRate(completed, enrolled int) int {
	return Percent(completed, enrolled)
}

// AverageProgress averages the per-student percentages, ignoring none.
// An empty roster yields 0.
func AverageProgress(percentages []int) int {
	if len(percentages) == 0 {
		return 0
	}
	sum := 0
	for _, p := range percentages {
		sum += clamp(p)
	}
	return int(math.Round(float64(sum) / float64(len(percentages))))
}

// QuizSuccessRate returns the share of quiz attempts that passed.
func QuizSuccessRate(results []models.QuizResult) int {
	if len(results) == 0 {
		return 0
	}
	passed := 0
	for _, r := range results {
		if r.Passed {
			passed++
		}
	}
	return Percent(passed, len(results))
}

// SummarizeCourse folds a course roster into a completion summary. A
// student counts as completed at 100 percent.
func SummarizeCourse(courseID, courseName string, roster []models.StudentProgress) models.CourseCompletionSummary {
	summary := models.CourseCompletionSummary{
		CourseID:      courseID,
		CourseName:    courseName,
		EnrolledCount: len(roster),
	}
	percentages := make([]int, 0, len(roster))
	for _, s := range roster {
		percentages = append(percentages, s.Percentage)
		if s.Percentage >= 100 {
			summary.CompletedCount++
		}
	}
	summary.CompletionRate = CompletionRate(summary.CompletedCount, summary.EnrolledCount)
	summary.AverageProgress = AverageProgress(percentages)
	return summary
}

// RollupCategories totals course and enrollment counts per category and
// attaches each category's share of all enrollments. Categories with no
// enrollments get a 0 share rather than dividing by zero.
func RollupCategories(categories []models.CategorySummary) []models.CategoryRollup {
	total := 0
	for _, c := range categories {
		total += c.EnrolledCount
	}
	rollups := make([]models.CategoryRollup, 0, len(categories))
	for _, c := range categories {
		rollups = append(rollups, models.CategoryRollup{
			CategoryID:    c.ID,
			CategoryName:  c.Name,
			CourseCount:   c.CourseCount,
			EnrolledCount: c.EnrolledCount,
			EnrolledShare: Percent(c.EnrolledCount, total),
		})
	}
	return rollups
}
