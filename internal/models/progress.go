package models

import (
	"database/sql/driver"
	"time"
)

// QuizResult records one quiz outcome inside a course progress record.
type QuizResult struct {
	QuizID      string     `json:"quiz_id"`
	Score       float64    `json:"score"`
	Percentage  int        `json:"percentage"`
	Passed      bool       `json:"passed"`
	Attempts    int        `json:"attempts"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// CourseProgress is a per-student, per-course aggregate of completed
// learning items and quiz outcomes.
type CourseProgress struct {
	ID                string       `db:"id" json:"id"`
	UserID            string       `db:"user_id" json:"user_id"`
	CourseID          string       `db:"course_id" json:"course_id"`
	Percentage        int          `db:"percentage" json:"percentage"`
	CompletedVideoIDs StringList   `db:"completed_video_ids" json:"completed_video_ids"`
	PassedQuizIDs     StringList   `db:"passed_quiz_ids" json:"passed_quiz_ids"`
	QuizResults       QuizResults  `db:"quiz_results" json:"quiz_results"`
	CertificateIssued bool         `db:"certificate_issued" json:"certificate_issued"`
	UpdatedAt         time.Time    `db:"updated_at" json:"updated_at"`
}

// QuizResults stores quiz outcomes as a JSON column.
type QuizResults []QuizResult

// Value marshals quiz results for persistence.
func (q QuizResults) Value() (driver.Value, error) {
	if q == nil {
		q = QuizResults{}
	}
	return jsonValue(q)
}

// Scan unmarshals quiz results from a JSON column.
func (q *QuizResults) Scan(value interface{}) error {
	return jsonScan(value, q, "QuizResults")
}

// StudentProgress pairs a student with their progress in one course.
type StudentProgress struct {
	StudentID    string    `db:"student_id" json:"student_id"`
	StudentName  string    `db:"student_name" json:"student_name"`
	StudentEmail string    `db:"student_email" json:"student_email"`
	AccountType  string    `db:"account_type" json:"account_type"`
	EnrolledAt   time.Time `db:"enrolled_at" json:"enrolled_at"`
	Percentage   int       `db:"percentage" json:"percentage"`
}
