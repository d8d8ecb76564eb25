package models

import "time"

// Category groups courses in the catalog.
type Category struct {
	ID          string    `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// CategorySummary enriches Category with rollup counts for listings.
type CategorySummary struct {
	Category
	CourseCount   int `db:"course_count" json:"course_count"`
	EnrolledCount int `db:"enrolled_count" json:"enrolled_count"`
}
