package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// CourseStatus captures the publication lifecycle of a course.
type CourseStatus string

const (
	CourseStatusDraft     CourseStatus = "DRAFT"
	CourseStatusPublished CourseStatus = "PUBLISHED"
)

// StringList stores a JSON array of strings in a single column.
type StringList []string

// Value marshals the list to JSON for persistence.
func (l StringList) Value() (driver.Value, error) {
	if l == nil {
		l = StringList{}
	}
	data, err := json.Marshal(l)
	if err != nil {
		return nil, fmt.Errorf("marshal string list: %w", err)
	}
	return data, nil
}

// Scan unmarshals JSON payloads into the list.
func (l *StringList) Scan(value interface{}) error {
	if value == nil {
		*l = StringList{}
		return nil
	}
	var data []byte
	switch v := value.(type) {
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for StringList", value)
	}
	if len(data) == 0 {
		*l = StringList{}
		return nil
	}
	if err := json.Unmarshal(data, l); err != nil {
		return fmt.Errorf("unmarshal string list: %w", err)
	}
	return nil
}

// Course represents a published or draft course in the catalog.
type Course struct {
	ID           string       `db:"id" json:"id"`
	Name         string       `db:"name" json:"name"`
	Description  string       `db:"description" json:"description"`
	CategoryID   string       `db:"category_id" json:"category_id"`
	InstructorID string       `db:"instructor_id" json:"instructor_id"`
	Price        float64      `db:"price" json:"price"`
	Rating       float64      `db:"rating" json:"rating"`
	Tags         StringList   `db:"tags" json:"tags"`
	Status       CourseStatus `db:"status" json:"status"`
	LessonCount  int          `db:"lesson_count" json:"lesson_count"`
	QuizCount    int          `db:"quiz_count" json:"quiz_count"`
	CreatedAt    time.Time    `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time    `db:"updated_at" json:"updated_at"`
}

// CourseDetail enriches Course with category and enrollment context.
type CourseDetail struct {
	Course
	CategoryName   string `db:"category_name" json:"category_name"`
	InstructorName string `db:"instructor_name" json:"instructor_name"`
	EnrolledCount  int    `db:"enrolled_count" json:"enrolled_count"`
}

// CourseSortKey enumerates the catalog sort orders.
type CourseSortKey string

const (
	SortPopular   CourseSortKey = "popular"
	SortRating    CourseSortKey = "rating"
	SortPriceLow  CourseSortKey = "price-low"
	SortPriceHigh CourseSortKey = "price-high"
)

// CourseFilter encapsulates allowed search parameters for listing courses.
type CourseFilter struct {
	Search     string
	CategoryID string
	FreeOnly   bool
	Status     CourseStatus
	SortKey    CourseSortKey
	Page       int
	PageSize   int
}
