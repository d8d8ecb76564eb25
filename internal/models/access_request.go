package models

import "time"

// AccessRequestStatus represents the lifecycle of a course access request.
type AccessRequestStatus string

// Possible access request statuses.
const (
	AccessStatusPending  AccessRequestStatus = "Pending"
	AccessStatusApproved AccessRequestStatus = "Approved"
	AccessStatusRejected AccessRequestStatus = "Rejected"
)

// AccessRequest is a user's request for permission to enroll in a course.
type AccessRequest struct {
	ID         string              `db:"id" json:"id"`
	UserID     string              `db:"user_id" json:"user_id"`
	CourseID   string              `db:"course_id" json:"course_id"`
	Status     AccessRequestStatus `db:"status" json:"status"`
	DecidedBy  *string             `db:"decided_by" json:"decided_by,omitempty"`
	DecidedAt  *time.Time          `db:"decided_at" json:"decided_at,omitempty"`
	CreatedAt  time.Time           `db:"created_at" json:"created_at"`
	UpdatedAt  time.Time           `db:"updated_at" json:"updated_at"`
}

// AccessRequestDetail enriches AccessRequest with course and user info.
type AccessRequestDetail struct {
	AccessRequest
	CourseName string `db:"course_name" json:"course_name"`
	UserName   string `db:"user_name" json:"user_name"`
	UserEmail  string `db:"user_email" json:"user_email"`
}

// AccessRequestFilter provides filters for listing access requests.
type AccessRequestFilter struct {
	UserID   string
	CourseID string
	Status   AccessRequestStatus
	Page     int
	PageSize int
}
