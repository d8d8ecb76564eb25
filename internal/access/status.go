// Package access resolves a student's standing toward a course from their
// enrollments and access requests, and derives the action the client
// should offer next.
package access

import (
	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

// Actions offered for a course, in order of precedence.
const (
	ActionContinue  = "continue learning"
	ActionPending   = "request pending"
	ActionReRequest = "request again"
	ActionRequest   = "request access"
	ActionEnroll    = "enroll now"
)

// StatusFor returns the student's most recent access request for the
// course, or nil when none exists. Requests are scanned in order, so
// callers pass them newest first.
func StatusFor(requests []models.AccessRequest, courseID string) *models.AccessRequest {
	for i := range requests {
		if requests[i].CourseID == courseID {
			return &requests[i]
		}
	}
	return nil
}

// Enrolled reports whether the student holds an enrollment for the course.
func Enrolled(enrollments []models.Enrollment, courseID string) bool {
	for i := range enrollments {
		if enrollments[i].CourseID == courseID {
			return true
		}
	}
	return false
}

// ActionFor derives the call to action for a course. An enrollment always
// wins, regardless of any lingering request rows: the student continues
// learning. Otherwise the latest request decides, and with no request a
// free course is enrollable directly while a paid one needs an access
// request.
func ActionFor(course models.Course, enrollments []models.Enrollment, requests []models.AccessRequest) string {
	if Enrolled(enrollments, course.ID) {
		return ActionContinue
	}
	if req := StatusFor(requests, course.ID); req != nil {
		switch req.Status {
		case models.AccessStatusPending:
			return ActionPending
		case models.AccessStatusApproved:
			// approved but enrollment not materialised yet; treat as
			// in-flight rather than asking the student to request again
			return ActionPending
		case models.AccessStatusRejected:
			return ActionReRequest
		}
	}
	if course.Price == 0 {
		return ActionEnroll
	}
	return ActionRequest
}
