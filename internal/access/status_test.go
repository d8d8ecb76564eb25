package access

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Harish222600/LMS-SELL-sub001/internal/models"
)

func TestStatusFor(t *testing.T) {
	requests := []models.AccessRequest{
		{ID: "r1", CourseID: "c1", Status: models.AccessStatusPending},
		{ID: "r2", CourseID: "c3", Status: models.AccessStatusRejected},
	}

	got := StatusFor(requests, "c1")
	assert.NotNil(t, got)
	assert.Equal(t, models.AccessStatusPending, got.Status)

	assert.Nil(t, StatusFor(requests, "c2"))
	assert.Nil(t, StatusFor(nil, "c1"))
}

func TestStatusForReturnsFirstMatch(t *testing.T) {
	// requests arrive newest first; the latest one decides
	requests := []models.AccessRequest{
		{ID: "r2", CourseID: "c1", Status: models.AccessStatusPending},
		{ID: "r1", CourseID: "c1", Status: models.AccessStatusRejected},
	}

	got := StatusFor(requests, "c1")
	assert.Equal(t, "r2", got.ID)
}

func TestEnrolled(t *testing.T) {
	enrollments := []models.Enrollment{
		{CourseID: "c1"},
		{CourseID: "c2"},
	}

	assert.True(t, Enrolled(enrollments, "c2"))
	assert.False(t, Enrolled(enrollments, "c9"))
	assert.False(t, Enrolled(nil, "c1"))
}

func TestActionFor(t *testing.T) {
	paid := models.Course{ID: "c1", Price: 49}
	free := models.Course{ID: "c2"}

	tests := []struct {
		name        string
		course      models.Course
		enrollments []models.Enrollment
		requests    []models.AccessRequest
		want        string
	}{
		{
			name:        "enrollment always wins",
			course:      paid,
			enrollments: []models.Enrollment{{CourseID: "c1"}},
			requests:    []models.AccessRequest{{CourseID: "c1", Status: models.AccessStatusRejected}},
			want:        ActionContinue,
		},
		{
			name:     "pending request",
			course:   paid,
			requests: []models.AccessRequest{{CourseID: "c1", Status: models.AccessStatusPending}},
			want:     ActionPending,
		},
		{
			name:     "approved but not yet enrolled",
			course:   paid,
			requests: []models.AccessRequest{{CourseID: "c1", Status: models.AccessStatusApproved}},
			want:     ActionPending,
		},
		{
			name:     "rejected request invites a retry",
			course:   paid,
			requests: []models.AccessRequest{{CourseID: "c1", Status: models.AccessStatusRejected}},
			want:     ActionReRequest,
		},
		{
			name:   "paid course with no history",
			course: paid,
			want:   ActionRequest,
		},
		{
			name:   "free course with no history",
			course: free,
			want:   ActionEnroll,
		},
		{
			name:     "request for another course is ignored",
			course:   free,
			requests: []models.AccessRequest{{CourseID: "c1", Status: models.AccessStatusPending}},
			want:     ActionEnroll,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ActionFor(tt.course, tt.enrollments, tt.requests))
		})
	}
}
