package models

import "time"

// JobPosting is a published career opening on the platform's job board.
type JobPosting struct {
	ID             string     `db:"id" json:"id"`
	Title          string     `db:"title" json:"title"`
	Department     string     `db:"department" json:"department"`
	Location       string     `db:"location" json:"location"`
	EmploymentType string     `db:"employment_type" json:"employment_type"`
	Requirements   StringList `db:"requirements" json:"requirements"`
	Benefits       StringList `db:"benefits" json:"benefits"`
	Deadline       *time.Time `db:"deadline" json:"deadline,omitempty"`
	Published      bool       `db:"published" json:"published"`
	CreatedAt      time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt      time.Time  `db:"updated_at" json:"updated_at"`
}

// JobPostingFilter scopes job posting listings.
type JobPostingFilter struct {
	Search        string
	Department    string
	PublishedOnly bool
	Page          int
	PageSize      int
}

// ApplicationStatus tracks the review lifecycle of a job application.
type ApplicationStatus string

const (
	ApplicationStatusSubmitted ApplicationStatus = "SUBMITTED"
	ApplicationStatusInReview  ApplicationStatus = "IN_REVIEW"
	ApplicationStatusRejected  ApplicationStatus = "REJECTED"
	ApplicationStatusAccepted  ApplicationStatus = "ACCEPTED"
)

// JobApplication is a candidate's submission against a posting.
type JobApplication struct {
	ID          string            `db:"id" json:"id"`
	JobID       string            `db:"job_id" json:"job_id"`
	FullName    string            `db:"full_name" json:"full_name"`
	Email       string            `db:"email" json:"email"`
	Phone       string            `db:"phone" json:"phone"`
	CoverLetter string            `db:"cover_letter" json:"cover_letter"`
	ResumeKey   string            `db:"resume_key" json:"-"`
	Status      ApplicationStatus `db:"status" json:"status"`
	CreatedAt   time.Time         `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time         `db:"updated_at" json:"updated_at"`
}

// JobApplicationFilter scopes application listings for admins.
type JobApplicationFilter struct {
	JobID    string
	Status   ApplicationStatus
	Page     int
	PageSize int
}
