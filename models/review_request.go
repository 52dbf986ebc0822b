package models

import "time"

// Review request statuses.
const (
	ReviewStatusSubmitted = "submitted"
	ReviewStatusApproved  = "approved"
	ReviewStatusRejected  = "rejected"
)

// Review outcomes accepted by the decide operation.
const (
	ReviewOutcomeApprove = "approve"
	ReviewOutcomeReject  = "reject"
)

// ReviewRequest records one submission cycle for a reviewable subject. A
// subject accumulates one row per cycle; at most one row per subject may be
// in submitted state at a time.
type ReviewRequest struct {
	RequestID       int        `gorm:"primaryKey;column:request_id" json:"request_id"`
	SubjectType     string     `gorm:"column:subject_type" json:"subject_type"`
	SubjectID       int        `gorm:"column:subject_id" json:"subject_id"`
	SubmitterID     int        `gorm:"column:submitter_id" json:"submitter_id"`
	Round           int        `gorm:"column:round" json:"round"`
	Status          string     `gorm:"column:status" json:"status"`
	ReviewerID      *int       `gorm:"column:reviewer_id" json:"reviewer_id,omitempty"`
	DecidedAt       *time.Time `gorm:"column:decided_at" json:"decided_at,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations
	Submitter *User `gorm:"foreignKey:SubmitterID" json:"submitter,omitempty"`
	Reviewer  *User `gorm:"foreignKey:ReviewerID" json:"reviewer,omitempty"`
}

// TableName specifies the table name for ReviewRequest.
func (ReviewRequest) TableName() string {
	return "review_requests"
}

// IsDecided reports whether the request has reached a terminal state.
func (r *ReviewRequest) IsDecided() bool {
	return r.Status != ReviewStatusSubmitted
}
