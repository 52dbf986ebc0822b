package models

import "time"

// Access request statuses.
const (
	AccessRequestPending   = "pending"
	AccessRequestApproved  = "approved"
	AccessRequestDenied    = "denied"
	AccessRequestCancelled = "cancelled"
)

// AccessRequest is an investor-initiated ask against a document. Terminal once
// decided; at most one pending row per (document, investor).
type AccessRequest struct {
	AccessRequestID int        `gorm:"primaryKey;column:access_request_id" json:"access_request_id"`
	DocumentID      int        `gorm:"column:document_id" json:"document_id"`
	InvestorID      int        `gorm:"column:investor_id" json:"investor_id"`
	Status          string     `gorm:"column:status" json:"status"`
	Message         *string    `gorm:"column:message" json:"message,omitempty"`
	ResponseMessage *string    `gorm:"column:response_message" json:"response_message,omitempty"`
	RespondedBy     *int       `gorm:"column:responded_by" json:"responded_by,omitempty"`
	RespondedAt     *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	CreatedAt       time.Time  `gorm:"column:created_at" json:"created_at"`

	// Relations
	Document PitchDocument `gorm:"foreignKey:DocumentID;references:DocumentID" json:"document,omitempty"`
	Investor *User         `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}

// TableName specifies the table name for AccessRequest.
func (AccessRequest) TableName() string {
	return "access_requests"
}

// IsPending reports whether the request can still be responded to.
func (r *AccessRequest) IsPending() bool {
	return r.Status == AccessRequestPending
}
