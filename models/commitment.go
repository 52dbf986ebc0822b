package models

import "time"

// Venture responses on a commitment.
const (
	CommitmentPending     = "pending"
	CommitmentAccepted    = "accepted"
	CommitmentRenegotiate = "renegotiate"
	CommitmentWithdrawn   = "withdrawn"
)

// Commitment is an investor's investment proposal against a pitch document.
// VentureResponse drives the negotiation state machine; the two completion
// timestamps are set independently by each party and CompletedAt is derived
// the moment both are present.
type Commitment struct {
	CommitmentID        int        `gorm:"primaryKey;column:commitment_id" json:"commitment_id"`
	DocumentID          int        `gorm:"column:document_id" json:"document_id"`
	VentureID           int        `gorm:"column:venture_id" json:"venture_id"`
	InvestorID          int        `gorm:"column:investor_id" json:"investor_id"`
	Amount              float64    `gorm:"column:amount" json:"amount"`
	Message             *string    `gorm:"column:message" json:"message,omitempty"`
	VentureResponse     string     `gorm:"column:venture_response" json:"venture_response"`
	ResponseMessage     *string    `gorm:"column:response_message" json:"response_message,omitempty"`
	RespondedBy         *int       `gorm:"column:responded_by" json:"responded_by,omitempty"`
	RespondedAt         *time.Time `gorm:"column:responded_at" json:"responded_at,omitempty"`
	ConversationID      *int       `gorm:"column:conversation_id" json:"conversation_id,omitempty"`
	InvestorCompletedAt *time.Time `gorm:"column:investor_completed_at" json:"investor_completed_at,omitempty"`
	VentureCompletedAt  *time.Time `gorm:"column:venture_completed_at" json:"venture_completed_at,omitempty"`
	CompletedAt         *time.Time `gorm:"column:completed_at" json:"completed_at,omitempty"`
	CreatedAt           time.Time  `gorm:"column:created_at" json:"created_at"`
	UpdatedAt           *time.Time `gorm:"column:updated_at" json:"updated_at,omitempty"`

	// Relations
	Document PitchDocument `gorm:"foreignKey:DocumentID;references:DocumentID" json:"document,omitempty"`
	Venture  Venture       `gorm:"foreignKey:VentureID;references:VentureID" json:"venture,omitempty"`
	Investor *User         `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}

// TableName specifies the table name for Commitment.
func (Commitment) TableName() string {
	return "commitments"
}

// IsDeal reports whether the venture has accepted the commitment.
func (c *Commitment) IsDeal() bool {
	return c.VentureResponse == CommitmentAccepted
}

// IsCompleted reports whether both parties have marked completion.
func (c *Commitment) IsCompleted() bool {
	return c.CompletedAt != nil
}

// CanRespond reports whether the venture may still answer the proposal.
func (c *Commitment) CanRespond() bool {
	return c.VentureResponse == CommitmentPending
}
