package models

import "time"

// AccessShare records a venture pushing a document to an investor. Not a state
// machine; ViewedAt is set exactly once, by the investor's first view event.
type AccessShare struct {
	ShareID    int        `gorm:"primaryKey;column:share_id" json:"share_id"`
	DocumentID int        `gorm:"column:document_id" json:"document_id"`
	InvestorID int        `gorm:"column:investor_id" json:"investor_id"`
	SharedBy   int        `gorm:"column:shared_by" json:"shared_by"`
	Message    *string    `gorm:"column:message" json:"message,omitempty"`
	SharedAt   time.Time  `gorm:"column:shared_at" json:"shared_at"`
	ViewedAt   *time.Time `gorm:"column:viewed_at" json:"viewed_at,omitempty"`

	// Relations
	Document PitchDocument `gorm:"foreignKey:DocumentID;references:DocumentID" json:"document,omitempty"`
	Investor *User         `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}

// TableName specifies the table name for AccessShare.
func (AccessShare) TableName() string {
	return "access_shares"
}
