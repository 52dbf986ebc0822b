package models

import "time"

// AccessGrant tracks per-(document, investor) access state. The table carries
// a unique index on the pair; re-granting reactivates the existing row rather
// than inserting a second one.
type AccessGrant struct {
	GrantID    int        `gorm:"primaryKey;column:grant_id" json:"grant_id"`
	DocumentID int        `gorm:"column:document_id;uniqueIndex:idx_document_investor" json:"document_id"`
	InvestorID int        `gorm:"column:investor_id;uniqueIndex:idx_document_investor" json:"investor_id"`
	Active     bool       `gorm:"column:active" json:"active"`
	GrantedBy  int        `gorm:"column:granted_by" json:"granted_by"`
	GrantedAt  time.Time  `gorm:"column:granted_at" json:"granted_at"`
	RevokedAt  *time.Time `gorm:"column:revoked_at" json:"revoked_at,omitempty"`

	// Relations
	Document PitchDocument `gorm:"foreignKey:DocumentID;references:DocumentID" json:"document,omitempty"`
	Investor *User         `gorm:"foreignKey:InvestorID" json:"investor,omitempty"`
}

// TableName specifies the table name for AccessGrant.
func (AccessGrant) TableName() string {
	return "access_grants"
}
