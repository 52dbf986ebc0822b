package models

import "time"

// VisibilityGrant marks an otherwise-hidden investor as visible to one
// specific venture. Created the first time the investor initiates contact;
// never revoked by this mechanism. Unique on the (investor, venture) pair so
// concurrent first contacts collapse into one row.
type VisibilityGrant struct {
	VisibilityGrantID int       `gorm:"primaryKey;column:visibility_grant_id" json:"visibility_grant_id"`
	InvestorID        int       `gorm:"column:investor_id;uniqueIndex:idx_investor_venture" json:"investor_id"`
	VentureID         int       `gorm:"column:venture_id;uniqueIndex:idx_investor_venture" json:"venture_id"`
	CreatedAt         time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName specifies the table name for VisibilityGrant.
func (VisibilityGrant) TableName() string {
	return "visibility_grants"
}
