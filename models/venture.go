package models

import "time"

type Venture struct {
	VentureID       int        `gorm:"primaryKey;column:venture_id" json:"venture_id"`
	UserID          int        `gorm:"column:user_id" json:"user_id"`
	CompanyName     string     `gorm:"column:company_name" json:"company_name"`
	Tagline         *string    `gorm:"column:tagline" json:"tagline,omitempty"`
	Sector          *string    `gorm:"column:sector" json:"sector,omitempty"`
	Stage           *string    `gorm:"column:stage" json:"stage,omitempty"`
	Website         *string    `gorm:"column:website" json:"website,omitempty"`
	Description     *string    `gorm:"column:description" json:"description,omitempty"`
	Status          string     `gorm:"column:status" json:"status"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DecidedBy       *int       `gorm:"column:decided_by" json:"decided_by,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner     User            `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
	Documents []PitchDocument `gorm:"foreignKey:VentureID" json:"documents,omitempty"`
}

// TableName specifies the table name for Venture.
func (Venture) TableName() string {
	return "ventures"
}

func (v *Venture) SubjectType() string { return SubjectTypeVenture }
func (v *Venture) SubjectID() int     { return v.VentureID }
func (v *Venture) OwnerID() int       { return v.UserID }
func (v *Venture) ReviewStatus() string {
	return v.Status
}
