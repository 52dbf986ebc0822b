package models

import "time"

// InvestorProfile is the investor-side reviewable subject. VisibleToVentures
// is the incognito flag: when false the investor is excluded from default
// listings until a VisibilityGrant names a specific venture.
type InvestorProfile struct {
	ProfileID         int        `gorm:"primaryKey;column:profile_id" json:"profile_id"`
	UserID            int        `gorm:"column:user_id;unique" json:"user_id"`
	FirmName          *string    `gorm:"column:firm_name" json:"firm_name,omitempty"`
	InvestorType      *string    `gorm:"column:investor_type" json:"investor_type,omitempty"`
	Thesis            *string    `gorm:"column:thesis" json:"thesis,omitempty"`
	Sectors           *string    `gorm:"column:sectors" json:"sectors,omitempty"`
	MinCheckSize      *float64   `gorm:"column:min_check_size" json:"min_check_size,omitempty"`
	MaxCheckSize      *float64   `gorm:"column:max_check_size" json:"max_check_size,omitempty"`
	VisibleToVentures bool       `gorm:"column:visible_to_ventures" json:"visible_to_ventures"`
	Status            string     `gorm:"column:status" json:"status"`
	SubmittedAt       *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt        *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DecidedBy         *int       `gorm:"column:decided_by" json:"decided_by,omitempty"`
	RejectionReason   *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt          *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt          *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt          *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner User `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
}

// TableName specifies the table name for InvestorProfile.
func (InvestorProfile) TableName() string {
	return "investor_profiles"
}

func (p *InvestorProfile) SubjectType() string { return SubjectTypeInvestorProfile }
func (p *InvestorProfile) SubjectID() int     { return p.ProfileID }
func (p *InvestorProfile) OwnerID() int       { return p.UserID }
func (p *InvestorProfile) ReviewStatus() string {
	return p.Status
}
