package models

import "time"

type MentorProfile struct {
	ProfileID       int        `gorm:"primaryKey;column:profile_id" json:"profile_id"`
	UserID          int        `gorm:"column:user_id;unique" json:"user_id"`
	Headline        *string    `gorm:"column:headline" json:"headline,omitempty"`
	Expertise       *string    `gorm:"column:expertise" json:"expertise,omitempty"`
	YearsExperience *int       `gorm:"column:years_experience" json:"years_experience,omitempty"`
	Availability    *string    `gorm:"column:availability" json:"availability,omitempty"`
	Status          string     `gorm:"column:status" json:"status"`
	SubmittedAt     *time.Time `gorm:"column:submitted_at" json:"submitted_at,omitempty"`
	ApprovedAt      *time.Time `gorm:"column:approved_at" json:"approved_at,omitempty"`
	DecidedBy       *int       `gorm:"column:decided_by" json:"decided_by,omitempty"`
	RejectionReason *string    `gorm:"column:rejection_reason" json:"rejection_reason,omitempty"`
	CreateAt        *time.Time `gorm:"column:create_at" json:"create_at"`
	UpdateAt        *time.Time `gorm:"column:update_at" json:"update_at"`
	DeleteAt        *time.Time `gorm:"column:delete_at" json:"delete_at,omitempty"`

	// Relations
	Owner User `gorm:"foreignKey:UserID;references:UserID" json:"owner,omitempty"`
}

// TableName specifies the table name for MentorProfile.
func (MentorProfile) TableName() string {
	return "mentor_profiles"
}

func (p *MentorProfile) SubjectType() string { return SubjectTypeMentorProfile }
func (p *MentorProfile) SubjectID() int     { return p.ProfileID }
func (p *MentorProfile) OwnerID() int       { return p.UserID }
func (p *MentorProfile) ReviewStatus() string {
	return p.Status
}
