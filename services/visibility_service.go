package services

import (
	"time"

	"venture-marketplace-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VisibilityService implements the incognito mechanism. Hidden investors
// earn visibility toward a single venture by initiating contact; the grant is
// permanent and one-directional.
type VisibilityService struct {
	db *gorm.DB
}

func NewVisibilityService(db *gorm.DB) *VisibilityService {
	return &VisibilityService{db: db}
}

// EnsureVisible records that the investor is visible to the venture.
// Atomic get-or-create on the unique (investor, venture) pair; safe under
// concurrent first-contact events.
func (s *VisibilityService) EnsureVisible(investorID, ventureID int) error {
	grant := models.VisibilityGrant{
		InvestorID: investorID,
		VentureID:  ventureID,
		CreatedAt:  time.Now(),
	}
	return s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "investor_id"}, {Name: "venture_id"}},
		DoNothing: true,
	}).Create(&grant).Error
}

// ListVisibleInvestors returns approved investor profiles the venture may
// see: globally visible ones plus those holding a visibility grant for this
// venture.
func (s *VisibilityService) ListVisibleInvestors(ventureID int) ([]models.InvestorProfile, error) {
	var profiles []models.InvestorProfile
	err := s.db.Preload("Owner").
		Where("status = ? AND delete_at IS NULL", models.SubjectStatusApproved).
		Where("visible_to_ventures = ? OR user_id IN (?)",
			true,
			s.db.Model(&models.VisibilityGrant{}).
				Select("investor_id").
				Where("venture_id = ?", ventureID),
		).
		Order("profile_id ASC").
		Find(&profiles).Error
	if err != nil {
		return nil, err
	}
	return profiles, nil
}
