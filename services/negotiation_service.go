package services

import (
	"fmt"
	"strings"
	"time"

	"venture-marketplace-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// NegotiationService handles the two ways an investor gets access to a gated
// document besides the default policy: investor-initiated access requests and
// venture-initiated shares.
type NegotiationService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewNegotiationService(db *gorm.DB) *NegotiationService {
	return &NegotiationService{db: db}
}

func (s *NegotiationService) WithNotifier(n *Notifier) *NegotiationService {
	s.notifier = n
	return s
}

// RequestAccess opens a pending ask against a document. At most one pending
// request per (document, investor); a second attempt while one is open fails.
func (s *NegotiationService) RequestAccess(documentID int, investor *models.User, message string) (*models.AccessRequest, error) {
	if investor.RoleID != models.RoleInvestor {
		return nil, ErrAccessDenied
	}

	var request models.AccessRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := documentExists(tx, documentID); err != nil {
			return err
		}

		var pending int64
		if err := tx.Model(&models.AccessRequest{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("document_id = ? AND investor_id = ? AND status = ?",
				documentID, investor.UserID, models.AccessRequestPending).
			Count(&pending).Error; err != nil {
			return err
		}
		if pending > 0 {
			return ErrDuplicateActiveRequest
		}

		request = models.AccessRequest{
			DocumentID: documentID,
			InvestorID: investor.UserID,
			Status:     models.AccessRequestPending,
			CreatedAt:  time.Now(),
		}
		if msg := strings.TrimSpace(message); msg != "" {
			request.Message = &msg
		}
		return tx.Create(&request).Error
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Respond decides a pending access request. Approval grants access in the
// same transaction; denial leaves the ledger untouched.
func (s *NegotiationService) Respond(requestID int, responder *models.User, outcome, responseMessage string) (*models.AccessRequest, error) {
	if outcome != models.AccessRequestApproved && outcome != models.AccessRequestDenied {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrValidation, outcome)
	}

	var request models.AccessRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Document.Venture").
			Where("access_request_id = ?", requestID).
			First(&request).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if !request.IsPending() {
			return ErrAlreadyDecided
		}
		if request.Document.Venture.UserID != responder.UserID && responder.RoleID != models.RoleAdmin {
			return ErrAccessDenied
		}

		now := time.Now()
		updates := map[string]interface{}{
			"status":       outcome,
			"responded_by": responder.UserID,
			"responded_at": now,
		}
		if msg := strings.TrimSpace(responseMessage); msg != "" {
			updates["response_message"] = msg
			request.ResponseMessage = &msg
		}
		if err := tx.Model(&models.AccessRequest{}).
			Where("access_request_id = ?", requestID).
			Updates(updates).Error; err != nil {
			return err
		}

		if outcome == models.AccessRequestApproved {
			if _, err := upsertGrant(tx, request.DocumentID, request.InvestorID, responder.UserID); err != nil {
				return err
			}
		}

		request.Status = outcome
		request.RespondedBy = &responder.UserID
		request.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if outcome == models.AccessRequestApproved && s.notifier != nil {
		s.notifier.NotifyAccessGranted(request.InvestorID, request.DocumentID)
	}
	return &request, nil
}

// Cancel lets the requesting investor withdraw a still-pending ask.
func (s *NegotiationService) Cancel(requestID int, investor *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var request models.AccessRequest
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("access_request_id = ?", requestID).
			First(&request).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if request.InvestorID != investor.UserID {
			return ErrAccessDenied
		}
		if !request.IsPending() {
			return ErrAlreadyDecided
		}
		return tx.Model(&models.AccessRequest{}).
			Where("access_request_id = ?", requestID).
			Updates(map[string]interface{}{
				"status":       models.AccessRequestCancelled,
				"responded_at": time.Now(),
			}).Error
	})
}

// Share pushes a document to an investor. Sharing implies access: the share
// record and the grant are written together, no approval step.
func (s *NegotiationService) Share(documentID, investorID int, sharer *models.User, message string) (*models.AccessShare, error) {
	var share models.AccessShare
	err := s.db.Transaction(func(tx *gorm.DB) error {
		var doc models.PitchDocument
		if err := tx.Preload("Venture").
			Where("document_id = ? AND delete_at IS NULL", documentID).
			First(&doc).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if doc.Venture.UserID != sharer.UserID && sharer.RoleID != models.RoleAdmin {
			return ErrAccessDenied
		}

		var investor models.User
		if err := tx.Where("user_id = ? AND role_id = ? AND delete_at IS NULL",
			investorID, models.RoleInvestor).
			First(&investor).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return fmt.Errorf("%w: investor", ErrNotFound)
			}
			return err
		}

		share = models.AccessShare{
			DocumentID: documentID,
			InvestorID: investorID,
			SharedBy:   sharer.UserID,
			SharedAt:   time.Now(),
		}
		if msg := strings.TrimSpace(message); msg != "" {
			share.Message = &msg
		}
		if err := tx.Create(&share).Error; err != nil {
			return err
		}

		_, err := upsertGrant(tx, documentID, investorID, sharer.UserID)
		return err
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyAccessGranted(investorID, documentID)
	}
	return &share, nil
}

// ListRequestsForDocument returns every request against a document, newest
// first. Owner/admin surface.
func (s *NegotiationService) ListRequestsForDocument(documentID int) ([]models.AccessRequest, error) {
	var requests []models.AccessRequest
	if err := s.db.Preload("Investor").
		Where("document_id = ?", documentID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// ListSharesForInvestor returns documents pushed to the investor.
func (s *NegotiationService) ListSharesForInvestor(investorID int) ([]models.AccessShare, error) {
	var shares []models.AccessShare
	if err := s.db.Preload("Document").
		Where("investor_id = ?", investorID).
		Order("shared_at DESC").
		Find(&shares).Error; err != nil {
		return nil, err
	}
	return shares, nil
}

func documentExists(tx *gorm.DB, documentID int) error {
	var count int64
	if err := tx.Model(&models.PitchDocument{}).
		Where("document_id = ? AND delete_at IS NULL", documentID).
		Count(&count).Error; err != nil {
		return err
	}
	if count == 0 {
		return ErrNotFound
	}
	return nil
}
