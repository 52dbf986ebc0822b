package services

import (
	"fmt"
	"log"
	"strings"
	"time"

	"venture-marketplace-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// CommitmentService runs the investment negotiation state machine:
// propose -> accept / renegotiate / withdraw, plus the two-sided completion
// handshake that closes a deal. Conversation side effects happen after the
// primary transaction commits and are best-effort.
type CommitmentService struct {
	db            *gorm.DB
	conversations *ConversationService
	notifier      *Notifier
}

func NewCommitmentService(db *gorm.DB, conversations *ConversationService) *CommitmentService {
	return &CommitmentService{db: db, conversations: conversations}
}

func (s *CommitmentService) WithNotifier(n *Notifier) *CommitmentService {
	s.notifier = n
	return s
}

// Propose creates a pending commitment against a document. There is no
// uniqueness constraint: an investor may hold several open proposals on the
// same document, and a counter-offer after a renegotiation arrives as a new
// row.
func (s *CommitmentService) Propose(documentID int, investor *models.User, amount float64, message string) (*models.Commitment, error) {
	if investor.RoleID != models.RoleInvestor {
		return nil, ErrAccessDenied
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: amount must be positive", ErrValidation)
	}

	var commitment models.Commitment
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
		if doc.Venture.Status != models.SubjectStatusApproved {
			return fmt.Errorf("%w: venture is not approved", ErrInvalidTransition)
		}

		commitment = models.Commitment{
			DocumentID:      documentID,
			VentureID:       doc.VentureID,
			InvestorID:      investor.UserID,
			Amount:          amount,
			VentureResponse: models.CommitmentPending,
			CreatedAt:       time.Now(),
		}
		if msg := strings.TrimSpace(message); msg != "" {
			commitment.Message = &msg
		}
		return tx.Create(&commitment).Error
	})
	if err != nil {
		return nil, err
	}
	return &commitment, nil
}

// Accept closes the proposal positively; the commitment becomes a deal. The
// acceptance summary is posted into a direct conversation between the two
// parties after commit.
func (s *CommitmentService) Accept(commitmentID int, actor *models.User, message string) (*models.Commitment, error) {
	commitment, err := s.respond(commitmentID, actor, models.CommitmentAccepted, strings.TrimSpace(message))
	if err != nil {
		return nil, err
	}
	s.postResponseMessage(commitment, fmt.Sprintf(
		"Commitment of %.2f accepted by %s.", commitment.Amount, actor.FullName()), message)
	return commitment, nil
}

// Renegotiate asks the investor to revise the proposal. The message is
// mandatory; a closed deal cannot be reopened.
func (s *CommitmentService) Renegotiate(commitmentID int, actor *models.User, message string) (*models.Commitment, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: renegotiation message is required", ErrValidation)
	}
	commitment, err := s.respond(commitmentID, actor, models.CommitmentRenegotiate, message)
	if err != nil {
		return nil, err
	}
	s.postResponseMessage(commitment, fmt.Sprintf(
		"Renegotiation requested by %s on the %.2f commitment.", actor.FullName(), commitment.Amount), message)
	return commitment, nil
}

// respond applies a venture response to a pending commitment.
func (s *CommitmentService) respond(commitmentID int, actor *models.User, response, message string) (*models.Commitment, error) {
	var commitment models.Commitment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Venture").
			Where("commitment_id = ?", commitmentID).
			First(&commitment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if commitment.Venture.UserID != actor.UserID && actor.RoleID != models.RoleAdmin {
			return ErrAccessDenied
		}
		// Reopening a closed deal is a different failure from responding
		// twice; accepting anything non-pending is simply already decided.
		if response == models.CommitmentRenegotiate &&
			commitment.VentureResponse == models.CommitmentAccepted {
			return fmt.Errorf("%w: commitment is already a closed deal", ErrInvalidTransition)
		}
		if !commitment.CanRespond() {
			return ErrAlreadyDecided
		}

		now := time.Now()
		updates := map[string]interface{}{
			"venture_response": response,
			"responded_by":     actor.UserID,
			"responded_at":     now,
			"updated_at":       now,
		}
		if message != "" {
			updates["response_message"] = message
			commitment.ResponseMessage = &message
		}
		if err := tx.Model(&models.Commitment{}).
			Where("commitment_id = ?", commitmentID).
			Updates(updates).Error; err != nil {
			return err
		}

		commitment.VentureResponse = response
		commitment.RespondedBy = &actor.UserID
		commitment.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifyCommitmentResponse(commitment.InvestorID, commitment.CommitmentID, response)
	}
	return &commitment, nil
}

// postResponseMessage creates/reuses the investor-venture conversation and
// appends a system summary plus the venture's own message. Failures are
// logged; the committed transition stands regardless.
func (s *CommitmentService) postResponseMessage(commitment *models.Commitment, summary, message string) {
	conv, err := s.conversations.GetOrCreate(commitment.InvestorID, commitment.Venture.UserID)
	if err != nil {
		log.Printf("commitment %d: conversation side effect failed: %v", commitment.CommitmentID, err)
		return
	}

	if commitment.ConversationID == nil {
		if err := s.db.Model(&models.Commitment{}).
			Where("commitment_id = ?", commitment.CommitmentID).
			Update("conversation_id", conv.ConversationID).Error; err != nil {
			log.Printf("commitment %d: failed to link conversation: %v", commitment.CommitmentID, err)
		}
		commitment.ConversationID = &conv.ConversationID
	}

	if _, err := s.conversations.PostMessage(conv.ConversationID, 0, summary, true); err != nil {
		log.Printf("commitment %d: failed to post system message: %v", commitment.CommitmentID, err)
	}
	if msg := strings.TrimSpace(message); msg != "" {
		if _, err := s.conversations.PostMessage(conv.ConversationID, commitment.Venture.UserID, msg, false); err != nil {
			log.Printf("commitment %d: failed to post response message: %v", commitment.CommitmentID, err)
		}
	}
}

// Withdraw retracts a still-pending proposal. Investor-initiated, terminal.
func (s *CommitmentService) Withdraw(commitmentID int, investor *models.User) (*models.Commitment, error) {
	var commitment models.Commitment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("commitment_id = ?", commitmentID).
			First(&commitment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if commitment.InvestorID != investor.UserID {
			return ErrAccessDenied
		}
		if !commitment.CanRespond() {
			return ErrAlreadyDecided
		}

		now := time.Now()
		if err := tx.Model(&models.Commitment{}).
			Where("commitment_id = ?", commitmentID).
			Updates(map[string]interface{}{
				"venture_response": models.CommitmentWithdrawn,
				"responded_at":     now,
				"updated_at":       now,
			}).Error; err != nil {
			return err
		}
		commitment.VentureResponse = models.CommitmentWithdrawn
		commitment.RespondedAt = &now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &commitment, nil
}

// MarkCompleted records the calling party's completion on an accepted
// commitment. Setting an already-set flag is a no-op; the moment both flags
// are present, completed_at is derived exactly once.
func (s *CommitmentService) MarkCompleted(commitmentID int, actor *models.User) (*models.Commitment, error) {
	var commitment models.Commitment
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Preload("Venture").
			Where("commitment_id = ?", commitmentID).
			First(&commitment).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if !commitment.IsDeal() {
			return fmt.Errorf("%w: only accepted commitments can be completed", ErrInvalidTransition)
		}

		now := time.Now()
		updates := map[string]interface{}{"updated_at": now}
		switch actor.UserID {
		case commitment.InvestorID:
			if commitment.InvestorCompletedAt == nil {
				updates["investor_completed_at"] = now
				commitment.InvestorCompletedAt = &now
			}
		case commitment.Venture.UserID:
			if commitment.VentureCompletedAt == nil {
				updates["venture_completed_at"] = now
				commitment.VentureCompletedAt = &now
			}
		default:
			return ErrAccessDenied
		}

		if commitment.CompletedAt == nil &&
			commitment.InvestorCompletedAt != nil &&
			commitment.VentureCompletedAt != nil {
			updates["completed_at"] = now
			commitment.CompletedAt = &now
		}

		return tx.Model(&models.Commitment{}).
			Where("commitment_id = ?", commitmentID).
			Updates(updates).Error
	})
	if err != nil {
		return nil, err
	}
	return &commitment, nil
}

// ListForInvestor returns the investor's commitments, newest first.
func (s *CommitmentService) ListForInvestor(investorID int) ([]models.Commitment, error) {
	var commitments []models.Commitment
	if err := s.db.Preload("Venture").Preload("Document").
		Where("investor_id = ?", investorID).
		Order("created_at DESC").
		Find(&commitments).Error; err != nil {
		return nil, err
	}
	return commitments, nil
}

// ListForVenture returns commitments against the venture's documents,
// newest first.
func (s *CommitmentService) ListForVenture(ventureID int) ([]models.Commitment, error) {
	var commitments []models.Commitment
	if err := s.db.Preload("Investor").Preload("Document").
		Where("venture_id = ?", ventureID).
		Order("created_at DESC").
		Find(&commitments).Error; err != nil {
		return nil, err
	}
	return commitments, nil
}

// Get loads one commitment with relations, restricted to its parties and
// admins.
func (s *CommitmentService) Get(commitmentID int, actor *models.User) (*models.Commitment, error) {
	var commitment models.Commitment
	if err := s.db.Preload("Venture").Preload("Document").Preload("Investor").
		Where("commitment_id = ?", commitmentID).
		First(&commitment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if commitment.InvestorID != actor.UserID &&
		commitment.Venture.UserID != actor.UserID &&
		actor.RoleID != models.RoleAdmin {
		return nil, ErrAccessDenied
	}
	return &commitment, nil
}
