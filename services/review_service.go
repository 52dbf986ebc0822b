package services

import (
	"fmt"
	"strings"
	"time"

	"venture-marketplace-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ReviewService drives the submit -> review -> approve/reject workflow for
// every reviewable subject type. All multi-row transitions run inside a
// single transaction; the at-most-one-submitted invariant is enforced with a
// locked read on review_requests before a new cycle is created.
type ReviewService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{db: db}
}

// WithNotifier attaches a notifier used for post-commit, best-effort
// decision notifications.
func (s *ReviewService) WithNotifier(n *Notifier) *ReviewService {
	s.notifier = n
	return s
}

// Submit starts a new review cycle for the subject. The actor must own the
// subject and the subject must be in draft or rejected state. Venture
// submissions additionally require at least one pitch document.
func (s *ReviewService) Submit(subjectType string, subjectID, actorID int) (*models.ReviewRequest, error) {
	if !models.ValidSubjectType(subjectType) {
		return nil, fmt.Errorf("%w: unknown subject type %q", ErrValidation, subjectType)
	}

	var request models.ReviewRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		subject, err := loadSubjectForUpdate(tx, subjectType, subjectID)
		if err != nil {
			return err
		}
		if subject.OwnerID() != actorID {
			return ErrAccessDenied
		}
		if !models.CanSubmit(subject.ReviewStatus()) {
			return fmt.Errorf("%w: cannot submit from status %q", ErrInvalidTransition, subject.ReviewStatus())
		}

		var active int64
		if err := tx.Model(&models.ReviewRequest{}).
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("subject_type = ? AND subject_id = ? AND status = ?",
				subjectType, subjectID, models.ReviewStatusSubmitted).
			Count(&active).Error; err != nil {
			return err
		}
		if active > 0 {
			return ErrDuplicateActiveRequest
		}

		if subjectType == models.SubjectTypeVenture {
			var docs int64
			if err := tx.Model(&models.PitchDocument{}).
				Where("venture_id = ? AND delete_at IS NULL", subjectID).
				Count(&docs).Error; err != nil {
				return err
			}
			if docs == 0 {
				return fmt.Errorf("%w: pitch document", ErrMissingRequiredArtifact)
			}
		}

		var rounds int64
		if err := tx.Model(&models.ReviewRequest{}).
			Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
			Count(&rounds).Error; err != nil {
			return err
		}

		now := time.Now()
		request = models.ReviewRequest{
			SubjectType: subjectType,
			SubjectID:   subjectID,
			SubmitterID: actorID,
			Round:       int(rounds) + 1,
			Status:      models.ReviewStatusSubmitted,
			CreatedAt:   now,
		}
		if err := tx.Create(&request).Error; err != nil {
			return err
		}

		return updateSubject(tx, subjectType, subjectID, map[string]interface{}{
			"status":       models.SubjectStatusSubmitted,
			"submitted_at": now,
			"update_at":    now,
		})
	})
	if err != nil {
		return nil, err
	}
	return &request, nil
}

// Decide records the reviewer's outcome on a submitted request and moves the
// subject into the matching terminal state. Rejection requires a non-empty
// reason. The decision notification is dispatched after the transaction
// commits and never rolls it back.
func (s *ReviewService) Decide(requestID, reviewerID int, outcome, reason string) (*models.ReviewRequest, error) {
	reason = strings.TrimSpace(reason)
	if outcome != models.ReviewOutcomeApprove && outcome != models.ReviewOutcomeReject {
		return nil, fmt.Errorf("%w: unknown outcome %q", ErrValidation, outcome)
	}
	if outcome == models.ReviewOutcomeReject && reason == "" {
		return nil, fmt.Errorf("%w: rejection reason is required", ErrValidation)
	}

	var request models.ReviewRequest
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("request_id = ?", requestID).
			First(&request).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}
		if request.IsDecided() {
			return ErrAlreadyDecided
		}

		now := time.Now()
		requestUpdates := map[string]interface{}{
			"reviewer_id": reviewerID,
			"decided_at":  now,
		}
		subjectUpdates := map[string]interface{}{
			"decided_by": reviewerID,
			"update_at":  now,
		}

		if outcome == models.ReviewOutcomeApprove {
			requestUpdates["status"] = models.ReviewStatusApproved
			subjectUpdates["status"] = models.SubjectStatusApproved
			subjectUpdates["approved_at"] = now
			subjectUpdates["rejection_reason"] = nil
		} else {
			requestUpdates["status"] = models.ReviewStatusRejected
			requestUpdates["rejection_reason"] = reason
			subjectUpdates["status"] = models.SubjectStatusRejected
			subjectUpdates["rejection_reason"] = reason
		}

		if err := tx.Model(&models.ReviewRequest{}).
			Where("request_id = ?", requestID).
			Updates(requestUpdates).Error; err != nil {
			return err
		}
		if err := updateSubject(tx, request.SubjectType, request.SubjectID, subjectUpdates); err != nil {
			return err
		}

		request.Status = requestUpdates["status"].(string)
		request.ReviewerID = &reviewerID
		request.DecidedAt = &now
		if outcome == models.ReviewOutcomeReject {
			request.RejectionReason = &reason
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		s.notifier.NotifySubjectDecided(request.SubjectType, request.SubjectID, request.SubmitterID, outcome, reason)
	}
	return &request, nil
}

// ListPending returns all requests still awaiting a decision, newest first,
// optionally filtered by subject type.
func (s *ReviewService) ListPending(subjectType string) ([]models.ReviewRequest, error) {
	query := s.db.Preload("Submitter").
		Where("status = ?", models.ReviewStatusSubmitted)
	if subjectType != "" {
		if !models.ValidSubjectType(subjectType) {
			return nil, fmt.Errorf("%w: unknown subject type %q", ErrValidation, subjectType)
		}
		query = query.Where("subject_type = ?", subjectType)
	}

	var requests []models.ReviewRequest
	if err := query.Order("created_at DESC").Find(&requests).Error; err != nil {
		return nil, err
	}
	return requests, nil
}

// Suspend takes an approved subject out of circulation. Admin-only, outside
// the normal submit/decide flow.
func (s *ReviewService) Suspend(subjectType string, subjectID, adminID int) error {
	if !models.ValidSubjectType(subjectType) {
		return fmt.Errorf("%w: unknown subject type %q", ErrValidation, subjectType)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		subject, err := loadSubjectForUpdate(tx, subjectType, subjectID)
		if err != nil {
			return err
		}
		if !models.CanSuspend(subject.ReviewStatus()) {
			return fmt.Errorf("%w: cannot suspend from status %q", ErrInvalidTransition, subject.ReviewStatus())
		}
		return updateSubject(tx, subjectType, subjectID, map[string]interface{}{
			"status":     models.SubjectStatusSuspended,
			"decided_by": adminID,
			"update_at":  time.Now(),
		})
	})
}

// Purge hard-deletes a subject and its review history. Admin-only; the only
// path that removes subject rows.
func (s *ReviewService) Purge(subjectType string, subjectID int) error {
	if !models.ValidSubjectType(subjectType) {
		return fmt.Errorf("%w: unknown subject type %q", ErrValidation, subjectType)
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if _, err := loadSubjectForUpdate(tx, subjectType, subjectID); err != nil {
			return err
		}
		if err := tx.Where("subject_type = ? AND subject_id = ?", subjectType, subjectID).
			Delete(&models.ReviewRequest{}).Error; err != nil {
			return err
		}
		switch subjectType {
		case models.SubjectTypeVenture:
			if err := tx.Where("venture_id = ?", subjectID).
				Delete(&models.PitchDocument{}).Error; err != nil {
				return err
			}
			return tx.Where("venture_id = ?", subjectID).Delete(&models.Venture{}).Error
		case models.SubjectTypeInvestorProfile:
			return tx.Where("profile_id = ?", subjectID).Delete(&models.InvestorProfile{}).Error
		default:
			return tx.Where("profile_id = ?", subjectID).Delete(&models.MentorProfile{}).Error
		}
	})
}

// loadSubjectForUpdate resolves the tagged subject reference to its concrete
// row, locked for the duration of the transaction.
func loadSubjectForUpdate(tx *gorm.DB, subjectType string, subjectID int) (models.Reviewable, error) {
	locked := tx.Clauses(clause.Locking{Strength: "UPDATE"})
	switch subjectType {
	case models.SubjectTypeVenture:
		var v models.Venture
		if err := locked.Where("venture_id = ? AND delete_at IS NULL", subjectID).First(&v).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &v, nil
	case models.SubjectTypeInvestorProfile:
		var p models.InvestorProfile
		if err := locked.Where("profile_id = ? AND delete_at IS NULL", subjectID).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &p, nil
	case models.SubjectTypeMentorProfile:
		var p models.MentorProfile
		if err := locked.Where("profile_id = ? AND delete_at IS NULL", subjectID).First(&p).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, ErrNotFound
			}
			return nil, err
		}
		return &p, nil
	}
	return nil, fmt.Errorf("%w: unknown subject type %q", ErrValidation, subjectType)
}

// updateSubject applies status bookkeeping columns to the concrete subject
// table named by subjectType.
func updateSubject(tx *gorm.DB, subjectType string, subjectID int, updates map[string]interface{}) error {
	switch subjectType {
	case models.SubjectTypeVenture:
		return tx.Model(&models.Venture{}).Where("venture_id = ?", subjectID).Updates(updates).Error
	case models.SubjectTypeInvestorProfile:
		return tx.Model(&models.InvestorProfile{}).Where("profile_id = ?", subjectID).Updates(updates).Error
	case models.SubjectTypeMentorProfile:
		return tx.Model(&models.MentorProfile{}).Where("profile_id = ?", subjectID).Updates(updates).Error
	}
	return fmt.Errorf("%w: unknown subject type %q", ErrValidation, subjectType)
}
