package services

import (
	"fmt"
	"time"

	"venture-marketplace-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// EventOrigin carries the request metadata stored on every access event.
type EventOrigin struct {
	IPAddress string
	UserAgent string
}

// DocumentAnalytics aggregates the access ledger for one document.
type DocumentAnalytics struct {
	ViewCount         int64                `json:"view_count"`
	DownloadCount     int64                `json:"download_count"`
	UniqueViewers     int64                `json:"unique_viewers"`
	UniqueDownloaders int64                `json:"unique_downloaders"`
	ActiveGrantCount  int64                `json:"active_grant_count"`
	RecentEvents      []models.AccessEvent `json:"recent_events"`
}

// AccessService owns the per-document access ledger: the default-allow
// policy, the append-only event log and explicit grant/revoke state.
type AccessService struct {
	db       *gorm.DB
	notifier *Notifier
}

func NewAccessService(db *gorm.DB) *AccessService {
	return &AccessService{db: db}
}

func (s *AccessService) WithNotifier(n *Notifier) *AccessService {
	s.notifier = n
	return s
}

// CheckAccess applies the document access policy: owners and admins always
// pass; investors have implicit access to documents of approved ventures
// unless an explicit revoked grant exists for the pair.
func (s *AccessService) CheckAccess(documentID int, actor *models.User) (bool, error) {
	doc, err := s.loadDocument(s.db, documentID)
	if err != nil {
		return false, err
	}
	return s.allowed(s.db, doc, actor)
}

func (s *AccessService) allowed(tx *gorm.DB, doc *models.PitchDocument, actor *models.User) (bool, error) {
	if actor.RoleID == models.RoleAdmin {
		return true, nil
	}
	if doc.Venture.UserID == actor.UserID {
		return true, nil
	}
	if actor.RoleID != models.RoleInvestor {
		return false, nil
	}
	if doc.Venture.Status != models.SubjectStatusApproved {
		return false, nil
	}

	var grant models.AccessGrant
	err := tx.Where("document_id = ? AND investor_id = ?", doc.DocumentID, actor.UserID).
		First(&grant).Error
	if err == gorm.ErrRecordNotFound {
		return true, nil // default-allow: no explicit revoke on record
	}
	if err != nil {
		return false, err
	}
	return grant.Active, nil
}

// RecordEvent appends a view/download entry to the ledger after an access
// check. Documented side effects of a successful investor event: an active
// grant is lazily created for the pair if none exists, and a matching
// AccessShare gets its viewed_at stamped on the first view.
func (s *AccessService) RecordEvent(documentID int, actor *models.User, eventType string, origin EventOrigin) (*models.AccessEvent, error) {
	if !models.ValidAccessEventType(eventType) {
		return nil, fmt.Errorf("%w: unknown event type %q", ErrValidation, eventType)
	}

	var event models.AccessEvent
	err := s.db.Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadDocument(tx, documentID)
		if err != nil {
			return err
		}
		ok, err := s.allowed(tx, doc, actor)
		if err != nil {
			return err
		}
		if !ok {
			return ErrAccessDenied
		}

		now := time.Now()
		event = models.AccessEvent{
			DocumentID: documentID,
			ActorID:    actor.UserID,
			EventType:  eventType,
			IPAddress:  origin.IPAddress,
			UserAgent:  origin.UserAgent,
			CreatedAt:  now,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		if actor.RoleID != models.RoleInvestor {
			return nil
		}

		// First access confirms the implicit grant so listings and
		// analytics can see it. DoNothing keeps a revoked row revoked
		// (a revoked pair never reaches this point anyway).
		grant := models.AccessGrant{
			DocumentID: documentID,
			InvestorID: actor.UserID,
			Active:     true,
			GrantedBy:  actor.UserID,
			GrantedAt:  now,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "document_id"}, {Name: "investor_id"}},
			DoNothing: true,
		}).Create(&grant).Error; err != nil {
			return err
		}

		if eventType == models.AccessEventView {
			// Only the first view sets viewed_at.
			if err := tx.Model(&models.AccessShare{}).
				Where("document_id = ? AND investor_id = ? AND viewed_at IS NULL", documentID, actor.UserID).
				Update("viewed_at", now).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &event, nil
}

// Grant gives an investor explicit access. Idempotent upsert: an existing
// revoked grant is reactivated with revoked_at cleared, indistinguishable
// from a fresh grant. Only the document owner or an admin may grant.
func (s *AccessService) Grant(documentID, granteeID int, actor *models.User) (*models.AccessGrant, error) {
	var grant models.AccessGrant
	err := s.db.Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadDocument(tx, documentID)
		if err != nil {
			return err
		}
		if doc.Venture.UserID != actor.UserID && actor.RoleID != models.RoleAdmin {
			return ErrAccessDenied
		}
		g, err := upsertGrant(tx, documentID, granteeID, actor.UserID)
		if err != nil {
			return err
		}
		grant = *g
		return nil
	})
	if err != nil {
		return nil, err
	}
	if s.notifier != nil {
		s.notifier.NotifyAccessGranted(granteeID, documentID)
	}
	return &grant, nil
}

// Revoke soft-deactivates an active grant. Only the document owner may
// revoke; revoking a pair without an active grant is ErrNotFound.
func (s *AccessService) Revoke(documentID, granteeID int, actor *models.User) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		doc, err := s.loadDocument(tx, documentID)
		if err != nil {
			return err
		}
		if doc.Venture.UserID != actor.UserID {
			return ErrAccessDenied
		}

		var grant models.AccessGrant
		if err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("document_id = ? AND investor_id = ? AND active = ?", documentID, granteeID, true).
			First(&grant).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return ErrNotFound
			}
			return err
		}

		return tx.Model(&models.AccessGrant{}).
			Where("grant_id = ?", grant.GrantID).
			Updates(map[string]interface{}{
				"active":     false,
				"revoked_at": time.Now(),
			}).Error
	})
}

// Analytics is a pure read over access_events and access_grants.
func (s *AccessService) Analytics(documentID int) (*DocumentAnalytics, error) {
	if _, err := s.loadDocument(s.db, documentID); err != nil {
		return nil, err
	}

	out := &DocumentAnalytics{RecentEvents: []models.AccessEvent{}}
	events := s.db.Model(&models.AccessEvent{}).Where("document_id = ?", documentID)

	if err := events.Session(&gorm.Session{}).
		Where("event_type = ?", models.AccessEventView).
		Count(&out.ViewCount).Error; err != nil {
		return nil, err
	}
	if err := events.Session(&gorm.Session{}).
		Where("event_type = ?", models.AccessEventDownload).
		Count(&out.DownloadCount).Error; err != nil {
		return nil, err
	}
	if err := events.Session(&gorm.Session{}).
		Where("event_type = ?", models.AccessEventView).
		Distinct("actor_id").
		Count(&out.UniqueViewers).Error; err != nil {
		return nil, err
	}
	if err := events.Session(&gorm.Session{}).
		Where("event_type = ?", models.AccessEventDownload).
		Distinct("actor_id").
		Count(&out.UniqueDownloaders).Error; err != nil {
		return nil, err
	}
	if err := s.db.Model(&models.AccessGrant{}).
		Where("document_id = ? AND active = ?", documentID, true).
		Count(&out.ActiveGrantCount).Error; err != nil {
		return nil, err
	}
	if err := s.db.Where("document_id = ?", documentID).
		Order("created_at DESC").
		Limit(20).
		Find(&out.RecentEvents).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func (s *AccessService) loadDocument(tx *gorm.DB, documentID int) (*models.PitchDocument, error) {
	var doc models.PitchDocument
	if err := tx.Preload("Venture").
		Where("document_id = ? AND delete_at IS NULL", documentID).
		First(&doc).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &doc, nil
}

// upsertGrant is the shared grant writer used by explicit grants, request
// approvals and shares. Atomic on the (document, investor) unique index.
func upsertGrant(tx *gorm.DB, documentID, granteeID, grantedBy int) (*models.AccessGrant, error) {
	now := time.Now()
	grant := models.AccessGrant{
		DocumentID: documentID,
		InvestorID: granteeID,
		Active:     true,
		GrantedBy:  grantedBy,
		GrantedAt:  now,
	}
	if err := tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "document_id"}, {Name: "investor_id"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"active":     true,
			"revoked_at": nil,
			"granted_by": grantedBy,
			"granted_at": now,
		}),
	}).Create(&grant).Error; err != nil {
		return nil, err
	}

	// Re-read into a fresh value so callers see the canonical row after a
	// conflict update; grant's assigned key must not leak into the WHERE.
	var current models.AccessGrant
	if err := tx.Where("document_id = ? AND investor_id = ?", documentID, granteeID).
		First(&current).Error; err != nil {
		return nil, err
	}
	return &current, nil
}
