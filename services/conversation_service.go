package services

import (
	"strings"
	"time"

	"venture-marketplace-api/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ConversationService is the narrow messaging contract the negotiation
// components consume: get-or-create a direct conversation and post messages
// into it. When an investor initiates first contact with a venture user, the
// visibility grant for that venture is created here.
type ConversationService struct {
	db         *gorm.DB
	visibility *VisibilityService
}

func NewConversationService(db *gorm.DB, visibility *VisibilityService) *ConversationService {
	return &ConversationService{db: db, visibility: visibility}
}

// GetOrCreate resolves the direct conversation between two users, creating
// it if absent. The pair is normalized low-id-first so both directions hit
// the same row.
func (s *ConversationService) GetOrCreate(userA, userB int) (*models.Conversation, error) {
	if userA == userB {
		return nil, ErrValidation
	}
	a, b := userA, userB
	if a > b {
		a, b = b, a
	}

	conv := models.Conversation{
		ParticipantA: a,
		ParticipantB: b,
		CreatedAt:    time.Now(),
	}
	if err := s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "participant_a"}, {Name: "participant_b"}},
		DoNothing: true,
	}).Create(&conv).Error; err != nil {
		return nil, err
	}
	// Re-read into a fresh value: conv may carry an assigned primary key
	// after Create, which First would otherwise fold into the WHERE clause.
	var existing models.Conversation
	if err := s.db.Where("participant_a = ? AND participant_b = ?", a, b).
		First(&existing).Error; err != nil {
		return nil, err
	}
	return &existing, nil
}

// Start opens (or reuses) a conversation initiated by one user toward
// another. An investor initiating contact with a venture owner earns a
// visibility grant for that venture; a failure there is logged by the
// caller's middleware, not fatal to the conversation.
func (s *ConversationService) Start(initiator *models.User, recipientID int) (*models.Conversation, error) {
	var recipient models.User
	if err := s.db.Where("user_id = ? AND delete_at IS NULL", recipientID).
		First(&recipient).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	conv, err := s.GetOrCreate(initiator.UserID, recipientID)
	if err != nil {
		return nil, err
	}

	if initiator.RoleID == models.RoleInvestor && recipient.RoleID == models.RoleVenture {
		var venture models.Venture
		err := s.db.Where("user_id = ? AND delete_at IS NULL", recipientID).
			First(&venture).Error
		if err == nil {
			if err := s.visibility.EnsureVisible(initiator.UserID, venture.VentureID); err != nil {
				return nil, err
			}
		} else if err != gorm.ErrRecordNotFound {
			return nil, err
		}
	}
	return conv, nil
}

// PostMessage appends a message. System messages carry no author and skip
// the participant check.
func (s *ConversationService) PostMessage(conversationID int, authorID int, body string, system bool) (*models.ConversationMessage, error) {
	body = strings.TrimSpace(body)
	if body == "" {
		return nil, ErrValidation
	}

	var conv models.Conversation
	if err := s.db.Where("conversation_id = ?", conversationID).
		First(&conv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}

	msg := models.ConversationMessage{
		ConversationID: conversationID,
		Body:           body,
		IsSystem:       system,
		CreatedAt:      time.Now(),
	}
	if !system {
		if !conv.HasParticipant(authorID) {
			return nil, ErrAccessDenied
		}
		msg.AuthorID = &authorID
	}

	if err := s.db.Create(&msg).Error; err != nil {
		return nil, err
	}
	return &msg, nil
}

// ListForUser returns the user's conversations, most recent first.
func (s *ConversationService) ListForUser(userID int) ([]models.Conversation, error) {
	var convs []models.Conversation
	if err := s.db.Where("participant_a = ? OR participant_b = ?", userID, userID).
		Order("created_at DESC").
		Find(&convs).Error; err != nil {
		return nil, err
	}
	return convs, nil
}

// ListMessages returns a conversation's messages oldest first, for a
// participant only.
func (s *ConversationService) ListMessages(conversationID, userID int) ([]models.ConversationMessage, error) {
	var conv models.Conversation
	if err := s.db.Where("conversation_id = ?", conversationID).
		First(&conv).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if !conv.HasParticipant(userID) {
		return nil, ErrAccessDenied
	}

	var msgs []models.ConversationMessage
	if err := s.db.Where("conversation_id = ?", conversationID).
		Order("created_at ASC").
		Find(&msgs).Error; err != nil {
		return nil, err
	}
	return msgs, nil
}
