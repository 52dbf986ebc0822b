package models

import "time"

// Conversation is a direct channel between two users. The participant pair is
// stored low-id-first so get-or-create resolves to one row regardless of who
// initiated.
type Conversation struct {
	ConversationID int       `gorm:"primaryKey;column:conversation_id" json:"conversation_id"`
	ParticipantA   int       `gorm:"column:participant_a;uniqueIndex:idx_participants" json:"participant_a"`
	ParticipantB   int       `gorm:"column:participant_b;uniqueIndex:idx_participants" json:"participant_b"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Messages []ConversationMessage `gorm:"foreignKey:ConversationID" json:"messages,omitempty"`
}

type ConversationMessage struct {
	MessageID      int       `gorm:"primaryKey;column:message_id" json:"message_id"`
	ConversationID int       `gorm:"column:conversation_id" json:"conversation_id"`
	AuthorID       *int      `gorm:"column:author_id" json:"author_id,omitempty"`
	Body           string    `gorm:"column:body" json:"body"`
	IsSystem       bool      `gorm:"column:is_system" json:"is_system"`
	CreatedAt      time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides
func (Conversation) TableName() string {
	return "conversations"
}

func (ConversationMessage) TableName() string {
	return "conversation_messages"
}

// HasParticipant reports whether the user is one of the two participants.
func (c *Conversation) HasParticipant(userID int) bool {
	return c.ParticipantA == userID || c.ParticipantB == userID
}

// OtherParticipant returns the counterpart of the given user, or 0 when the
// user is not part of the conversation.
func (c *Conversation) OtherParticipant(userID int) int {
	switch userID {
	case c.ParticipantA:
		return c.ParticipantB
	case c.ParticipantB:
		return c.ParticipantA
	}
	return 0
}
