package models

import "time"

// Access event types.
const (
	AccessEventView     = "view"
	AccessEventDownload = "download"
)

// AccessEvent is an append-only log entry. Rows are never updated or deleted;
// all document analytics aggregate over this table.
type AccessEvent struct {
	EventID    int       `gorm:"primaryKey;column:event_id" json:"event_id"`
	DocumentID int       `gorm:"column:document_id" json:"document_id"`
	ActorID    int       `gorm:"column:actor_id" json:"actor_id"`
	EventType  string    `gorm:"column:event_type" json:"event_type"`
	IPAddress  string    `gorm:"column:ip_address" json:"ip_address"`
	UserAgent  string    `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt  time.Time `gorm:"column:created_at" json:"created_at"`

	// Relations
	Actor *User `gorm:"foreignKey:ActorID" json:"actor,omitempty"`
}

// TableName specifies the table name for AccessEvent.
func (AccessEvent) TableName() string {
	return "access_events"
}

// ValidAccessEventType reports whether t is a recordable event type.
func ValidAccessEventType(t string) bool {
	return t == AccessEventView || t == AccessEventDownload
}
