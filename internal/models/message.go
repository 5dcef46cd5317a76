package models

import (
	"time"

	"github.com/google/uuid"
)

// Message is immutable once created. There is no edit or delete path.
// Conversations are not persisted: they are derived from the message set
// by internal/chat, keyed by (provider_id, service_id).
type Message struct {
	ID         uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey" json:"id"`
	SenderID   uuid.UUID `gorm:"type:uuid;index;not null" json:"sender_id"`
	ReceiverID uuid.UUID `gorm:"type:uuid;index;not null" json:"receiver_id"`

	Body string `gorm:"type:text;not null" json:"body"`

	ProviderID uuid.UUID `gorm:"type:uuid;index;not null" json:"provider_id"`
	ServiceID  uuid.UUID `gorm:"type:uuid;index;not null" json:"service_id"`

	// server-assigned
	CreatedAt time.Time `json:"created_at"`

	Sender *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
}
