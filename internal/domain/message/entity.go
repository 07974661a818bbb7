package message

import (
	"time"

	"github.com/google/uuid"
)

type Type string

const (
	TypeText  Type = "text"
	TypeImage Type = "image"
)

func (t Type) Valid() bool {
	return t == TypeText || t == TypeImage
}

// Message represents the messages table
type Message struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	SenderID    uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair,priority:1"`
	RecipientID uuid.UUID `gorm:"type:uuid;not null;index:idx_messages_pair,priority:2"`
	Type        Type      `gorm:"type:varchar(16);not null"`
	Body        string
	ImageRef    string
	CreatedAt   time.Time `gorm:"not null;index"`
}

// Sender is the {id, name} projection of the sending user.
type Sender struct {
	ID   uuid.UUID
	Name string
}

// WithSender is a message enriched with its sender's identity.
type WithSender struct {
	Message
	Sender Sender
}

func (Message) TableName() string {
	return "messages"
}
