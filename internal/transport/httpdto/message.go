package httpdto

import (
	"time"

	"friendchat/internal/domain/message"
)

// SendMessageRequest is used for POST /messages. Image messages arrive as
// multipart form data with the file in ImageFileField.
type SendMessageRequest struct {
	SenderID          string `json:"senderId" form:"senderId" binding:"required"`
	RecipientID       string `json:"recipientId" form:"recipientId"`
	LegacyRecipientID string `json:"recepientId" form:"recepientId"`
	MessageType       string `json:"messageType" form:"messageType" binding:"required"`
	MessageText       string `json:"messageText" form:"messageText"`
}

const ImageFileField = "imageFile"

func (r SendMessageRequest) Recipient() string {
	return firstNonEmpty(r.RecipientID, r.LegacyRecipientID)
}

// DeleteMessagesRequest is used for POST /deleteMessages
type DeleteMessagesRequest struct {
	Messages []string `json:"messages" form:"messages"`
}

type SenderDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type MessageDTO struct {
	ID          string    `json:"id"`
	Sender      SenderDTO `json:"senderId"`
	RecipientID string    `json:"recipientId"`
	MessageType string    `json:"messageType"`
	Message     string    `json:"message,omitempty"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Timestamp   time.Time `json:"timestamp"`
}

func ToMessageDTO(m message.WithSender) MessageDTO {
	return MessageDTO{
		ID:          m.ID.String(),
		Sender:      SenderDTO{ID: m.Sender.ID.String(), Name: m.Sender.Name},
		RecipientID: m.RecipientID.String(),
		MessageType: string(m.Type),
		Message:     m.Body,
		ImageURL:    m.ImageRef,
		Timestamp:   m.CreatedAt.UTC(),
	}
}

func ToMessageDTOs(list []message.WithSender) []MessageDTO {
	out := make([]MessageDTO, len(list))
	for i, m := range list {
		out[i] = ToMessageDTO(m)
	}
	return out
}
