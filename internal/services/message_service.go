package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"friendchat/internal/domain/message"
	"friendchat/internal/repository"
	friendchat_errors "friendchat/pkg/errors"
	"friendchat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type MessageService struct {
	repo     repository.MessageRepository
	userRepo repository.UserRepository
	log      *logger.Logger
	now      func() time.Time
}

func NewMessageService(repo repository.MessageRepository, userRepo repository.UserRepository, log *logger.Logger) *MessageService {
	return &MessageService{repo: repo, userRepo: userRepo, log: log, now: time.Now}
}

type SendMessageInput struct {
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Type        message.Type
	Body        string
	ImageRef    string
}

func (s *MessageService) Send(ctx context.Context, in SendMessageInput) (uuid.UUID, error) {
	if err := validateSend(in); err != nil {
		return uuid.Nil, err
	}

	want := int64(2)
	if in.SenderID == in.RecipientID {
		want = 1
	}
	found, err := s.userRepo.CountExisting(ctx, in.SenderID, in.RecipientID)
	if err != nil {
		return uuid.Nil, err
	}
	if found != want {
		return uuid.Nil, friendchat_errors.NotFound("user")
	}

	// v7 ids sort by creation, which breaks created_at ties in send order
	id, err := uuid.NewV7()
	if err != nil {
		return uuid.Nil, fmt.Errorf("generate message id: %w", err)
	}
	m := &message.Message{
		ID:          id,
		SenderID:    in.SenderID,
		RecipientID: in.RecipientID,
		Type:        in.Type,
		CreatedAt:   s.now().UTC(),
	}
	if in.Type == message.TypeText {
		m.Body = in.Body
	} else {
		m.ImageRef = in.ImageRef
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.log.Error(ctx, "failed to store message", zap.Error(err))
		return uuid.Nil, err
	}
	s.log.Info(ctx, "message sent",
		zap.String("message_id", m.ID.String()),
		zap.String("type", string(m.Type)))
	return m.ID, nil
}

// ListBetween returns the conversation between a and b, oldest first.
func (s *MessageService) ListBetween(ctx context.Context, a, b uuid.UUID) ([]message.WithSender, error) {
	return s.repo.GetMessagesBetween(ctx, a, b)
}

// DeleteMany removes the given messages and reports how many existed.
func (s *MessageService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	deleted, err := s.repo.DeleteMany(ctx, ids)
	if err != nil {
		s.log.Error(ctx, "failed to delete messages", zap.Error(err))
		return 0, err
	}
	if deleted > 0 {
		s.log.Info(ctx, "messages deleted", zap.Int64("count", deleted))
	}
	return deleted, nil
}

func validateSend(in SendMessageInput) error {
	if !in.Type.Valid() {
		return friendchat_errors.Invalid("invalid message type")
	}
	switch in.Type {
	case message.TypeImage:
		if in.ImageRef == "" {
			return friendchat_errors.Invalid("image messages require an image file")
		}
	case message.TypeText:
		if strings.TrimSpace(in.Body) == "" {
			return friendchat_errors.Invalid("text messages require a message body")
		}
	}
	return nil
}
