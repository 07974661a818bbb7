package repository

import (
	"context"
	"fmt"
	"time"

	"friendchat/internal/domain/message"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresMessageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &PostgresMessageRepository{db: db}
}

type messageRow struct {
	ID          uuid.UUID
	SenderID    uuid.UUID
	RecipientID uuid.UUID
	Type        message.Type
	Body        string
	ImageRef    string
	CreatedAt   time.Time
	SenderName  string
}

func (r *PostgresMessageRepository) Create(ctx context.Context, m *message.Message) error {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return fmt.Errorf("create message: %w", err)
	}
	return nil
}

// GetMessagesBetween returns the conversation of the pair in both
// directions, oldest first.
func (r *PostgresMessageRepository) GetMessagesBetween(ctx context.Context, userA, userB uuid.UUID) ([]message.WithSender, error) {
	var rows []messageRow
	err := primary(r.db.WithContext(ctx)).
		Table("messages").
		Select("messages.*, users.name AS sender_name").
		Joins("JOIN users ON users.id = messages.sender_id").
		Where("(messages.sender_id = ? AND messages.recipient_id = ?) OR (messages.sender_id = ? AND messages.recipient_id = ?)",
			userA, userB, userB, userA).
		Order("messages.created_at ASC").
		Order("messages.id ASC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list messages: %w", err)
	}

	out := make([]message.WithSender, len(rows))
	for i, row := range rows {
		out[i] = message.WithSender{
			Message: message.Message{
				ID:          row.ID,
				SenderID:    row.SenderID,
				RecipientID: row.RecipientID,
				Type:        row.Type,
				Body:        row.Body,
				ImageRef:    row.ImageRef,
				CreatedAt:   row.CreatedAt,
			},
			Sender: message.Sender{ID: row.SenderID, Name: row.SenderName},
		}
	}
	return out, nil
}

// DeleteMany removes the messages with the given ids. Unknown ids are
// ignored.
func (r *PostgresMessageRepository) DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Where("id IN ?", ids).Delete(&message.Message{})
	if res.Error != nil {
		return 0, fmt.Errorf("delete messages: %w", res.Error)
	}
	return res.RowsAffected, nil
}
