package repository

import (
	"context"
	"fmt"
	"time"

	"friendchat/internal/domain/user"
	friendchat_errors "friendchat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PostgresFriendshipRepository struct {
	db *gorm.DB
}

func NewFriendshipRepository(db *gorm.DB) FriendshipRepository {
	return &PostgresFriendshipRepository{db: db}
}

// CreateRequest records a pending request. Repeating it is a no-op.
func (r *PostgresFriendshipRepository) CreateRequest(ctx context.Context, senderID, recipientID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePair(tx, senderID, recipientID); err != nil {
			return err
		}

		var friends int64
		if err := tx.Model(&user.Friendship{}).
			Where("user_id = ? AND friend_id = ?", senderID, recipientID).
			Count(&friends).Error; err != nil {
			return err
		}
		if friends > 0 {
			return friendchat_errors.ErrAlreadyExists
		}

		req := user.FriendRequest{SenderID: senderID, RecipientID: recipientID, CreatedAt: time.Now().UTC()}
		return tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&req).Error
	})
}

// AcceptRequest makes the pair friends and clears the pending requests
// between them in both directions, all in one transaction.
func (r *PostgresFriendshipRepository) AcceptRequest(ctx context.Context, senderID, recipientID uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := requirePair(tx, senderID, recipientID); err != nil {
			return err
		}

		now := time.Now().UTC()
		rows := []user.Friendship{
			{UserID: senderID, FriendID: recipientID, CreatedAt: now},
			{UserID: recipientID, FriendID: senderID, CreatedAt: now},
		}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&rows).Error; err != nil {
			return fmt.Errorf("insert friendship: %w", err)
		}

		err := tx.Where("(sender_id = ? AND recipient_id = ?) OR (sender_id = ? AND recipient_id = ?)",
			senderID, recipientID, recipientID, senderID).
			Delete(&user.FriendRequest{}).Error
		if err != nil {
			return fmt.Errorf("clear friend requests: %w", err)
		}
		return nil
	})
}

func (r *PostgresFriendshipRepository) GetIncomingRequests(ctx context.Context, userID uuid.UUID) ([]user.User, error) {
	return r.related(ctx, userID,
		"JOIN friend_requests fr ON fr.sender_id = users.id",
		"fr.recipient_id = ?", "fr.created_at ASC")
}

func (r *PostgresFriendshipRepository) GetOutgoingRequests(ctx context.Context, userID uuid.UUID) ([]user.User, error) {
	return r.related(ctx, userID,
		"JOIN friend_requests fr ON fr.recipient_id = users.id",
		"fr.sender_id = ?", "fr.created_at ASC")
}

func (r *PostgresFriendshipRepository) GetFriends(ctx context.Context, userID uuid.UUID) ([]user.User, error) {
	return r.related(ctx, userID,
		"JOIN friendships f ON f.friend_id = users.id",
		"f.user_id = ?", "f.created_at ASC")
}

func (r *PostgresFriendshipRepository) GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	if err := r.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	var ids []uuid.UUID
	err := primary(r.db.WithContext(ctx)).
		Model(&user.Friendship{}).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Pluck("friend_id", &ids).Error
	if err != nil {
		return nil, fmt.Errorf("list friend ids: %w", err)
	}
	return nonNil(ids), nil
}

func (r *PostgresFriendshipRepository) related(ctx context.Context, userID uuid.UUID, join, where, order string) ([]user.User, error) {
	if err := r.ensureUser(ctx, userID); err != nil {
		return nil, err
	}
	users := []user.User{}
	err := primary(r.db.WithContext(ctx)).
		Model(&user.User{}).
		Select("users.*").
		Joins(join).
		Where(where, userID).
		Order(order).
		Order("users.id").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list related users: %w", err)
	}
	return users, nil
}

func (r *PostgresFriendshipRepository) ensureUser(ctx context.Context, userID uuid.UUID) error {
	var count int64
	if err := primary(r.db.WithContext(ctx)).Model(&user.User{}).Where("id = ?", userID).Count(&count).Error; err != nil {
		return fmt.Errorf("lookup user: %w", err)
	}
	if count == 0 {
		return friendchat_errors.NotFound("user")
	}
	return nil
}
