package repository

import (
	"context"
	"errors"
	"fmt"

	"friendchat/internal/domain/user"
	friendchat_errors "friendchat/pkg/errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type PostgresUserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &PostgresUserRepository{db: db}
}

func (r *PostgresUserRepository) Create(ctx context.Context, u *user.User) error {
	res := r.db.WithContext(ctx).Create(u)
	if res.Error != nil {
		if isUniqueViolation(res.Error) {
			return friendchat_errors.ErrAlreadyExists
		}
		return fmt.Errorf("create user: %w", res.Error)
	}
	return nil
}

func (r *PostgresUserRepository) GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error) {
	var u user.User
	err := primary(r.db.WithContext(ctx)).Where("id = ?", id).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, friendchat_errors.NotFound("user")
		}
		return user.User{}, fmt.Errorf("get user: %w", err)
	}
	return u, nil
}

func (r *PostgresUserRepository) GetUserByEmail(ctx context.Context, email string) (user.User, error) {
	var u user.User
	err := primary(r.db.WithContext(ctx)).Where("email = ?", email).First(&u).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return user.User{}, friendchat_errors.NotFound("user")
		}
		return user.User{}, fmt.Errorf("get user by email: %w", err)
	}
	return u, nil
}

// GetAllUsersExcept is the only user read allowed on a read replica; the
// directory tolerates replication lag.
func (r *PostgresUserRepository) GetAllUsersExcept(ctx context.Context, id uuid.UUID) ([]user.User, error) {
	var users []user.User
	err := r.db.WithContext(ctx).
		Where("id <> ?", id).
		Order("created_at ASC").
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *PostgresUserRepository) CountExisting(ctx context.Context, ids ...uuid.UUID) (int64, error) {
	var count int64
	err := primary(r.db.WithContext(ctx)).Model(&user.User{}).Where("id IN ?", ids).Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}
	return count, nil
}

func (r *PostgresUserRepository) GetRelations(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Relations, error) {
	out := make(map[uuid.UUID]user.Relations, len(ids))
	if len(ids) == 0 {
		return out, nil
	}
	for _, id := range ids {
		out[id] = user.Relations{Friends: []uuid.UUID{}, Incoming: []uuid.UUID{}, Outgoing: []uuid.UUID{}}
	}

	db := primary(r.db.WithContext(ctx))

	var friendships []user.Friendship
	if err := db.Where("user_id IN ?", ids).Order("created_at ASC").Find(&friendships).Error; err != nil {
		return nil, fmt.Errorf("load friendships: %w", err)
	}
	for _, f := range friendships {
		rel := out[f.UserID]
		rel.Friends = append(rel.Friends, f.FriendID)
		out[f.UserID] = rel
	}

	var requests []user.FriendRequest
	if err := db.Where("recipient_id IN ? OR sender_id IN ?", ids, ids).Order("created_at ASC").Find(&requests).Error; err != nil {
		return nil, fmt.Errorf("load friend requests: %w", err)
	}
	for _, fr := range requests {
		if rel, ok := out[fr.RecipientID]; ok {
			rel.Incoming = append(rel.Incoming, fr.SenderID)
			out[fr.RecipientID] = rel
		}
		if rel, ok := out[fr.SenderID]; ok {
			rel.Outgoing = append(rel.Outgoing, fr.RecipientID)
			out[fr.SenderID] = rel
		}
	}

	return out, nil
}
