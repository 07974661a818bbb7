package repository

import (
	"context"

	"github.com/google/uuid"

	"friendchat/internal/domain/message"
	"friendchat/internal/domain/user"
)

type UserRepository interface {
	Create(ctx context.Context, u *user.User) error
	GetUserByID(ctx context.Context, id uuid.UUID) (user.User, error)
	GetUserByEmail(ctx context.Context, email string) (user.User, error)
	GetAllUsersExcept(ctx context.Context, id uuid.UUID) ([]user.User, error)
	CountExisting(ctx context.Context, ids ...uuid.UUID) (int64, error)

	// GetRelations returns the friend and request sets of every given user.
	// Users without any relation are present with empty sets.
	GetRelations(ctx context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Relations, error)
}

type FriendshipRepository interface {
	CreateRequest(ctx context.Context, senderID, recipientID uuid.UUID) error
	AcceptRequest(ctx context.Context, senderID, recipientID uuid.UUID) error

	GetIncomingRequests(ctx context.Context, userID uuid.UUID) ([]user.User, error)
	GetOutgoingRequests(ctx context.Context, userID uuid.UUID) ([]user.User, error)
	GetFriends(ctx context.Context, userID uuid.UUID) ([]user.User, error)
	GetFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error)
}

type MessageRepository interface {
	Create(ctx context.Context, m *message.Message) error
	GetMessagesBetween(ctx context.Context, userA, userB uuid.UUID) ([]message.WithSender, error)
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int64, error)
}
