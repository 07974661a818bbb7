package services

import (
	"context"

	"friendchat/pkg/logger"

	"github.com/google/uuid"
)

type ctxKey string

var userIDKey ctxKey = "user_id"

// WithUserID stores the authenticated user in ctx, both for services and
// for the logger.
func WithUserID(ctx context.Context, userID uuid.UUID) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, logger.UserIdKey, userID.String())
}

func UserIDFromContext(ctx context.Context) (uuid.UUID, bool) {
	value := ctx.Value(userIDKey)
	if value == nil {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}
