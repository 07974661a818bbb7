package services

import (
	"context"

	"friendchat/internal/domain/user"

	"github.com/google/uuid"
)

// ProfileCache is an optional read-through cache for user profiles.
// SetProfile must drop the write when the user was invalidated after
// ProfileVersion returned version.
type ProfileCache interface {
	GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, bool, error)
	GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]user.Profile, []uuid.UUID, error)
	ProfileVersion(ctx context.Context, userID uuid.UUID) (int64, error)
	SetProfile(ctx context.Context, p user.Profile, version int64) error
	InvalidateUsers(ctx context.Context, userIDs ...uuid.UUID) error
}
