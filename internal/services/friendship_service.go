package services

import (
	"context"

	"friendchat/internal/domain/user"
	"friendchat/internal/repository"
	friendchat_errors "friendchat/pkg/errors"
	"friendchat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type FriendshipService struct {
	repo  repository.FriendshipRepository
	cache ProfileCache
	log   *logger.Logger
}

// NewFriendshipService builds the service. cache may be nil.
func NewFriendshipService(repo repository.FriendshipRepository, cache ProfileCache, log *logger.Logger) *FriendshipService {
	return &FriendshipService{repo: repo, cache: cache, log: log}
}

// SendRequest records a pending request from fromID to toID. Sending the
// same request twice is a no-op.
func (s *FriendshipService) SendRequest(ctx context.Context, fromID, toID uuid.UUID) error {
	if fromID == toID {
		return friendchat_errors.Invalid("cannot send a friend request to yourself")
	}
	if err := s.repo.CreateRequest(ctx, fromID, toID); err != nil {
		return err
	}
	s.invalidate(ctx, fromID, toID)
	s.log.Info(ctx, "friend request sent",
		zap.String("sender_id", fromID.String()),
		zap.String("recipient_id", toID.String()))
	return nil
}

// Accept makes both users friends and removes the pending requests
// between them.
func (s *FriendshipService) Accept(ctx context.Context, senderID, recipientID uuid.UUID) error {
	if senderID == recipientID {
		return friendchat_errors.Invalid("cannot befriend yourself")
	}
	if err := s.repo.AcceptRequest(ctx, senderID, recipientID); err != nil {
		return err
	}
	s.invalidate(ctx, senderID, recipientID)
	s.log.Info(ctx, "friend request accepted",
		zap.String("sender_id", senderID.String()),
		zap.String("recipient_id", recipientID.String()))
	return nil
}

func (s *FriendshipService) ListIncoming(ctx context.Context, userID uuid.UUID) ([]user.Summary, error) {
	return summaries(s.repo.GetIncomingRequests(ctx, userID))
}

func (s *FriendshipService) ListOutgoing(ctx context.Context, userID uuid.UUID) ([]user.Summary, error) {
	return summaries(s.repo.GetOutgoingRequests(ctx, userID))
}

func (s *FriendshipService) ListFriends(ctx context.Context, userID uuid.UUID) ([]user.Summary, error) {
	return summaries(s.repo.GetFriends(ctx, userID))
}

func (s *FriendshipService) ListFriendIDs(ctx context.Context, userID uuid.UUID) ([]uuid.UUID, error) {
	return s.repo.GetFriendIDs(ctx, userID)
}

// invalidate drops cached profiles. A failure only costs staleness until
// the TTL runs out, so it is logged and swallowed.
func (s *FriendshipService) invalidate(ctx context.Context, ids ...uuid.UUID) {
	if s.cache == nil {
		return
	}
	if err := s.cache.InvalidateUsers(ctx, ids...); err != nil {
		s.log.Error(ctx, "profile cache invalidation failed", zap.Error(err))
	}
}

func summaries(users []user.User, err error) ([]user.Summary, error) {
	if err != nil {
		return nil, err
	}
	out := make([]user.Summary, len(users))
	for i, u := range users {
		out[i] = u.Summary()
	}
	return out, nil
}
