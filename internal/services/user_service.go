package services

import (
	"context"

	"friendchat/internal/domain/user"
	"friendchat/internal/repository"
	"friendchat/pkg/logger"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserService struct {
	repo  repository.UserRepository
	cache ProfileCache
	log   *logger.Logger
}

// NewUserService builds the user directory. cache may be nil.
func NewUserService(repo repository.UserRepository, cache ProfileCache, log *logger.Logger) *UserService {
	return &UserService{repo: repo, cache: cache, log: log}
}

// ListOthers returns every user except excludingID, with relationship sets.
// Relations come from the cache where possible.
func (s *UserService) ListOthers(ctx context.Context, excludingID uuid.UUID) ([]user.Profile, error) {
	users, err := s.repo.GetAllUsersExcept(ctx, excludingID)
	if err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, len(users))
	for i, u := range users {
		ids[i] = u.ID
	}

	cached := map[uuid.UUID]user.Profile{}
	misses := ids
	if s.cache != nil && len(ids) > 0 {
		hits, rest, err := s.cache.GetProfiles(ctx, ids)
		if err != nil {
			s.log.Error(ctx, "profile cache read failed", zap.Error(err))
		} else {
			cached, misses = hits, rest
		}
	}

	relations, err := s.repo.GetRelations(ctx, misses)
	if err != nil {
		return nil, err
	}
	for id, p := range cached {
		relations[id] = p.Relations
	}

	profiles := make([]user.Profile, len(users))
	for i, u := range users {
		profiles[i] = user.Profile{User: u, Relations: relations[u.ID]}
	}
	return profiles, nil
}

func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, error) {
	var version int64
	cacheable := false
	if s.cache != nil {
		p, ok, err := s.cache.GetProfile(ctx, userID)
		if err != nil {
			s.log.Error(ctx, "profile cache read failed", zap.Error(err))
		} else if ok {
			return p, nil
		}
		if version, err = s.cache.ProfileVersion(ctx, userID); err != nil {
			s.log.Error(ctx, "profile cache version read failed", zap.Error(err))
		} else {
			cacheable = true
		}
	}

	u, err := s.repo.GetUserByID(ctx, userID)
	if err != nil {
		return user.Profile{}, err
	}
	relations, err := s.repo.GetRelations(ctx, []uuid.UUID{userID})
	if err != nil {
		return user.Profile{}, err
	}
	p := user.Profile{User: u, Relations: relations[userID]}

	if cacheable {
		if err := s.cache.SetProfile(ctx, p, version); err != nil {
			s.log.Error(ctx, "profile cache write failed", zap.Error(err))
		}
	}
	return p, nil
}
