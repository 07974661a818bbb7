package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"friendchat/internal/domain/user"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

// Cache key patterns:
// - user:{user_id}         - profile cache, user row plus relationship sets
// - user:{user_id}:version - bumped on every invalidation, never expires

const DefaultProfileTTL = 5 * time.Minute

// ProfileCache stores user profiles in Redis. Entries are dropped whenever
// a relationship of the user changes, the TTL only bounds staleness of
// anything that slips past invalidation.
type ProfileCache struct {
	client *goredis.Client
	ttl    time.Duration
}

func NewProfileCache(client *goredis.Client, ttl time.Duration) *ProfileCache {
	if ttl <= 0 {
		ttl = DefaultProfileTTL
	}
	return &ProfileCache{client: client, ttl: ttl}
}

// cachedProfile never carries the password hash.
type cachedProfile struct {
	ID        uuid.UUID   `json:"id"`
	Name      string      `json:"name"`
	Email     string      `json:"email"`
	Image     string      `json:"image,omitempty"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
	Friends   []uuid.UUID `json:"friends"`
	Incoming  []uuid.UUID `json:"incoming"`
	Outgoing  []uuid.UUID `json:"outgoing"`
}

func profileKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s", userID.String())
}

func versionKey(userID uuid.UUID) string {
	return fmt.Sprintf("user:%s:version", userID.String())
}

func encodeProfile(p user.Profile) ([]byte, error) {
	return json.Marshal(cachedProfile{
		ID:        p.ID,
		Name:      p.Name,
		Email:     p.Email,
		Image:     p.Image,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		Friends:   p.Friends,
		Incoming:  p.Incoming,
		Outgoing:  p.Outgoing,
	})
}

func decodeProfile(data []byte) (user.Profile, error) {
	var c cachedProfile
	if err := json.Unmarshal(data, &c); err != nil {
		return user.Profile{}, err
	}
	return user.Profile{
		User: user.User{
			ID:        c.ID,
			Name:      c.Name,
			Email:     c.Email,
			Image:     c.Image,
			CreatedAt: c.CreatedAt,
			UpdatedAt: c.UpdatedAt,
		},
		Relations: user.Relations{
			Friends:  orEmpty(c.Friends),
			Incoming: orEmpty(c.Incoming),
			Outgoing: orEmpty(c.Outgoing),
		},
	}, nil
}

func orEmpty(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}

// GetProfile returns the cached profile. ok is false on a cache miss.
func (c *ProfileCache) GetProfile(ctx context.Context, userID uuid.UUID) (user.Profile, bool, error) {
	data, err := c.client.Get(ctx, profileKey(userID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return user.Profile{}, false, nil
	}
	if err != nil {
		return user.Profile{}, false, err
	}
	p, err := decodeProfile(data)
	if err != nil {
		return user.Profile{}, false, err
	}
	return p, true, nil
}

// GetProfiles fetches several profiles in one pipeline and returns the
// hits along with the ids that still have to be loaded.
func (c *ProfileCache) GetProfiles(ctx context.Context, userIDs []uuid.UUID) (map[uuid.UUID]user.Profile, []uuid.UUID, error) {
	result := make(map[uuid.UUID]user.Profile, len(userIDs))
	var misses []uuid.UUID
	if len(userIDs) == 0 {
		return result, misses, nil
	}

	pipe := c.client.Pipeline()
	cmds := make([]*goredis.StringCmd, len(userIDs))
	for i, id := range userIDs {
		cmds[i] = pipe.Get(ctx, profileKey(id))
	}
	// per-command errors are inspected below
	_, _ = pipe.Exec(ctx)

	for i, cmd := range cmds {
		data, err := cmd.Bytes()
		if err != nil {
			misses = append(misses, userIDs[i])
			continue
		}
		p, err := decodeProfile(data)
		if err != nil {
			misses = append(misses, userIDs[i])
			continue
		}
		result[userIDs[i]] = p
	}
	return result, misses, nil
}

// ProfileVersion returns the invalidation counter of the user. Read it
// before loading the profile from the database and hand it to SetProfile.
func (c *ProfileCache) ProfileVersion(ctx context.Context, userID uuid.UUID) (int64, error) {
	v, err := c.client.Get(ctx, versionKey(userID)).Int64()
	if errors.Is(err, goredis.Nil) {
		return 0, nil
	}
	return v, err
}

// SetProfile stores p only if the user was not invalidated since version
// was read. A skipped write is not an error.
func (c *ProfileCache) SetProfile(ctx context.Context, p user.Profile, version int64) error {
	data, err := encodeProfile(p)
	if err != nil {
		return err
	}

	vkey := versionKey(p.ID)
	err = c.client.Watch(ctx, func(tx *goredis.Tx) error {
		current, err := tx.Get(ctx, vkey).Int64()
		if err != nil && !errors.Is(err, goredis.Nil) {
			return err
		}
		if current != version {
			return errStaleProfile
		}
		_, err = tx.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
			pipe.Set(ctx, profileKey(p.ID), data, c.ttl)
			return nil
		})
		return err
	}, vkey)
	if errors.Is(err, errStaleProfile) || errors.Is(err, goredis.TxFailedErr) {
		return nil
	}
	return err
}

var errStaleProfile = errors.New("profile changed while loading")

// InvalidateUsers drops the cached profiles and bumps their versions so
// in-flight loads do not write the old state back.
func (c *ProfileCache) InvalidateUsers(ctx context.Context, userIDs ...uuid.UUID) error {
	if len(userIDs) == 0 {
		return nil
	}
	_, err := c.client.TxPipelined(ctx, func(pipe goredis.Pipeliner) error {
		for _, id := range userIDs {
			pipe.Incr(ctx, versionKey(id))
			pipe.Del(ctx, profileKey(id))
		}
		return nil
	})
	return err
}
