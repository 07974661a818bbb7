package services

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"friendchat/config"
	"friendchat/internal/domain/user"
	"friendchat/internal/repository"
	"friendchat/pkg/logger"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

type testEnv struct {
	users       repository.UserRepository
	auth        *AuthService
	directory   *UserService
	friendships *FriendshipService
	messages    *MessageService
	cache       *memoryCache
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         gormlogger.Default.LogMode(gormlogger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, repository.InitSchema(db))

	log := logger.Nop()
	users := repository.NewUserRepository(db)
	cache := newMemoryCache()
	cfg := &config.Config{JWTSecret: "test-secret", JWTExpiryMin: 5}

	return &testEnv{
		users:       users,
		auth:        NewAuthService(users, cfg, log).WithHashCost(bcrypt.MinCost),
		directory:   NewUserService(users, cache, log),
		friendships: NewFriendshipService(repository.NewFriendshipRepository(db), cache, log),
		messages:    NewMessageService(repository.NewMessageRepository(db), users, log),
		cache:       cache,
	}
}

func (e *testEnv) register(t *testing.T, name string) uuid.UUID {
	t.Helper()
	id, err := e.auth.Register(context.Background(), RegisterInput{
		Name:     name,
		Email:    name + "@x.com",
		Password: "p",
		Image:    "https://img/" + name,
	})
	require.NoError(t, err)
	return id
}

// memoryCache is a ProfileCache backed by a map.
type memoryCache struct {
	mu          sync.Mutex
	profiles    map[uuid.UUID]user.Profile
	versions    map[uuid.UUID]int64
	invalidated []uuid.UUID
	hits        int
}

func newMemoryCache() *memoryCache {
	return &memoryCache{profiles: map[uuid.UUID]user.Profile{}, versions: map[uuid.UUID]int64{}}
}

func (m *memoryCache) GetProfile(_ context.Context, id uuid.UUID) (user.Profile, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, ok := m.profiles[id]
	if ok {
		m.hits++
	}
	return p, ok, nil
}

func (m *memoryCache) GetProfiles(_ context.Context, ids []uuid.UUID) (map[uuid.UUID]user.Profile, []uuid.UUID, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	hits := map[uuid.UUID]user.Profile{}
	var misses []uuid.UUID
	for _, id := range ids {
		if p, ok := m.profiles[id]; ok {
			hits[id] = p
			m.hits++
		} else {
			misses = append(misses, id)
		}
	}
	return hits, misses, nil
}

func (m *memoryCache) ProfileVersion(_ context.Context, id uuid.UUID) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.versions[id], nil
}

func (m *memoryCache) SetProfile(_ context.Context, p user.Profile, version int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.versions[p.ID] == version {
		m.profiles[p.ID] = p
	}
	return nil
}

func (m *memoryCache) InvalidateUsers(_ context.Context, ids ...uuid.UUID) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, id := range ids {
		delete(m.profiles, id)
		m.versions[id]++
		m.invalidated = append(m.invalidated, id)
	}
	return nil
}
