package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"friendchat/internal/domain/user"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	"gorm.io/plugin/dbresolver"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	return openMemoryDB(t, fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()))
}

// newLaggingReplicaDB returns a primary with one registered read replica
// that never receives any rows, the worst case of replication lag.
func newLaggingReplicaDB(t *testing.T) *gorm.DB {
	t.Helper()
	replicaDSN := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	openMemoryDB(t, replicaDSN)

	db := newTestDB(t)
	require.NoError(t, db.Use(dbresolver.Register(dbresolver.Config{
		Replicas: []gorm.Dialector{sqlite.Open(replicaDSN)},
	})))
	return db
}

func openMemoryDB(t *testing.T, dsn string) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, InitSchema(db))
	return db
}

func createUser(t *testing.T, repo UserRepository, name string) user.User {
	t.Helper()
	u := user.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        name + "@x.com",
		PasswordHash: "hash",
		Image:        "https://img/" + name,
		CreatedAt:    time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), &u))
	return u
}
