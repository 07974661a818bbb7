package repository

import (
	"errors"
	"strings"

	friendchat_errors "friendchat/pkg/errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/plugin/dbresolver"
)

// primary pins a read to the primary connection so it sees writes the
// caller has just committed. Without registered replicas it is a no-op.
// The result is a new session and may be reused for several queries.
func primary(db *gorm.DB) *gorm.DB {
	return db.Clauses(dbresolver.Write).Session(&gorm.Session{})
}

func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	// sqlite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// lockUsers returns which of ids exist. On Postgres the matching rows are
// locked FOR UPDATE in id order for the rest of the transaction, which
// serializes concurrent mutations touching the same pair.
func lockUsers(tx *gorm.DB, ids ...uuid.UUID) ([]uuid.UUID, error) {
	q := tx.Table("users").Where("id IN ?", ids).Order("id")
	if tx.Dialector.Name() == "postgres" {
		q = q.Clauses(clause.Locking{Strength: "UPDATE"})
	}
	var found []uuid.UUID
	if err := q.Pluck("id", &found).Error; err != nil {
		return nil, err
	}
	return found, nil
}

func requirePair(tx *gorm.DB, a, b uuid.UUID) error {
	found, err := lockUsers(tx, a, b)
	if err != nil {
		return err
	}
	want := 2
	if a == b {
		want = 1
	}
	if len(found) != want {
		return friendchat_errors.NotFound("user")
	}
	return nil
}

func nonNil(ids []uuid.UUID) []uuid.UUID {
	if ids == nil {
		return []uuid.UUID{}
	}
	return ids
}
