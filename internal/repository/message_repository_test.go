package repository

import (
	"context"
	"testing"
	"time"

	"friendchat/internal/domain/message"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMessage(from, to uuid.UUID, body string, at time.Time) *message.Message {
	return &message.Message{
		ID:          uuid.New(),
		SenderID:    from,
		RecipientID: to,
		Type:        message.TypeText,
		Body:        body,
		CreatedAt:   at,
	}
}

func TestMessageRepositoryConversationOrder(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewMessageRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")
	carol := createUser(t, users, "carol")

	base := time.Now().UTC().Add(-time.Hour)
	// inserted out of order on purpose
	require.NoError(t, repo.Create(ctx, newMessage(bob.ID, alice.ID, "second", base.Add(2*time.Second))))
	require.NoError(t, repo.Create(ctx, newMessage(alice.ID, bob.ID, "first", base.Add(time.Second))))
	require.NoError(t, repo.Create(ctx, newMessage(alice.ID, bob.ID, "third", base.Add(3*time.Second))))
	require.NoError(t, repo.Create(ctx, newMessage(alice.ID, carol.ID, "elsewhere", base)))

	msgs, err := repo.GetMessagesBetween(ctx, bob.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 3)
	assert.Equal(t, "first", msgs[0].Body)
	assert.Equal(t, "second", msgs[1].Body)
	assert.Equal(t, "third", msgs[2].Body)

	assert.Equal(t, message.Sender{ID: alice.ID, Name: "alice"}, msgs[0].Sender)
	assert.Equal(t, message.Sender{ID: bob.ID, Name: "bob"}, msgs[1].Sender)
	assert.Equal(t, bob.ID, msgs[0].RecipientID)
}

func TestMessageRepositoryDeleteMany(t *testing.T) {
	ctx := context.Background()
	db := newTestDB(t)
	users := NewUserRepository(db)
	repo := NewMessageRepository(db)
	alice := createUser(t, users, "alice")
	bob := createUser(t, users, "bob")

	now := time.Now().UTC()
	m1 := newMessage(alice.ID, bob.ID, "one", now)
	m2 := newMessage(alice.ID, bob.ID, "two", now.Add(time.Second))
	m3 := newMessage(bob.ID, alice.ID, "three", now.Add(2*time.Second))
	for _, m := range []*message.Message{m1, m2, m3} {
		require.NoError(t, repo.Create(ctx, m))
	}

	deleted, err := repo.DeleteMany(ctx, []uuid.UUID{m1.ID, m3.ID, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(2), deleted)

	msgs, err := repo.GetMessagesBetween(ctx, alice.ID, bob.ID)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, m2.ID, msgs[0].ID)

	deleted, err = repo.DeleteMany(ctx, nil)
	require.NoError(t, err)
	assert.Zero(t, deleted)
}
