package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"friendchat/internal/domain/message"
	friendchat_errors "friendchat/pkg/errors"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSendTextRoundTrip(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	before := time.Now().UTC()
	id, err := env.messages.Send(ctx, SendMessageInput{SenderID: alice, RecipientID: bob, Type: message.TypeText, Body: "hi"})
	require.NoError(t, err)

	msgs, err := env.messages.ListBetween(ctx, bob, alice)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	m := msgs[0]
	assert.Equal(t, id, m.ID)
	assert.Equal(t, "hi", m.Body)
	assert.Equal(t, message.TypeText, m.Type)
	assert.Equal(t, message.Sender{ID: alice, Name: "alice"}, m.Sender)
	assert.WithinDuration(t, before, m.CreatedAt, 5*time.Second)
}

func TestSendImage(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	_, err := env.messages.Send(ctx, SendMessageInput{
		SenderID: alice, RecipientID: bob, Type: message.TypeImage,
		Body: "ignored", ImageRef: "files/1-ab-cat.png",
	})
	require.NoError(t, err)

	msgs, err := env.messages.ListBetween(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, "files/1-ab-cat.png", msgs[0].ImageRef)
	assert.Empty(t, msgs[0].Body)
}

func TestSendValidation(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	for name, in := range map[string]SendMessageInput{
		"image without ref": {SenderID: alice, RecipientID: bob, Type: message.TypeImage},
		"blank text":        {SenderID: alice, RecipientID: bob, Type: message.TypeText, Body: "  "},
		"unknown type":      {SenderID: alice, RecipientID: bob, Type: "video", Body: "x"},
	} {
		_, err := env.messages.Send(ctx, in)
		assert.ErrorIs(t, err, friendchat_errors.ErrInvalidInput, name)
	}

	_, err := env.messages.Send(ctx, SendMessageInput{SenderID: alice, RecipientID: uuid.New(), Type: message.TypeText, Body: "x"})
	assert.ErrorIs(t, err, friendchat_errors.ErrNotFound)
}

func TestDeleteMany(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	keep, err := env.messages.Send(ctx, SendMessageInput{SenderID: alice, RecipientID: bob, Type: message.TypeText, Body: "keep"})
	require.NoError(t, err)
	drop, err := env.messages.Send(ctx, SendMessageInput{SenderID: bob, RecipientID: alice, Type: message.TypeText, Body: "drop"})
	require.NoError(t, err)

	deleted, err := env.messages.DeleteMany(ctx, []uuid.UUID{drop, uuid.New()})
	require.NoError(t, err)
	assert.Equal(t, int64(1), deleted)

	msgs, err := env.messages.ListBetween(ctx, alice, bob)
	require.NoError(t, err)
	require.Len(t, msgs, 1)
	assert.Equal(t, keep, msgs[0].ID)

	deleted, err = env.messages.DeleteMany(ctx, []uuid.UUID{})
	require.NoError(t, err)
	assert.Zero(t, deleted)
}

func TestSameTimestampKeepsSendOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	alice := env.register(t, "alice")
	bob := env.register(t, "bob")

	fixed := time.Now().UTC().Truncate(time.Millisecond)
	env.messages.now = func() time.Time { return fixed }

	var want []string
	for i := 0; i < 8; i++ {
		body := fmt.Sprintf("m%d", i)
		want = append(want, body)
		from, to := alice, bob
		if i%2 == 1 {
			from, to = bob, alice
		}
		_, err := env.messages.Send(ctx, SendMessageInput{SenderID: from, RecipientID: to, Type: message.TypeText, Body: body})
		require.NoError(t, err)
	}

	msgs, err := env.messages.ListBetween(ctx, alice, bob)
	require.NoError(t, err)
	got := make([]string, len(msgs))
	for i, m := range msgs {
		assert.True(t, fixed.Equal(m.CreatedAt))
		got[i] = m.Body
	}
	assert.Equal(t, want, got)
}
