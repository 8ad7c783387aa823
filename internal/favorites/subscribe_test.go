package favorites

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/runnerr0/homehub/internal/storage"
)

func TestSubscribe_NotifiedAfterEachMutation(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryKV())

	calls := 0
	s.Subscribe(func() { calls++ })

	_, err := s.Add(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)

	_, err = s.Remove(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, 2, calls)

	require.NoError(t, s.Clear(ctx))
	assert.Equal(t, 3, calls)
}

func TestSubscribe_NotNotifiedOnFailure(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryKV())
	_, err := s.Add(ctx, "p1")
	require.NoError(t, err)

	calls := 0
	s.Subscribe(func() { calls++ })

	_, err = s.Add(ctx, "p1")
	assert.ErrorIs(t, err, ErrDuplicateFavorite)
	_, err = s.Remove(ctx, "nope")
	assert.ErrorIs(t, err, ErrFavoriteNotFound)

	assert.Equal(t, 0, calls)
}

func TestSubscribe_OrderAndUnsubscribe(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryKV())

	var order []string
	s.Subscribe(func() { order = append(order, "first") })
	unsub := s.Subscribe(func() { order = append(order, "second") })
	s.Subscribe(func() { order = append(order, "third") })

	_, err := s.Add(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second", "third"}, order)

	unsub()
	unsub() // idempotent
	order = nil

	_, err = s.Add(ctx, "p2")
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "third"}, order)
}

func TestSubscribe_ListenerSeesCommittedState(t *testing.T) {
	ctx := context.Background()
	s := New(storage.NewMemoryKV())

	var seen []string
	s.Subscribe(func() {
		// Reading from inside a listener must not deadlock.
		seen = s.ListIDs(ctx)
	})

	_, err := s.Add(ctx, "p1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, seen)
}
