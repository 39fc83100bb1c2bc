package notification

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStoreAppendAndList(t *testing.T) {
	s := NewMemoryStore()

	for i := 0; i < 3; i++ {
		created, err := s.Create(context.Background(), Event{
			Kind:    KindItemFlagged,
			Title:   fmt.Sprintf("Event %d", i),
			Message: "message",
			Meta:    map[string]any{"prayer_id": int64(i)},
		})
		require.NoError(t, err)
		assert.NotZero(t, created.ID)
		assert.False(t, created.CreatedAt.IsZero())
	}

	events, err := s.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "Event 2", events[0].Title, "newest first")
	assert.Equal(t, "Event 0", events[2].Title)
}

func TestMemoryStoreListLimit(t *testing.T) {
	s := NewMemoryStore()
	for i := 0; i < 5; i++ {
		_, err := s.Create(context.Background(), Event{Kind: KindStatusChanged, Title: "t", Message: "m"})
		require.NoError(t, err)
	}

	events, err := s.List(context.Background(), 2)
	require.NoError(t, err)
	assert.Len(t, events, 2)

	// Zero falls back to the default, which exceeds what is stored.
	events, err = s.List(context.Background(), 0)
	require.NoError(t, err)
	assert.Len(t, events, 5)
}

func TestServiceRecord(t *testing.T) {
	store := NewMemoryStore()
	svc := NewService(store)

	event, err := svc.Record(context.Background(), KindMembershipChanged, "Membership changed", "User 1 joined.", map[string]any{"user_id": int64(1)})
	require.NoError(t, err)
	assert.Equal(t, KindMembershipChanged, event.Kind)

	listed, err := svc.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, int64(1), listed[0].Meta["user_id"])
}

func TestNormalizeLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, normalizeLimit(0))
	assert.Equal(t, DefaultLimit, normalizeLimit(-5))
	assert.Equal(t, MaxLimit, normalizeLimit(1000))
	assert.Equal(t, 7, normalizeLimit(7))
}
