package prayer

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustCreate(t *testing.T, s Store, p Prayer) Prayer {
	t.Helper()
	created, err := s.Create(context.Background(), p)
	require.NoError(t, err)
	return created
}

func TestMemoryStoreCreateAndGet(t *testing.T) {
	s := NewMemoryStore(nil)

	created := mustCreate(t, s, Prayer{Title: "Title", Body: "Body"})
	assert.NotZero(t, created.ID)
	assert.False(t, created.CreatedAt.IsZero())
	assert.Equal(t, ScopeCommunity, created.VisibilityScope)
	assert.Equal(t, StatusActive, created.Status)
	assert.Equal(t, ModerationPending, created.ModerationStatus)

	got, err := s.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, got)

	_, err = s.GetByID(context.Background(), 9999)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreSeedIDs(t *testing.T) {
	s := NewMemoryStore([]Prayer{
		{ID: 5, Title: "Seeded", Body: "Body"},
		{Title: "Unnumbered", Body: "Body"},
	})

	created := mustCreate(t, s, Prayer{Title: "New", Body: "Body"})
	assert.Greater(t, created.ID, int64(5), "new ids never collide with seeded ids")
}

func TestMemoryStoreListNewestFirst(t *testing.T) {
	s := NewMemoryStore(nil)
	var ids []int64
	for i := 0; i < 5; i++ {
		created := mustCreate(t, s, Prayer{Title: fmt.Sprintf("Prayer %d", i), Body: "Body"})
		ids = append(ids, created.ID)
	}

	listed, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)
	require.Len(t, listed, 5)
	for i, p := range listed {
		// Identical timestamps fall back to id descending, so insertion
		// order is always reversed.
		assert.Equal(t, ids[len(ids)-1-i], p.ID)
	}
}

func TestMemoryStorePaginationIsContiguous(t *testing.T) {
	s := NewMemoryStore(nil)
	for i := 0; i < 7; i++ {
		mustCreate(t, s, Prayer{Title: fmt.Sprintf("Prayer %d", i), Body: "Body"})
	}

	var pages [][]Prayer
	for offset := 0; offset < 7; offset += 3 {
		page, err := s.List(context.Background(), Filter{Limit: 3, Offset: offset})
		require.NoError(t, err)
		pages = append(pages, page)
	}

	seen := map[int64]bool{}
	total := 0
	for _, page := range pages {
		for _, p := range page {
			assert.False(t, seen[p.ID], "page union must not duplicate")
			seen[p.ID] = true
			total++
		}
	}
	assert.Equal(t, 7, total, "page union must not leave gaps")

	// Reads do not mutate: the same page twice is identical.
	first, err := s.List(context.Background(), Filter{Limit: 3})
	require.NoError(t, err)
	second, err := s.List(context.Background(), Filter{Limit: 3})
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestMemoryStoreFilters(t *testing.T) {
	s := NewMemoryStore(nil)
	churchID := int64(1)
	otherChurch := int64(2)
	groupID := int64(3)

	mustCreate(t, s, Prayer{Title: "A", Body: "B", ChurchID: &churchID, IsPublic: true, ModerationStatus: ModerationApproved})
	mustCreate(t, s, Prayer{Title: "B", Body: "B", ChurchID: &otherChurch, IsPublic: true, ModerationStatus: ModerationApproved})
	mustCreate(t, s, Prayer{Title: "C", Body: "B", ChurchID: &churchID, GroupID: &groupID, IsPublic: true, ModerationStatus: ModerationFlagged})
	mustCreate(t, s, Prayer{Title: "D", Body: "B", IsPublic: false, ModerationStatus: ModerationApproved})
	mustCreate(t, s, Prayer{Title: "E", Body: "B", IsPublic: true, Status: StatusResolved, ModerationStatus: ModerationApproved})

	byChurch, err := s.List(context.Background(), Filter{ChurchID: &churchID})
	require.NoError(t, err)
	assert.Len(t, byChurch, 2)

	byGroup, err := s.List(context.Background(), Filter{GroupID: &groupID})
	require.NoError(t, err)
	assert.Len(t, byGroup, 1)

	publicApproved, err := s.List(context.Background(), Filter{PublicOnly: true, ModerationStatus: ModerationApproved})
	require.NoError(t, err)
	assert.Len(t, publicApproved, 3)

	resolved, err := s.List(context.Background(), Filter{Status: StatusResolved})
	require.NoError(t, err)
	assert.Len(t, resolved, 1)
}

func TestMemoryStoreNegativeOffset(t *testing.T) {
	s := NewMemoryStore(nil)
	for i := 0; i < 3; i++ {
		mustCreate(t, s, Prayer{Title: fmt.Sprintf("Prayer %d", i), Body: "Body"})
	}

	fromStart, err := s.List(context.Background(), Filter{})
	require.NoError(t, err)

	listed, err := s.List(context.Background(), Filter{Offset: -1})
	require.NoError(t, err)
	assert.Equal(t, fromStart, listed, "negative offsets read from the start")

	assert.Equal(t, 0, Filter{Offset: -5}.NormalizedOffset())
	assert.Equal(t, 7, Filter{Offset: 7}.NormalizedOffset())
}

func TestMemoryStoreConcurrentCreateIDs(t *testing.T) {
	s := NewMemoryStore(nil)
	const n = 64

	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			created, err := s.Create(context.Background(), Prayer{Title: "Concurrent", Body: "Body"})
			if assert.NoError(t, err) {
				ids <- created.ID
			}
		}()
	}
	wg.Wait()
	close(ids)

	seen := map[int64]bool{}
	var max int64
	for id := range ids {
		assert.False(t, seen[id], "ids must be unique")
		seen[id] = true
		if id > max {
			max = id
		}
	}
	require.Len(t, seen, n)
	assert.EqualValues(t, n, max, "ids increase monotonically with no gaps")
}

func TestMemoryStoreLimitCap(t *testing.T) {
	assert.Equal(t, DefaultLimit, Filter{}.NormalizedLimit())
	assert.Equal(t, DefaultLimit, Filter{Limit: -1}.NormalizedLimit())
	assert.Equal(t, MaxLimit, Filter{Limit: 5000}.NormalizedLimit())
	assert.Equal(t, 10, Filter{Limit: 10}.NormalizedLimit())
}

func TestMemoryStoreUpdateModeration(t *testing.T) {
	s := NewMemoryStore(nil)
	created := mustCreate(t, s, Prayer{Title: "Title", Body: "Body"})

	notes := "reviewed by hand"
	updated, err := s.UpdateModeration(context.Background(), created.ID, ModerationApproved, 42, &notes)
	require.NoError(t, err)
	assert.Equal(t, ModerationApproved, updated.ModerationStatus)
	require.NotNil(t, updated.ModeratedBy)
	assert.Equal(t, int64(42), *updated.ModeratedBy)
	require.NotNil(t, updated.ModeratedAt)
	require.NotNil(t, updated.ModerationNotes)
	assert.Equal(t, notes, *updated.ModerationNotes)

	_, err = s.UpdateModeration(context.Background(), 9999, ModerationApproved, 42, nil)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoryStoreResponses(t *testing.T) {
	s := NewMemoryStore(nil)
	created := mustCreate(t, s, Prayer{Title: "Title", Body: "Body"})

	for i := 0; i < 3; i++ {
		_, err := s.CreateResponse(context.Background(), Response{
			PrayerID: created.ID,
			Body:     fmt.Sprintf("Response %d", i),
		})
		require.NoError(t, err)
	}

	responses, err := s.ListResponses(context.Background(), created.ID)
	require.NoError(t, err)
	require.Len(t, responses, 3)
	for i, r := range responses {
		assert.Equal(t, fmt.Sprintf("Response %d", i), r.Body, "responses list oldest first")
	}

	none, err := s.ListResponses(context.Background(), 9999)
	require.NoError(t, err)
	assert.Empty(t, none)
}
