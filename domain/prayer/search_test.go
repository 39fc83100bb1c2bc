package prayer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubMatcher struct {
	ids        []int64
	err        error
	candidates []Candidate
}

func (m *stubMatcher) Rank(_ context.Context, _ string, candidates []Candidate) ([]int64, error) {
	m.candidates = candidates
	if m.err != nil {
		return nil, m.err
	}
	return m.ids, nil
}

func searchFixture(t *testing.T) (Store, map[string]int64) {
	t.Helper()
	s := NewMemoryStore(nil)
	ids := map[string]int64{}
	items := []Prayer{
		{Title: "Healing for my mother", Body: "Recovering from surgery.", IsPublic: true, ModerationStatus: ModerationApproved, Categories: "Health & Healing"},
		{Title: "Job interview", Body: "Big interview on Friday.", IsPublic: true, ModerationStatus: ModerationApproved, Categories: "Financial & Work"},
		{Title: "Anxiety", Body: "Struggling with worry and stress.", IsPublic: true, ModerationStatus: ModerationApproved, Categories: "Mental Health"},
		{Title: "Hidden", Body: "Not public.", IsPublic: false, ModerationStatus: ModerationApproved},
		{Title: "Flagged", Body: "Awaiting review.", IsPublic: true, ModerationStatus: ModerationFlagged},
	}
	for _, p := range items {
		created, err := s.Create(context.Background(), p)
		require.NoError(t, err)
		ids[p.Title] = created.ID
	}
	return s, ids
}

func TestSearchUsesMatcherOrder(t *testing.T) {
	store, ids := searchFixture(t)
	matcher := &stubMatcher{ids: []int64{ids["Anxiety"], ids["Healing for my mother"]}}
	svc := NewSearchService(store, matcher)

	results, err := svc.Search(context.Background(), "worry", 10)
	require.NoError(t, err)

	require.Len(t, results, 2)
	assert.Equal(t, "Anxiety", results[0].Title, "matcher order is preserved")
	assert.Equal(t, "Healing for my mother", results[1].Title)
}

func TestSearchDropsUnknownIDs(t *testing.T) {
	store, ids := searchFixture(t)
	// The matcher echoes back the hidden and flagged ids plus a fabricated
	// one; none of them were candidates so none may appear.
	matcher := &stubMatcher{ids: []int64{ids["Hidden"], ids["Flagged"], 424242, ids["Job interview"]}}
	svc := NewSearchService(store, matcher)

	results, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)

	require.Len(t, results, 1)
	assert.Equal(t, "Job interview", results[0].Title)
}

func TestSearchOnlyOffersVisibleCandidates(t *testing.T) {
	store, _ := searchFixture(t)
	matcher := &stubMatcher{}
	svc := NewSearchService(store, matcher)

	_, err := svc.Search(context.Background(), "anything", 10)
	require.NoError(t, err)

	require.Len(t, matcher.candidates, 3, "hidden and non-approved items are never sent to the matcher")
	for _, c := range matcher.candidates {
		assert.NotEqual(t, "Hidden", c.Title)
		assert.NotEqual(t, "Flagged", c.Title)
	}
}

func TestSearchFallsBackOnMatcherError(t *testing.T) {
	store, _ := searchFixture(t)
	svc := NewSearchService(store, &stubMatcher{err: errors.New("unavailable")})

	results, err := svc.Search(context.Background(), "SURGERY", 10)
	require.NoError(t, err, "matcher failure never surfaces to the caller")

	require.Len(t, results, 1)
	assert.Equal(t, "Healing for my mother", results[0].Title, "substring match is case-insensitive")
}

func TestSearchWithoutMatcher(t *testing.T) {
	store, _ := searchFixture(t)
	svc := NewSearchService(store, nil)

	results, err := svc.Search(context.Background(), "interview", 10)
	require.NoError(t, err)
	require.Len(t, results, 1)
	assert.Equal(t, "Job interview", results[0].Title)

	none, err := svc.Search(context.Background(), "no such phrase", 10)
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestSearchRespectsLimit(t *testing.T) {
	store, ids := searchFixture(t)
	matcher := &stubMatcher{ids: []int64{ids["Anxiety"], ids["Healing for my mother"], ids["Job interview"]}}
	svc := NewSearchService(store, matcher)

	results, err := svc.Search(context.Background(), "prayer", 2)
	require.NoError(t, err)
	assert.Len(t, results, 2)
}

func TestCategories(t *testing.T) {
	store, _ := searchFixture(t)
	svc := NewSearchService(store, nil)

	categories, err := svc.Categories(context.Background())
	require.NoError(t, err)

	// Unique labels from approved public prayers only, sorted.
	assert.Equal(t, []string{"Financial & Work", "Health & Healing", "Mental Health"}, categories)
}

func TestFilterByCategory(t *testing.T) {
	items := []Prayer{
		{Title: "A", Categories: "Health & Healing, Family & Relationships"},
		{Title: "B", Categories: "Mental Health"},
	}

	assert.Len(t, FilterByCategory(items, ""), 2)

	filtered := FilterByCategory(items, "Family & Relationships")
	require.Len(t, filtered, 1)
	assert.Equal(t, "A", filtered[0].Title)

	assert.Empty(t, FilterByCategory(items, "Grief & Loss"))
}

func TestFilterByUrgency(t *testing.T) {
	high := UrgencyHigh
	low := UrgencyLow
	items := []Prayer{
		{Title: "A", Urgency: &high},
		{Title: "B", Urgency: &low},
		{Title: "C"},
	}

	assert.Len(t, FilterByUrgency(items, ""), 3)

	filtered := FilterByUrgency(items, UrgencyHigh)
	require.Len(t, filtered, 1)
	assert.Equal(t, "A", filtered[0].Title)
}
