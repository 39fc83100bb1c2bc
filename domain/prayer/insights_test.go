package prayer

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubInsights struct {
	result InsightsResult
	err    error
	seen   []Prayer
}

func (s *stubInsights) Generate(_ context.Context, prayers []Prayer) (InsightsResult, error) {
	s.seen = prayers
	return s.result, s.err
}

func insightsSeed(churchID, otherChurch int64) []Prayer {
	now := time.Now()
	return []Prayer{
		{Title: "Recent", Body: "Body", ChurchID: &churchID, IsPublic: true, ModerationStatus: ModerationApproved, CreatedAt: now.Add(-24 * time.Hour)},
		{Title: "Stale", Body: "Body", ChurchID: &churchID, IsPublic: true, ModerationStatus: ModerationApproved, CreatedAt: now.Add(-45 * 24 * time.Hour)},
		{Title: "Elsewhere", Body: "Body", ChurchID: &otherChurch, IsPublic: true, ModerationStatus: ModerationApproved, CreatedAt: now.Add(-24 * time.Hour)},
		{Title: "Flagged", Body: "Body", ChurchID: &churchID, IsPublic: true, ModerationStatus: ModerationFlagged, CreatedAt: now.Add(-24 * time.Hour)},
		{Title: "Private", Body: "Body", ChurchID: &churchID, IsPublic: false, ModerationStatus: ModerationApproved, CreatedAt: now.Add(-24 * time.Hour)},
	}
}

func TestChurchInsightsAnalyzesRecentApprovedOnly(t *testing.T) {
	gen := &stubInsights{result: InsightsResult{
		TopThemes:           []InsightTheme{{Theme: "Health & Healing", Percentage: 100}},
		Trends:              []string{"More health requests than last month"},
		Summary:             "The community is carrying health burdens.",
		MinistrySuggestions: []string{"Hospital visitation team"},
	}}
	svc := NewInsightsService(NewMemoryStore(insightsSeed(1, 2)), gen)

	insights, err := svc.ForChurch(context.Background(), 1)
	require.NoError(t, err)

	require.Len(t, gen.seen, 1, "only recent approved public prayers reach the generator")
	assert.Equal(t, "Recent", gen.seen[0].Title)

	assert.Equal(t, 1, insights.PrayerCount)
	assert.Equal(t, gen.result.TopThemes, insights.TopThemes)
	assert.Equal(t, gen.result.Trends, insights.Trends)
	assert.Equal(t, gen.result.Summary, insights.Summary)
	assert.Equal(t, gen.result.MinistrySuggestions, insights.MinistrySuggestions)
}

func TestChurchInsightsEmptyWindow(t *testing.T) {
	gen := &stubInsights{}
	svc := NewInsightsService(NewMemoryStore(nil), gen)

	insights, err := svc.ForChurch(context.Background(), 1)
	require.NoError(t, err)

	assert.Nil(t, gen.seen, "generator is never called without data")
	assert.Equal(t, 0, insights.PrayerCount)
	assert.Equal(t, insightsEmptySummary, insights.Summary)
	assert.Empty(t, insights.TopThemes)
	assert.Empty(t, insights.Trends)
	assert.Empty(t, insights.MinistrySuggestions)
}

func TestChurchInsightsGeneratorFailureDegrades(t *testing.T) {
	gen := &stubInsights{err: errors.New("timeout")}
	svc := NewInsightsService(NewMemoryStore(insightsSeed(1, 2)), gen)

	insights, err := svc.ForChurch(context.Background(), 1)
	require.NoError(t, err, "generator failures never surface to the caller")

	assert.Equal(t, 1, insights.PrayerCount)
	assert.Empty(t, insights.TopThemes)
	assert.Empty(t, insights.Summary)
}

func TestChurchInsightsWithoutGenerator(t *testing.T) {
	svc := NewInsightsService(NewMemoryStore(insightsSeed(1, 2)), nil)

	insights, err := svc.ForChurch(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 1, insights.PrayerCount)
	assert.Empty(t, insights.TopThemes)
}
