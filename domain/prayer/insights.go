package prayer

import (
	"context"
	"time"

	"prayer-circle/pkg/logger"
)

// insightsWindow bounds how far back church insights look.
const insightsWindow = 30 * 24 * time.Hour

// insightsEmptySummary is returned when the window holds no prayers.
const insightsEmptySummary = "Not enough prayer data to generate insights. Encourage your community to share more prayer requests."

// ChurchInsights is the aggregate view served to church leaders.
type ChurchInsights struct {
	TopThemes           []InsightTheme `json:"top_themes"`
	Trends              []string       `json:"trends"`
	Summary             string         `json:"summary"`
	MinistrySuggestions []string       `json:"ministry_suggestions"`
	PrayerCount         int            `json:"prayer_count"`
}

// InsightsService summarizes a church's recent approved prayers into themes,
// trends, and ministry suggestions. Generator failures degrade to an empty
// result; insights never surface an error for a generator problem.
type InsightsService struct {
	store     Store
	generator InsightsGenerator
	log       logger.Logger
}

// NewInsightsService wires the insights layer. generator may be nil, which
// disables generation and always yields the degraded result.
func NewInsightsService(store Store, generator InsightsGenerator) *InsightsService {
	return &InsightsService{
		store:     store,
		generator: generator,
		log:       logger.Get().WithComponent("insights"),
	}
}

// ForChurch analyzes the church's approved public prayers from the last 30
// days. Only aggregate patterns leave this layer, never individual prayers.
func (s *InsightsService) ForChurch(ctx context.Context, churchID int64) (ChurchInsights, error) {
	items, err := s.store.List(ctx, Filter{
		ChurchID:         &churchID,
		PublicOnly:       true,
		ModerationStatus: ModerationApproved,
		Limit:            MaxLimit,
	})
	if err != nil {
		return ChurchInsights{}, err
	}

	cutoff := time.Now().Add(-insightsWindow)
	recent := make([]Prayer, 0, len(items))
	for _, p := range items {
		if p.CreatedAt.After(cutoff) {
			recent = append(recent, p)
		}
	}

	empty := ChurchInsights{
		TopThemes:           []InsightTheme{},
		Trends:              []string{},
		MinistrySuggestions: []string{},
		PrayerCount:         len(recent),
	}
	if len(recent) == 0 {
		empty.Summary = insightsEmptySummary
		return empty, nil
	}
	if s.generator == nil {
		return empty, nil
	}

	result, err := s.generator.Generate(ctx, recent)
	if err != nil {
		s.log.Warn("Insights generator unavailable", logger.Err(err), logger.ChurchID(churchID))
		return empty, nil
	}

	return ChurchInsights{
		TopThemes:           result.TopThemes,
		Trends:              result.Trends,
		Summary:             result.Summary,
		MinistrySuggestions: result.MinistrySuggestions,
		PrayerCount:         len(recent),
	}, nil
}
