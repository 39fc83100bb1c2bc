package prayer

import (
	"context"
	"sort"
	"strings"

	"prayer-circle/config"
	"prayer-circle/pkg/logger"
)

// maxSearchCandidates bounds how many items are sent to the semantic
// matcher, to respect payload limits.
const maxSearchCandidates = 50

// SearchService runs keyword/semantic search and category discovery over
// approved public prayers. Matcher failures degrade to substring matching;
// search never surfaces an error for a matcher problem.
type SearchService struct {
	store   Store
	matcher SearchMatcher
	log     logger.Logger
}

// NewSearchService wires the search layer. matcher may be nil, which forces
// substring matching.
func NewSearchService(store Store, matcher SearchMatcher) *SearchService {
	return &SearchService{
		store:   store,
		matcher: matcher,
		log:     logger.Get().WithComponent("search"),
	}
}

// Search returns approved public prayers relevant to the query, most
// relevant first, capped at limit.
func (s *SearchService) Search(ctx context.Context, query string, limit int) ([]Prayer, error) {
	if limit <= 0 || limit > MaxLimit {
		limit = DefaultLimit
	}

	items, err := s.store.List(ctx, Filter{
		PublicOnly:       true,
		ModerationStatus: ModerationApproved,
		Limit:            MaxLimit,
	})
	if err != nil {
		return nil, err
	}

	ranked := s.rank(ctx, query, items)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked, nil
}

// rank orders items by matcher relevance, falling back to case-insensitive
// substring matching when the matcher is unavailable. Ids the matcher
// returns that are not in the candidate set are dropped: filtered-out or
// no-longer-visible items must not resurrect.
func (s *SearchService) rank(ctx context.Context, query string, items []Prayer) []Prayer {
	if s.matcher != nil {
		candidates := make([]Candidate, 0, len(items))
		for _, p := range items {
			candidates = append(candidates, Candidate{ID: p.ID, Title: p.Title, Body: p.Body})
			if len(candidates) == maxSearchCandidates {
				break
			}
		}

		ids, err := s.matcher.Rank(ctx, query, candidates)
		if err == nil {
			byID := make(map[int64]Prayer, len(items))
			for _, p := range items {
				byID[p.ID] = p
			}
			results := make([]Prayer, 0, len(ids))
			for _, id := range ids {
				if p, ok := byID[id]; ok {
					results = append(results, p)
				}
			}
			return results
		}
		s.log.Warn("Semantic matcher unavailable, falling back to substring search",
			logger.Err(err), logger.Query(query))
	}

	lower := strings.ToLower(query)
	results := []Prayer{}
	for _, p := range items {
		if strings.Contains(strings.ToLower(p.Title), lower) || strings.Contains(strings.ToLower(p.Body), lower) {
			results = append(results, p)
		}
	}
	return results
}

// Categories returns the sorted set of category labels present on approved
// public prayers, served from the Redis cache when warm.
func (s *SearchService) Categories(ctx context.Context) ([]string, error) {
	if cached := config.GetCachedCategories(ctx); cached != nil {
		return cached, nil
	}

	items, err := s.store.List(ctx, Filter{
		PublicOnly:       true,
		ModerationStatus: ModerationApproved,
		Limit:            MaxLimit,
	})
	if err != nil {
		return nil, err
	}

	seen := map[string]bool{}
	categories := []string{}
	for _, p := range items {
		for _, c := range p.CategoryList() {
			if !seen[c] {
				seen[c] = true
				categories = append(categories, c)
			}
		}
	}
	sort.Strings(categories)

	config.SetCachedCategories(ctx, categories)
	return categories, nil
}

// FilterByCategory keeps items carrying the given category label.
func FilterByCategory(items []Prayer, category string) []Prayer {
	if category == "" {
		return items
	}
	out := []Prayer{}
	for _, p := range items {
		if p.HasCategory(category) {
			out = append(out, p)
		}
	}
	return out
}

// FilterByUrgency keeps items with the given urgency.
func FilterByUrgency(items []Prayer, urgency Urgency) []Prayer {
	if urgency == "" {
		return items
	}
	out := []Prayer{}
	for _, p := range items {
		if p.Urgency != nil && *p.Urgency == urgency {
			out = append(out, p)
		}
	}
	return out
}
