package prayer

import (
	"context"
	"fmt"
	"strings"

	"prayer-circle/pkg/llm"
)

// SafetyResult is the structured output of the safety classifier.
type SafetyResult struct {
	IsSafe         bool     `json:"is_safe"`
	Concerns       []string `json:"concerns"`
	RequiresReview bool     `json:"requires_review"`
	Severity       string   `json:"severity"`
}

// TopicResult is the structured output of the topic/urgency classifier.
type TopicResult struct {
	Categories []string `json:"categories"`
	Urgency    Urgency  `json:"urgency"`
}

// SafetyClassifier screens a submission for safety concerns.
type SafetyClassifier interface {
	Classify(ctx context.Context, title, body string) (SafetyResult, error)
}

// TopicClassifier assigns 1-3 topical categories and an urgency level.
type TopicClassifier interface {
	Classify(ctx context.Context, title, body string) (TopicResult, error)
}

// Candidate is one item offered to the semantic search matcher.
type Candidate struct {
	ID    int64
	Title string
	Body  string
}

// SearchMatcher ranks candidate prayers by relevance to a free-text query.
type SearchMatcher interface {
	Rank(ctx context.Context, query string, candidates []Candidate) ([]int64, error)
}

// InsightTheme is one aggregate theme with its share of recent prayers.
type InsightTheme struct {
	Theme      string  `json:"theme"`
	Percentage float64 `json:"percentage"`
}

// InsightsResult is the structured output of the insights generator.
type InsightsResult struct {
	TopThemes           []InsightTheme `json:"top_themes"`
	Trends              []string       `json:"trends"`
	Summary             string         `json:"summary"`
	MinistrySuggestions []string       `json:"ministry_suggestions"`
}

// InsightsGenerator summarizes aggregate patterns across a set of prayers.
type InsightsGenerator interface {
	Generate(ctx context.Context, prayers []Prayer) (InsightsResult, error)
}

const safetySystemPrompt = `You are a content moderation assistant for a Christian prayer community app.
Analyze prayer requests for safety and appropriateness. Flag content that contains:
- Spam or commercial solicitation
- Hate speech or discrimination
- Explicit self-harm or suicide ideation (requires immediate intervention)
- Inappropriate or offensive language
- Scams or phishing attempts

Be compassionate and understanding. Genuine prayers about struggles, pain, or difficult topics should be approved.
Only flag content that poses genuine safety concerns or violates community standards.`

const topicSystemPrompt = `You are a prayer categorization assistant. Analyze prayer requests and suggest 1-3 relevant categories.

Available categories:
- Health & Healing (physical illness, medical procedures, recovery)
- Family & Relationships (marriage, children, family conflicts)
- Financial & Work (job loss, debt, career decisions)
- Spiritual Growth (faith struggles, seeking guidance, spiritual warfare)
- Grief & Loss (death, bereavement, mourning)
- Mental Health (anxiety, depression, emotional struggles)
- Protection & Safety (travel, dangerous situations, legal issues)
- Guidance & Decisions (major life choices, direction)
- Thanksgiving & Praise (answered prayers, gratitude)
- Community & Church (church needs, ministry, outreach)
- Other (anything not fitting above categories)

Also assess urgency:
- high: Immediate crisis, emergency, time-sensitive
- medium: Important but not urgent
- low: General prayer request, ongoing situation`

const searchSystemPrompt = `You are a prayer search assistant. Given a search query and a list of prayers, identify which prayers are most relevant to the query.
Consider semantic similarity, not just keyword matching. For example:
- "anxiety" should match prayers about worry, fear, stress, nervousness
- "job loss" should match prayers about unemployment, career, financial struggles
- "healing" should match prayers about sickness, recovery, medical issues

Return the IDs of the most relevant prayers, ranked by relevance.`

const insightsSystemPrompt = `You are a compassionate church ministry assistant. Analyze prayer requests to help church leaders understand their community's needs.

Provide:
1. Top 3-5 themes/categories with percentages
2. Notable trends or patterns
3. Compassionate summary of community needs
4. Suggested ministry focus areas

Be respectful, compassionate, and privacy-preserving. Focus on aggregate patterns, not individual prayers.`

var safetySchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"is_safe": map[string]any{
			"type":        "boolean",
			"description": "Whether the content is safe to publish",
		},
		"concerns": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "List of specific concerns found (empty if safe)",
		},
		"requires_review": map[string]any{
			"type":        "boolean",
			"description": "Whether admin review is needed before publishing",
		},
		"severity": map[string]any{
			"type":        "string",
			"enum":        []string{"none", "low", "medium", "high"},
			"description": "Severity level of concerns",
		},
	},
	"required":             []string{"is_safe", "concerns", "requires_review", "severity"},
	"additionalProperties": false,
}

var topicSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"categories": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "1-3 relevant category names",
		},
		"urgency": map[string]any{
			"type":        "string",
			"enum":        []string{"low", "medium", "high"},
			"description": "Urgency level of the prayer request",
		},
	},
	"required":             []string{"categories", "urgency"},
	"additionalProperties": false,
}

var searchSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"relevant_prayer_ids": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "number"},
			"description": "Prayer IDs ranked by relevance (most relevant first)",
		},
	},
	"required":             []string{"relevant_prayer_ids"},
	"additionalProperties": false,
}

var insightsSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"top_themes": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"theme":      map[string]any{"type": "string"},
					"percentage": map[string]any{"type": "number"},
				},
				"required":             []string{"theme", "percentage"},
				"additionalProperties": false,
			},
			"description": "Top themes with percentages",
		},
		"trends": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Notable trends or patterns observed",
		},
		"summary": map[string]any{
			"type":        "string",
			"description": "Compassionate summary of community needs",
		},
		"ministry_suggestions": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "Suggested ministry focus areas",
		},
	},
	"required":             []string{"top_themes", "trends", "summary", "ministry_suggestions"},
	"additionalProperties": false,
}

// LLMSafetyClassifier implements SafetyClassifier over the chat API.
type LLMSafetyClassifier struct {
	client *llm.Client
}

// NewLLMSafetyClassifier wraps an LLM client as a safety classifier.
func NewLLMSafetyClassifier(client *llm.Client) *LLMSafetyClassifier {
	return &LLMSafetyClassifier{client: client}
}

func (c *LLMSafetyClassifier) Classify(ctx context.Context, title, body string) (SafetyResult, error) {
	var result SafetyResult
	err := c.client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: safetySystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Title: %s\n\nContent: %s", title, body)},
	}, "moderation_result", safetySchema, &result)
	if err != nil {
		return SafetyResult{}, err
	}
	return result, nil
}

// LLMTopicClassifier implements TopicClassifier over the chat API.
type LLMTopicClassifier struct {
	client *llm.Client
}

// NewLLMTopicClassifier wraps an LLM client as a topic classifier.
func NewLLMTopicClassifier(client *llm.Client) *LLMTopicClassifier {
	return &LLMTopicClassifier{client: client}
}

func (c *LLMTopicClassifier) Classify(ctx context.Context, title, body string) (TopicResult, error) {
	var result TopicResult
	err := c.client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: topicSystemPrompt},
		{Role: "user", Content: fmt.Sprintf("Title: %s\n\nContent: %s", title, body)},
	}, "prayer_categories", topicSchema, &result)
	if err != nil {
		return TopicResult{}, err
	}
	return result, nil
}

// LLMSearchMatcher implements SearchMatcher over the chat API.
type LLMSearchMatcher struct {
	client *llm.Client
}

// NewLLMSearchMatcher wraps an LLM client as a semantic search matcher.
func NewLLMSearchMatcher(client *llm.Client) *LLMSearchMatcher {
	return &LLMSearchMatcher{client: client}
}

func (m *LLMSearchMatcher) Rank(ctx context.Context, query string, candidates []Candidate) ([]int64, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Search query: %q\n\nPrayers:\n", query)
	for _, c := range candidates {
		body := c.Body
		if len(body) > 200 {
			body = body[:200]
		}
		fmt.Fprintf(&sb, "ID %d: %s - %s\n\n", c.ID, c.Title, body)
	}
	prompt := sb.String()

	var result struct {
		RelevantPrayerIDs []int64 `json:"relevant_prayer_ids"`
	}
	err := m.client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: searchSystemPrompt},
		{Role: "user", Content: prompt},
	}, "search_results", searchSchema, &result)
	if err != nil {
		return nil, err
	}
	return result.RelevantPrayerIDs, nil
}

// LLMInsightsGenerator implements InsightsGenerator over the chat API.
type LLMInsightsGenerator struct {
	client *llm.Client
}

// NewLLMInsightsGenerator wraps an LLM client as an insights generator.
func NewLLMInsightsGenerator(client *llm.Client) *LLMInsightsGenerator {
	return &LLMInsightsGenerator{client: client}
}

func (g *LLMInsightsGenerator) Generate(ctx context.Context, prayers []Prayer) (InsightsResult, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Analyze these %d prayer requests from the past month:\n\n", len(prayers))
	for i, p := range prayers {
		categories := p.Categories
		if categories == "" {
			categories = "Uncategorized"
		}
		fmt.Fprintf(&sb, "%d. %s (%s)\n", i+1, p.Title, categories)
	}

	var result InsightsResult
	err := g.client.CompleteJSON(ctx, []llm.Message{
		{Role: "system", Content: insightsSystemPrompt},
		{Role: "user", Content: sb.String()},
	}, "church_insights", insightsSchema, &result)
	if err != nil {
		return InsightsResult{}, err
	}
	return result, nil
}
