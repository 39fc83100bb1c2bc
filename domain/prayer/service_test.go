package prayer

import (
	"context"
	"errors"
	"strings"
	"testing"

	"prayer-circle/domain/notification"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubSafety struct {
	result SafetyResult
	err    error
}

func (s stubSafety) Classify(context.Context, string, string) (SafetyResult, error) {
	return s.result, s.err
}

type stubTopics struct {
	result TopicResult
	err    error
}

func (s stubTopics) Classify(context.Context, string, string) (TopicResult, error) {
	return s.result, s.err
}

func newTestService(safety SafetyClassifier, topics TopicClassifier) (*Service, *notification.MemoryStore) {
	events := notification.NewMemoryStore()
	svc := NewService(NewMemoryStore(nil), notification.NewService(events), safety, topics, nil)
	return svc, events
}

func safeResult() SafetyResult {
	return SafetyResult{IsSafe: true, Severity: "none"}
}

func topicResult() TopicResult {
	return TopicResult{Categories: []string{"Health & Healing"}, Urgency: UrgencyHigh}
}

func TestSubmitApproved(t *testing.T) {
	svc, events := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title: "Healing for my mother",
		Body:  "She is recovering from surgery.",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, ModerationApproved, created.ModerationStatus)
	assert.Equal(t, StatusActive, created.Status)
	assert.True(t, created.IsPublic)
	assert.Equal(t, "Health & Healing", created.Categories)
	require.NotNil(t, created.Urgency)
	assert.Equal(t, UrgencyHigh, *created.Urgency)
	assert.Nil(t, created.ModerationNotes)

	recorded, err := events.List(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, recorded, "approved submissions emit no events")
}

func TestSubmitRejectedWhenUnsafe(t *testing.T) {
	svc, events := newTestService(stubSafety{result: SafetyResult{
		IsSafe:         false,
		Concerns:       []string{"spam"},
		RequiresReview: true,
		Severity:       "high",
	}}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title: "Buy now", Body: "Limited offer!",
	}, nil)
	require.NoError(t, err, "submitter still gets a successful submission")

	// Unsafe wins over requires-review.
	assert.Equal(t, ModerationRejected, created.ModerationStatus)
	require.NotNil(t, created.ModerationNotes)
	assert.Contains(t, *created.ModerationNotes, "spam")

	recorded, err := events.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, notification.KindItemRejected, recorded[0].Kind)
}

func TestSubmitFlaggedWhenReviewRequired(t *testing.T) {
	svc, events := newTestService(stubSafety{result: SafetyResult{
		IsSafe:         true,
		Concerns:       []string{"mentions self-harm"},
		RequiresReview: true,
		Severity:       "medium",
	}}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title: "Dark thoughts", Body: "I have been struggling.",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, ModerationFlagged, created.ModerationStatus)

	recorded, err := events.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, notification.KindItemFlagged, recorded[0].Kind)
	assert.Equal(t, created.ID, recorded[0].Meta["prayer_id"])
}

func TestSubmitSafetyFailureFailsOpen(t *testing.T) {
	svc, events := newTestService(
		stubSafety{err: errors.New("timeout")},
		stubTopics{result: topicResult()},
	)

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title: "Prayer for travel", Body: "Flying home tomorrow.",
	}, nil)
	require.NoError(t, err, "classifier failures never fail the submission")

	// Never auto-published, never auto-rejected.
	assert.Equal(t, ModerationFlagged, created.ModerationStatus)
	require.NotNil(t, created.ModerationNotes)
	assert.Contains(t, *created.ModerationNotes, "AI moderation unavailable - requires manual review")

	recorded, err := events.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, "low", recorded[0].Meta["severity"])
}

func TestSubmitTopicFailureUsesDefaults(t *testing.T) {
	svc, _ := newTestService(
		stubSafety{result: safeResult()},
		stubTopics{err: errors.New("timeout")},
	)

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title: "Prayer for travel", Body: "Flying home tomorrow.",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, ModerationApproved, created.ModerationStatus, "topic failure alone does not block approval")
	assert.Equal(t, "Other", created.Categories)
	require.NotNil(t, created.Urgency)
	assert.Equal(t, UrgencyMedium, *created.Urgency)
}

func TestSubmitBothClassifiersFail(t *testing.T) {
	svc, _ := newTestService(
		stubSafety{err: errors.New("down")},
		stubTopics{err: errors.New("down")},
	)

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title: "Title", Body: "Body",
	}, nil)
	require.NoError(t, err)

	assert.Equal(t, ModerationFlagged, created.ModerationStatus)
	assert.Equal(t, "Other", created.Categories)
}

func TestSubmitValidation(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitRequest{Title: "  ", Body: "Body"}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(ctx, SubmitRequest{Title: "Title", Body: ""}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.Submit(ctx, SubmitRequest{Title: strings.Repeat("x", 256), Body: "Body"}, nil)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestSubmitVisibilityScope(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})
	ctx := context.Background()

	_, err := svc.Submit(ctx, SubmitRequest{Title: "Title", Body: "Body", VisibilityScope: "everyone"}, nil)
	assert.ErrorIs(t, err, ErrValidation)

	created, err := svc.Submit(ctx, SubmitRequest{Title: "Title", Body: "Body", VisibilityScope: ScopeGroupOnly}, nil)
	require.NoError(t, err)
	assert.Equal(t, ScopeGroupOnly, created.VisibilityScope)

	defaulted, err := svc.Submit(ctx, SubmitRequest{Title: "Title", Body: "Body"}, nil)
	require.NoError(t, err)
	assert.Equal(t, ScopeCommunity, defaulted.VisibilityScope)
}

func TestSubmitNormalizesCategories(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: TopicResult{
		Categories: []string{" Health & Healing ", "Health & Healing", "", "Grief & Loss", "Mental Health", "Other"},
		Urgency:    UrgencyLow,
	}})

	created, err := svc.Submit(context.Background(), SubmitRequest{Title: "Title", Body: "Body"}, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Health & Healing", "Grief & Loss", "Mental Health"}, created.CategoryList())
}

func TestSubmitAnonymous(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{
		Title:         "Private struggle",
		Body:          "Please pray.",
		IsAnonymous:   true,
		AnonymousName: "A friend",
	}, nil)
	require.NoError(t, err)

	assert.True(t, created.IsAnonymous)
	require.NotNil(t, created.AnonymousName)
	assert.Equal(t, "A friend", *created.AnonymousName)
}

func TestUpdateStatusOwnership(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})
	owner := int64(7)

	created, err := svc.Submit(context.Background(), SubmitRequest{Title: "Title", Body: "Body"}, &owner)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, StatusResolved, 99, false)
	assert.ErrorIs(t, err, ErrForbidden)

	updated, err := svc.UpdateStatus(context.Background(), created.ID, StatusResolved, owner, false)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, updated.Status)

	// Admins bypass ownership.
	updated, err = svc.UpdateStatus(context.Background(), created.ID, StatusArchived, 99, true)
	require.NoError(t, err)
	assert.Equal(t, StatusArchived, updated.Status)
}

func TestUpdateStatusNeverGoesBackwards(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})
	owner := int64(7)

	created, err := svc.Submit(context.Background(), SubmitRequest{Title: "Title", Body: "Body"}, &owner)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, StatusResolved, owner, false)
	require.NoError(t, err)

	_, err = svc.UpdateStatus(context.Background(), created.ID, StatusActive, owner, false)
	assert.ErrorIs(t, err, ErrValidation)
}

func TestUpdateModeration(t *testing.T) {
	svc, events := newTestService(stubSafety{result: SafetyResult{
		IsSafe: true, RequiresReview: true, Concerns: []string{"check"}, Severity: "low",
	}}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{Title: "Title", Body: "Body"}, nil)
	require.NoError(t, err)
	require.Equal(t, ModerationFlagged, created.ModerationStatus)

	updated, err := svc.UpdateModeration(context.Background(), created.ID, ModerationApproved, 1, "looks fine")
	require.NoError(t, err)
	assert.Equal(t, ModerationApproved, updated.ModerationStatus)
	require.NotNil(t, updated.ModeratedBy)
	assert.Equal(t, int64(1), *updated.ModeratedBy)
	require.NotNil(t, updated.ModerationNotes)
	assert.Equal(t, "looks fine", *updated.ModerationNotes)

	_, err = svc.UpdateModeration(context.Background(), created.ID, ModerationStatus("bogus"), 1, "")
	assert.ErrorIs(t, err, ErrValidation)

	recorded, err := events.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 2, "flag event plus review event")
	assert.Equal(t, notification.KindItemReviewed, recorded[0].Kind)
}

func TestRespondAnswerResolvesPrayer(t *testing.T) {
	svc, events := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{Title: "Title", Body: "Body"}, nil)
	require.NoError(t, err)

	resp, err := svc.Respond(context.Background(), created.ID, nil, RespondRequest{
		Body: "Praying for you!", IsAnswer: false,
	})
	require.NoError(t, err)
	assert.False(t, resp.IsAnswer)

	answer, err := svc.Respond(context.Background(), created.ID, nil, RespondRequest{
		Body: "God answered this.", IsAnswer: true,
	})
	require.NoError(t, err)
	assert.True(t, answer.IsAnswer)

	after, err := svc.ListResponses(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Len(t, after, 2)

	current, err := svc.store.GetByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Equal(t, StatusResolved, current.Status)

	recorded, err := events.List(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recorded, 1)
	assert.Equal(t, notification.KindStatusChanged, recorded[0].Kind)
}

func TestRespondValidatesBody(t *testing.T) {
	svc, _ := newTestService(stubSafety{result: safeResult()}, stubTopics{result: topicResult()})

	created, err := svc.Submit(context.Background(), SubmitRequest{Title: "Title", Body: "Body"}, nil)
	require.NoError(t, err)

	_, err = svc.Respond(context.Background(), created.ID, nil, RespondRequest{Body: "  "})
	assert.ErrorIs(t, err, ErrValidation)
}
