package prayer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"

	"prayer-circle/domain/notification"
	"prayer-circle/pkg/logger"
	"prayer-circle/pkg/mailer"
)

// ErrValidation marks rejected input; handlers map it to a 400.
var ErrValidation = errors.New("validation failed")

// ErrForbidden marks an operation the caller is not allowed to perform.
var ErrForbidden = errors.New("forbidden")

// moderationUnavailableConcern is attached when the safety classifier fails,
// so nothing reaches the public feed without review while nothing gets
// silently rejected by an infrastructure failure either.
const moderationUnavailableConcern = "AI moderation unavailable - requires manual review"

const maxTitleLength = 255

// EventRecorder is the slice of the notification service the orchestrator
// needs. Event recording failures never fail the mutation that caused them.
type EventRecorder interface {
	Record(ctx context.Context, kind notification.Kind, title, message string, meta map[string]any) (notification.Event, error)
}

// Service drives the submission pipeline: both classifiers run, their
// outputs merge into a single moderation decision, the record is persisted,
// and flagged or rejected outcomes emit operator notifications.
type Service struct {
	store  Store
	events EventRecorder
	safety SafetyClassifier
	topics TopicClassifier
	alerts *mailer.Mailer
	log    logger.Logger
}

// NewService wires the orchestrator. alerts may be nil to disable operator
// email.
func NewService(store Store, events EventRecorder, safety SafetyClassifier, topics TopicClassifier, alerts *mailer.Mailer) *Service {
	return &Service{
		store:  store,
		events: events,
		safety: safety,
		topics: topics,
		alerts: alerts,
		log:    logger.Get().WithComponent("prayer"),
	}
}

// Submit runs the full moderation/categorization pipeline and persists the
// resulting record. Classifier failures never surface to the caller; they
// fall back per policy (safety: safe-but-flagged, topics: Other/medium).
func (s *Service) Submit(ctx context.Context, req SubmitRequest, userID *int64) (Prayer, error) {
	if strings.TrimSpace(req.Title) == "" {
		return Prayer{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if strings.TrimSpace(req.Body) == "" {
		return Prayer{}, fmt.Errorf("%w: body is required", ErrValidation)
	}
	if len(req.Title) > maxTitleLength {
		return Prayer{}, fmt.Errorf("%w: title exceeds %d characters", ErrValidation, maxTitleLength)
	}
	switch req.VisibilityScope {
	case "", ScopeCommunity, ScopeGroupOnly, ScopeNearbyGroups:
	default:
		return Prayer{}, fmt.Errorf("%w: unknown visibility scope %q", ErrValidation, req.VisibilityScope)
	}

	// The two classifier calls are independent; run them concurrently and
	// join before constructing the record. Exactly one attempt each.
	var (
		wg        sync.WaitGroup
		safety    SafetyResult
		safetyErr error
		topics    TopicResult
		topicsErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		safety, safetyErr = s.safety.Classify(ctx, req.Title, req.Body)
	}()
	go func() {
		defer wg.Done()
		topics, topicsErr = s.topics.Classify(ctx, req.Title, req.Body)
	}()
	wg.Wait()

	if safetyErr != nil {
		s.log.Warn("Safety classifier unavailable, falling back to manual review",
			logger.Err(safetyErr), logger.Classifier("safety"))
		safety = SafetyResult{
			IsSafe:         true,
			Concerns:       []string{moderationUnavailableConcern},
			RequiresReview: true,
			Severity:       "low",
		}
	}
	if topicsErr != nil {
		s.log.Warn("Topic classifier unavailable, falling back to defaults",
			logger.Err(topicsErr), logger.Classifier("topics"))
		topics = TopicResult{
			Categories: []string{"Other"},
			Urgency:    UrgencyMedium,
		}
	}

	// Safety dominates review-required, which dominates approval.
	var moderationStatus ModerationStatus
	switch {
	case !safety.IsSafe:
		moderationStatus = ModerationRejected
	case safety.RequiresReview:
		moderationStatus = ModerationFlagged
	default:
		moderationStatus = ModerationApproved
	}

	var notes *string
	if len(safety.Concerns) > 0 {
		serialized, err := json.Marshal(safety.Concerns)
		if err == nil {
			n := string(serialized)
			notes = &n
		}
	}

	urgency := topics.Urgency
	var anonymousName *string
	if req.IsAnonymous && req.AnonymousName != "" {
		anonymousName = &req.AnonymousName
	}

	scope := req.VisibilityScope
	if scope == "" {
		scope = ScopeCommunity
	}

	created, err := s.store.Create(ctx, Prayer{
		Title:            req.Title,
		Body:             req.Body,
		UserID:           userID,
		ChurchID:         req.ChurchID,
		GroupID:          req.GroupID,
		IsAnonymous:      req.IsAnonymous,
		AnonymousName:    anonymousName,
		IsPublic:         true,
		VisibilityScope:  scope,
		Status:           StatusActive,
		Categories:       JoinCategories(normalizeCategories(topics.Categories)),
		Urgency:          &urgency,
		ModerationStatus: moderationStatus,
		ModerationNotes:  notes,
	})
	if err != nil {
		return Prayer{}, err
	}

	if moderationStatus == ModerationFlagged || moderationStatus == ModerationRejected {
		kind := notification.KindItemFlagged
		verb := "flagged for review"
		if moderationStatus == ModerationRejected {
			kind = notification.KindItemRejected
			verb = "rejected"
		}
		s.recordEvent(ctx, kind,
			fmt.Sprintf("Prayer %s", verb),
			fmt.Sprintf("Prayer %q (id %d) was %s by automated moderation.", created.Title, created.ID, verb),
			map[string]any{
				"prayer_id": created.ID,
				"severity":  safety.Severity,
				"concerns":  safety.Concerns,
			},
		)
		s.sendAlert(created, safety.Concerns)
	}

	return created, nil
}

// UpdateStatus moves the display status forward. Only the submitter or an
// admin may change it, and transitions never go backwards.
func (s *Service) UpdateStatus(ctx context.Context, id int64, newStatus Status, callerID int64, isAdmin bool) (Prayer, error) {
	current, err := s.store.GetByID(ctx, id)
	if err != nil {
		return Prayer{}, err
	}

	if !isAdmin && (current.UserID == nil || *current.UserID != callerID) {
		return Prayer{}, ErrForbidden
	}
	if !CanTransition(current.Status, newStatus) {
		return Prayer{}, fmt.Errorf("%w: cannot change status from %s to %s", ErrValidation, current.Status, newStatus)
	}

	updated, err := s.store.UpdateStatus(ctx, id, newStatus)
	if err != nil {
		return Prayer{}, err
	}

	s.recordEvent(ctx, notification.KindStatusChanged,
		"Prayer status changed",
		fmt.Sprintf("Prayer %q (id %d) moved from %s to %s.", updated.Title, updated.ID, current.Status, newStatus),
		map[string]any{
			"prayer_id": updated.ID,
			"from":      string(current.Status),
			"to":        string(newStatus),
		},
	)
	return updated, nil
}

// UpdateModeration is the operator override of an automated moderation
// outcome. The handler gates it to admins.
func (s *Service) UpdateModeration(ctx context.Context, id int64, status ModerationStatus, moderatorID int64, notes string) (Prayer, error) {
	switch status {
	case ModerationPending, ModerationApproved, ModerationFlagged, ModerationRejected:
	default:
		return Prayer{}, fmt.Errorf("%w: unknown moderation status %q", ErrValidation, status)
	}

	var notesPtr *string
	if notes != "" {
		notesPtr = &notes
	}

	updated, err := s.store.UpdateModeration(ctx, id, status, moderatorID, notesPtr)
	if err != nil {
		return Prayer{}, err
	}

	s.recordEvent(ctx, notification.KindItemReviewed,
		"Prayer reviewed",
		fmt.Sprintf("Prayer %q (id %d) was reviewed and marked %s.", updated.Title, updated.ID, status),
		map[string]any{
			"prayer_id":         updated.ID,
			"moderation_status": string(status),
			"moderated_by":      moderatorID,
		},
	)
	return updated, nil
}

// Respond adds a follow-up. A response marked as an answer resolves an
// active prayer.
func (s *Service) Respond(ctx context.Context, prayerID int64, userID *int64, req RespondRequest) (Response, error) {
	if strings.TrimSpace(req.Body) == "" {
		return Response{}, fmt.Errorf("%w: body is required", ErrValidation)
	}

	current, err := s.store.GetByID(ctx, prayerID)
	if err != nil {
		return Response{}, err
	}

	created, err := s.store.CreateResponse(ctx, Response{
		PrayerID: prayerID,
		UserID:   userID,
		Body:     req.Body,
		IsAnswer: req.IsAnswer,
	})
	if err != nil {
		return Response{}, err
	}

	if req.IsAnswer && current.Status == StatusActive {
		if updated, err := s.store.UpdateStatus(ctx, prayerID, StatusResolved); err != nil {
			s.log.Warn("Failed to resolve prayer after answer", logger.Err(err), logger.PrayerID(prayerID))
		} else {
			s.recordEvent(ctx, notification.KindStatusChanged,
				"Prayer status changed",
				fmt.Sprintf("Prayer %q (id %d) moved from active to resolved.", updated.Title, updated.ID),
				map[string]any{
					"prayer_id": updated.ID,
					"from":      string(StatusActive),
					"to":        string(StatusResolved),
				},
			)
		}
	}

	return created, nil
}

// ListResponses returns a prayer's responses, oldest first.
func (s *Service) ListResponses(ctx context.Context, prayerID int64) ([]Response, error) {
	return s.store.ListResponses(ctx, prayerID)
}

// recordEvent appends a moderation event, logging instead of failing when
// the emitter is unavailable.
func (s *Service) recordEvent(ctx context.Context, kind notification.Kind, title, message string, meta map[string]any) {
	if s.events == nil {
		return
	}
	if _, err := s.events.Record(ctx, kind, title, message, meta); err != nil {
		s.log.Warn("Failed to record moderation event", logger.Err(err), logger.EventKind(string(kind)))
	}
}

// sendAlert emails the operator about a flagged or rejected submission.
// Best-effort: runs detached from the request and only logs failures.
func (s *Service) sendAlert(p Prayer, concerns []string) {
	if s.alerts == nil {
		return
	}
	go func() {
		subject := fmt.Sprintf("[Prayer Circle] Moderation alert: %s", p.Title)
		body := mailer.AlertBody(p.Title, p.ID, string(p.ModerationStatus), concerns)
		if err := s.alerts.SendModerationAlert(context.Background(), subject, body); err != nil {
			s.log.Warn("Failed to send moderation alert", logger.Err(err), logger.PrayerID(p.ID))
		}
	}()
}

// normalizeCategories trims, dedupes, and caps the classifier's category
// list at three entries, falling back to Other when nothing survives.
func normalizeCategories(categories []string) []string {
	seen := map[string]bool{}
	out := []string{}
	for _, c := range categories {
		trimmed := strings.TrimSpace(c)
		if trimmed == "" || seen[trimmed] {
			continue
		}
		seen[trimmed] = true
		out = append(out, trimmed)
		if len(out) == 3 {
			break
		}
	}
	if len(out) == 0 {
		return []string{"Other"}
	}
	return out
}
