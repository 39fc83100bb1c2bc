package notification

import (
	"context"

	"prayer-circle/pkg/logger"
)

// Service records and lists moderation events. Recording is an observability
// concern: a failure here must never block the content mutation that
// triggered it, so callers log the returned error and move on.
type Service struct {
	store Store
	log   logger.Logger
}

// NewService creates an event service over the given store.
func NewService(store Store) *Service {
	return &Service{
		store: store,
		log:   logger.Get().WithComponent("notification"),
	}
}

// Record appends a moderation event.
func (s *Service) Record(ctx context.Context, kind Kind, title, message string, meta map[string]any) (Event, error) {
	event, err := s.store.Create(ctx, Event{
		Kind:    kind,
		Title:   title,
		Message: message,
		Meta:    meta,
	})
	if err != nil {
		s.log.Error("Failed to record moderation event", err, logger.EventKind(string(kind)))
		return Event{}, err
	}
	return event, nil
}

// List returns the most recent events, newest first.
func (s *Service) List(ctx context.Context, limit int) ([]Event, error) {
	return s.store.List(ctx, limit)
}
