package notification

import "time"

// Kind classifies a moderation event.
type Kind string

const (
	KindItemFlagged       Kind = "item-flagged"
	KindItemRejected      Kind = "item-rejected"
	KindItemReviewed      Kind = "item-reviewed"
	KindStatusChanged     Kind = "status-changed"
	KindMembershipChanged Kind = "membership-changed"
)

// Event is an append-only activity record surfaced to operators. Events are
// created once and never mutated.
type Event struct {
	ID        int64          `db:"id" json:"id"`
	Kind      Kind           `db:"kind" json:"kind"`
	Title     string         `db:"title" json:"title"`
	Message   string         `db:"message" json:"message"`
	Meta      map[string]any `db:"-" json:"meta,omitempty"`
	CreatedAt time.Time      `db:"created_at" json:"created_at"`
}
