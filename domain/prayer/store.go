package prayer

import (
	"context"
	"errors"
)

// ErrNotFound is returned by lookups when no prayer matches. Read paths
// handle absence through this sentinel rather than through HTTP-level
// errors.
var ErrNotFound = errors.New("prayer not found")

const (
	// DefaultLimit bounds listings when no limit is given.
	DefaultLimit = 50
	// MaxLimit caps listings regardless of the requested limit.
	MaxLimit = 100
)

// Filter selects prayers in List. All set fields combine with AND.
type Filter struct {
	ChurchID         *int64
	GroupID          *int64
	Status           Status
	PublicOnly       bool
	ModerationStatus ModerationStatus
	Limit            int
	Offset           int
}

// NormalizedLimit applies the default and the cap.
func (f Filter) NormalizedLimit() int {
	if f.Limit <= 0 {
		return DefaultLimit
	}
	if f.Limit > MaxLimit {
		return MaxLimit
	}
	return f.Limit
}

// NormalizedOffset clamps negative offsets to zero. Both backends read the
// offset through this so a bad query parameter cannot diverge them.
func (f Filter) NormalizedOffset() int {
	if f.Offset < 0 {
		return 0
	}
	return f.Offset
}

// Store is the persistence contract both backends satisfy identically.
// List orders by created_at descending with id descending as the tie-break,
// so replaying the same writes against either backend yields the same
// membership, order, and pagination boundaries.
type Store interface {
	Create(ctx context.Context, p Prayer) (Prayer, error)
	List(ctx context.Context, f Filter) ([]Prayer, error)
	GetByID(ctx context.Context, id int64) (Prayer, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Prayer, error)
	UpdateModeration(ctx context.Context, id int64, status ModerationStatus, moderatorID int64, notes *string) (Prayer, error)

	CreateResponse(ctx context.Context, r Response) (Response, error)
	ListResponses(ctx context.Context, prayerID int64) ([]Response, error)
}
