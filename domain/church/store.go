package church

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no church or membership matches the lookup.
var ErrNotFound = errors.New("church not found")

// ErrAlreadyMember is returned when a user joins a church twice.
var ErrAlreadyMember = errors.New("already a member")

// Store is the church persistence contract.
type Store interface {
	Create(ctx context.Context, c Church) (Church, error)
	List(ctx context.Context, status Status) ([]Church, error)
	GetByID(ctx context.Context, id int64) (Church, error)
	UpdateStatus(ctx context.Context, id int64, status Status) (Church, error)

	AddMember(ctx context.Context, m Member) (Member, error)
	ListMembers(ctx context.Context, churchID int64) ([]Member, error)
	VerifyMember(ctx context.Context, churchID, userID int64) (Member, error)
	GetMember(ctx context.Context, churchID, userID int64) (Member, error)
}
