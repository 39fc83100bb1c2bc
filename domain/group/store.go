package group

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no group or membership matches the lookup.
var ErrNotFound = errors.New("group not found")

// ErrAlreadyMember is returned when a user joins a group twice.
var ErrAlreadyMember = errors.New("already a member")

// Store is the group persistence contract.
type Store interface {
	Create(ctx context.Context, g Group) (Group, error)
	ListByChurch(ctx context.Context, churchID int64) ([]Group, error)
	GetByID(ctx context.Context, id int64) (Group, error)

	AddMember(ctx context.Context, m Member) (Member, error)
	ListMembers(ctx context.Context, groupID int64) ([]Member, error)
}
