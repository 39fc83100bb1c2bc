package group

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const groupColumns = `id, church_id, name, description, created_by, created_at, updated_at`

const memberColumns = `id, group_id, user_id, joined_at`

// SQLStore persists groups and memberships in Postgres.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a SQL-backed group store.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, g Group) (Group, error) {
	var created Group
	err := s.db.GetContext(ctx, &created, `
		INSERT INTO prayer_groups (church_id, name, description, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, NOW(), NOW())
		RETURNING `+groupColumns,
		g.ChurchID, g.Name, g.Description, g.CreatedBy,
	)
	if err != nil {
		return Group{}, fmt.Errorf("insert group: %w", err)
	}
	return created, nil
}

func (s *SQLStore) ListByChurch(ctx context.Context, churchID int64) ([]Group, error) {
	groups := []Group{}
	err := s.db.SelectContext(ctx, &groups, `
		SELECT `+groupColumns+` FROM prayer_groups
		WHERE church_id = $1
		ORDER BY name ASC, id ASC`,
		churchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list groups: %w", err)
	}
	return groups, nil
}

func (s *SQLStore) GetByID(ctx context.Context, id int64) (Group, error) {
	var g Group
	err := s.db.GetContext(ctx, &g, `SELECT `+groupColumns+` FROM prayer_groups WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Group{}, ErrNotFound
	}
	if err != nil {
		return Group{}, fmt.Errorf("get group: %w", err)
	}
	return g, nil
}

func (s *SQLStore) AddMember(ctx context.Context, m Member) (Member, error) {
	var created Member
	err := s.db.GetContext(ctx, &created, `
		INSERT INTO prayer_group_members (group_id, user_id, joined_at)
		VALUES ($1, $2, NOW())
		RETURNING `+memberColumns,
		m.GroupID, m.UserID,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return Member{}, ErrAlreadyMember
		}
		return Member{}, fmt.Errorf("insert group member: %w", err)
	}
	return created, nil
}

func (s *SQLStore) ListMembers(ctx context.Context, groupID int64) ([]Member, error) {
	members := []Member{}
	err := s.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+` FROM prayer_group_members
		WHERE group_id = $1
		ORDER BY joined_at ASC, id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("list group members: %w", err)
	}
	return members, nil
}
