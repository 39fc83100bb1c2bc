package church

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const churchColumns = `id, name, description, address, city, website, status, created_by, created_at, updated_at`

const memberColumns = `id, church_id, user_id, role, verified, joined_at`

// SQLStore persists churches and memberships in Postgres.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a SQL-backed church store.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, c Church) (Church, error) {
	if c.Status == "" {
		c.Status = StatusPending
	}
	var created Church
	err := s.db.GetContext(ctx, &created, `
		INSERT INTO churches (name, description, address, city, website, status, created_by, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, NOW(), NOW())
		RETURNING `+churchColumns,
		c.Name, c.Description, c.Address, c.City, c.Website, c.Status, c.CreatedBy,
	)
	if err != nil {
		return Church{}, fmt.Errorf("insert church: %w", err)
	}
	return created, nil
}

func (s *SQLStore) List(ctx context.Context, status Status) ([]Church, error) {
	churches := []Church{}
	query := `SELECT ` + churchColumns + ` FROM churches`
	args := []interface{}{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY name ASC, id ASC`
	if err := s.db.SelectContext(ctx, &churches, query, args...); err != nil {
		return nil, fmt.Errorf("list churches: %w", err)
	}
	return churches, nil
}

func (s *SQLStore) GetByID(ctx context.Context, id int64) (Church, error) {
	var c Church
	err := s.db.GetContext(ctx, &c, `SELECT `+churchColumns+` FROM churches WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Church{}, ErrNotFound
	}
	if err != nil {
		return Church{}, fmt.Errorf("get church: %w", err)
	}
	return c, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id int64, status Status) (Church, error) {
	var c Church
	err := s.db.GetContext(ctx, &c, `
		UPDATE churches SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+churchColumns,
		status, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Church{}, ErrNotFound
	}
	if err != nil {
		return Church{}, fmt.Errorf("update church status: %w", err)
	}
	return c, nil
}

func (s *SQLStore) AddMember(ctx context.Context, m Member) (Member, error) {
	if m.Role == "" {
		m.Role = "member"
	}
	var created Member
	err := s.db.GetContext(ctx, &created, `
		INSERT INTO church_members (church_id, user_id, role, verified, joined_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING `+memberColumns,
		m.ChurchID, m.UserID, m.Role, m.Verified,
	)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return Member{}, ErrAlreadyMember
		}
		return Member{}, fmt.Errorf("insert church member: %w", err)
	}
	return created, nil
}

func (s *SQLStore) ListMembers(ctx context.Context, churchID int64) ([]Member, error) {
	members := []Member{}
	err := s.db.SelectContext(ctx, &members, `
		SELECT `+memberColumns+` FROM church_members
		WHERE church_id = $1
		ORDER BY joined_at ASC, id ASC`,
		churchID,
	)
	if err != nil {
		return nil, fmt.Errorf("list church members: %w", err)
	}
	return members, nil
}

func (s *SQLStore) VerifyMember(ctx context.Context, churchID, userID int64) (Member, error) {
	var m Member
	err := s.db.GetContext(ctx, &m, `
		UPDATE church_members SET verified = TRUE
		WHERE church_id = $1 AND user_id = $2
		RETURNING `+memberColumns,
		churchID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, ErrNotFound
	}
	if err != nil {
		return Member{}, fmt.Errorf("verify church member: %w", err)
	}
	return m, nil
}

func (s *SQLStore) GetMember(ctx context.Context, churchID, userID int64) (Member, error) {
	var m Member
	err := s.db.GetContext(ctx, &m, `
		SELECT `+memberColumns+` FROM church_members
		WHERE church_id = $1 AND user_id = $2`,
		churchID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Member{}, ErrNotFound
	}
	if err != nil {
		return Member{}, fmt.Errorf("get church member: %w", err)
	}
	return m, nil
}
