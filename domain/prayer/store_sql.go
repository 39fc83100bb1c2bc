package prayer

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

const prayerColumns = `id, title, body, user_id, church_id, group_id, is_anonymous, anonymous_name,
	is_public, visibility_scope, status, categories, urgency, moderation_status,
	moderation_notes, moderated_by, moderated_at, created_at, updated_at`

// SQLStore persists prayers in Postgres.
type SQLStore struct {
	db *sqlx.DB
}

// NewSQLStore creates a SQL-backed prayer store.
func NewSQLStore(db *sqlx.DB) *SQLStore {
	return &SQLStore{db: db}
}

func (s *SQLStore) Create(ctx context.Context, p Prayer) (Prayer, error) {
	applyDefaults(&p)

	var created Prayer
	err := s.db.GetContext(ctx, &created, `
		INSERT INTO prayers (
			title, body, user_id, church_id, group_id, is_anonymous, anonymous_name,
			is_public, visibility_scope, status, categories, urgency, moderation_status,
			moderation_notes, moderated_by, moderated_at, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING `+prayerColumns,
		p.Title, p.Body, p.UserID, p.ChurchID, p.GroupID, p.IsAnonymous, p.AnonymousName,
		p.IsPublic, p.VisibilityScope, p.Status, p.Categories, p.Urgency, p.ModerationStatus,
		p.ModerationNotes, p.ModeratedBy, p.ModeratedAt,
	)
	if err != nil {
		return Prayer{}, fmt.Errorf("insert prayer: %w", err)
	}
	return created, nil
}

func (s *SQLStore) List(ctx context.Context, f Filter) ([]Prayer, error) {
	conditions := []string{}
	args := []interface{}{}

	addCondition := func(clause string, value interface{}) {
		args = append(args, value)
		conditions = append(conditions, fmt.Sprintf(clause, len(args)))
	}

	if f.ChurchID != nil {
		addCondition("church_id = $%d", *f.ChurchID)
	}
	if f.GroupID != nil {
		addCondition("group_id = $%d", *f.GroupID)
	}
	if f.Status != "" {
		addCondition("status = $%d", f.Status)
	}
	if f.PublicOnly {
		conditions = append(conditions, "is_public = TRUE")
	}
	if f.ModerationStatus != "" {
		addCondition("moderation_status = $%d", f.ModerationStatus)
	}

	query := `SELECT ` + prayerColumns + ` FROM prayers`
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, f.NormalizedLimit())
	query += fmt.Sprintf(" ORDER BY created_at DESC, id DESC LIMIT $%d", len(args))
	args = append(args, f.NormalizedOffset())
	query += fmt.Sprintf(" OFFSET $%d", len(args))

	prayers := []Prayer{}
	if err := s.db.SelectContext(ctx, &prayers, query, args...); err != nil {
		return nil, fmt.Errorf("list prayers: %w", err)
	}
	return prayers, nil
}

func (s *SQLStore) GetByID(ctx context.Context, id int64) (Prayer, error) {
	var p Prayer
	err := s.db.GetContext(ctx, &p, `SELECT `+prayerColumns+` FROM prayers WHERE id = $1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return Prayer{}, ErrNotFound
	}
	if err != nil {
		return Prayer{}, fmt.Errorf("get prayer: %w", err)
	}
	return p, nil
}

func (s *SQLStore) UpdateStatus(ctx context.Context, id int64, status Status) (Prayer, error) {
	var p Prayer
	err := s.db.GetContext(ctx, &p, `
		UPDATE prayers SET status = $1, updated_at = NOW()
		WHERE id = $2
		RETURNING `+prayerColumns,
		status, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Prayer{}, ErrNotFound
	}
	if err != nil {
		return Prayer{}, fmt.Errorf("update prayer status: %w", err)
	}
	return p, nil
}

func (s *SQLStore) UpdateModeration(ctx context.Context, id int64, status ModerationStatus, moderatorID int64, notes *string) (Prayer, error) {
	var p Prayer
	err := s.db.GetContext(ctx, &p, `
		UPDATE prayers
		SET moderation_status = $1, moderated_by = $2, moderated_at = NOW(),
			moderation_notes = $3, updated_at = NOW()
		WHERE id = $4
		RETURNING `+prayerColumns,
		status, moderatorID, notes, id,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return Prayer{}, ErrNotFound
	}
	if err != nil {
		return Prayer{}, fmt.Errorf("update prayer moderation: %w", err)
	}
	return p, nil
}

func (s *SQLStore) CreateResponse(ctx context.Context, r Response) (Response, error) {
	var created Response
	err := s.db.GetContext(ctx, &created, `
		INSERT INTO prayer_responses (prayer_id, user_id, body, is_answer, created_at)
		VALUES ($1, $2, $3, $4, NOW())
		RETURNING id, prayer_id, user_id, body, is_answer, created_at`,
		r.PrayerID, r.UserID, r.Body, r.IsAnswer,
	)
	if err != nil {
		return Response{}, fmt.Errorf("insert prayer response: %w", err)
	}
	return created, nil
}

func (s *SQLStore) ListResponses(ctx context.Context, prayerID int64) ([]Response, error) {
	responses := []Response{}
	err := s.db.SelectContext(ctx, &responses, `
		SELECT id, prayer_id, user_id, body, is_answer, created_at
		FROM prayer_responses
		WHERE prayer_id = $1
		ORDER BY created_at ASC, id ASC`,
		prayerID,
	)
	if err != nil {
		return nil, fmt.Errorf("list prayer responses: %w", err)
	}
	return responses, nil
}

// applyDefaults fills optional fields the same way the memory store does, so
// both backends agree on what a freshly created record looks like.
func applyDefaults(p *Prayer) {
	if p.VisibilityScope == "" {
		p.VisibilityScope = ScopeCommunity
	}
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.ModerationStatus == "" {
		p.ModerationStatus = ModerationPending
	}
}
