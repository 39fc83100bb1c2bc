package group

import "time"

// Group is a prayer group within a church.
type Group struct {
	ID          int64     `db:"id" json:"id"`
	ChurchID    int64     `db:"church_id" json:"church_id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	CreatedBy   *int64    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Member ties a user to a group.
type Member struct {
	ID       int64     `db:"id" json:"id"`
	GroupID  int64     `db:"group_id" json:"group_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// CreateRequest starts a new group in a church.
type CreateRequest struct {
	ChurchID    int64   `json:"church_id"`
	Name        string  `json:"name"`
	Description *string `json:"description"`
}
