package church

import "time"

// Status is the review state of a church listing. Newly submitted churches
// wait for operator approval before they appear publicly.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Church is a congregation that prayers and groups can attach to.
type Church struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description *string   `db:"description" json:"description,omitempty"`
	Address     *string   `db:"address" json:"address,omitempty"`
	City        *string   `db:"city" json:"city,omitempty"`
	Website     *string   `db:"website" json:"website,omitempty"`
	Status      Status    `db:"status" json:"status"`
	CreatedBy   *int64    `db:"created_by" json:"created_by,omitempty"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Member ties a user to a church. Verification is a church-admin action and
// gates group creation.
type Member struct {
	ID       int64     `db:"id" json:"id"`
	ChurchID int64     `db:"church_id" json:"church_id"`
	UserID   int64     `db:"user_id" json:"user_id"`
	Role     string    `db:"role" json:"role"`
	Verified bool      `db:"verified" json:"verified"`
	JoinedAt time.Time `db:"joined_at" json:"joined_at"`
}

// SubmitRequest proposes a new church listing.
type SubmitRequest struct {
	Name        string  `json:"name"`
	Description *string `json:"description"`
	Address     *string `json:"address"`
	City        *string `json:"city"`
	Website     *string `json:"website"`
}

// ReviewRequest is the operator decision on a pending listing.
type ReviewRequest struct {
	Status Status `json:"status"`
}
