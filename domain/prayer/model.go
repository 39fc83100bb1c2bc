package prayer

import (
	"strings"
	"time"
)

// Status is the display status of a prayer request.
type Status string

const (
	StatusActive   Status = "active"
	StatusResolved Status = "resolved"
	StatusArchived Status = "archived"
)

// VisibilityScope controls who can see a prayer in listings.
type VisibilityScope string

const (
	ScopeCommunity    VisibilityScope = "community"
	ScopeGroupOnly    VisibilityScope = "group-only"
	ScopeNearbyGroups VisibilityScope = "nearby-groups"
)

// Urgency is the classifier-assigned urgency level.
type Urgency string

const (
	UrgencyLow    Urgency = "low"
	UrgencyMedium Urgency = "medium"
	UrgencyHigh   Urgency = "high"
)

// ModerationStatus gates public visibility. Only approved prayers appear in
// public listings.
type ModerationStatus string

const (
	ModerationPending  ModerationStatus = "pending"
	ModerationApproved ModerationStatus = "approved"
	ModerationFlagged  ModerationStatus = "flagged"
	ModerationRejected ModerationStatus = "rejected"
)

// Prayer is a prayer request with its classification and moderation
// metadata. Categories and Urgency are set once at submission by the
// classifier pipeline; only a moderation update changes ModerationStatus
// afterwards.
type Prayer struct {
	ID               int64            `db:"id" json:"id"`
	Title            string           `db:"title" json:"title"`
	Body             string           `db:"body" json:"body"`
	UserID           *int64           `db:"user_id" json:"user_id,omitempty"`
	ChurchID         *int64           `db:"church_id" json:"church_id,omitempty"`
	GroupID          *int64           `db:"group_id" json:"group_id,omitempty"`
	IsAnonymous      bool             `db:"is_anonymous" json:"is_anonymous"`
	AnonymousName    *string          `db:"anonymous_name" json:"anonymous_name,omitempty"`
	IsPublic         bool             `db:"is_public" json:"is_public"`
	VisibilityScope  VisibilityScope  `db:"visibility_scope" json:"visibility_scope"`
	Status           Status           `db:"status" json:"status"`
	Categories       string           `db:"categories" json:"categories"`
	Urgency          *Urgency         `db:"urgency" json:"urgency,omitempty"`
	ModerationStatus ModerationStatus `db:"moderation_status" json:"moderation_status"`
	ModerationNotes  *string          `db:"moderation_notes" json:"moderation_notes,omitempty"`
	ModeratedBy      *int64           `db:"moderated_by" json:"moderated_by,omitempty"`
	ModeratedAt      *time.Time       `db:"moderated_at" json:"moderated_at,omitempty"`
	CreatedAt        time.Time        `db:"created_at" json:"created_at"`
	UpdatedAt        time.Time        `db:"updated_at" json:"updated_at"`
}

// CategoryList splits the stored comma-separated categories.
func (p Prayer) CategoryList() []string {
	return SplitCategories(p.Categories)
}

// HasCategory reports whether the prayer carries the given category label.
func (p Prayer) HasCategory(category string) bool {
	for _, c := range p.CategoryList() {
		if c == category {
			return true
		}
	}
	return false
}

// JoinCategories renders an ordered category list in storage form.
func JoinCategories(categories []string) string {
	return strings.Join(categories, ", ")
}

// SplitCategories parses the storage form back into an ordered list.
func SplitCategories(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}

// CanTransition reports whether a display-status change is allowed. Status
// only moves forward: active to resolved, and active or resolved to
// archived.
func CanTransition(from, to Status) bool {
	switch from {
	case StatusActive:
		return to == StatusResolved || to == StatusArchived
	case StatusResolved:
		return to == StatusArchived
	default:
		return false
	}
}

// Response is a follow-up on a prayer. A response marked as an answer
// resolves the prayer.
type Response struct {
	ID        int64     `db:"id" json:"id"`
	PrayerID  int64     `db:"prayer_id" json:"prayer_id"`
	UserID    *int64    `db:"user_id" json:"user_id,omitempty"`
	Body      string    `db:"body" json:"body"`
	IsAnswer  bool      `db:"is_answer" json:"is_answer"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// SubmitRequest is the submission payload.
type SubmitRequest struct {
	Title           string          `json:"title"`
	Body            string          `json:"body"`
	ChurchID        *int64          `json:"church_id"`
	GroupID         *int64          `json:"group_id"`
	IsAnonymous     bool            `json:"is_anonymous"`
	AnonymousName   string          `json:"anonymous_name"`
	VisibilityScope VisibilityScope `json:"visibility_scope"`
}

// UpdateStatusRequest changes the display status.
type UpdateStatusRequest struct {
	Status Status `json:"status"`
}

// UpdateModerationRequest is an operator override of the moderation outcome.
type UpdateModerationRequest struct {
	ModerationStatus ModerationStatus `json:"moderation_status"`
	Notes            string           `json:"notes"`
}

// RespondRequest adds a response to a prayer.
type RespondRequest struct {
	Body     string `json:"body"`
	IsAnswer bool   `json:"is_answer"`
}
