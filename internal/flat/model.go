package flat

import "time"

// AssignmentStatus represents the status of a room assignment
type AssignmentStatus string

const (
	AssignmentStatusPending  AssignmentStatus = "pending"
	AssignmentStatusAccepted AssignmentStatus = "accepted"
	AssignmentStatusRejected AssignmentStatus = "rejected"
)

// Flat represents a shared household
type Flat struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	District  *string   `json:"district,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Member is someone entitled to share the flat's costs: the owner, counted
// from the flat's creation, or an assignee with an accepted room assignment,
// counted from the acceptance date. Members only ever join; leaving a flat is
// handled elsewhere and never rewrites settlement history.
type Member struct {
	ID          string    `json:"id"`
	DisplayName *string   `json:"display_name,omitempty"`
	AvatarURL   *string   `json:"avatar_url,omitempty"`
	JoinedOn    time.Time `json:"joined_on"`
}

// EligibleOn reports whether the member shares costs for an expense dated on
// the given day.
func (m *Member) EligibleOn(date time.Time) bool {
	return !dateOnly(m.JoinedOn).After(dateOnly(date))
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
