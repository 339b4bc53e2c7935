package model

import "time"

// Diaspora request statuses mirror the consultation lifecycle.
const (
	DiasporaStatusPending   = "pending"
	DiasporaStatusScheduled = "scheduled"
	DiasporaStatusCompleted = "completed"
	DiasporaStatusCancelled = "cancelled"
)

// DiasporaRequest represents a diaspora-service request as stored in the
// `diaspora_requests` table. Timezone is an IANA zone name supplied by the
// client so callbacks can be scheduled in the requester's local time.
type DiasporaRequest struct {
	ID              string     `json:"id"`
	Country         string     `json:"country"`
	Timezone        string     `json:"timezone"`
	ServiceInterest string     `json:"service_interest"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	Status          string     `json:"status"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	UserID          *uint64    `json:"user_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ValidDiasporaStatus reports whether s is an accepted diaspora status.
func ValidDiasporaStatus(s string) bool {
	switch s {
	case DiasporaStatusPending, DiasporaStatusScheduled,
		DiasporaStatusCompleted, DiasporaStatusCancelled:
		return true
	}
	return false
}
