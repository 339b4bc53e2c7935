package model

import "time"

// Consultation statuses. A consultation moves from pending to scheduled once
// an admin assigns a meeting slot, then to completed or cancelled.
const (
	ConsultationStatusPending   = "pending"
	ConsultationStatusScheduled = "scheduled"
	ConsultationStatusCompleted = "completed"
	ConsultationStatusCancelled = "cancelled"
)

// Consultation represents a consultation request as stored in the
// `consultations` table. ScheduledAt and MeetingLink stay empty until an
// admin schedules the meeting.
type Consultation struct {
	ID              string     `json:"id"`
	ServiceType     string     `json:"service_type"`
	ScheduledAt     *time.Time `json:"scheduled_at,omitempty"`
	MeetingLink     string     `json:"meeting_link,omitempty"`
	DurationMinutes int        `json:"duration_minutes,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	Status          string     `json:"status"`
	FullName        string     `json:"full_name"`
	Email           string     `json:"email"`
	Phone           string     `json:"phone"`
	UserID          *uint64    `json:"user_id,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

// ValidConsultationStatus reports whether s is an accepted consultation status.
func ValidConsultationStatus(s string) bool {
	switch s {
	case ConsultationStatusPending, ConsultationStatusScheduled,
		ConsultationStatusCompleted, ConsultationStatusCancelled:
		return true
	}
	return false
}
