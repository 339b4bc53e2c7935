package model

import "time"

// Outsourcing request statuses: pending -> in_progress -> completed/rejected.
const (
	OutsourcingStatusPending    = "pending"
	OutsourcingStatusInProgress = "in_progress"
	OutsourcingStatusCompleted  = "completed"
	OutsourcingStatusRejected   = "rejected"
)

// OutsourcingRequest represents a corporate outsourcing request as stored in
// the `outsourcing_requests` table. Services is persisted as a JSON array in
// a single column and unmarshalled by the repository.
type OutsourcingRequest struct {
	ID                  string     `json:"id"`
	OrganizationName    string     `json:"organization_name"`
	Services            []string   `json:"services"`
	NatureOfOutsourcing string     `json:"nature_of_outsourcing"`
	BudgetRange         string     `json:"budget_range"`
	Status              string     `json:"status"`
	ContactName         string     `json:"contact_name"`
	Email               string     `json:"email"`
	Phone               string     `json:"phone"`
	UserID              *uint64    `json:"user_id,omitempty"`
	Documents           []Document `json:"documents,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

// ValidOutsourcingStatus reports whether s is an accepted outsourcing status.
func ValidOutsourcingStatus(s string) bool {
	switch s {
	case OutsourcingStatusPending, OutsourcingStatusInProgress,
		OutsourcingStatusCompleted, OutsourcingStatusRejected:
		return true
	}
	return false
}
