package model

import "time"

// Claim statuses accepted by the admin status-update endpoint.
const (
	ClaimStatusPending  = "pending"
	ClaimStatusInReview = "in_review"
	ClaimStatusApproved = "approved"
	ClaimStatusRejected = "rejected"
)

// Claim represents a submitted insurance claim as stored in the `claims`
// table. The ID is a KSUID generated by the application at submission time
// so that records accepted while the database is unreachable carry the same
// id shape as persisted rows. UserID is nil for anonymous submissions.
type Claim struct {
	ID            string     `json:"id"`
	PolicyNumber  string     `json:"policy_number"`
	ClaimType     string     `json:"claim_type"`
	IncidentDate  time.Time  `json:"incident_date"`
	EstimatedLoss float64    `json:"estimated_loss"`
	Description   string     `json:"description"`
	Status        string     `json:"status"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	UserID        *uint64    `json:"user_id,omitempty"`
	Documents     []Document `json:"documents,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ValidClaimStatus reports whether s is an accepted claim status.
func ValidClaimStatus(s string) bool {
	switch s {
	case ClaimStatusPending, ClaimStatusInReview, ClaimStatusApproved, ClaimStatusRejected:
		return true
	}
	return false
}
