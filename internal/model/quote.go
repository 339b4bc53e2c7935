package model

import "time"

// Quote statuses accepted by the admin status-update endpoint.
const (
	QuoteStatusPending  = "pending"
	QuoteStatusQuoted   = "quoted"
	QuoteStatusAccepted = "accepted"
	QuoteStatusExpired  = "expired"
)

// Quote represents a quote request as stored in the `quotes` table. Budget
// and Coverage are free-form because the public form accepts ranges such as
// "50k-100k" alongside exact figures.
type Quote struct {
	ID            string     `json:"id"`
	Product       string     `json:"product"`
	Budget        string     `json:"budget"`
	Coverage      string     `json:"coverage"`
	ContactMethod string     `json:"contact_method"`
	Status        string     `json:"status"`
	FullName      string     `json:"full_name"`
	Email         string     `json:"email"`
	Phone         string     `json:"phone"`
	UserID        *uint64    `json:"user_id,omitempty"`
	Documents     []Document `json:"documents,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
	UpdatedAt     time.Time  `json:"updated_at"`
}

// ValidQuoteStatus reports whether s is an accepted quote status.
func ValidQuoteStatus(s string) bool {
	switch s {
	case QuoteStatusPending, QuoteStatusQuoted, QuoteStatusAccepted, QuoteStatusExpired:
		return true
	}
	return false
}
