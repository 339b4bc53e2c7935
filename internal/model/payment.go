package model

import (
	"encoding/json"
	"time"
)

// Payment statuses. A payment is created pending and settles to completed or
// failed; there is no other transition.
const (
	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment represents a payment record as stored in the `payments` table.
// TransactionID is a snowflake id assigned when the payment is accepted.
// Metadata is an opaque JSON document passed through from the gateway.
type Payment struct {
	ID            string          `json:"id"`
	Amount        float64         `json:"amount"`
	Currency      string          `json:"currency"`
	PaymentMethod string          `json:"payment_method"`
	Reference     string          `json:"reference"`
	TransactionID string          `json:"transaction_id"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	Status        string          `json:"status"`
	Email         string          `json:"email"`
	UserID        *uint64         `json:"user_id,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// ValidPaymentStatus reports whether s is an accepted payment status.
func ValidPaymentStatus(s string) bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed:
		return true
	}
	return false
}
