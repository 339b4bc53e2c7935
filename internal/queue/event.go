// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records received submissions.
package queue

// SubmissionReceivedEvent is published whenever a public form submission is
// accepted, whether it reached the database or only the in-memory buffer.
// It carries enough information for downstream consumers to log, notify the
// operations team, or trigger analytics without querying the primary
// database.
type SubmissionReceivedEvent struct {
	Entity     string `json:"entity"`    // claims, quotes, consultations, outsourcing, diaspora, payments
	ID         string `json:"id"`        // application-generated submission id
	FullName   string `json:"full_name,omitempty"`
	Email      string `json:"email"`
	Buffered   bool   `json:"buffered"`  // true when the record only reached the write buffer
	ReceivedAt string `json:"received_at"`
}
