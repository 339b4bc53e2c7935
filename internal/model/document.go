package model

import "time"

// Document represents an uploaded file as stored in the `documents` table.
// Exactly one of ClaimID, QuoteID and OutsourcingID is non-nil: a document
// always belongs to a single parent submission. Content holds the raw bytes
// and is only selected by the download path; list and detail queries fetch
// metadata columns only.
type Document struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	MimeType      string    `json:"mime_type"`
	Size          int64     `json:"size"`
	Path          string    `json:"path,omitempty"`
	Content       []byte    `json:"-"`
	ClaimID       *string   `json:"claim_id,omitempty"`
	QuoteID       *string   `json:"quote_id,omitempty"`
	OutsourcingID *string   `json:"outsourcing_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

// Resource represents a downloadable public resource (brochures, forms,
// rate guides) as stored in the `resources` table.
type Resource struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	Category  string    `json:"category"`
	Filename  string    `json:"filename"`
	MimeType  string    `json:"mime_type"`
	Size      int64     `json:"size"`
	Content   []byte    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}
