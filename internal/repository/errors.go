// Package repository contains data access logic separated from HTTP
// handlers. Each entity gets its own repository over a shared *sql.DB.
// Sentinel errors defined here let handlers translate failure scenarios
// into the right HTTP responses without inspecting driver error strings.
package repository

import "errors"

// Not-found sentinels, one per entity so handler messages can name the
// entity ("Claim not found") without formatting at the call site.
var (
	ErrClaimNotFound        = errors.New("claim not found")
	ErrQuoteNotFound        = errors.New("quote not found")
	ErrConsultationNotFound = errors.New("consultation not found")
	ErrOutsourcingNotFound  = errors.New("outsourcing request not found")
	ErrDiasporaNotFound     = errors.New("diaspora request not found")
	ErrPaymentNotFound      = errors.New("payment not found")
	ErrDocumentNotFound     = errors.New("document not found")
	ErrResourceNotFound     = errors.New("resource not found")
	ErrUserNotFound         = errors.New("user not found")
)

// ErrEmailExists is returned when registration collides with an existing
// email address.
var ErrEmailExists = errors.New("email already exists")

// ErrForbidden is returned when the caller attempts an operation on a
// resource they may not touch. Handlers translate this into HTTP 403.
var ErrForbidden = errors.New("forbidden")
