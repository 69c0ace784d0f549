package domain

import "errors"

// Sentinel errors shared across services. Repositories and services wrap
// these with context via fmt.Errorf("...: %w", err); the HTTP layer maps
// them to response codes with errors.Is.
var (
	// ErrUnauthorized is returned when the caller's identity cannot be resolved.
	ErrUnauthorized = errors.New("authorization required")
	// ErrInvalidInput is returned for malformed filters, missing required
	// fields, and unparsable dates or numbers.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotFound is returned when a key does not resolve to an existing entity.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned for duplicate registrations and sold-out conferences.
	ErrConflict = errors.New("conflict")
	// ErrForbidden is returned when the actor lacks ownership rights.
	ErrForbidden = errors.New("forbidden")
	// ErrInternal is returned for store or cache failures and for
	// transactions that could not commit after retries. Retryable by the client.
	ErrInternal = errors.New("internal error")
)
