package supabase

import "errors"

// Typed errors for gateway operations.
// These allow services to use errors.Is() for reliable error detection
// instead of fragile string matching.
var (
	// ErrUnauthorized indicates the request failed due to an invalid API key (HTTP 401).
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the request was rejected by a row-level policy (HTTP 403).
	ErrForbidden = errors.New("forbidden")

	// ErrNotFound indicates the requested row or object does not exist (HTTP 404).
	ErrNotFound = errors.New("not found")

	// ErrBadRequest indicates the request was malformed or invalid (HTTP 400).
	ErrBadRequest = errors.New("bad request")

	// ErrConflict indicates a uniqueness or upsert conflict (HTTP 409).
	ErrConflict = errors.New("conflict")

	// ErrPayloadTooLarge indicates the upload exceeded the project's object size limit (HTTP 413).
	ErrPayloadTooLarge = errors.New("payload too large")

	// ErrRateLimited indicates the project's request quota was exceeded (HTTP 429).
	ErrRateLimited = errors.New("rate limited")
)

// IsNotFound returns true if the error indicates a missing row or object.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
