// Sentinel errors shared across layers. Services return these (possibly
// wrapped with detail) and the request boundary maps them to redirects with
// a one-line message; the process never crashes on them.
package domain

import "errors"

var (
	// ErrUnknownUser indicates no account with the given username exists in
	// the role's store.
	ErrUnknownUser = errors.New("unknown user")

	// ErrInvalidCredential indicates the secret did not match the stored hash.
	ErrInvalidCredential = errors.New("invalid credential")

	// ErrValidation indicates missing, malformed or duplicate registration
	// fields. Wrapped with the offending field's detail.
	ErrValidation = errors.New("validation failed")

	// ErrNotFound indicates a missing account or leave record.
	ErrNotFound = errors.New("not found")

	// ErrForbidden indicates a role or department/hostel scope mismatch.
	ErrForbidden = errors.New("forbidden")

	// ErrNoSession indicates the session reference is absent, expired or
	// invalidated.
	ErrNoSession = errors.New("no session")

	// ErrAlreadyReviewed indicates a review action on a track that already
	// holds a terminal decision.
	ErrAlreadyReviewed = errors.New("already reviewed")
)
