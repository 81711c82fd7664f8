package shared

import "errors"

// Business-rule failures shared across modules. Handlers map these to HTTP
// status codes; repositories and services detect them with errors.Is.
var (
	// ErrInvalidInput indicates a malformed, out-of-range, or unauthenticated
	// submission. Returned before any mutation.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound indicates the requested player or archive does not exist.
	ErrNotFound = errors.New("not found")

	// ErrNotEligible indicates the player is not in the latest archive
	// snapshot and the archive eligibility policy is active.
	ErrNotEligible = errors.New("player not eligible for reward")

	// ErrAlreadyClaimed indicates the player has already claimed a reward for
	// the current epoch.
	ErrAlreadyClaimed = errors.New("reward already claimed this epoch")

	// ErrUnauthorized indicates a bad admin credential.
	ErrUnauthorized = errors.New("unauthorized")
)
