package leaderboarddb

import "errors"

// Sentinel errors for the repository layer.
// These represent infrastructure-level conditions callers may want
// to handle specially (not business-domain errors).
var (
	// ErrEntryNotFound indicates the requested player has no ledger row.
	ErrEntryNotFound = errors.New("score entry not found")
)
