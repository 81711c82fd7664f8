package rewarddb

import "errors"

// Sentinel errors for the repository layer.
var (
	// ErrNoSnapshots indicates no archive snapshot has been written yet.
	ErrNoSnapshots = errors.New("no archive snapshots exist")

	// ErrSnapshotNotFound indicates no snapshot carries the requested period label.
	ErrSnapshotNotFound = errors.New("archive snapshot not found")

	// ErrClaimNotFound indicates the player has never claimed a reward.
	ErrClaimNotFound = errors.New("claim record not found")
)
