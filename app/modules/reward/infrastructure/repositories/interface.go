package rewarddb

import (
	"context"

	"github.com/uptrace/bun"
)

// EpochRepository defines the persistence operations for the epoch counter.
type EpochRepository interface {
	// Current returns the epoch state, lazily initializing it at the
	// baseline on first use.
	Current(ctx context.Context, db bun.IDB) (*EpochState, error)

	// Advance atomically increments the counter and returns the new value.
	Advance(ctx context.Context, db bun.IDB) (int64, error)

	// DeleteState removes the state row so the next Current call
	// re-initializes at the baseline.
	DeleteState(ctx context.Context, db bun.IDB) error
}

// ArchiveRepository defines the persistence operations for epoch snapshots.
type ArchiveRepository interface {
	Insert(ctx context.Context, db bun.IDB, snapshot *ArchiveSnapshot) error

	// Latest returns the snapshot with the highest epoch number, or
	// ErrNoSnapshots.
	Latest(ctx context.Context, db bun.IDB) (*ArchiveSnapshot, error)

	// GetByPeriod returns the snapshot for a period label, or
	// ErrSnapshotNotFound.
	GetByPeriod(ctx context.Context, db bun.IDB, periodLabel string) (*ArchiveSnapshot, error)

	DeleteAll(ctx context.Context, db bun.IDB) error
}

// ClaimRepository defines the persistence operations for claim records.
type ClaimRepository interface {
	// TryClaim records a claim for the epoch as a single conditional upsert.
	// It reports false when the player already claimed this epoch or a later
	// one; two concurrent claims for the same epoch cannot both succeed.
	TryClaim(ctx context.Context, db bun.IDB, playerID string, epoch int64) (bool, error)

	// Get returns the player's claim record, or ErrClaimNotFound.
	Get(ctx context.Context, db bun.IDB, playerID string) (*ClaimRecord, error)

	DeleteAll(ctx context.Context, db bun.IDB) error
}
