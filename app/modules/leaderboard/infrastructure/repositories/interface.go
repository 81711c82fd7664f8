package leaderboarddb

import (
	"context"

	"github.com/uptrace/bun"
)

// Repository defines the persistence operations for the score ledger.
// Methods accept a bun.IDB so callers can pass either the root *bun.DB or an
// open transaction.
type Repository interface {
	// UpsertBest writes the entry if the player is new or the new score is
	// strictly greater than the stored one, as a single conditional statement.
	// Reports whether the stored row changed.
	UpsertBest(ctx context.Context, db bun.IDB, entry *ScoreEntry) (bool, error)

	// ListRanked returns entries ordered by score descending with the
	// deterministic tie-break (earlier achieved_at, then player_id).
	// limit <= 0 returns the full ledger.
	ListRanked(ctx context.Context, db bun.IDB, limit int) ([]ScoreEntry, error)

	// ClearAll removes every ledger row and reports how many were deleted.
	ClearAll(ctx context.Context, db bun.IDB) (int64, error)
}
