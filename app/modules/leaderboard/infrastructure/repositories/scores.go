package leaderboarddb

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"
)

// ScoreDBImpl handles database operations for the score ledger.
type ScoreDBImpl struct{}

var _ Repository = (*ScoreDBImpl)(nil)

// UpsertBest performs the conditional "keep the max" write. Two concurrent
// submissions for the same player cannot lose the higher score: the comparison
// happens inside the statement, not in application code.
func (r *ScoreDBImpl) UpsertBest(ctx context.Context, db bun.IDB, entry *ScoreEntry) (bool, error) {
	res, err := db.NewInsert().
		Model(entry).
		On("CONFLICT (player_id) DO UPDATE").
		Set("score = EXCLUDED.score").
		Set("display_name = EXCLUDED.display_name").
		Set("achieved_at = EXCLUDED.achieved_at").
		Where("se.score < EXCLUDED.score").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to upsert score entry: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected for score upsert: %w", err)
	}
	return affected > 0, nil
}

// ListRanked returns the ledger in ranking order.
func (r *ScoreDBImpl) ListRanked(ctx context.Context, db bun.IDB, limit int) ([]ScoreEntry, error) {
	var entries []ScoreEntry
	q := db.NewSelect().
		Model(&entries).
		OrderExpr("score DESC, achieved_at ASC, player_id ASC")
	if limit > 0 {
		q = q.Limit(limit)
	}
	if err := q.Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to list ranked entries: %w", err)
	}
	return entries, nil
}

// ClearAll wipes the ledger. Used by the reset transaction.
func (r *ScoreDBImpl) ClearAll(ctx context.Context, db bun.IDB) (int64, error) {
	res, err := db.NewDelete().
		Model((*ScoreEntry)(nil)).
		Where("TRUE").
		Exec(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to clear score entries: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected for ledger clear: %w", err)
	}
	return affected, nil
}
