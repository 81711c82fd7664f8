package rewarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// ClaimDBImpl handles database operations for claim records.
type ClaimDBImpl struct{}

var _ ClaimRepository = (*ClaimDBImpl)(nil)

// TryClaim is the anti-double-claim write. The epoch comparison happens inside
// the statement, so concurrent claims for the same player resolve to exactly
// one winner per epoch.
func (r *ClaimDBImpl) TryClaim(ctx context.Context, db bun.IDB, playerID string, epoch int64) (bool, error) {
	record := &ClaimRecord{
		PlayerID:         playerID,
		LastClaimedEpoch: epoch,
		ClaimedAt:        time.Now().UTC(),
	}

	res, err := db.NewInsert().
		Model(record).
		On("CONFLICT (player_id) DO UPDATE").
		Set("last_claimed_epoch = EXCLUDED.last_claimed_epoch").
		Set("claimed_at = EXCLUDED.claimed_at").
		Where("cr.last_claimed_epoch < EXCLUDED.last_claimed_epoch").
		Exec(ctx)
	if err != nil {
		return false, fmt.Errorf("failed to record claim: %w", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected for claim: %w", err)
	}
	return affected > 0, nil
}

func (r *ClaimDBImpl) Get(ctx context.Context, db bun.IDB, playerID string) (*ClaimRecord, error) {
	record := new(ClaimRecord)
	err := db.NewSelect().
		Model(record).
		Where("player_id = ?", playerID).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrClaimNotFound
		}
		return nil, fmt.Errorf("failed to get claim record: %w", err)
	}
	return record, nil
}

func (r *ClaimDBImpl) DeleteAll(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewDelete().
		Model((*ClaimRecord)(nil)).
		Where("TRUE").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete claim records: %w", err)
	}
	return nil
}
