package rewarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/uptrace/bun"
)

// EpochDBImpl handles database operations for the epoch counter.
type EpochDBImpl struct{}

var _ EpochRepository = (*EpochDBImpl)(nil)

// Current reads the epoch state, creating the baseline row on first use.
// Concurrent first calls race on the insert; ON CONFLICT DO NOTHING makes the
// loser fall through to the read.
func (r *EpochDBImpl) Current(ctx context.Context, db bun.IDB) (*EpochState, error) {
	state := new(EpochState)
	err := db.NewSelect().
		Model(state).
		Where("id = ?", epochStateID).
		Scan(ctx)
	if err == nil {
		return state, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to read epoch state: %w", err)
	}

	seed := &EpochState{
		ID:          epochStateID,
		EpochNumber: BaselineEpoch,
		StartedAt:   time.Now().UTC(),
	}
	if _, err := db.NewInsert().
		Model(seed).
		On("CONFLICT (id) DO NOTHING").
		Exec(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize epoch state: %w", err)
	}

	state = new(EpochState)
	if err := db.NewSelect().
		Model(state).
		Where("id = ?", epochStateID).
		Scan(ctx); err != nil {
		return nil, fmt.Errorf("failed to read epoch state after init: %w", err)
	}
	return state, nil
}

// Advance increments the counter in place and returns the new epoch number.
func (r *EpochDBImpl) Advance(ctx context.Context, db bun.IDB) (int64, error) {
	// Ensure the row exists before incrementing.
	if _, err := r.Current(ctx, db); err != nil {
		return 0, err
	}

	var epoch int64
	err := db.NewUpdate().
		Model((*EpochState)(nil)).
		Set("epoch_number = epoch_number + 1").
		Set("started_at = ?", time.Now().UTC()).
		Where("id = ?", epochStateID).
		Returning("epoch_number").
		Scan(ctx, &epoch)
	if err != nil {
		return 0, fmt.Errorf("failed to advance epoch: %w", err)
	}
	return epoch, nil
}

// DeleteState drops the counter row entirely.
func (r *EpochDBImpl) DeleteState(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewDelete().
		Model((*EpochState)(nil)).
		Where("id = ?", epochStateID).
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete epoch state: %w", err)
	}
	return nil
}
