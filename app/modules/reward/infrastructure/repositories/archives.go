package rewarddb

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/uptrace/bun"
)

// ArchiveDBImpl handles database operations for archive snapshots.
type ArchiveDBImpl struct{}

var _ ArchiveRepository = (*ArchiveDBImpl)(nil)

func (r *ArchiveDBImpl) Insert(ctx context.Context, db bun.IDB, snapshot *ArchiveSnapshot) error {
	if _, err := db.NewInsert().Model(snapshot).Exec(ctx); err != nil {
		return fmt.Errorf("failed to insert archive snapshot: %w", err)
	}
	return nil
}

func (r *ArchiveDBImpl) Latest(ctx context.Context, db bun.IDB) (*ArchiveSnapshot, error) {
	snapshot := new(ArchiveSnapshot)
	err := db.NewSelect().
		Model(snapshot).
		OrderExpr("epoch_number DESC").
		Limit(1).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNoSnapshots
		}
		return nil, fmt.Errorf("failed to get latest archive snapshot: %w", err)
	}
	return snapshot, nil
}

func (r *ArchiveDBImpl) GetByPeriod(ctx context.Context, db bun.IDB, periodLabel string) (*ArchiveSnapshot, error) {
	snapshot := new(ArchiveSnapshot)
	err := db.NewSelect().
		Model(snapshot).
		Where("period_label = ?", periodLabel).
		Scan(ctx)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrSnapshotNotFound
		}
		return nil, fmt.Errorf("failed to get archive snapshot %q: %w", periodLabel, err)
	}
	return snapshot, nil
}

func (r *ArchiveDBImpl) DeleteAll(ctx context.Context, db bun.IDB) error {
	if _, err := db.NewDelete().
		Model((*ArchiveSnapshot)(nil)).
		Where("TRUE").
		Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete archive snapshots: %w", err)
	}
	return nil
}
