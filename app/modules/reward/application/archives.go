package rewardservice

import (
	"context"
	"errors"
	"fmt"

	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/app/shared"
)

// GetArchive returns the stored snapshot for a period label.
func (s *Service) GetArchive(ctx context.Context, periodLabel string) (*rewarddb.ArchiveSnapshot, error) {
	return withTelemetry(s, ctx, "GetArchive", func(ctx context.Context) (*rewarddb.ArchiveSnapshot, error) {
		if periodLabel == "" {
			return nil, fmt.Errorf("%w: period label is required", shared.ErrInvalidInput)
		}
		snapshot, err := s.archives.GetByPeriod(ctx, s.db, periodLabel)
		if err != nil {
			if errors.Is(err, rewarddb.ErrSnapshotNotFound) {
				return nil, fmt.Errorf("%w: archive %q", shared.ErrNotFound, periodLabel)
			}
			return nil, err
		}
		return snapshot, nil
	})
}
