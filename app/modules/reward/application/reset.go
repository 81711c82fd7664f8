package rewardservice

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/uptrace/bun"

	"github.com/ridgeline-games/arenarank/app/events"
	leaderboarddomain "github.com/ridgeline-games/arenarank/app/modules/leaderboard/domain"
	rewarddomain "github.com/ridgeline-games/arenarank/app/modules/reward/domain"
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
)

// Reset closes out the current epoch: it snapshots the top of the ledger into
// an immutable archive, clears the ledger, and advances the epoch counter.
// The steps run in one transaction, ordered archive-first: a partial failure
// can leave "archive written, ledger not yet cleared", never an advanced epoch
// with no archive behind it.
func (s *Service) Reset(ctx context.Context) (ResetResult, error) {
	return withTelemetry(s, ctx, "Reset", func(ctx context.Context) (ResetResult, error) {
		result, err := runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (ResetResult, error) {
			state, err := s.epochs.Current(ctx, db)
			if err != nil {
				return ResetResult{}, err
			}
			closingEpoch := state.EpochNumber + 1

			top, err := s.scores.ListRanked(ctx, db, leaderboarddomain.TopListSize)
			if err != nil {
				return ResetResult{}, fmt.Errorf("failed to read top entries for archive: %w", err)
			}

			players := make([]rewarddb.ArchivedPlayer, len(top))
			for i, e := range top {
				players[i] = rewarddb.ArchivedPlayer{
					PlayerID:    e.PlayerID,
					DisplayName: e.DisplayName,
					Score:       e.Score,
					Rank:        i + 1,
				}
			}

			period := rewarddomain.PeriodLabel(s.policies.ArchivePeriod, closingEpoch, s.now())
			snapshot := &rewarddb.ArchiveSnapshot{
				PeriodLabel: period,
				EpochNumber: closingEpoch,
				TopPlayers:  players,
				CreatedAt:   s.now(),
			}
			if err := s.archives.Insert(ctx, db, snapshot); err != nil {
				return ResetResult{}, err
			}

			if _, err := s.scores.ClearAll(ctx, db); err != nil {
				return ResetResult{}, err
			}

			newEpoch, err := s.epochs.Advance(ctx, db)
			if err != nil {
				return ResetResult{}, err
			}
			if newEpoch != closingEpoch {
				return ResetResult{}, fmt.Errorf("epoch advanced to %d, expected %d", newEpoch, closingEpoch)
			}

			return ResetResult{
				Period:   period,
				Archived: len(players),
				NewEpoch: newEpoch,
			}, nil
		})
		if err != nil {
			return ResetResult{}, err
		}

		s.logger.InfoContext(ctx, "Epoch reset completed",
			slog.String("period", result.Period),
			slog.Int("archived", result.Archived),
			slog.Int64("new_epoch", result.NewEpoch),
		)
		s.publishEvent(ctx, events.EpochReset, events.EpochResetPayload{
			Period:   result.Period,
			NewEpoch: result.NewEpoch,
			Archived: result.Archived,
		})
		return result, nil
	})
}

// DeveloperReset wipes the ledger, every archive snapshot, every claim record,
// and the epoch counter. The next CurrentEpoch call re-initializes at the
// baseline. Irreversible; intended for non-production use only.
func (s *Service) DeveloperReset(ctx context.Context) error {
	_, err := withTelemetry(s, ctx, "DeveloperReset", func(ctx context.Context) (struct{}, error) {
		return runInTx(s, ctx, func(ctx context.Context, db bun.IDB) (struct{}, error) {
			if _, err := s.scores.ClearAll(ctx, db); err != nil {
				return struct{}{}, err
			}
			if err := s.archives.DeleteAll(ctx, db); err != nil {
				return struct{}{}, err
			}
			if err := s.claims.DeleteAll(ctx, db); err != nil {
				return struct{}{}, err
			}
			if err := s.epochs.DeleteState(ctx, db); err != nil {
				return struct{}{}, err
			}
			return struct{}{}, nil
		})
	})
	return err
}
