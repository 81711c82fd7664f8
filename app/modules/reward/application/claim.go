package rewardservice

import (
	"context"
	"errors"
	"fmt"

	"github.com/ridgeline-games/arenarank/app/events"
	rewarddomain "github.com/ridgeline-games/arenarank/app/modules/reward/domain"
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/app/shared"
	"github.com/ridgeline-games/arenarank/config"
)

// Claim grants the player's once-per-epoch reward. Eligibility is checked
// before any mutation; the claim write itself is a single conditional upsert,
// so two concurrent claims for the same epoch cannot both succeed.
func (s *Service) Claim(ctx context.Context, playerID string) (ClaimResult, error) {
	return withTelemetry(s, ctx, "Claim", func(ctx context.Context) (ClaimResult, error) {
		if playerID == "" {
			return ClaimResult{}, fmt.Errorf("%w: player id is required", shared.ErrInvalidInput)
		}

		state, err := s.epochs.Current(ctx, s.db)
		if err != nil {
			return ClaimResult{}, fmt.Errorf("failed to resolve current epoch: %w", err)
		}
		epoch := state.EpochNumber

		if s.policies.Eligibility == config.EligibilityArchive {
			latest, err := s.archives.Latest(ctx, s.db)
			if err != nil && !errors.Is(err, rewarddb.ErrNoSnapshots) {
				return ClaimResult{}, err
			}
			if !rewarddomain.IsEligible(s.policies.Eligibility, latest, playerID) {
				return ClaimResult{}, fmt.Errorf("%w: %s is not in the latest archive", shared.ErrNotEligible, playerID)
			}
		}

		granted, err := s.claims.TryClaim(ctx, s.db, playerID, epoch)
		if err != nil {
			return ClaimResult{}, err
		}
		if !granted {
			return ClaimResult{}, fmt.Errorf("%w: epoch %d", shared.ErrAlreadyClaimed, epoch)
		}

		s.publishEvent(ctx, events.RewardClaimed, events.RewardClaimedPayload{
			PlayerID: playerID,
			Epoch:    epoch,
		})
		return ClaimResult{Granted: true, Epoch: epoch}, nil
	})
}
