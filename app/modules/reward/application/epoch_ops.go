package rewardservice

import (
	"context"
	"fmt"
)

// CurrentEpoch returns the active reward period number, initializing the
// counter at the baseline if no epoch state exists yet.
func (s *Service) CurrentEpoch(ctx context.Context) (int64, error) {
	return withTelemetry(s, ctx, "CurrentEpoch", func(ctx context.Context) (int64, error) {
		state, err := s.epochs.Current(ctx, s.db)
		if err != nil {
			return 0, fmt.Errorf("failed to resolve current epoch: %w", err)
		}
		return state.EpochNumber, nil
	})
}
