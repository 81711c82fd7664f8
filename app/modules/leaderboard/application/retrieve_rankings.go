package leaderboardservice

import (
	"context"
	"fmt"

	leaderboarddomain "github.com/ridgeline-games/arenarank/app/modules/leaderboard/domain"
	"github.com/ridgeline-games/arenarank/app/shared"
)

// TopN returns the leading entries of the current ranking. The limit is
// clamped to the canonical top list size.
func (s *Service) TopN(ctx context.Context, limit int) ([]leaderboarddomain.RankedEntry, error) {
	return withTelemetry(s, ctx, "TopN", func(ctx context.Context) ([]leaderboarddomain.RankedEntry, error) {
		if limit <= 0 || limit > leaderboarddomain.TopListSize {
			limit = leaderboarddomain.TopListSize
		}
		entries, err := s.repo.ListRanked(ctx, s.db, limit)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch ranking: %w", err)
		}
		return leaderboarddomain.BuildRanking(entries), nil
	})
}

// Around returns the two-tier view for a player: the first entries of the top
// list and, when the player is ranked below it, the window of neighbors around
// their position. The total order is computed once per call.
func (s *Service) Around(ctx context.Context, playerID string) (AroundResult, error) {
	return withTelemetry(s, ctx, "Around", func(ctx context.Context) (AroundResult, error) {
		if playerID == "" {
			return AroundResult{}, fmt.Errorf("%w: player id is required", shared.ErrInvalidInput)
		}

		entries, err := s.repo.ListRanked(ctx, s.db, 0)
		if err != nil {
			return AroundResult{}, fmt.Errorf("failed to fetch ranking: %w", err)
		}
		ranking := leaderboarddomain.BuildRanking(entries)

		i := leaderboarddomain.IndexOf(ranking, playerID)
		if i < 0 {
			return AroundResult{}, fmt.Errorf("%w: %s", shared.ErrNotFound, playerID)
		}

		top := leaderboarddomain.TopN(ranking, leaderboarddomain.TopBlockSize)
		result := AroundResult{Top: top, Rank: i + 1}

		if i < leaderboarddomain.TopListSize {
			return result, nil
		}

		result.Window = leaderboarddomain.Window(ranking, i, leaderboarddomain.WindowRadius)
		return result, nil
	})
}
