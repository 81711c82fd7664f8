package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ridgeline-games/arenarank/app/events"
	leaderboarddomain "github.com/ridgeline-games/arenarank/app/modules/leaderboard/domain"
	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
)

// SubmitScore records a score for a player. The stored value only changes when
// the new score is strictly greater than the current best; the comparison runs
// inside a single conditional statement so concurrent submissions cannot lose
// the higher score.
func (s *Service) SubmitScore(ctx context.Context, input SubmitScoreInput) (SubmitScoreResult, error) {
	return withTelemetry(s, ctx, "SubmitScore", func(ctx context.Context) (SubmitScoreResult, error) {
		if err := input.validate(); err != nil {
			return SubmitScoreResult{}, err
		}

		entry := &leaderboarddb.ScoreEntry{
			PlayerID:    input.PlayerID,
			DisplayName: input.DisplayName,
			Score:       input.Score,
			AchievedAt:  time.Now().UTC(),
		}

		improved, err := s.repo.UpsertBest(ctx, s.db, entry)
		if err != nil {
			return SubmitScoreResult{}, fmt.Errorf("failed to store score: %w", err)
		}

		result := SubmitScoreResult{Accepted: true, Improved: improved}

		// Rank lookup is best effort; the write above already committed.
		if rank, err := s.rankOf(ctx, input.PlayerID); err != nil {
			s.logger.WarnContext(ctx, "Failed to resolve rank after submit",
				slog.String("player_id", input.PlayerID),
				slog.Any("error", err),
			)
		} else {
			result.Rank = rank
		}

		s.publishEvent(ctx, events.ScoreSubmitted, events.ScoreSubmittedPayload{
			PlayerID:    input.PlayerID,
			DisplayName: input.DisplayName,
			Score:       input.Score,
			Improved:    improved,
		})

		return result, nil
	})
}

func (s *Service) rankOf(ctx context.Context, playerID string) (int, error) {
	entries, err := s.repo.ListRanked(ctx, s.db, 0)
	if err != nil {
		return 0, err
	}
	ranking := leaderboarddomain.BuildRanking(entries)
	i := leaderboarddomain.IndexOf(ranking, playerID)
	if i < 0 {
		return 0, leaderboarddb.ErrEntryNotFound
	}
	return i + 1, nil
}
