package leaderboardservice

import (
	"fmt"

	leaderboarddomain "github.com/ridgeline-games/arenarank/app/modules/leaderboard/domain"
	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/app/shared"
)

// SubmitScoreInput is the validated input for a score submission.
type SubmitScoreInput struct {
	PlayerID    string
	DisplayName string
	Score       int
}

func (in SubmitScoreInput) validate() error {
	if in.PlayerID == "" {
		return fmt.Errorf("%w: player id is required", shared.ErrInvalidInput)
	}
	if in.DisplayName == "" {
		return fmt.Errorf("%w: display name is required", shared.ErrInvalidInput)
	}
	if in.Score < 0 || in.Score > leaderboarddb.ScoreMax {
		return fmt.Errorf("%w: score must be in [0, %d]", shared.ErrInvalidInput, leaderboarddb.ScoreMax)
	}
	return nil
}

// SubmitScoreResult reports the outcome of a submission. Accepted is true even
// when the stored best did not change (lower or equal score): the caller may
// retry safely.
type SubmitScoreResult struct {
	Accepted bool `json:"accepted"`
	Improved bool `json:"improved"`
	// Rank is the player's 1-based position after the write, 0 when the
	// best-effort lookup failed. No stability is guaranteed under
	// concurrent submissions.
	Rank int `json:"rank,omitempty"`
}

// AroundResult is the two-tier around-me view: the leading block of the top
// list, plus a neighborhood window when the player sits outside the top list.
type AroundResult struct {
	Top []leaderboarddomain.RankedEntry `json:"top"`
	// Window is nil when the player is inside the top list.
	Window []leaderboarddomain.RankedEntry `json:"window,omitempty"`
	Rank   int                             `json:"rank"`
}
