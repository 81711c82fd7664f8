package rewarddomain

import (
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/config"
)

// IsEligible decides whether a player may claim under the configured policy.
//
// Rules:
//   - "open" policy: anyone may claim, once per epoch.
//   - "archive" policy: the player must appear in the most recent snapshot.
//     A missing snapshot (no reset has ever happened) makes nobody eligible.
func IsEligible(policy string, latest *rewarddb.ArchiveSnapshot, playerID string) bool {
	if policy == config.EligibilityOpen {
		return true
	}
	if latest == nil {
		return false
	}
	return latest.Contains(playerID)
}

// CanClaim reports whether a claim for epoch current is still open given the
// player's highest claimed epoch. The claim state machine only moves forward.
func CanClaim(lastClaimed, current int64) bool {
	return lastClaimed < current
}
