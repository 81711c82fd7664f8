package leaderboarddomain

import (
	"slices"

	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
)

const (
	// TopListSize is the size of the canonical top leaderboard.
	TopListSize = 100
	// TopBlockSize is how many leading entries accompany an around-me view.
	TopBlockSize = 10
	// WindowRadius is how many neighbors on each side an around-me window holds.
	WindowRadius = 5
)

// RankedEntry is a ledger entry annotated with its 1-based global rank.
type RankedEntry struct {
	PlayerID    string `json:"playerId"`
	DisplayName string `json:"displayName"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"`
}

// SortEntries orders entries by score descending. Equal scores break on the
// earlier achievement time, then on player ID, so repeated reads over the same
// ledger always agree on the total order.
func SortEntries(entries []leaderboarddb.ScoreEntry) {
	slices.SortFunc(entries, func(a, b leaderboarddb.ScoreEntry) int {
		if a.Score != b.Score {
			return b.Score - a.Score
		}
		if !a.AchievedAt.Equal(b.AchievedAt) {
			if a.AchievedAt.Before(b.AchievedAt) {
				return -1
			}
			return 1
		}
		if a.PlayerID < b.PlayerID {
			return -1
		}
		if a.PlayerID > b.PlayerID {
			return 1
		}
		return 0
	})
}

// BuildRanking annotates already-ordered entries with their 1-based ranks.
func BuildRanking(entries []leaderboarddb.ScoreEntry) []RankedEntry {
	ranking := make([]RankedEntry, len(entries))
	for i, e := range entries {
		ranking[i] = RankedEntry{
			PlayerID:    e.PlayerID,
			DisplayName: e.DisplayName,
			Score:       e.Score,
			Rank:        i + 1,
		}
	}
	return ranking
}

// TopN truncates a ranking to its first n entries.
func TopN(ranking []RankedEntry, n int) []RankedEntry {
	if n < 0 {
		n = 0
	}
	if n > len(ranking) {
		n = len(ranking)
	}
	return ranking[:n]
}

// IndexOf returns the 0-based position of a player in the ranking, or -1.
func IndexOf(ranking []RankedEntry, playerID string) int {
	for i, e := range ranking {
		if e.PlayerID == playerID {
			return i
		}
	}
	return -1
}

// Window returns the neighborhood of the entry at index i: up to radius
// entries on each side, clamped to the ranking bounds. Entries keep their
// true global ranks.
func Window(ranking []RankedEntry, i, radius int) []RankedEntry {
	if i < 0 || i >= len(ranking) {
		return nil
	}
	lo := i - radius
	if lo < 0 {
		lo = 0
	}
	hi := i + radius + 1
	if hi > len(ranking) {
		hi = len(ranking)
	}
	return ranking[lo:hi]
}
