package leaderboarddb

import (
	"time"

	"github.com/uptrace/bun"
)

// ScoreMax is the inclusive upper bound for a submitted score.
const ScoreMax = 100000

// ScoreEntry is the live ledger row for a player's best known score.
// There is at most one row per player; the score only ever increases within an
// epoch, and the whole table is cleared on reset.
type ScoreEntry struct {
	bun.BaseModel `bun:"table:score_entries,alias:se"`

	PlayerID    string    `bun:"player_id,pk"`
	DisplayName string    `bun:"display_name,notnull"`
	Score       int       `bun:"score,notnull"`
	// AchievedAt records when the stored score was reached. It is the
	// secondary ranking key: on equal scores the earlier submission wins.
	AchievedAt time.Time `bun:"achieved_at,nullzero,notnull,default:current_timestamp"`
}
