package rewarddb

import (
	"time"

	"github.com/uptrace/bun"
)

// BaselineEpoch is the epoch number the controller lazily initializes to.
const BaselineEpoch = 1

// epochStateID is the fixed primary key of the single epoch_state row.
const epochStateID = 1

// EpochState is the process-wide reward period counter. Exactly one row
// exists once initialized; the number only moves forward except through a
// developer reset, which deletes the row entirely.
type EpochState struct {
	bun.BaseModel `bun:"table:epoch_state,alias:es"`

	ID          int64     `bun:"id,pk"`
	EpochNumber int64     `bun:"epoch_number,notnull"`
	StartedAt   time.Time `bun:"started_at,nullzero,notnull,default:current_timestamp"`
}

// ArchivedPlayer is one frozen ledger entry inside a snapshot.
type ArchivedPlayer struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Score       int    `json:"score"`
	Rank        int    `json:"rank"`
}

// ArchiveSnapshot is the immutable record of the top players at the moment an
// epoch ended. Rows are only ever inserted, never updated.
type ArchiveSnapshot struct {
	bun.BaseModel `bun:"table:archive_snapshots,alias:arc"`

	ID          int64            `bun:"id,pk,autoincrement"`
	PeriodLabel string           `bun:"period_label,notnull,unique"`
	EpochNumber int64            `bun:"epoch_number,notnull"`
	TopPlayers  []ArchivedPlayer `bun:"top_players,type:jsonb,notnull"`
	CreatedAt   time.Time        `bun:"created_at,nullzero,notnull,default:current_timestamp"`
}

// Contains reports whether the snapshot holds the given player.
func (s *ArchiveSnapshot) Contains(playerID string) bool {
	for _, p := range s.TopPlayers {
		if p.PlayerID == playerID {
			return true
		}
	}
	return false
}

// ClaimRecord tracks the highest epoch a player has claimed a reward for.
// One row per player; last_claimed_epoch never decreases.
type ClaimRecord struct {
	bun.BaseModel `bun:"table:claim_records,alias:cr"`

	PlayerID         string    `bun:"player_id,pk"`
	LastClaimedEpoch int64     `bun:"last_claimed_epoch,notnull"`
	ClaimedAt        time.Time `bun:"claimed_at,nullzero,notnull,default:current_timestamp"`
}
