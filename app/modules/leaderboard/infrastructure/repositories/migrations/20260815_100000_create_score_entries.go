package leaderboardmigrations

import (
	"context"
	"fmt"

	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating score_entries table...")

		if _, err := db.NewCreateTable().Model((*leaderboarddb.ScoreEntry)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		// Matches the ranking order so top-N scans stay index-only.
		_, err := db.NewRaw("CREATE INDEX IF NOT EXISTS idx_score_entries_ranking ON score_entries (score DESC, achieved_at ASC, player_id ASC)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("score_entries table created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping score_entries table...")

		if _, err := db.NewDropTable().Model((*leaderboarddb.ScoreEntry)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("score_entries table dropped successfully!")
		return nil
	})
}
