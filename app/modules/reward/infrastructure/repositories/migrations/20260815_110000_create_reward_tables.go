package rewardmigrations

import (
	"context"
	"fmt"

	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/uptrace/bun"
)

func init() {
	Migrations.MustRegister(func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Creating epoch_state, archive_snapshots and claim_records tables...")

		if _, err := db.NewCreateTable().Model((*rewarddb.EpochState)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*rewarddb.ArchiveSnapshot)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewCreateTable().Model((*rewarddb.ClaimRecord)(nil)).IfNotExists().Exec(ctx); err != nil {
			return err
		}

		_, err := db.NewRaw("CREATE UNIQUE INDEX IF NOT EXISTS idx_archive_snapshots_period ON archive_snapshots (period_label)").Exec(ctx)
		if err != nil {
			return err
		}
		_, err = db.NewRaw("CREATE INDEX IF NOT EXISTS idx_archive_snapshots_epoch ON archive_snapshots (epoch_number DESC)").Exec(ctx)
		if err != nil {
			return err
		}

		fmt.Println("Reward tables created successfully!")
		return nil
	}, func(ctx context.Context, db *bun.DB) error {
		fmt.Println("Dropping reward tables...")

		if _, err := db.NewDropTable().Model((*rewarddb.ClaimRecord)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*rewarddb.ArchiveSnapshot)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}
		if _, err := db.NewDropTable().Model((*rewarddb.EpochState)(nil)).IfExists().Exec(ctx); err != nil {
			return err
		}

		fmt.Println("Reward tables dropped successfully!")
		return nil
	})
}
