package rewardservice

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uptrace/bun"

	"github.com/ridgeline-games/arenarank/app/events"
	"github.com/ridgeline-games/arenarank/app/metrics"
	leaderboarddomain "github.com/ridgeline-games/arenarank/app/modules/leaderboard/domain"
	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/config"
)

type testFixture struct {
	epochs   *FakeEpochRepo
	archives *FakeArchiveRepo
	claims   *FakeClaimRepo
	scores   *FakeScoreRepo
	pub      *FakePublisher
	svc      *Service
}

func newTestFixture(epoch int64, entries []leaderboarddb.ScoreEntry, policies config.RewardsConfig) *testFixture {
	f := &testFixture{
		epochs:   NewFakeEpochRepo(epoch),
		archives: NewFakeArchiveRepo(),
		claims:   NewFakeClaimRepo(),
		scores:   NewFakeScoreRepo(entries),
		pub:      &FakePublisher{},
	}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	f.svc = NewService(f.epochs, f.archives, f.claims, f.scores, nil, logger, metrics.NewUnregistered(), nil, f.pub, policies)
	f.svc.now = func() time.Time {
		return time.Date(2026, 4, 17, 9, 30, 0, 0, time.UTC)
	}
	return f
}

func defaultPolicies() config.RewardsConfig {
	return config.RewardsConfig{
		ArchivePeriod: config.ArchivePeriodEpoch,
		Eligibility:   config.EligibilityArchive,
	}
}

func ledger(n int) []leaderboarddb.ScoreEntry {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	entries := make([]leaderboarddb.ScoreEntry, n)
	for i := range entries {
		entries[i] = leaderboarddb.ScoreEntry{
			PlayerID:    fmt.Sprintf("p%03d", i),
			DisplayName: fmt.Sprintf("Player %03d", i),
			Score:       10000 - i,
			AchievedAt:  base,
		}
	}
	return entries
}

func TestService_Reset(t *testing.T) {
	f := newTestFixture(1, ledger(3), defaultPolicies())

	got, err := f.svc.Reset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "2", got.Period, "archive labeled with the epoch it closes out")
	assert.Equal(t, 3, got.Archived)
	assert.Equal(t, int64(2), got.NewEpoch)

	snapshots := f.archives.Snapshots()
	require.Len(t, snapshots, 1)
	assert.Equal(t, int64(2), snapshots[0].EpochNumber)
	require.Len(t, snapshots[0].TopPlayers, 3)
	assert.Equal(t, "p000", snapshots[0].TopPlayers[0].PlayerID)
	assert.Equal(t, 1, snapshots[0].TopPlayers[0].Rank)
	assert.Equal(t, 10000, snapshots[0].TopPlayers[0].Score)

	// Ledger cleared and counter advanced.
	remaining, err := f.scores.ListRanked(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
	epoch, err := f.svc.CurrentEpoch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(2), epoch)
}

func TestService_Reset_ArchivesAtMostTopListSize(t *testing.T) {
	f := newTestFixture(1, ledger(250), defaultPolicies())

	got, err := f.svc.Reset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, leaderboarddomain.TopListSize, got.Archived)
	snapshots := f.archives.Snapshots()
	require.Len(t, snapshots, 1)
	require.Len(t, snapshots[0].TopPlayers, leaderboarddomain.TopListSize)
	assert.Equal(t, leaderboarddomain.TopListSize, snapshots[0].TopPlayers[leaderboarddomain.TopListSize-1].Rank)
}

func TestService_Reset_EmptyLedgerStillAdvances(t *testing.T) {
	f := newTestFixture(1, nil, defaultPolicies())

	got, err := f.svc.Reset(context.Background())
	require.NoError(t, err)

	assert.Zero(t, got.Archived)
	assert.Equal(t, int64(2), got.NewEpoch)
	require.Len(t, f.archives.Snapshots(), 1, "empty snapshot is still written")
}

func TestService_Reset_MonthlyPeriodLabel(t *testing.T) {
	policies := defaultPolicies()
	policies.ArchivePeriod = config.ArchivePeriodMonth
	f := newTestFixture(1, ledger(1), policies)

	got, err := f.svc.Reset(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2026-04", got.Period)
}

func TestService_Reset_ArchiveWriteFailureLeavesLedger(t *testing.T) {
	f := newTestFixture(1, ledger(5), defaultPolicies())
	f.archives.InsertFunc = func(ctx context.Context, db bun.IDB, snapshot *rewarddb.ArchiveSnapshot) error {
		return errors.New("unique constraint violation")
	}

	_, err := f.svc.Reset(context.Background())
	require.Error(t, err)

	// The failure must stop the reset before any mutation.
	assert.NotContains(t, f.scores.Trace(), "ClearAll")
	assert.NotContains(t, f.epochs.Trace(), "Advance")
	assert.Empty(t, f.pub.Events())
}

func TestService_Reset_OrdersArchiveBeforeClearBeforeAdvance(t *testing.T) {
	f := newTestFixture(1, ledger(2), defaultPolicies())

	_, err := f.svc.Reset(context.Background())
	require.NoError(t, err)

	assert.Equal(t, []string{"Current", "Advance"}, f.epochs.Trace())
	assert.Equal(t, []string{"Insert"}, f.archives.Trace())
	assert.Equal(t, []string{"ListRanked", "ClearAll"}, f.scores.Trace())
}

func TestService_Reset_EpochMismatchFails(t *testing.T) {
	f := newTestFixture(1, ledger(1), defaultPolicies())
	f.epochs.AdvanceFunc = func(ctx context.Context, db bun.IDB) (int64, error) {
		return 9, nil
	}

	_, err := f.svc.Reset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "epoch advanced to 9, expected 2")
}

func TestService_Reset_PublishesEvent(t *testing.T) {
	f := newTestFixture(3, ledger(4), defaultPolicies())

	_, err := f.svc.Reset(context.Background())
	require.NoError(t, err)

	published := f.pub.Events()
	require.Len(t, published, 1)
	assert.Equal(t, events.EpochReset, published[0].Topic)
	payload, ok := published[0].Payload.(events.EpochResetPayload)
	require.True(t, ok)
	assert.Equal(t, int64(4), payload.NewEpoch)
	assert.Equal(t, 4, payload.Archived)
}

func TestService_DeveloperReset(t *testing.T) {
	f := newTestFixture(5, ledger(10), defaultPolicies())
	_, err := f.svc.Reset(context.Background())
	require.NoError(t, err)
	_, err = f.svc.Claim(context.Background(), "p000")
	require.NoError(t, err)

	require.NoError(t, f.svc.DeveloperReset(context.Background()))

	assert.Empty(t, f.archives.Snapshots())
	assert.Contains(t, f.claims.Trace(), "DeleteAll")
	assert.Contains(t, f.epochs.Trace(), "DeleteState")

	remaining, err := f.scores.ListRanked(context.Background(), nil, 0)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestService_DeveloperReset_PropagatesError(t *testing.T) {
	f := newTestFixture(1, nil, defaultPolicies())
	f.claims.DeleteAllFunc = func(ctx context.Context, db bun.IDB) error {
		return errors.New("table locked")
	}

	err := f.svc.DeveloperReset(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "table locked")
}

func TestService_CurrentEpoch(t *testing.T) {
	f := newTestFixture(7, nil, defaultPolicies())

	epoch, err := f.svc.CurrentEpoch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(7), epoch)
}

func TestService_CurrentEpoch_RepoError(t *testing.T) {
	f := newTestFixture(1, nil, defaultPolicies())
	f.epochs.CurrentFunc = func(ctx context.Context, db bun.IDB) (*rewarddb.EpochState, error) {
		return nil, errors.New("db down")
	}

	_, err := f.svc.CurrentEpoch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to resolve current epoch")
}
