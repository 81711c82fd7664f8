package rewardservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
)

// ------------------------
// Fake Epoch Repo
// ------------------------

type FakeEpochRepo struct {
	trace []string
	epoch int64

	CurrentFunc     func(ctx context.Context, db bun.IDB) (*rewarddb.EpochState, error)
	AdvanceFunc     func(ctx context.Context, db bun.IDB) (int64, error)
	DeleteStateFunc func(ctx context.Context, db bun.IDB) error
}

func NewFakeEpochRepo(epoch int64) *FakeEpochRepo {
	return &FakeEpochRepo{
		trace: []string{},
		epoch: epoch,
	}
}

func (f *FakeEpochRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeEpochRepo) Current(ctx context.Context, db bun.IDB) (*rewarddb.EpochState, error) {
	f.record("Current")
	if f.CurrentFunc != nil {
		return f.CurrentFunc(ctx, db)
	}
	return &rewarddb.EpochState{ID: 1, EpochNumber: f.epoch}, nil
}

func (f *FakeEpochRepo) Advance(ctx context.Context, db bun.IDB) (int64, error) {
	f.record("Advance")
	if f.AdvanceFunc != nil {
		return f.AdvanceFunc(ctx, db)
	}
	f.epoch++
	return f.epoch, nil
}

func (f *FakeEpochRepo) DeleteState(ctx context.Context, db bun.IDB) error {
	f.record("DeleteState")
	if f.DeleteStateFunc != nil {
		return f.DeleteStateFunc(ctx, db)
	}
	f.epoch = 0
	return nil
}

func (f *FakeEpochRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// ------------------------
// Fake Archive Repo
// ------------------------

type FakeArchiveRepo struct {
	trace     []string
	snapshots []*rewarddb.ArchiveSnapshot

	InsertFunc      func(ctx context.Context, db bun.IDB, snapshot *rewarddb.ArchiveSnapshot) error
	LatestFunc      func(ctx context.Context, db bun.IDB) (*rewarddb.ArchiveSnapshot, error)
	GetByPeriodFunc func(ctx context.Context, db bun.IDB, periodLabel string) (*rewarddb.ArchiveSnapshot, error)
	DeleteAllFunc   func(ctx context.Context, db bun.IDB) error
}

func NewFakeArchiveRepo() *FakeArchiveRepo {
	return &FakeArchiveRepo{
		trace: []string{},
	}
}

func (f *FakeArchiveRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeArchiveRepo) Insert(ctx context.Context, db bun.IDB, snapshot *rewarddb.ArchiveSnapshot) error {
	f.record("Insert")
	if f.InsertFunc != nil {
		return f.InsertFunc(ctx, db, snapshot)
	}
	f.snapshots = append(f.snapshots, snapshot)
	return nil
}

func (f *FakeArchiveRepo) Latest(ctx context.Context, db bun.IDB) (*rewarddb.ArchiveSnapshot, error) {
	f.record("Latest")
	if f.LatestFunc != nil {
		return f.LatestFunc(ctx, db)
	}
	if len(f.snapshots) == 0 {
		return nil, rewarddb.ErrNoSnapshots
	}
	latest := f.snapshots[0]
	for _, s := range f.snapshots[1:] {
		if s.EpochNumber > latest.EpochNumber {
			latest = s
		}
	}
	return latest, nil
}

func (f *FakeArchiveRepo) GetByPeriod(ctx context.Context, db bun.IDB, periodLabel string) (*rewarddb.ArchiveSnapshot, error) {
	f.record("GetByPeriod")
	if f.GetByPeriodFunc != nil {
		return f.GetByPeriodFunc(ctx, db, periodLabel)
	}
	for _, s := range f.snapshots {
		if s.PeriodLabel == periodLabel {
			return s, nil
		}
	}
	return nil, rewarddb.ErrSnapshotNotFound
}

func (f *FakeArchiveRepo) DeleteAll(ctx context.Context, db bun.IDB) error {
	f.record("DeleteAll")
	if f.DeleteAllFunc != nil {
		return f.DeleteAllFunc(ctx, db)
	}
	f.snapshots = nil
	return nil
}

func (f *FakeArchiveRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

func (f *FakeArchiveRepo) Snapshots() []*rewarddb.ArchiveSnapshot {
	return f.snapshots
}

// ------------------------
// Fake Claim Repo
// ------------------------

type FakeClaimRepo struct {
	trace   []string
	claimed map[string]int64

	TryClaimFunc  func(ctx context.Context, db bun.IDB, playerID string, epoch int64) (bool, error)
	GetFunc       func(ctx context.Context, db bun.IDB, playerID string) (*rewarddb.ClaimRecord, error)
	DeleteAllFunc func(ctx context.Context, db bun.IDB) error
}

func NewFakeClaimRepo() *FakeClaimRepo {
	return &FakeClaimRepo{
		trace:   []string{},
		claimed: map[string]int64{},
	}
}

func (f *FakeClaimRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeClaimRepo) TryClaim(ctx context.Context, db bun.IDB, playerID string, epoch int64) (bool, error) {
	f.record("TryClaim")
	if f.TryClaimFunc != nil {
		return f.TryClaimFunc(ctx, db, playerID, epoch)
	}
	if last, ok := f.claimed[playerID]; ok && last >= epoch {
		return false, nil
	}
	f.claimed[playerID] = epoch
	return true, nil
}

func (f *FakeClaimRepo) Get(ctx context.Context, db bun.IDB, playerID string) (*rewarddb.ClaimRecord, error) {
	f.record("Get")
	if f.GetFunc != nil {
		return f.GetFunc(ctx, db, playerID)
	}
	last, ok := f.claimed[playerID]
	if !ok {
		return nil, rewarddb.ErrClaimNotFound
	}
	return &rewarddb.ClaimRecord{PlayerID: playerID, LastClaimedEpoch: last}, nil
}

func (f *FakeClaimRepo) DeleteAll(ctx context.Context, db bun.IDB) error {
	f.record("DeleteAll")
	if f.DeleteAllFunc != nil {
		return f.DeleteAllFunc(ctx, db)
	}
	f.claimed = map[string]int64{}
	return nil
}

func (f *FakeClaimRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	trace   []string
	entries []leaderboarddb.ScoreEntry

	UpsertBestFunc func(ctx context.Context, db bun.IDB, entry *leaderboarddb.ScoreEntry) (bool, error)
	ListRankedFunc func(ctx context.Context, db bun.IDB, limit int) ([]leaderboarddb.ScoreEntry, error)
	ClearAllFunc   func(ctx context.Context, db bun.IDB) (int64, error)
}

func NewFakeScoreRepo(entries []leaderboarddb.ScoreEntry) *FakeScoreRepo {
	return &FakeScoreRepo{
		trace:   []string{},
		entries: entries,
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

func (f *FakeScoreRepo) UpsertBest(ctx context.Context, db bun.IDB, entry *leaderboarddb.ScoreEntry) (bool, error) {
	f.record("UpsertBest")
	if f.UpsertBestFunc != nil {
		return f.UpsertBestFunc(ctx, db, entry)
	}
	return true, nil
}

func (f *FakeScoreRepo) ListRanked(ctx context.Context, db bun.IDB, limit int) ([]leaderboarddb.ScoreEntry, error) {
	f.record("ListRanked")
	if f.ListRankedFunc != nil {
		return f.ListRankedFunc(ctx, db, limit)
	}
	if limit <= 0 || limit > len(f.entries) {
		return f.entries, nil
	}
	return f.entries[:limit], nil
}

func (f *FakeScoreRepo) ClearAll(ctx context.Context, db bun.IDB) (int64, error) {
	f.record("ClearAll")
	if f.ClearAllFunc != nil {
		return f.ClearAllFunc(ctx, db)
	}
	n := int64(len(f.entries))
	f.entries = nil
	return n, nil
}

func (f *FakeScoreRepo) Trace() []string {
	out := make([]string, len(f.trace))
	copy(out, f.trace)
	return out
}

// ------------------------
// Fake Publisher
// ------------------------

type publishedEvent struct {
	Topic   string
	Payload any
}

type FakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent

	PublishFunc func(topic string, payload any) error
}

func (f *FakePublisher) Publish(topic string, payload any) error {
	f.mu.Lock()
	f.events = append(f.events, publishedEvent{Topic: topic, Payload: payload})
	f.mu.Unlock()
	if f.PublishFunc != nil {
		return f.PublishFunc(topic, payload)
	}
	return nil
}

func (f *FakePublisher) Close() error { return nil }

func (f *FakePublisher) Events() []publishedEvent {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]publishedEvent, len(f.events))
	copy(out, f.events)
	return out
}
