package leaderboardservice

import (
	"context"
	"sync"

	"github.com/uptrace/bun"

	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
)

// ------------------------
// Fake Score Repo
// ------------------------

type FakeScoreRepo struct {
	trace []string

	UpsertBestFunc func(ctx context.Context, db bun.IDB, entry *leaderboarddb.ScoreEntry) (bool, error)
	ListRankedFunc func(ctx context.Context, db bun.IDB, limit int) ([]leaderboarddb.ScoreEntry, error)
	ClearAllFunc   func(ctx context.Context, db bun.IDB) (int64, error)
}

func NewFakeScoreRepo() *FakeScoreRepo {
	return &FakeScoreRepo{
		trace: []string{},
	}
}

func (f *FakeScoreRepo) record(step string) {
	f.trace = append(f.trace, step)
}

// --- Repository Interface Implementation ---

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
	return []leaderboarddb.ScoreEntry{}, nil
}

func (f *FakeScoreRepo) ClearAll(ctx context.Context, db bun.IDB) (int64, error) {
	f.record("ClearAll")
	if f.ClearAllFunc != nil {
		return f.ClearAllFunc(ctx, db)
	}
	return 0, nil
}

// --- Accessors for assertions ---

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
