package rewardservice

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ridgeline-games/arenarank/app/metrics"
	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/config"
	"github.com/ridgeline-games/arenarank/eventbus"
)

// Service implements the epoch controller, archive store, and claim ledger
// operations.
type Service struct {
	epochs   rewarddb.EpochRepository
	archives rewarddb.ArchiveRepository
	claims   rewarddb.ClaimRepository
	scores   leaderboarddb.Repository

	db        *bun.DB
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	publisher eventbus.Publisher
	policies  config.RewardsConfig

	// now is injectable for deterministic period labels in tests.
	now func() time.Time
}

// NewService creates a new reward Service.
func NewService(
	epochs rewarddb.EpochRepository,
	archives rewarddb.ArchiveRepository,
	claims rewarddb.ClaimRepository,
	scores leaderboarddb.Repository,
	db *bun.DB,
	logger *slog.Logger,
	m *metrics.Metrics,
	tracer trace.Tracer,
	publisher eventbus.Publisher,
	policies config.RewardsConfig,
) *Service {
	if tracer == nil {
		tracer = otel.Tracer("arenarank/reward")
	}
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	return &Service{
		epochs:    epochs,
		archives:  archives,
		claims:    claims,
		scores:    scores,
		db:        db,
		logger:    logger,
		metrics:   m,
		tracer:    tracer,
		publisher: publisher,
		policies:  policies,
		now:       func() time.Time { return time.Now().UTC() },
	}
}

// operationFunc is the generic signature for service operation functions.
type operationFunc[T any] func(ctx context.Context) (T, error)

// withTelemetry wraps a service operation with tracing, metrics, and panic recovery.
func withTelemetry[T any](
	s *Service,
	ctx context.Context,
	operationName string,
	op operationFunc[T],
) (result T, err error) {
	ctx, span := s.tracer.Start(ctx, operationName, trace.WithAttributes(
		attribute.String("operation", operationName),
	))
	defer span.End()

	s.metrics.RecordOperationAttempt("reward", operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("reward", operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure("reward", operationName)
			span.RecordError(err)
		}
	}()

	result, err = op(ctx)
	if err != nil {
		wrappedErr := fmt.Errorf("%s: %w", operationName, err)
		s.logger.WarnContext(ctx, "Operation failed",
			slog.String("operation", operationName),
			slog.Any("error", wrappedErr),
		)
		s.metrics.RecordOperationFailure("reward", operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}
	return result, nil
}

// runInTx ensures the operation runs within a transaction.
func runInTx[T any](
	s *Service,
	ctx context.Context,
	fn func(ctx context.Context, db bun.IDB) (T, error),
) (T, error) {
	if s.db == nil {
		return fn(ctx, nil)
	}

	var result T
	err := s.db.RunInTx(ctx, &sql.TxOptions{}, func(ctx context.Context, tx bun.Tx) error {
		var txErr error
		result, txErr = fn(ctx, tx)
		return txErr
	})
	return result, err
}

// publishEvent emits a domain event without gating the request on delivery.
func (s *Service) publishEvent(ctx context.Context, topic string, payload any) {
	if err := s.publisher.Publish(topic, payload); err != nil {
		s.logger.WarnContext(ctx, "Failed to publish event",
			slog.String("topic", topic),
			slog.Any("error", err),
		)
	}
}
