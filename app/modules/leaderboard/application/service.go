package leaderboardservice

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/uptrace/bun"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/ridgeline-games/arenarank/app/metrics"
	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/eventbus"
)

// Service implements the score ledger and ranking view operations.
type Service struct {
	repo      leaderboarddb.Repository
	db        *bun.DB
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
	publisher eventbus.Publisher
}

// NewService creates a new leaderboard Service.
func NewService(
	repo leaderboarddb.Repository,
	db *bun.DB,
	logger *slog.Logger,
	m *metrics.Metrics,
	tracer trace.Tracer,
	publisher eventbus.Publisher,
) *Service {
	if tracer == nil {
		tracer = otel.Tracer("arenarank/leaderboard")
	}
	if publisher == nil {
		publisher = eventbus.NoopPublisher{}
	}
	return &Service{
		repo:      repo,
		db:        db,
		logger:    logger,
		metrics:   m,
		tracer:    tracer,
		publisher: publisher,
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

	s.metrics.RecordOperationAttempt("leaderboard", operationName)

	startTime := time.Now()
	defer func() {
		s.metrics.RecordOperationDuration("leaderboard", operationName, time.Since(startTime))
	}()

	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", operationName, r)
			s.logger.ErrorContext(ctx, "Critical panic recovered",
				slog.String("operation", operationName),
				slog.Any("error", err),
			)
			s.metrics.RecordOperationFailure("leaderboard", operationName)
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
		s.metrics.RecordOperationFailure("leaderboard", operationName)
		span.RecordError(wrappedErr)
		return result, wrappedErr
	}
	return result, nil
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
