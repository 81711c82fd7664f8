package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/uptrace/bun"

	"github.com/ridgeline-games/arenarank/app/handlers"
	"github.com/ridgeline-games/arenarank/app/metrics"
	leaderboardservice "github.com/ridgeline-games/arenarank/app/modules/leaderboard/application"
	leaderboarddb "github.com/ridgeline-games/arenarank/app/modules/leaderboard/infrastructure/repositories"
	rewardservice "github.com/ridgeline-games/arenarank/app/modules/reward/application"
	rewarddb "github.com/ridgeline-games/arenarank/app/modules/reward/infrastructure/repositories"
	"github.com/ridgeline-games/arenarank/config"
	"github.com/ridgeline-games/arenarank/db/bundb"
	"github.com/ridgeline-games/arenarank/eventbus"
)

// App wires configuration, storage, services, and the HTTP server.
type App struct {
	Config    *config.Config
	Logger    *slog.Logger
	Server    *http.Server
	db        *bun.DB
	publisher eventbus.Publisher
}

// NewApp initializes the application.
func NewApp(ctx context.Context) (*App, error) {
	cfg, err := config.LoadConfig("config.yaml")
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	db, err := bundb.New(ctx, cfg.Postgres)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	var publisher eventbus.Publisher = eventbus.NoopPublisher{}
	if cfg.NATS.URL != "" {
		p, err := eventbus.NewNATSPublisher(cfg.NATS.URL, watermill.NewSlogLogger(logger))
		if err != nil {
			return nil, fmt.Errorf("failed to initialize event publisher: %w", err)
		}
		publisher = p
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())
	registry.MustRegister(collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	m := metrics.New(registry)

	scoreRepo := &leaderboarddb.ScoreDBImpl{}
	epochRepo := &rewarddb.EpochDBImpl{}
	archiveRepo := &rewarddb.ArchiveDBImpl{}
	claimRepo := &rewarddb.ClaimDBImpl{}

	leaderboardSvc := leaderboardservice.NewService(scoreRepo, db, logger, m, nil, publisher)
	rewardSvc := rewardservice.NewService(
		epochRepo, archiveRepo, claimRepo, scoreRepo,
		db, logger, m, nil, publisher, cfg.Rewards,
	)

	router := NewRouter(
		cfg,
		handlers.NewLeaderboardHandler(leaderboardSvc, cfg.Auth.SubmitSecret),
		handlers.NewRewardHandler(rewardSvc),
		registry,
	)

	return &App{
		Config: cfg,
		Logger: logger,
		Server: &http.Server{
			Addr:    cfg.HTTP.Addr,
			Handler: router,
		},
		db:        db,
		publisher: publisher,
	}, nil
}

// Close releases the app's long-lived resources.
func (a *App) Close() error {
	var firstErr error
	if err := a.publisher.Close(); err != nil {
		firstErr = err
	}
	if err := a.db.Close(); err != nil && firstErr == nil {
		firstErr = err
	}
	return firstErr
}
