package app

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/ridgeline-games/arenarank/app/handlers"
	"github.com/ridgeline-games/arenarank/app/middleware"
	"github.com/ridgeline-games/arenarank/config"
)

// NewRouter builds the HTTP surface: the public ranking routes, the
// secret-gated admin routes, and the operational endpoints.
func NewRouter(
	cfg *config.Config,
	leaderboard *handlers.LeaderboardHandler,
	reward *handlers.RewardHandler,
	registry *prometheus.Registry,
) chi.Router {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Group(func(r chi.Router) {
		r.Use(middleware.RateLimit(cfg.RateLimit.SubmitPerSecond, cfg.RateLimit.SubmitBurst))
		r.Post("/submit", leaderboard.SubmitScore)
	})

	r.Get("/leaderboard", leaderboard.GetTop)
	r.Get("/leaderboard/around/{playerID}", leaderboard.GetAround)

	r.Get("/epoch", reward.CurrentEpoch)
	r.Post("/claim/{playerID}", reward.Claim)

	r.Get("/archives/{period}", reward.GetArchive)
	r.Get("/archives/{period}/export", reward.ExportArchive)
	r.Get("/archives/{period}/chart.png", reward.ChartArchive)

	r.Route("/admin", func(r chi.Router) {
		r.Use(middleware.RequireAdminSecret(cfg.Auth.AdminSecret))
		r.Post("/reset", reward.Reset)
		r.Post("/developer-reset", reward.DeveloperReset)
	})

	r.Method("GET", "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))

	return r
}
