package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/ridgeline-games/arenarank/app/middleware"
	leaderboardservice "github.com/ridgeline-games/arenarank/app/modules/leaderboard/application"
	"github.com/ridgeline-games/arenarank/app/shared"
)

// LeaderboardHandler exposes the score ledger and ranking views over HTTP.
type LeaderboardHandler struct {
	service      *leaderboardservice.Service
	submitSecret string
}

// NewLeaderboardHandler creates a new LeaderboardHandler.
func NewLeaderboardHandler(service *leaderboardservice.Service, submitSecret string) *LeaderboardHandler {
	return &LeaderboardHandler{service: service, submitSecret: submitSecret}
}

// SubmitScoreRequest is the wire shape for a score submission.
type SubmitScoreRequest struct {
	PlayerID string `json:"playerId"`
	Name     string `json:"name"`
	Score    int    `json:"score"`
	Secret   string `json:"secret"`
}

// SubmitScore handles POST /submit.
func (h *LeaderboardHandler) SubmitScore(w http.ResponseWriter, r *http.Request) {
	var req SubmitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, fmt.Errorf("%w: malformed request body", shared.ErrInvalidInput))
		return
	}

	// The shared-secret check happens before the ranking core is invoked.
	if !middleware.SubmitSecretValid(req.Secret, h.submitSecret) {
		writeError(w, fmt.Errorf("%w: bad submission secret", shared.ErrInvalidInput))
		return
	}

	result, err := h.service.SubmitScore(r.Context(), leaderboardservice.SubmitScoreInput{
		PlayerID:    req.PlayerID,
		DisplayName: req.Name,
		Score:       req.Score,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"rank":    result.Rank,
	})
}

// GetTop handles GET /leaderboard.
func (h *LeaderboardHandler) GetTop(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, fmt.Errorf("%w: limit must be an integer", shared.ErrInvalidInput))
			return
		}
		limit = n
	}

	ranking, err := h.service.TopN(r.Context(), limit)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ranking)
}

// GetAround handles GET /leaderboard/around/{playerID}.
func (h *LeaderboardHandler) GetAround(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	result, err := h.service.Around(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}
