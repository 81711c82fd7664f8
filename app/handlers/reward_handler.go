package handlers

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	rewardservice "github.com/ridgeline-games/arenarank/app/modules/reward/application"
)

// RewardHandler exposes epochs, archives, and reward claims over HTTP.
type RewardHandler struct {
	service *rewardservice.Service
}

// NewRewardHandler creates a new RewardHandler.
func NewRewardHandler(service *rewardservice.Service) *RewardHandler {
	return &RewardHandler{service: service}
}

// CurrentEpoch handles GET /epoch.
func (h *RewardHandler) CurrentEpoch(w http.ResponseWriter, r *http.Request) {
	epoch, err := h.service.CurrentEpoch(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"epoch": epoch})
}

// Reset handles POST /admin/reset. The admin secret is checked by middleware
// before this handler runs.
func (h *RewardHandler) Reset(w http.ResponseWriter, r *http.Request) {
	result, err := h.service.Reset(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"period":   result.Period,
		"archived": result.Archived,
		"newEpoch": result.NewEpoch,
	})
}

// DeveloperReset handles POST /admin/developer-reset.
func (h *RewardHandler) DeveloperReset(w http.ResponseWriter, r *http.Request) {
	if err := h.service.DeveloperReset(r.Context()); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"success": true})
}

// Claim handles POST /claim/{playerID}.
func (h *RewardHandler) Claim(w http.ResponseWriter, r *http.Request) {
	playerID := chi.URLParam(r, "playerID")

	result, err := h.service.Claim(r.Context(), playerID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// GetArchive handles GET /archives/{period}.
func (h *RewardHandler) GetArchive(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	snapshot, err := h.service.GetArchive(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, snapshot)
}

// ExportArchive handles GET /archives/{period}/export.
func (h *RewardHandler) ExportArchive(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	data, err := h.service.ExportArchiveXLSX(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", "archive-"+period+".xlsx"))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// ChartArchive handles GET /archives/{period}/chart.png.
func (h *RewardHandler) ChartArchive(w http.ResponseWriter, r *http.Request) {
	period := chi.URLParam(r, "period")

	png, err := h.service.ChartArchivePNG(r.Context(), period)
	if err != nil {
		writeError(w, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}
