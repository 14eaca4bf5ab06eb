package api

import (
	"log/slog"
	"net/http"

	"github.com/nabink/lang-portal/internal/api/shared"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// ResetHandler serves the destructive bulk-delete endpoints.
type ResetHandler struct {
	resets store.ResetStore
	logger *slog.Logger
}

// NewResetHandler creates a new ResetHandler.
func NewResetHandler(resets store.ResetStore, logger *slog.Logger) *ResetHandler {
	if resets == nil {
		panic("reset store cannot be nil for ResetHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ResetHandler{
		resets: resets,
		logger: logger.With(slog.String("component", "reset_handler")),
	}
}

// ResetHistory handles POST /api/reset-history: deletes every review
// item and study session, leaving words, groups, and activities intact.
func (h *ResetHandler) ResetHistory(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.resets.ResetHistory(r.Context()); err != nil {
		log.Error("failed to reset study history", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("study history reset")
	shared.RespondWithData(w, r, http.StatusOK, "Study history reset successfully", nil)
}

// FullReset handles POST /api/full-reset: deletes all content and all
// history.
func (h *ResetHandler) FullReset(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	if err := h.resets.FullReset(r.Context()); err != nil {
		log.Error("failed to perform full reset", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	log.Info("full reset performed")
	shared.RespondWithData(w, r, http.StatusOK, "Full reset performed successfully", nil)
}
