package api

import (
	"log/slog"
	"net/http"

	"github.com/nabink/lang-portal/internal/api/shared"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/service/dashboard"
)

// DashboardHandler serves the aggregate read endpoints. Every response
// is computed from the current row set; nothing here mutates state.
type DashboardHandler struct {
	dashboard dashboard.Service
	logger    *slog.Logger
}

// NewDashboardHandler creates a new DashboardHandler.
func NewDashboardHandler(dashboardSvc dashboard.Service, logger *slog.Logger) *DashboardHandler {
	if dashboardSvc == nil {
		panic("dashboard service cannot be nil for DashboardHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &DashboardHandler{
		dashboard: dashboardSvc,
		logger:    logger.With(slog.String("component", "dashboard_handler")),
	}
}

// Overview handles GET /api/dashboard.
func (h *DashboardHandler) Overview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	overview, err := h.dashboard.Overview(r.Context())
	if err != nil {
		log.Error("failed to compute dashboard overview", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Dashboard retrieved successfully", overview)
}

// Statistics handles GET /api/dashboard/statistics.
func (h *DashboardHandler) Statistics(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	stats, err := h.dashboard.Statistics(r.Context())
	if err != nil {
		log.Error("failed to compute dashboard statistics", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Statistics retrieved successfully", stats)
}

// StudyProgress handles GET /api/dashboard/study-progress.
func (h *DashboardHandler) StudyProgress(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	progress, err := h.dashboard.Progress(r.Context())
	if err != nil {
		log.Error("failed to compute study progress", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Study progress retrieved successfully", progress)
}

// LastSession handles GET /api/dashboard/last-session. When no sessions
// exist the data field is simply null; absence is not an error here.
func (h *DashboardHandler) LastSession(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	last, err := h.dashboard.LastSession(r.Context())
	if err != nil {
		log.Error("failed to load last study session", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	if last == nil {
		shared.RespondWithData(w, r, http.StatusOK, "No study sessions yet", nil)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Last study session retrieved successfully", last)
}
