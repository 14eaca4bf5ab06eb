package api

import (
	"log/slog"
	"net/http"

	"github.com/nabink/lang-portal/internal/api/shared"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/service/studysession"
	"github.com/nabink/lang-portal/internal/store"
)

// CreateActivityRequest is the payload for POST /api/study-activities.
type CreateActivityRequest struct {
	Name         string `json:"name" validate:"required"`
	Description  string `json:"description"`
	Instructions string `json:"instructions"`
	Thumbnail    string `json:"thumbnail"`
}

// ActivityHandler handles study activity HTTP requests.
type ActivityHandler struct {
	activities store.ActivityStore
	sessions   studysession.Service
	limits     pagination.Limits
	logger     *slog.Logger
}

// NewActivityHandler creates a new ActivityHandler.
func NewActivityHandler(
	activities store.ActivityStore,
	sessions studysession.Service,
	limits pagination.Limits,
	logger *slog.Logger,
) *ActivityHandler {
	if activities == nil {
		panic("activity store cannot be nil for ActivityHandler")
	}
	if sessions == nil {
		panic("study session service cannot be nil for ActivityHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ActivityHandler{
		activities: activities,
		sessions:   sessions,
		limits:     limits,
		logger:     logger.With(slog.String("component", "activity_handler")),
	}
}

// List handles GET /api/study-activities.
func (h *ActivityHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := parsePagination(r, h.limits)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	activities, total, err := h.activities.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list study activities", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Study activities retrieved successfully", activities, pagination.NewMeta(page, total))
}

// Get handles GET /api/study-activities/{id}.
func (h *ActivityHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	activity, err := h.activities.GetByID(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Study activity retrieved successfully", activity)
}

// Create handles POST /api/study-activities.
func (h *ActivityHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateActivityRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	activity, err := domain.NewStudyActivity(req.Name, req.Description, req.Instructions, req.Thumbnail)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.activities.Create(r.Context(), activity); err != nil {
		log.Error("failed to create study activity", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("study activity created", slog.String("activity_id", activity.ID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, "Study activity created successfully", activity)
}

// ListSessions handles GET /api/study-activities/{id}/study-sessions.
func (h *ActivityHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	page, err := parsePagination(r, h.limits)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	summaries, total, err := h.sessions.ListByActivity(r.Context(), id, page)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Activity study sessions retrieved successfully", summaries, pagination.NewMeta(page, total))
}
