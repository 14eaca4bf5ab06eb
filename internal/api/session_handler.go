package api

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/google/uuid"

	"github.com/nabink/lang-portal/internal/api/shared"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/service/studysession"
	"github.com/nabink/lang-portal/internal/store"
)

// StartSessionRequest is the payload for POST /api/study-sessions.
type StartSessionRequest struct {
	GroupID         string `json:"group_id"          validate:"required,uuid"`
	StudyActivityID string `json:"study_activity_id" validate:"required,uuid"`
}

// ReviewRequest is the payload for recording one word review. IsCorrect
// is a pointer so an absent field is distinguishable from false.
type ReviewRequest struct {
	IsCorrect *bool `json:"is_correct" validate:"required"`
}

// SessionHandler handles study session lifecycle HTTP requests.
type SessionHandler struct {
	sessions studysession.Service
	words    store.WordStore
	limits   pagination.Limits
	logger   *slog.Logger
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(
	sessions studysession.Service,
	words store.WordStore,
	limits pagination.Limits,
	logger *slog.Logger,
) *SessionHandler {
	if sessions == nil {
		panic("study session service cannot be nil for SessionHandler")
	}
	if words == nil {
		panic("word store cannot be nil for SessionHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &SessionHandler{
		sessions: sessions,
		words:    words,
		limits:   limits,
		logger:   logger.With(slog.String("component", "session_handler")),
	}
}

// Start handles POST /api/study-sessions.
func (h *SessionHandler) Start(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req StartSessionRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	groupID, err := uuid.Parse(req.GroupID)
	if err != nil {
		respondWithMappedError(w, r, fmt.Errorf("%w: group_id %q is not a valid UUID", domain.ErrInvalidID, req.GroupID))
		return
	}
	activityID, err := uuid.Parse(req.StudyActivityID)
	if err != nil {
		respondWithMappedError(w, r, fmt.Errorf("%w: study_activity_id %q is not a valid UUID", domain.ErrInvalidID, req.StudyActivityID))
		return
	}

	summary, err := h.sessions.Start(r.Context(), groupID, activityID)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("study session started",
		slog.String("session_id", summary.ID.String()),
		slog.String("group_id", groupID.String()),
		slog.String("activity_id", activityID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, "Study session started successfully", summary)
}

// List handles GET /api/study-sessions.
func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := parsePagination(r, h.limits)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	summaries, total, err := h.sessions.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list study sessions", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Study sessions retrieved successfully", summaries, pagination.NewMeta(page, total))
}

// Get handles GET /api/study-sessions/{id}.
func (h *SessionHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	summary, err := h.sessions.Get(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Study session retrieved successfully", summary)
}

// End handles POST /api/study-sessions/{id}/end. Ending is not
// idempotent: a second call gets a conflict response.
func (h *SessionHandler) End(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	summary, err := h.sessions.End(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("study session ended", slog.String("session_id", id.String()))
	shared.RespondWithData(w, r, http.StatusOK, "Study session ended successfully", summary)
}

// RecordReview handles POST /api/study-sessions/{id}/words/{word_id}/review.
func (h *SessionHandler) RecordReview(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	sessionID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	wordID, err := parseIDParam(r, "word_id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req ReviewRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	item, err := h.sessions.RecordReview(r.Context(), sessionID, wordID, *req.IsCorrect)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("review recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()),
		slog.Bool("is_correct", item.IsCorrect))
	shared.RespondWithData(w, r, http.StatusCreated, "Review recorded successfully", item)
}

// ListWords handles GET /api/study-sessions/{id}/words: the distinct
// words reviewed in the session.
func (h *SessionHandler) ListWords(w http.ResponseWriter, r *http.Request) {
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

	words, total, err := h.words.ListBySession(r.Context(), id, page)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Session words retrieved successfully", words, pagination.NewMeta(page, total))
}
