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
	"github.com/nabink/lang-portal/internal/service/dashboard"
	"github.com/nabink/lang-portal/internal/service/studysession"
	"github.com/nabink/lang-portal/internal/store"
)

// CreateGroupRequest is the payload for POST /api/groups.
type CreateGroupRequest struct {
	Name        string `json:"name" validate:"required"`
	Description string `json:"description"`
}

// AddWordToGroupRequest is the payload for POST /api/groups/{id}/words.
type AddWordToGroupRequest struct {
	WordID string `json:"word_id" validate:"required,uuid"`
}

// GroupDetail is a group joined with its review statistics.
type GroupDetail struct {
	Group      *domain.Group              `json:"group"`
	Statistics *dashboard.GroupStatistics `json:"statistics"`
}

// GroupHandler handles group-related HTTP requests, including the
// word/group membership edges and the group's session history.
type GroupHandler struct {
	groups    store.GroupStore
	words     store.WordStore
	sessions  studysession.Service
	dashboard dashboard.Service
	limits    pagination.Limits
	logger    *slog.Logger
}

// NewGroupHandler creates a new GroupHandler.
func NewGroupHandler(
	groups store.GroupStore,
	words store.WordStore,
	sessions studysession.Service,
	dashboardSvc dashboard.Service,
	limits pagination.Limits,
	logger *slog.Logger,
) *GroupHandler {
	if groups == nil {
		panic("group store cannot be nil for GroupHandler")
	}
	if words == nil {
		panic("word store cannot be nil for GroupHandler")
	}
	if sessions == nil {
		panic("study session service cannot be nil for GroupHandler")
	}
	if dashboardSvc == nil {
		panic("dashboard service cannot be nil for GroupHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &GroupHandler{
		groups:    groups,
		words:     words,
		sessions:  sessions,
		dashboard: dashboardSvc,
		limits:    limits,
		logger:    logger.With(slog.String("component", "group_handler")),
	}
}

// List handles GET /api/groups.
func (h *GroupHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := parsePagination(r, h.limits)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	groups, total, err := h.groups.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list groups", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Groups retrieved successfully", groups, pagination.NewMeta(page, total))
}

// Get handles GET /api/groups/{id}. The response joins the group with its
// live review statistics.
func (h *GroupHandler) Get(w http.ResponseWriter, r *http.Request) {
	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	group, err := h.groups.GetByID(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	stats, err := h.dashboard.GroupStatistics(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Group retrieved successfully", GroupDetail{
		Group:      group,
		Statistics: stats,
	})
}

// Create handles POST /api/groups.
func (h *GroupHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	group, err := domain.NewGroup(req.Name, req.Description)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.groups.Create(r.Context(), group); err != nil {
		log.Error("failed to create group", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("group created", slog.String("group_id", group.ID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, "Group created successfully", group)
}

// ListWords handles GET /api/groups/{id}/words.
func (h *GroupHandler) ListWords(w http.ResponseWriter, r *http.Request) {
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

	words, total, err := h.words.ListByGroup(r.Context(), id, page)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Group words retrieved successfully", words, pagination.NewMeta(page, total))
}

// AddWord handles POST /api/groups/{id}/words. Linking the same word
// twice is an integrity conflict, not a no-op.
func (h *GroupHandler) AddWord(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	groupID, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	var req AddWordToGroupRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	wordID, err := uuid.Parse(req.WordID)
	if err != nil {
		respondWithMappedError(w, r, fmt.Errorf("%w: word_id %q is not a valid UUID", domain.ErrInvalidID, req.WordID))
		return
	}

	if err := h.groups.AddWord(r.Context(), groupID, wordID); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("word added to group",
		slog.String("group_id", groupID.String()),
		slog.String("word_id", wordID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, "Word added to group successfully", nil)
}

// ListSessions handles GET /api/groups/{id}/study-sessions.
func (h *GroupHandler) ListSessions(w http.ResponseWriter, r *http.Request) {
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

	summaries, total, err := h.sessions.ListByGroup(r.Context(), id, page)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Group study sessions retrieved successfully", summaries, pagination.NewMeta(page, total))
}
