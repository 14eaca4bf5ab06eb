package api

import (
	"log/slog"
	"net/http"

	"github.com/nabink/lang-portal/internal/api/shared"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// CreateWordRequest is the payload for POST /api/words.
type CreateWordRequest struct {
	NepaliWord          string   `json:"nepali_word"           validate:"required"`
	RomanizedNepaliWord string   `json:"romanized_nepali_word" validate:"required"`
	EnglishWord         string   `json:"english_word"          validate:"required"`
	PartsOfSpeech       []string `json:"part_of_speech"        validate:"required,min=1"`
}

// WordDetail is a word joined with the groups it belongs to.
type WordDetail struct {
	Word   *domain.Word    `json:"word"`
	Groups []*domain.Group `json:"groups"`
}

// WordHandler handles word-related HTTP requests.
type WordHandler struct {
	words  store.WordStore
	limits pagination.Limits
	logger *slog.Logger
}

// NewWordHandler creates a new WordHandler.
func NewWordHandler(words store.WordStore, limits pagination.Limits, logger *slog.Logger) *WordHandler {
	if words == nil {
		panic("word store cannot be nil for WordHandler")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &WordHandler{
		words:  words,
		limits: limits,
		logger: logger.With(slog.String("component", "word_handler")),
	}
}

// List handles GET /api/words.
func (h *WordHandler) List(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	page, err := parsePagination(r, h.limits)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	words, total, err := h.words.List(r.Context(), page)
	if err != nil {
		log.Error("failed to list words", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithPage(w, r, "Words retrieved successfully", words, pagination.NewMeta(page, total))
}

// Get handles GET /api/words/{id}. The response joins the word with the
// groups it belongs to.
func (h *WordHandler) Get(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	id, err := parseIDParam(r, "id")
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	word, err := h.words.GetByID(r.Context(), id)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	groups, err := h.words.GroupsForWord(r.Context(), id)
	if err != nil {
		log.Error("failed to load groups for word",
			slog.String("word_id", id.String()),
			slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	shared.RespondWithData(w, r, http.StatusOK, "Word retrieved successfully", WordDetail{
		Word:   word,
		Groups: groups,
	})
}

// Create handles POST /api/words.
func (h *WordHandler) Create(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateWordRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	parts := make([]domain.PartOfSpeech, 0, len(req.PartsOfSpeech))
	for _, p := range req.PartsOfSpeech {
		parts = append(parts, domain.PartOfSpeech(p))
	}

	word, err := domain.NewWord(req.NepaliWord, req.RomanizedNepaliWord, req.EnglishWord, parts)
	if err != nil {
		respondWithMappedError(w, r, err)
		return
	}

	if err := h.words.Create(r.Context(), word); err != nil {
		log.Error("failed to create word", slog.String("error", err.Error()))
		respondWithMappedError(w, r, err)
		return
	}

	log.Debug("word created", slog.String("word_id", word.ID.String()))
	shared.RespondWithData(w, r, http.StatusCreated, "Word created successfully", word)
}
