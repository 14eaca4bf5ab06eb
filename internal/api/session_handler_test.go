package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/service/studysession"
	"github.com/nabink/lang-portal/internal/store"
)

// fakeSessionService backs the handler tests with canned outcomes.
type fakeSessionService struct {
	summary   *studysession.Summary
	summaries []*studysession.Summary
	item      *domain.ReviewItem
	err       error
}

func (f *fakeSessionService) Start(context.Context, uuid.UUID, uuid.UUID) (*studysession.Summary, error) {
	return f.summary, f.err
}

func (f *fakeSessionService) End(context.Context, uuid.UUID) (*studysession.Summary, error) {
	return f.summary, f.err
}

func (f *fakeSessionService) RecordReview(context.Context, uuid.UUID, uuid.UUID, bool) (*domain.ReviewItem, error) {
	return f.item, f.err
}

func (f *fakeSessionService) Get(context.Context, uuid.UUID) (*studysession.Summary, error) {
	return f.summary, f.err
}

func (f *fakeSessionService) List(context.Context, pagination.Params) ([]*studysession.Summary, int, error) {
	return f.summaries, len(f.summaries), f.err
}

func (f *fakeSessionService) ListByGroup(context.Context, uuid.UUID, pagination.Params) ([]*studysession.Summary, int, error) {
	return f.summaries, len(f.summaries), f.err
}

func (f *fakeSessionService) ListByActivity(context.Context, uuid.UUID, pagination.Params) ([]*studysession.Summary, int, error) {
	return f.summaries, len(f.summaries), f.err
}

// inertWordStore satisfies store.WordStore for handler wiring.
type inertWordStore struct{}

func (inertWordStore) Create(context.Context, *domain.Word) error { return nil }
func (inertWordStore) GetByID(context.Context, uuid.UUID) (*domain.Word, error) {
	return nil, store.ErrWordNotFound
}
func (inertWordStore) List(context.Context, pagination.Params) ([]*domain.Word, int, error) {
	return nil, 0, nil
}
func (inertWordStore) ListByGroup(context.Context, uuid.UUID, pagination.Params) ([]*domain.Word, int, error) {
	return nil, 0, nil
}
func (inertWordStore) ListBySession(context.Context, uuid.UUID, pagination.Params) ([]*domain.Word, int, error) {
	return nil, 0, nil
}
func (inertWordStore) GroupsForWord(context.Context, uuid.UUID) ([]*domain.Group, error) {
	return nil, nil
}

func sessionRouter(svc studysession.Service) http.Handler {
	h := NewSessionHandler(svc, inertWordStore{}, pagination.DefaultLimits(), nil)

	r := chi.NewRouter()
	r.Route("/api/study-sessions", func(r chi.Router) {
		r.Get("/", h.List)
		r.Post("/", h.Start)
		r.Get("/{id}", h.Get)
		r.Post("/{id}/end", h.End)
		r.Post("/{id}/words/{word_id}/review", h.RecordReview)
	})
	return r
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestStartSessionResponseEnvelope(t *testing.T) {
	t.Parallel()

	summary := &studysession.Summary{
		ID:              uuid.New(),
		GroupID:         uuid.New(),
		StudyActivityID: uuid.New(),
		GroupName:       "Core Verbs",
		ActivityName:    "Flashcards",
		StartedAt:       time.Now().UTC(),
	}
	router := sessionRouter(&fakeSessionService{summary: summary})

	payload := fmt.Sprintf(`{"group_id": %q, "study_activity_id": %q}`,
		summary.GroupID, summary.StudyActivityID)
	req := httptest.NewRequest(http.MethodPost, "/api/study-sessions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["message"])
	assert.NotEmpty(t, body["timestamp"])

	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, summary.ID.String(), data["id"])
	assert.Equal(t, "Core Verbs", data["group_name"])
	assert.Equal(t, "Flashcards", data["activity_name"])
}

func TestStartSessionRejectsMalformedBody(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/study-sessions", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, CodeValidationError, body["error_code"])
}

func TestStartSessionRejectsMissingFields(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/study-sessions",
		strings.NewReader(`{"group_id": ""}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, CodeValidationError, body["error_code"])
}

func TestStartSessionUnknownGroup(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{err: store.ErrGroupNotFound})

	payload := fmt.Sprintf(`{"group_id": %q, "study_activity_id": %q}`, uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, "/api/study-sessions", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, CodeNotFound, body["error_code"])
	assert.Equal(t, "Group not found", body["message"])
}

func TestEndSessionAlreadyEnded(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{err: domain.ErrSessionAlreadyEnded})

	req := httptest.NewRequest(http.MethodPost,
		"/api/study-sessions/"+uuid.New().String()+"/end", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusConflict, rec.Code)

	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, CodeInvalidState, body["error_code"])
	assert.Equal(t, "Study session has already ended", body["message"])
}

func TestEndSessionRejectsMalformedID(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{})

	req := httptest.NewRequest(http.MethodPost, "/api/study-sessions/not-a-uuid/end", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, CodeValidationError, body["error_code"])
}

func TestRecordReviewRequiresIsCorrect(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{})

	url := fmt.Sprintf("/api/study-sessions/%s/words/%s/review", uuid.New(), uuid.New())
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, CodeValidationError, body["error_code"])
}

func TestRecordReviewFalseIsAccepted(t *testing.T) {
	t.Parallel()

	item, err := domain.NewReviewItem(uuid.New(), uuid.New(), uuid.New(), false)
	require.NoError(t, err)
	router := sessionRouter(&fakeSessionService{item: item})

	url := fmt.Sprintf("/api/study-sessions/%s/words/%s/review", item.SessionID, item.WordID)
	req := httptest.NewRequest(http.MethodPost, url, strings.NewReader(`{"is_correct": false}`))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code)

	body := decodeEnvelope(t, rec)
	data, ok := body["data"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, false, data["is_correct"])
}

func TestListSessionsRejectsBadPagination(t *testing.T) {
	t.Parallel()

	router := sessionRouter(&fakeSessionService{})

	cases := []struct {
		name  string
		query string
	}{
		{"non-integer page", "?page=abc"},
		{"zero page", "?page=0"},
		{"negative page", "?page=-1"},
		{"zero page size", "?page_size=0"},
		{"page size above max", "?page_size=1000"},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/study-sessions"+tc.query, nil)
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, req)

			require.Equal(t, http.StatusBadRequest, rec.Code)
			body := decodeEnvelope(t, rec)
			assert.Equal(t, CodeValidationError, body["error_code"])
		})
	}
}

func TestListSessionsMeta(t *testing.T) {
	t.Parallel()

	summary := &studysession.Summary{ID: uuid.New(), StartedAt: time.Now().UTC()}
	router := sessionRouter(&fakeSessionService{summaries: []*studysession.Summary{summary}})

	req := httptest.NewRequest(http.MethodGet, "/api/study-sessions?page=1&page_size=10", nil)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeEnvelope(t, rec)
	meta, ok := body["meta"].(map[string]any)
	require.True(t, ok)
	page, ok := meta["pagination"].(map[string]any)
	require.True(t, ok)

	assert.Equal(t, float64(1), page["page"])
	assert.Equal(t, float64(10), page["page_size"])
	assert.Equal(t, float64(1), page["total_items"])
	assert.Equal(t, float64(1), page["total_pages"])
	assert.Equal(t, false, page["has_next"])
	assert.Equal(t, false, page["has_previous"])
}
