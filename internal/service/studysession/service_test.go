package studysession_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/service/studysession"
	"github.com/nabink/lang-portal/internal/store"
)

// fakeSessionStore is an in-memory SessionStore for tests.
type fakeSessionStore struct {
	sessions map[uuid.UUID]*domain.StudySession
	created  int
}

func newFakeSessionStore() *fakeSessionStore {
	return &fakeSessionStore{sessions: make(map[uuid.UUID]*domain.StudySession)}
}

func (f *fakeSessionStore) Create(_ context.Context, session *domain.StudySession) error {
	copied := *session
	f.sessions[session.ID] = &copied
	f.created++
	return nil
}

func (f *fakeSessionStore) GetByID(_ context.Context, id uuid.UUID) (*domain.StudySession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) End(
	_ context.Context,
	id uuid.UUID,
	at time.Time,
) (*domain.StudySession, error) {
	session, ok := f.sessions[id]
	if !ok {
		return nil, store.ErrSessionNotFound
	}
	if err := session.End(at); err != nil {
		return nil, err
	}
	copied := *session
	return &copied, nil
}

func (f *fakeSessionStore) List(
	_ context.Context,
	_ pagination.Params,
) ([]*domain.StudySession, int, error) {
	out := make([]*domain.StudySession, 0, len(f.sessions))
	for _, s := range f.sessions {
		copied := *s
		out = append(out, &copied)
	}
	return out, len(out), nil
}

func (f *fakeSessionStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
	_ pagination.Params,
) ([]*domain.StudySession, int, error) {
	var out []*domain.StudySession
	for _, s := range f.sessions {
		if s.GroupID == groupID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeSessionStore) ListByActivity(
	ctx context.Context,
	activityID uuid.UUID,
	_ pagination.Params,
) ([]*domain.StudySession, int, error) {
	var out []*domain.StudySession
	for _, s := range f.sessions {
		if s.StudyActivityID == activityID {
			copied := *s
			out = append(out, &copied)
		}
	}
	return out, len(out), nil
}

func (f *fakeSessionStore) Latest(_ context.Context) (*domain.StudySession, error) {
	var latest *domain.StudySession
	for _, s := range f.sessions {
		if latest == nil || s.StartedAt.After(latest.StartedAt) {
			latest = s
		}
	}
	if latest == nil {
		return nil, store.ErrSessionNotFound
	}
	copied := *latest
	return &copied, nil
}

// fakeGroupStore holds a fixed set of groups.
type fakeGroupStore struct {
	groups map[uuid.UUID]*domain.Group
}

func (f *fakeGroupStore) Create(_ context.Context, group *domain.Group) error {
	f.groups[group.ID] = group
	return nil
}

func (f *fakeGroupStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Group, error) {
	group, ok := f.groups[id]
	if !ok {
		return nil, store.ErrGroupNotFound
	}
	return group, nil
}

func (f *fakeGroupStore) List(
	_ context.Context,
	_ pagination.Params,
) ([]*domain.Group, int, error) {
	return nil, 0, nil
}

func (f *fakeGroupStore) AddWord(_ context.Context, _, _ uuid.UUID) error {
	return nil
}

// fakeActivityStore holds a fixed set of activities.
type fakeActivityStore struct {
	activities map[uuid.UUID]*domain.StudyActivity
}

func (f *fakeActivityStore) Create(_ context.Context, activity *domain.StudyActivity) error {
	f.activities[activity.ID] = activity
	return nil
}

func (f *fakeActivityStore) GetByID(_ context.Context, id uuid.UUID) (*domain.StudyActivity, error) {
	activity, ok := f.activities[id]
	if !ok {
		return nil, store.ErrActivityNotFound
	}
	return activity, nil
}

func (f *fakeActivityStore) List(
	_ context.Context,
	_ pagination.Params,
) ([]*domain.StudyActivity, int, error) {
	return nil, 0, nil
}

// fakeWordStore holds a fixed set of words.
type fakeWordStore struct {
	words map[uuid.UUID]*domain.Word
}

func (f *fakeWordStore) Create(_ context.Context, word *domain.Word) error {
	f.words[word.ID] = word
	return nil
}

func (f *fakeWordStore) GetByID(_ context.Context, id uuid.UUID) (*domain.Word, error) {
	word, ok := f.words[id]
	if !ok {
		return nil, store.ErrWordNotFound
	}
	return word, nil
}

func (f *fakeWordStore) List(
	_ context.Context,
	_ pagination.Params,
) ([]*domain.Word, int, error) {
	return nil, 0, nil
}

func (f *fakeWordStore) ListByGroup(
	_ context.Context,
	_ uuid.UUID,
	_ pagination.Params,
) ([]*domain.Word, int, error) {
	return nil, 0, nil
}

func (f *fakeWordStore) ListBySession(
	_ context.Context,
	_ uuid.UUID,
	_ pagination.Params,
) ([]*domain.Word, int, error) {
	return nil, 0, nil
}

func (f *fakeWordStore) GroupsForWord(_ context.Context, _ uuid.UUID) ([]*domain.Group, error) {
	return nil, nil
}

// fakeReviewStore records review items in memory.
type fakeReviewStore struct {
	items []*domain.ReviewItem
}

func (f *fakeReviewStore) Create(_ context.Context, item *domain.ReviewItem) error {
	copied := *item
	f.items = append(f.items, &copied)
	return nil
}

func (f *fakeReviewStore) CountsBySession(
	_ context.Context,
	sessionID uuid.UUID,
) (store.ReviewCounts, error) {
	var counts store.ReviewCounts
	for _, item := range f.items {
		if item.SessionID != sessionID {
			continue
		}
		counts.Total++
		if item.IsCorrect {
			counts.Correct++
		} else {
			counts.Wrong++
		}
	}
	return counts, nil
}

func (f *fakeReviewStore) CountsByGroup(
	_ context.Context,
	groupID uuid.UUID,
) (store.ReviewCounts, error) {
	var counts store.ReviewCounts
	for _, item := range f.items {
		if item.GroupID != groupID {
			continue
		}
		counts.Total++
		if item.IsCorrect {
			counts.Correct++
		} else {
			counts.Wrong++
		}
	}
	return counts, nil
}

type fixture struct {
	service  studysession.Service
	sessions *fakeSessionStore
	reviews  *fakeReviewStore
	group    *domain.Group
	activity *domain.StudyActivity
	word     *domain.Word
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	group, err := domain.NewGroup("Core Verbs", "High-frequency verbs")
	require.NoError(t, err)

	activity, err := domain.NewStudyActivity("Flashcards", "Flip cards", "Tap to flip", "")
	require.NoError(t, err)

	word, err := domain.NewWord("खानु", "khaanu", "to eat", []domain.PartOfSpeech{domain.PartOfSpeechVerb})
	require.NoError(t, err)

	sessions := newFakeSessionStore()
	reviews := &fakeReviewStore{}

	svc, err := studysession.NewService(
		sessions,
		&fakeGroupStore{groups: map[uuid.UUID]*domain.Group{group.ID: group}},
		&fakeActivityStore{activities: map[uuid.UUID]*domain.StudyActivity{activity.ID: activity}},
		&fakeWordStore{words: map[uuid.UUID]*domain.Word{word.ID: word}},
		reviews,
		nil,
	)
	require.NoError(t, err)

	return &fixture{
		service:  svc,
		sessions: sessions,
		reviews:  reviews,
		group:    group,
		activity: activity,
		word:     word,
	}
}

func TestStartSession(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	summary, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, summary.ID)
	assert.Equal(t, fx.group.ID, summary.GroupID)
	assert.Equal(t, fx.activity.ID, summary.StudyActivityID)
	assert.Equal(t, "Core Verbs", summary.GroupName)
	assert.Equal(t, "Flashcards", summary.ActivityName)
	assert.Nil(t, summary.EndedAt)
	assert.Equal(t, 1, fx.sessions.created)
}

func TestStartSessionUnknownReferences(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Start(ctx, uuid.New(), fx.activity.ID)
	assert.ErrorIs(t, err, store.ErrGroupNotFound)

	_, err = fx.service.Start(ctx, fx.group.ID, uuid.New())
	assert.ErrorIs(t, err, store.ErrActivityNotFound)

	// A failed start leaves no session behind.
	assert.Equal(t, 0, fx.sessions.created)
}

func TestEndSession(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	started, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	ended, err := fx.service.End(ctx, started.ID)
	require.NoError(t, err)

	require.NotNil(t, ended.EndedAt)
	require.NotNil(t, ended.DurationSeconds)
	assert.GreaterOrEqual(t, *ended.DurationSeconds, 0.0)
}

func TestEndSessionTwice(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	started, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	_, err = fx.service.End(ctx, started.ID)
	require.NoError(t, err)

	_, err = fx.service.End(ctx, started.ID)
	assert.ErrorIs(t, err, domain.ErrSessionAlreadyEnded)
}

func TestEndUnknownSession(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)

	_, err := fx.service.End(context.Background(), uuid.New())
	assert.ErrorIs(t, err, store.ErrSessionNotFound)
}

func TestRecordReviewCopiesGroupID(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	started, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	item, err := fx.service.RecordReview(ctx, started.ID, fx.word.ID, true)
	require.NoError(t, err)

	assert.Equal(t, started.ID, item.SessionID)
	assert.Equal(t, fx.word.ID, item.WordID)
	assert.Equal(t, fx.group.ID, item.GroupID)
	assert.True(t, item.IsCorrect)
}

func TestRecordReviewUnknownWord(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	started, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	_, err = fx.service.RecordReview(ctx, started.ID, uuid.New(), true)
	assert.ErrorIs(t, err, store.ErrWordNotFound)
	assert.Empty(t, fx.reviews.items)
}

func TestRecordReviewAfterEnd(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	started, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	_, err = fx.service.End(ctx, started.ID)
	require.NoError(t, err)

	// An ended session still accepts reviews.
	_, err = fx.service.RecordReview(ctx, started.ID, fx.word.ID, false)
	assert.NoError(t, err)
}

func TestGetSummaryCounts(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	started, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	for _, correct := range []bool{true, true, false} {
		_, err := fx.service.RecordReview(ctx, started.ID, fx.word.ID, correct)
		require.NoError(t, err)
	}

	summary, err := fx.service.Get(ctx, started.ID)
	require.NoError(t, err)

	assert.Equal(t, 3, summary.ReviewItems)
	assert.Equal(t, 2, summary.CorrectItems)
	assert.Equal(t, 1, summary.WrongItems)
}

func TestListByGroup(t *testing.T) {
	t.Parallel()
	fx := newFixture(t)
	ctx := context.Background()

	_, err := fx.service.Start(ctx, fx.group.ID, fx.activity.ID)
	require.NoError(t, err)

	page, err := pagination.New(1, 20, pagination.DefaultLimits())
	require.NoError(t, err)

	summaries, total, err := fx.service.ListByGroup(ctx, fx.group.ID, page)
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, summaries, 1)
	assert.Equal(t, "Core Verbs", summaries[0].GroupName)
}
