package studysession

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// service is the production implementation of Service.
type service struct {
	sessions   store.SessionStore
	groups     store.GroupStore
	activities store.ActivityStore
	words      store.WordStore
	reviews    store.ReviewStore
	logger     *slog.Logger
}

// NewService creates a study session service wired to the given stores.
func NewService(
	sessions store.SessionStore,
	groups store.GroupStore,
	activities store.ActivityStore,
	words store.WordStore,
	reviews store.ReviewStore,
	log *slog.Logger,
) (Service, error) {
	if sessions == nil || groups == nil || activities == nil || words == nil || reviews == nil {
		return nil, fmt.Errorf("studysession.NewService: all stores are required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &service{
		sessions:   sessions,
		groups:     groups,
		activities: activities,
		words:      words,
		reviews:    reviews,
		logger:     log.With(slog.String("component", "studysession_service")),
	}, nil
}

// Start implements Service.Start
// Both references are resolved before the session row is written, so a
// dangling group or activity id fails without side effects.
func (s *service) Start(ctx context.Context, groupID, activityID uuid.UUID) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if groupID == uuid.Nil || activityID == uuid.Nil {
		return nil, fmt.Errorf("%w: group and activity ids are required", ErrInvalidInput)
	}

	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	activity, err := s.activities.GetByID(ctx, activityID)
	if err != nil {
		return nil, err
	}

	session, err := domain.NewStudySession(groupID, activityID)
	if err != nil {
		return nil, err
	}

	if err := s.sessions.Create(ctx, session); err != nil {
		return nil, &ServiceError{Operation: "start", Message: "failed to persist session", Err: err}
	}

	log.Info("study session started",
		slog.String("session_id", session.ID.String()),
		slog.String("group_id", groupID.String()),
		slog.String("activity_id", activityID.String()))

	return &Summary{
		ID:              session.ID,
		GroupID:         session.GroupID,
		StudyActivityID: session.StudyActivityID,
		ActivityName:    activity.Name,
		GroupName:       group.Name,
		StartedAt:       session.StartedAt,
	}, nil
}

// End implements Service.End
// The compare-and-swap lives in the session store; this layer only
// chooses the timestamp and assembles the summary.
func (s *service) End(ctx context.Context, sessionID uuid.UUID) (*Summary, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.End(ctx, sessionID, time.Now().UTC())
	if err != nil {
		return nil, err
	}

	log.Info("study session ended", slog.String("session_id", sessionID.String()))
	return s.summarize(ctx, session)
}

// RecordReview implements Service.RecordReview
// The group id is copied from the session at this moment and never
// re-derived, which is what keeps per-group statistics joins-free.
// An ended session still accepts reviews.
func (s *service) RecordReview(
	ctx context.Context,
	sessionID, wordID uuid.UUID,
	isCorrect bool,
) (*domain.ReviewItem, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	if _, err := s.words.GetByID(ctx, wordID); err != nil {
		return nil, err
	}

	item, err := domain.NewReviewItem(wordID, sessionID, session.GroupID, isCorrect)
	if err != nil {
		return nil, err
	}

	if err := s.reviews.Create(ctx, item); err != nil {
		return nil, &ServiceError{Operation: "record_review", Message: "failed to persist review", Err: err}
	}

	log.Debug("review recorded",
		slog.String("session_id", sessionID.String()),
		slog.String("word_id", wordID.String()),
		slog.Bool("is_correct", isCorrect))
	return item, nil
}

// Get implements Service.Get
func (s *service) Get(ctx context.Context, sessionID uuid.UUID) (*Summary, error) {
	session, err := s.sessions.GetByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	return s.summarize(ctx, session)
}

// List implements Service.List
func (s *service) List(
	ctx context.Context,
	page pagination.Params,
) ([]*Summary, int, error) {
	sessions, total, err := s.sessions.List(ctx, page)
	if err != nil {
		return nil, 0, err
	}

	summaries, err := s.summarizeAll(ctx, sessions)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// ListByGroup implements Service.ListByGroup
func (s *service) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
	page pagination.Params,
) ([]*Summary, int, error) {
	sessions, total, err := s.sessions.ListByGroup(ctx, groupID, page)
	if err != nil {
		return nil, 0, err
	}

	summaries, err := s.summarizeAll(ctx, sessions)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// ListByActivity implements Service.ListByActivity
func (s *service) ListByActivity(
	ctx context.Context,
	activityID uuid.UUID,
	page pagination.Params,
) ([]*Summary, int, error) {
	sessions, total, err := s.sessions.ListByActivity(ctx, activityID, page)
	if err != nil {
		return nil, 0, err
	}

	summaries, err := s.summarizeAll(ctx, sessions)
	if err != nil {
		return nil, 0, err
	}
	return summaries, total, nil
}

// summarize joins one session with its names and review counts. Counts
// come from a live query, so a summary is always consistent with the
// ledger at call time.
func (s *service) summarize(ctx context.Context, session *domain.StudySession) (*Summary, error) {
	group, err := s.groups.GetByID(ctx, session.GroupID)
	if err != nil {
		return nil, &ServiceError{Operation: "summarize", Message: "session group lookup failed", Err: err}
	}

	activity, err := s.activities.GetByID(ctx, session.StudyActivityID)
	if err != nil {
		return nil, &ServiceError{Operation: "summarize", Message: "session activity lookup failed", Err: err}
	}

	counts, err := s.reviews.CountsBySession(ctx, session.ID)
	if err != nil {
		return nil, &ServiceError{Operation: "summarize", Message: "review counts failed", Err: err}
	}

	summary := &Summary{
		ID:              session.ID,
		GroupID:         session.GroupID,
		StudyActivityID: session.StudyActivityID,
		ActivityName:    activity.Name,
		GroupName:       group.Name,
		StartedAt:       session.StartedAt,
		EndedAt:         session.EndedAt,
		ReviewItems:     counts.Total,
		CorrectItems:    counts.Correct,
		WrongItems:      counts.Wrong,
	}

	if d, ok := session.Duration(); ok {
		seconds := d.Seconds()
		summary.DurationSeconds = &seconds
	}

	return summary, nil
}

func (s *service) summarizeAll(
	ctx context.Context,
	sessions []*domain.StudySession,
) ([]*Summary, error) {
	summaries := make([]*Summary, 0, len(sessions))
	for _, session := range sessions {
		summary, err := s.summarize(ctx, session)
		if err != nil {
			return nil, err
		}
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
