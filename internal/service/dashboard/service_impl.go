package dashboard

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// service is the production implementation of Service.
type service struct {
	stats    store.StatsStore
	sessions store.SessionStore
	groups   store.GroupStore
	reviews  store.ReviewStore
	logger   *slog.Logger
}

// NewService creates a dashboard service wired to the given stores.
func NewService(
	stats store.StatsStore,
	sessions store.SessionStore,
	groups store.GroupStore,
	reviews store.ReviewStore,
	log *slog.Logger,
) (Service, error) {
	if stats == nil || sessions == nil || groups == nil || reviews == nil {
		return nil, fmt.Errorf("dashboard.NewService: all stores are required")
	}
	if log == nil {
		log = slog.Default()
	}

	return &service{
		stats:    stats,
		sessions: sessions,
		groups:   groups,
		reviews:  reviews,
		logger:   log.With(slog.String("component", "dashboard_service")),
	}, nil
}

// Overview implements Service.Overview
func (s *service) Overview(ctx context.Context) (*Overview, error) {
	words, err := s.stats.WordCount(ctx)
	if err != nil {
		return nil, err
	}

	groups, err := s.stats.GroupCount(ctx)
	if err != nil {
		return nil, err
	}

	sessions, err := s.stats.SessionCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Overview{
		TotalWords:         words,
		TotalGroups:        groups,
		TotalStudySessions: sessions,
	}, nil
}

// Statistics implements Service.Statistics
func (s *service) Statistics(ctx context.Context) (*Statistics, error) {
	learned, err := s.stats.DistinctWordsReviewed(ctx)
	if err != nil {
		return nil, err
	}

	completed, err := s.stats.CompletedSessionCount(ctx)
	if err != nil {
		return nil, err
	}

	totals, err := s.stats.ReviewTotals(ctx)
	if err != nil {
		return nil, err
	}

	return &Statistics{
		WordsLearned:           learned,
		StudySessionsCompleted: completed,
		AverageScore:           score(totals.Correct, totals.Total),
		Streak:                 streak(),
	}, nil
}

// Progress implements Service.Progress
func (s *service) Progress(ctx context.Context) (*Progress, error) {
	studied, err := s.stats.DistinctWordsReviewed(ctx)
	if err != nil {
		return nil, err
	}

	available, err := s.stats.WordCount(ctx)
	if err != nil {
		return nil, err
	}

	return &Progress{
		TotalWordsStudied:    studied,
		TotalAvailableWords:  available,
		CompletionPercentage: score(studied, available),
	}, nil
}

// LastSession implements Service.LastSession
// No sessions is an empty result, not an error.
func (s *service) LastSession(ctx context.Context) (*LastSession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	session, err := s.sessions.Latest(ctx)
	if err != nil {
		if errors.Is(err, store.ErrSessionNotFound) {
			log.Debug("no study sessions recorded yet")
			return nil, nil
		}
		return nil, err
	}

	counts, err := s.reviews.CountsBySession(ctx, session.ID)
	if err != nil {
		return nil, err
	}

	return &LastSession{
		ID:        session.ID,
		GroupID:   session.GroupID,
		StartedAt: session.StartedAt,
		EndedAt:   session.EndedAt,
		Score:     score(counts.Correct, counts.Total),
	}, nil
}

// GroupStatistics implements Service.GroupStatistics
func (s *service) GroupStatistics(ctx context.Context, groupID uuid.UUID) (*GroupStatistics, error) {
	group, err := s.groups.GetByID(ctx, groupID)
	if err != nil {
		return nil, err
	}

	counts, err := s.reviews.CountsByGroup(ctx, groupID)
	if err != nil {
		return nil, err
	}

	return &GroupStatistics{
		TotalWords:     group.TotalWords,
		TotalReviews:   counts.Total,
		CorrectReviews: counts.Correct,
	}, nil
}

// score returns 100 * part / whole rounded to two decimals, 0 when the
// denominator is 0.
func score(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(whole)*100*100) / 100
}

// streak is a placeholder until streak tracking lands.
// TODO: derive the streak from consecutive study days once session
// summaries carry local dates.
func streak() int {
	return 0
}
