// Package dashboard computes the read-side statistics: global counts,
// aggregate scoring, study progress, per-group statistics, and the last
// session summary. Everything is derived from the current rows at call
// time; there are no cached counters.
package dashboard

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Overview is the top-level entity census.
type Overview struct {
	TotalWords         int `json:"total_words"`
	TotalGroups        int `json:"total_groups"`
	TotalStudySessions int `json:"total_study_sessions"`
}

// Statistics aggregates the review ledger. WordsLearned counts distinct
// words that have ever been reviewed, regardless of correctness.
// AverageScore is 100 * correct / total, 0 when the ledger is empty,
// rounded to two decimals. Streak is a placeholder pending a real
// calculation.
type Statistics struct {
	WordsLearned           int     `json:"words_learned"`
	StudySessionsCompleted int     `json:"study_sessions_completed"`
	AverageScore           float64 `json:"average_score"`
	Streak                 int     `json:"streak"`
}

// Progress compares studied words against the full vocabulary.
// CompletionPercentage is 0 when no words exist.
type Progress struct {
	TotalWordsStudied    int     `json:"total_words_studied"`
	TotalAvailableWords  int     `json:"total_available_words"`
	CompletionPercentage float64 `json:"completion_percentage"`
}

// LastSession describes the most recently started session and its score.
type LastSession struct {
	ID        uuid.UUID  `json:"id"`
	GroupID   uuid.UUID  `json:"group_id"`
	StartedAt time.Time  `json:"started_at"`
	EndedAt   *time.Time `json:"ended_at"`
	Score     float64    `json:"score"`
}

// GroupStatistics scopes the ledger aggregates to one group, via the
// denormalized group id on each review item.
type GroupStatistics struct {
	TotalWords     int `json:"total_words"`
	TotalReviews   int `json:"total_reviews"`
	CorrectReviews int `json:"correct_reviews"`
}

// Service exposes the dashboard reads.
type Service interface {
	// Overview returns the entity counts.
	Overview(ctx context.Context) (*Overview, error)

	// Statistics returns the ledger aggregates.
	Statistics(ctx context.Context) (*Statistics, error)

	// Progress returns studied-versus-available word counts.
	Progress(ctx context.Context) (*Progress, error)

	// LastSession returns the session with the latest start time, or
	// (nil, nil) when no sessions exist. Absence is an empty result, not
	// an error.
	LastSession(ctx context.Context) (*LastSession, error)

	// GroupStatistics returns the per-group aggregates.
	// Fails with the store's not-found error when the group is unknown.
	GroupStatistics(ctx context.Context, groupID uuid.UUID) (*GroupStatistics, error)
}
