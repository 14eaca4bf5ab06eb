package store

import "context"

// StatsStore exposes the read-only aggregation queries the dashboard is
// built from. Every method computes from the current row set at call
// time; nothing is cached or maintained incrementally.
type StatsStore interface {
	// WordCount returns the number of words.
	WordCount(ctx context.Context) (int, error)

	// GroupCount returns the number of groups.
	GroupCount(ctx context.Context) (int, error)

	// SessionCount returns the number of study sessions.
	SessionCount(ctx context.Context) (int, error)

	// CompletedSessionCount returns the number of study sessions with a
	// non-null ended_at.
	CompletedSessionCount(ctx context.Context) (int, error)

	// ReviewTotals returns the outcome partition of the entire review
	// ledger.
	ReviewTotals(ctx context.Context) (ReviewCounts, error)

	// DistinctWordsReviewed returns the number of distinct word ids in
	// the review ledger. A word counts once no matter how often it has
	// been reviewed, and regardless of correctness.
	DistinctWordsReviewed(ctx context.Context) (int, error)
}

// ResetStore exposes the two bulk-delete operations. Both are atomic
// (all affected rows removed or none) and idempotent (repeating against
// an already-empty target set succeeds with no effect).
type ResetStore interface {
	// ResetHistory deletes all review items and study sessions, leaving
	// words, groups, and activities untouched.
	ResetHistory(ctx context.Context) error

	// FullReset deletes all rows of all entity types, including the
	// word/group membership edges.
	FullReset(ctx context.Context) error
}
