package postgres

import (
	"context"
	"log/slog"

	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresStatsStore implements the store.StatsStore interface
// using a PostgreSQL database as the storage backend. Every method is a
// single aggregate query over the current rows; nothing is cached.
type PostgresStatsStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresStatsStore creates a new PostgreSQL implementation of the StatsStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresStatsStore(db store.DBTX, logger *slog.Logger) *PostgresStatsStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresStatsStore{
		db:     db,
		logger: logger.With(slog.String("component", "stats_store")),
	}
}

// Ensure PostgresStatsStore implements store.StatsStore interface
var _ store.StatsStore = (*PostgresStatsStore)(nil)

// WordCount implements store.StatsStore.WordCount
func (s *PostgresStatsStore) WordCount(ctx context.Context) (int, error) {
	return s.scalar(ctx, `SELECT COUNT(*) FROM words`)
}

// GroupCount implements store.StatsStore.GroupCount
func (s *PostgresStatsStore) GroupCount(ctx context.Context) (int, error) {
	return s.scalar(ctx, `SELECT COUNT(*) FROM groups`)
}

// SessionCount implements store.StatsStore.SessionCount
func (s *PostgresStatsStore) SessionCount(ctx context.Context) (int, error) {
	return s.scalar(ctx, `SELECT COUNT(*) FROM study_sessions`)
}

// CompletedSessionCount implements store.StatsStore.CompletedSessionCount
func (s *PostgresStatsStore) CompletedSessionCount(ctx context.Context) (int, error) {
	return s.scalar(ctx, `SELECT COUNT(*) FROM study_sessions WHERE ended_at IS NOT NULL`)
}

// ReviewTotals implements store.StatsStore.ReviewTotals
func (s *PostgresStatsStore) ReviewTotals(ctx context.Context) (store.ReviewCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_correct)
		FROM word_review_items
	`

	var counts store.ReviewCounts
	if err := s.db.QueryRowContext(ctx, query).Scan(&counts.Total, &counts.Correct); err != nil {
		log.Error("failed to count review totals", slog.String("error", err.Error()))
		return store.ReviewCounts{}, store.NewStoreError("review_item", "totals", "query failed", err)
	}

	counts.Wrong = counts.Total - counts.Correct
	return counts, nil
}

// DistinctWordsReviewed implements store.StatsStore.DistinctWordsReviewed
// A word counts once regardless of how many times it was reviewed or
// whether any review was correct.
func (s *PostgresStatsStore) DistinctWordsReviewed(ctx context.Context) (int, error) {
	return s.scalar(ctx, `SELECT COUNT(DISTINCT word_id) FROM word_review_items`)
}

// scalar runs a single-integer aggregate query.
func (s *PostgresStatsStore) scalar(ctx context.Context, query string) (int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var n int
	if err := s.db.QueryRowContext(ctx, query).Scan(&n); err != nil {
		log.Error("failed to run aggregate query",
			slog.String("error", err.Error()),
			slog.String("query", query))
		return 0, store.NewStoreError("stats", "aggregate", "query failed", err)
	}

	return n, nil
}
