package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresResetStore implements the store.ResetStore interface.
// Unlike the other stores it requires a full *sql.DB rather than a DBTX,
// because each reset opens its own transaction: the multi-table deletes
// must land atomically or not at all.
type PostgresResetStore struct {
	db     *sql.DB
	logger *slog.Logger
}

// NewPostgresResetStore creates a new PostgreSQL implementation of the ResetStore interface.
// If logger is nil, a default logger will be used.
func NewPostgresResetStore(db *sql.DB, logger *slog.Logger) *PostgresResetStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresResetStore{
		db:     db,
		logger: logger.With(slog.String("component", "reset_store")),
	}
}

// Ensure PostgresResetStore implements store.ResetStore interface
var _ store.ResetStore = (*PostgresResetStore)(nil)

// ResetHistory implements store.ResetStore.ResetHistory
// It deletes the review ledger and all study sessions in one transaction.
// Words, groups, and activities are untouched. Running it against empty
// tables succeeds with no effect.
func (s *PostgresResetStore) ResetHistory(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		// Children before parents; the review items reference sessions.
		if _, err := tx.ExecContext(ctx, `DELETE FROM word_review_items`); err != nil {
			return store.NewStoreError("review_item", "reset_history", "delete failed", err)
		}
		if _, err := tx.ExecContext(ctx, `DELETE FROM study_sessions`); err != nil {
			return store.NewStoreError("study_session", "reset_history", "delete failed", err)
		}
		return nil
	})

	if err != nil {
		log.Error("history reset failed", slog.String("error", err.Error()))
		return err
	}

	log.Info("history reset completed")
	return nil
}

// FullReset implements store.ResetStore.FullReset
// It deletes every row of every entity type, including the word/group
// membership edges, in one transaction.
func (s *PostgresResetStore) FullReset(ctx context.Context) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		tables := []string{
			"word_review_items",
			"study_sessions",
			"words_groups",
			"words",
			"groups",
			"study_activities",
		}
		for _, table := range tables {
			if _, err := tx.ExecContext(ctx, `DELETE FROM `+table); err != nil {
				return store.NewStoreError(table, "full_reset", "delete failed", err)
			}
		}
		return nil
	})

	if err != nil {
		log.Error("full reset failed", slog.String("error", err.Error()))
		return err
	}

	log.Info("full reset completed")
	return nil
}
