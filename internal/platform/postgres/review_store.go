package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresReviewStore implements the store.ReviewStore interface
// using a PostgreSQL database as the storage backend. The ledger is
// append-only: there is no update path, and deletion happens only
// through the reset store.
type PostgresReviewStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresReviewStore creates a new PostgreSQL implementation of the ReviewStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresReviewStore(db store.DBTX, logger *slog.Logger) *PostgresReviewStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresReviewStore{
		db:     db,
		logger: logger.With(slog.String("component", "review_store")),
	}
}

// Ensure PostgresReviewStore implements store.ReviewStore interface
var _ store.ReviewStore = (*PostgresReviewStore)(nil)

// Create implements store.ReviewStore.Create
// Returns store.ErrInvalidEntity wrapping the missing reference when a
// foreign key does not resolve.
func (s *PostgresReviewStore) Create(ctx context.Context, item *domain.ReviewItem) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := item.Validate(); err != nil {
		log.Warn("review item validation failed during create",
			slog.String("error", err.Error()),
			slog.String("review_id", item.ID.String()))
		return err
	}

	query := `
		INSERT INTO word_review_items (id, word_id, session_id, group_id, is_correct, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		item.ID,
		item.WordID,
		item.SessionID,
		item.GroupID,
		item.IsCorrect,
		item.CreatedAt,
	)

	if err != nil {
		if constraint, ok := isForeignKeyViolation(err); ok {
			log.Warn("foreign key violation during review creation",
				slog.String("constraint", constraint),
				slog.String("review_id", item.ID.String()))
			switch constraint {
			case "word_review_items_word_id_fkey":
				return fmt.Errorf("%w: word %s not found", store.ErrInvalidEntity, item.WordID)
			case "word_review_items_session_id_fkey":
				return fmt.Errorf("%w: session %s not found", store.ErrInvalidEntity, item.SessionID)
			default:
				return fmt.Errorf("%w: group %s not found", store.ErrInvalidEntity, item.GroupID)
			}
		}
		log.Error("failed to create review item",
			slog.String("error", err.Error()),
			slog.String("review_id", item.ID.String()))
		return store.NewStoreError("review_item", "create", "insert failed", err)
	}

	log.Info("review item recorded",
		slog.String("review_id", item.ID.String()),
		slog.String("session_id", item.SessionID.String()),
		slog.String("word_id", item.WordID.String()),
		slog.Bool("is_correct", item.IsCorrect))
	return nil
}

// CountsBySession implements store.ReviewStore.CountsBySession
func (s *PostgresReviewStore) CountsBySession(
	ctx context.Context,
	sessionID uuid.UUID,
) (store.ReviewCounts, error) {
	return s.counts(ctx, `session_id`, sessionID)
}

// CountsByGroup implements store.ReviewStore.CountsByGroup
// The filter runs against the denormalized group_id column, so no join
// with study_sessions is needed.
func (s *PostgresReviewStore) CountsByGroup(
	ctx context.Context,
	groupID uuid.UUID,
) (store.ReviewCounts, error) {
	return s.counts(ctx, `group_id`, groupID)
}

// counts partitions one scope of the ledger by outcome in a single
// query, which keeps total == correct + wrong true by construction.
func (s *PostgresReviewStore) counts(
	ctx context.Context,
	column string,
	id uuid.UUID,
) (store.ReviewCounts, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT COUNT(*),
		       COUNT(*) FILTER (WHERE is_correct)
		FROM word_review_items
		WHERE ` + column + ` = $1
	`

	var counts store.ReviewCounts
	if err := s.db.QueryRowContext(ctx, query, id).Scan(&counts.Total, &counts.Correct); err != nil {
		log.Error("failed to count review items",
			slog.String("error", err.Error()),
			slog.String("scope", column),
			slog.String("id", id.String()))
		return store.ReviewCounts{}, store.NewStoreError("review_item", "count", "query failed", err)
	}

	counts.Wrong = counts.Total - counts.Correct
	return counts, nil
}
