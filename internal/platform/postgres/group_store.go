package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// groupColumns selects group rows with the live word count subquery.
// total_words is computed on every read, never stored.
const groupColumns = `
	g.id, g.name, g.description, g.created_at, g.updated_at,
	(SELECT COUNT(*) FROM words_groups c WHERE c.group_id = g.id) AS total_words
`

// Create implements store.GroupStore.Create
func (s *PostgresGroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		log.Warn("group validation failed during create",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return err
	}

	query := `
		INSERT INTO groups (id, name, description, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		group.ID,
		group.Name,
		group.Description,
		group.CreatedAt,
		group.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create group",
			slog.String("error", err.Error()),
			slog.String("group_id", group.ID.String()))
		return store.NewStoreError("group", "create", "insert failed", err)
	}

	log.Info("group created successfully",
		slog.String("group_id", group.ID.String()),
		slog.String("name", group.Name))
	return nil
}

// GetByID implements store.GroupStore.GetByID
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresGroupStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + groupColumns + ` FROM groups g WHERE g.id = $1`

	var group domain.Group
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&group.ID,
		&group.Name,
		&group.Description,
		&group.CreatedAt,
		&group.UpdatedAt,
		&group.TotalWords,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("group not found", slog.String("group_id", id.String()))
			return nil, store.ErrGroupNotFound
		}
		log.Error("failed to get group by ID",
			slog.String("error", err.Error()),
			slog.String("group_id", id.String()))
		return nil, store.NewStoreError("group", "get", "query failed", err)
	}

	return &group, nil
}

// List implements store.GroupStore.List
func (s *PostgresGroupStore) List(
	ctx context.Context,
	page pagination.Params,
) ([]*domain.Group, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM groups`).Scan(&total); err != nil {
		log.Error("failed to count groups", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("group", "list", "count failed", err)
	}

	query := `SELECT ` + groupColumns + ` FROM groups g ORDER BY g.name, g.id LIMIT $1 OFFSET $2`

	rows, err := s.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list groups", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("group", "list", "query failed", err)
	}
	defer closeRows(rows, log)

	groups := []*domain.Group{}
	for rows.Next() {
		var group domain.Group
		err := rows.Scan(
			&group.ID,
			&group.Name,
			&group.Description,
			&group.CreatedAt,
			&group.UpdatedAt,
			&group.TotalWords,
		)
		if err != nil {
			return nil, 0, store.NewStoreError("group", "list", "scan failed", err)
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, store.NewStoreError("group", "list", "row iteration failed", err)
	}

	return groups, total, nil
}

// AddWord implements store.GroupStore.AddWord
// The (word_id, group_id) pair is the join table's primary key, so a
// second link of the same pair surfaces as store.ErrDuplicate.
func (s *PostgresGroupStore) AddWord(ctx context.Context, groupID, wordID uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `INSERT INTO words_groups (word_id, group_id) VALUES ($1, $2)`

	_, err := s.db.ExecContext(ctx, query, wordID, groupID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: word %s already in group %s", store.ErrDuplicate, wordID, groupID)
		}
		if constraint, ok := isForeignKeyViolation(err); ok {
			log.Warn("foreign key violation while linking word to group",
				slog.String("constraint", constraint),
				slog.String("word_id", wordID.String()),
				slog.String("group_id", groupID.String()))
			if constraint == "words_groups_word_id_fkey" {
				return store.ErrWordNotFound
			}
			return store.ErrGroupNotFound
		}
		log.Error("failed to link word to group",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()),
			slog.String("group_id", groupID.String()))
		return store.NewStoreError("group", "add_word", "insert failed", err)
	}

	log.Info("word linked to group",
		slog.String("word_id", wordID.String()),
		slog.String("group_id", groupID.String()))
	return nil
}
