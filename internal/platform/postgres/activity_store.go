package postgres

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresActivityStore implements the store.ActivityStore interface
// using a PostgreSQL database as the storage backend.
type PostgresActivityStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresActivityStore creates a new PostgreSQL implementation of the ActivityStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresActivityStore(db store.DBTX, logger *slog.Logger) *PostgresActivityStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresActivityStore{
		db:     db,
		logger: logger.With(slog.String("component", "activity_store")),
	}
}

// Ensure PostgresActivityStore implements store.ActivityStore interface
var _ store.ActivityStore = (*PostgresActivityStore)(nil)

// Create implements store.ActivityStore.Create
func (s *PostgresActivityStore) Create(ctx context.Context, activity *domain.StudyActivity) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := activity.Validate(); err != nil {
		log.Warn("activity validation failed during create",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_activities (id, name, description, instructions, thumbnail, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		activity.ID,
		activity.Name,
		activity.Description,
		activity.Instructions,
		activity.Thumbnail,
		activity.CreatedAt,
		activity.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create study activity",
			slog.String("error", err.Error()),
			slog.String("activity_id", activity.ID.String()))
		return store.NewStoreError("study_activity", "create", "insert failed", err)
	}

	log.Info("study activity created successfully",
		slog.String("activity_id", activity.ID.String()),
		slog.String("name", activity.Name))
	return nil
}

// GetByID implements store.ActivityStore.GetByID
// Returns store.ErrActivityNotFound if the activity does not exist.
func (s *PostgresActivityStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudyActivity, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, name, description, instructions, thumbnail, created_at, updated_at
		FROM study_activities
		WHERE id = $1
	`

	var activity domain.StudyActivity
	err := s.db.QueryRowContext(ctx, query, id).Scan(
		&activity.ID,
		&activity.Name,
		&activity.Description,
		&activity.Instructions,
		&activity.Thumbnail,
		&activity.CreatedAt,
		&activity.UpdatedAt,
	)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study activity not found", slog.String("activity_id", id.String()))
			return nil, store.ErrActivityNotFound
		}
		log.Error("failed to get study activity by ID",
			slog.String("error", err.Error()),
			slog.String("activity_id", id.String()))
		return nil, store.NewStoreError("study_activity", "get", "query failed", err)
	}

	return &activity, nil
}

// List implements store.ActivityStore.List
func (s *PostgresActivityStore) List(
	ctx context.Context,
	page pagination.Params,
) ([]*domain.StudyActivity, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_activities`).Scan(&total); err != nil {
		log.Error("failed to count study activities", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("study_activity", "list", "count failed", err)
	}

	query := `
		SELECT id, name, description, instructions, thumbnail, created_at, updated_at
		FROM study_activities
		ORDER BY name, id
		LIMIT $1 OFFSET $2
	`

	rows, err := s.db.QueryContext(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list study activities", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("study_activity", "list", "query failed", err)
	}
	defer closeRows(rows, log)

	activities := []*domain.StudyActivity{}
	for rows.Next() {
		var activity domain.StudyActivity
		err := rows.Scan(
			&activity.ID,
			&activity.Name,
			&activity.Description,
			&activity.Instructions,
			&activity.Thumbnail,
			&activity.CreatedAt,
			&activity.UpdatedAt,
		)
		if err != nil {
			return nil, 0, store.NewStoreError("study_activity", "list", "scan failed", err)
		}
		activities = append(activities, &activity)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, store.NewStoreError("study_activity", "list", "row iteration failed", err)
	}

	return activities, total, nil
}
