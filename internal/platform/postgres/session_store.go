package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresSessionStore implements the store.SessionStore interface
// using a PostgreSQL database as the storage backend.
type PostgresSessionStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresSessionStore creates a new PostgreSQL implementation of the SessionStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresSessionStore(db store.DBTX, logger *slog.Logger) *PostgresSessionStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresSessionStore{
		db:     db,
		logger: logger.With(slog.String("component", "session_store")),
	}
}

// Ensure PostgresSessionStore implements store.SessionStore interface
var _ store.SessionStore = (*PostgresSessionStore)(nil)

const sessionColumns = `id, group_id, study_activity_id, started_at, ended_at, created_at`

// Create implements store.SessionStore.Create
// Returns store.ErrInvalidEntity wrapping the missing reference when the
// group or activity foreign key does not resolve.
func (s *PostgresSessionStore) Create(ctx context.Context, session *domain.StudySession) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := session.Validate(); err != nil {
		log.Warn("session validation failed during create",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return err
	}

	query := `
		INSERT INTO study_sessions (id, group_id, study_activity_id, started_at, ended_at, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		session.ID,
		session.GroupID,
		session.StudyActivityID,
		session.StartedAt,
		session.EndedAt,
		session.CreatedAt,
	)

	if err != nil {
		if constraint, ok := isForeignKeyViolation(err); ok {
			log.Warn("foreign key violation during session creation",
				slog.String("constraint", constraint),
				slog.String("session_id", session.ID.String()))
			if constraint == "study_sessions_group_id_fkey" {
				return fmt.Errorf("%w: group %s not found",
					store.ErrInvalidEntity, session.GroupID)
			}
			return fmt.Errorf("%w: study activity %s not found",
				store.ErrInvalidEntity, session.StudyActivityID)
		}
		log.Error("failed to create study session",
			slog.String("error", err.Error()),
			slog.String("session_id", session.ID.String()))
		return store.NewStoreError("study_session", "create", "insert failed", err)
	}

	log.Info("study session created successfully",
		slog.String("session_id", session.ID.String()),
		slog.String("group_id", session.GroupID.String()),
		slog.String("activity_id", session.StudyActivityID.String()))
	return nil
}

// GetByID implements store.SessionStore.GetByID
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresSessionStore) GetByID(
	ctx context.Context,
	id uuid.UUID,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `SELECT ` + sessionColumns + ` FROM study_sessions WHERE id = $1`

	session, err := scanSession(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("study session not found", slog.String("session_id", id.String()))
			return nil, store.ErrSessionNotFound
		}
		log.Error("failed to get study session by ID",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, store.NewStoreError("study_session", "get", "query failed", err)
	}

	return session, nil
}

// End implements store.SessionStore.End
// The update only matches while ended_at is still null, which makes it a
// compare-and-swap: under concurrent End calls exactly one caller flips
// the column and the others observe domain.ErrSessionAlreadyEnded.
func (s *PostgresSessionStore) End(
	ctx context.Context,
	id uuid.UUID,
	at time.Time,
) (*domain.StudySession, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		UPDATE study_sessions
		SET ended_at = $2
		WHERE id = $1 AND ended_at IS NULL
	`

	result, err := s.db.ExecContext(ctx, query, id, at.UTC())
	if err != nil {
		log.Error("failed to end study session",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, store.NewStoreError("study_session", "end", "update failed", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		log.Error("failed to get rows affected",
			slog.String("error", err.Error()),
			slog.String("session_id", id.String()))
		return nil, store.NewStoreError("study_session", "end", "rows affected failed", err)
	}

	if rowsAffected == 0 {
		// Either the session never existed or it lost the swap.
		if _, err := s.GetByID(ctx, id); err != nil {
			return nil, err
		}
		log.Debug("study session already ended", slog.String("session_id", id.String()))
		return nil, fmt.Errorf("%w: session %s", domain.ErrSessionAlreadyEnded, id)
	}

	session, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	log.Info("study session ended successfully",
		slog.String("session_id", id.String()))
	return session, nil
}

// List implements store.SessionStore.List
// Sessions are ordered newest first with ties broken by id.
func (s *PostgresSessionStore) List(
	ctx context.Context,
	page pagination.Params,
) ([]*domain.StudySession, int, error) {
	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM study_sessions`).Scan(&total); err != nil {
		return nil, 0, store.NewStoreError("study_session", "list", "count failed", err)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		ORDER BY started_at DESC, id
		LIMIT $1 OFFSET $2
	`

	sessions, err := s.querySessions(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, store.NewStoreError("study_session", "list", "query failed", err)
	}

	return sessions, total, nil
}

// ListByGroup implements store.SessionStore.ListByGroup
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresSessionStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
	page pagination.Params,
) ([]*domain.StudySession, int, error) {
	if err := rowExists(ctx, s.db, `SELECT 1 FROM groups WHERE id = $1`, groupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, store.ErrGroupNotFound
		}
		return nil, 0, store.NewStoreError("study_session", "list_by_group", "group lookup failed", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM study_sessions WHERE group_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		return nil, 0, store.NewStoreError("study_session", "list_by_group", "count failed", err)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE group_id = $1
		ORDER BY started_at DESC, id
		LIMIT $2 OFFSET $3
	`

	sessions, err := s.querySessions(ctx, query, groupID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, store.NewStoreError("study_session", "list_by_group", "query failed", err)
	}

	return sessions, total, nil
}

// ListByActivity implements store.SessionStore.ListByActivity
// Returns store.ErrActivityNotFound if the activity does not exist.
func (s *PostgresSessionStore) ListByActivity(
	ctx context.Context,
	activityID uuid.UUID,
	page pagination.Params,
) ([]*domain.StudySession, int, error) {
	if err := rowExists(ctx, s.db, `SELECT 1 FROM study_activities WHERE id = $1`, activityID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, store.ErrActivityNotFound
		}
		return nil, 0, store.NewStoreError("study_session", "list_by_activity", "activity lookup failed", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM study_sessions WHERE study_activity_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, activityID).Scan(&total); err != nil {
		return nil, 0, store.NewStoreError("study_session", "list_by_activity", "count failed", err)
	}

	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		WHERE study_activity_id = $1
		ORDER BY started_at DESC, id
		LIMIT $2 OFFSET $3
	`

	sessions, err := s.querySessions(ctx, query, activityID, page.Limit(), page.Offset())
	if err != nil {
		return nil, 0, store.NewStoreError("study_session", "list_by_activity", "query failed", err)
	}

	return sessions, total, nil
}

// Latest implements store.SessionStore.Latest
// Returns store.ErrSessionNotFound when no sessions exist.
func (s *PostgresSessionStore) Latest(ctx context.Context) (*domain.StudySession, error) {
	query := `
		SELECT ` + sessionColumns + `
		FROM study_sessions
		ORDER BY started_at DESC, id
		LIMIT 1
	`

	session, err := scanSession(s.db.QueryRowContext(ctx, query))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrSessionNotFound
		}
		return nil, store.NewStoreError("study_session", "latest", "query failed", err)
	}

	return session, nil
}

// querySessions runs a session-row query and scans the results.
func (s *PostgresSessionStore) querySessions(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.StudySession, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, s.logger)

	sessions := []*domain.StudySession{}
	for rows.Next() {
		session, err := scanSession(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	return sessions, rows.Err()
}

// scanSession maps one study session row. ended_at is nullable.
func scanSession(row rowScanner) (*domain.StudySession, error) {
	var session domain.StudySession
	var endedAt sql.NullTime

	err := row.Scan(
		&session.ID,
		&session.GroupID,
		&session.StudyActivityID,
		&session.StartedAt,
		&endedAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if endedAt.Valid {
		t := endedAt.Time
		session.EndedAt = &t
	}

	return &session, nil
}
