package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
	"github.com/nabink/lang-portal/internal/platform/logger"
	"github.com/nabink/lang-portal/internal/store"
)

// PostgresWordStore implements the store.WordStore interface
// using a PostgreSQL database as the storage backend.
type PostgresWordStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresWordStore creates a new PostgreSQL implementation of the WordStore interface.
// It accepts a database connection or transaction that should be initialized and managed by the caller.
// If logger is nil, a default logger will be used.
func NewPostgresWordStore(db store.DBTX, logger *slog.Logger) *PostgresWordStore {
	if db == nil {
		panic("db cannot be nil")
	}

	if logger == nil {
		logger = slog.Default()
	}

	return &PostgresWordStore{
		db:     db,
		logger: logger.With(slog.String("component", "word_store")),
	}
}

// Ensure PostgresWordStore implements store.WordStore interface
var _ store.WordStore = (*PostgresWordStore)(nil)

// Create implements store.WordStore.Create
// It saves a new word to the database, handling domain validation.
// Parts of speech are stored as a JSONB array.
func (s *PostgresWordStore) Create(ctx context.Context, word *domain.Word) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := word.Validate(); err != nil {
		log.Warn("word validation failed during create",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return err
	}

	parts, err := json.Marshal(word.PartsOfSpeech)
	if err != nil {
		return store.NewStoreError("word", "create", "failed to encode parts of speech", err)
	}

	query := `
		INSERT INTO words (id, nepali_text, romanized_text, english_text, parts_of_speech, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`
	_, err = s.db.ExecContext(
		ctx,
		query,
		word.ID,
		word.NepaliText,
		word.RomanizedText,
		word.EnglishText,
		parts,
		word.CreatedAt,
		word.UpdatedAt,
	)

	if err != nil {
		log.Error("failed to create word",
			slog.String("error", err.Error()),
			slog.String("word_id", word.ID.String()))
		return store.NewStoreError("word", "create", "insert failed", err)
	}

	log.Info("word created successfully",
		slog.String("word_id", word.ID.String()),
		slog.String("english_text", word.EnglishText))
	return nil
}

// GetByID implements store.WordStore.GetByID
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := `
		SELECT id, nepali_text, romanized_text, english_text, parts_of_speech, created_at, updated_at
		FROM words
		WHERE id = $1
	`

	word, err := scanWord(s.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			log.Debug("word not found", slog.String("word_id", id.String()))
			return nil, store.ErrWordNotFound
		}
		log.Error("failed to get word by ID",
			slog.String("error", err.Error()),
			slog.String("word_id", id.String()))
		return nil, store.NewStoreError("word", "get", "query failed", err)
	}

	return word, nil
}

// List implements store.WordStore.List
// Words are ordered by english text with ties broken by id so pages are
// deterministic.
func (s *PostgresWordStore) List(
	ctx context.Context,
	page pagination.Params,
) ([]*domain.Word, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	var total int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM words`).Scan(&total); err != nil {
		log.Error("failed to count words", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("word", "list", "count failed", err)
	}

	query := `
		SELECT id, nepali_text, romanized_text, english_text, parts_of_speech, created_at, updated_at
		FROM words
		ORDER BY english_text, id
		LIMIT $1 OFFSET $2
	`

	words, err := s.queryWords(ctx, query, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list words", slog.String("error", err.Error()))
		return nil, 0, store.NewStoreError("word", "list", "query failed", err)
	}

	return words, total, nil
}

// ListByGroup implements store.WordStore.ListByGroup
// Returns store.ErrGroupNotFound if the group does not exist.
func (s *PostgresWordStore) ListByGroup(
	ctx context.Context,
	groupID uuid.UUID,
	page pagination.Params,
) ([]*domain.Word, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rowExists(ctx, s.db, `SELECT 1 FROM groups WHERE id = $1`, groupID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, store.ErrGroupNotFound
		}
		return nil, 0, store.NewStoreError("word", "list_by_group", "group lookup failed", err)
	}

	var total int
	countQuery := `SELECT COUNT(*) FROM words_groups WHERE group_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, groupID).Scan(&total); err != nil {
		log.Error("failed to count group words",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, 0, store.NewStoreError("word", "list_by_group", "count failed", err)
	}

	query := `
		SELECT w.id, w.nepali_text, w.romanized_text, w.english_text, w.parts_of_speech, w.created_at, w.updated_at
		FROM words w
		JOIN words_groups wg ON wg.word_id = w.id
		WHERE wg.group_id = $1
		ORDER BY w.english_text, w.id
		LIMIT $2 OFFSET $3
	`

	words, err := s.queryWords(ctx, query, groupID, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list group words",
			slog.String("error", err.Error()),
			slog.String("group_id", groupID.String()))
		return nil, 0, store.NewStoreError("word", "list_by_group", "query failed", err)
	}

	return words, total, nil
}

// ListBySession implements store.WordStore.ListBySession
// It pages over the distinct words reviewed in the session.
// Returns store.ErrSessionNotFound if the session does not exist.
func (s *PostgresWordStore) ListBySession(
	ctx context.Context,
	sessionID uuid.UUID,
	page pagination.Params,
) ([]*domain.Word, int, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rowExists(ctx, s.db, `SELECT 1 FROM study_sessions WHERE id = $1`, sessionID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, 0, store.ErrSessionNotFound
		}
		return nil, 0, store.NewStoreError("word", "list_by_session", "session lookup failed", err)
	}

	var total int
	countQuery := `SELECT COUNT(DISTINCT word_id) FROM word_review_items WHERE session_id = $1`
	if err := s.db.QueryRowContext(ctx, countQuery, sessionID).Scan(&total); err != nil {
		log.Error("failed to count session words",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, 0, store.NewStoreError("word", "list_by_session", "count failed", err)
	}

	query := `
		SELECT w.id, w.nepali_text, w.romanized_text, w.english_text, w.parts_of_speech, w.created_at, w.updated_at
		FROM words w
		WHERE w.id IN (SELECT DISTINCT word_id FROM word_review_items WHERE session_id = $1)
		ORDER BY w.english_text, w.id
		LIMIT $2 OFFSET $3
	`

	words, err := s.queryWords(ctx, query, sessionID, page.Limit(), page.Offset())
	if err != nil {
		log.Error("failed to list session words",
			slog.String("error", err.Error()),
			slog.String("session_id", sessionID.String()))
		return nil, 0, store.NewStoreError("word", "list_by_session", "query failed", err)
	}

	return words, total, nil
}

// GroupsForWord implements store.WordStore.GroupsForWord
// Each returned group carries a live TotalWords count.
// Returns store.ErrWordNotFound if the word does not exist.
func (s *PostgresWordStore) GroupsForWord(
	ctx context.Context,
	wordID uuid.UUID,
) ([]*domain.Group, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := rowExists(ctx, s.db, `SELECT 1 FROM words WHERE id = $1`, wordID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrWordNotFound
		}
		return nil, store.NewStoreError("word", "groups_for_word", "word lookup failed", err)
	}

	query := `
		SELECT g.id, g.name, g.description, g.created_at, g.updated_at,
		       (SELECT COUNT(*) FROM words_groups c WHERE c.group_id = g.id) AS total_words
		FROM groups g
		JOIN words_groups wg ON wg.group_id = g.id
		WHERE wg.word_id = $1
		ORDER BY g.name, g.id
	`

	rows, err := s.db.QueryContext(ctx, query, wordID)
	if err != nil {
		log.Error("failed to query word groups",
			slog.String("error", err.Error()),
			slog.String("word_id", wordID.String()))
		return nil, store.NewStoreError("word", "groups_for_word", "query failed", err)
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
			return nil, store.NewStoreError("word", "groups_for_word", "scan failed", err)
		}
		groups = append(groups, &group)
	}

	if err := rows.Err(); err != nil {
		return nil, store.NewStoreError("word", "groups_for_word", "row iteration failed", err)
	}

	return groups, nil
}

// queryWords runs a word-row query and scans the results.
func (s *PostgresWordStore) queryWords(
	ctx context.Context,
	query string,
	args ...any,
) ([]*domain.Word, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer closeRows(rows, s.logger)

	words := []*domain.Word{}
	for rows.Next() {
		word, err := scanWord(rows)
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}

	return words, rows.Err()
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

// scanWord maps one word row, decoding the JSONB parts-of-speech column.
func scanWord(row rowScanner) (*domain.Word, error) {
	var word domain.Word
	var parts []byte

	err := row.Scan(
		&word.ID,
		&word.NepaliText,
		&word.RomanizedText,
		&word.EnglishText,
		&parts,
		&word.CreatedAt,
		&word.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if err := json.Unmarshal(parts, &word.PartsOfSpeech); err != nil {
		return nil, fmt.Errorf("failed to decode parts of speech: %w", err)
	}

	return &word, nil
}

// rowExists runs an existence probe, returning sql.ErrNoRows when the
// probe matches nothing.
func rowExists(ctx context.Context, db store.DBTX, query string, args ...any) error {
	var one int
	return db.QueryRowContext(ctx, query, args...).Scan(&one)
}

// closeRows closes rows and logs a close failure instead of returning it.
func closeRows(rows *sql.Rows, log *slog.Logger) {
	if err := rows.Close(); err != nil {
		log.Error("failed to close rows", slog.String("error", err.Error()))
	}
}
