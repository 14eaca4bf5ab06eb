package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
)

// WordStore defines the interface for word persistence.
type WordStore interface {
	// Create saves a new word. The word must be valid according to domain
	// validation rules; validation errors are returned unchanged.
	Create(ctx context.Context, word *domain.Word) error

	// GetByID retrieves a word by its unique ID.
	// Returns ErrWordNotFound if the word does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Word, error)

	// List returns one page of words ordered by english text (ties broken
	// by id) plus the total word count.
	List(ctx context.Context, page pagination.Params) ([]*domain.Word, int, error)

	// ListByGroup returns one page of the words linked to the given group,
	// plus the total count of words in the group.
	// Returns ErrGroupNotFound if the group does not exist.
	ListByGroup(ctx context.Context, groupID uuid.UUID, page pagination.Params) ([]*domain.Word, int, error)

	// ListBySession returns one page of the distinct words reviewed in the
	// given session, plus the total distinct count.
	// Returns ErrSessionNotFound if the session does not exist.
	ListBySession(ctx context.Context, sessionID uuid.UUID, page pagination.Params) ([]*domain.Word, int, error)

	// GroupsForWord returns every group the word belongs to, with live
	// word counts. Returns ErrWordNotFound if the word does not exist.
	GroupsForWord(ctx context.Context, wordID uuid.UUID) ([]*domain.Group, error)
}
