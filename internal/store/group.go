package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
)

// GroupStore defines the interface for group persistence, including
// ownership of the word/group membership edges.
type GroupStore interface {
	// Create saves a new group.
	Create(ctx context.Context, group *domain.Group) error

	// GetByID retrieves a group by its unique ID, with TotalWords
	// populated from a live count over the join table.
	// Returns ErrGroupNotFound if the group does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Group, error)

	// List returns one page of groups ordered by name (ties broken by id),
	// each with a live TotalWords count, plus the total group count.
	List(ctx context.Context, page pagination.Params) ([]*domain.Group, int, error)

	// AddWord links a word to a group. The pair is unique; linking twice
	// returns ErrDuplicate. Returns ErrWordNotFound or ErrGroupNotFound
	// when either side does not resolve.
	AddWord(ctx context.Context, groupID, wordID uuid.UUID) error
}
