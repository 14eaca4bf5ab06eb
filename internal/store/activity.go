package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
)

// ActivityStore defines the interface for study activity persistence.
type ActivityStore interface {
	// Create saves a new study activity.
	Create(ctx context.Context, activity *domain.StudyActivity) error

	// GetByID retrieves a study activity by its unique ID.
	// Returns ErrActivityNotFound if the activity does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudyActivity, error)

	// List returns one page of activities ordered by name (ties broken by
	// id) plus the total activity count.
	List(ctx context.Context, page pagination.Params) ([]*domain.StudyActivity, int, error)
}
