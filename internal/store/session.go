package store

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
	"github.com/nabink/lang-portal/internal/pagination"
)

// SessionStore defines the interface for study session persistence.
// StartedAt is written once at creation; EndedAt is the only mutable
// column and is set at most once, by End.
type SessionStore interface {
	// Create saves a new study session in the created state.
	// Returns ErrInvalidEntity wrapping the violated reference when the
	// group or activity foreign key does not resolve.
	Create(ctx context.Context, session *domain.StudySession) error

	// GetByID retrieves a study session by its unique ID.
	// Returns ErrSessionNotFound if the session does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.StudySession, error)

	// End sets the session's EndedAt to the given time, but only if it is
	// not already set. The update is a compare-and-swap on the ended_at
	// column, so of two concurrent End calls exactly one succeeds.
	// Returns the updated session, domain.ErrSessionAlreadyEnded if the
	// session was already ended, or ErrSessionNotFound.
	End(ctx context.Context, id uuid.UUID, at time.Time) (*domain.StudySession, error)

	// List returns one page of sessions ordered by started_at descending
	// (ties broken by id) plus the total session count.
	List(ctx context.Context, page pagination.Params) ([]*domain.StudySession, int, error)

	// ListByGroup is List scoped to sessions of one group.
	// Returns ErrGroupNotFound if the group does not exist.
	ListByGroup(ctx context.Context, groupID uuid.UUID, page pagination.Params) ([]*domain.StudySession, int, error)

	// ListByActivity is List scoped to sessions of one study activity.
	// Returns ErrActivityNotFound if the activity does not exist.
	ListByActivity(ctx context.Context, activityID uuid.UUID, page pagination.Params) ([]*domain.StudySession, int, error)

	// Latest returns the session with the maximum started_at.
	// Returns ErrSessionNotFound when no sessions exist; callers that
	// treat absence as an empty result translate the error themselves.
	Latest(ctx context.Context) (*domain.StudySession, error)
}
