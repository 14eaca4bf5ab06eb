package store

import (
	"context"

	"github.com/google/uuid"
	"github.com/nabink/lang-portal/internal/domain"
)

// ReviewCounts partitions a set of review items by outcome. Total is
// always Correct + Wrong, by construction from a single boolean column.
type ReviewCounts struct {
	Total   int `json:"number_of_review_items"`
	Correct int `json:"number_of_correct_review_items"`
	Wrong   int `json:"number_of_wrong_review_items"`
}

// ReviewStore defines the interface for the append-only review ledger.
// Review items are created one at a time and only ever deleted in bulk by
// the reset operations; there is no update.
type ReviewStore interface {
	// Create appends a review item to the ledger.
	// Returns ErrInvalidEntity wrapping the violated reference when the
	// word, session, or group foreign key does not resolve.
	Create(ctx context.Context, item *domain.ReviewItem) error

	// CountsBySession returns the outcome partition of one session's
	// review items. A session with no reviews yields zero counts, not an
	// error.
	CountsBySession(ctx context.Context, sessionID uuid.UUID) (ReviewCounts, error)

	// CountsByGroup returns the outcome partition of all review items
	// carrying the given denormalized group id.
	CountsByGroup(ctx context.Context, groupID uuid.UUID) (ReviewCounts, error)
}
