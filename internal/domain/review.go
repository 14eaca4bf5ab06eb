package domain

import (
	"fmt"
	"time"

	"github.com/google/uuid"
)

// ReviewItem-specific validation errors
var (
	// ErrReviewIDEmpty is returned when a review item ID is empty or nil.
	ErrReviewIDEmpty = fmt.Errorf("%w: review item ID cannot be empty", ErrValidation)

	// ErrReviewWordIDEmpty is returned when a review item's word ID is empty or nil.
	ErrReviewWordIDEmpty = fmt.Errorf("%w: review word ID cannot be empty", ErrValidation)

	// ErrReviewSessionIDEmpty is returned when a review item's session ID is empty or nil.
	ErrReviewSessionIDEmpty = fmt.Errorf("%w: review session ID cannot be empty", ErrValidation)

	// ErrReviewGroupIDEmpty is returned when a review item's group ID is empty or nil.
	ErrReviewGroupIDEmpty = fmt.Errorf("%w: review group ID cannot be empty", ErrValidation)
)

// ReviewItem is one entry in the append-only review ledger: a single
// correct/incorrect outcome for a word inside a study session. GroupID is
// a denormalized copy of the session's group at creation time so that
// per-group statistics never need a join; it is never re-derived later.
// Review items are created and bulk-deleted by resets, never updated.
type ReviewItem struct {
	ID        uuid.UUID `json:"id"`
	WordID    uuid.UUID `json:"word_id"`
	SessionID uuid.UUID `json:"session_id"`
	GroupID   uuid.UUID `json:"group_id"`
	IsCorrect bool      `json:"is_correct"`
	CreatedAt time.Time `json:"created_at"`
}

// NewReviewItem creates a ReviewItem with a fresh UUID. groupID must be
// the group of the session identified by sessionID at the time of the
// call; the caller (session lifecycle service) is responsible for the
// copy.
func NewReviewItem(wordID, sessionID, groupID uuid.UUID, isCorrect bool) (*ReviewItem, error) {
	item := &ReviewItem{
		ID:        uuid.New(),
		WordID:    wordID,
		SessionID: sessionID,
		GroupID:   groupID,
		IsCorrect: isCorrect,
		CreatedAt: time.Now().UTC(),
	}

	if err := item.Validate(); err != nil {
		return nil, err
	}

	return item, nil
}

// Validate checks if the ReviewItem has valid data.
func (r *ReviewItem) Validate() error {
	if r.ID == uuid.Nil {
		return ErrReviewIDEmpty
	}

	if r.WordID == uuid.Nil {
		return ErrReviewWordIDEmpty
	}

	if r.SessionID == uuid.Nil {
		return ErrReviewSessionIDEmpty
	}

	if r.GroupID == uuid.Nil {
		return ErrReviewGroupIDEmpty
	}

	return nil
}
